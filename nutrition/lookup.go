package nutrition

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NutrientSource maps an ingredient to its macro content at the stated quantity.
// Implementations must be pure: the same Ingredient always yields the same bundle.
type NutrientSource interface {
	Lookup(ing Ingredient) MacroBundle
}

// DefaultBase is the per-100-units bundle used for ingredients missing from a table.
var DefaultBase = MacroBundle{Calories: 50, ProteinG: 2, CarbsG: 10, FatG: 1}

// qualifiers are preparation words that never change which food an ingredient is.
var qualifiers = map[string]bool{
	"fresh":   true,
	"chopped": true,
	"grated":  true,
	"sliced":  true,
	"minced":  true,
	"diced":   true,
	"finely":  true,
	"roughly": true,
	"large":   true,
	"medium":  true,
	"small":   true,
	"raw":     true,
	"organic": true,
}

var synonyms = map[string]string{
	"scallion":       "green onion",
	"scallions":      "green onion",
	"spring onion":   "green onion",
	"spring onions":  "green onion",
	"garbanzo beans": "chickpeas",
	"chana":          "chickpeas",
	"cottage cheese": "paneer",
	"curd":           "greek yogurt",
	"chicken":        "chicken breast",
}

// Normalize reduces an ingredient name to its canonical lookup key: lower-cased, with
// anything after a comma dropped and qualifier words removed.
func Normalize(name string) string {
	name = strings.ToLower(name)
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}
	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		if !qualifiers[w] {
			kept = append(kept, w)
		}
	}
	key := strings.Join(kept, " ")
	if canonical, ok := synonyms[key]; ok {
		return canonical
	}
	return key
}

// TableSource is a NutrientSource backed by a per-100-units table. The zero value
// resolves every ingredient to DefaultBase.
//
// Mass and volume quantities scale the base by quantity/100. Count quantities scale
// it by the raw quantity, so the base is read as "per piece". This is an
// approximation; a database-backed NutrientSource can replace it without callers
// noticing.
type TableSource struct {
	table    map[string]MacroBundle
	fallback MacroBundle
}

// NewTableSource builds a source over table. Keys are normalized on the way in.
func NewTableSource(table map[string]MacroBundle) *TableSource {
	t := make(map[string]MacroBundle, len(table))
	for k, v := range table {
		t[Normalize(k)] = v
	}
	return &TableSource{table: t, fallback: DefaultBase}
}

// NewDefaultSource returns a TableSource over the built-in table.
func NewDefaultSource() *TableSource {
	return NewTableSource(builtinTable)
}

// Lookup returns the macro content of ing. Unknown names fall back to DefaultBase.
func (s *TableSource) Lookup(ing Ingredient) MacroBundle {
	base, _ := s.Base(ing.Name)
	if ing.Unit.IsCount() {
		return base.Scale(ing.Quantity)
	}
	return base.Scale(ing.Quantity / 100)
}

// Base resolves name to its per-100-units bundle. The boolean is false when the
// fallback bundle was used.
func (s *TableSource) Base(name string) (MacroBundle, bool) {
	if s == nil || s.table == nil {
		return DefaultBase, false
	}
	key := Normalize(name)
	if b, ok := s.table[key]; ok {
		return b, true
	}
	for _, suffix := range []string{"es", "s"} {
		if singular, ok := strings.CutSuffix(key, suffix); ok {
			if b, ok := s.table[singular]; ok {
				return b, true
			}
		}
	}
	return s.fallback, false
}

// Len returns the number of entries in the table.
func (s *TableSource) Len() int { return len(s.table) }

// LoadTable decodes a JSON object of name to per-100-units bundle, for example
// {"tofu": {"calories": 76, "protein_g": 8, "carbs_g": 1.9, "fat_g": 4.8}}.
func LoadTable(data []byte) (map[string]MacroBundle, error) {
	var raw map[string]MacroBundle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode nutrient table: %w", err)
	}
	for name, b := range raw {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("nutrient table entry %q: %w", name, err)
		}
	}
	return raw, nil
}

// Merge returns a copy of base with every entry of overrides applied on top.
func Merge(base, overrides map[string]MacroBundle) map[string]MacroBundle {
	out := make(map[string]MacroBundle, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// BuiltinTable returns a copy of the built-in per-100-units table.
func BuiltinTable() map[string]MacroBundle {
	return Merge(builtinTable, nil)
}
