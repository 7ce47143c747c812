// Package catalog decodes recipe catalog documents into macro-computed meals.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"mealplanner/nutrition"
	"mealplanner/tools/storage"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Record is one recipe as stored in a catalog document. Each ingredient is either
// an object {"name", "quantity", "unit"} or a free-text line such as "2 eggs".
type Record struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Servings    int               `json:"servings,omitempty"`
	Ingredients []json.RawMessage `json:"ingredients"`
}

type ingredientRecord struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Qty      float64 `json:"qty"`
	Unit     string  `json:"unit"`
}

type document struct {
	Recipes []Record `json:"recipes"`
}

// Decode parses a catalog document, either {"recipes": [...]} or a bare array, into
// meals in document order. Free-text ingredient lines without a quantity are skipped.
func Decode(data []byte) ([]nutrition.Meal, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	meals := make([]nutrition.Meal, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		m, err := r.meal()
		if err != nil {
			return nil, fmt.Errorf("%w: recipe %d: %w", ErrInvalidCatalog, i, err)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("%w: duplicate recipe id %q", ErrInvalidCatalog, m.ID)
		}
		seen[m.ID] = true
		meals = append(meals, m)
	}
	return meals, nil
}

func decodeRecords(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}
	if trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		return records, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return doc.Recipes, nil
}

func (r Record) meal() (nutrition.Meal, error) {
	ings := make([]nutrition.Ingredient, 0, len(r.Ingredients))
	for _, raw := range r.Ingredients {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '"' {
			var line string
			if err := json.Unmarshal(raw, &line); err != nil {
				return nutrition.Meal{}, err
			}
			ing, ok, err := nutrition.ParseIngredientLine(line)
			if err != nil {
				return nutrition.Meal{}, err
			}
			if !ok {
				slog.Debug("CATALOG: Skipping ingredient line without quantity", "recipe", r.ID, "line", line)
				continue
			}
			ings = append(ings, ing)
			continue
		}

		var ir ingredientRecord
		if err := json.Unmarshal(raw, &ir); err != nil {
			return nutrition.Meal{}, err
		}
		qty := ir.Quantity
		if qty == 0 {
			qty = ir.Qty
		}
		ing, err := nutrition.NewIngredient(ir.Name, qty, ir.Unit)
		if err != nil {
			return nutrition.Meal{}, err
		}
		ings = append(ings, ing)
	}
	return nutrition.NewMeal(r.ID, r.Name, ings, r.Servings)
}

// Load reads the catalog from state and attaches macros to every meal using src.
func Load(ctx context.Context, state storage.CatalogState, src nutrition.NutrientSource) ([]nutrition.Meal, error) {
	b, err := state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	meals, err := Decode(b)
	if err != nil {
		return nil, err
	}
	return nutrition.ComputeAll(src, meals), nil
}

// LoadSource builds the nutrient source for a run: the built-in table, overlaid with
// the table in state when state is non-nil.
func LoadSource(ctx context.Context, state storage.NutrientState) (*nutrition.TableSource, error) {
	if state == nil {
		return nutrition.NewDefaultSource(), nil
	}
	b, err := state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read nutrient table: %w", err)
	}
	table, err := nutrition.LoadTable(b)
	if err != nil {
		return nil, err
	}
	return nutrition.NewTableSource(nutrition.Merge(nutrition.BuiltinTable(), table)), nil
}
