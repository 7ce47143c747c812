package nutrition

import (
	"errors"
	"fmt"
	"strings"
)

// Unit is one of the three base units an Ingredient quantity is expressed in.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "piece"
)

var ErrUnknownUnit = errors.New("unknown unit")

type unitDef struct {
	base   Unit
	factor float64
}

// unitTable maps accepted spellings to a base unit and the factor that converts to it.
var unitTable = map[string]unitDef{
	// mass (base = g)
	"g":      {UnitGram, 1},
	"gram":   {UnitGram, 1},
	"grams":  {UnitGram, 1},
	"kg":     {UnitGram, 1000},
	"oz":     {UnitGram, 28.349523125},
	"lb":     {UnitGram, 453.59237},
	"lbs":    {UnitGram, 453.59237},
	"pound":  {UnitGram, 453.59237},
	"pounds": {UnitGram, 453.59237},

	// volume (base = ml)
	"ml":          {UnitMilliliter, 1},
	"milliliter":  {UnitMilliliter, 1},
	"milliliters": {UnitMilliliter, 1},
	"l":           {UnitMilliliter, 1000},
	"liter":       {UnitMilliliter, 1000},
	"liters":      {UnitMilliliter, 1000},
	"tsp":         {UnitMilliliter, 4.92892159375},
	"tbsp":        {UnitMilliliter, 14.78676478125},
	"cup":         {UnitMilliliter, 236.5882365},
	"cups":        {UnitMilliliter, 236.5882365},

	// count
	"piece":  {UnitPiece, 1},
	"pieces": {UnitPiece, 1},
	"pc":     {UnitPiece, 1},
	"pcs":    {UnitPiece, 1},
	"count":  {UnitPiece, 1},
	"clove":  {UnitPiece, 1},
	"cloves": {UnitPiece, 1},
	"slice":  {UnitPiece, 1},
	"slices": {UnitPiece, 1},
}

// ParseUnit resolves a unit spelling to its base Unit and the factor that converts a
// quantity in that spelling to the base unit.
func ParseUnit(s string) (Unit, float64, error) {
	def, ok := unitTable[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return def.base, def.factor, nil
}

// IsCount reports whether quantities in u are counted rather than measured.
func (u Unit) IsCount() bool { return u == UnitPiece }

func (u Unit) valid() bool {
	return u == UnitGram || u == UnitMilliliter || u == UnitPiece
}
