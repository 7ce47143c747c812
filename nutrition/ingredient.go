package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidIngredient = errors.New("invalid ingredient")

// Ingredient is a named quantity in one of the base units. Construct it with
// NewIngredient so the quantity is known to be positive.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
}

// NewIngredient validates and converts the quantity into the base unit matching unit.
// An empty unit is read as a count.
func NewIngredient(name string, quantity float64, unit string) (Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ingredient{}, fmt.Errorf("%w: empty name", ErrInvalidIngredient)
	}
	if !validQuantity(quantity) {
		return Ingredient{}, fmt.Errorf("%w: %q has invalid quantity %g", ErrInvalidIngredient, name, quantity)
	}
	if strings.TrimSpace(unit) == "" {
		unit = string(UnitPiece)
	}
	base, factor, err := ParseUnit(unit)
	if err != nil {
		return Ingredient{}, fmt.Errorf("%w: %q: %w", ErrInvalidIngredient, name, err)
	}
	return Ingredient{Name: name, Quantity: quantity * factor, Unit: base}, nil
}

// Validate checks an Ingredient that was built without NewIngredient.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIngredient)
	}
	if !validQuantity(i.Quantity) {
		return fmt.Errorf("%w: %q has invalid quantity %g", ErrInvalidIngredient, i.Name, i.Quantity)
	}
	if !i.Unit.valid() {
		return fmt.Errorf("%w: %q: %w: %q", ErrInvalidIngredient, i.Name, ErrUnknownUnit, i.Unit)
	}
	return nil
}

func (i Ingredient) String() string {
	return fmt.Sprintf("%g %s %s", i.Quantity, i.Unit, i.Name)
}

// validQuantity rejects zero, negative, NaN and infinite quantities.
func validQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0)
}
