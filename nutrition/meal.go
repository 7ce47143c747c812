package nutrition

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrInvalidMeal = errors.New("invalid meal")

// Meal is a named recipe. MacrosPerServing stays nil until ComputeMealMacros attaches it.
type Meal struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Ingredients      []Ingredient `json:"ingredients"`
	Servings         int          `json:"servings"`
	MacrosPerServing *MacroBundle `json:"macros_per_serving,omitempty"`
}

// NewMeal validates its inputs and copies the ingredient slice so the Meal owns it.
// A servings value of 0 is read as 1.
func NewMeal(id, name string, ingredients []Ingredient, servings int) (Meal, error) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if id == "" {
		return Meal{}, fmt.Errorf("%w: empty id", ErrInvalidMeal)
	}
	if name == "" {
		return Meal{}, fmt.Errorf("%w: %s: empty name", ErrInvalidMeal, id)
	}
	if servings == 0 {
		servings = 1
	}
	if servings < 1 {
		return Meal{}, fmt.Errorf("%w: %s: servings must be at least 1, got %d", ErrInvalidMeal, id, servings)
	}
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return Meal{}, fmt.Errorf("%w: %s: %w", ErrInvalidMeal, id, err)
		}
	}
	return Meal{
		ID:          id,
		Name:        name,
		Ingredients: slices.Clone(ingredients),
		Servings:    servings,
	}, nil
}

// Macros returns the attached per-serving macros, if any.
func (m Meal) Macros() (MacroBundle, bool) {
	if m.MacrosPerServing == nil {
		return MacroBundle{}, false
	}
	return *m.MacrosPerServing, true
}

// Clone returns a copy of m that shares no memory with it.
func (m Meal) Clone() Meal {
	m.Ingredients = slices.Clone(m.Ingredients)
	if m.MacrosPerServing != nil {
		macros := *m.MacrosPerServing
		m.MacrosPerServing = &macros
	}
	return m
}

// ComputeMealMacros returns m with MacrosPerServing set to the sum of every
// ingredient lookup. The sum is not divided by Servings: catalog quantities are
// expected to already describe one serving. Calling it again yields the same value.
func ComputeMealMacros(src NutrientSource, m Meal) Meal {
	var acc Accumulator
	for _, ing := range m.Ingredients {
		acc.Add(src.Lookup(ing))
	}
	total := acc.Total()
	m.MacrosPerServing = &total
	return m
}

// ComputeAll applies ComputeMealMacros to every meal and returns a new slice.
func ComputeAll(src NutrientSource, meals []Meal) []Meal {
	out := make([]Meal, len(meals))
	for i, m := range meals {
		out[i] = ComputeMealMacros(src, m)
	}
	return out
}
