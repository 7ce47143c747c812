package planner

import (
	"fmt"
	"strings"

	"mealplanner/nutrition"
)

// SelectionStrategy picks the meals for one day out of the pool. It must be
// deterministic: the same pool, day and count always produce the same selection.
// The pool is guaranteed to hold at least count meals.
type SelectionStrategy interface {
	Name() string
	Select(pool []nutrition.Meal, day, count int) []nutrition.Meal
}

// StaticStrategy repeats the leading count meals of the pool on every day.
type StaticStrategy struct{}

func (StaticStrategy) Name() string { return "static" }

func (StaticStrategy) Select(pool []nutrition.Meal, day, count int) []nutrition.Meal {
	out := make([]nutrition.Meal, count)
	copy(out, pool[:count])
	return out
}

// RotationStrategy walks the pool in order, continuing each day where the previous
// day stopped and wrapping at the end.
type RotationStrategy struct{}

func (RotationStrategy) Name() string { return "rotation" }

func (RotationStrategy) Select(pool []nutrition.Meal, day, count int) []nutrition.Meal {
	out := make([]nutrition.Meal, count)
	start := day * count
	for i := range out {
		out[i] = pool[(start+i)%len(pool)]
	}
	return out
}

// StrategyByName resolves a configured strategy name.
func StrategyByName(name string) (SelectionStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "static":
		return StaticStrategy{}, nil
	case "rotation", "rotate":
		return RotationStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown selection strategy %q", name)
	}
}
