// Package planner builds a seven-day plan from a pool of macro-computed meals.
package planner

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"mealplanner"
	"mealplanner/nutrition"
)

var (
	ErrInsufficientMeals = errors.New("insufficient meals")
	ErrMacrosNotComputed = errors.New("meal macros not computed")
)

// InsufficientMealsError reports a pool smaller than the profile's meals per day.
type InsufficientMealsError struct {
	Required  int
	Available int
}

func (e *InsufficientMealsError) Error() string {
	return fmt.Sprintf("insufficient meals: need %d per day, pool has %d", e.Required, e.Available)
}

func (e *InsufficientMealsError) Is(target error) bool { return target == ErrInsufficientMeals }

// Builder assembles WeekPlans from an injected meal pool.
type Builder struct {
	pool     []nutrition.Meal
	strategy SelectionStrategy
}

type Option func(*Builder)

// WithStrategy replaces the default StaticStrategy.
func WithStrategy(s SelectionStrategy) Option {
	return func(b *Builder) {
		if s != nil {
			b.strategy = s
		}
	}
}

// NewBuilder returns a Builder over a private copy of pool.
// Meals in generated plans are cloned from it.
func NewBuilder(pool []nutrition.Meal, opts ...Option) *Builder {
	b := &Builder{
		pool:     slices.Clone(pool),
		strategy: StaticStrategy{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Strategy returns the selection strategy in use.
func (b *Builder) Strategy() SelectionStrategy { return b.strategy }

// PoolSize returns the number of meals available.
func (b *Builder) PoolSize() int { return len(b.pool) }

// GenerateWeekPlan selects profile.MealsPerDay meals for each of the seven days.
func (b *Builder) GenerateWeekPlan(profile mealplanner.UserHealthProfile) (mealplanner.WeekPlan, error) {
	if err := profile.Validate(); err != nil {
		return mealplanner.WeekPlan{}, err
	}
	if len(b.pool) < profile.MealsPerDay {
		return mealplanner.WeekPlan{}, &InsufficientMealsError{Required: profile.MealsPerDay, Available: len(b.pool)}
	}
	for _, m := range b.pool {
		if m.MacrosPerServing == nil {
			return mealplanner.WeekPlan{}, fmt.Errorf("%w: %s", ErrMacrosNotComputed, m.ID)
		}
	}

	// Every day owns its meals; editing one day never reaches the pool or another day.
	plan := mealplanner.WeekPlan{Days: make([]mealplanner.DayPlan, 0, mealplanner.DaysPerWeek)}
	for day, name := range mealplanner.Weekdays {
		selected := b.strategy.Select(b.pool, day, profile.MealsPerDay)
		meals := make([]nutrition.Meal, len(selected))
		for i, m := range selected {
			meals[i] = m.Clone()
		}
		plan.Days = append(plan.Days, mealplanner.DayPlan{DayName: name, Meals: meals})
	}

	slog.Debug("PLANNER: Week plan generated",
		"strategy", b.strategy.Name(),
		"pool_size", len(b.pool),
		"meals_per_day", profile.MealsPerDay)

	return plan, nil
}
