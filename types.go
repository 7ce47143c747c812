package mealplanner

import "mealplanner/nutrition"

// DaysPerWeek is the fixed length of every WeekPlan.
const DaysPerWeek = 7

// Weekdays names the days of a WeekPlan in order.
var Weekdays = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayPlan holds the meals eaten on one day, one serving each. Meals built by the
// planner are independent copies of the catalog entries.
type DayPlan struct {
	DayName string           `json:"day_name"`
	Meals   []nutrition.Meal `json:"meals"`
}

// WeekPlan is the planning artifact for one run.
type WeekPlan struct {
	Days []DayPlan `json:"days"`
}

// Ingredients flattens every ingredient of every meal across the week, in plan order.
// Repeated meals contribute their ingredients once per appearance.
func (w WeekPlan) Ingredients() []nutrition.Ingredient {
	var out []nutrition.Ingredient
	for _, day := range w.Days {
		for _, meal := range day.Meals {
			out = append(out, meal.Ingredients...)
		}
	}
	return out
}

// MealCount returns the number of meal entries across the week.
func (w WeekPlan) MealCount() int {
	n := 0
	for _, day := range w.Days {
		n += len(day.Meals)
	}
	return n
}

// IsValid checks the plan has a full week and exactly mealsPerDay macro-computed meals each day.
func (w WeekPlan) IsValid(mealsPerDay int) bool {
	if len(w.Days) != DaysPerWeek {
		return false
	}

	for _, day := range w.Days {
		if day.DayName == "" || len(day.Meals) != mealsPerDay {
			return false
		}

		for _, meal := range day.Meals {
			if meal.ID == "" || meal.Name == "" || meal.MacrosPerServing == nil {
				return false
			}
		}
	}

	return true
}
