// Package shopping turns a week plan into a shopping list and prices it against a budget.
package shopping

import (
	"mealplanner"
	"mealplanner/nutrition"
)

// Item is one aggregated line of a shopping list.
type Item struct {
	Name     string         `json:"name"`
	Quantity float64        `json:"quantity"`
	Unit     nutrition.Unit `json:"unit"`
}

// List is the aggregated shopping list for a plan.
type List struct {
	Items []Item `json:"items"`
}

type itemKey struct {
	name string
	unit nutrition.Unit
}

// Aggregate sums quantities of ingredients sharing a normalized name and unit.
// Items keep the order of their first appearance; the same name in two units
// stays as two items.
func Aggregate(ings []nutrition.Ingredient) List {
	index := make(map[itemKey]int)
	list := List{Items: make([]Item, 0)}
	for _, ing := range ings {
		name := nutrition.Normalize(ing.Name)
		if name == "" {
			continue
		}
		k := itemKey{name: name, unit: ing.Unit}
		if i, ok := index[k]; ok {
			list.Items[i].Quantity += ing.Quantity
			continue
		}
		index[k] = len(list.Items)
		list.Items = append(list.Items, Item{Name: name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	return list
}

// BuildList aggregates every ingredient of every meal in the plan.
func BuildList(plan mealplanner.WeekPlan) List {
	return Aggregate(plan.Ingredients())
}
