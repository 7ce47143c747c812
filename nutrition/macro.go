// Package nutrition holds the macro model, the ingredient nutrition lookup and
// the meal macro aggregator.
package nutrition

import "fmt"

// MacroBundle is a quantity of each macro: calories, protein, carbohydrates and fat.
// Values produced by a lookup are treated as immutable; use an Accumulator to sum.
type MacroBundle struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Add returns the field-wise sum of b and o.
func (b MacroBundle) Add(o MacroBundle) MacroBundle {
	return MacroBundle{
		Calories: b.Calories + o.Calories,
		ProteinG: b.ProteinG + o.ProteinG,
		CarbsG:   b.CarbsG + o.CarbsG,
		FatG:     b.FatG + o.FatG,
	}
}

// Scale multiplies every field by factor.
func (b MacroBundle) Scale(factor float64) MacroBundle {
	return MacroBundle{
		Calories: b.Calories * factor,
		ProteinG: b.ProteinG * factor,
		CarbsG:   b.CarbsG * factor,
		FatG:     b.FatG * factor,
	}
}

// Validate reports an error when any field is negative.
func (b MacroBundle) Validate() error {
	if b.Calories < 0 || b.ProteinG < 0 || b.CarbsG < 0 || b.FatG < 0 {
		return fmt.Errorf("macro bundle has negative values: %+v", b)
	}
	return nil
}

// Accumulator is the mutable counterpart of MacroBundle used while summing.
type Accumulator struct {
	total MacroBundle
	count int
}

// Add folds b into the running total.
func (a *Accumulator) Add(b MacroBundle) {
	a.total = a.total.Add(b)
	a.count++
}

// Total returns the sum so far.
func (a *Accumulator) Total() MacroBundle { return a.total }

// Count returns how many bundles were added.
func (a *Accumulator) Count() int { return a.count }

// Sum adds every bundle together.
func Sum(bundles ...MacroBundle) MacroBundle {
	var acc Accumulator
	for _, b := range bundles {
		acc.Add(b)
	}
	return acc.Total()
}
