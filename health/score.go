// Package health scores planned days against a profile's daily targets.
//
// Scoring is pure: it reads the plan and profile, never mutates them and never
// fails. An unhealthy day is signalled through a lower score and flags.
package health

import (
	"slices"
	"strings"

	"mealplanner"
	"mealplanner/nutrition"
)

const (
	MaxScore           = 100
	DeviationThreshold = 0.10
	PenaltyPerMacro    = 10
)

const (
	FlagOverCalories  = "over_calories"
	FlagUnderCalories = "under_calories"
	FlagOverProtein   = "over_protein"
	FlagUnderProtein  = "under_protein"
	FlagOverCarbs     = "over_carbs"
	FlagUnderCarbs    = "under_carbs"
	FlagOverFat       = "over_fat"
	FlagUnderFat      = "under_fat"
	FlagAllergyRisk   = "allergy_risk"
	FlagDislikedFood  = "disliked_food"
)

// DailyReport is the scored summary of one DayPlan.
type DailyReport struct {
	DayName       string   `json:"day_name"`
	TotalCalories float64  `json:"total_calories"`
	TotalProteinG float64  `json:"total_protein_g"`
	TotalCarbsG   float64  `json:"total_carbs_g"`
	TotalFatG     float64  `json:"total_fat_g"`
	CalorieDelta  float64  `json:"calorie_delta"`
	ProteinDelta  float64  `json:"protein_delta"`
	CarbDelta     float64  `json:"carb_delta"`
	FatDelta      float64  `json:"fat_delta"`
	Score         int      `json:"score"`
	Flags         []string `json:"flags"`
}

// Totals returns the day's totals as a bundle.
func (r DailyReport) Totals() nutrition.MacroBundle {
	return nutrition.MacroBundle{
		Calories: r.TotalCalories,
		ProteinG: r.TotalProteinG,
		CarbsG:   r.TotalCarbsG,
		FatG:     r.TotalFatG,
	}
}

// HasFlag reports whether flag was raised for the day.
func (r DailyReport) HasFlag(flag string) bool {
	return slices.Contains(r.Flags, flag)
}

type macroCheck struct {
	total, target float64
	over, under   string
}

// ScoreDay totals the day's meals, one serving each, and compares them to the
// profile's targets. Meals without attached macros count as zero.
func ScoreDay(day mealplanner.DayPlan, profile mealplanner.UserHealthProfile) DailyReport {
	var acc nutrition.Accumulator
	for _, m := range day.Meals {
		if macros, ok := m.Macros(); ok {
			acc.Add(macros)
		}
	}
	total := acc.Total()
	target := profile.Targets()

	report := DailyReport{
		DayName:       day.DayName,
		TotalCalories: total.Calories,
		TotalProteinG: total.ProteinG,
		TotalCarbsG:   total.CarbsG,
		TotalFatG:     total.FatG,
		CalorieDelta:  total.Calories - target.Calories,
		ProteinDelta:  total.ProteinG - target.ProteinG,
		CarbDelta:     total.CarbsG - target.CarbsG,
		FatDelta:      total.FatG - target.FatG,
	}

	flags := make(map[string]bool)
	offending := 0
	checks := []macroCheck{
		{total.Calories, target.Calories, FlagOverCalories, FlagUnderCalories},
		{total.ProteinG, target.ProteinG, FlagOverProtein, FlagUnderProtein},
		{total.CarbsG, target.CarbsG, FlagOverCarbs, FlagUnderCarbs},
		{total.FatG, target.FatG, FlagOverFat, FlagUnderFat},
	}
	for _, c := range checks {
		over, under := deviates(c.total, c.target)
		switch {
		case over:
			flags[c.over] = true
			offending++
		case under:
			flags[c.under] = true
			offending++
		}
	}
	report.Score = max(0, MaxScore-PenaltyPerMacro*offending)

	if containsAny(day, profile.Allergies) {
		flags[FlagAllergyRisk] = true
	}
	if containsAny(day, profile.Dislikes) {
		flags[FlagDislikedFood] = true
	}
	report.Flags = sortedFlags(flags)

	return report
}

func sortedFlags(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// deviates reports whether total is more than DeviationThreshold above or below
// target, relative to target. A non-positive target is only met by an equal total.
func deviates(total, target float64) (over, under bool) {
	delta := total - target
	if target <= 0 {
		return delta > 0, delta < 0
	}
	rel := delta / target
	return rel > DeviationThreshold, rel < -DeviationThreshold
}

// containsAny reports whether any ingredient name in the day contains one of terms,
// ignoring case. Blank terms never match.
func containsAny(day mealplanner.DayPlan, terms []string) bool {
	needles := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			needles = append(needles, t)
		}
	}
	if len(needles) == 0 {
		return false
	}
	for _, m := range day.Meals {
		for _, ing := range m.Ingredients {
			name := strings.ToLower(ing.Name)
			for _, n := range needles {
				if strings.Contains(name, n) {
					return true
				}
			}
		}
	}
	return false
}
