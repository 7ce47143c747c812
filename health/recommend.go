package health

import (
	"fmt"
	"strings"

	"mealplanner"
)

// Recommendations turns the profile's health notes and allergies into advice lines.
func Recommendations(p mealplanner.UserHealthProfile) []string {
	var recs []string
	if p.HasNote("low_sugar") {
		recs = append(recs, "Monitor sugar content - aim for natural sugars from fruits")
	}
	if p.HasNote("low_sodium") {
		recs = append(recs, "Limit sodium to <2300mg per day")
	}
	if p.HasNote("high_protein") {
		recs = append(recs, fmt.Sprintf("Target %gg protein daily", p.ProteinTargetG))
	}
	if p.HasNote("low_carb") {
		recs = append(recs, fmt.Sprintf("Limit carbs to %gg daily", p.CarbTargetG))
	}
	if p.HasNote("heart_friendly") {
		recs = append(recs, fmt.Sprintf("Keep fat near %gg daily and favour unsaturated sources", p.FatTargetG))
	}
	if len(p.Allergies) > 0 {
		recs = append(recs, "ALLERGIES: Avoid "+strings.Join(p.Allergies, ", "))
	}
	return recs
}
