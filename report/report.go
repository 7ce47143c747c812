// Package report renders planning results for people.
package report

import (
	"fmt"
	"strings"

	"mealplanner/pipeline"
)

// Summary is a short digest of a run suitable for chat messages.
type Summary struct {
	Title string
	Lines []string
	Score float64
	Flags []string
}

// Summarize condenses res into a title, a few lines and the weekly score.
func Summarize(res pipeline.Result) Summary {
	s := Summary{
		Title: fmt.Sprintf("Weekly meal plan (%s, %d meals/day)", res.Profile.DietType, res.Profile.MealsPerDay),
		Score: res.Report.AverageScore,
		Flags: res.Report.GlobalFlags,
	}
	s.Lines = append(s.Lines, fmt.Sprintf("Average health score: %.1f/100", res.Report.AverageScore))
	if len(res.Report.GlobalFlags) > 0 {
		s.Lines = append(s.Lines, "Flags: "+strings.Join(res.Report.GlobalFlags, ", "))
	}
	if line := costLine(res); line != "" {
		s.Lines = append(s.Lines, line)
	}
	s.Lines = append(s.Lines, res.Report.Recommendations...)
	return s
}

func costLine(res pipeline.Result) string {
	if res.Estimate == nil {
		return ""
	}
	line := fmt.Sprintf("Estimated shopping cost: %s %.2f for %d items",
		res.Estimate.Currency, res.Estimate.Total, len(res.Shopping.Items))
	b := res.Budget
	if b.WithinBudget == nil {
		return line
	}
	if *b.WithinBudget {
		return line + fmt.Sprintf(" (%.2f under budget)", *b.AmountUnderBudget)
	}
	return line + fmt.Sprintf(" (%.2f over budget)", *b.AmountOverBudget)
}

// Text renders the full run, one line per day, for the console.
func Text(res pipeline.Result) string {
	var sb strings.Builder
	sum := Summarize(res)

	fmt.Fprintf(&sb, "%s\nRun %s, strategy %s\n\n", sum.Title, res.RunID, res.Strategy)
	for i, day := range res.Plan.Days {
		names := make([]string, len(day.Meals))
		for j, m := range day.Meals {
			names[j] = m.Name
		}
		fmt.Fprintf(&sb, "%-9s %s\n", day.DayName+":", strings.Join(names, ", "))
		if i < len(res.Report.DailyReports) {
			dr := res.Report.DailyReports[i]
			fmt.Fprintf(&sb, "          %.0f kcal (%+.0f)  P %.1fg (%+.1f)  C %.1fg (%+.1f)  F %.1fg (%+.1f)  score %d",
				dr.TotalCalories, dr.CalorieDelta,
				dr.TotalProteinG, dr.ProteinDelta,
				dr.TotalCarbsG, dr.CarbDelta,
				dr.TotalFatG, dr.FatDelta,
				dr.Score)
			if len(dr.Flags) > 0 {
				fmt.Fprintf(&sb, "  [%s]", strings.Join(dr.Flags, ", "))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	for _, line := range sum.Lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if len(res.Shopping.Items) > 0 {
		sb.WriteString("\nShopping list:\n")
		for _, item := range res.Shopping.Items {
			fmt.Fprintf(&sb, "- %s: %g %s\n", item.Name, item.Quantity, item.Unit)
		}
	}
	return sb.String()
}
