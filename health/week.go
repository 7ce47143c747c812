package health

import "mealplanner"

// WeeklyReport summarizes every day of a WeekPlan.
type WeeklyReport struct {
	DailyReports    []DailyReport `json:"daily_reports"`
	AverageScore    float64       `json:"average_score"`
	GlobalFlags     []string      `json:"global_flags"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

// ScoreWeek scores each day in order. AverageScore is the unrounded mean of the
// daily scores and GlobalFlags the sorted union of their flags.
func ScoreWeek(plan mealplanner.WeekPlan, profile mealplanner.UserHealthProfile) WeeklyReport {
	report := WeeklyReport{
		DailyReports:    make([]DailyReport, 0, len(plan.Days)),
		Recommendations: Recommendations(profile),
	}

	flags := make(map[string]bool)
	sum := 0
	for _, day := range plan.Days {
		dr := ScoreDay(day, profile)
		report.DailyReports = append(report.DailyReports, dr)
		sum += dr.Score
		for _, f := range dr.Flags {
			flags[f] = true
		}
	}

	if n := len(report.DailyReports); n > 0 {
		report.AverageScore = float64(sum) / float64(n)
	}
	report.GlobalFlags = sortedFlags(flags)

	return report
}

// FlagCounts returns how many days raised each flag.
func (w WeeklyReport) FlagCounts() map[string]int {
	counts := make(map[string]int)
	for _, dr := range w.DailyReports {
		for _, f := range dr.Flags {
			counts[f]++
		}
	}
	return counts
}
