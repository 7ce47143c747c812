package report_test

import (
	"testing"

	should "github.com/stretchr/testify/assert"

	"mealplanner"
	"mealplanner/health"
	"mealplanner/nutrition"
	"mealplanner/pipeline"
	"mealplanner/report"
	"mealplanner/shopping"
)

func sampleResult() pipeline.Result {
	macros := nutrition.MacroBundle{Calories: 1700, ProteinG: 85, CarbsG: 130, FatG: 45}
	meal := nutrition.Meal{ID: "a", Name: "Dal Rice", Servings: 1, MacrosPerServing: &macros}
	plan := mealplanner.WeekPlan{Days: []mealplanner.DayPlan{{DayName: "Monday", Meals: []nutrition.Meal{meal}}}}
	profile := mealplanner.UserHealthProfile{DietType: "vegetarian", MealsPerDay: 1, DailyCalorieTarget: 2200, ProteinTargetG: 100, CarbTargetG: 230, FatTargetG: 70}
	budget := 500.0
	est := shopping.Estimate{Currency: "INR", Total: 420}

	return pipeline.Result{
		RunID:    "01TESTRUN",
		Strategy: "static",
		Profile:  profile,
		Plan:     plan,
		Report: health.WeeklyReport{
			DailyReports:    []health.DailyReport{health.ScoreDay(plan.Days[0], profile)},
			AverageScore:    60,
			GlobalFlags:     []string{"under_calories"},
			Recommendations: []string{"Limit sodium to <2300mg per day"},
		},
		Shopping: shopping.List{Items: []shopping.Item{{Name: "rice", Quantity: 700, Unit: nutrition.UnitGram}}},
		Estimate: &est,
		Budget:   shopping.EvaluateBudget(420, &budget, "INR"),
	}
}

func TestSummarize(t *testing.T) {
	s := report.Summarize(sampleResult())

	should.Equal(t, "Weekly meal plan (vegetarian, 1 meals/day)", s.Title)
	should.Equal(t, 60.0, s.Score)
	should.Equal(t, []string{
		"Average health score: 60.0/100",
		"Flags: under_calories",
		"Estimated shopping cost: INR 420.00 for 1 items (80.00 under budget)",
		"Limit sodium to <2300mg per day",
	}, s.Lines)
}

func TestSummarize_NoEstimate(t *testing.T) {
	res := sampleResult()
	res.Estimate = nil
	res.Report.GlobalFlags = nil
	res.Report.Recommendations = nil

	should.Equal(t, []string{"Average health score: 60.0/100"}, report.Summarize(res).Lines)
}

func TestText(t *testing.T) {
	out := report.Text(sampleResult())

	should.Contains(t, out, "Run 01TESTRUN, strategy static")
	should.Contains(t, out, "Monday:   Dal Rice")
	should.Contains(t, out, "1700 kcal (-500)")
	should.Contains(t, out, "score 60")
	should.Contains(t, out, "- rice: 700 g")
}
