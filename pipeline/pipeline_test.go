package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"

	"mealplanner"
	"mealplanner/health"
	"mealplanner/history"
	"mealplanner/nutrition"
	"mealplanner/pipeline"
	"mealplanner/planner"
	"mealplanner/shopping"
)

func scenarioProfile() mealplanner.UserHealthProfile {
	return mealplanner.UserHealthProfile{
		DietType:           "balanced",
		DailyCalorieTarget: 2200,
		ProteinTargetG:     100,
		CarbTargetG:        230,
		FatTargetG:         70,
		MealsPerDay:        2,
		Allergies:          []string{"peanut"},
	}
}

func scenarioPool() []nutrition.Meal {
	a := nutrition.MacroBundle{Calories: 800, ProteinG: 40, CarbsG: 60, FatG: 20}
	b := nutrition.MacroBundle{Calories: 900, ProteinG: 45, CarbsG: 70, FatG: 25}
	c := nutrition.MacroBundle{Calories: 500, ProteinG: 20, CarbsG: 50, FatG: 10}
	return []nutrition.Meal{
		{ID: "a", Name: "Meal A", Servings: 1, MacrosPerServing: &a, Ingredients: []nutrition.Ingredient{
			{Name: "chicken breast", Quantity: 200, Unit: nutrition.UnitGram},
		}},
		{ID: "b", Name: "Meal B", Servings: 1, MacrosPerServing: &b, Ingredients: []nutrition.Ingredient{
			{Name: "peanut butter", Quantity: 30, Unit: nutrition.UnitGram},
			{Name: "bread", Quantity: 2, Unit: nutrition.UnitPiece},
		}},
		{ID: "c", Name: "Meal C", Servings: 1, MacrosPerServing: &c, Ingredients: []nutrition.Ingredient{
			{Name: "rice", Quantity: 150, Unit: nutrition.UnitGram},
		}},
	}
}

type fakeRecorder struct {
	entries []history.Entry
	err     error
}

func (f *fakeRecorder) Save(ctx context.Context, e history.Entry) (history.Entry, error) {
	if f.err != nil {
		return history.Entry{}, f.err
	}
	f.entries = append(f.entries, e)
	return e, nil
}

type failingPricing struct{}

func (failingPricing) Estimate(context.Context, shopping.List) (shopping.Estimate, error) {
	return shopping.Estimate{}, errors.New("price service unavailable")
}

func TestPipeline_Run(t *testing.T) {
	var buf bytes.Buffer
	logger := mealplanner.NewFileRunLogger(&buf)
	recorder := &fakeRecorder{}
	prices := shopping.NewPriceTable("INR", map[string]shopping.Price{
		"chicken breast": {Amount: 30, Unit: nutrition.UnitGram},
		"peanut butter":  {Amount: 40, Unit: nutrition.UnitGram},
		"bread":          {Amount: 5, Unit: nutrition.UnitPiece},
	})

	p := pipeline.New(scenarioPool(),
		pipeline.WithPricing(prices),
		pipeline.WithBudget(500, "INR"),
		pipeline.WithRunLogger(logger),
		pipeline.WithRecorder(recorder),
	)

	res, err := p.Run(context.Background(), scenarioProfile())
	must.NoError(t, err)

	should.NotEmpty(t, res.RunID)
	should.Equal(t, "static", res.Strategy)
	must.True(t, res.Plan.IsValid(2))
	must.Len(t, res.Report.DailyReports, 7)
	should.Equal(t, 60.0, res.Report.AverageScore)
	should.Contains(t, res.Report.GlobalFlags, health.FlagAllergyRisk)
	should.Contains(t, res.Report.GlobalFlags, health.FlagUnderCalories)

	should.Equal(t, []shopping.Item{
		{Name: "chicken breast", Quantity: 1400, Unit: nutrition.UnitGram},
		{Name: "peanut butter", Quantity: 210, Unit: nutrition.UnitGram},
		{Name: "bread", Quantity: 14, Unit: nutrition.UnitPiece},
	}, res.Shopping.Items)

	must.NotNil(t, res.Estimate)
	// 1400g*30/100 + 210g*40/100 + 14*5
	should.InDelta(t, 420+84+70, res.Estimate.Total, 1e-9)
	must.NotNil(t, res.Budget.WithinBudget)
	should.False(t, *res.Budget.WithinBudget)
	should.InDelta(t, 74.0, *res.Budget.AmountOverBudget, 1e-9)

	must.Len(t, recorder.entries, 1)
	should.Equal(t, res.RunID, recorder.entries[0].ID)
	should.Equal(t, 60.0, recorder.entries[0].AverageScore)
	var payload pipeline.Result
	must.NoError(t, json.Unmarshal(recorder.entries[0].Payload, &payload))
	should.Equal(t, res.RunID, payload.RunID)

	must.NoError(t, logger.Flush())
	var doc struct {
		PlanningRun struct {
			Stages []mealplanner.StageLog `json:"stages"`
		} `json:"planning_run"`
	}
	must.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	var stages []string
	for _, s := range doc.PlanningRun.Stages {
		stages = append(stages, s.Stage)
		should.Equal(t, res.RunID, s.RunID)
	}
	should.Equal(t, []string{"plan", "score", "shopping", "pricing", "history"}, stages)
}

func TestPipeline_Run_Rotation(t *testing.T) {
	p := pipeline.New(scenarioPool(), pipeline.WithStrategy(planner.RotationStrategy{}))

	res, err := p.Run(context.Background(), scenarioProfile())
	must.NoError(t, err)

	should.Equal(t, "rotation", res.Strategy)
	should.Equal(t, "a", res.Plan.Days[0].Meals[0].ID)
	should.Equal(t, "c", res.Plan.Days[1].Meals[0].ID)
	should.Nil(t, res.Estimate)
	should.Nil(t, res.Budget.WithinBudget, "no estimate means no budget verdict")
}

func TestPipeline_Run_Errors(t *testing.T) {
	t.Run("insufficient meals propagate unchanged", func(t *testing.T) {
		profile := scenarioProfile()
		profile.MealsPerDay = 4

		_, err := pipeline.New(scenarioPool()).Run(context.Background(), profile)

		var ime *planner.InsufficientMealsError
		must.ErrorAs(t, err, &ime)
		should.Equal(t, 4, ime.Required)
		should.Equal(t, 3, ime.Available)
	})

	t.Run("invalid profile", func(t *testing.T) {
		profile := scenarioProfile()
		profile.MealsPerDay = 0

		_, err := pipeline.New(scenarioPool()).Run(context.Background(), profile)
		should.ErrorIs(t, err, mealplanner.ErrInvalidProfile)
	})

	t.Run("pricing failure", func(t *testing.T) {
		_, err := pipeline.New(scenarioPool(), pipeline.WithPricing(failingPricing{})).Run(context.Background(), scenarioProfile())
		must.Error(t, err)
		should.Contains(t, err.Error(), "price service unavailable")
	})

	t.Run("history failure", func(t *testing.T) {
		rec := &fakeRecorder{err: errors.New("disk full")}
		_, err := pipeline.New(scenarioPool(), pipeline.WithRecorder(rec)).Run(context.Background(), scenarioProfile())
		must.Error(t, err)
		should.Contains(t, err.Error(), "record run")
	})
}

func TestPipeline_Run_Deterministic(t *testing.T) {
	p := pipeline.New(scenarioPool())

	first, err := p.Run(context.Background(), scenarioProfile())
	must.NoError(t, err)
	second, err := p.Run(context.Background(), scenarioProfile())
	must.NoError(t, err)

	should.NotEqual(t, first.RunID, second.RunID)
	should.Equal(t, first.Plan, second.Plan)
	should.Equal(t, first.Report, second.Report)
}
