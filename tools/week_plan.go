package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealplanner/pipeline"
)

type WeekPlan struct{ runner pipeline.Runner }

func NewWeekPlan(runner pipeline.Runner) *WeekPlan { return &WeekPlan{runner: runner} }

func (t *WeekPlan) Name() string  { return "week_plan" }
func (t *WeekPlan) Title() string { return "Plan and Score a Week" }
func (t *WeekPlan) Description() string {
	return "Builds a seven-day plan from the catalog for the given profile and returns it with its weekly health report."
}

func (t *WeekPlan) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"profile": profileSchema(),
		},
		Required: []string{"profile"},
	}
}

func (t *WeekPlan) OutputSchema() *jsonschema.Schema {
	minScore, maxScore := 0.0, 100.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"run_id": {Type: "string"},
			"plan": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"days": {Type: "array", MinItems: ptr(7), MaxItems: ptr(7)},
				},
				Required: []string{"days"},
			},
			"report": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"daily_reports": {Type: "array"},
					"average_score": {Type: "number", Minimum: &minScore, Maximum: &maxScore},
					"global_flags":  {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
				},
				Required: []string{"daily_reports", "average_score", "global_flags"},
			},
		},
		Required: []string{"run_id", "plan", "report"},
	}
}

func (t *WeekPlan) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	profile, err := profileFromInput(input)
	if err != nil {
		return nil, err
	}
	res, err := t.runner.Run(ctx, profile)
	if err != nil {
		return nil, err
	}
	return toMap(struct {
		RunID  string `json:"run_id"`
		Plan   any    `json:"plan"`
		Report any    `json:"report"`
	}{RunID: res.RunID, Plan: res.Plan, Report: res.Report})
}

func ptr(n int) *int { return &n }
