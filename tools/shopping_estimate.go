package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealplanner/pipeline"
)

type ShoppingEstimate struct{ runner pipeline.Runner }

func NewShoppingEstimate(runner pipeline.Runner) *ShoppingEstimate {
	return &ShoppingEstimate{runner: runner}
}

func (t *ShoppingEstimate) Name() string  { return "shopping_estimate" }
func (t *ShoppingEstimate) Title() string { return "Estimate Weekly Shopping" }
func (t *ShoppingEstimate) Description() string {
	return "Plans a week for the profile and returns the aggregated shopping list, its estimated cost and the budget verdict."
}

func (t *ShoppingEstimate) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"profile": profileSchema(),
		},
		Required: []string{"profile"},
	}
}

func (t *ShoppingEstimate) OutputSchema() *jsonschema.Schema {
	minQty := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"shopping_list": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"items": {
						Type: "array",
						Items: &jsonschema.Schema{
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"name":     {Type: "string"},
								"quantity": {Type: "number", Minimum: &minQty},
								"unit":     {Type: "string"},
							},
							Required: []string{"name", "quantity", "unit"},
						},
					},
				},
				Required: []string{"items"},
			},
			"estimate": {Type: "object"},
			"budget":   {Type: "object"},
		},
		Required: []string{"shopping_list", "budget"},
	}
}

func (t *ShoppingEstimate) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	profile, err := profileFromInput(input)
	if err != nil {
		return nil, err
	}
	res, err := t.runner.Run(ctx, profile)
	if err != nil {
		return nil, err
	}
	return toMap(struct {
		Shopping any `json:"shopping_list"`
		Estimate any `json:"estimate,omitempty"`
		Budget   any `json:"budget"`
	}{Shopping: res.Shopping, Estimate: res.Estimate, Budget: res.Budget})
}
