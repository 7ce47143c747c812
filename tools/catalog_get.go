package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealplanner/catalog"
	"mealplanner/nutrition"
	"mealplanner/tools/storage"
)

type CatalogGet struct {
	state storage.CatalogState
	src   nutrition.NutrientSource
}

func NewCatalogGet(state storage.CatalogState, src nutrition.NutrientSource) *CatalogGet {
	return &CatalogGet{state: state, src: src}
}

func (t *CatalogGet) Name() string  { return "catalog_get" }
func (t *CatalogGet) Title() string { return "Get Catalog Meals (with macros)" }
func (t *CatalogGet) Description() string {
	return "Returns catalog meals with per-serving macros, optionally filtered by meal ids."
}

func (t *CatalogGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"ids": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
	}
}

func (t *CatalogGet) OutputSchema() *jsonschema.Schema {
	minQty := 0.0
	minServings := 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"meals": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"id":       {Type: "string"},
						"name":     {Type: "string"},
						"servings": {Type: "integer", Minimum: &minServings},
						"ingredients": {
							Type: "array",
							Items: &jsonschema.Schema{
								Type: "object",
								Properties: map[string]*jsonschema.Schema{
									"name":     {Type: "string"},
									"quantity": {Type: "number", Minimum: &minQty},
									"unit":     {Type: "string", Enum: []any{"g", "ml", "piece"}},
								},
								Required: []string{"name", "quantity", "unit"},
							},
						},
						"macros_per_serving": macroSchema(),
					},
					Required: []string{"id", "name", "servings", "ingredients", "macros_per_serving"},
				},
			},
		},
		Required: []string{"meals"},
	}
}

func (t *CatalogGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	meals, err := catalog.Load(ctx, t.state, t.src)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	raw, _ := input["ids"].([]any)
	if len(raw) > 0 {
		want := make(map[string]bool, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				want[s] = true
			}
		}
		filtered := make([]nutrition.Meal, 0, len(want))
		for _, m := range meals {
			if want[m.ID] {
				filtered = append(filtered, m)
			}
		}
		meals = filtered
	}

	return toMap(struct {
		Meals []nutrition.Meal `json:"meals"`
	}{Meals: meals})
}
