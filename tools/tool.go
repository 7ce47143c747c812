// Package tools exposes planning operations as named tools with JSON schemas,
// so they can be invoked with a JSON object input from a Lambda or an agent.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealplanner"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

type Call struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// toMap round-trips v through JSON to keep tool outputs uniform.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// profileFromInput reads the "profile" object of a tool input.
func profileFromInput(input map[string]any) (mealplanner.UserHealthProfile, error) {
	raw, ok := input["profile"]
	if !ok {
		return mealplanner.UserHealthProfile{}, fmt.Errorf("%w: missing profile", mealplanner.ErrInvalidProfile)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return mealplanner.UserHealthProfile{}, err
	}
	return mealplanner.ParseProfile(b)
}

func profileSchema() *jsonschema.Schema {
	minTarget := 0.0
	minMeals := 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"diet_type":            {Type: "string"},
			"daily_calorie_target": {Type: "number", Minimum: &minTarget},
			"protein_target_g":     {Type: "number", Minimum: &minTarget},
			"carb_target_g":        {Type: "number", Minimum: &minTarget},
			"fat_target_g":         {Type: "number", Minimum: &minTarget},
			"meals_per_day":        {Type: "integer", Minimum: &minMeals},
			"allergies":            {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"dislikes":             {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"health_notes":         {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

func macroSchema() *jsonschema.Schema {
	minVal := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"calories":  {Type: "number", Minimum: &minVal},
			"protein_g": {Type: "number", Minimum: &minVal},
			"carbs_g":   {Type: "number", Minimum: &minVal},
			"fat_g":     {Type: "number", Minimum: &minVal},
		},
		Required: []string{"calories", "protein_g", "carbs_g", "fat_g"},
	}
}
