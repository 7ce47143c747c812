package tools

import (
	"fmt"
	"sort"

	"mealplanner/nutrition"
	"mealplanner/pipeline"
	"mealplanner/tools/storage"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a registry serving catalog reads and planning runs.
func NewRegistry(catalog storage.CatalogState, src nutrition.NutrientSource, runner pipeline.Runner) (*Registry, error) {
	if catalog == nil || src == nil || runner == nil {
		return nil, fmt.Errorf("registry needs a catalog, a nutrient source and a runner")
	}
	tools := map[string]Tool{
		"catalog_get":       NewCatalogGet(catalog, src),
		"week_plan":         NewWeekPlan(runner),
		"shopping_estimate": NewShoppingEstimate(runner),
	}

	registry := Registry(tools)
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
