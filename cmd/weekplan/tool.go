package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mealplanner/tools"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tool <name> [json-input]",
		Short: "Invoke a planning tool with a JSON input",
		Long:  "Invokes catalog_get, week_plan or shopping_estimate. Without a name, lists the available tools.",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runTool,
	}
	rootCmd.AddCommand(cmd)
}

func runTool(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.cleanup(); cerr != nil {
			slog.Error("SETUP: Failed to release resources", "error", cerr)
		}
	}()

	registry, err := tools.NewRegistry(env.catalog, env.source, env.runner)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, t := range registry.GetTools() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", t.Name(), t.Description())
		}
		return nil
	}

	tool, err := registry.GetTool(args[0])
	if err != nil {
		return err
	}
	input := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &input); err != nil {
			return fmt.Errorf("decode tool input: %w", err)
		}
	}

	output, err := tool.Run(ctx, input)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
