package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"

	"mealplanner"
	"mealplanner/report"
	"mealplanner/slack"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan and score a week for the configured profile",
		RunE:  runPlan,
	}

	cmd.Flags().Bool("json", false, "Print the full run result as JSON")
	cmd.Flags().Bool("dump", false, "Dump the run result to stderr")
	cmd.Flags().Bool("slack", false, "Post the summary to $SLACK_WEBHOOK_URL")

	rootCmd.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	dump, _ := cmd.Flags().GetBool("dump")
	postSlack, _ := cmd.Flags().GetBool("slack")
	ctx := cmd.Context()

	profile, err := loadProfile(ctx)
	if err != nil {
		return err
	}

	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.cleanup(); cerr != nil {
			slog.Error("SETUP: Failed to release resources", "error", cerr)
		}
	}()

	res, err := env.runner.Run(ctx, profile)
	if err != nil {
		slog.Error("FAILURE: Planning run failed", "error", err)
		return err
	}

	if dump {
		mealplanner.Dump(os.Stderr, res)
	}

	if asJSON {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), report.Text(res))
	}

	if postSlack {
		var slackCfg mealplanner.SlackConfig
		if err := envdecode.Decode(&slackCfg); err != nil {
			return fmt.Errorf("SETUP: failed to decode slack config: %w", err)
		}
		if slackCfg.WebhookURL == "" {
			return fmt.Errorf("SLACK_WEBHOOK_URL is not set")
		}
		client := slack.NewClient(slackCfg.WebhookURL, http.DefaultClient)
		if err := client.PostReport(ctx, slackCfg.Channel, report.Summarize(res)); err != nil {
			slog.Error("Failed to post result to Slack", "error", err)
			return err
		}
	}
	return nil
}
