package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mealplanner/history"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded planning runs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE:  runHistoryList,
	}
	list.Flags().IntP("limit", "l", 20, "Max results")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the stored result of one run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}

	cmd.AddCommand(list, show)
	rootCmd.AddCommand(cmd)
}

func openHistory() (*history.SQLiteStore, error) {
	if cfg.HistoryDBPath == "" {
		return nil, fmt.Errorf("no history database: set --history-db or $HISTORY_DB_PATH")
	}
	return history.NewSQLiteStore(cfg.HistoryDBPath)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openHistory()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tLABEL\tSTRATEGY\tSCORE\tFLAGS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Label, e.Strategy, e.AverageScore, strings.Join(e.GlobalFlags, ","))
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	s, err := openHistory()
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(e.Payload, &v); err != nil {
		return fmt.Errorf("decode stored run: %w", err)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
