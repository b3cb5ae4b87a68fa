// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/example-docs/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded generation runs",
	Long: `History reads the run database written by generate when history_db
(or --history-db) is set. Use subcommands to list runs, follow the code
ratio of one example across runs, or export everything.`,
}

// --- runs subcommand ---

var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the most recent runs",
	RunE:  runHistoryRuns,
}

func runHistoryRuns(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		return err
	}
	writeRuns(os.Stdout, runs)
	return nil
}

func writeRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-20s  %8s  %8s  %10s  %7s  %8s\n",
		"Run", "Started", "Elapsed", "Complete", "Incomplete", "Skipped", "Warnings")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %8s  %8d  %10d  %7d  %8d\n",
			r.ID, r.StartedAt.Format(time.DateTime), r.Elapsed.Round(time.Millisecond),
			r.Complete, r.Incomplete, r.Skipped, r.Warnings)
	}
}

// --- trend subcommand ---

var historyTrendCmd = &cobra.Command{
	Use:   "trend [title]",
	Short: "Show the code ratio of one example across runs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistoryTrend,
}

func runHistoryTrend(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	title := strings.Join(args, " ")
	entries, err := store.Trend(context.Background(), title, limit)
	if err != nil {
		return err
	}
	writeTrend(os.Stdout, title, entries)
	return nil
}

func writeTrend(w io.Writer, title string, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No runs recorded for %q.\n", title)
		return
	}

	fmt.Fprintf(w, "%-20s  %-12s  %-10s  %s\n", "Started", "Category", "Status", "Ratio")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, e := range entries {
		ratio := "-"
		if e.CodeRatio > 0 {
			ratio = fmt.Sprintf("%.1fx", e.CodeRatio)
		}
		fmt.Fprintf(w, "%-20s  %-12s  %-10s  %s\n",
			e.StartedAt.Format(time.DateTime), e.Category, e.Status, ratio)
	}
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs and their examples to YAML or JSON on stdout",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	encoding, _ := cmd.Flags().GetString("encoding")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	switch encoding {
	case "yaml", "":
		return store.ExportYAML(context.Background(), os.Stdout, limit)
	case "json":
		return store.ExportJSON(context.Background(), os.Stdout, limit)
	default:
		return fmt.Errorf("unsupported encoding %q: use yaml or json", encoding)
	}
}

// --- shared helpers ---

func openHistory() (*history.Store, error) {
	path := viper.GetString("history_db")
	if path == "" {
		return nil, fmt.Errorf("no history database configured: set history_db or pass --history-db")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("history database %s: %w", path, err)
	}
	return history.Open(path)
}

func init() {
	historyCmd.PersistentFlags().Int("limit", 0, "maximum runs or entries (0 = default of 20)")
	historyExportCmd.Flags().String("encoding", "yaml", "export encoding: yaml or json")

	historyCmd.AddCommand(historyRunsCmd)
	historyCmd.AddCommand(historyTrendCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
