// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ruler/internal/history"
	"github.com/pdiddy/ruler/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded conversion runs",
	Long: `History reads the run ledger that c2g and g2c write after each
conversion. Use subcommands to list past runs, show failed files, or prune
old entries.`,
}

// --- runs subcommand ---

var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded conversion runs, newest first",
	RunE:  runHistoryRuns,
}

func runHistoryRuns(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := historyOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	runs, err := store.Runs(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-4s  %-9s  %-7s  %-6s\n",
		"ID", "Started", "Dir", "Converted", "Skipped", "Failed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 60))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-4s  %-9d  %-7d  %-6d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Direction,
			r.Converted, r.Skipped, r.Failed)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// --- failures subcommand ---

var historyFailuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "List failed file conversions, newest first",
	RunE:  runHistoryFailures,
}

func runHistoryFailures(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := historyOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	failures, err := store.Failures(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(failures)
	}

	if len(failures) == 0 {
		fmt.Println("No failures recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-4s  %-30s  %s\n",
		"Run", "Started", "Dir", "File", "Reason")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, f := range failures {
		file := f.SourcePath
		if len(file) > 30 {
			file = file[:27] + "..."
		}
		reason := f.Reason
		if len(reason) > 40 {
			reason = reason[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-4s  %-30s  %s\n",
			f.RunID, f.StartedAt.Format("2006-01-02 15:04:05"), f.Direction, file, reason)
	}
	fmt.Fprintf(os.Stdout, "\n%d failures\n", len(failures))
	return nil
}

// --- prune subcommand ---

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest runs from the ledger",
	RunE:  runHistoryPrune,
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetInt("keep")
	if keep < 0 {
		return fmt.Errorf("--keep must be zero or more, got %d", keep)
	}

	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(context.Background(), keep)
	if err != nil {
		return err
	}
	fmt.Printf("Pruned %d run(s); kept the newest %d\n", removed, keep)
	return nil
}

// --- shared helpers ---

func historyOptsFromFlags(cmd *cobra.Command) (history.QueryOptions, error) {
	direction, _ := cmd.Flags().GetString("direction")
	switch direction {
	case "", string(types.CursorToCopilot), string(types.CopilotToCursor):
	default:
		return history.QueryOptions{}, fmt.Errorf("unknown direction %q: use c2g or g2c", direction)
	}
	limit, _ := cmd.Flags().GetInt("limit")
	return history.QueryOptions{
		Direction: types.Direction(direction),
		Limit:     limit,
	}, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("history-dir", "", "directory containing the run ledger (default .ruler)")

	historyRunsCmd.Flags().String("direction", "", "filter by direction: c2g or g2c")
	historyRunsCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")
	historyRunsCmd.Flags().Bool("json", false, "output as JSON")

	historyFailuresCmd.Flags().String("direction", "", "filter by direction: c2g or g2c")
	historyFailuresCmd.Flags().Int("limit", 0, "maximum failures to list (0 = use default)")
	historyFailuresCmd.Flags().Bool("json", false, "output as JSON")

	historyPruneCmd.Flags().Int("keep", 10, "number of newest runs to keep")

	historyCmd.AddCommand(historyRunsCmd)
	historyCmd.AddCommand(historyFailuresCmd)
	historyCmd.AddCommand(historyPruneCmd)

	rootCmd.AddCommand(historyCmd)
}
