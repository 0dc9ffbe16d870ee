// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ruler/internal/convert"
	"github.com/pdiddy/ruler/internal/history"
	"github.com/pdiddy/ruler/internal/logging"
	"github.com/pdiddy/ruler/pkg/types"
)

// addConvertFlags declares the flags shared by the c2g and g2c commands.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "source directory (default per direction)")
	cmd.Flags().StringP("to", "t", "", "target directory (default per direction)")
	cmd.Flags().StringSlice("include", nil, "convert only relative paths matching these globs")
	cmd.Flags().StringSlice("exclude", nil, "skip relative paths matching these globs")
	cmd.Flags().Bool("dry-run", false, "report what would be converted without writing anything")
	cmd.Flags().Bool("skip-unchanged", false, "skip files unchanged since the last recorded run")
	cmd.Flags().Bool("no-history", false, "do not record this run in the history ledger")
}

// runConversion drives one batch conversion in the given direction and
// records it in the history ledger.
func runConversion(cmd *cobra.Command, d types.Direction) error {
	logger := logging.GetLogger("cli")
	cfg := convertConfig(cmd, d)
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg.SkipUnchanged && noHistory {
		return fmt.Errorf("--skip-unchanged needs the history ledger; drop --no-history")
	}

	var hist *history.Store
	if !noHistory {
		store, err := history.Open(historyConfig(cmd))
		if err != nil {
			if cfg.SkipUnchanged {
				return fmt.Errorf("opening history ledger: %w", err)
			}
			logger.Warn().Err(err).Msg("history ledger unavailable; run will not be recorded")
		} else {
			hist = store
			defer store.Close()
		}
	}

	started := time.Now().UTC()
	result, err := convert.Run(context.Background(), cfg, hist, os.Stdout)
	if err != nil {
		return err
	}

	if hist != nil && !cfg.DryRun && result.Total() > 0 {
		if _, err := hist.RecordRun(context.Background(), result.Record(cfg, started)); err != nil {
			logger.Warn().Err(err).Msg("recording run failed")
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// convertConfig resolves the run configuration: explicit flags win, then
// config file and environment, then the convention defaults for the
// direction.
func convertConfig(cmd *cobra.Command, d types.Direction) types.ConvertConfig {
	fromDir, _ := cmd.Flags().GetString("from")
	if fromDir == "" {
		fromDir = conventionDir(d.Source())
	}
	if fromDir == "" {
		fromDir = d.DefaultSourceDir()
	}
	toDir, _ := cmd.Flags().GetString("to")
	if toDir == "" {
		toDir = conventionDir(d.Target())
	}
	if toDir == "" {
		toDir = d.DefaultTargetDir()
	}
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipUnchanged, _ := cmd.Flags().GetBool("skip-unchanged")

	return types.ConvertConfig{
		Direction:     d,
		FromDir:       fromDir,
		ToDir:         toDir,
		Include:       include,
		Exclude:       exclude,
		DryRun:        dryRun,
		SkipUnchanged: skipUnchanged,
	}
}

// conventionDir returns the directory configured for a convention through
// the config file or environment, or the empty string when none is set.
func conventionDir(conv types.Convention) string {
	if conv == types.ConventionCopilot {
		return viper.GetString("instructions_dir")
	}
	return viper.GetString("cursor_rules_dir")
}

// historyConfig resolves the ledger location: the --history-dir flag where
// the command declares one, otherwise config, environment, or .ruler.
func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	dir, _ := cmd.Flags().GetString("history-dir")
	if dir == "" {
		dir = viper.GetString("history_dir")
	}
	return types.HistoryConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("max_results"),
	}
}
