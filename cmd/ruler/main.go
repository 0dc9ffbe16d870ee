// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ruler CLI.
// Implements: prd001-rules-conversion, prd002-run-history (CLI surface).
// See docs/ARCHITECTURE § CLI, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ruler/internal/logging"
	"github.com/pdiddy/ruler/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the ruler CLI.
var rootCmd = &cobra.Command{
	Use:     "ruler",
	Version: version,
	Short:   "Convert between Cursor rules and GitHub Copilot instructions",
	Long: `ruler converts AI assistant rule files between the Cursor convention
(.cursor/rules/*.mdc with description, globs, and alwaysApply) and the
GitHub Copilot convention (.github/instructions/*.instructions.md with
description and applyTo).

Each direction is a subcommand: c2g reads Cursor rules and writes Copilot
instructions; g2c goes the other way. Every run is recorded in a local
ledger, which powers "ruler history" and --skip-unchanged.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")
		logging.Setup(verbosity)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ruler.yaml or ~/.config/ruler/config.yaml)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase diagnostic verbosity (-v info, -vv debug)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ruler")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ruler"))
		}
	}

	viper.SetDefault("history_dir", types.DefaultHistoryDir)
	viper.SetDefault("max_results", 20)

	viper.SetEnvPrefix("RULER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
