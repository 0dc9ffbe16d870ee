package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/ruler/pkg/types"
)

var g2cCmd = &cobra.Command{
	Use:   "g2c",
	Short: "Convert GitHub Copilot instructions to Cursor rules",
	Long: `g2c reads .instructions.md and .md files from the source directory
(default .github/instructions), converts their frontmatter to the Cursor
rules convention, and writes .mdc files into the target directory (default
.cursor/rules), preserving nested paths.

A comma-joined applyTo becomes a globs list; applyTo: "**" becomes
alwaysApply: true. Files with no frontmatter are copied through unchanged.
A file that fails to parse is reported as failed and the rest of the batch
still converts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, types.CopilotToCursor)
	},
}

func init() {
	addConvertFlags(g2cCmd)
	rootCmd.AddCommand(g2cCmd)
}
