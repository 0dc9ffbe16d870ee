package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/ruler/pkg/types"
)

var c2gCmd = &cobra.Command{
	Use:   "c2g",
	Short: "Convert Cursor rules to GitHub Copilot instructions",
	Long: `c2g reads .mdc and .md rule files from the source directory (default
.cursor/rules), converts their frontmatter to the Copilot instructions
convention, and writes .instructions.md files into the target directory
(default .github/instructions), preserving nested paths.

A glob list in globs becomes a comma-joined applyTo; alwaysApply: true
becomes applyTo: "**". Files with no frontmatter are copied through
unchanged. A file that fails to parse is reported as failed and the rest of
the batch still converts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, types.CursorToCopilot)
	},
}

func init() {
	addConvertFlags(c2gCmd)
	rootCmd.AddCommand(c2gCmd)
}
