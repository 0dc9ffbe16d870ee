// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Conventional directories, relative to the repository the rules belong to.
const (
	// DefaultCursorDir is where Cursor looks for .mdc rules.
	DefaultCursorDir = ".cursor/rules"

	// DefaultCopilotDir is where Copilot looks for .instructions.md files.
	DefaultCopilotDir = ".github/instructions"

	// DefaultHistoryDir holds the run-history database.
	DefaultHistoryDir = ".ruler"
)

// DefaultSourceDir returns the conventional source directory for d.
func (d Direction) DefaultSourceDir() string {
	if d == CopilotToCursor {
		return DefaultCopilotDir
	}
	return DefaultCursorDir
}

// DefaultTargetDir returns the conventional target directory for d.
func (d Direction) DefaultTargetDir() string {
	if d == CopilotToCursor {
		return DefaultCursorDir
	}
	return DefaultCopilotDir
}

// ConvertConfig holds settings for one conversion run.
// Per prd001-rules-conversion R6.1-R6.4.
type ConvertConfig struct {
	// Direction selects the source and target conventions.
	Direction Direction `json:"direction" yaml:"direction"`

	// FromDir is the directory scanned for source rule files.
	FromDir string `json:"from_dir" yaml:"from_dir"`

	// ToDir is the directory converted files are written under.
	ToDir string `json:"to_dir" yaml:"to_dir"`

	// Include restricts conversion to files whose relative path matches at
	// least one glob pattern. Empty means every discovered file.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// Exclude drops files whose relative path matches any pattern.
	// Exclusions win over inclusions.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// DryRun reports what would be written without writing anything.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// SkipUnchanged skips files whose content hash matches the last
	// successful conversion recorded in the history ledger.
	SkipUnchanged bool `json:"skip_unchanged" yaml:"skip_unchanged"`
}

// HistoryConfig holds settings for the run-history ledger.
// Per prd002-run-history R1.3.
type HistoryConfig struct {
	// Dir is the directory containing history.db.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of rows returned by
	// history queries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
