// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileStatus is the recorded outcome for one file in a conversion run.
type FileStatus string

const (
	FileConverted FileStatus = "converted"
	FileSkipped   FileStatus = "skipped"
	FileFailed    FileStatus = "failed"
)

// FileRecord is the per-file entry of a conversion run.
// Per prd002-run-history R1.2.
type FileRecord struct {
	// SourcePath is the file's path relative to the source root.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// TargetPath is the written file's path relative to the target root.
	// Empty when the file failed.
	TargetPath string `json:"target_path,omitempty" yaml:"target_path,omitempty"`

	// SourceHash is the truncated SHA-256 of the source content.
	SourceHash string `json:"source_hash" yaml:"source_hash"`

	// Status records the outcome.
	Status FileStatus `json:"status" yaml:"status"`

	// Reason carries the failure message for failed files.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// RunRecord is one conversion run as recorded in the history ledger.
// Per prd002-run-history R1.1.
type RunRecord struct {
	Direction Direction    `json:"direction" yaml:"direction"`
	FromDir   string       `json:"from_dir" yaml:"from_dir"`
	ToDir     string       `json:"to_dir" yaml:"to_dir"`
	StartedAt time.Time    `json:"started_at" yaml:"started_at"`
	Converted int          `json:"converted" yaml:"converted"`
	Skipped   int          `json:"skipped" yaml:"skipped"`
	Failed    int          `json:"failed" yaml:"failed"`
	Files     []FileRecord `json:"files,omitempty" yaml:"files,omitempty"`
}
