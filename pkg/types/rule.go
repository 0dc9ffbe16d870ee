// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ruler CLI.
// Implements: prd001-rules-conversion (RuleDocument, R3.1-R3.4);
//
//	prd002-run-history (RunRecord, FileRecord, R1.1-R1.2).
package types

// UniversalPattern is the glob token that matches every file. A Copilot
// applyTo equal to this token and a Cursor alwaysApply of true express the
// same intent; conversion reconciles the two representations.
const UniversalPattern = "**"

// Convention identifies one of the two rule-file formats.
type Convention string

const (
	// ConventionCursor is the Cursor rules format: .mdc files whose
	// frontmatter carries description, globs, and alwaysApply.
	ConventionCursor Convention = "cursor"

	// ConventionCopilot is the GitHub Copilot instructions format:
	// .instructions.md files whose frontmatter carries description and a
	// comma-joined applyTo.
	ConventionCopilot Convention = "copilot"
)

// Direction selects which convention is read and which is written.
type Direction string

const (
	CursorToCopilot Direction = "c2g"
	CopilotToCursor Direction = "g2c"
)

// Source returns the convention read by this direction.
func (d Direction) Source() Convention {
	if d == CopilotToCursor {
		return ConventionCopilot
	}
	return ConventionCursor
}

// Target returns the convention written by this direction.
func (d Direction) Target() Convention {
	if d == CopilotToCursor {
		return ConventionCursor
	}
	return ConventionCopilot
}

// RuleDocument is the convention-neutral form of a rule file. Per
// prd001-rules-conversion R3.1-R3.4: both conventions parse into this
// shape, and either convention serializes from it.
type RuleDocument struct {
	// Description is the rule's free-text summary. A nil pointer means the
	// field was absent; a pointer to "" means it was present with no
	// value. The two are distinct and both survive conversion.
	Description *string

	// Patterns is the ordered list of glob patterns, as written in the
	// source. Possibly empty.
	Patterns []string

	// AlwaysApply marks a rule that applies to every file regardless of
	// Patterns.
	AlwaysApply bool

	// Body is the markdown content after the metadata block, preserved
	// byte-for-byte.
	Body string
}
