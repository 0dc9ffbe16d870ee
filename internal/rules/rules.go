// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules converts rule files between the Cursor convention
// (description, globs, alwaysApply) and the Copilot convention (description,
// applyTo). Parsing is tolerant of the field shapes both editors produce;
// rendering is canonical. Bodies pass through byte for byte.
// Implements: prd001-rules-conversion (R2, R3, R4, R7);
//
//	docs/ARCHITECTURE § Conversion Engine.
package rules

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/ruler/internal/frontmatter"
	"github.com/pdiddy/ruler/internal/logging"
	"github.com/pdiddy/ruler/pkg/types"
)

// ParseCursor reads the text of a .mdc rule file into the neutral model.
// Absent metadata yields a model with every field at its zero value and the
// whole input as body.
func ParseCursor(content string) (types.RuleDocument, error) {
	return buildCursor(frontmatter.Split(content))
}

// ParseCopilot reads the text of a .instructions.md file into the neutral
// model. A lone universal pattern is this convention's spelling of "always
// apply", so it comes back as AlwaysApply=true with no explicit patterns.
func ParseCopilot(content string) (types.RuleDocument, error) {
	return buildCopilot(frontmatter.Split(content))
}

func buildCursor(doc frontmatter.Document) (types.RuleDocument, error) {
	out := types.RuleDocument{Body: doc.Body}
	if !doc.HasMeta {
		return out, nil
	}
	meta, err := parseCursorMeta(doc.Meta)
	if err != nil {
		return types.RuleDocument{}, err
	}
	out.Description = meta.Description.ptr()
	out.Patterns = meta.Globs.normalize()
	out.AlwaysApply = meta.AlwaysApply
	warnInvalidPatterns(out.Patterns)
	return out, nil
}

func buildCopilot(doc frontmatter.Document) (types.RuleDocument, error) {
	out := types.RuleDocument{Body: doc.Body}
	if !doc.HasMeta {
		return out, nil
	}
	meta, err := parseCopilotMeta(doc.Meta)
	if err != nil {
		return types.RuleDocument{}, err
	}
	out.Description = meta.Description.ptr()
	patterns := meta.ApplyTo.normalize()
	if len(patterns) == 1 && patterns[0] == types.UniversalPattern {
		out.AlwaysApply = true
	} else {
		out.Patterns = patterns
	}
	warnInvalidPatterns(out.Patterns)
	return out, nil
}

// MapTo reconciles the applicability representation for the target
// convention. Toward Copilot, an always-apply rule collapses to the single
// universal pattern; explicit patterns alongside the flag are discarded,
// since that convention has one field for both ideas. Toward Cursor, a lone
// universal pattern expands back into the boolean flag.
func MapTo(target types.Convention, doc types.RuleDocument) types.RuleDocument {
	switch target {
	case types.ConventionCopilot:
		if doc.AlwaysApply {
			doc.Patterns = []string{types.UniversalPattern}
			doc.AlwaysApply = false
		}
	case types.ConventionCursor:
		if len(doc.Patterns) == 1 && doc.Patterns[0] == types.UniversalPattern {
			doc.Patterns = nil
			doc.AlwaysApply = true
		}
	}
	return doc
}

// RenderCursor serializes the model as a .mdc file. Globs render as a flow
// list of quoted patterns, or as a bare key when there are none; alwaysApply
// is always written explicitly.
func RenderCursor(doc types.RuleDocument) string {
	var b strings.Builder
	writeDescription(&b, doc.Description)
	if len(doc.Patterns) == 0 {
		b.WriteString("globs:\n")
	} else {
		quoted := make([]string, len(doc.Patterns))
		for i, p := range doc.Patterns {
			quoted[i] = fmt.Sprintf("%q", p)
		}
		fmt.Fprintf(&b, "globs: [%s]\n", strings.Join(quoted, ", "))
	}
	fmt.Fprintf(&b, "alwaysApply: %t\n", doc.AlwaysApply)
	return frontmatter.Compose(b.String(), doc.Body)
}

// RenderCopilot serializes the model as a .instructions.md file. Patterns
// join into one comma separated applyTo scalar; an always-apply rule becomes
// the universal pattern.
func RenderCopilot(doc types.RuleDocument) string {
	var b strings.Builder
	writeDescription(&b, doc.Description)
	patterns := doc.Patterns
	if doc.AlwaysApply {
		patterns = []string{types.UniversalPattern}
	}
	if len(patterns) == 0 {
		b.WriteString("applyTo:\n")
	} else {
		fmt.Fprintf(&b, "applyTo: %q\n", strings.Join(patterns, ","))
	}
	return frontmatter.Compose(b.String(), doc.Body)
}

// writeDescription emits the description key. An absent description (nil) is
// omitted; a present-but-empty one renders as a bare key. The two shapes
// survive round trips distinct.
func writeDescription(b *strings.Builder, desc *string) {
	switch {
	case desc == nil:
	case *desc == "":
		b.WriteString("description:\n")
	default:
		fmt.Fprintf(b, "description: %q\n", *desc)
	}
}

// Convert transforms one rule file's text between conventions in the given
// direction. Input with no metadata block passes through unchanged.
func Convert(content string, d types.Direction) (string, error) {
	doc := frontmatter.Split(content)
	if !doc.HasMeta {
		return content, nil
	}
	switch d {
	case types.CursorToCopilot:
		parsed, err := buildCursor(doc)
		if err != nil {
			return "", err
		}
		return RenderCopilot(MapTo(types.ConventionCopilot, parsed)), nil
	case types.CopilotToCursor:
		parsed, err := buildCopilot(doc)
		if err != nil {
			return "", err
		}
		return RenderCursor(MapTo(types.ConventionCursor, parsed)), nil
	default:
		return "", fmt.Errorf("unknown direction %q", d)
	}
}

// warnInvalidPatterns logs patterns that do not parse as globs. Conversion
// still proceeds: both conventions treat patterns as opaque text, so a
// broken glob belongs to the editor, not to us.
func warnInvalidPatterns(patterns []string) {
	if len(patterns) == 0 {
		return
	}
	logger := logging.GetLogger("rules")
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			logger.Debug().Str("pattern", p).Msg("pattern is not a valid glob")
		}
	}
}
