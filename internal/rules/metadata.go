// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ruler/internal/logging"
)

var (
	// ErrMalformedMetadata reports a metadata block that cannot be parsed as
	// key/value structure at all. The surrounding batch keeps going; the
	// error applies to one file.
	ErrMalformedMetadata = errors.New("malformed rule metadata")
	// ErrUnsupportedFieldShape reports a recognized metadata key whose value
	// has a shape neither convention can express, such as a mapping where a
	// pattern list is expected.
	ErrUnsupportedFieldShape = errors.New("unsupported metadata field shape")
)

// cursorMeta holds the classified frontmatter fields of a .mdc rule file.
type cursorMeta struct {
	Description optionalString
	Globs       globField
	AlwaysApply bool
}

// copilotMeta holds the classified frontmatter fields of a .instructions.md
// file.
type copilotMeta struct {
	Description optionalString
	ApplyTo     globField
}

// rawCursorMeta captures the frontmatter keys of a .mdc rule file before
// classification. The description and pattern values land as untyped nodes:
// yaml.v3 never hands null values to custom unmarshalers, and the node is
// what keeps a bare `description:` distinct from a missing key. Unknown keys
// (name, tags, version and friends) are tolerated and dropped.
type rawCursorMeta struct {
	Description yaml.Node `yaml:"description"`
	Globs       yaml.Node `yaml:"globs"`
	AlwaysApply bool      `yaml:"alwaysApply"`
}

// rawCopilotMeta captures the frontmatter keys of a .instructions.md file
// before classification.
type rawCopilotMeta struct {
	Description yaml.Node `yaml:"description"`
	ApplyTo     yaml.Node `yaml:"applyTo"`
}

// parseCursorMeta decodes a .mdc metadata block, repairing the bracketless
// globs shape first.
func parseCursorMeta(meta string) (cursorMeta, error) {
	var raw rawCursorMeta
	if err := decodeMeta(repairUnbracketedList(meta, "globs"), &raw); err != nil {
		return cursorMeta{}, err
	}
	desc, err := classifyString(raw.Description, "description")
	if err != nil {
		return cursorMeta{}, err
	}
	globs, err := classifyPatterns(raw.Globs, "globs")
	if err != nil {
		return cursorMeta{}, err
	}
	return cursorMeta{Description: desc, Globs: globs, AlwaysApply: raw.AlwaysApply}, nil
}

// parseCopilotMeta decodes a .instructions.md metadata block.
func parseCopilotMeta(meta string) (copilotMeta, error) {
	var raw rawCopilotMeta
	if err := decodeMeta(repairUnbracketedList(meta, "applyTo"), &raw); err != nil {
		return copilotMeta{}, err
	}
	desc, err := classifyString(raw.Description, "description")
	if err != nil {
		return copilotMeta{}, err
	}
	applyTo, err := classifyPatterns(raw.ApplyTo, "applyTo")
	if err != nil {
		return copilotMeta{}, err
	}
	return copilotMeta{Description: desc, ApplyTo: applyTo}, nil
}

// decodeMeta unmarshals a metadata block into out, folding YAML parse
// failures into ErrMalformedMetadata. Shape checking happens after decoding,
// so every error out of the parser itself means broken structure.
func decodeMeta(meta string, out any) error {
	if err := yaml.Unmarshal([]byte(meta), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return nil
}

// optionalString distinguishes a key that is absent from one present with an
// empty or null value.
type optionalString struct {
	set   bool
	value string
}

// classifyString resolves a description node. A zero node means the key was
// missing from the block; a null scalar means it was present with no value.
// The two survive as distinct states. Anything that is not a scalar is an
// unsupported shape.
func classifyString(node yaml.Node, key string) (optionalString, error) {
	switch {
	case node.IsZero():
		return optionalString{}, nil
	case node.Kind != yaml.ScalarNode:
		return optionalString{}, fmt.Errorf("%w: %s expects a scalar, got %s", ErrUnsupportedFieldShape, key, kindName(node.Kind))
	case node.Tag == nullTag:
		return optionalString{set: true}, nil
	default:
		return optionalString{set: true, value: node.Value}, nil
	}
}

// ptr converts to the model's pointer form: nil when the key was absent.
func (s optionalString) ptr() *string {
	if !s.set {
		return nil
	}
	v := s.value
	return &v
}

// globKind records which of the accepted shapes a pattern field used in the
// source text.
type globKind int

const (
	globAbsent globKind = iota
	globEmpty
	globScalar
	globList
)

const nullTag = "!!null"

// globField is the classified shape of a pattern field. Both conventions
// produce several spellings in the wild; sorting each into one variant keeps
// the reduction to a pattern list in a single place.
type globField struct {
	kind     globKind
	scalar   string
	patterns []string
}

// classifyPatterns resolves a pattern node into one of the accepted shapes:
// absent, explicitly empty, a single scalar that may itself be comma
// separated, or a list of strings. Anything else is rejected as an
// unsupported shape.
func classifyPatterns(node yaml.Node, key string) (globField, error) {
	switch {
	case node.IsZero():
		return globField{kind: globAbsent}, nil
	case node.Kind == yaml.ScalarNode && node.Tag == nullTag:
		return globField{kind: globEmpty}, nil
	case node.Kind == yaml.ScalarNode:
		return globField{kind: globScalar, scalar: node.Value}, nil
	case node.Kind == yaml.SequenceNode:
		patterns := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == nullTag {
				return globField{}, fmt.Errorf("%w: %s list may only hold strings", ErrUnsupportedFieldShape, key)
			}
			patterns = append(patterns, item.Value)
		}
		return globField{kind: globList, patterns: patterns}, nil
	default:
		return globField{}, fmt.Errorf("%w: %s expects a string or list, got %s", ErrUnsupportedFieldShape, key, kindName(node.Kind))
	}
}

// normalize flattens the accepted shapes into an ordered list of trimmed,
// non-empty patterns. List items keep their source order. A scalar splits on
// commas, which both conventions use as the separator inside one string;
// leftover quotes from hand-edited frontmatter are stripped per segment.
// Absent and empty fields reduce to nil.
func (g globField) normalize() []string {
	switch g.kind {
	case globList:
		out := make([]string, 0, len(g.patterns))
		for _, p := range g.patterns {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case globScalar:
		return splitPatternScalar(g.scalar)
	default:
		return nil
	}
}

// splitPatternScalar resolves a scalar pattern value into individual
// patterns. A comma always separates patterns here, never belongs to one.
func splitPatternScalar(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = stripQuotes(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// stripQuotes removes one matching pair of surrounding single or double
// quotes. Mismatched or unpaired quotes are left alone.
func stripQuotes(s string) string {
	if len(s) < 2 || s[0] != s[len(s)-1] {
		return s
	}
	if s[0] == '"' || s[0] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// repairUnbracketedList rewrites one known non-standard shape before YAML
// parsing: a pattern field written as several quoted scalars separated by
// commas but missing the enclosing brackets, e.g.
//
//	globs: "**/services*/**", "**/api*/**"
//
// The rewrite is deliberately narrow. It touches only the named key, and
// only when the value starts with a quote and a comma follows the first
// complete quoted scalar. A single quoted scalar, a bracketed list, an
// unquoted value, and every other line pass through untouched, leaving the
// YAML parser the sole authority on structure.
func repairUnbracketedList(meta, key string) string {
	logger := logging.GetLogger("rules")
	lines := strings.Split(meta, "\n")
	changed := false
	for i, line := range lines {
		colon := strings.Index(line, ":")
		if colon < 0 || strings.TrimSpace(line[:colon]) != key {
			continue
		}
		value := strings.TrimSpace(line[colon+1:])
		if !isUnbracketedList(value) {
			continue
		}
		items := splitOutsideQuotes(value)
		cleaned := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				cleaned = append(cleaned, item)
			}
		}
		lines[i] = line[:colon+1] + " [" + strings.Join(cleaned, ", ") + "]"
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Msg("bracketed a bare pattern list")
		changed = true
	}
	if !changed {
		return meta
	}
	return strings.Join(lines, "\n")
}

// isUnbracketedList reports whether a raw value is a comma separated run of
// quoted scalars with no enclosing brackets. An unterminated quote reports
// false so the parser rejects it instead of the repair hiding it.
func isUnbracketedList(value string) bool {
	if len(value) == 0 {
		return false
	}
	quote := value[0]
	if quote != '"' && quote != '\'' {
		return false
	}
	end := strings.IndexByte(value[1:], quote)
	if end < 0 {
		return false
	}
	rest := strings.TrimSpace(value[end+2:])
	return strings.HasPrefix(rest, ",")
}

// splitOutsideQuotes splits s on commas that sit outside quoted regions, so
// a comma inside a quoted glob like "**/{a,b}/**" is not a split point.
func splitOutsideQuotes(s string) []string {
	var (
		parts   []string
		start   int
		inQuote bool
		quote   byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c == quote {
				inQuote = false
			}
		case c == '"' || c == '\'':
			inQuote = true
			quote = c
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// kindName names a YAML node kind for error messages.
func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
