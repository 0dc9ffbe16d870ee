// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter splits rule files into a delimited metadata block and
// a markdown body, and reassembles them.
// Implements: prd001-rules-conversion (R1.1-R1.5);
//
//	docs/ARCHITECTURE § Frontmatter.
package frontmatter

import "strings"

// Delimiter is the line that opens and closes a metadata block.
const Delimiter = "---"

// Document is a raw rule file divided into its metadata block and body.
type Document struct {
	// Meta is the text strictly between the delimiter lines, without the
	// delimiters themselves. Meaningful only when HasMeta is true.
	Meta string

	// HasMeta reports whether a complete delimited block was found.
	HasMeta bool

	// Body is everything after the closing delimiter, byte-for-byte, with
	// at most one leading blank line removed. When HasMeta is false, Body
	// is the entire input unchanged.
	Body string
}

// Split divides content into metadata and body. The opening delimiter must
// be the first non-empty line of the input. A missing opening delimiter, or
// an opening delimiter with no matching closing line, means the whole input
// is body; that is a valid document shape, not an error.
func Split(content string) Document {
	pos := 0
	opened := false
	for pos <= len(content) {
		line, next := nextLine(content, pos)
		trimmed := strings.TrimSpace(line)
		if trimmed == Delimiter {
			opened = true
			pos = next
			break
		}
		// Blank lines before the opening delimiter are tolerated.
		if trimmed != "" || next > len(content) {
			return Document{Body: content}
		}
		pos = next
	}
	if !opened {
		return Document{Body: content}
	}

	metaStart := pos
	for pos <= len(content) {
		line, next := nextLine(content, pos)
		if strings.TrimSpace(line) == Delimiter {
			rest := ""
			if next <= len(content) {
				rest = content[next:]
			}
			return Document{
				Meta:    content[metaStart:pos],
				HasMeta: true,
				Body:    trimLeadingBlank(rest),
			}
		}
		if next > len(content) {
			break
		}
		pos = next
	}
	// Unterminated block: treat the entire input as body.
	return Document{Body: content}
}

// Compose reassembles a metadata block and a body into file content. meta
// must be newline-terminated; a blank line separates the closing delimiter
// from the body.
func Compose(meta, body string) string {
	var b strings.Builder
	b.Grow(len(meta) + len(body) + 2*len(Delimiter) + 3)
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	b.WriteString(meta)
	b.WriteString(Delimiter)
	b.WriteString("\n\n")
	b.WriteString(body)
	return b.String()
}

// nextLine returns the line starting at pos, without its newline, and the
// offset just past the newline. next is len(content)+1 when the line is the
// last one and carries no trailing newline.
func nextLine(content string, pos int) (line string, next int) {
	nl := strings.IndexByte(content[pos:], '\n')
	if nl < 0 {
		return content[pos:], len(content) + 1
	}
	return content[pos : pos+nl], pos + nl + 1
}

// trimLeadingBlank removes at most one leading blank line.
func trimLeadingBlank(body string) string {
	if strings.HasPrefix(body, "\r\n") {
		return body[2:]
	}
	if strings.HasPrefix(body, "\n") {
		return body[1:]
	}
	return body
}
