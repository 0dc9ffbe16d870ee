// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantMeta    string
		wantHasMeta bool
		wantBody    string
	}{
		{
			name:        "with frontmatter",
			in:          "---\ndescription: x\n---\n\nBody text.\n",
			wantMeta:    "description: x\n",
			wantHasMeta: true,
			wantBody:    "Body text.\n",
		},
		{
			name:     "no frontmatter",
			in:       "Just some rule content without frontmatter.",
			wantBody: "Just some rule content without frontmatter.",
		},
		{
			name:     "no closing delimiter",
			in:       "---\ndescription: x\nBody without a closing line.",
			wantBody: "---\ndescription: x\nBody without a closing line.",
		},
		{
			name:     "delimiter not on first non-empty line",
			in:       "intro\n---\na: b\n---\n",
			wantBody: "intro\n---\na: b\n---\n",
		},
		{
			name:        "leading blank lines before delimiter",
			in:          "\n\n---\na: b\n---\nBody",
			wantMeta:    "a: b\n",
			wantHasMeta: true,
			wantBody:    "Body",
		},
		{
			name:        "empty metadata block",
			in:          "---\n---\nBody",
			wantMeta:    "",
			wantHasMeta: true,
			wantBody:    "Body",
		},
		{
			name:        "no body after closing delimiter",
			in:          "---\na: b\n---",
			wantMeta:    "a: b\n",
			wantHasMeta: true,
			wantBody:    "",
		},
		{
			name:        "crlf line endings",
			in:          "---\r\na: b\r\n---\r\nBody\r\n",
			wantMeta:    "a: b\r\n",
			wantHasMeta: true,
			wantBody:    "Body\r\n",
		},
		{
			name:        "delimiter with trailing spaces",
			in:          "---  \na: b\n---  \nBody",
			wantMeta:    "a: b\n",
			wantHasMeta: true,
			wantBody:    "Body",
		},
		{
			name:     "four dashes is not a delimiter",
			in:       "----\na: b\n----\nBody",
			wantBody: "----\na: b\n----\nBody",
		},
		{
			name:     "lone opening delimiter",
			in:       "---",
			wantBody: "---",
		},
		{
			name:     "empty input",
			in:       "",
			wantBody: "",
		},
		{
			name:        "only first blank line trimmed",
			in:          "---\na: b\n---\n\n\nBody",
			wantMeta:    "a: b\n",
			wantHasMeta: true,
			wantBody:    "\nBody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Split(tt.in)
			if doc.HasMeta != tt.wantHasMeta {
				t.Errorf("HasMeta = %v, want %v", doc.HasMeta, tt.wantHasMeta)
			}
			if doc.Meta != tt.wantMeta {
				t.Errorf("Meta = %q, want %q", doc.Meta, tt.wantMeta)
			}
			if doc.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", doc.Body, tt.wantBody)
			}
		})
	}
}

func TestSplitPreservesBodyBytes(t *testing.T) {
	body := "# Title\n\n  indented\tand tabbed  \ntrailing spaces   \nno final newline"
	in := "---\nglobs:\n---\n\n" + body

	doc := Split(in)
	if !doc.HasMeta {
		t.Fatal("expected metadata block")
	}
	if doc.Body != body {
		t.Errorf("Body = %q, want %q", doc.Body, body)
	}
}

func TestCompose(t *testing.T) {
	got := Compose("description: \"x\"\n", "Body.\n")
	want := "---\ndescription: \"x\"\n---\n\nBody.\n"
	if got != want {
		t.Errorf("Compose = %q, want %q", got, want)
	}
}

func TestComposeSplitRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		meta string
		body string
	}{
		{"plain", "a: b\n", "Body text.\n"},
		{"empty body", "a: b\n", ""},
		{"body with blank lines", "a: b\nc: d\n", "first\n\nsecond\n"},
		{"body starting with dashes", "a: b\n", "--- dashes inside the body\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Split(Compose(tt.meta, tt.body))
			if !doc.HasMeta {
				t.Fatal("expected metadata block")
			}
			if doc.Meta != tt.meta {
				t.Errorf("Meta = %q, want %q", doc.Meta, tt.meta)
			}
			if doc.Body != tt.body {
				t.Errorf("Body = %q, want %q", doc.Body, tt.body)
			}
		})
	}
}
