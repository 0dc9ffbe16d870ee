// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/ruler/pkg/types"
)

// Discover walks root for files of the given convention and returns their
// paths relative to root, sorted. Include and exclude globs match against
// the slash-separated relative path; exclusions win. Nested directories are
// preserved in the returned paths.
func Discover(root string, conv types.Convention, include, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !qualifies(d.Name(), conv) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ok, err := matchFilters(filepath.ToSlash(rel), include, exclude)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// qualifies reports whether a file name belongs to the convention. Matching
// is case-insensitive.
func qualifies(name string, conv types.Convention) bool {
	lower := strings.ToLower(name)
	if conv == types.ConventionCopilot {
		// .instructions.md is the conventional name; any .md qualifies.
		return strings.HasSuffix(lower, ".md")
	}
	ext := filepath.Ext(lower)
	return ext == ".mdc" || ext == ".md"
}

// matchFilters applies include and exclude globs to a relative path.
func matchFilters(rel string, include, exclude []string) (bool, error) {
	for _, pat := range exclude {
		ok, err := doublestar.Match(pat, rel)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
		if ok {
			return false, nil
		}
	}
	if len(include) == 0 {
		return true, nil
	}
	for _, pat := range include {
		ok, err := doublestar.Match(pat, rel)
		if err != nil {
			return false, fmt.Errorf("include pattern %q: %w", pat, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// TargetPath translates a source-relative path into the target convention's
// file naming: name.mdc becomes name.instructions.md toward Copilot, and
// name.instructions.md becomes name.mdc toward Cursor.
func TargetPath(rel string, d types.Direction) string {
	dir, name := filepath.Split(rel)
	if d == types.CopilotToCursor {
		switch {
		case strings.HasSuffix(name, ".instructions.md"):
			name = strings.TrimSuffix(name, ".instructions.md") + ".mdc"
		case strings.HasSuffix(name, ".md"):
			name = strings.TrimSuffix(name, ".md") + ".mdc"
		default:
			name = strings.TrimSuffix(name, filepath.Ext(name)) + ".mdc"
		}
		return dir + name
	}
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".instructions.md"
	return dir + name
}
