// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert discovers rule files and drives batch conversion between
// the Cursor and Copilot conventions. One file's failure never stops the
// batch; every outcome is reported as a per-file record.
// Implements: prd001-rules-conversion (R5, R7.3, R7.4);
//
//	docs/ARCHITECTURE § Conversion Engine.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/ruler/internal/history"
	"github.com/pdiddy/ruler/internal/logging"
	"github.com/pdiddy/ruler/internal/rules"
	"github.com/pdiddy/ruler/pkg/types"
)

// ErrIOUnavailable reports that the source directory cannot be read at all.
// Unlike per-file failures, this aborts the run before it starts.
var ErrIOUnavailable = errors.New("source directory unavailable")

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Files carries the per-file records in processing order, ready for the
	// history ledger.
	Files []types.FileRecord
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Record assembles the history ledger entry for a completed run.
func (r BatchResult) Record(cfg types.ConvertConfig, started time.Time) types.RunRecord {
	return types.RunRecord{
		Direction: cfg.Direction,
		FromDir:   cfg.FromDir,
		ToDir:     cfg.ToDir,
		StartedAt: started,
		Converted: r.Converted,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
		Files:     r.Files,
	}
}

// Run converts every qualifying file under cfg.FromDir into cfg.ToDir,
// printing per-file status to w and returning a summary. hist may be nil, in
// which case unchanged-file detection is disabled. The context is checked
// between files, never mid-file.
func Run(ctx context.Context, cfg types.ConvertConfig, hist *history.Store, w io.Writer) (BatchResult, error) {
	if cfg.Direction != types.CursorToCopilot && cfg.Direction != types.CopilotToCursor {
		return BatchResult{}, fmt.Errorf("unknown direction %q", cfg.Direction)
	}
	if _, err := os.Stat(cfg.FromDir); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %s", ErrIOUnavailable, cfg.FromDir)
	}

	logger := logging.GetLogger("convert")

	sourceConv := cfg.Direction.Source()
	paths, err := Discover(cfg.FromDir, sourceConv, cfg.Include, cfg.Exclude)
	if err != nil {
		return BatchResult{}, err
	}
	logger.Debug().Int("files", len(paths)).Str("root", cfg.FromDir).Msg("discovered rule files")
	if len(paths) == 0 {
		fmt.Fprintf(w, "no %s found in %s\n", sourceFileKinds(sourceConv), cfg.FromDir)
		return BatchResult{}, nil
	}

	var result BatchResult

	for _, rel := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		data, err := os.ReadFile(filepath.Join(cfg.FromDir, rel))
		if err != nil {
			result.fail(w, rel, err)
			continue
		}
		hash := history.Hash(data)

		if cfg.SkipUnchanged && hist != nil {
			last, err := hist.LastConvertedHash(ctx, cfg.Direction, rel)
			if err != nil {
				logger.Warn().Err(err).Str("file", rel).Msg("history lookup failed")
			} else if last != "" && last == hash {
				fmt.Fprintf(w, "skipped: %s (unchanged)\n", rel)
				result.Skipped++
				result.Files = append(result.Files, types.FileRecord{
					SourcePath: rel,
					SourceHash: hash,
					Status:     types.FileSkipped,
					Reason:     "unchanged",
				})
				continue
			}
		}

		output, err := rules.Convert(string(data), cfg.Direction)
		if err != nil {
			result.fail(w, rel, err)
			continue
		}
		target := TargetPath(rel, cfg.Direction)

		if cfg.DryRun {
			fmt.Fprintf(w, "would convert: %s -> %s\n", rel, target)
		} else {
			outPath := filepath.Join(cfg.ToDir, target)
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				result.fail(w, rel, err)
				continue
			}
			if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
				result.fail(w, rel, err)
				continue
			}
			fmt.Fprintf(w, "converted: %s -> %s\n", rel, target)
		}

		result.Converted++
		result.Files = append(result.Files, types.FileRecord{
			SourcePath: rel,
			TargetPath: target,
			SourceHash: hash,
			Status:     types.FileConverted,
		})
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// fail prints a failure line and appends the matching record.
func (r *BatchResult) fail(w io.Writer, rel string, err error) {
	fmt.Fprintf(w, "failed:  %s (%v)\n", rel, err)
	r.Failed++
	r.Files = append(r.Files, types.FileRecord{
		SourcePath: rel,
		Status:     types.FileFailed,
		Reason:     err.Error(),
	})
}

// sourceFileKinds names the extensions scanned for a convention, for the
// empty-directory notice.
func sourceFileKinds(conv types.Convention) string {
	if conv == types.ConventionCopilot {
		return ".md or .instructions.md files"
	}
	return ".mdc or .md files"
}
