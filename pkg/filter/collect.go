package filter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"projinspect/pkg/logging"

	"go.uber.org/zap"
)

// Collect walks opts.Root and returns the selected files in lexical path
// order with their contents loaded. Per-file problems are reported in
// Report.Skipped and never fail the run; a bad root fails with
// ErrRootUnreadable and an empty selection with ErrNoFiles.
func Collect(ctx context.Context, opts Options) ([]FileEntry, Report, error) {
	logger := logging.OrNop(opts.Logger)
	report := Report{Extensions: map[string]int{}}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, opts.Root, err)
	}
	// WalkDir does not descend into a symlinked root, so walk its target.
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, err)
	}
	if !info.IsDir() {
		return nil, report, fmt.Errorf("%w: %s", ErrRootUnreadable, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, report, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, err)
	}

	candidates, skipped, err := walkCandidates(root, opts.Allow, opts.Exclude, logger)
	if err != nil {
		logger.Error("Error during file traversal", zap.String("root", root), zap.Error(err))
		return nil, report, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, err)
	}
	report.Considered = len(candidates)
	report.Skipped = append(report.Skipped, skipped...)

	results, err := readCandidates(ctx, candidates, opts.Workers, logger)
	if err != nil {
		return nil, report, fmt.Errorf("failed to read files: %w", err)
	}

	matchedNames := map[string]bool{}
	entries := make([]FileEntry, 0, len(results))
	for i, r := range results {
		if r.skip != nil {
			logger.Warn("Skipping file",
				zap.String("file", r.skip.Path),
				zap.String("reason", r.skip.Reason),
				zap.Error(r.skip.Err))
			report.Skipped = append(report.Skipped, r.skip)
			continue
		}
		entries = append(entries, *r.entry)
		report.Extensions[extOf(r.entry.RelPath)]++
		if via := candidates[i].via; via != "" {
			matchedNames[via] = true
		}
	}

	for _, name := range opts.Allow.ExplicitNames() {
		if matchedNames[name] {
			report.IncludeMatched = append(report.IncludeMatched, name)
		} else {
			report.IncludeUnmatched = append(report.IncludeUnmatched, name)
		}
	}
	sort.SliceStable(report.Skipped, func(i, j int) bool {
		return report.Skipped[i].Path < report.Skipped[j].Path
	})

	logger.Info("Collected files",
		zap.String("root", root),
		zap.Int("selected", len(entries)),
		zap.Int("skipped", len(report.Skipped)))

	if len(entries) == 0 {
		return nil, report, ErrNoFiles
	}
	return entries, report, nil
}
