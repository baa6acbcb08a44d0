package filter

import (
	"context"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// readResult is the outcome for the candidate at the same index.
type readResult struct {
	entry *FileEntry
	skip  *SkipError
}

// readCandidates reads every candidate with a bounded pool of workers.
// Results are stored by index, so the caller sees them in walk order no
// matter which worker finished first.
func readCandidates(ctx context.Context, candidates []candidate, workers int, logger *zap.Logger) ([]readResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", workers))
	}

	results := make([]readResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	logger.Debug("Reading candidate files", zap.Int("files", len(candidates)), zap.Int("workers", workers))
	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		i, c := i, c // per-iteration copies for pre-1.22 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = readOne(c, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// readOne loads a single candidate and applies the content checks.
func readOne(c candidate, logger *zap.Logger) readResult {
	if isCommonBinaryExtension(c.relPath) {
		return readResult{skip: &SkipError{Path: c.relPath, Reason: ReasonBinaryExt}}
	}

	content, err := os.ReadFile(c.absPath)
	if err != nil {
		return readResult{skip: &SkipError{Path: c.relPath, Reason: ReasonUnreadable, Err: err}}
	}
	if len(content) == 0 {
		return readResult{skip: &SkipError{Path: c.relPath, Reason: ReasonEmpty}}
	}
	if isBinaryContent(content) {
		return readResult{skip: &SkipError{Path: c.relPath, Reason: ReasonBinaryContent}}
	}

	logger.Debug("Read file", zap.String("file", c.relPath), zap.Int("sizeBytes", len(content)))
	return readResult{entry: &FileEntry{
		RelPath: c.relPath,
		AbsPath: c.absPath,
		Size:    int64(len(content)),
		Content: content,
	}}
}
