// File: pkg/bundle/execute.go
package bundle

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"projinspect/pkg/chunk"
	"projinspect/pkg/filter"
	"projinspect/pkg/logging"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Run executes one bundling pass: filter, pack, render, write.
// Fatal input problems surface as filter.ErrRootUnreadable,
// filter.ErrNoFiles or ErrNoSelection; no files are written in those cases.
func Run(ctx context.Context, args Arguments, logger *zap.Logger) (Result, error) {
	logger = logging.OrNop(logger)
	startTime := time.Now()

	root, err := filepath.Abs(args.Path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", filter.ErrRootUnreadable, args.Path, err)
	}
	project := filepath.Base(root)
	result := Result{Root: root, Project: project, Limit: args.MaxSize}
	logger.Info("Starting inspection", zap.String("root", root), zap.String("maxSize", humanize.IBytes(uint64(max(args.MaxSize, 0)))))

	sel, err := resolveSelection(args, root, project, logger)
	if err != nil {
		logger.Error("Failed to resolve file selection", zap.Error(err))
		return result, err
	}
	result.Stack = sel.stack
	result.Detected = sel.detected

	entries, report, err := filter.Collect(ctx, filter.Options{
		Root:    root,
		Allow:   sel.allow,
		Exclude: sel.exclude,
		Workers: args.Workers,
		Logger:  logger,
	})
	result.Report = report
	if err != nil {
		logger.Error("Failed to collect files", zap.Error(err))
		return result, err
	}

	chunks := chunk.Pack(entries, args.MaxSize)
	manifest := chunk.BuildManifest(chunks)
	tree := RenderTree(project, entries, manifest.PartOf())
	logger.Debug("Packed files", zap.Int("files", len(entries)), zap.Int("parts", len(chunks)))

	outputDir := args.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	paths, err := WriteChunks(outputDir, project, tree, chunks, args.NoClobber, logger)
	if err != nil {
		logger.Error("Failed to write bundle", zap.String("outputDir", outputDir), zap.Error(err))
		return result, err
	}

	for i, c := range chunks {
		if c.Oversize(args.MaxSize) {
			logger.Warn("File exceeds the part size limit and was written to its own part",
				zap.String("file", c.Entries[0].RelPath),
				zap.String("size", humanize.IBytes(uint64(c.TotalBytes))),
				zap.String("limit", humanize.IBytes(uint64(args.MaxSize))))
		}
		result.Parts = append(result.Parts, PartSummary{
			Index:      c.Index,
			File:       paths[i],
			Files:      len(c.Entries),
			TotalBytes: c.TotalBytes,
			Oversize:   c.Oversize(args.MaxSize),
		})
	}

	logger.Info("Inspection completed",
		zap.Int("files", len(entries)),
		zap.Int("parts", len(chunks)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}
