package filter

import (
	"io/fs"
	"os"
	"path/filepath"

	"projinspect/pkg/ignore"

	"go.uber.org/zap"
)

// candidate is a path that passed the exclusion and allow-list checks but has not been read yet.
type candidate struct {
	relPath string
	absPath string
	via     string // explicit include name that selected it, if any
}

type nopMatcher struct{}

func (nopMatcher) Match(string, bool) bool { return false }

// walkCandidates traverses root in lexical order and returns the files that
// survive exclusion and inclusion. Unreadable entries are skipped with a warning.
func walkCandidates(root string, allow AllowList, exclude ignore.Matcher, logger *zap.Logger) ([]candidate, []*SkipError, error) {
	if exclude == nil {
		exclude = nopMatcher{}
	}

	var (
		candidates []candidate
		skipped    []*SkipError
	)
	logger.Debug("Starting file traversal", zap.String("root", root))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			skipped = append(skipped, &SkipError{Path: relPath, Reason: ReasonUnreadable, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && exclude.Match(relPath, true) {
				logger.Debug("Skipping excluded directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if exclude.Match(relPath, false) {
			logger.Debug("Skipping excluded file", zap.String("file", relPath))
			return nil
		}
		ok, via := allow.Allows(relPath)
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("Failed to get file info during traversal", zap.String("file", relPath), zap.Error(err))
			skipped = append(skipped, &SkipError{Path: relPath, Reason: ReasonUnreadable, Err: err})
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Follow symlinks to files; WalkDir itself never descends into linked directories.
			target, statErr := os.Stat(path)
			if statErr != nil {
				skipped = append(skipped, &SkipError{Path: relPath, Reason: ReasonUnreadable, Err: statErr})
				return nil
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			skipped = append(skipped, &SkipError{Path: relPath, Reason: ReasonNotRegularFile})
			return nil
		}

		candidates = append(candidates, candidate{
			relPath: relPath,
			absPath: path,
			via:     via,
		})
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}

	logger.Debug("Completed file traversal",
		zap.Int("candidates", len(candidates)),
		zap.Int("skipped", len(skipped)))
	return candidates, skipped, nil
}
