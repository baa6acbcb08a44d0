// Package ignore compiles gitignore-style exclusion patterns into regular
// expressions and matches project-relative paths against them.
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"projinspect/pkg/logging"

	"go.uber.org/zap"
)

// FileName is the per-project ignore file honored at the project root.
const FileName = ".projinspectignore"

// Matcher reports whether a project-relative path is excluded.
type Matcher interface {
	Match(relPath string, isDir bool) bool
}

// Pattern is one compiled exclusion rule.
type Pattern struct {
	Regexp  *regexp.Regexp // Compiled form of Line.
	Negate  bool           // Line started with '!'.
	DirOnly bool           // Line ended with '/'.
	Line    string         // Original pattern text.
	Source  string         // Where the pattern came from (file path, "flag", "stack:<name>").
	LineNo  int            // 1-based position within Source.
}

// Set is an ordered collection of patterns. Later patterns win, so a
// negation only re-includes what an earlier pattern excluded.
type Set struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Set. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *Set {
	return &Set{logger: logging.OrNop(logger)}
}

// Len returns the number of compiled patterns.
func (s *Set) Len() int {
	return len(s.patterns)
}

// AddLines compiles lines and appends them under the given source label.
// Blank lines and comments are skipped; invalid patterns are logged and dropped.
func (s *Set) AddLines(source string, lines ...string) {
	for i, line := range lines {
		p, err := parsePatternLine(line)
		if err != nil {
			s.logger.Warn("Invalid ignore pattern",
				zap.String("source", source),
				zap.Int("lineNo", i+1),
				zap.String("pattern", line),
				zap.Error(err))
			continue
		}
		if p == nil {
			continue
		}
		p.Source = source
		p.LineNo = i + 1
		s.patterns = append(s.patterns, p)
		s.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// AddFile reads an ignore file and compiles its lines. A missing file is not an error.
func (s *Set) AddFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
			return nil
		}
		s.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	before := len(s.patterns)
	s.AddLines(path, lines...)
	s.logger.Info("Loaded ignore file",
		zap.String("filePath", path),
		zap.Int("patternCount", len(s.patterns)-before))
	return nil
}

// Match reports whether relPath is excluded. relPath uses forward slashes
// and is relative to the project root.
func (s *Set) Match(relPath string, isDir bool) bool {
	matched, _ := s.MatchWithPattern(relPath, isDir)
	return matched
}

// MatchWithPattern is Match that also returns the last pattern that decided
// the outcome, or nil when nothing matched.
func (s *Set) MatchWithPattern(relPath string, isDir bool) (bool, *Pattern) {
	candidate := normalizePath(relPath, isDir)
	if candidate == "" {
		return false, nil
	}

	matched := false
	var decisive *Pattern
	for _, p := range s.patterns {
		if !p.Regexp.MatchString(candidate) {
			continue
		}
		matched = !p.Negate
		decisive = p
	}

	if decisive != nil {
		s.logger.Debug("Path matched ignore pattern",
			zap.String("path", candidate),
			zap.String("pattern", decisive.Line),
			zap.Bool("excluded", matched))
	}
	return matched, decisive
}
