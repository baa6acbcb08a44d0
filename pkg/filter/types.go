// Package filter walks a project root and produces the ordered list of
// files selected for bundling.
package filter

import (
	"errors"
	"fmt"

	"projinspect/pkg/ignore"

	"go.uber.org/zap"
)

var (
	// ErrRootUnreadable means the project root is missing, not a directory, or cannot be listed.
	ErrRootUnreadable = errors.New("project root is not a readable directory")
	// ErrNoFiles means filtering left nothing to bundle.
	ErrNoFiles = errors.New("no matching files found")
)

// FileEntry is one selected file. Entries are never modified after Collect returns them.
type FileEntry struct {
	RelPath string // Project-relative, forward slashes.
	AbsPath string
	Size    int64 // len(Content)
	Content []byte
}

// Skip reasons recorded in SkipError.
const (
	ReasonEmpty          = "empty file"
	ReasonBinaryExt      = "binary extension"
	ReasonBinaryContent  = "binary content"
	ReasonUnreadable     = "unreadable"
	ReasonNotRegularFile = "not a regular file"
)

// SkipError describes a file that matched the filters but was left out.
type SkipError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SkipError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("skipped %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("skipped %s: %s", e.Path, e.Reason)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// Options configures Collect.
type Options struct {
	Root    string         // Project root directory.
	Allow   AllowList      // Inclusion rules.
	Exclude ignore.Matcher // Exclusion rules; always win over Allow. May be nil.
	Workers int            // Parallel readers; <= 0 means runtime.NumCPU().
	Logger  *zap.Logger
}

// Report summarizes a Collect run.
type Report struct {
	Considered       int            // Files that passed the path filters.
	Extensions       map[string]int // Selected files per extension ("" for none).
	IncludeMatched   []string       // Explicit include names (files, folders) that matched.
	IncludeUnmatched []string       // Explicit include names that matched nothing.
	Skipped          []*SkipError
}
