// File: pkg/bundle/config.go
package bundle

import "projinspect/pkg/filter"

// DefaultMaxSize is the per-part byte limit used when none is configured.
const DefaultMaxSize int64 = 100 * 1024 * 1024

// LongFileWords marks files too long to paste into a prompt directly.
const LongFileWords = 3000

// Arguments holds the options for one bundling run.
type Arguments struct {
	Path       string   // Project root to inspect.
	Stack      string   // Stack preset name; empty means detect.
	Include    string   // Raw --include value; overrides the stack allow-list when non-empty.
	Exclude    []string // Extra exclusion patterns, applied after everything else.
	OutputDir  string   // Destination directory for the bundle files.
	MaxSize    int64    // Per-part byte limit; <= 0 disables splitting.
	Workers    int      // Parallel file readers; <= 0 means NumCPU.
	NoClobber  bool     // Refuse to overwrite existing bundle files.
	IgnoreFile string   // Optional extra gitignore-style file.
}

// PartSummary describes one written part.
type PartSummary struct {
	Index      int
	File       string
	Files      int
	TotalBytes int64
	Oversize   bool
}

// Result describes a completed run.
type Result struct {
	Root     string
	Project  string
	Stack    string // Resolved stack preset, empty when only --include was used.
	Detected bool   // Stack came from marker-file detection.
	Limit    int64
	Parts    []PartSummary
	Report   filter.Report
}

// Outputs returns the written file paths in part order.
func (r Result) Outputs() []string {
	out := make([]string, len(r.Parts))
	for i, p := range r.Parts {
		out[i] = p.File
	}
	return out
}
