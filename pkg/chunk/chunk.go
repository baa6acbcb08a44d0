// Package chunk partitions an ordered file list into size-bounded parts.
//
// Packing is greedy and sequential: files keep their order, a file's
// content is never split, and every part stays at or under the limit
// unless it holds a single file that is larger than the limit on its own.
package chunk

import (
	"projinspect/pkg/filter"
)

// Chunk is one output part.
type Chunk struct {
	Index      int
	Entries    []filter.FileEntry
	TotalBytes int64
}

// Oversize reports whether the chunk exceeds limit. Pack only produces such
// chunks for a single file larger than the limit.
func (c Chunk) Oversize(limit int64) bool {
	return limit > 0 && c.TotalBytes > limit
}

// Paths returns the relative paths of the chunk's entries in order.
func (c Chunk) Paths() []string {
	paths := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		paths[i] = e.RelPath
	}
	return paths
}

// Pack splits entries into chunks of at most limit bytes. A limit of zero
// or less disables splitting. Zero entries produce zero chunks.
func Pack(entries []filter.FileEntry, limit int64) []Chunk {
	var (
		chunks  []Chunk
		current Chunk
	)
	for _, e := range entries {
		fits := limit <= 0 || current.TotalBytes+e.Size <= limit
		if len(current.Entries) > 0 && !fits {
			chunks = append(chunks, current)
			current = Chunk{Index: len(chunks)}
		}
		current.Entries = append(current.Entries, e)
		current.TotalBytes += e.Size
	}
	if len(current.Entries) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
