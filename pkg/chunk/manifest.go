package chunk

// ManifestEntry lists the files of one chunk.
type ManifestEntry struct {
	Index int
	Paths []string
}

// Manifest is the global table of contents: one entry per chunk, in chunk order.
type Manifest []ManifestEntry

// BuildManifest derives the manifest from a chunk sequence.
func BuildManifest(chunks []Chunk) Manifest {
	m := make(Manifest, len(chunks))
	for i, c := range chunks {
		m[i] = ManifestEntry{Index: c.Index, Paths: c.Paths()}
	}
	return m
}

// PartOf maps each relative path to the index of the chunk holding it.
func (m Manifest) PartOf() map[string]int {
	parts := make(map[string]int)
	for _, e := range m {
		for _, p := range e.Paths {
			parts[p] = e.Index
		}
	}
	return parts
}

// Files returns the number of files across all chunks.
func (m Manifest) Files() int {
	n := 0
	for _, e := range m {
		n += len(e.Paths)
	}
	return n
}
