package chunk

import (
	"fmt"
	"math/rand"
	"testing"

	"projinspect/pkg/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesOfSizes(sizes ...int64) []filter.FileEntry {
	entries := make([]filter.FileEntry, len(sizes))
	for i, s := range sizes {
		entries[i] = filter.FileEntry{
			RelPath: fmt.Sprintf("f%03d.txt", i),
			Size:    s,
			Content: make([]byte, s),
		}
	}
	return entries
}

func sizesOf(chunks []Chunk) [][]int64 {
	out := make([][]int64, len(chunks))
	for i, c := range chunks {
		for _, e := range c.Entries {
			out[i] = append(out[i], e.Size)
		}
	}
	return out
}

func TestPack(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int64
		limit int64
		want  [][]int64
	}{
		{"empty", nil, 100, [][]int64{}},
		{"greedy split", []int64{30, 40, 40, 20}, 100, [][]int64{{30, 40}, {40, 20}}},
		{"exact limit stays", []int64{60, 40, 1}, 100, [][]int64{{60, 40}, {1}}},
		{"single oversize", []int64{150}, 100, [][]int64{{150}}},
		{"oversize between", []int64{10, 150, 10}, 100, [][]int64{{10}, {150}, {10}}},
		{"oversize then small", []int64{150, 10, 20}, 100, [][]int64{{150}, {10, 20}}},
		{"no limit", []int64{500, 500, 500}, 0, [][]int64{{500, 500, 500}}},
		{"zero sized files", []int64{0, 100, 0}, 100, [][]int64{{0, 100, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Pack(entriesOfSizes(tt.sizes...), tt.limit)
			if len(tt.want) == 0 {
				assert.Empty(t, chunks)
				return
			}
			assert.Equal(t, tt.want, sizesOf(chunks))
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
			}
		})
	}
}

func TestPackTotals(t *testing.T) {
	chunks := Pack(entriesOfSizes(30, 40, 40, 20), 100)
	require.Len(t, chunks, 2)
	assert.Equal(t, int64(70), chunks[0].TotalBytes)
	assert.Equal(t, int64(60), chunks[1].TotalBytes)

	single := Pack(entriesOfSizes(150), 100)
	require.Len(t, single, 1)
	assert.Equal(t, int64(150), single[0].TotalBytes)
	assert.True(t, single[0].Oversize(100))
	assert.False(t, chunks[0].Oversize(100))
}

// Randomized inputs must always satisfy the packing invariants.
func TestPackInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		n := rng.Intn(40)
		limit := int64(rng.Intn(300) + 1)
		sizes := make([]int64, n)
		for i := range sizes {
			sizes[i] = int64(rng.Intn(400))
		}
		entries := entriesOfSizes(sizes...)
		chunks := Pack(entries, limit)

		var flat []string
		for i, c := range chunks {
			require.NotEmpty(t, c.Entries, "round %d: empty chunk %d", round, i)

			var sum int64
			for _, e := range c.Entries {
				sum += e.Size
			}
			require.Equal(t, sum, c.TotalBytes)

			if c.TotalBytes > limit {
				require.Len(t, c.Entries, 1, "round %d: chunk %d over limit with several files", round, i)
				require.Greater(t, c.Entries[0].Size, limit)
			}

			// Greedy: the first file of the next chunk would not have fit here.
			if i+1 < len(chunks) {
				require.Greater(t, c.TotalBytes+chunks[i+1].Entries[0].Size, limit)
			}
			flat = append(flat, c.Paths()...)
		}

		want := make([]string, len(entries))
		for i, e := range entries {
			want[i] = e.RelPath
		}
		if n == 0 {
			require.Empty(t, chunks)
			continue
		}
		require.Equal(t, want, flat, "round %d: files dropped, duplicated or reordered", round)

		again := Pack(entries, limit)
		require.Equal(t, chunks, again, "round %d: packing not deterministic", round)
	}
}

func TestManifest(t *testing.T) {
	chunks := Pack(entriesOfSizes(30, 40, 40, 20), 100)
	m := BuildManifest(chunks)

	assert.Equal(t, Manifest{
		{Index: 0, Paths: []string{"f000.txt", "f001.txt"}},
		{Index: 1, Paths: []string{"f002.txt", "f003.txt"}},
	}, m)
	assert.Equal(t, map[string]int{
		"f000.txt": 0,
		"f001.txt": 0,
		"f002.txt": 1,
		"f003.txt": 1,
	}, m.PartOf())
	assert.Equal(t, 4, m.Files())
	assert.Empty(t, BuildManifest(nil))
}
