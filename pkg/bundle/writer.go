// File: pkg/bundle/writer.go
package bundle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"projinspect/pkg/chunk"
	"projinspect/pkg/logging"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
)

// ErrOutputExists is returned in no-clobber mode when a bundle file already exists.
var ErrOutputExists = errors.New("output file already exists")

var separatorLine = strings.Repeat("=", 80)

// OutputName returns the bundle file name for part index of total parts.
func OutputName(project string, index, total int) string {
	if total == 1 {
		return project + "-structure.txt"
	}
	return fmt.Sprintf("%s-part_%d.txt", project, index)
}

// createFile opens a part file for writing.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// WriteChunks writes one file per chunk into outputDir and returns their
// paths in chunk order. Existing files are overwritten unless noClobber is
// set, in which case nothing is written when any target already exists.
func WriteChunks(outputDir, project, tree string, chunks []chunk.Chunk, noClobber bool, logger *zap.Logger) ([]string, error) {
	logger = logging.OrNop(logger)
	if len(chunks) == 0 {
		return nil, nil
	}

	if err := ensureDirectory(outputDir, logger); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, len(chunks))
	for i, c := range chunks {
		paths[i] = filepath.Join(outputDir, OutputName(project, c.Index, len(chunks)))
	}
	if noClobber {
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrOutputExists, p)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to check output file %s: %w", p, err)
			}
		}
	}

	manifest := chunk.BuildManifest(chunks)
	for i, c := range chunks {
		if err := writePartFile(paths[i], project, tree, c, manifest, logger); err != nil {
			return nil, err
		}
		logger.Info("Wrote bundle part",
			zap.String("file", paths[i]),
			zap.Int("part", c.Index),
			zap.Int("files", len(c.Entries)),
			zap.String("size", humanize.IBytes(uint64(c.TotalBytes))))
	}
	return paths, nil
}

func writePartFile(path, project, tree string, c chunk.Chunk, manifest chunk.Manifest, logger *zap.Logger) (err error) {
	outFile, err := createFile(path)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("Failed to close output file", zap.String("file", path), zap.Error(closeErr))
			if err == nil {
				err = fmt.Errorf("failed to close %s: %w", path, closeErr)
			}
		}
	}()

	writer := bufio.NewWriter(outFile)
	if err := WritePart(writer, project, tree, c, manifest); err != nil {
		logger.Error("Failed to write bundle part", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// WritePart serializes one chunk: part banner, global table of contents,
// included-files line, mini table of contents, project tree, then every
// file with its labeled header.
func WritePart(w io.Writer, project, tree string, c chunk.Chunk, manifest chunk.Manifest) error {
	ew := &errWriter{w: w}

	ew.printf("[Part %d of %d | %s]\n", c.Index, len(manifest), project)
	if len(manifest) > 1 {
		ew.printf("Parts are numbered from 0. Please wait until all %d parts are uploaded before analyzing.\n", len(manifest))
	}
	ew.printf("\n[Table of Contents: Part → Files]\n")
	for _, m := range manifest {
		ew.printf("Part %d: %s\n", m.Index, strings.Join(m.Paths, ", "))
	}

	ew.printf("\nIncluded: %s\n", strings.Join(c.Paths(), ", "))

	ew.printf("\n[Mini Table of Contents: File → Part]\n")
	for _, p := range c.Paths() {
		ew.printf("  • %s → Part %d\n", p, c.Index)
	}

	ew.printf("\n[Project Structure with File Mapping]\n")
	ew.printf("%s", tree)
	ew.printf("\n(End of structure. Parts follow below.)\n%s\n\n", separatorLine)

	for _, e := range c.Entries {
		words := len(bytes.Fields(e.Content))
		ew.printf("[FILE]: %s\n", e.RelPath)
		ew.printf("[SIZE]: %d bytes\n", e.Size)
		ew.printf("[WORDS]: %d\n", words)
		ew.printf("[XXH3]: %016x\n", xxh3.Hash(e.Content))
		if words > LongFileWords {
			ew.printf("[NOTE]: Too long for direct prompt input.\n")
			ew.printf("[OK]: Uploading as a file is fully supported and preferred.\n")
		}
		ew.printf("[PART REF]: Part %d\n", c.Index)
		ew.write(e.Content)
		ew.printf("\n\n%s\n\n", separatorLine)
	}
	return ew.err
}

// errWriter keeps the first write error and turns later writes into no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) write(b []byte) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.Write(b)
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
