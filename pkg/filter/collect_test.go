package filter

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"projinspect/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func relPaths(entries []FileEntry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.RelPath
	}
	return paths
}

func TestCollectFiltersAndOrders(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.py":                "print('hi')\n",
		"app/models.py":          "class M: pass\n",
		"app/views.py":           "def v(): pass\n",
		"app/__pycache__/x.py":   "cached\n",
		".venv/lib/site.py":      "venv\n",
		"README.md":              "# readme\n",
		"empty.py":               "",
		"blob.py":                "\x00\x01\x02binary",
		"tests/test_models.py":   "def test(): pass\n",
		"tests/fixtures/data.py": "DATA = 1\n",
		"static/logo.png":        "png",
	})

	ex := ignore.New(nil)
	ex.AddLines("stack:python", "__pycache__", ".venv", ".git", "build", "dist")
	ex.AddLines("flag", "fixtures")

	entries, report, err := Collect(context.Background(), Options{
		Root:    root,
		Allow:   NewAllowList("py"),
		Exclude: ex,
		Workers: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"app/models.py",
		"app/views.py",
		"main.py",
		"tests/test_models.py",
	}, relPaths(entries))

	for _, e := range entries {
		assert.Equal(t, int64(len(e.Content)), e.Size)
		assert.True(t, filepath.IsAbs(e.AbsPath))
	}
	assert.Equal(t, map[string]int{"py": 4}, report.Extensions)
	assert.Equal(t, 6, report.Considered)

	reasons := map[string]string{}
	for _, s := range report.Skipped {
		reasons[s.Path] = s.Reason
	}
	assert.Equal(t, ReasonEmpty, reasons["empty.py"])
	assert.Equal(t, ReasonBinaryContent, reasons["blob.py"])
}

func TestCollectExcludeBeatsInclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"package.json":         "{}",
		"src/index.js":         "export {}",
		"src/generated/api.js": "export {}",
	})

	ex := ignore.New(nil)
	ex.AddLines("flag", "generated", "package.json")

	entries, report, err := Collect(context.Background(), Options{
		Root:    root,
		Allow:   ParseInclude("js,package.json"),
		Exclude: ex,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.js"}, relPaths(entries))
	assert.Equal(t, []string{"package.json"}, report.IncludeUnmatched)
	assert.Empty(t, report.IncludeMatched)
}

func TestCollectIncludeFoldersAndFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Dockerfile.dev":     "FROM scratch\n",
		"deploy/run.sh":      "echo run\n",
		"deploy/values.yaml": "a: 1\n",
		"src/main.rs":        "fn main() {}\n",
	})

	entries, report, err := Collect(context.Background(), Options{
		Root:  root,
		Allow: ParseInclude("rs,Dockerfile.dev,deploy/,missing.cfg"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Dockerfile.dev",
		"deploy/run.sh",
		"deploy/values.yaml",
		"src/main.rs",
	}, relPaths(entries))
	assert.Equal(t, []string{"Dockerfile.dev", "deploy/"}, report.IncludeMatched)
	assert.Equal(t, []string{"missing.cfg"}, report.IncludeUnmatched)
}

func TestCollectParallelReadsKeepWalkOrder(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 200; i++ {
		name := filepath.ToSlash(filepath.Join("d"+string(rune('a'+i%5)), strings.Repeat("x", i%7+1)+string(rune('a'+i%26))+".txt"))
		files[name] = strings.Repeat("line\n", i+1)
	}
	root := writeTree(t, files)

	sequential, _, err := Collect(context.Background(), Options{Root: root, Allow: NewAllowList("txt"), Workers: 1})
	require.NoError(t, err)
	parallel, _, err := Collect(context.Background(), Options{Root: root, Allow: NewAllowList("txt"), Workers: 16})
	require.NoError(t, err)

	assert.Equal(t, relPaths(sequential), relPaths(parallel))
	assert.Len(t, parallel, len(files))
}

func TestCollectErrors(t *testing.T) {
	_, _, err := Collect(context.Background(), Options{Root: filepath.Join(t.TempDir(), "nope"), Allow: NewAllowList("go")})
	assert.ErrorIs(t, err, ErrRootUnreadable)

	file := filepath.Join(t.TempDir(), "file.go")
	require.NoError(t, os.WriteFile(file, []byte("package x"), 0o644))
	_, _, err = Collect(context.Background(), Options{Root: file, Allow: NewAllowList("go")})
	assert.ErrorIs(t, err, ErrRootUnreadable)

	root := writeTree(t, map[string]string{"notes.md": "x"})
	_, _, err = Collect(context.Background(), Options{Root: root, Allow: NewAllowList("go")})
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestCollectCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": "package a\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Collect(ctx, Options{Root: root, Allow: NewAllowList("go")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSkipError(t *testing.T) {
	inner := os.ErrPermission
	err := &SkipError{Path: "a.go", Reason: ReasonUnreadable, Err: inner}
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "skipped a.go: unreadable: permission denied", err.Error())
	assert.Equal(t, "skipped b.go: empty file", (&SkipError{Path: "b.go", Reason: ReasonEmpty}).Error())
}

func TestCollectSymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	root := writeTree(t, map[string]string{"main.go": "package main\n"})
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(root, link))

	entries, _, err := Collect(context.Background(), Options{Root: link, Allow: NewAllowList("go")})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, relPaths(entries))
}

func TestCollectSkipsUnusableEntries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	root := writeTree(t, map[string]string{
		"main.go":    "package main\n",
		"real/x.txt": "x\n",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "main.go"), filepath.Join(root, "alias.go")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.go"), filepath.Join(root, "dangling.go")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "linkdir.go")))

	entries, report, err := Collect(context.Background(), Options{Root: root, Allow: NewAllowList("go")})
	require.NoError(t, err)
	assert.Equal(t, []string{"alias.go", "main.go"}, relPaths(entries))
	assert.Equal(t, "package main\n", string(entries[0].Content))

	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "dangling.go", report.Skipped[0].Path)
	assert.Equal(t, ReasonUnreadable, report.Skipped[0].Reason)
	assert.ErrorIs(t, report.Skipped[0], fs.ErrNotExist)
	assert.Equal(t, "linkdir.go", report.Skipped[1].Path)
	assert.Equal(t, ReasonNotRegularFile, report.Skipped[1].Reason)
}

func TestReadOneUnreadable(t *testing.T) {
	dir := t.TempDir()
	res := readOne(candidate{relPath: "gone.go", absPath: filepath.Join(dir, "gone.go")}, zap.NewNop())
	assert.Nil(t, res.entry)
	require.NotNil(t, res.skip)
	assert.Equal(t, ReasonUnreadable, res.skip.Reason)
	assert.ErrorIs(t, res.skip, fs.ErrNotExist)
}
