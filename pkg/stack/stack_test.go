package stack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t,
		[]string{"c", "cpp", "cs", "dotnet", "fullstack", "java", "js", "python", "rust"},
		Names())
}

func TestLookup(t *testing.T) {
	p, err := Lookup(" Python ")
	require.NoError(t, err)
	assert.Equal(t, "python", p.Name)
	assert.Equal(t, []string{"py"}, p.Extensions)
	assert.Contains(t, p.Exclude, "__pycache__")

	_, err = Lookup("cobol")
	assert.ErrorIs(t, err, ErrUnknownStack)
}

func TestLookupReturnsCopy(t *testing.T) {
	p, err := Lookup("rust")
	require.NoError(t, err)
	p.Extensions[0] = "mutated"
	p.Exclude = append(p.Exclude, "extra")

	again, err := Lookup("rust")
	require.NoError(t, err)
	assert.Equal(t, []string{"rs", "toml"}, again.Extensions)
	assert.NotContains(t, again.Exclude, "extra")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		files  []string
		want   string
		wantOK bool
	}{
		{"empty", nil, "", false},
		{"maven", []string{"pom.xml", "README.md"}, "java", true},
		{"cargo", []string{"Cargo.toml"}, "rust", true},
		{"csproj suffix", []string{"App.CSPROJ"}, "dotnet", true},
		{"python pair", []string{"pyproject.toml", "requirements.txt"}, "python", true},
		{"mixed", []string{"package.json", "requirements.txt"}, "fullstack", true},
		{"unknown only", []string{"notes.txt"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644))
			}
			got, ok := Detect(root)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectIgnoresMarkerDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "package.json"), 0o755))
	_, ok := Detect(root)
	assert.False(t, ok)
}
