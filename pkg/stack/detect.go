package stack

import (
	"os"
	"path/filepath"
	"strings"
)

// markers maps a file found at the project root to the stack it implies.
// Suffix markers start with '*'.
var markers = []struct {
	pattern string
	stack   string
}{
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"build.gradle.kts", "java"},
	{"Cargo.toml", "rust"},
	{"package.json", "js"},
	{"tsconfig.json", "js"},
	{"*.csproj", "dotnet"},
	{"*.sln", "dotnet"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"setup.py", "python"},
	{"Pipfile", "python"},
	{"CMakeLists.txt", "cpp"},
	{"go.mod", "fullstack"},
}

// Detect guesses a stack from marker files at the top of root. A single
// distinct stack is returned as is, several distinct stacks resolve to
// "fullstack". ok is false when nothing recognizable was found.
// Detect only reads directory names; callers give an explicit --stack or
// --include precedence over its guess.
func Detect(root string) (name string, ok bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}

	found := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, m := range markers {
			if matchMarker(m.pattern, e.Name()) {
				found[m.stack] = true
			}
		}
	}

	switch len(found) {
	case 0:
		return "", false
	case 1:
		for s := range found {
			return s, true
		}
	}
	return "fullstack", true
}

func matchMarker(pattern, name string) bool {
	if strings.HasPrefix(pattern, "*") {
		return strings.EqualFold(filepath.Ext(name), pattern[1:])
	}
	return name == pattern
}
