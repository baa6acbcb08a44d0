// Package stack holds the technology stack presets: which extensions a
// stack cares about, which folders usually hold its sources, and which
// directories are build or tool output to exclude.
package stack

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownStack is returned by Lookup for names outside the preset table.
var ErrUnknownStack = errors.New("unknown stack")

// Profile is one stack preset. Profiles returned by Lookup are copies and
// may be modified by the caller.
type Profile struct {
	Name           string
	Extensions     []string // without leading dot, lowercase
	IncludeFolders []string // conventional source folders, informational
	Exclude        []string // exclusion patterns (directory names)
}

var profiles = map[string]Profile{
	"java": {
		Extensions:     []string{"java", "xml", "properties"},
		IncludeFolders: []string{"src"},
		Exclude:        []string{"target", ".git", ".idea", "bin", "out", "build", "lib"},
	},
	"python": {
		Extensions:     []string{"py"},
		IncludeFolders: []string{".", "app"},
		Exclude:        []string{"__pycache__", ".venv", ".git", "build", "dist"},
	},
	"cs": {
		Extensions:     []string{"cs", "config", "csproj"},
		IncludeFolders: []string{"src", "app"},
		Exclude:        []string{"bin", "obj", ".vs", ".git"},
	},
	"dotnet": {
		Extensions:     []string{"cs", "config", "csproj"},
		IncludeFolders: []string{"src", "app"},
		Exclude:        []string{"bin", "obj", ".vs", ".git"},
	},
	"cpp": {
		Extensions:     []string{"cpp", "c", "h", "hpp"},
		IncludeFolders: []string{"src", "include"},
		Exclude:        []string{"build", "bin", ".git"},
	},
	"c": {
		Extensions:     []string{"c", "h"},
		IncludeFolders: []string{"src", "include"},
		Exclude:        []string{"build", "bin", ".git"},
	},
	"rust": {
		Extensions:     []string{"rs", "toml"},
		IncludeFolders: []string{"src"},
		Exclude:        []string{"target", ".git"},
	},
	"js": {
		Extensions:     []string{"js", "json", "ts"},
		IncludeFolders: []string{"src", "app"},
		Exclude:        []string{"node_modules", "dist", ".git"},
	},
	"fullstack": {
		Extensions: []string{
			// Backend
			"py", "java", "cs", "c", "cpp", "go", "rs", "php", "rb",
			// Frontend
			"js", "ts", "jsx", "tsx", "html", "htm", "css", "scss", "sass",
			// Config / infra
			"json", "yaml", "yml", "toml", "ini", "cfg", "env", "xml",
			"tf", "tfvars", "sh", "bat", "ps1",
			// Docs / data
			"md", "txt", "csv", "tsv", "sql",
		},
		IncludeFolders: []string{"src", "app", ".", "frontend", "backend", "infra", "terraform", "pipelines"},
		Exclude: []string{
			"node_modules", "dist", "build", "bin", "obj", "__pycache__", ".venv",
			".git", ".idea", ".vscode", ".DS_Store", "coverage", ".pytest_cache", ".mypy_cache",
			".next", ".parcel-cache", ".turbo", ".cache", ".nuxt", ".angular", "target",
		},
	},
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the named preset. Names are case-insensitive.
func Lookup(name string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	p, ok := profiles[key]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (valid: %s)", ErrUnknownStack, name, strings.Join(Names(), ", "))
	}
	return Profile{
		Name:           key,
		Extensions:     append([]string(nil), p.Extensions...),
		IncludeFolders: append([]string(nil), p.IncludeFolders...),
		Exclude:        append([]string(nil), p.Exclude...),
	}, nil
}
