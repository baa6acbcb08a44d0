package filter

import (
	"path"
	"sort"
	"strings"
)

// AllowList is the inclusion side of the filter. A file is allowed when its
// extension, its base name, or the name of one of its ancestor folders is listed.
type AllowList struct {
	Extensions map[string]bool // lowercase, no leading dot
	Files      map[string]bool // exact base names
	Folders    map[string]bool // directory names
}

// NewAllowList builds an AllowList from extension names (with or without dot).
func NewAllowList(extensions ...string) AllowList {
	a := AllowList{
		Extensions: map[string]bool{},
		Files:      map[string]bool{},
		Folders:    map[string]bool{},
	}
	for _, ext := range extensions {
		if e := normalizeExt(ext); e != "" {
			a.Extensions[e] = true
		}
	}
	return a
}

// ParseInclude parses a comma-separated --include value.
//
//	py, .py       extension
//	package.json  exact file name
//	src/          folder name
func ParseInclude(raw string) AllowList {
	a := NewAllowList()
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		switch {
		case item == "":
		case strings.HasSuffix(item, "/"):
			if name := strings.Trim(item, "/"); name != "" {
				a.Folders[name] = true
			}
		case strings.HasPrefix(item, ".") && !strings.Contains(item[1:], "."):
			a.Extensions[normalizeExt(item)] = true
		case strings.Contains(item, "."):
			a.Files[item] = true
		default:
			a.Extensions[normalizeExt(item)] = true
		}
	}
	return a
}

// Empty reports whether nothing at all is allowed.
func (a AllowList) Empty() bool {
	return len(a.Extensions) == 0 && len(a.Files) == 0 && len(a.Folders) == 0
}

// Allows reports whether relPath (forward slashes) is selected, and which
// explicit file or folder name selected it, if any.
func (a AllowList) Allows(relPath string) (bool, string) {
	base := path.Base(relPath)
	if a.Files[base] {
		return true, base
	}
	if a.Extensions[extOf(base)] {
		return true, ""
	}
	dir := path.Dir(relPath)
	for dir != "." && dir != "/" && dir != "" {
		if name := path.Base(dir); a.Folders[name] {
			return true, name + "/"
		}
		dir = path.Dir(dir)
	}
	return false, ""
}

// ExplicitNames lists the explicit file and folder names, sorted. Folders carry a trailing slash.
func (a AllowList) ExplicitNames() []string {
	names := make([]string, 0, len(a.Files)+len(a.Folders))
	for f := range a.Files {
		names = append(names, f)
	}
	for d := range a.Folders {
		names = append(names, d+"/")
	}
	sort.Strings(names)
	return names
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// extOf returns the lowercase extension of name without its dot.
func extOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}
