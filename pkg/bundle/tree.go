// File: pkg/bundle/tree.go
package bundle

import (
	"fmt"
	"sort"
	"strings"

	"projinspect/pkg/filter"
)

type treeNode struct {
	name     string
	relPath  string // set for files only
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return n.children != nil
}

// RenderTree renders the selected files as an indented tree rooted at
// projectName. Only directories that hold selected files appear.
// Directories come first, then files, each group in case-insensitive
// order. When partOf is non-nil every file is annotated with its part.
func RenderTree(projectName string, entries []filter.FileEntry, partOf map[string]int) string {
	root := &treeNode{name: projectName, children: map[string]*treeNode{}}
	for _, e := range entries {
		insertPath(root, e.RelPath)
	}

	var lines []string
	lines = append(lines, projectName+"/")
	renderChildren(root, "", partOf, &lines)
	return strings.Join(lines, "\n") + "\n"
}

func insertPath(root *treeNode, relPath string) {
	parts := strings.Split(relPath, "/")
	node := root
	for i, part := range parts {
		if part == "" || part == "." {
			continue
		}
		child, ok := node.children[part]
		if !ok {
			child = &treeNode{name: part}
			if i < len(parts)-1 {
				child.children = map[string]*treeNode{}
			} else {
				child.relPath = relPath
			}
			node.children[part] = child
		}
		node = child
	}
}

func renderChildren(node *treeNode, prefix string, partOf map[string]int, lines *[]string) {
	children := make([]*treeNode, 0, len(node.children))
	for _, c := range node.children {
		children = append(children, c)
	}
	// Sort entries: directories first, then files, alphabetically
	sort.Slice(children, func(i, j int) bool {
		if children[i].isDir() != children[j].isDir() {
			return children[i].isDir()
		}
		li, lj := strings.ToLower(children[i].name), strings.ToLower(children[j].name)
		if li != lj {
			return li < lj
		}
		return children[i].name < children[j].name
	})

	for i, c := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		if c.isDir() {
			*lines = append(*lines, fmt.Sprintf("%s%s%s/", prefix, connector, c.name))
			renderChildren(c, prefix+extension, partOf, lines)
			continue
		}

		line := prefix + connector + c.name
		if partOf != nil {
			if part, ok := partOf[c.relPath]; ok {
				line += fmt.Sprintf("    → Part %d", part)
			}
		}
		*lines = append(*lines, line)
	}
}
