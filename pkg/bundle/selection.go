// File: pkg/bundle/selection.go
package bundle

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"projinspect/pkg/filter"
	"projinspect/pkg/ignore"
	"projinspect/pkg/stack"

	"go.uber.org/zap"
)

// ErrNoSelection means neither --stack nor --include was usable and no stack could be detected.
var ErrNoSelection = errors.New("no stack or include list given and no stack could be detected")

// selection is the resolved inclusion and exclusion policy for a run.
type selection struct {
	stack    string
	detected bool
	allow    filter.AllowList
	exclude  *ignore.Set
}

// resolveSelection applies the precedence rules: --include defines the
// allow-list when given, otherwise --stack, otherwise a detected stack.
// Exclusions are layered as stack defaults, the project ignore file, the
// extra ignore file, generated bundle names, then --exclude.
func resolveSelection(args Arguments, root, project string, logger *zap.Logger) (selection, error) {
	var sel selection

	var profile *stack.Profile
	switch {
	case args.Stack != "":
		p, err := stack.Lookup(args.Stack)
		if err != nil {
			return sel, err
		}
		profile = &p
	case strings.TrimSpace(args.Include) == "":
		name, ok := stack.Detect(root)
		if !ok {
			return sel, ErrNoSelection
		}
		p, err := stack.Lookup(name)
		if err != nil {
			return sel, err
		}
		profile = &p
		sel.detected = true
		logger.Info("Detected project stack", zap.String("stack", name))
	}

	if include := strings.TrimSpace(args.Include); include != "" {
		sel.allow = filter.ParseInclude(include)
		if sel.allow.Empty() {
			return sel, fmt.Errorf("%w: --include %q names nothing", ErrNoSelection, args.Include)
		}
	} else {
		sel.allow = filter.NewAllowList(profile.Extensions...)
	}

	sel.exclude = ignore.New(logger)
	if profile != nil {
		sel.stack = profile.Name
		sel.exclude.AddLines("stack:"+profile.Name, profile.Exclude...)
	}
	if err := sel.exclude.AddFile(filepath.Join(root, ignore.FileName)); err != nil {
		return sel, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	if args.IgnoreFile != "" {
		if err := sel.exclude.AddFile(args.IgnoreFile); err != nil {
			return sel, fmt.Errorf("failed to load ignore patterns: %w", err)
		}
	}
	sel.exclude.AddLines("output", outputPatterns(root, args.OutputDir, project)...)
	sel.exclude.AddLines("flag", args.Exclude...)

	logger.Debug("Resolved selection",
		zap.String("stack", sel.stack),
		zap.Bool("detected", sel.detected),
		zap.Int("extensions", len(sel.allow.Extensions)),
		zap.Int("excludePatterns", sel.exclude.Len()))
	return sel, nil
}

// outputPatterns anchors the generated bundle names to the output directory
// so earlier bundles written inside the project are not bundled again.
// Nothing is excluded when the output directory lies outside root.
func outputPatterns(root, outputDir, project string) []string {
	if outputDir == "" {
		outputDir = "."
	}
	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(resolvePath(root), resolvePath(outAbs))
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return nil
	}
	prefix := "/"
	if rel != "." {
		prefix += rel + "/"
	}
	return []string{prefix + OutputName(project, 0, 1), prefix + project + "-part_*.txt"}
}

// resolvePath follows symlinks when the path exists.
func resolvePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
