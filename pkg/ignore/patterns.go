package ignore

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddle   = regexp.MustCompile(`/\\\*\\\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\\\*\\\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\\\*\\\*/`)
)

// parsePatternLine turns one ignore line into a Pattern.
// Returns nil, nil for blank lines and comments.
func parsePatternLine(line string) (*Pattern, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	p := &Pattern{Line: trimmed}
	if strings.HasPrefix(trimmed, "!") {
		p.Negate = true
		trimmed = trimmed[1:]
	}
	// "\#" and "\!" escape a literal leading character.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	if strings.HasSuffix(trimmed, "/") {
		p.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}
	anchored := strings.HasPrefix(trimmed, "/") || strings.Contains(trimmed, "/")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return nil, nil
	}

	body := regexp.QuoteMeta(trimmed)
	body = bracketsToRegex(body)
	body = handleDoubleStarPatterns(body)
	body = wildcardToRegex(body)

	expr := anchorPattern(body, anchored, p.DirOnly)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", line, err)
	}
	p.Regexp = re
	return p, nil
}

// handleDoubleStarPatterns replaces quoted '**' segments with regex equivalents.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddle.ReplaceAllString(pattern, `(/|/.+/)`)
	pattern = doubleStarTrailing.ReplaceAllString(pattern, `(/.*)?`)
	pattern = doubleStarLeading.ReplaceAllString(pattern, `(.*/)?`)
	return pattern
}

// wildcardToRegex converts quoted '*' and '?' wildcards to regex equivalents.
func wildcardToRegex(pattern string) string {
	pattern = strings.ReplaceAll(pattern, `\*\*`, `.*`)
	pattern = strings.ReplaceAll(pattern, `\*`, `[^/]*`)
	return strings.ReplaceAll(pattern, `\?`, `[^/]`)
}

// bracketsToRegex converts quoted '[...]' and '[!...]' classes back into
// regex classes that never match '/'. An unterminated '[' stays literal.
func bracketsToRegex(pattern string) string {
	var b strings.Builder
	for {
		start := strings.Index(pattern, `\[`)
		if start < 0 {
			break
		}
		end := strings.Index(pattern[start+2:], `\]`)
		if end < 0 {
			break
		}
		inner := strings.ReplaceAll(pattern[start+2:start+2+end], `\`, "")
		b.WriteString(pattern[:start])
		if strings.HasPrefix(inner, "!") || strings.HasPrefix(inner, "^") {
			b.WriteString("[^/" + quoteClass(inner[1:]) + "]")
		} else {
			b.WriteString("[" + quoteClass(inner) + "]")
		}
		pattern = pattern[start+2+end+2:]
	}
	b.WriteString(pattern)
	return b.String()
}

// quoteClass escapes the characters that are special inside a regex class.
func quoteClass(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\\' || r == ']' || r == '[' || r == '^' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// anchorPattern anchors the regex so it matches a whole path, or any path
// below a matched directory. Unanchored patterns may match at any depth.
func anchorPattern(body string, anchored, dirOnly bool) string {
	prefix := "^(|.*/)"
	if anchored {
		prefix = "^"
	}
	if dirOnly {
		// Directory candidates carry a trailing slash, so files never match directly.
		return prefix + body + "/.*$"
	}
	return prefix + body + "(/.*)?$"
}

// normalizePath converts OS separators and marks directories with a trailing slash.
func normalizePath(path string, isDir bool) string {
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if path == "." || path == "" {
		return ""
	}
	if isDir && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
