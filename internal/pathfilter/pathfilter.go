// Package pathfilter decides which walked paths are listed.
package pathfilter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/taigrr/fsutil/internal/types"
)

// PathFilter drops hidden entries and paths matching configured ignore
// patterns.
type PathFilter struct {
	ignoredPatterns []string
}

// New creates a new PathFilter with the given configuration. Invalid
// patterns are dropped.
func New(config *types.PathFilterConfig) *PathFilter {
	pf := &PathFilter{}
	if config != nil {
		for _, pattern := range config.IgnoredPatterns {
			pattern = filepath.ToSlash(strings.TrimSpace(pattern))
			if pattern == "" || !doublestar.ValidatePattern(pattern) {
				continue
			}
			pf.ignoredPatterns = append(pf.ignoredPatterns, pattern)
		}
	}
	return pf
}

// NewWithPatterns creates a PathFilter ignoring the given doublestar patterns.
func NewWithPatterns(patterns ...string) *PathFilter {
	return New(&types.PathFilterConfig{IgnoredPatterns: patterns})
}

// Patterns returns the active ignore patterns.
func (pf *PathFilter) Patterns() []string {
	return append([]string(nil), pf.ignoredPatterns...)
}

// IsHidden reports whether path names a hidden entry: its final component
// starts with '.', or the path string as a whole does (relative hidden roots).
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".") || strings.HasPrefix(path, ".")
}

// MatchesSuffix reports whether path ends with suffix. A blank suffix matches
// everything. This is a plain string test; no '.' is inserted.
func MatchesSuffix(path, suffix string) bool {
	if strings.TrimSpace(suffix) == "" {
		return true
	}
	return strings.HasSuffix(path, suffix)
}

// IsAllowed checks if a path is allowed based on the filter rules.
func (pf *PathFilter) IsAllowed(path string) bool {
	return !IsHidden(path)
}

// IsIgnored reports whether rel, a path relative to the walk root, matches
// any ignore pattern.
func (pf *PathFilter) IsIgnored(rel string) bool {
	normalizedPath := filepath.ToSlash(rel)
	for _, pattern := range pf.ignoredPatterns {
		if ok, err := doublestar.Match(pattern, normalizedPath); err == nil && ok {
			return true
		}
	}
	return false
}
