package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Rules are tried in order; the first category with a matching pattern wins.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []matchRule{
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryLoop, []string{
				"too many levels of symbolic links",
				"symlink loop",
			}},
			{CategoryNotDirectory, []string{
				"not a directory",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file does not exist",
				"file not found",
				"path does not exist",
			}},
			{CategoryConnection, []string{
				"ssh connection failed",
				"sftp session",
				"no ssh authentication methods",
				"connection refused",
				"no route to host",
				"no such host",
				"key mismatch",
				"key is unknown",
			}},
			{CategoryIO, []string{
				"input/output error",
				"i/o error",
				"stale file handle",
			}},
		},
	}
}

// matchRule maps patterns to a category.
type matchRule struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	rules []matchRule
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
