package finder

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// EnvPrefix is the file name prefix FindEnvFiles looks for.
const EnvPrefix = ".env"

// Matcher decides whether a file, by base name, belongs in the results.
type Matcher interface {
	Match(name string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(name string) bool

// Match calls fn(name).
func (fn MatcherFunc) Match(name string) bool {
	return fn(name)
}

// PrefixMatcher matches names starting with Prefix, byte for byte.
type PrefixMatcher struct {
	Prefix string
}

// Match reports whether name starts with the prefix.
func (m PrefixMatcher) Match(name string) bool {
	return strings.HasPrefix(name, m.Prefix)
}

// EnvFileMatcher matches .env, .env.local, .envrc and friends.
func EnvFileMatcher() PrefixMatcher {
	return PrefixMatcher{Prefix: EnvPrefix}
}

// SubstringMatcher matches names containing Pattern. An empty pattern matches every name.
type SubstringMatcher struct {
	Pattern string
}

// Match reports whether name contains the pattern.
func (m SubstringMatcher) Match(name string) bool {
	return strings.Contains(name, m.Pattern)
}

// GlobMatcher matches names against a doublestar pattern such as
// "*.{yml,yaml}" or ".env.*". Matching is case-sensitive, like the other
// matchers. An empty pattern matches every name.
type GlobMatcher struct {
	pattern string
}

// NewGlobMatcher validates pattern and returns a matcher for it.
func NewGlobMatcher(pattern string) (*GlobMatcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	return &GlobMatcher{pattern: pattern}, nil
}

// Match reports whether name matches the glob.
func (m *GlobMatcher) Match(name string) bool {
	if m.pattern == "" {
		return true
	}

	matched, err := doublestar.Match(m.pattern, name)
	if err != nil {
		return false
	}

	return matched
}

// Pattern returns the glob pattern.
func (m *GlobMatcher) Pattern() string {
	return m.pattern
}
