package finder

import "strings"

// DefaultExclusions returns the directory names every new Finder skips:
// dependency trees and version-control metadata.
func DefaultExclusions() []string {
	return []string{"node_modules", ".git"}
}

// ExclusionSet holds directory base names that stop a walk from descending.
// Names are compared exactly unless case folding is on. It is not safe to
// modify while a scan is reading it.
type ExclusionSet struct {
	names    []string
	index    map[string]struct{}
	foldCase bool
}

// NewExclusionSet creates a case-sensitive set holding names.
func NewExclusionSet(names ...string) *ExclusionSet {
	set := &ExclusionSet{
		index: make(map[string]struct{}),
	}

	for _, name := range names {
		set.Add(name)
	}

	return set
}

// Add inserts name. Adding a name twice is a no-op. Any string is accepted.
func (s *ExclusionSet) Add(name string) {
	key := s.key(name)
	if _, ok := s.index[key]; ok {
		return
	}

	s.index[key] = struct{}{}
	s.names = append(s.names, name)
}

// Contains reports whether a directory called name is excluded.
func (s *ExclusionSet) Contains(name string) bool {
	_, ok := s.index[s.key(name)]
	return ok
}

// FoldCase reports whether names are compared case-insensitively.
func (s *ExclusionSet) FoldCase() bool {
	return s.foldCase
}

// Len returns the number of distinct names.
func (s *ExclusionSet) Len() int {
	return len(s.names)
}

// Names returns a copy of the names in insertion order.
func (s *ExclusionSet) Names() []string {
	return append([]string(nil), s.names...)
}

// SetFoldCase switches between exact and case-insensitive comparison.
// Names that collide once folded collapse to the first one added.
func (s *ExclusionSet) SetFoldCase(fold bool) {
	if fold == s.foldCase {
		return
	}

	names := s.names
	s.foldCase = fold
	s.names = nil
	s.index = make(map[string]struct{}, len(names))

	for _, name := range names {
		s.Add(name)
	}
}

func (s *ExclusionSet) key(name string) string {
	if s.foldCase {
		return strings.ToLower(name)
	}

	return name
}
