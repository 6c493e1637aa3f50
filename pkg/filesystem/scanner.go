package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is reported when a walk root exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// EntryKind classifies a visited node.
type EntryKind int

// Entry kinds.
const (
	KindOther EntryKind = iota
	KindFile
	KindDir
)

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Entry is a single node visited during a walk.
type Entry struct {
	// Path is the root joined with every component down to this node
	Path string

	// Name is the final path component
	Name string

	Kind EntryKind
}

// EntryError reports a node that could not be read. The walk continues past it.
type EntryError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	msg := e.Err.Error()
	if strings.Contains(msg, e.Path) {
		return msg
	}

	return fmt.Sprintf("%s: %s", e.Path, msg)
}

// Unwrap returns the underlying filesystem error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// entryFromInfo builds an Entry; only regular files count as files, so
// symlinks and devices are KindOther.
func entryFromInfo(path string, info os.FileInfo) Entry {
	kind := KindOther

	switch {
	case info.Mode().IsRegular():
		kind = KindFile
	case info.IsDir():
		kind = KindDir
	}

	return Entry{
		Path: path,
		Name: info.Name(),
		Kind: kind,
	}
}

// baseName is used for entries whose info is unavailable.
func baseName(path string) string {
	return filepath.Base(path)
}
