// Package filesystem walks directory trees on the local disk or over SFTP.
//
// The walker is a lazy, pull-based iterator: each call to Next performs at
// most one directory listing, directories are pruned before they are
// listed, and a node that cannot be read surfaces as an error on its own
// step instead of ending the walk.
package filesystem

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kr/fs"
)

// FileSystem is the set of operations the walker needs from a backend.
// *sftp.Client satisfies it, as do LocalFileSystem and MemFileSystem.
type FileSystem = fs.FileSystem

// LocalFileSystem implements FileSystem on the local disk.
type LocalFileSystem struct {
	// FollowRoot is stat'ed through a final symlink; every other path is not
	FollowRoot string
}

// Join joins path elements with the platform separator.
func (LocalFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Lstat returns file info without following a final symlink, except for
// FollowRoot.
func (l LocalFileSystem) Lstat(name string) (os.FileInfo, error) {
	if l.FollowRoot != "" && name == l.FollowRoot {
		return os.Stat(name) //nolint:wrapcheck // *fs.PathError already names the path
	}

	return os.Lstat(name) //nolint:wrapcheck // *fs.PathError already names the path
}

// ReadDir lists a directory in name order.
func (LocalFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	dir, err := os.Open(dirname)
	if err != nil {
		return nil, err //nolint:wrapcheck // *fs.PathError already names the path
	}
	defer dir.Close()

	infos, err := dir.Readdir(-1)
	if err != nil {
		return nil, err //nolint:wrapcheck // *fs.PathError already names the path
	}

	sortByName(infos)

	return infos, nil
}

// SortedFileSystem lists directories of a backend that makes no ordering
// promise, such as *sftp.Client, in name order.
type SortedFileSystem struct {
	FileSystem
}

// ReadDir lists dirname in name order.
func (s SortedFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	infos, err := s.FileSystem.ReadDir(dirname)
	if err != nil {
		return nil, err //nolint:wrapcheck // backend errors already name the path
	}

	sortByName(infos)

	return infos, nil
}

func sortByName(infos []os.FileInfo) {
	slices.SortFunc(infos, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})
}
