package filesystem

import (
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemFileSystem is an in-memory FileSystem for testing. Paths use forward
// slashes. Failures can be injected per path with FailReadDir and FailLstat.
type MemFileSystem struct {
	mu          sync.RWMutex
	nodes       map[string]*memNode
	readDirErrs map[string]error
	lstatErrs   map[string]error
}

// memNode represents a node in the in-memory filesystem.
type memNode struct {
	mode    os.FileMode
	size    int64
	modTime time.Time
}

// memFileInfo implements os.FileInfo for in-memory nodes.
type memFileInfo struct {
	name string
	node *memNode
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.node.size }
func (fi *memFileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.node.mode.IsDir() }
func (fi *memFileInfo) Sys() interface{}   { return nil }

// NewMemFileSystem creates an empty in-memory filesystem containing only "/".
func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{
		nodes: map[string]*memNode{
			"/": {mode: os.ModeDir | 0o755},
		},
		readDirErrs: make(map[string]error),
		lstatErrs:   make(map[string]error),
	}
}

// AddDir adds a directory and any missing parents.
func (m *MemFileSystem) AddDir(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mkdirAllLocked(path.Clean(name))
}

// AddFile adds a regular file and any missing parent directories.
func (m *MemFileSystem) AddFile(name string) {
	m.add(name, 0o644)
}

// AddSymlink adds a symlink node. The walker never follows it.
func (m *MemFileSystem) AddSymlink(name string) {
	m.add(name, os.ModeSymlink|0o777)
}

// FailLstat makes Lstat of name return err.
func (m *MemFileSystem) FailLstat(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lstatErrs[path.Clean(name)] = err
}

// FailReadDir makes listing the directory name return err.
func (m *MemFileSystem) FailReadDir(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readDirErrs[path.Clean(name)] = err
}

// Join joins path elements with forward slashes.
func (m *MemFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Lstat returns info for name.
func (m *MemFileSystem) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clean := path.Clean(name)

	if err, ok := m.lstatErrs[clean]; ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}

	node, ok := m.nodes[clean]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}

	return &memFileInfo{name: path.Base(clean), node: node}, nil
}

// ReadDir lists the direct children of dirname in name order.
func (m *MemFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clean := path.Clean(dirname)

	if err, ok := m.readDirErrs[clean]; ok {
		return nil, &fs.PathError{Op: "open", Path: dirname, Err: err}
	}

	node, ok := m.nodes[clean]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: dirname, Err: fs.ErrNotExist}
	}

	if !node.mode.IsDir() {
		return nil, &fs.PathError{Op: "readdirent", Path: dirname, Err: ErrNotDirectory}
	}

	prefix := clean + "/"
	if clean == "/" {
		prefix = "/"
	}

	var infos []os.FileInfo

	for p, child := range m.nodes {
		if p == clean || !strings.HasPrefix(p, prefix) {
			continue
		}

		rest := p[len(prefix):]
		if strings.Contains(rest, "/") {
			continue
		}

		infos = append(infos, &memFileInfo{name: rest, node: child})
	}

	slices.SortFunc(infos, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return infos, nil
}

// Remove deletes name and everything below it.
func (m *MemFileSystem) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clean := path.Clean(name)
	for p := range m.nodes {
		if p == clean || strings.HasPrefix(p, clean+"/") {
			delete(m.nodes, p)
		}
	}
}

func (m *MemFileSystem) add(name string, mode os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clean := path.Clean(name)
	m.mkdirAllLocked(path.Dir(clean))
	m.nodes[clean] = &memNode{mode: mode, modTime: time.Now()}
}

// mkdirAllLocked assumes the lock is held.
func (m *MemFileSystem) mkdirAllLocked(dir string) {
	if dir == "." || dir == "/" {
		return
	}

	m.mkdirAllLocked(path.Dir(dir))

	if _, exists := m.nodes[dir]; !exists {
		m.nodes[dir] = &memNode{mode: os.ModeDir | 0o755, modTime: time.Now()}
	}
}
