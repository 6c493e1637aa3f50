package filesystem

import (
	"errors"
	"fmt"
	"sync"
)

// Opener resolves a root string into a walker.
type Opener interface {
	Open(root string, opts ...WalkOption) (*Walker, error)
}

// FSOpener walks every root on the same FileSystem.
type FSOpener struct {
	FS FileSystem
}

// Open returns a walker over o.FS.
func (o FSOpener) Open(root string, opts ...WalkOption) (*Walker, error) {
	return WalkFS(root, o.FS, opts...), nil
}

// URLOpener opens local paths on the local disk and sftp:// roots over SSH.
// Connections are shared between roots on the same user@host:port and
// stay open until Close.
type URLOpener struct {
	mu    sync.Mutex
	conns map[string]*SFTPConnection
	dial  func(host string, port int, user string) (*SFTPConnection, error)
}

// NewOpener creates a URLOpener that dials with Connect.
func NewOpener() *URLOpener {
	return &URLOpener{
		conns: make(map[string]*SFTPConnection),
		dial:  Connect,
	}
}

// Close closes every SFTP connection the opener made.
func (o *URLOpener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var errs []error
	for key, conn := range o.conns {
		errs = append(errs, conn.Close())
		delete(o.conns, key)
	}

	return errors.Join(errs...)
}

// Open parses root and returns a walker for it. Remote entry paths are
// reported as sftp:// URLs that ParsePath maps back to the same file.
func (o *URLOpener) Open(root string, opts ...WalkOption) (*Walker, error) {
	parsed, err := ParsePath(root)
	if err != nil {
		return nil, err
	}

	if !parsed.IsRemote {
		return Walk(parsed.LocalPath, opts...), nil
	}

	conn, err := o.connection(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s@%s: %w", parsed.User, parsed.Addr(), err)
	}

	opts = append([]WalkOption{WithPathPrefix(parsed.Prefix())}, opts...)

	return WalkFS(parsed.Path, SortedFileSystem{conn.Client()}, opts...), nil
}

func (o *URLOpener) connection(parsed *ParsedPath) (*SFTPConnection, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	key := parsed.User + "@" + parsed.Addr()
	if conn, ok := o.conns[key]; ok {
		return conn, nil
	}

	conn, err := o.dial(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, err
	}

	o.conns[key] = conn

	return conn, nil
}
