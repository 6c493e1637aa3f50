// Package finder locates files by name in directory trees.
//
// A Finder pairs an exclusion set with a walker backend. Each scan pulls
// entries from a filesystem.Walker, keeps the regular files whose base
// name satisfies a Matcher, and returns their paths in traversal order
// together with the per-entry errors met along the way. Scans never fail
// as a whole: a bad root or an unreadable directory shows up in
// Result.Errors and the rest of the tree is still searched.
package finder

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/joe/env-finder/pkg/filesystem"
)

// Finder runs scans. Configure exclusions before scanning; scans may then
// run concurrently as long as nobody adds exclusions meanwhile.
type Finder struct {
	TimeProvider TimeProvider

	exclusions *ExclusionSet
	opener     filesystem.Opener
	emitter    EventEmitter

	logMu   sync.Mutex
	logFile *os.File
}

// Option configures a Finder.
type Option func(*Finder)

// Result is the outcome of one scan.
type Result struct {
	Root string

	// Paths of matching files, in traversal order
	Paths []string

	// Visited counts readable entries, directories and the root included
	Visited int

	// Errors met during the scan, in order; none of them stopped it
	Errors []error
}

// Err joins all scan errors, or returns nil if there were none.
func (r *Result) Err() error {
	return errors.Join(r.Errors...)
}

// WithCaseInsensitiveExclusions compares exclusion names ignoring case.
func WithCaseInsensitiveExclusions() Option {
	return func(f *Finder) {
		f.exclusions.SetFoldCase(true)
	}
}

// WithEventEmitter sets the receiver of scan events.
func WithEventEmitter(emitter EventEmitter) Option {
	return func(f *Finder) {
		f.emitter = emitter
	}
}

// WithExclusions replaces the default exclusion names.
func WithExclusions(names ...string) Option {
	return func(f *Finder) {
		fold := f.exclusions.FoldCase()
		f.exclusions = NewExclusionSet(names...)
		f.exclusions.SetFoldCase(fold)
	}
}

// WithOpener sets how root strings become walkers.
func WithOpener(opener filesystem.Opener) Option {
	return func(f *Finder) {
		f.opener = opener
	}
}

// New creates a Finder that excludes DefaultExclusions and opens local
// paths and sftp:// roots.
func New(opts ...Option) *Finder {
	f := &Finder{
		TimeProvider: RealTimeProvider{},
		exclusions:   NewExclusionSet(DefaultExclusions()...),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.opener == nil {
		f.opener = filesystem.NewOpener()
	}

	return f
}

// FindEnvFiles scans root with a default Finder for .env files.
func FindEnvFiles(root string) *Result {
	f := New()
	defer f.Close()

	return f.FindEnvFiles(root)
}

// AddExcludeDir adds a directory base name to skip. Duplicates are ignored.
func (f *Finder) AddExcludeDir(name string) {
	f.exclusions.Add(name)
}

// Close closes the log file and any connections the opener holds.
func (f *Finder) Close() error {
	f.CloseLog()

	if closer, ok := f.opener.(io.Closer); ok {
		return closer.Close() //nolint:wrapcheck // opener errors already carry context
	}

	return nil
}

// Exclusions returns the excluded directory names in insertion order.
func (f *Finder) Exclusions() []string {
	return f.exclusions.Names()
}

// Find scans root and returns every regular file whose base name satisfies
// matcher. ctx is checked between entries; on cancellation the partial
// result is returned with ctx.Err() as its last error.
func (f *Finder) Find(ctx context.Context, root string, matcher Matcher) *Result {
	start := f.TimeProvider.Now()
	result := &Result{
		Root:  root,
		Paths: []string{},
	}

	f.emit(ScanStarted{Root: root, Exclusions: f.exclusions.Names()})
	defer func() {
		f.emit(ScanComplete{
			Root:    root,
			Visited: result.Visited,
			Matches: len(result.Paths),
			Errors:  len(result.Errors),
			Elapsed: f.TimeProvider.Now().Sub(start),
		})
	}()

	walker, err := f.opener.Open(root,
		filesystem.WithExclude(f.exclusions.Contains),
		filesystem.WithSkipHook(func(path string) {
			f.emit(DirSkipped{Path: path})
		}),
	)
	if err != nil {
		f.fail(result, root, &InvalidRootError{Root: root, Err: err})
		return result
	}
	defer walker.Close()

	for first := true; ; first = false {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			return result
		}

		if !walker.Next() {
			return result
		}

		entry := walker.Entry()

		if err := walker.Err(); err != nil {
			if first {
				err = &InvalidRootError{Root: root, Err: err}
			}
			f.fail(result, entry.Path, err)

			continue
		}

		result.Visited++
		f.emit(EntryVisited{Entry: entry})

		if entry.Kind == filesystem.KindFile && matcher.Match(entry.Name) {
			result.Paths = append(result.Paths, entry.Path)
			f.emit(MatchFound{Path: entry.Path})
		}
	}
}

// FindEnvFiles returns files under root whose names start with ".env".
func (f *Finder) FindEnvFiles(root string) *Result {
	return f.Find(context.Background(), root, EnvFileMatcher())
}

// FindWithPattern returns files under root whose names contain pattern.
// An empty pattern returns every file.
func (f *Finder) FindWithPattern(root, pattern string) *Result {
	return f.Find(context.Background(), root, SubstringMatcher{Pattern: pattern})
}

// SetEventEmitter sets the receiver of scan events. Pass nil to stop events.
func (f *Finder) SetEventEmitter(emitter EventEmitter) {
	f.emitter = emitter
}

func (f *Finder) emit(event Event) {
	f.logEvent(event)

	if f.emitter != nil {
		f.emitter.Emit(event)
	}
}

func (f *Finder) fail(result *Result, path string, err error) {
	result.Errors = append(result.Errors, err)
	f.emit(EntryFailed{Path: path, Err: err})
}
