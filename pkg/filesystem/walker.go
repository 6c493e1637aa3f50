package filesystem

import (
	"errors"
	"iter"

	"github.com/kr/fs"
)

// Walker is a depth-first iterator over a directory tree.
//
// A directory is yielded before its children and siblings come in the
// order the backend lists them. Directories rejected by the exclude
// predicate are neither yielded nor descended into. Walker is not safe for
// concurrent use.
type Walker struct {
	walk    *fs.Walker
	exclude func(name string) bool
	onSkip  func(path string)
	prefix  string
	closers []func() error

	cur   Entry
	err   error
	steps int
	done  bool
}

// WalkOption configures a Walker.
type WalkOption func(*Walker)

// WithCloser registers a function run once when the walker is closed or exhausted.
func WithCloser(fn func() error) WalkOption {
	return func(w *Walker) {
		w.closers = append(w.closers, fn)
	}
}

// WithExclude sets the predicate deciding whether a directory, by base
// name, is pruned. The root is tested too.
func WithExclude(fn func(name string) bool) WalkOption {
	return func(w *Walker) {
		w.exclude = fn
	}
}

// WithPathPrefix prepends prefix to every reported path.
func WithPathPrefix(prefix string) WalkOption {
	return func(w *Walker) {
		w.prefix = prefix
	}
}

// WithSkipHook is called with the path of every pruned directory.
func WithSkipHook(fn func(path string)) WalkOption {
	return func(w *Walker) {
		w.onSkip = fn
	}
}

// Walk returns a walker over the local disk rooted at root. A root that is
// a symlink to a directory is followed; links below it are not.
func Walk(root string, opts ...WalkOption) *Walker {
	return WalkFS(root, LocalFileSystem{FollowRoot: root}, opts...)
}

// WalkFS returns a walker over fsys rooted at root.
// The root is not checked here; a missing root shows up as the first step's error.
func WalkFS(root string, fsys FileSystem, opts ...WalkOption) *Walker {
	w := &Walker{
		walk: fs.WalkFS(root, fsys),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Close releases resources held by the walker. Safe to call more than once.
// After Close, Next returns false.
func (w *Walker) Close() error {
	if w.done {
		return nil
	}

	w.done = true
	w.cur = Entry{}
	w.err = nil

	var errs []error
	for _, fn := range w.closers {
		errs = append(errs, fn())
	}

	return errors.Join(errs...)
}

// Entries returns the remaining steps as a range-over-func sequence.
// Stopping the range early closes the walker.
func (w *Walker) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		defer w.Close()

		for w.Next() {
			if !yield(w.Entry(), w.Err()) {
				return
			}
		}
	}
}

// Entry returns the entry of the current step.
func (w *Walker) Entry() Entry {
	return w.cur
}

// Err returns the error of the current step, or nil if the entry was
// read. It is always an *EntryError.
func (w *Walker) Err() error {
	return w.err
}

// Next advances to the next entry. It returns false once the tree is
// exhausted or the walker is closed.
func (w *Walker) Next() bool {
	if w.done {
		return false
	}

	for w.walk.Step() {
		w.steps++
		isRoot := w.steps == 1
		path := w.walk.Path()

		if err := w.walk.Err(); err != nil {
			w.setError(path, err)
			return true
		}

		entry := entryFromInfo(path, w.walk.Stat())

		if entry.Kind == KindDir && w.excluded(entry.Name) {
			w.walk.SkipDir()
			if w.onSkip != nil {
				w.onSkip(w.prefix + path)
			}

			continue
		}

		if isRoot && entry.Kind != KindDir {
			// the walk ends here: kr/fs never descends a non-directory
			w.setError(path, ErrNotDirectory)
			return true
		}

		entry.Path = w.prefix + entry.Path
		w.cur = entry
		w.err = nil

		return true
	}

	_ = w.Close()

	return false
}

func (w *Walker) excluded(name string) bool {
	return w.exclude != nil && w.exclude(name)
}

// setError records a failed step. A directory whose listing failed keeps
// its kind so callers can tell it apart from a missing node.
func (w *Walker) setError(path string, err error) {
	entry := Entry{Path: path, Name: baseName(path), Kind: KindOther}
	if info := w.walk.Stat(); info != nil {
		entry = entryFromInfo(path, info)
	}

	entry.Path = w.prefix + entry.Path
	w.cur = entry
	w.err = &EntryError{Path: entry.Path, Err: err}
}
