//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/env-finder/pkg/filesystem"
)

// step is one observed walker step.
type step struct {
	Path string
	Kind filesystem.EntryKind
	Err  bool
}

func collect(w *filesystem.Walker) []step {
	var steps []step
	for entry, err := range w.Entries() {
		steps = append(steps, step{Path: entry.Path, Kind: entry.Kind, Err: err != nil})
	}

	return steps
}

func excludeNames(names ...string) filesystem.WalkOption {
	return filesystem.WithExclude(func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}

		return false
	})
}

func sampleTree() *filesystem.MemFileSystem {
	mem := filesystem.NewMemFileSystem()
	mem.AddFile("/proj/.env")
	mem.AddFile("/proj/b/two.txt")
	mem.AddFile("/proj/a/one.txt")
	mem.AddFile("/proj/node_modules/pkg/.env")
	mem.AddSymlink("/proj/link")

	return mem
}

func TestWalker_DepthFirstParentBeforeChildren(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	steps := collect(filesystem.WalkFS("/proj", sampleTree()))

	g.Expect(steps).To(Equal([]step{
		{Path: "/proj", Kind: filesystem.KindDir},
		{Path: "/proj/.env", Kind: filesystem.KindFile},
		{Path: "/proj/a", Kind: filesystem.KindDir},
		{Path: "/proj/a/one.txt", Kind: filesystem.KindFile},
		{Path: "/proj/b", Kind: filesystem.KindDir},
		{Path: "/proj/b/two.txt", Kind: filesystem.KindFile},
		{Path: "/proj/link", Kind: filesystem.KindOther},
		{Path: "/proj/node_modules", Kind: filesystem.KindDir},
		{Path: "/proj/node_modules/pkg", Kind: filesystem.KindDir},
		{Path: "/proj/node_modules/pkg/.env", Kind: filesystem.KindFile},
	}))
}

func TestWalker_PrunesExcludedDirectories(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var skipped []string
	w := filesystem.WalkFS("/proj", sampleTree(),
		excludeNames("node_modules"),
		filesystem.WithSkipHook(func(path string) { skipped = append(skipped, path) }),
	)

	steps := collect(w)

	for _, s := range steps {
		g.Expect(s.Path).NotTo(ContainSubstring("node_modules"))
	}
	g.Expect(steps).To(HaveLen(7))
	g.Expect(skipped).To(Equal([]string{"/proj/node_modules"}))
}

func TestWalker_ExcludeOnlyAppliesToDirectories(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := filesystem.NewMemFileSystem()
	mem.AddFile("/root/vendor")

	steps := collect(filesystem.WalkFS("/root", mem, excludeNames("vendor")))

	g.Expect(steps).To(ContainElement(step{Path: "/root/vendor", Kind: filesystem.KindFile}))
}

func TestWalker_ExcludedRootYieldsNothing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := filesystem.NewMemFileSystem()
	mem.AddFile("/x/node_modules/.env")

	steps := collect(filesystem.WalkFS("/x/node_modules", mem, excludeNames("node_modules")))

	g.Expect(steps).To(BeEmpty())
}

func TestWalker_MissingRootYieldsOneError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	w := filesystem.WalkFS("/nope", filesystem.NewMemFileSystem())

	g.Expect(w.Next()).To(BeTrue())
	g.Expect(w.Entry().Path).To(Equal("/nope"))

	var entryErr *filesystem.EntryError
	g.Expect(errors.As(w.Err(), &entryErr)).To(BeTrue())
	g.Expect(entryErr.Path).To(Equal("/nope"))
	g.Expect(errors.Is(w.Err(), fs.ErrNotExist)).To(BeTrue())

	g.Expect(w.Next()).To(BeFalse())
}

func TestWalker_FileRootYieldsNotDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := filesystem.NewMemFileSystem()
	mem.AddFile("/proj/.env")

	steps := collect(filesystem.WalkFS("/proj/.env", mem))

	g.Expect(steps).To(HaveLen(1))
	g.Expect(steps[0].Err).To(BeTrue())

	w := filesystem.WalkFS("/proj/.env", mem)
	g.Expect(w.Next()).To(BeTrue())
	g.Expect(errors.Is(w.Err(), filesystem.ErrNotDirectory)).To(BeTrue())
}

func TestWalker_UnreadableDirectoryDoesNotStopWalk(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := sampleTree()
	mem.FailReadDir("/proj/a", fs.ErrPermission)

	steps := collect(filesystem.WalkFS("/proj", mem))

	g.Expect(steps).To(ContainElement(step{Path: "/proj/a", Kind: filesystem.KindDir, Err: true}))
	g.Expect(steps).NotTo(ContainElement(HaveField("Path", "/proj/a/one.txt")))
	g.Expect(steps).To(ContainElement(step{Path: "/proj/b/two.txt", Kind: filesystem.KindFile}))
	g.Expect(steps).To(ContainElement(step{Path: "/proj/node_modules/pkg/.env", Kind: filesystem.KindFile}))
}

func TestWalker_ErrorsAreEntryErrors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := sampleTree()
	mem.FailReadDir("/proj/b", fs.ErrPermission)

	for entry, err := range filesystem.WalkFS("/proj", mem).Entries() {
		if err == nil {
			continue
		}

		var entryErr *filesystem.EntryError
		g.Expect(errors.As(err, &entryErr)).To(BeTrue())
		g.Expect(entryErr.Path).To(Equal(entry.Path))
		g.Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())
	}
}

func TestWalker_BreakClosesWalker(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	closed := 0
	w := filesystem.WalkFS("/proj", sampleTree(), filesystem.WithCloser(func() error {
		closed++
		return nil
	}))

	for range w.Entries() {
		break
	}

	g.Expect(closed).To(Equal(1))
	g.Expect(w.Next()).To(BeFalse())
	g.Expect(w.Close()).To(Succeed())
	g.Expect(closed).To(Equal(1))
}

func TestWalker_ExhaustionRunsClosers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	closed := 0
	w := filesystem.WalkFS("/proj", sampleTree(), filesystem.WithCloser(func() error {
		closed++
		return nil
	}))

	for w.Next() {
	}

	g.Expect(closed).To(Equal(1))
}

func TestWalker_PathPrefix(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := filesystem.NewMemFileSystem()
	mem.AddFile("/srv/.env")

	steps := collect(filesystem.WalkFS("/srv", mem, filesystem.WithPathPrefix("sftp://u@h:22/")))

	g.Expect(steps).To(Equal([]step{
		{Path: "sftp://u@h:22//srv", Kind: filesystem.KindDir},
		{Path: "sftp://u@h:22//srv/.env", Kind: filesystem.KindFile},
	}))
}

func TestWalker_RepeatedWalksAgree(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := sampleTree()

	g.Expect(collect(filesystem.WalkFS("/proj", mem))).To(Equal(collect(filesystem.WalkFS("/proj", mem))))
}

func TestWalk_LocalDisk(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	g.Expect(os.MkdirAll(filepath.Join(root, "sub", ".git"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(root, "sub", ".env"), []byte("A=1"), 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(root, "sub", ".git", "config"), nil, 0o600)).To(Succeed())
	g.Expect(os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "loop"))).To(Succeed())

	steps := collect(filesystem.Walk(root, excludeNames(".git")))

	g.Expect(steps).To(Equal([]step{
		{Path: root, Kind: filesystem.KindDir},
		{Path: filepath.Join(root, "loop"), Kind: filesystem.KindOther},
		{Path: filepath.Join(root, "sub"), Kind: filesystem.KindDir},
		{Path: filepath.Join(root, "sub", ".env"), Kind: filesystem.KindFile},
	}))
}

func TestWalk_SymlinkedRootIsFollowed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	g.Expect(os.MkdirAll(target, 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(target, ".env"), nil, 0o600)).To(Succeed())

	root := filepath.Join(dir, "link")
	g.Expect(os.Symlink(target, root)).To(Succeed())

	steps := collect(filesystem.Walk(root))

	g.Expect(steps).To(Equal([]step{
		{Path: root, Kind: filesystem.KindDir},
		{Path: filepath.Join(root, ".env"), Kind: filesystem.KindFile},
	}))
}

func TestEntryKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     filesystem.EntryKind
		expected string
	}{
		{filesystem.KindFile, "file"},
		{filesystem.KindDir, "directory"},
		{filesystem.KindOther, "other"},
		{filesystem.EntryKind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("EntryKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestEntryError_MessageNamesPathOnce(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	wrapped := &filesystem.EntryError{
		Path: "/a/b",
		Err:  &fs.PathError{Op: "open", Path: "/a/b", Err: fs.ErrPermission},
	}
	bare := &filesystem.EntryError{Path: "/a/b", Err: filesystem.ErrNotDirectory}

	g.Expect(wrapped.Error()).To(Equal("open /a/b: permission denied"))
	g.Expect(bare.Error()).To(Equal("/a/b: not a directory"))
}

// reversedFS lists directories in reverse name order.
type reversedFS struct {
	*filesystem.MemFileSystem
}

func (r reversedFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	infos, err := r.MemFileSystem.ReadDir(dirname)
	slices.Reverse(infos)

	return infos, err
}

func TestSortedFileSystem_RestoresNameOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mem := filesystem.NewMemFileSystem()
	mem.AddFile("/r/b")
	mem.AddFile("/r/a")
	mem.AddFile("/r/c")

	unsorted := collect(filesystem.WalkFS("/r", reversedFS{mem}))
	sorted := collect(filesystem.WalkFS("/r", filesystem.SortedFileSystem{FileSystem: reversedFS{mem}}))

	g.Expect(unsorted[1].Path).To(Equal("/r/c"))
	g.Expect(sorted).To(Equal([]step{
		{Path: "/r", Kind: filesystem.KindDir},
		{Path: "/r/a", Kind: filesystem.KindFile},
		{Path: "/r/b", Kind: filesystem.KindFile},
		{Path: "/r/c", Kind: filesystem.KindFile},
	}))
}
