package notes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goriiin/go-notes/internal/errs"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "notes"))
	require.NoError(t, err)
	return s
}

func TestNewCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "notes")

	s, err := New(root)
	require.NoError(t, err)

	fi, err := os.Stat(s.Root())
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestWriteThenRead(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("todo.md", []byte("# Todo\n")))
	got, err := s.Read("todo.md")
	require.NoError(t, err)
	assert.Equal(t, "# Todo\n", string(got))

	require.NoError(t, s.Write("todo.md", []byte("short")))
	got, err = s.Read("todo.md")
	require.NoError(t, err)
	assert.Equal(t, "short", string(got), "write must truncate")
}

func TestWriteIntoSubdirectory(t *testing.T) {
	s := newStore(t)

	err := s.Write("work/plan.md", []byte("x"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "missing parent must fail, got %v", err)

	require.NoError(t, os.Mkdir(filepath.Join(s.Root(), "work"), 0o755))
	require.NoError(t, s.Write("work/plan.md", []byte("x")))

	got, err := s.Read("work/plan.md")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestReadMissing(t *testing.T) {
	s := newStore(t)

	_, err := s.Read("absent.md")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestPathsAreConfinedToRoot(t *testing.T) {
	s := newStore(t)
	outside := filepath.Join(filepath.Dir(s.Root()), "secret.md")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	for _, rel := range []string{"../secret.md", "a/../../secret.md", "", "."} {
		t.Run(rel, func(t *testing.T) {
			_, err := s.Read(rel)
			assert.ErrorIs(t, err, errs.OutsideRoot)
			assert.ErrorIs(t, s.Write(rel, []byte("x")), errs.OutsideRoot)
		})
	}

	got, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(got))
}

func TestAbsoluteLookingPathStaysInside(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("/top.md", []byte("inside")))
	got, err := os.ReadFile(filepath.Join(s.Root(), "top.md"))
	require.NoError(t, err)
	assert.Equal(t, "inside", string(got))
}

func TestSymlinkEscapesAreRefused(t *testing.T) {
	s := newStore(t)
	outsideDir := t.TempDir()
	outsideFile := filepath.Join(outsideDir, "victim.md")
	require.NoError(t, os.WriteFile(outsideFile, []byte("victim"), 0o644))

	if err := os.Symlink(outsideFile, filepath.Join(s.Root(), "link.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(outsideDir, filepath.Join(s.Root(), "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(outsideDir, "gone.md"), filepath.Join(s.Root(), "dangling.md")))

	_, err := s.Read("link.md")
	assert.ErrorIs(t, err, errs.OutsideRoot)
	assert.ErrorIs(t, s.Write("link.md", []byte("x")), errs.OutsideRoot)
	assert.ErrorIs(t, s.Write("linkdir/new.md", []byte("x")), errs.OutsideRoot)
	assert.Error(t, s.Write("dangling.md", []byte("x")))

	_, err = os.Stat(filepath.Join(outsideDir, "gone.md"))
	assert.True(t, os.IsNotExist(err))
	got, err := os.ReadFile(outsideFile)
	require.NoError(t, err)
	assert.Equal(t, "victim", string(got))
}

func TestSymlinkInsideRootIsAllowed(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write("real.md", []byte("real")))
	if err := os.Symlink(filepath.Join(s.Root(), "real.md"), filepath.Join(s.Root(), "alias.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := s.Read("alias.md")
	require.NoError(t, err)
	assert.Equal(t, "real", string(got))
}

func TestList(t *testing.T) {
	s := newStore(t)

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)

	for _, n := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, s.Write(n, []byte(n)))
	}
	require.NoError(t, os.Mkdir(filepath.Join(s.Root(), "dir"), 0o755))

	names, err = s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.md", "b.md", "c.md", "dir"}, names)
}

func TestListMissingRoot(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.RemoveAll(s.Root()))

	_, err := s.List()
	assert.Error(t, err)
}
