package notes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goriiin/go-notes/internal/errs"
)

const filePerm = 0o644

// Store reads and writes markdown files below a single root directory.
// There is no locking; concurrent writers to one note race at the
// granularity of the underlying write call.
type Store struct {
	root     string
	realRoot string
}

// New opens root, creating it if it does not exist yet.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create notes root %s: %w", root, err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve notes root %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve notes root %s: %w", root, err)
	}

	return &Store{root: abs, realRoot: resolved}, nil
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Read(rel string) ([]byte, error) {
	p, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

// Write creates or truncates the note. Parent directories must already exist.
func (s *Store) Write(rel string, data []byte) error {
	p, err := s.resolve(rel)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, filePerm)
}

// List returns the names of the root's entries in directory order.
func (s *Store) List() ([]string, error) {
	dir, err := os.Open(s.root)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read notes root: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// resolve maps rel onto a path inside the root. Symlinks in the parent
// directory and on the final element are followed before the check;
// dangling links are refused.
func (s *Store) resolve(rel string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !within(s.root, full) {
		return "", fmt.Errorf("%w: %q", errs.OutsideRoot, rel)
	}

	dir, err := filepath.EvalSymlinks(filepath.Dir(full))
	if err != nil {
		return "", err
	}
	if !within(s.realRoot, dir) {
		return "", fmt.Errorf("%w: %q", errs.OutsideRoot, rel)
	}

	target := filepath.Join(dir, filepath.Base(full))
	fi, err := os.Lstat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return target, nil
	case err != nil:
		return "", err
	case fi.Mode()&fs.ModeSymlink != 0:
		dest, err := filepath.EvalSymlinks(target)
		if err != nil {
			return "", err
		}
		if !within(s.realRoot, dest) {
			return "", fmt.Errorf("%w: %q", errs.OutsideRoot, rel)
		}
	}
	return target, nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
