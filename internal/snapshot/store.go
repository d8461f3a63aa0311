package snapshot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store holds one baseline directory per fixture under Root.
type Store struct {
	Root string
}

// NewStore returns a store rooted at root
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Dir returns the baseline directory for a fixture
func (s *Store) Dir(name string) string {
	return filepath.Join(s.Root, name)
}

// ErrInvalidFixtureName is returned for names that do not select a single
// directory directly under Root.
var ErrInvalidFixtureName = errors.New("invalid fixture name")

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFixtureName, name)
	}
	return nil
}

// Has reports whether a baseline directory exists for a fixture. A missing
// baseline is (false, nil); any other stat failure is returned.
func (s *Store) Has(name string) (bool, error) {
	if err := validName(name); err != nil {
		return false, err
	}
	info, err := os.Stat(s.Dir(name))
	switch {
	case err == nil:
		return info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("baseline %s: %w", name, err)
	}
}

// Promote replaces the baseline of name with a copy of the generated tree.
// Callers must not promote the same fixture concurrently.
func (s *Store) Promote(name, generated string) error {
	if err := validName(name); err != nil {
		return err
	}
	dir := s.Dir(name)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("promote %s: remove baseline: %w", name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("promote %s: create baseline: %w", name, err)
	}
	if err := copyTree(generated, dir); err != nil {
		return fmt.Errorf("promote %s: %w", name, err)
	}
	return nil
}

// copyTree copies directories and regular files from src into dst, keeping
// permission bits.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile honours the umask; set the mode explicitly.
	return os.Chmod(dst, perm)
}
