// Package output materializes the directory tree a generator writes into.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrInvalidPath is returned for empty, absolute or root-escaping paths
	ErrInvalidPath = errors.New("path must be relative to the output root")

	// ErrDuplicateFile is returned when one render writes the same path twice
	ErrDuplicateFile = errors.New("file already written in this render")
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// IOError reports a filesystem operation on the output tree that failed.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("output %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Tree is the output directory of one render. Files already present under the
// root are left alone: materializing into a non-empty directory does not clean up
// files an earlier, different compilation wrote there.
type Tree struct {
	root    string
	written map[string]bool
}

// Materialize creates root, including missing parents, and returns a Tree for it.
func Materialize(root string) (*Tree, error) {
	if root == "" {
		return nil, &IOError{Op: "mkdir", Path: root, Err: ErrInvalidPath}
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, &IOError{Op: "mkdir", Path: root, Err: err}
	}
	return &Tree{
		root:    root,
		written: make(map[string]bool),
	}, nil
}

// Root returns the output directory on disk
func (t *Tree) Root() string {
	return t.root
}

// MkdirAll creates a subdirectory of the tree
func (t *Tree) MkdirAll(rel string) error {
	path, err := t.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return &IOError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// WriteFile writes data to rel (slash separated), creating parent directories.
func (t *Tree) WriteFile(rel string, data []byte) error {
	path, err := t.resolve(rel)
	if err != nil {
		return err
	}

	key := filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	if t.written[key] {
		return fmt.Errorf("%w: %s", ErrDuplicateFile, key)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	t.written[key] = true
	return nil
}

// Files returns the slash-separated paths written through this Tree, sorted
func (t *Tree) Files() []string {
	files := make([]string, 0, len(t.written))
	for f := range t.written {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

func (t *Tree) resolve(rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return filepath.Join(t.root, clean), nil
}
