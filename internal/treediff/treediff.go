// Package treediff compares two directory trees file by file.
package treediff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const chunkSize = 32 * 1024

// FileSetDiff is the result of comparing an expected tree with an actual one.
// All slices hold sorted, slash-separated paths relative to the roots.
type FileSetDiff struct {
	ExpectedOnly []string
	ActualOnly   []string
	Mismatched   []string
	Matching     []string
}

// Empty reports whether the trees are identical
func (d *FileSetDiff) Empty() bool {
	return len(d.ExpectedOnly) == 0 && len(d.ActualOnly) == 0 && len(d.Mismatched) == 0
}

// SameFiles reports whether both trees hold the same set of paths, ignoring content
func (d *FileSetDiff) SameFiles() bool {
	return len(d.ExpectedOnly) == 0 && len(d.ActualOnly) == 0
}

// ListFiles returns every regular file below root, hidden files included.
// Directories, symlinks and other special files are not listed.
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files in %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Diff lists both trees, then compares the content of the paths they share.
func Diff(expectedRoot, actualRoot string) (*FileSetDiff, error) {
	expected, err := ListFiles(expectedRoot)
	if err != nil {
		return nil, err
	}
	actual, err := ListFiles(actualRoot)
	if err != nil {
		return nil, err
	}

	d := &FileSetDiff{}
	var common []string
	d.ExpectedOnly, d.ActualOnly, common = Partition(expected, actual)

	d.Mismatched, d.Matching, err = Compare(expectedRoot, actualRoot, common)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Partition splits two sorted path lists into the paths only in expected,
// only in actual, and in both.
func Partition(expected, actual []string) (expectedOnly, actualOnly, common []string) {
	i, j := 0, 0
	for i < len(expected) || j < len(actual) {
		switch {
		case j == len(actual) || (i < len(expected) && expected[i] < actual[j]):
			expectedOnly = append(expectedOnly, expected[i])
			i++
		case i == len(expected) || actual[j] < expected[i]:
			actualOnly = append(actualOnly, actual[j])
			j++
		default:
			common = append(common, expected[i])
			i++
			j++
		}
	}
	return expectedOnly, actualOnly, common
}

// Compare checks each relative path under both roots and splits them into
// mismatched and matching, preserving input order.
func Compare(expectedRoot, actualRoot string, paths []string) (mismatched, matching []string, err error) {
	for _, rel := range paths {
		same, err := SameContent(filepath.Join(expectedRoot, filepath.FromSlash(rel)), filepath.Join(actualRoot, filepath.FromSlash(rel)))
		if err != nil {
			return nil, nil, err
		}
		if same {
			matching = append(matching, rel)
		} else {
			mismatched = append(mismatched, rel)
		}
	}
	return mismatched, matching, nil
}

// SameContent reports whether two files hold the same bytes. Sizes are
// compared first; contents are then read in chunks until the first difference.
func SameContent(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	sa, err := fa.Stat()
	if err != nil {
		return false, err
	}
	sb, err := fb.Stat()
	if err != nil {
		return false, err
	}
	if sa.Size() != sb.Size() {
		return false, nil
	}

	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}

		doneA, err := chunkDone(errA)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", a, err)
		}
		doneB, err := chunkDone(errB)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", b, err)
		}
		if doneA || doneB {
			return doneA == doneB, nil
		}
	}
}

func chunkDone(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true, nil
	default:
		return false, err
	}
}
