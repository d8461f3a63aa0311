package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize_CreatesNestedRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "generated")

	tree, err := Materialize(root)
	require.NoError(t, err)
	assert.Equal(t, root, tree.Root())

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMaterialize_EmptyRoot(t *testing.T) {
	_, err := Materialize("")
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMaterialize_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Materialize(filepath.Join(file, "out"))
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestTree_WriteFileCreatesParents(t *testing.T) {
	tree, err := Materialize(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, tree.WriteFile("pkg/nested/model.go", []byte("package pkg\n")))
	require.NoError(t, tree.WriteFile(".hidden", nil))

	data, err := os.ReadFile(filepath.Join(tree.Root(), "pkg", "nested", "model.go"))
	require.NoError(t, err)
	assert.Equal(t, "package pkg\n", string(data))

	info, err := os.Stat(filepath.Join(tree.Root(), ".hidden"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	assert.Equal(t, []string{".hidden", "pkg/nested/model.go"}, tree.Files())
}

func TestTree_RejectsPathsOutsideRoot(t *testing.T) {
	tree, err := Materialize(t.TempDir())
	require.NoError(t, err)

	for _, rel := range []string{"", ".", "..", "../escape.go", "a/../../escape.go", "/abs.go"} {
		rel := rel
		t.Run(rel, func(t *testing.T) {
			err := tree.WriteFile(rel, []byte("x"))
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestTree_DuplicateWrite(t *testing.T) {
	tree, err := Materialize(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, tree.WriteFile("types.go", []byte("one")))
	err = tree.WriteFile("./types.go", []byte("two"))
	assert.ErrorIs(t, err, ErrDuplicateFile)

	data, err := os.ReadFile(filepath.Join(tree.Root(), "types.go"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestTree_MkdirAll(t *testing.T) {
	tree, err := Materialize(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, tree.MkdirAll("empty/dir"))
	info, err := os.Stat(filepath.Join(tree.Root(), "empty", "dir"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Empty(t, tree.Files())
}

func TestMaterialize_KeepsStaleFiles(t *testing.T) {
	// A second materialization into the same directory does not clean it.
	root := t.TempDir()

	first, err := Materialize(root)
	require.NoError(t, err)
	require.NoError(t, first.WriteFile("old.go", []byte("old")))

	second, err := Materialize(root)
	require.NoError(t, err)
	require.NoError(t, second.WriteFile("new.go", []byte("new")))

	assert.FileExists(t, filepath.Join(root, "old.go"))
	assert.FileExists(t, filepath.Join(root, "new.go"))
	assert.Equal(t, []string{"new.go"}, second.Files())
}
