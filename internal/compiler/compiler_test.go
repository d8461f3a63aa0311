package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/okragen/internal/codegen"
	"github.com/okra-platform/okragen/internal/codegen/golang"
	"github.com/okra-platform/okragen/internal/output"
	"github.com/okra-platform/okragen/internal/schema"
	"github.com/okra-platform/okragen/internal/treediff"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Language() string {
	return "mock"
}

func (m *MockGenerator) Render(s *schema.Schema, namespace string, out *output.Tree) error {
	args := m.Called(s, namespace, out)
	return args.Error(0)
}

type panicGenerator struct{}

func (panicGenerator) Language() string { return "panic" }

func (panicGenerator) Render(*schema.Schema, string, *output.Tree) error {
	panic("boom")
}

func writeSchema(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompile_MergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeSchema(t, dir, "a.gql", `type Alpha { id: ID! }`)
	second := writeSchema(t, dir, "b.gql", `enum Beta { ONE }`)

	gen := &MockGenerator{}
	gen.On("Render", mock.MatchedBy(func(s *schema.Schema) bool {
		return len(s.Types) == 1 && s.Types[0].Name == "Alpha" &&
			len(s.Enums) == 1 && s.Enums[0].Name == "Beta"
	}), "stellar", mock.AnythingOfType("*output.Tree")).Return(nil)

	out := filepath.Join(dir, "out", "nested")
	err := New(zerolog.Nop()).Compile(context.Background(), Request{
		SchemaFiles: []string{first, second},
		OutputDir:   out,
		Generator:   gen,
		Namespace:   "stellar",
	})
	require.NoError(t, err)
	gen.AssertExpectations(t)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCompile_Deterministic(t *testing.T) {
	fixture := filepath.Join("..", "codegen", "golang", "testdata", "fixtures", "union.gql")
	c := New(zerolog.Nop())

	first := t.TempDir()
	second := t.TempDir()
	for _, out := range []string{first, second} {
		require.NoError(t, c.Compile(context.Background(), Request{
			SchemaFiles: []string{fixture},
			OutputDir:   out,
			Generator:   golang.NewGenerator(),
			Namespace:   "stellar",
		}))
	}

	d, err := treediff.Diff(first, second)
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.NotEmpty(t, d.Matching)
}

func TestCompile_RejectsBadRequests(t *testing.T) {
	c := New(zerolog.Nop())
	out := filepath.Join(t.TempDir(), "out")

	err := c.Compile(context.Background(), Request{OutputDir: out, Generator: golang.NewGenerator()})
	assert.ErrorIs(t, err, ErrNoSchemaFiles)

	err = c.Compile(context.Background(), Request{SchemaFiles: []string{"x.gql"}, OutputDir: out})
	assert.ErrorIs(t, err, ErrNilGenerator)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output directory before validation passes")
}

func TestCompile_ParseErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		files  []string
		path   string
		target error
	}{
		{
			name:   "missing file",
			files:  []string{filepath.Join(dir, "missing.gql")},
			path:   filepath.Join(dir, "missing.gql"),
			target: os.ErrNotExist,
		},
		{
			name:   "empty file",
			files:  []string{writeSchema(t, dir, "empty.gql", "  \n")},
			path:   filepath.Join(dir, "empty.gql"),
			target: schema.ErrEmptySchema,
		},
		{
			name: "duplicate definition across files",
			files: []string{
				writeSchema(t, dir, "one.gql", `type Shared { id: ID! }`),
				writeSchema(t, dir, "two.gql", `type Shared { name: String! }`),
			},
			path:   filepath.Join(dir, "two.gql"),
			target: schema.ErrDuplicateDefinition,
		},
		{
			name:  "malformed",
			files: []string{writeSchema(t, dir, "bad.gql", `type Broken {`)},
			path:  filepath.Join(dir, "bad.gql"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := New(zerolog.Nop()).Compile(context.Background(), Request{
				SchemaFiles: tt.files,
				OutputDir:   filepath.Join(t.TempDir(), "out"),
				Generator:   golang.NewGenerator(),
			})

			var parseErr *schema.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.path, parseErr.Path)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestCompile_GeneratorErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "a.gql", `type A { id: ID! }`)

	failing := &MockGenerator{}
	failing.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("unsupported construct"))

	for name, gen := range map[string]codegen.Generator{
		"returned error": failing,
		"panic":          panicGenerator{},
	} {
		gen := gen
		t.Run(name, func(t *testing.T) {
			err := New(zerolog.Nop()).Compile(context.Background(), Request{
				SchemaFiles: []string{path},
				OutputDir:   t.TempDir(),
				Generator:   gen,
			})

			var genErr *codegen.GeneratorError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, gen.Language(), genErr.Language)
		})
	}
}

func TestCompile_OutputErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "a.gql", `type A { id: ID! }`)
	blocker := writeSchema(t, dir, "not-a-dir", "")

	err := New(zerolog.Nop()).Compile(context.Background(), Request{
		SchemaFiles: []string{path},
		OutputDir:   filepath.Join(blocker, "out"),
		Generator:   golang.NewGenerator(),
	})

	var ioErr *output.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestCompile_KeepsStaleFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	c := New(zerolog.Nop())

	first := writeSchema(t, dir, "first.gql", `type OldType { id: ID! }`)
	require.NoError(t, c.Compile(context.Background(), Request{
		SchemaFiles: []string{first}, OutputDir: out, Generator: golang.NewGenerator(),
	}))

	second := writeSchema(t, dir, "second.gql", `type NewType { id: ID! }`)
	require.NoError(t, c.Compile(context.Background(), Request{
		SchemaFiles: []string{second}, OutputDir: out, Generator: golang.NewGenerator(),
	}))

	files, err := treediff.ListFiles(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"new_type.go", "old_type.go"}, files)
}

func TestCompile_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "a.gql", `type A { id: ID! }`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &MockGenerator{}
	err := New(zerolog.Nop()).Compile(ctx, Request{
		SchemaFiles: []string{path},
		OutputDir:   filepath.Join(dir, "out"),
		Generator:   gen,
	})
	assert.ErrorIs(t, err, context.Canceled)
	gen.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompile_NamespaceFromSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "a.gql", "@okra(namespace: \"ledger\", version: \"v1\")\ntype A { id: ID! }\n")

	gen := &MockGenerator{}
	gen.On("Render", mock.Anything, "ledger", mock.Anything).Return(nil).Once()
	gen.On("Render", mock.Anything, "explicit", mock.Anything).Return(nil).Once()

	c := New(zerolog.Nop())
	require.NoError(t, c.Compile(context.Background(), Request{SchemaFiles: []string{path}, OutputDir: t.TempDir(), Generator: gen}))
	require.NoError(t, c.Compile(context.Background(), Request{SchemaFiles: []string{path}, OutputDir: t.TempDir(), Generator: gen, Namespace: "explicit"}))
	gen.AssertExpectations(t)
}
