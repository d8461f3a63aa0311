// Package compiler drives one code generation run: parse every schema file,
// merge the results and hand the combined model to a generator.
package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/okra-platform/okragen/internal/codegen"
	"github.com/okra-platform/okragen/internal/output"
	"github.com/okra-platform/okragen/internal/schema"
)

var (
	// ErrNoSchemaFiles is returned for a request without schema files
	ErrNoSchemaFiles = errors.New("compile request has no schema files")

	// ErrNilGenerator is returned for a request without a generator
	ErrNilGenerator = errors.New("compile request has no generator")
)

// Request describes a single compilation.
type Request struct {
	// SchemaFiles are parsed and merged in order
	SchemaFiles []string

	// OutputDir is created if missing; files already in it are left alone
	OutputDir string

	Generator codegen.Generator

	// Namespace defaults to the namespace declared with @okra in the schemas
	Namespace string
}

// Compiler runs compilations. It holds no state between calls.
type Compiler struct {
	logger zerolog.Logger
}

// New creates a compiler logging through logger
func New(logger zerolog.Logger) *Compiler {
	return &Compiler{
		logger: logger.With().Str("component", "compiler").Logger(),
	}
}

// Compile parses req.SchemaFiles, merges them and renders the result into
// req.OutputDir. Failures are *schema.ParseError, *codegen.GeneratorError or
// *output.IOError.
func (c *Compiler) Compile(ctx context.Context, req Request) error {
	if len(req.SchemaFiles) == 0 {
		return ErrNoSchemaFiles
	}
	if req.Generator == nil {
		return ErrNilGenerator
	}

	merged, err := c.parse(ctx, req.SchemaFiles)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tree, err := output.Materialize(req.OutputDir)
	if err != nil {
		return err
	}

	namespace := req.Namespace
	if namespace == "" {
		namespace = merged.Meta.Namespace
	}

	if err := c.render(req.Generator, merged, namespace, tree); err != nil {
		return err
	}

	c.logger.Debug().
		Str("language", req.Generator.Language()).
		Str("output", req.OutputDir).
		Int("files", len(tree.Files())).
		Msg("rendered schema")
	return nil
}

func (c *Compiler) parse(ctx context.Context, paths []string) (*schema.Schema, error) {
	merged := &schema.Schema{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s, err := schema.ParseFile(path)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(s); err != nil {
			return nil, &schema.ParseError{Path: path, Err: err}
		}

		c.logger.Debug().
			Str("path", path).
			Int("types", len(s.Types)).
			Int("services", len(s.Services)).
			Msg("parsed schema file")
	}
	return merged, nil
}

// render invokes the generator, turning returned errors and panics into a
// *codegen.GeneratorError. Output errors keep their own type.
func (c *Compiler) render(g codegen.Generator, s *schema.Schema, namespace string, tree *output.Tree) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &codegen.GeneratorError{Language: g.Language(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := g.Render(s, namespace, tree); err != nil {
		var ioErr *output.IOError
		if errors.As(err, &ioErr) {
			return ioErr
		}
		return &codegen.GeneratorError{Language: g.Language(), Err: err}
	}
	return nil
}
