package commands

import (
	"context"
	"fmt"

	"github.com/okra-platform/okragen/internal/compiler"
	"github.com/okra-platform/okragen/internal/schema"
)

// GenerateOptions override the generate settings from okragen.yaml
type GenerateOptions struct {
	TargetOptions
	Output  string
	Schemas []string
}

// Generate compiles the configured schemas into the output directory
func (c *Controller) Generate(ctx context.Context, opts GenerateOptions) error {
	cfg, gen, err := c.loadConfig(opts.TargetOptions)
	if err != nil {
		return err
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if len(opts.Schemas) > 0 {
		cfg.Schemas = opts.Schemas
	}

	paths, err := schema.Locate(cfg.Schemas...)
	if err != nil {
		return err
	}

	if err := compiler.New(c.Logger).Compile(ctx, compiler.Request{
		SchemaFiles: paths,
		OutputDir:   cfg.Output,
		Generator:   gen,
		Namespace:   cfg.Namespace,
	}); err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	c.deps.Output.Printf("✅ Generated %s code from %d schema file(s) into %s\n", gen.Language(), len(paths), cfg.Output)
	return nil
}
