// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/okra-platform/okragen/internal/codegen"
	"github.com/okra-platform/okragen/internal/config"
)

// Flags are the global command line flags
type Flags struct {
	LogLevel string
	Config   string
}

// Output prints user facing messages
type Output interface {
	Printf(format string, args ...any)
	Println(args ...any)
}

// ConfigLoader loads okragen.yaml and reports the directory relative paths resolve against
type ConfigLoader interface {
	Load(path string) (*config.Config, string, error)
}

// SignalNotifier abstracts os/signal for tests
type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// Dependencies are the collaborators a Controller uses
type Dependencies struct {
	ConfigLoader   ConfigLoader
	Registry       *codegen.Registry
	Confirmer      Confirmer
	SignalNotifier SignalNotifier
	Output         Output
}

type defaultOutput struct {
	w io.Writer
}

func (o *defaultOutput) Printf(format string, args ...any) {
	fmt.Fprintf(o.w, format, args...)
}

func (o *defaultOutput) Println(args ...any) {
	fmt.Fprintln(o.w, args...)
}

type defaultConfigLoader struct{}

// Load reads path when given, otherwise searches from the working directory.
// Without any okragen.yaml the defaults apply to the working directory.
func (l *defaultConfigLoader) Load(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Dir(path), nil
	}

	cfg, dir, err := config.LoadConfig()
	if errors.Is(err, config.ErrConfigNotFound) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return config.Default(), wd, nil
	}
	return cfg, dir, err
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// Controller implements the okragen commands
type Controller struct {
	Flags  *Flags
	Logger zerolog.Logger
	deps   Dependencies
}

// NewController creates a controller with the default dependencies
func NewController(flags *Flags, logger zerolog.Logger) *Controller {
	return &Controller{
		Flags:  flags,
		Logger: logger,
		deps: Dependencies{
			ConfigLoader:   &defaultConfigLoader{},
			Registry:       codegen.DefaultRegistry,
			Confirmer:      &huhConfirmer{},
			SignalNotifier: &defaultSignalNotifier{},
			Output:         &defaultOutput{w: os.Stdout},
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (c *Controller) WithDependencies(deps Dependencies) *Controller {
	c.deps = deps
	return c
}

// Languages prints the registered generator languages
func (c *Controller) Languages(ctx context.Context) error {
	for _, lang := range c.deps.Registry.Languages() {
		c.deps.Output.Println(lang)
	}
	return nil
}

// TargetOptions override the generator settings from okragen.yaml
type TargetOptions struct {
	Language  string
	Namespace string
}

// loadConfig loads the configuration, applies overrides and validates the result
func (c *Controller) loadConfig(target TargetOptions) (*config.Config, codegen.Generator, error) {
	cfg, root, err := c.deps.ConfigLoader.Load(c.Flags.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ResolvePaths(root)

	if target.Language != "" {
		cfg.Language = target.Language
	}
	if target.Namespace != "" {
		cfg.Namespace = target.Namespace
	}

	if err := cfg.Validate(c.deps.Registry.Languages()); err != nil {
		return nil, nil, err
	}

	gen, err := c.deps.Registry.Get(cfg.Language)
	if err != nil {
		return nil, nil, err
	}

	c.Logger.Debug().
		Str("root", root).
		Str("language", cfg.Language).
		Str("namespace", cfg.Namespace).
		Msg("loaded configuration")
	return cfg, gen, nil
}
