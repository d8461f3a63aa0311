package commands

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/okragen/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

type InitOptions struct {
	Language  string
	Namespace string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (osfs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (osfs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osfs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// InitCommand writes okragen.yaml plus an example schema and fixture
type InitCommand struct {
	filesystem  FileSystem
	templatesFS fs.FS
	languages   []string
	output      Output
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(languages []string, output Output) *InitCommand {
	return &InitCommand{
		filesystem:  &osFileSystem{},
		templatesFS: templatesFS,
		languages:   languages,
		output:      output,
	}
}

// Init scaffolds an okragen project in the working directory
func (c *Controller) Init(ctx context.Context) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	return NewInitCommand(c.deps.Registry.Languages(), c.deps.Output).Run(ctx, dir)
}

func (ic *InitCommand) Run(ctx context.Context, dir string) error {
	return ic.RunWithOptions(ctx, dir)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, dir string, opts ...tea.ProgramOption) error {
	configPath := filepath.Join(dir, config.FileName)
	if _, err := ic.filesystem.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", configPath, err)
	}

	options := ic.testOptions
	if options == nil {
		var err error
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	cfg := config.Default()
	cfg.Language = options.Language
	cfg.Namespace = options.Namespace
	cfg.Schemas = []string{"schema/*.gql"}
	if err := cfg.Validate(ic.languages); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := ic.filesystem.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := ic.extractTemplates(dir); err != nil {
		return fmt.Errorf("failed to extract templates: %w", err)
	}

	ic.output.Printf("✅ Created %s for %s (%s)\n", config.FileName, options.Namespace, options.Language)
	ic.output.Println("Run `okragen snapshot update --yes` to record the first baselines.")
	return nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	var namespace string
	var language string

	form := ic.createInitForm(&namespace, &language)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return &InitOptions{
		Language:  language,
		Namespace: namespace,
	}, nil
}

func (ic *InitCommand) createInitForm(namespace *string, language *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(ic.languages))
	for _, lang := range ic.languages {
		options = append(options, huh.NewOption(lang, lang))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Namespace").
				Description("Package name for generated code, e.g. stellar.accounts").
				Value(namespace).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("namespace cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Language").
				Description("Generator used for snapshots and generate").
				Options(options...).
				Value(language),
		),
	)
}

// extractTemplates copies the embedded templates into destDir, keeping any
// file that already exists.
func (ic *InitCommand) extractTemplates(destDir string) error {
	return fs.WalkDir(ic.templatesFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == "templates" {
			return nil
		}

		relPath, err := filepath.Rel("templates", path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(destDir, relPath)

		if d.IsDir() {
			return ic.filesystem.MkdirAll(destPath, 0755)
		}

		if _, err := ic.filesystem.Stat(destPath); err == nil {
			return nil
		}

		data, err := fs.ReadFile(ic.templatesFS, path)
		if err != nil {
			return err
		}

		return ic.filesystem.WriteFile(destPath, data, 0644)
	})
}
