package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okra-platform/okragen/internal/snapshot"
)

// FileName is the configuration file looked up in the working directory and its parents
const FileName = "okragen.yaml"

var (
	// ErrConfigNotFound is returned when no okragen.yaml exists up to the filesystem root
	ErrConfigNotFound = errors.New("no " + FileName + " found")

	// ErrInvalidConfig is returned by Validate
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the okragen.yaml configuration file
type Config struct {
	Language  string         `yaml:"language"`
	Namespace string         `yaml:"namespace"`
	Schemas   []string       `yaml:"schemas"`
	Output    string         `yaml:"output"`
	Snapshots SnapshotConfig `yaml:"snapshots"`
	Watch     WatchConfig    `yaml:"watch"`
}

// SnapshotConfig contains golden snapshot settings
type SnapshotConfig struct {
	Fixtures    string `yaml:"fixtures"`
	Pattern     string `yaml:"pattern"`
	Root        string `yaml:"root"`
	Parallelism int    `yaml:"parallelism"`
}

// WatchConfig contains watch mode settings
type WatchConfig struct {
	Exclude []string `yaml:"exclude"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig loads okragen.yaml from the current directory or a parent directory.
// It returns the configuration and the directory it was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = "go"
	}
	if len(c.Schemas) == 0 {
		c.Schemas = []string{"*.gql"}
	}
	if c.Output == "" {
		c.Output = "generated"
	}
	if c.Snapshots.Fixtures == "" {
		c.Snapshots.Fixtures = filepath.Join("testdata", "fixtures")
	}
	if c.Snapshots.Pattern == "" {
		c.Snapshots.Pattern = snapshot.DefaultPattern
	}
	if c.Snapshots.Root == "" {
		c.Snapshots.Root = filepath.Join("testdata", "snapshots")
	}
	if c.Snapshots.Parallelism == 0 {
		c.Snapshots.Parallelism = 1
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{".git/", filepath.ToSlash(filepath.Clean(c.Output)) + "/"}
	}
}

// Validate checks the configuration against the available generator languages
func (c *Config) Validate(languages []string) error {
	var problems []string
	if !slices.Contains(languages, c.Language) {
		problems = append(problems, fmt.Sprintf("language %q is not one of %s", c.Language, strings.Join(languages, ", ")))
	}
	if c.Snapshots.Parallelism < 0 {
		problems = append(problems, fmt.Sprintf("snapshots.parallelism must not be negative, got %d", c.Snapshots.Parallelism))
	}
	if c.Output == "" {
		problems = append(problems, "output must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ResolvePaths makes every relative path and schema glob relative to root
func (c *Config) ResolvePaths(root string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}

	for i, pattern := range c.Schemas {
		c.Schemas[i] = resolve(pattern)
	}
	c.Output = resolve(c.Output)
	c.Snapshots.Fixtures = resolve(c.Snapshots.Fixtures)
	c.Snapshots.Root = resolve(c.Snapshots.Root)
}

// ModeFromEnv returns ModeUpdate when UPDATE_SNAPSHOTS is "1" or "true".
// lookup is normally os.LookupEnv.
func ModeFromEnv(lookup func(string) (string, bool)) snapshot.Mode {
	value, ok := lookup(snapshot.UpdateEnvVar)
	if !ok {
		return snapshot.ModeVerify
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true":
		return snapshot.ModeUpdate
	default:
		return snapshot.ModeVerify
	}
}

// loadConfigFromDir searches for okragen.yaml in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, startDir)
}
