package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern matches okra schema fixtures
const DefaultPattern = "*.gql"

// Fixture is one schema file and the baseline directory it is checked against.
type Fixture struct {
	Name        string
	SchemaPath  string
	SnapshotDir string
}

// Discover returns the fixtures matching pattern directly under fixturesDir,
// sorted by path. Names are the file base names without extension; when two
// files share a name the first one wins. Dotfiles are skipped.
func Discover(fixturesDir, pattern string, store *Store) ([]Fixture, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	info, err := os.Stat(fixturesDir)
	if err != nil {
		return nil, &ConfigurationError{Reason: "fixtures directory " + fixturesDir, Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("fixtures path %s is not a directory", fixturesDir)}
	}

	matches, err := filepath.Glob(filepath.Join(fixturesDir, pattern))
	if err != nil {
		return nil, &ConfigurationError{Reason: "fixture pattern " + pattern, Err: err}
	}
	sort.Strings(matches)

	seen := make(map[string]bool)
	var fixtures []Fixture
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") {
			continue
		}
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if seen[name] {
			continue
		}
		seen[name] = true

		fixtures = append(fixtures, Fixture{
			Name:        name,
			SchemaPath:  path,
			SnapshotDir: store.Dir(name),
		})
	}

	if len(fixtures) == 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("no fixtures matching %s in %s", pattern, fixturesDir)}
	}
	return fixtures, nil
}
