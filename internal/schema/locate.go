package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Locate resolves schema paths from a mix of glob patterns and explicit paths.
// Globs may match nothing; explicit paths must exist and be regular files. The
// result is deduplicated and sorted so compilation order does not depend on the
// order patterns were given in.
func Locate(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if !strings.ContainsAny(pattern, "*?[") {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("schema file %s: %w", pattern, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("schema file %s: is a directory", pattern)
			}
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid schema pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
				add(m)
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSchemaFiles, strings.Join(patterns, ", "))
	}

	sort.Strings(paths)
	return paths, nil
}
