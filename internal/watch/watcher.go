// Package watch reports changes to schema and baseline files.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher watches directories recursively and calls onChange for files
// matching its patterns.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher. Patterns are matched against the
// base name; "**/*.ext" matches by extension at any depth. Exclude patterns
// ending in "/" name directories.
func NewFileWatcher(patterns, exclude []string, logger zerolog.Logger, onChange func(path string, op fsnotify.Op)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}, nil
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && fw.excluded(path, true) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		fw.logger.Debug().Str("dir", path).Msg("watching directory")
		return nil
	})
}

// Start delivers events until ctx is done or the watcher is closed
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if fw.shouldWatch(event.Name) {
				fw.onChange(event.Name, event.Op)
			}

			// New directories are watched too
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.excluded(event.Name, true) {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// excluded reports whether path matches an exclude pattern. Directory
// patterns may span several components, e.g. "build/gen/".
func (fw *FileWatcher) excluded(path string, isDir bool) bool {
	base := filepath.Base(path)
	for _, pattern := range fw.exclude {
		if dirPattern, ok := strings.CutSuffix(pattern, "/"); ok {
			dir := path
			if !isDir {
				dir = filepath.Dir(path)
			}
			if matchDirs(dirPattern, dir) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// matchDirs reports whether the components of pattern match consecutive
// components of dir.
func matchDirs(pattern, dir string) bool {
	segments := strings.Split(strings.Trim(filepath.ToSlash(pattern), "/"), "/")
	parts := strings.Split(filepath.ToSlash(dir), "/")
	for start := 0; start+len(segments) <= len(parts); start++ {
		if matchSegments(segments, parts[start:start+len(segments)]) {
			return true
		}
	}
	return false
}

func matchSegments(segments, parts []string) bool {
	for i, segment := range segments {
		if matched, _ := filepath.Match(segment, parts[i]); !matched {
			return false
		}
	}
	return true
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	if fw.excluded(path, false) {
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range fw.patterns {
		if ext, ok := strings.CutPrefix(pattern, "**/*"); ok {
			if strings.HasSuffix(path, ext) {
				return true
			}
		} else if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
