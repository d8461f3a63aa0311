package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okra-platform/okragen/internal/codegen"
	"github.com/okra-platform/okragen/internal/config"
	"github.com/okra-platform/okragen/internal/snapshot"
	"github.com/okra-platform/okragen/internal/watch"
)

const watchDebounce = 100 * time.Millisecond

// WatchOptions configure watch mode
type WatchOptions struct {
	TargetOptions
	Diff bool
}

// Watch verifies the snapshots, then verifies again whenever a fixture,
// schema or baseline file changes. It returns when ctx is cancelled or on
// SIGINT/SIGTERM.
func (c *Controller) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, gen, err := c.loadConfig(opts.TargetOptions)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	c.deps.SignalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer c.deps.SignalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			c.deps.Output.Println("\n👋 Stopping watch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	changes := make(chan string, 1)
	fw, err := watch.NewFileWatcher([]string{"*"}, cfg.Watch.Exclude, c.Logger, func(path string, op fsnotify.Op) {
		select {
		case changes <- path:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, dir := range watchDirs(cfg.Snapshots.Fixtures, cfg.Snapshots.Root, cfg.Schemas) {
		if err := fw.AddDirectory(dir); err != nil {
			return err
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- fw.Start(ctx)
	}()

	c.deps.Output.Printf("👀 Watching %s\n", cfg.Snapshots.Fixtures)
	c.verifyOnce(ctx, cfg, gen, opts.Diff)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errChan:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case path := <-changes:
			// Let bursts of writes settle, then run once for all of them
			time.Sleep(watchDebounce)
			select {
			case <-changes:
			default:
			}
			c.deps.Output.Printf("🔄 %s changed\n", path)
			c.verifyOnce(ctx, cfg, gen, opts.Diff)
		}
	}
}

func (c *Controller) verifyOnce(ctx context.Context, cfg *config.Config, gen codegen.Generator, diff bool) {
	if _, err := c.runSnapshots(ctx, cfg, gen, snapshot.ModeVerify, diff); err != nil {
		c.deps.Output.Printf("❌ %v\n", err)
	}
}

// watchDirs returns the existing directories holding fixtures, baselines and schemas
func watchDirs(fixtures, snapshots string, schemaPatterns []string) []string {
	candidates := []string{fixtures, snapshots}
	for _, pattern := range schemaPatterns {
		candidates = append(candidates, filepath.Dir(pattern))
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, dir := range candidates {
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
