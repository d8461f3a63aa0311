package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/okra-platform/okragen/internal/codegen"
	"github.com/okra-platform/okragen/internal/config"
	"github.com/okra-platform/okragen/internal/snapshot"
)

// ErrSnapshotMismatch is returned when at least one fixture fails verification
var ErrSnapshotMismatch = errors.New("snapshots do not match")

// SnapshotOptions configure a snapshot run
type SnapshotOptions struct {
	TargetOptions
	Mode snapshot.Mode

	// Diff prints unified diffs for mismatched files
	Diff bool

	// Yes skips the confirmation before baselines are replaced
	Yes bool
}

// Snapshot verifies or updates the golden baselines
func (c *Controller) Snapshot(ctx context.Context, opts SnapshotOptions) error {
	cfg, gen, err := c.loadConfig(opts.TargetOptions)
	if err != nil {
		return err
	}

	if opts.Mode == snapshot.ModeUpdate && !opts.Yes {
		confirmed, err := c.deps.Confirmer.Confirm(
			fmt.Sprintf("Replace baselines in %s?", cfg.Snapshots.Root),
			"Every fixture's snapshot directory is deleted and regenerated.",
		)
		if err != nil {
			return fmt.Errorf("failed to confirm update: %w", err)
		}
		if !confirmed {
			c.deps.Output.Println("Update cancelled")
			return nil
		}
	}

	report, err := c.runSnapshots(ctx, cfg, gen, opts.Mode, opts.Diff)
	if err != nil {
		return err
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d of %d fixtures failed", ErrSnapshotMismatch, len(report.Failed()), len(report.Results))
	}
	return nil
}

func (c *Controller) runSnapshots(ctx context.Context, cfg *config.Config, gen codegen.Generator, mode snapshot.Mode, diff bool) (*snapshot.Report, error) {
	runner := snapshot.NewRunner(snapshot.Options{
		FixturesDir:  cfg.Snapshots.Fixtures,
		Pattern:      cfg.Snapshots.Pattern,
		SnapshotsDir: cfg.Snapshots.Root,
		Namespace:    cfg.Namespace,
		Generator:    gen,
		Mode:         mode,
		Parallelism:  cfg.Snapshots.Parallelism,
		Diff:         diff,
		Logger:       c.Logger,
	})

	report, err := runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	c.printReport(report)
	return report, nil
}

func (c *Controller) printReport(report *snapshot.Report) {
	for _, res := range report.Failed() {
		c.deps.Output.Printf("❌ %v\n", res.Err)

		var failure *snapshot.Failure
		if errors.As(res.Err, &failure) {
			for _, d := range failure.Diffs {
				c.deps.Output.Printf("%s\n", d.Unified)
			}
		}
	}
	c.deps.Output.Println(report.Summary())
}
