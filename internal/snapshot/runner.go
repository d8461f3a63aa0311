// Package snapshot checks generator output against baselines stored on disk.
//
// Each fixture is compiled into a throwaway directory. In verify mode the
// result is compared with the fixture's baseline; in update mode it replaces
// the baseline.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/okragen/internal/codegen"
	"github.com/okra-platform/okragen/internal/compiler"
	"github.com/okra-platform/okragen/internal/treediff"
)

// Options configures a Runner.
type Options struct {
	FixturesDir  string
	Pattern      string
	SnapshotsDir string
	Namespace    string

	// Generator must be safe for concurrent use when Parallelism > 1
	Generator codegen.Generator
	Mode      Mode

	// Parallelism > 1 runs fixtures concurrently
	Parallelism int

	// Diff renders unified diffs for content failures
	Diff bool

	// TempDir is the parent of per-fixture work directories; empty means os.TempDir
	TempDir string

	Logger zerolog.Logger
}

// Status is the outcome of one fixture.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusPromoted
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusPromoted:
		return "promoted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result reports one fixture run. Err is a *Failure for assertion and compile
// failures and a plain wrapped error for filesystem problems.
type Result struct {
	Fixture  Fixture
	Status   Status
	Err      error
	Duration time.Duration
}

// Runner executes snapshot fixtures.
type Runner struct {
	opts     Options
	store    *Store
	compiler *compiler.Compiler
	logger   zerolog.Logger
}

// NewRunner creates a runner for opts
func NewRunner(opts Options) *Runner {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	logger := opts.Logger.With().Str("component", "snapshot").Logger()
	return &Runner{
		opts:     opts,
		store:    NewStore(opts.SnapshotsDir),
		compiler: compiler.New(opts.Logger),
		logger:   logger,
	}
}

// Store returns the baseline store the runner reads and writes
func (r *Runner) Store() *Store {
	return r.store
}

// Discover returns the fixtures the runner would execute
func (r *Runner) Discover() ([]Fixture, error) {
	return Discover(r.opts.FixturesDir, r.opts.Pattern, r.store)
}

// Run executes every fixture and reports all of them, even after failures.
// The returned error is only set when the run could not start.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.opts.Generator == nil {
		return nil, &ConfigurationError{Reason: "no generator configured"}
	}
	fixtures, err := r.Discover()
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("fixtures", len(fixtures)).
		Str("mode", r.opts.Mode.String()).
		Int("parallelism", r.opts.Parallelism).
		Msg("starting snapshot run")

	results := make([]Result, len(fixtures))
	if r.opts.Parallelism > 1 {
		var g errgroup.Group
		g.SetLimit(r.opts.Parallelism)
		for i, f := range fixtures {
			i, f := i, f
			g.Go(func() error {
				results[i] = r.RunFixture(ctx, f)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, f := range fixtures {
			results[i] = r.RunFixture(ctx, f)
		}
	}

	return &Report{Mode: r.opts.Mode, Results: results}, nil
}

// RunFixture compiles one fixture into a temporary directory and either
// promotes or verifies the output. The directory is removed before returning.
func (r *Runner) RunFixture(ctx context.Context, f Fixture) Result {
	start := time.Now()
	res := Result{Fixture: f, Status: StatusPassed}

	err := withTempDir(r.opts.TempDir, "okragen-"+f.Name+"-", func(tmp string) error {
		generated := filepath.Join(tmp, "generated")
		if err := r.compiler.Compile(ctx, compiler.Request{
			SchemaFiles: []string{f.SchemaPath},
			OutputDir:   generated,
			Generator:   r.opts.Generator,
			Namespace:   r.opts.Namespace,
		}); err != nil {
			return &Failure{Fixture: f.Name, Kind: FailureCompile, Err: err}
		}

		if r.opts.Mode == ModeUpdate {
			if err := r.store.Promote(f.Name, generated); err != nil {
				return err
			}
			res.Status = StatusPromoted
			return nil
		}
		return r.verify(f, generated)
	})

	res.Duration = time.Since(start)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
	}
	r.logResult(res)
	return res
}

// verify checks file lists first and reads content only when they agree.
func (r *Runner) verify(f Fixture, generated string) error {
	ok, err := r.store.Has(f.Name)
	if err != nil {
		return err
	}
	if !ok {
		return &Failure{Fixture: f.Name, Kind: FailureMissingBaseline, BaselineDir: f.SnapshotDir}
	}

	expected, err := treediff.ListFiles(f.SnapshotDir)
	if err != nil {
		return err
	}
	actual, err := treediff.ListFiles(generated)
	if err != nil {
		return err
	}

	expectedOnly, actualOnly, common := treediff.Partition(expected, actual)
	if len(expectedOnly) > 0 || len(actualOnly) > 0 {
		return &Failure{
			Fixture:      f.Name,
			Kind:         FailureFileList,
			BaselineDir:  f.SnapshotDir,
			Expected:     expected,
			Actual:       actual,
			ExpectedOnly: expectedOnly,
			ActualOnly:   actualOnly,
		}
	}

	mismatched, _, err := treediff.Compare(f.SnapshotDir, generated, common)
	if err != nil {
		return err
	}
	if len(mismatched) == 0 {
		return nil
	}

	failure := &Failure{
		Fixture:     f.Name,
		Kind:        FailureContent,
		BaselineDir: f.SnapshotDir,
		Mismatched:  mismatched,
	}
	if r.opts.Diff {
		for _, rel := range mismatched {
			unified, err := unifiedDiff(f.SnapshotDir, generated, rel)
			if err != nil {
				return err
			}
			failure.Diffs = append(failure.Diffs, FileDiff{Path: rel, Unified: unified})
		}
	}
	return failure
}

func unifiedDiff(baseline, generated, rel string) (string, error) {
	want, err := os.ReadFile(filepath.Join(baseline, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	got, err := os.ReadFile(filepath.Join(generated, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(string(got)),
		FromFile: "baseline/" + rel,
		ToFile:   "generated/" + rel,
		Context:  3,
	})
}

func (r *Runner) logResult(res Result) {
	switch res.Status {
	case StatusPromoted:
		r.logger.Info().
			Str("fixture", res.Fixture.Name).
			Str("baseline", res.Fixture.SnapshotDir).
			Msg("promoted snapshot")
	case StatusFailed:
		r.logger.Warn().
			Err(res.Err).
			Str("fixture", res.Fixture.Name).
			Msg("snapshot failed")
	default:
		r.logger.Debug().
			Str("fixture", res.Fixture.Name).
			Dur("duration", res.Duration).
			Msg("snapshot matched")
	}
}

// withTempDir creates a directory under parent, runs fn with it and removes
// it on every exit path, panics included.
func withTempDir(parent, pattern string, fn func(dir string) error) error {
	dir, err := os.MkdirTemp(parent, pattern)
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(dir)
	return fn(dir)
}
