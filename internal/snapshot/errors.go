package snapshot

import (
	"fmt"
	"strings"
)

// ConfigurationError aborts a run before any fixture executes.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("snapshot configuration: %s: %v", e.Reason, e.Err)
	}
	return "snapshot configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// FailureKind classifies why a fixture failed.
type FailureKind int

const (
	FailureMissingBaseline FailureKind = iota + 1
	FailureFileList
	FailureContent
	FailureCompile
)

func (k FailureKind) String() string {
	switch k {
	case FailureMissingBaseline:
		return "missing baseline"
	case FailureFileList:
		return "file list"
	case FailureContent:
		return "content"
	case FailureCompile:
		return "compile"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// FileDiff is a unified diff between a baseline file and its generated counterpart
type FileDiff struct {
	Path    string
	Unified string
}

// Failure is the assertion failure reported for one fixture.
type Failure struct {
	Fixture     string
	Kind        FailureKind
	BaselineDir string

	// Set for FailureFileList
	Expected     []string
	Actual       []string
	ExpectedOnly []string
	ActualOnly   []string

	// Set for FailureContent; Diffs only when the runner renders them
	Mismatched []string
	Diffs      []FileDiff

	// Set for FailureCompile
	Err error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureMissingBaseline:
		return fmt.Sprintf("snapshot %q: no baseline at %s; run with %s=1 to create it", f.Fixture, f.BaselineDir, UpdateEnvVar)
	case FailureFileList:
		var b strings.Builder
		fmt.Fprintf(&b, "snapshot %q: generated file list differs from baseline\n", f.Fixture)
		fmt.Fprintf(&b, "  expected: %s\n", strings.Join(f.Expected, ", "))
		fmt.Fprintf(&b, "  actual:   %s", strings.Join(f.Actual, ", "))
		if len(f.ExpectedOnly) > 0 {
			fmt.Fprintf(&b, "\n  missing:  %s", strings.Join(f.ExpectedOnly, ", "))
		}
		if len(f.ActualOnly) > 0 {
			fmt.Fprintf(&b, "\n  extra:    %s", strings.Join(f.ActualOnly, ", "))
		}
		return b.String()
	case FailureContent:
		return fmt.Sprintf("snapshot %q: content differs from baseline in %s", f.Fixture, strings.Join(f.Mismatched, ", "))
	case FailureCompile:
		return fmt.Sprintf("snapshot %q: compile failed: %v", f.Fixture, f.Err)
	default:
		return fmt.Sprintf("snapshot %q: %s failure", f.Fixture, f.Kind)
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}
