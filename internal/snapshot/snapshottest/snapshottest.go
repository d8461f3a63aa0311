// Package snapshottest runs snapshot fixtures as Go subtests.
package snapshottest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okra-platform/okragen/internal/snapshot"
)

// Run executes every fixture found by opts as a subtest named after the
// fixture. A missing or empty fixtures directory fails the parent test.
func Run(t *testing.T, opts snapshot.Options) {
	t.Helper()

	r := snapshot.NewRunner(opts)
	fixtures, err := r.Discover()
	require.NoError(t, err)

	for _, f := range fixtures {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			res := r.RunFixture(context.Background(), f)
			require.NoError(t, res.Err)
			if res.Status == snapshot.StatusPromoted {
				t.Logf("updated baseline %s", f.SnapshotDir)
			}
		})
	}
}
