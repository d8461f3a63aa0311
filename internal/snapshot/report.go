package snapshot

import (
	"fmt"
	"strings"
)

// Report collects the results of a run in fixture order.
type Report struct {
	Mode    Mode
	Results []Result
}

// Failed returns the results that did not pass
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// OK reports whether no fixture failed
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Summary returns one status line per fixture followed by the totals.
func (r *Report) Summary() string {
	var b strings.Builder
	counts := make(map[Status]int)
	for _, res := range r.Results {
		counts[res.Status]++
		fmt.Fprintf(&b, "%-8s %s\n", res.Status, res.Fixture.Name)
	}
	fmt.Fprintf(&b, "%d fixtures (%s): %d passed, %d promoted, %d failed",
		len(r.Results), r.Mode, counts[StatusPassed], counts[StatusPromoted], counts[StatusFailed])
	return b.String()
}
