package normalize

import (
	"fmt"
	"sort"
	"strings"
)

// Skip reasons recorded by the accumulator. They key the per-reason counts
// in the extraction summary, so they stay short and machine-readable.
const (
	SkipBadDate        = "unparseable_date"
	SkipNoAmount       = "no_amount"
	SkipBadAmount      = "unparseable_amount"
	SkipEmptyRow       = "empty_row"
	SkipUnclassifiable = "unclassifiable_table"
)

// maxSkipDetails caps the raw diagnostics kept for audit so a pathological
// document cannot balloon the outcome record.
const maxSkipDetails = 50

// Accumulator collects per-row outcomes while a document is processed.
// Row failures are counted here instead of being propagated, which is what
// lets one bad row degrade a document to partial instead of failing it.
type Accumulator struct {
	RowsExtracted int
	RowsSkipped   int
	Reasons       map[string]int
	details       []string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{Reasons: make(map[string]int)}
}

// Record counts one successfully normalized row.
func (a *Accumulator) Record() {
	a.RowsExtracted++
}

// Skip counts one skipped row under the given reason and retains the raw
// detail for diagnostics.
func (a *Accumulator) Skip(reason, detail string) {
	a.RowsSkipped++
	a.Reasons[reason]++
	if detail != "" && len(a.details) < maxSkipDetails {
		a.details = append(a.details, fmt.Sprintf("%s: %s", reason, detail))
	}
}

// Details returns the retained raw diagnostics in arrival order.
func (a *Accumulator) Details() []string {
	return a.details
}

// Summary renders a one-line human-readable account of what was skipped,
// suitable for the outcome's error detail. Empty when nothing was skipped.
func (a *Accumulator) Summary() string {
	if a.RowsSkipped == 0 {
		return ""
	}

	reasons := make([]string, 0, len(a.Reasons))
	for r := range a.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)

	parts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		parts = append(parts, fmt.Sprintf("%s: %d", r, a.Reasons[r]))
	}
	return fmt.Sprintf("%d row(s) skipped (%s)", a.RowsSkipped, strings.Join(parts, ", "))
}
