package compare

// result.go defines the immutable outcome of one comparison invocation.
// Outcomes and unmatched sets are ordered slices: given identical inputs the
// result is bit-for-bit reproducible.

import (
	"time"

	"github.com/csvcompare/csvcompare/internal/mapping"
	"github.com/csvcompare/csvcompare/internal/table"
)

// Verdict is the per-row comparison outcome.
type Verdict string

const (
	VerdictMatch    Verdict = "match"
	VerdictMismatch Verdict = "mismatch"
)

// PairDiff records one mapped pair whose two cells differ in a row.
type PairDiff struct {
	Pair  mapping.Pair
	Left  table.Value
	Right table.Value
}

// RowOutcome is the verdict for one aligned row pair.
//
// Diffs is non-empty exactly when Verdict is VerdictMismatch, and lists the
// differing pairs in mapping order.
type RowOutcome struct {
	LeftRow  int
	RightRow int
	Key      string // key value under keyed alignment, empty otherwise
	Verdict  Verdict
	Diffs    []PairDiff
}

// UnmatchedRow identifies a row present in one table with no counterpart in
// the other: excess rows under positional alignment, one-sided keys under
// keyed alignment.
type UnmatchedRow struct {
	Row int
	Key string
}

// Result is the full outcome of one Compare call. It is freshly allocated per
// invocation and never mutated afterwards; the summarizer and the exporter
// both read it independently.
type Result struct {
	// ID is a unique identifier for this comparison run, used for log
	// correlation and export artifact naming.
	ID string

	Mapping   mapping.ColumnMapping
	Alignment Alignment
	Policy    Policy

	// AlignedRowCount is the number of row pairs actually compared; always
	// equal to len(Outcomes).
	AlignedRowCount int
	Outcomes        []RowOutcome

	UnmatchedLeft  []UnmatchedRow
	UnmatchedRight []UnmatchedRow

	Elapsed time.Duration
}

// MismatchCount returns the number of rows with a mismatch verdict.
func (r *Result) MismatchCount() int {
	n := 0
	for i := range r.Outcomes {
		if r.Outcomes[i].Verdict == VerdictMismatch {
			n++
		}
	}
	return n
}

// Identical reports whether the two tables were indistinguishable under the
// mapping: no mismatched rows and no unmatched rows on either side.
func (r *Result) Identical() bool {
	return r.MismatchCount() == 0 &&
		len(r.UnmatchedLeft) == 0 &&
		len(r.UnmatchedRight) == 0
}
