// Package compare implements the comparison engine: given two immutable
// tables and a resolved column mapping, it aligns rows, evaluates equality
// per mapped pair, and produces a deterministic Result.
//
// Two alignment strategies exist. Positional alignment (the default) compares
// row i against row i and surfaces the excess rows of the longer table as
// unmatched rather than silently dropping them. Keyed alignment groups rows by a
// designated key column; keys present on only one side populate the unmatched
// sets, and a duplicate key within a single table is an error.
//
// Data-quality findings are never errors here: differing types, null cells,
// and differing row counts all land in the Result as mismatch verdicts or
// unmatched rows, because surfacing such discrepancies is the point of the
// engine. Compare is pure apart from logging; concurrent invocations need no
// coordination.
package compare

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/csvcompare/csvcompare/internal/logging"
	"github.com/csvcompare/csvcompare/internal/mapping"
	"github.com/csvcompare/csvcompare/internal/table"
)

// Alignment selects how rows are paired between the two tables.
type Alignment string

const (
	AlignPositional Alignment = "positional"
	AlignKeyed      Alignment = "keyed"
)

// contextCheckInterval is how many rows are evaluated between cancellation
// checks.
const contextCheckInterval = 1024

// Options configures a single Compare call.
type Options struct {
	// Alignment defaults to AlignPositional when empty.
	Alignment Alignment

	// KeyColumn is the left-table key column for AlignKeyed. The right-side
	// key is the column the mapping pairs it with, falling back to the same
	// name.
	KeyColumn string

	// Policy is the value-equality policy; the zero value is strict.
	Policy Policy

	// Parallel evaluates aligned rows across multiple goroutines. Output is
	// identical to the serial path: workers write into pre-allocated outcome
	// slots by index.
	Parallel bool

	// Workers caps parallel evaluation goroutines (default: GOMAXPROCS).
	Workers int
}

// Compare aligns the two tables under the mapping and evaluates every mapped
// pair per aligned row. It fails fast with *Error on a structurally invalid
// request and returns no partial Result.
func Compare(ctx context.Context, left, right *table.Table, m mapping.ColumnMapping, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	if len(m.Pairs) == 0 {
		return nil, &Error{Kind: KindEmptyMapping}
	}
	leftCols, rightCols, err := resolvePairColumns(left, right, m)
	if err != nil {
		return nil, err
	}

	align := opts.Alignment
	if align == "" {
		align = AlignPositional
	}

	res := &Result{
		ID:        uuid.NewString(),
		Mapping:   m,
		Alignment: align,
		Policy:    opts.Policy,
	}
	logger := logging.WithRun(res.ID)
	logger.Debug("comparison started",
		"left", left.Name(),
		"right", right.Name(),
		"alignment", string(align),
		"pairs", len(m.Pairs),
	)

	switch align {
	case AlignKeyed:
		err = alignByKey(left, right, m, opts.KeyColumn, res)
	default:
		alignPositional(left, right, res)
	}
	if err != nil {
		return nil, err
	}

	if err := evaluate(ctx, res.Outcomes, left, right, leftCols, rightCols, m.Pairs, opts); err != nil {
		return nil, err
	}

	res.AlignedRowCount = len(res.Outcomes)
	res.Elapsed = time.Since(start)
	logger.Info("comparison complete",
		"aligned_rows", res.AlignedRowCount,
		"mismatches", res.MismatchCount(),
		"unmatched_left", len(res.UnmatchedLeft),
		"unmatched_right", len(res.UnmatchedRight),
		"duration", res.Elapsed,
	)
	return res, nil
}

// resolvePairColumns maps every pair to column positions once, up front. The
// mapper validates existence upstream; this re-checks for callers that build
// mappings by hand.
func resolvePairColumns(left, right *table.Table, m mapping.ColumnMapping) ([]int, []int, error) {
	leftCols := make([]int, len(m.Pairs))
	rightCols := make([]int, len(m.Pairs))
	for i, p := range m.Pairs {
		li, ok := left.ColumnIndex(p.Left)
		if !ok {
			return nil, nil, &Error{Kind: KindUnknownColumn, Side: "left", Column: p.Left}
		}
		ri, ok := right.ColumnIndex(p.Right)
		if !ok {
			return nil, nil, &Error{Kind: KindUnknownColumn, Side: "right", Column: p.Right}
		}
		leftCols[i] = li
		rightCols[i] = ri
	}
	return leftCols, rightCols, nil
}

// alignPositional pairs row i with row i; the longer table's excess rows are
// recorded as unmatched.
func alignPositional(left, right *table.Table, res *Result) {
	n := left.RowCount()
	if right.RowCount() < n {
		n = right.RowCount()
	}

	res.Outcomes = make([]RowOutcome, n)
	for i := 0; i < n; i++ {
		res.Outcomes[i].LeftRow = i
		res.Outcomes[i].RightRow = i
	}
	for i := n; i < left.RowCount(); i++ {
		res.UnmatchedLeft = append(res.UnmatchedLeft, UnmatchedRow{Row: i})
	}
	for i := n; i < right.RowCount(); i++ {
		res.UnmatchedRight = append(res.UnmatchedRight, UnmatchedRow{Row: i})
	}
}

// alignByKey pairs rows sharing a key value. Matched pairs are emitted in
// left-table row order, unmatched right rows in right-table row order, so the
// result ordering is reproducible.
func alignByKey(left, right *table.Table, m mapping.ColumnMapping, keyColumn string, res *Result) error {
	leftKey, ok := left.ColumnIndex(keyColumn)
	if !ok {
		return &Error{Kind: KindUnknownColumn, Side: "left", Column: keyColumn}
	}
	rightName, ok := m.RightFor(keyColumn)
	if !ok {
		rightName = keyColumn
	}
	rightKey, ok := right.ColumnIndex(rightName)
	if !ok {
		return &Error{Kind: KindUnknownColumn, Side: "right", Column: rightName}
	}

	leftIndex, err := buildKeyIndex(left, leftKey, "left")
	if err != nil {
		return err
	}
	rightIndex, err := buildKeyIndex(right, rightKey, "right")
	if err != nil {
		return err
	}

	for i := 0; i < left.RowCount(); i++ {
		key := left.CellAt(i, leftKey).String()
		if j, found := rightIndex[key]; found {
			res.Outcomes = append(res.Outcomes, RowOutcome{LeftRow: i, RightRow: j, Key: key})
		} else {
			res.UnmatchedLeft = append(res.UnmatchedLeft, UnmatchedRow{Row: i, Key: key})
		}
	}
	for j := 0; j < right.RowCount(); j++ {
		key := right.CellAt(j, rightKey).String()
		if _, found := leftIndex[key]; !found {
			res.UnmatchedRight = append(res.UnmatchedRight, UnmatchedRow{Row: j, Key: key})
		}
	}
	return nil
}

// buildKeyIndex maps each key value to its row, failing on the first
// duplicate with both conflicting row indices.
func buildKeyIndex(t *table.Table, keyCol int, side string) (map[string]int, error) {
	index := make(map[string]int, t.RowCount())
	for i := 0; i < t.RowCount(); i++ {
		key := t.CellAt(i, keyCol).String()
		if first, dup := index[key]; dup {
			return nil, &Error{
				Kind: KindDuplicateKey,
				Side: side,
				Key:  key,
				Rows: []int{first, i},
			}
		}
		index[key] = i
	}
	return index, nil
}

// evaluate fills in verdicts and diffs for every aligned row pair.
func evaluate(ctx context.Context, outcomes []RowOutcome, left, right *table.Table, leftCols, rightCols []int, pairs []mapping.Pair, opts Options) error {
	if !opts.Parallel || len(outcomes) < 2 {
		for i := range outcomes {
			if i%contextCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			evaluateRow(&outcomes[i], left, right, leftCols, rightCols, pairs, opts.Policy)
		}
		return nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(outcomes) {
		workers = len(outcomes)
	}
	chunk := (len(outcomes) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(outcomes) {
			hi = len(outcomes)
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%contextCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				evaluateRow(&outcomes[i], left, right, leftCols, rightCols, pairs, opts.Policy)
			}
			return nil
		})
	}
	return g.Wait()
}

// evaluateRow compares every mapped pair of one aligned row. Diffs come out
// in mapping order; the verdict is mismatch iff any pair differs.
func evaluateRow(out *RowOutcome, left, right *table.Table, leftCols, rightCols []int, pairs []mapping.Pair, pol Policy) {
	var diffs []PairDiff
	for k := range pairs {
		lv := left.CellAt(out.LeftRow, leftCols[k])
		rv := right.CellAt(out.RightRow, rightCols[k])
		if !pol.Equal(lv, rv) {
			diffs = append(diffs, PairDiff{Pair: pairs[k], Left: lv, Right: rv})
		}
	}
	if len(diffs) > 0 {
		out.Verdict = VerdictMismatch
		out.Diffs = diffs
	} else {
		out.Verdict = VerdictMatch
	}
}
