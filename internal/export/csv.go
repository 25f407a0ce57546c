// Package export serializes the mismatched subset of a comparison result into
// a downloadable CSV artifact.
//
// The artifact is UTF-8, comma-delimited, quoted per standard CSV rules, and
// re-parseable as a table: one header row, then one row per mismatch. The
// first column identifies the row (positional index or key value); after it,
// every mapped pair contributes two adjacent columns, <left>_left and
// <right>_right, in mapping order. Rows with a match verdict are excluded
// entirely, so a comparison with zero mismatches exports a header-only file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/csvcompare/csvcompare/internal/compare"
	"github.com/csvcompare/csvcompare/internal/table"
)

const (
	leftSuffix  = "_left"
	rightSuffix = "_right"
)

// Filename returns a stable artifact name for a comparison run, derived from
// the run ID.
func Filename(res *compare.Result) string {
	id := res.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("mismatched_rows_%s.csv", id)
}

// WriteMismatches writes every mismatched row of the result to w. The left
// and right tables must be the ones the result was computed from; they supply
// the values of pairs that matched within an otherwise mismatched row.
func WriteMismatches(w io.Writer, res *compare.Result, left, right *table.Table) error {
	pairs := res.Mapping.Pairs
	leftCols := make([]int, len(pairs))
	rightCols := make([]int, len(pairs))
	for i, p := range pairs {
		li, ok := left.ColumnIndex(p.Left)
		if !ok {
			return fmt.Errorf("export: left table has no column %q", p.Left)
		}
		ri, ok := right.ColumnIndex(p.Right)
		if !ok {
			return fmt.Errorf("export: right table has no column %q", p.Right)
		}
		leftCols[i] = li
		rightCols[i] = ri
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, 1+2*len(pairs))
	header = append(header, idColumn(res))
	for _, p := range pairs {
		header = append(header, p.Left+leftSuffix, p.Right+rightSuffix)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	record := make([]string, 0, len(header))
	for i := range res.Outcomes {
		out := &res.Outcomes[i]
		if out.Verdict != compare.VerdictMismatch {
			continue
		}
		record = record[:0]
		record = append(record, rowID(res, out))
		for k := range pairs {
			record = append(record,
				left.CellAt(out.LeftRow, leftCols[k]).String(),
				right.CellAt(out.RightRow, rightCols[k]).String(),
			)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteUnmatched writes the rows present in only one table: side, row index,
// and key (empty under positional alignment). Header-only when every row had
// a counterpart.
func WriteUnmatched(w io.Writer, res *compare.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"side", "row", "key"}); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	write := func(side string, rows []compare.UnmatchedRow) error {
		for _, u := range rows {
			if err := cw.Write([]string{side, strconv.Itoa(u.Row), u.Key}); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		}
		return nil
	}
	if err := write("left", res.UnmatchedLeft); err != nil {
		return err
	}
	if err := write("right", res.UnmatchedRight); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func idColumn(res *compare.Result) string {
	if res.Alignment == compare.AlignKeyed {
		return "key"
	}
	return "row"
}

func rowID(res *compare.Result, out *compare.RowOutcome) string {
	if res.Alignment == compare.AlignKeyed {
		return out.Key
	}
	return strconv.Itoa(out.LeftRow)
}
