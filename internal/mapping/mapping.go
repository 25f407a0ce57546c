// Package mapping resolves a caller's comparison-mode selection into a
// concrete, validated list of column pairs to compare.
//
// Three modes are supported, mirroring the selection surface an embedding
// application offers:
//
//   - ModeAll: both tables must expose the same column set; every shared
//     column is mapped to itself, in left-table column order.
//   - ModeSingle: exactly one left column against one right column.
//   - ModeCustom: an ordered list of explicit (left, right) pairs.
//
// Resolve is a pure function of its inputs and fails fast with a structured
// *Error; a successful ColumnMapping is immutable and always non-empty, with
// each column mapped to at most one counterpart per side.
package mapping

import (
	"sort"

	"github.com/csvcompare/csvcompare/internal/table"
)

// Mode selects how column pairs are derived.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeSingle Mode = "single"
	ModeCustom Mode = "custom"
)

// Pair maps one left-table column onto one right-table column.
type Pair struct {
	Left  string
	Right string
}

// ColumnMapping is the resolved, ordered set of column pairs to compare.
// Pairs is an ordered slice, never a map: comparison output ordering must be
// reproducible.
type ColumnMapping struct {
	Mode  Mode
	Pairs []Pair
}

// Selection carries the caller's raw column choices. Left/Right are used by
// ModeSingle, Pairs by ModeCustom; ModeAll needs no selection.
type Selection struct {
	Left  string
	Right string
	Pairs []Pair
}

// Resolve validates the selection against both tables and produces the
// mapping for the requested mode.
func Resolve(left, right *table.Table, mode Mode, sel Selection) (ColumnMapping, error) {
	switch mode {
	case ModeAll:
		return resolveAll(left, right)
	case ModeSingle:
		return resolveSingle(left, right, sel)
	case ModeCustom:
		return resolveCustom(left, right, sel)
	default:
		return ColumnMapping{}, newError(KindEmptySelection, "")
	}
}

// resolveAll requires identical column sets (order-independent) and maps each
// column to itself in left-table order.
func resolveAll(left, right *table.Table) (ColumnMapping, error) {
	leftCols := left.Columns()
	rightCols := right.Columns()

	var diff []string
	for _, col := range leftCols {
		if !right.HasColumn(col) {
			diff = append(diff, col)
		}
	}
	for _, col := range rightCols {
		if !left.HasColumn(col) {
			diff = append(diff, col)
		}
	}
	if len(diff) > 0 {
		sort.Strings(diff)
		return ColumnMapping{}, newError(KindColumnSetMismatch, "", diff...)
	}

	pairs := make([]Pair, len(leftCols))
	for i, col := range leftCols {
		pairs[i] = Pair{Left: col, Right: col}
	}
	return ColumnMapping{Mode: ModeAll, Pairs: pairs}, nil
}

func resolveSingle(left, right *table.Table, sel Selection) (ColumnMapping, error) {
	if sel.Left == "" || sel.Right == "" {
		return ColumnMapping{}, newError(KindEmptySelection, "")
	}
	if !left.HasColumn(sel.Left) {
		return ColumnMapping{}, newError(KindUnknownColumn, "left", sel.Left)
	}
	if !right.HasColumn(sel.Right) {
		return ColumnMapping{}, newError(KindUnknownColumn, "right", sel.Right)
	}
	return ColumnMapping{
		Mode:  ModeSingle,
		Pairs: []Pair{{Left: sel.Left, Right: sel.Right}},
	}, nil
}

func resolveCustom(left, right *table.Table, sel Selection) (ColumnMapping, error) {
	if len(sel.Pairs) == 0 {
		return ColumnMapping{}, newError(KindEmptySelection, "")
	}

	seenLeft := make(map[string]bool, len(sel.Pairs))
	seenRight := make(map[string]bool, len(sel.Pairs))
	pairs := make([]Pair, 0, len(sel.Pairs))
	for _, p := range sel.Pairs {
		if !left.HasColumn(p.Left) {
			return ColumnMapping{}, newError(KindUnknownColumn, "left", p.Left)
		}
		if !right.HasColumn(p.Right) {
			return ColumnMapping{}, newError(KindUnknownColumn, "right", p.Right)
		}
		if seenLeft[p.Left] {
			return ColumnMapping{}, newError(KindDuplicateMapping, "left", p.Left)
		}
		if seenRight[p.Right] {
			return ColumnMapping{}, newError(KindDuplicateMapping, "right", p.Right)
		}
		seenLeft[p.Left] = true
		seenRight[p.Right] = true
		pairs = append(pairs, p)
	}
	return ColumnMapping{Mode: ModeCustom, Pairs: pairs}, nil
}

// RightFor returns the right-side counterpart of a left column, if mapped.
func (m ColumnMapping) RightFor(leftColumn string) (string, bool) {
	for _, p := range m.Pairs {
		if p.Left == leftColumn {
			return p.Right, true
		}
	}
	return "", false
}
