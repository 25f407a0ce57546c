package mapping

// errors.go defines the structured error returned by Resolve. Every failure
// carries a machine-readable kind plus the offending column names, so callers
// can render an actionable message and re-prompt for a corrected selection.

import (
	"fmt"
	"strings"
)

// ErrorKind classifies mapping resolution failures.
type ErrorKind string

const (
	// KindColumnSetMismatch: ALL mode requires both tables to expose the same
	// column set; Columns holds the symmetric difference.
	KindColumnSetMismatch ErrorKind = "column_set_mismatch"

	// KindUnknownColumn: a selected column does not exist in its table.
	KindUnknownColumn ErrorKind = "unknown_column"

	// KindDuplicateMapping: a column appears on the same side of more than
	// one pair.
	KindDuplicateMapping ErrorKind = "duplicate_mapping"

	// KindEmptySelection: the selection would resolve to zero pairs.
	KindEmptySelection ErrorKind = "empty_selection"
)

// Error is a mapping resolution failure.
type Error struct {
	Kind    ErrorKind
	Side    string   // "left" or "right" where a single side is at fault
	Columns []string // offending column names, sorted for determinism
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mapping: %s", e.Kind)
	if e.Side != "" {
		fmt.Fprintf(&b, " (%s table)", e.Side)
	}
	if len(e.Columns) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Columns, ", "))
	}
	return b.String()
}

func newError(kind ErrorKind, side string, columns ...string) *Error {
	return &Error{Kind: kind, Side: side, Columns: columns}
}
