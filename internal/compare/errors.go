package compare

// errors.go defines the structured error returned by Compare. These signal a
// structurally invalid request, never a data-quality finding: differing
// values, missing cells, and differing row counts are all encoded in the
// Result instead.

import (
	"fmt"
	"strings"
)

// ErrorKind classifies comparison failures.
type ErrorKind string

const (
	// KindEmptyMapping: the mapping resolved to zero pairs. The mapper
	// prevents this upstream; Compare re-checks defensively.
	KindEmptyMapping ErrorKind = "empty_mapping"

	// KindDuplicateKey: keyed alignment found the same key value on more
	// than one row of a single table.
	KindDuplicateKey ErrorKind = "duplicate_key"

	// KindUnknownColumn: the mapping or key column references a column the
	// table does not have.
	KindUnknownColumn ErrorKind = "unknown_column"
)

// Error is a comparison failure. No partial Result accompanies it.
type Error struct {
	Kind   ErrorKind
	Side   string // "left" or "right" where one side is at fault
	Column string // offending column, if any
	Key    string // offending key value for KindDuplicateKey
	Rows   []int  // conflicting row indices for KindDuplicateKey
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "compare: %s", e.Kind)
	if e.Side != "" {
		fmt.Fprintf(&b, " (%s table)", e.Side)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	if e.Kind == KindDuplicateKey {
		fmt.Fprintf(&b, ": key %q at rows %v", e.Key, e.Rows)
	}
	return b.String()
}
