// Package table provides the immutable in-memory representation of a parsed
// dataset: ordered column names, typed cell values, and per-column inferred
// types.
//
// A Table is created once per source file through a Builder and never mutated
// afterwards. Every row holds exactly one cell per column (cells missing in
// the source become Null, never absent), so downstream consumers can index
// rows and columns without existence checks.
package table

import (
	"fmt"
)

// Type is the inferred type of a column.
type Type int

const (
	TypeText Type = iota
	TypeNumber
	TypeBoolean
)

// String returns the lowercase name of the column type.
func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// Table is an immutable parsed dataset.
type Table struct {
	name    string
	columns []string
	index   map[string]int
	types   []Type
	rows    [][]Value
}

// Builder accumulates rows for a Table. It is not safe for concurrent use.
type Builder struct {
	name    string
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewBuilder creates a builder for a table with the given ordered column
// names. Column names must be non-empty and unique within the table.
func NewBuilder(name string, columns []string) (*Builder, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %q: no columns", name)
	}
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col == "" {
			return nil, fmt.Errorf("table %q: empty column name at position %d", name, i)
		}
		if _, dup := index[col]; dup {
			return nil, fmt.Errorf("table %q: duplicate column %q", name, col)
		}
		index[col] = i
	}
	return &Builder{
		name:    name,
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// AppendRow adds a row of cells in column order. The row must have exactly one
// cell per column.
func (b *Builder) AppendRow(cells []Value) error {
	if len(cells) != len(b.columns) {
		return fmt.Errorf("table %q: row %d has %d cells, want %d",
			b.name, len(b.rows), len(cells), len(b.columns))
	}
	b.rows = append(b.rows, append([]Value(nil), cells...))
	return nil
}

// AppendRecord adds a row given as a column-name-to-value record. Columns
// absent from the record become Null; keys that are not table columns are an
// error.
func (b *Builder) AppendRecord(record map[string]Value) error {
	for key := range record {
		if _, ok := b.index[key]; !ok {
			return fmt.Errorf("table %q: record references unknown column %q", b.name, key)
		}
	}
	cells := make([]Value, len(b.columns))
	for i, col := range b.columns {
		cells[i] = record[col] // zero Value is Null
	}
	b.rows = append(b.rows, cells)
	return nil
}

// Build finalizes the table and infers per-column types from the accumulated
// cells. The builder must not be reused afterwards.
func (b *Builder) Build() *Table {
	t := &Table{
		name:    b.name,
		columns: b.columns,
		index:   b.index,
		rows:    b.rows,
	}
	t.types = inferTypes(t)
	b.rows = nil
	return t
}

// inferTypes derives each column's type from its non-null cells: all numbers
// is a number column, all booleans is a boolean column, anything else
// (including all-null) is text.
func inferTypes(t *Table) []Type {
	types := make([]Type, len(t.columns))
	for c := range t.columns {
		allNumber, allBool := true, true
		seen := false
		for r := range t.rows {
			v := t.rows[r][c]
			if v.IsNull() {
				continue
			}
			seen = true
			if v.Kind() != KindNumber {
				allNumber = false
			}
			if v.Kind() != KindBoolean {
				allBool = false
			}
		}
		switch {
		case seen && allNumber:
			types[c] = TypeNumber
		case seen && allBool:
			types[c] = TypeBoolean
		default:
			types[c] = TypeText
		}
	}
	return types
}

// Name returns the table's display name (typically the source file name).
func (t *Table) Name() string {
	return t.name
}

// Columns returns a copy of the ordered column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// HasColumn reports whether the table has a column with the given name.
// Matching is exact and case-sensitive.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnType returns the inferred type of the named column.
func (t *Table) ColumnType(name string) (Type, bool) {
	i, ok := t.index[name]
	if !ok {
		return TypeText, false
	}
	return t.types[i], true
}

// Cell returns the value at the given row and column name. The second return
// is false when the row is out of range or the column does not exist.
func (t *Table) Cell(row int, column string) (Value, bool) {
	c, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return Value{}, false
	}
	return t.rows[row][c], true
}

// CellAt returns the value at the given row and column position. Callers that
// resolved column indices once (the comparator's hot path) use this instead of
// the name lookup in Cell.
func (t *Table) CellAt(row, col int) Value {
	return t.rows[row][col]
}

// Row returns a copy of the cells of row i in column order.
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}
