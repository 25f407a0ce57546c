package table

import (
	"testing"

	"github.com/shopspring/decimal"
)

func num(s string) Value {
	return Number(decimal.RequireFromString(s))
}

// ============================================================================
// Builder Tests
// ============================================================================

func TestNewBuilder_RejectsBadColumns(t *testing.T) {
	if _, err := NewBuilder("t", nil); err == nil {
		t.Error("expected error for zero columns")
	}
	if _, err := NewBuilder("t", []string{"a", ""}); err == nil {
		t.Error("expected error for empty column name")
	}
	if _, err := NewBuilder("t", []string{"a", "b", "a"}); err == nil {
		t.Error("expected error for duplicate column name")
	}
}

func TestBuilder_AppendRow_ArityChecked(t *testing.T) {
	b, err := NewBuilder("t", []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.AppendRow([]Value{Text("x")}); err == nil {
		t.Error("expected error for short row")
	}
	if err := b.AppendRow([]Value{Text("x"), Text("y"), Text("z")}); err == nil {
		t.Error("expected error for long row")
	}
	if err := b.AppendRow([]Value{Text("x"), Text("y")}); err != nil {
		t.Errorf("unexpected error for exact row: %v", err)
	}
}

func TestBuilder_AppendRecord_MissingColumnsBecomeNull(t *testing.T) {
	b, err := NewBuilder("t", []string{"id", "name"})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.AppendRecord(map[string]Value{"id": num("1")}); err != nil {
		t.Fatalf("AppendRecord: %v", err)
	}
	tbl := b.Build()

	v, ok := tbl.Cell(0, "name")
	if !ok {
		t.Fatal("cell (0, name) should exist")
	}
	if !v.IsNull() {
		t.Errorf("missing record key should be null, got %v", v.Kind())
	}
}

func TestBuilder_AppendRecord_UnknownColumnRejected(t *testing.T) {
	b, err := NewBuilder("t", []string{"id"})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.AppendRecord(map[string]Value{"nope": Text("x")}); err == nil {
		t.Error("expected error for unknown record key")
	}
}

// ============================================================================
// Type Inference Tests
// ============================================================================

func TestBuild_InfersColumnTypes(t *testing.T) {
	b, err := NewBuilder("t", []string{"n", "b", "s", "mixed", "empty"})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	rows := [][]Value{
		{num("1"), Bool(true), Text("a"), num("1"), Null()},
		{num("2.5"), Bool(false), Text("b"), Text("x"), Null()},
		{Null(), Null(), Null(), num("3"), Null()},
	}
	for _, row := range rows {
		if err := b.AppendRow(row); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	tbl := b.Build()

	tests := []struct {
		col  string
		want Type
	}{
		{"n", TypeNumber},
		{"b", TypeBoolean},
		{"s", TypeText},
		{"mixed", TypeText},
		{"empty", TypeText},
	}
	for _, tt := range tests {
		got, ok := tbl.ColumnType(tt.col)
		if !ok {
			t.Errorf("column %q not found", tt.col)
			continue
		}
		if got != tt.want {
			t.Errorf("column %q: expected type %v, got %v", tt.col, tt.want, got)
		}
	}
}

// ============================================================================
// Accessor Tests
// ============================================================================

func TestTable_Accessors(t *testing.T) {
	b, err := NewBuilder("people", []string{"id", "name"})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.AppendRow([]Value{num("1"), Text("Alice")}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	tbl := b.Build()

	if tbl.Name() != "people" {
		t.Errorf("expected name people, got %q", tbl.Name())
	}
	if tbl.RowCount() != 1 {
		t.Errorf("expected 1 row, got %d", tbl.RowCount())
	}
	if !tbl.HasColumn("id") || tbl.HasColumn("ID") {
		t.Error("column matching should be exact and case-sensitive")
	}

	v, ok := tbl.Cell(0, "name")
	if !ok || v.Text() != "Alice" {
		t.Errorf("expected Alice, got %v (ok=%v)", v, ok)
	}
	if _, ok := tbl.Cell(1, "name"); ok {
		t.Error("out-of-range row should not resolve")
	}
	if _, ok := tbl.Cell(0, "missing"); ok {
		t.Error("unknown column should not resolve")
	}
}

func TestTable_ColumnsReturnsCopy(t *testing.T) {
	b, err := NewBuilder("t", []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	tbl := b.Build()

	cols := tbl.Columns()
	cols[0] = "mutated"
	if got := tbl.Columns()[0]; got != "a" {
		t.Errorf("table columns mutated through accessor copy: got %q", got)
	}
}

func TestTable_RowReturnsCopy(t *testing.T) {
	b, err := NewBuilder("t", []string{"a"})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := b.AppendRow([]Value{Text("orig")}); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	tbl := b.Build()

	row := tbl.Row(0)
	row[0] = Text("mutated")
	if v, _ := tbl.Cell(0, "a"); v.Text() != "orig" {
		t.Errorf("table row mutated through accessor copy: got %q", v.Text())
	}
}
