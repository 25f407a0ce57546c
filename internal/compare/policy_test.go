package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/csvcompare/csvcompare/internal/table"
)

func num(s string) table.Value {
	return table.Number(decimal.RequireFromString(s))
}

// ============================================================================
// Strict Policy Tests
// ============================================================================

func TestPolicy_Strict(t *testing.T) {
	var p Policy // zero value is strict

	tests := []struct {
		name string
		a, b table.Value
		want bool
	}{
		{"null equals null", table.Null(), table.Null(), true},
		{"null vs text", table.Null(), table.Text(""), false},
		{"null vs number", table.Null(), num("0"), false},
		{"numbers by value", num("1"), num("1.0"), true},
		{"numbers differ", num("1"), num("1.01"), false},
		{"text exact", table.Text("Bob"), table.Text("Bob"), true},
		{"text case matters", table.Text("Bob"), table.Text("bob"), false},
		{"whitespace matters", table.Text("a"), table.Text("a "), false},
		{"bools", table.Bool(true), table.Bool(true), true},
		{"bools differ", table.Bool(true), table.Bool(false), false},
		{"text vs number never coerced", table.Text("1"), num("1"), false},
		{"text vs bool", table.Text("true"), table.Bool(true), false},
	}
	for _, tt := range tests {
		if got := p.Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

// ============================================================================
// Policy Flag Tests
// ============================================================================

func TestPolicy_CaseInsensitive(t *testing.T) {
	p := Policy{CaseInsensitive: true}
	if !p.Equal(table.Text("Bob"), table.Text("bob")) {
		t.Error("expected case-insensitive text equality")
	}
	if p.Equal(table.Text("Bob"), table.Text("Bobby")) {
		t.Error("different content must still differ")
	}
}

func TestPolicy_TrimSpace(t *testing.T) {
	p := Policy{TrimSpace: true}
	if !p.Equal(table.Text(" a "), table.Text("a")) {
		t.Error("expected trimmed text equality")
	}
	if p.Equal(table.Text("a b"), table.Text("ab")) {
		t.Error("interior whitespace must still differ")
	}
}

func TestPolicy_CoerceNumericText(t *testing.T) {
	p := Policy{CoerceNumericText: true}
	if !p.Equal(table.Text("1"), num("1")) {
		t.Error("expected numeric text to equal number under coercion")
	}
	if !p.Equal(table.Text("1.0"), table.Text("1")) {
		t.Error("expected two numeric texts to compare by value under coercion")
	}
	if p.Equal(table.Text("x"), num("1")) {
		t.Error("non-numeric text must not coerce")
	}
}

func TestPolicy_TrimBeforeCoerce(t *testing.T) {
	p := Policy{TrimSpace: true, CoerceNumericText: true}
	if !p.Equal(table.Text(" 1 "), num("1")) {
		t.Error("expected trim to apply before numeric coercion")
	}
}

// ============================================================================
// Policy File Tests
// ============================================================================

func TestLoadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "case_insensitive: true\ntrim_space: false\ncoerce_numeric_text: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if !p.CaseInsensitive || p.TrimSpace || !p.CoerceNumericText {
		t.Errorf("unexpected policy: %+v", p)
	}
}

func TestLoadPolicy_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("case_insensitve: true\n"), 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}
	if _, err := LoadPolicy(path); err == nil {
		t.Error("expected misspelled field to be rejected")
	}
}

func TestLoadPolicy_MissingFile(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
