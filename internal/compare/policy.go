package compare

// policy.go defines the value-equality policy. Every knob defaults to the
// strict behavior: text is case-sensitive, whitespace is significant, and a
// text cell never equals a numeric cell. Loosening any of these is an
// explicit caller decision, globally per comparison, never per column.

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/csvcompare/csvcompare/internal/table"
)

// Policy controls how two cell values are judged equal.
//
// The zero value is the strict default policy.
type Policy struct {
	// CaseInsensitive folds case when comparing text cells.
	CaseInsensitive bool `yaml:"case_insensitive"`

	// TrimSpace strips leading/trailing whitespace from text cells before
	// comparing. Off by default: whitespace differences are real differences.
	TrimSpace bool `yaml:"trim_space"`

	// CoerceNumericText treats a text cell whose content parses as a number
	// as numeric, so "1" equals 1. Off by default.
	CoerceNumericText bool `yaml:"coerce_numeric_text"`
}

// LoadPolicy reads a policy from a YAML file. Unknown fields are rejected so
// a typo cannot silently fall back to strict behavior.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("policy: %w", err)
	}
	var p Policy
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

// Equal reports whether two cell values are equal under the policy.
//
// Null equals only null. Numbers compare by value, not representation. Cells
// of different kinds are unequal (a mismatch verdict upstream, never an
// error) unless CoerceNumericText bridges text and number.
func (p Policy) Equal(a, b table.Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}

	a = p.normalize(a)
	b = p.normalize(b)

	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case table.KindNumber:
		return a.Decimal().Equal(b.Decimal())
	case table.KindBoolean:
		return a.Bool() == b.Bool()
	default:
		if p.CaseInsensitive {
			return strings.EqualFold(a.Text(), b.Text())
		}
		return a.Text() == b.Text()
	}
}

// normalize applies the text transforms the policy allows. Non-text values
// pass through untouched.
func (p Policy) normalize(v table.Value) table.Value {
	if v.Kind() != table.KindText {
		return v
	}
	s := v.Text()
	if p.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if p.CoerceNumericText {
		if n, ok := table.NumberFromString(s); ok {
			return n
		}
	}
	if s != v.Text() {
		return table.Text(s)
	}
	return v
}
