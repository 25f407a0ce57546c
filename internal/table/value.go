package table

// value.go defines the tagged variant used for every cell in a Table.
//
// CSV cells are dynamically typed at the source; resolving each cell to one of
// {Null, Boolean, Number, Text} once, at parse time, lets the comparator switch
// on variant pairs instead of re-guessing types on every comparison. Numbers
// are arbitrary-precision decimals so equality is decided by value, never by
// textual representation ("1" parsed as a number equals "1.0").

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindText
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a single typed cell. The zero value is Null.
//
// Values are small and immutable; they are passed and stored by value.
type Value struct {
	kind Kind
	num  decimal.Decimal
	text string
	b    bool
}

// Null returns the null cell value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean cell value.
func Bool(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// Number returns a numeric cell value.
func Number(d decimal.Decimal) Value {
	return Value{kind: KindNumber, num: d}
}

// NumberFromString parses s as a decimal number and returns the numeric cell
// value. The second return is false if s is not a valid number.
func NumberFromString(s string) (Value, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, false
	}
	return Number(d), true
}

// Text returns a text cell value. Content is preserved exactly: no trimming,
// no case folding.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Kind returns the variant this value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean payload. Only meaningful when Kind is KindBoolean.
func (v Value) Bool() bool {
	return v.b
}

// Decimal returns the numeric payload. Only meaningful when Kind is KindNumber.
func (v Value) Decimal() decimal.Decimal {
	return v.num
}

// Text returns the text payload. Only meaningful when Kind is KindText.
func (v Value) Text() string {
	return v.text
}

// String renders the value the way the exporter serializes it: empty string
// for null, "true"/"false" for booleans, the canonical decimal form for
// numbers, and the exact content for text.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.num.String()
	default:
		return v.text
	}
}

// ParseBool interprets s as a boolean literal ("true"/"false", any case).
// It is intentionally stricter than the yes/no/1/0 forms some importers
// accept: those are ambiguous against numeric columns.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
