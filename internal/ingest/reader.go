// Package ingest materializes CSV input into immutable tables.
//
// ReadTable is the single entry point: it parses a header row plus data rows,
// infers one type per column, and resolves every cell to a typed value. Cell
// typing follows dataframe-style loading: a column is numeric only when every
// non-empty cell parses as a number, boolean only when every non-empty cell is
// a true/false literal, and text otherwise. Empty cells become null regardless
// of column type, and data rows shorter than the header are padded with nulls
// rather than dropped.
//
// The whole input is materialized before the table is returned; the comparator
// downstream assumes complete, random-accessible row collections.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/csvcompare/csvcompare/internal/table"
)

// DefaultMaxBytes caps CSV input size when Options.MaxBytes is zero (100MB).
const DefaultMaxBytes int64 = 100 * 1024 * 1024

// Options controls CSV parsing.
type Options struct {
	// MaxBytes is the maximum input size in bytes (default: DefaultMaxBytes).
	MaxBytes int64

	// Comma is the field delimiter (default: ',').
	Comma rune
}

// ReadTable parses CSV from r into an immutable Table named after the source.
//
// The first record is the header; header names are whitespace-trimmed and must
// be unique and non-empty. Data rows with more fields than the header are a
// parse error, shorter rows are padded with nulls.
func ReadTable(name string, r io.Reader, opts Options) (*table.Table, error) {
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}

	cr := csv.NewReader(wrapReader(r, maxBytes))
	cr.FieldsPerRecord = -1 // ragged rows are handled below
	cr.ReuseRecord = false
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table %q: empty input, no header row", name)
	}
	if err != nil {
		return nil, readErr(name, err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	var raw [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readErr(name, err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("table %q: row %d has %d fields, header has %d",
				name, len(raw)+1, len(record), len(header))
		}
		if len(record) < len(header) {
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		raw = append(raw, record)
	}

	builder, err := table.NewBuilder(name, header)
	if err != nil {
		return nil, err
	}

	types := inferColumnTypes(len(header), raw)
	cells := make([]table.Value, len(header))
	for _, record := range raw {
		for i, field := range record {
			cells[i] = toValue(field, types[i])
		}
		if err := builder.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return builder.Build(), nil
}

func readErr(name string, err error) error {
	if errors.Is(err, errTooLarge) {
		return fmt.Errorf("table %q: %w", name, errTooLarge)
	}
	return fmt.Errorf("table %q: invalid csv: %w", name, err)
}

// inferColumnTypes scans the raw cells of each column and picks the narrowest
// type that fits every non-empty cell.
func inferColumnTypes(columns int, rows [][]string) []table.Type {
	types := make([]table.Type, columns)
	for c := 0; c < columns; c++ {
		allNumber, allBool := true, true
		seen := false
		for _, row := range rows {
			field := row[c]
			if field == "" {
				continue
			}
			seen = true
			if allNumber {
				if _, ok := table.NumberFromString(field); !ok {
					allNumber = false
				}
			}
			if allBool {
				if _, ok := table.ParseBool(field); !ok {
					allBool = false
				}
			}
			if !allNumber && !allBool {
				break
			}
		}
		switch {
		case seen && allNumber:
			types[c] = table.TypeNumber
		case seen && allBool:
			types[c] = table.TypeBoolean
		default:
			types[c] = table.TypeText
		}
	}
	return types
}

// toValue resolves one raw cell against its column type. The type was inferred
// from the same data, so the conversions cannot fail for non-empty cells.
func toValue(field string, typ table.Type) table.Value {
	if field == "" {
		return table.Null()
	}
	switch typ {
	case table.TypeNumber:
		if v, ok := table.NumberFromString(field); ok {
			return v
		}
	case table.TypeBoolean:
		if b, ok := table.ParseBool(field); ok {
			return table.Bool(b)
		}
	}
	return table.Text(field)
}
