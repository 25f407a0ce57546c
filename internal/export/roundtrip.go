package export

// roundtrip.go re-parses an exported mismatch artifact. Embedding
// applications use it to verify an artifact before handing it to a user, and
// the tests use it to prove the export is lossless for the values it carries.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// MismatchRecord is one (row id, column pair, left value, right value) tuple
// recovered from an exported artifact. Column is the pair's left-side name.
type MismatchRecord struct {
	RowID  string
	Column string
	Left   string
	Right  string
}

// ReadMismatches parses an artifact produced by WriteMismatches back into its
// tuples, in file order. A header-only artifact yields zero records.
func ReadMismatches(r io.Reader) ([]MismatchRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("export: artifact has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if len(header) < 3 || (header[0] != "row" && header[0] != "key") {
		return nil, fmt.Errorf("export: unrecognized artifact header")
	}
	if (len(header)-1)%2 != 0 {
		return nil, fmt.Errorf("export: artifact header has unpaired value columns")
	}

	columns := make([]string, 0, (len(header)-1)/2)
	for i := 1; i < len(header); i += 2 {
		name, ok := strings.CutSuffix(header[i], leftSuffix)
		if !ok {
			return nil, fmt.Errorf("export: column %q is not a %s column", header[i], leftSuffix)
		}
		if !strings.HasSuffix(header[i+1], rightSuffix) {
			return nil, fmt.Errorf("export: column %q is not a %s column", header[i+1], rightSuffix)
		}
		columns = append(columns, name)
	}

	var records []MismatchRecord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		for i, col := range columns {
			records = append(records, MismatchRecord{
				RowID:  rec[0],
				Column: col,
				Left:   rec[1+2*i],
				Right:  rec[2+2*i],
			})
		}
	}
	return records, nil
}
