package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/caliper-org/caliper/parse"
	"github.com/caliper-org/caliper/schema"
)

// ============================================================================
// CSV HELPER — CSV bytes in, schema.Frame out, and back
// ============================================================================
// The consumer reads the CSV from wherever it lives (file, S3, Sheets);
// this helper only converts between raw CSV and frames. Columns whose
// non-missing cells all parse as numbers come back float-typed with NaN
// for missing cells, everything else stays text.
// ============================================================================

// ReadFrame parses CSV from a reader into a frame. The first row names the
// columns; malformed rows are silently skipped.
func ReadFrame(r io.Reader) (*schema.Frame, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("helpers: reading CSV headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("helpers: CSV has no columns")
	}

	cols := make([][]string, len(headers))
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		for i := range headers {
			v := ""
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			cols[i] = append(cols[i], v)
		}
	}

	f := schema.NewFrame()
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if nums, ok := asNumbers(cols[i]); ok {
			err = f.SetFloats(name, nums)
		} else {
			err = f.SetText(name, cols[i])
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ParseFrame is ReadFrame over a byte slice.
func ParseFrame(data []byte) (*schema.Frame, error) {
	return ReadFrame(strings.NewReader(string(data)))
}

// asNumbers converts a column to floats when every non-missing cell is a
// plain number. Missing cells become NaN. Columns with no values at all
// stay text.
func asNumbers(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	seen := false
	for i, cell := range cells {
		if parse.Missing(cell) {
			out[i] = schema.NaN
			continue
		}
		n, ok := parse.Number(cell)
		if !ok {
			return nil, false
		}
		out[i] = n
		seen = true
	}
	if !seen {
		return nil, false
	}
	return out, true
}

// WriteFrame renders a frame as CSV. NaN cells write as empty strings, so
// a round trip keeps them missing.
func WriteFrame(w io.Writer, f *schema.Frame) error {
	if f == nil {
		return fmt.Errorf("helpers: nil frame")
	}
	writer := csv.NewWriter(w)
	names := f.Columns()
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("helpers: writing CSV header: %w", err)
	}

	texts := make(map[string][]string, len(names))
	floats := make(map[string][]float64, len(names))
	for _, name := range names {
		if vals, ok := f.Floats(name); ok {
			floats[name] = vals
		} else if vals, ok := f.Text(name); ok {
			texts[name] = vals
		}
	}

	row := make([]string, len(names))
	for i := 0; i < f.Rows(); i++ {
		for j, name := range names {
			if vals, ok := floats[name]; ok {
				row[j] = formatCell(vals[i])
			} else {
				row[j] = texts[name][i]
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("helpers: writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v float64) string {
	if v != v { // NaN
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
