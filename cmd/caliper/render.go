package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/caliper-org/caliper/schema"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// TABLE RENDERING — aligned text and CSV views of listings and reports
// ============================================================================

type column struct {
	Label string
	Align string // "left" or "right"
}

type table struct {
	Title   string
	Columns []column
	Rows    [][]string
}

// writeText prints the table with space-padded columns.
func (t *table) writeText(w *os.File) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c.Label)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}
	header := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = pad(c.Label, widths[i], c.Align)
		rule[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(header, "  "))
	fmt.Fprintln(w, strings.Join(rule, "  "))

	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i], t.Columns[i].Align)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// writeCSV emits the same table as plain CSV.
func (t *table) writeCSV(w *os.File) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	cw.Write(header)
	for _, row := range t.Rows {
		cw.Write(row)
	}
}

func pad(s string, width int, align string) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}
	fill := strings.Repeat(" ", gap)
	if align == "right" {
		return fill + s
	}
	return s + fill
}

// ============================================================================
// LISTING BUILDERS
// ============================================================================

// dimsTable lists every registered dimension with its base unit.
func dimsTable(reg *units.Registry) *table {
	rows := make([][]string, 0)
	for _, dim := range reg.Dimensions() {
		base := ""
		if u, err := reg.BaseOf(dim); err == nil {
			base = u.Symbol
		}
		symbols := reg.UnitsIn(dim)
		rows = append(rows, []string{
			dim,
			base,
			fmt.Sprintf("%d", len(symbols)),
			strings.Join(symbols, " "),
		})
	}
	return &table{
		Title: "Registered dimensions",
		Columns: []column{
			{"DIMENSION", "left"},
			{"BASE", "left"},
			{"UNITS", "right"},
			{"SYMBOLS", "left"},
		},
		Rows: rows,
	}
}

// unitsTable lists the units of one dimension.
func unitsTable(reg *units.Registry, dim string) (*table, error) {
	symbols := reg.UnitsIn(dim)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no dimension %q in the registry", dim)
	}

	rows := make([][]string, 0, len(symbols))
	for _, sym := range symbols {
		u, err := reg.Resolve(sym, dim)
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			u.Symbol,
			strings.Join(u.Aliases, ", "),
			describeTransform(u),
			describeNotes(u),
		})
	}
	return &table{
		Title: fmt.Sprintf("Units of %s", dim),
		Columns: []column{
			{"UNIT", "left"},
			{"ALIASES", "left"},
			{"TO BASE", "left"},
			{"NOTES", "left"},
		},
		Rows: rows,
	}, nil
}

// describeTransform renders the unit's path to the base unit.
func describeTransform(u *units.Unit) string {
	switch {
	case u.Scale != nil || u.Shift != nil:
		return "contextual"
	case u.Derive != nil:
		mul := strings.Join(u.Derive.Mul, " * ")
		if mul == "" {
			mul = "1"
		}
		if len(u.Derive.Div) > 0 {
			return fmt.Sprintf("derived %s / %s", mul, strings.Join(u.Derive.Div, " / "))
		}
		return "derived " + mul
	case u.Offset != 0:
		return fmt.Sprintf("(v + %g) * %g", u.Offset, u.Multiplier)
	default:
		return fmt.Sprintf("* %g", u.Multiplier)
	}
}

func describeNotes(u *units.Unit) string {
	notes := make([]string, 0, 2)
	if u.Shared {
		notes = append(notes, "shared alias")
	}
	if b := u.EffectiveBound(); b != nil {
		if b.Msg != "" {
			notes = append(notes, b.Msg)
		} else {
			notes = append(notes, fmt.Sprintf("bound [%g, %g]", b.Min, b.Max))
		}
	}
	return strings.Join(notes, "; ")
}

// ============================================================================
// REPORT VIEW
// ============================================================================

// maxIssueLines caps how many failing cells print per field in text mode.
const maxIssueLines = 5

// reportTable summarizes a normalization run field by field.
func reportTable(rep *schema.Report) *table {
	rows := make([][]string, 0, len(rep.Fields))
	for _, fr := range rep.Fields {
		issues := 0
		for state, n := range fr.Counts {
			if state != schema.StateOk {
				issues += n
			}
		}
		stats := ""
		if fr.Counts[schema.StateOk] > 0 {
			stats = fmt.Sprintf("%.4g [%.4g, %.4g]", fr.Mean, fr.Min, fr.Max)
		}
		rows = append(rows, []string{
			fr.Field,
			fr.Unit,
			fr.Dimension,
			fmt.Sprintf("%d", fr.Counts[schema.StateOk]),
			fmt.Sprintf("%d", issues),
			stats,
		})
	}
	return &table{
		Title: fmt.Sprintf("Run %s: %d rows in %s", rep.RunID, rep.Rows, rep.Duration),
		Columns: []column{
			{"FIELD", "left"},
			{"UNIT", "left"},
			{"DIMENSION", "left"},
			{"OK", "right"},
			{"ISSUES", "right"},
			{"MEAN [MIN, MAX]", "left"},
		},
		Rows: rows,
	}
}

// writeReportText prints the report table plus a capped issue list.
func writeReportText(w *os.File, rep *schema.Report) {
	reportTable(rep).writeText(w)
	for _, fr := range rep.Fields {
		if len(fr.Issues) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", fr.Field)
		shown := fr.Issues
		if len(shown) > maxIssueLines {
			shown = shown[:maxIssueLines]
		}
		for _, is := range shown {
			fmt.Fprintf(w, "  %s\n", is)
		}
		if rest := len(fr.Issues) - len(shown); rest > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", rest)
		}
	}
}
