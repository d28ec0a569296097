package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// CELL STATES AND FIELD ERRORS
// ============================================================================

// CellState classifies the outcome of normalizing one cell.
type CellState int

const (
	// StateOk is a cell that parsed, resolved, and converted cleanly.
	StateOk CellState = iota
	// StateMissing is an empty cell or a recognized missing sentinel.
	StateMissing
	// StateUnparseable is a cell whose text yields no number/unit split,
	// or whose unit alias is unknown to the registry.
	StateUnparseable
	// StateAmbiguous is a unit alias that resolves in several dimensions
	// and the field declares none to pick by.
	StateAmbiguous
	// StateWrongDimension is a recognized unit from a dimension other
	// than the field's.
	StateWrongDimension
	// StateOutOfBound is a converted value outside the field's min/max.
	StateOutOfBound
)

func (s CellState) String() string {
	switch s {
	case StateOk:
		return "ok"
	case StateMissing:
		return "missing"
	case StateUnparseable:
		return "unparseable"
	case StateAmbiguous:
		return "ambiguous_unit"
	case StateWrongDimension:
		return "wrong_dimension"
	case StateOutOfBound:
		return "out_of_bound"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders states by name, so JSON reports read as
// {"ok": 3, "out_of_bound": 1} instead of numeric codes.
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue records one failing cell: where it was, how it failed, what the
// field wanted, and the raw text that caused it. Suggestion carries a
// near-miss unit name when one exists.
type Issue struct {
	Row        int       `json:"row"`
	Kind       CellState `json:"kind"`
	Expected   string    `json:"expected,omitempty"` // dimension, unit, or bound the field wanted
	Raw        string    `json:"raw,omitempty"`
	Detail     string    `json:"detail,omitempty"` // what actually went wrong
	Suggestion string    `json:"suggestion,omitempty"`
}

func (i Issue) String() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "row %d: %s", i.Row, i.Kind)
	if i.Raw != "" {
		fmt.Fprintf(b, " (%q)", i.Raw)
	}
	if i.Detail != "" {
		fmt.Fprintf(b, ": %s", i.Detail)
	}
	if i.Expected != "" {
		fmt.Fprintf(b, " (expected %s)", i.Expected)
	}
	if i.Suggestion != "" {
		fmt.Fprintf(b, ", did you mean %q?", i.Suggestion)
	}
	return b.String()
}

// maxIssuesShown caps how many issues a NormalizationError prints; the
// full list stays on the struct.
const maxIssuesShown = 5

// NormalizationError aggregates every failing cell of one field. Under
// on_error "raise" a field with any non-ok cell produces exactly one of
// these, carrying all its issues.
type NormalizationError struct {
	Field  string
	Issues []Issue
}

func (e *NormalizationError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "schema: field %q: %d cell(s) failed", e.Field, len(e.Issues))
	shown := e.Issues
	if len(shown) > maxIssuesShown {
		shown = shown[:maxIssuesShown]
	}
	for _, is := range shown {
		fmt.Fprintf(b, "\n  %s", is)
	}
	if rest := len(e.Issues) - len(shown); rest > 0 {
		fmt.Fprintf(b, "\n  ... and %d more", rest)
	}
	return b.String()
}

// Rows returns the failing row indices in order.
func (e *NormalizationError) Rows() []int {
	out := make([]int, len(e.Issues))
	for i, is := range e.Issues {
		out[i] = is.Row
	}
	return out
}
