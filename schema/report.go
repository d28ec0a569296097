package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// RUN REPORT
// ============================================================================

// FieldReport summarizes one field of a normalization run.
type FieldReport struct {
	Field     string
	Unit      string
	Dimension string
	Counts    map[CellState]int
	// Mean, Min, and Max are over the delivered cells, in target units.
	// NaN when nothing was delivered.
	Mean float64
	Min  float64
	Max  float64
	// States holds the per-row outcome, aligned with the frame.
	States []CellState
	// Issues lists every failing cell, whatever the on_error policy.
	Issues []Issue
}

// Ok returns the delivered-cell count.
func (fr *FieldReport) Ok() int { return fr.Counts[StateOk] }

// Mask selects the rows that landed in a given state, ready for
// Frame.Filter.
func (fr *FieldReport) Mask(kind CellState) Mask {
	m := NewMask(len(fr.States))
	for i, st := range fr.States {
		m[i] = st == kind
	}
	return m
}

// MarshalJSON renders the NaN statistics as null, since JSON has no NaN.
func (fr *FieldReport) MarshalJSON() ([]byte, error) {
	type out struct {
		Field     string            `json:"field"`
		Unit      string            `json:"unit"`
		Dimension string            `json:"dimension"`
		Counts    map[CellState]int `json:"counts"`
		Mean      *float64          `json:"mean"`
		Min       *float64          `json:"min"`
		Max       *float64          `json:"max"`
		States    []CellState       `json:"states"`
		Issues    []Issue           `json:"issues,omitempty"`
	}
	return json.Marshal(out{
		Field:     fr.Field,
		Unit:      fr.Unit,
		Dimension: fr.Dimension,
		Counts:    fr.Counts,
		Mean:      finiteOrNil(fr.Mean),
		Min:       finiteOrNil(fr.Min),
		Max:       finiteOrNil(fr.Max),
		States:    fr.States,
		Issues:    fr.Issues,
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Report describes one Normalize run.
type Report struct {
	RunID    string        `json:"run_id"`
	Schema   string        `json:"schema"`
	Rows     int           `json:"rows"`
	Fields   []FieldReport `json:"fields"`
	Duration time.Duration `json:"duration"`
}

func newReport(schemaName string, rows int) *Report {
	return &Report{RunID: uuid.NewString(), Schema: schemaName, Rows: rows}
}

// reportStates fixes the order counts print in.
var reportStates = []CellState{
	StateOk, StateMissing, StateUnparseable, StateAmbiguous, StateWrongDimension, StateOutOfBound,
}

// Summary renders the report for logs and terminals.
func (r *Report) Summary() string {
	b := &strings.Builder{}
	name := r.Schema
	if name == "" {
		name = "schema"
	}
	fmt.Fprintf(b, "run %s: %s, %d rows, %d fields in %s", r.RunID, name, r.Rows, len(r.Fields), r.Duration.Round(time.Microsecond))
	for i := range r.Fields {
		fr := &r.Fields[i]
		fmt.Fprintf(b, "\n  %s -> %s", fr.Field, fr.Unit)
		if fr.Dimension != "" {
			fmt.Fprintf(b, " [%s]", fr.Dimension)
		}
		var parts []string
		for _, st := range reportStates {
			if n := fr.Counts[st]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, st))
			}
		}
		fmt.Fprintf(b, ": %s", strings.Join(parts, ", "))
		if !math.IsNaN(fr.Mean) {
			fmt.Fprintf(b, "; mean %.4g, range [%.4g, %.4g]", fr.Mean, fr.Min, fr.Max)
		}
	}
	return b.String()
}

// buildFieldReport computes delivery counts and summary statistics over the
// cells that made it through.
func buildFieldReport(fld *Field, tgt *units.Unit, run *fieldRun, issues []Issue) *FieldReport {
	fr := &FieldReport{
		Field:     fld.Name,
		Unit:      tgt.Symbol,
		Dimension: tgt.Dim().Name,
		Counts:    make(map[CellState]int),
		Mean:      math.NaN(),
		Min:       math.NaN(),
		Max:       math.NaN(),
		States:    append([]CellState(nil), run.states...),
		Issues:    issues,
	}
	ok := make([]float64, 0, len(run.vals))
	for i, st := range run.states {
		fr.Counts[st]++
		if st == StateOk {
			if v := run.vals[i]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				ok = append(ok, v)
			}
		}
	}
	if len(ok) > 0 {
		fr.Mean = stat.Mean(ok, nil)
		fr.Min = floats.Min(ok)
		fr.Max = floats.Max(ok)
	}
	return fr
}
