// Package schema normalizes tabular quantity data. A Schema declares which
// columns hold physical quantities and the unit each should land in; Normalize
// parses, converts, bounds, and rounds whole columns at a time, classifying
// every cell it cannot deliver.
//
// Conversion is vectorized. Cells are grouped by their source unit alias, and
// each group moves through the affine transform in bulk slice passes rather
// than cell by cell, so a column with a handful of distinct units costs a
// handful of passes regardless of row count.
package schema

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/caliper-org/caliper/parse"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// OPTIONS
// ============================================================================

// Option configures a normalization run.
type Option func(*config)

type config struct {
	registry     *units.Registry
	logger       *zap.Logger
	keepUnmapped bool
	dropRaw      bool
}

// WithRegistry swaps the unit registry. Defaults to the shared catalog.
func WithRegistry(r *units.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithLogger attaches a logger for per-field progress.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithKeepUnmapped(true) carries every column the schema does not mention
// into the output. By default only field outputs and the schema's keep
// list survive.
func WithKeepUnmapped(keep bool) Option {
	return func(c *config) { c.keepUnmapped = keep }
}

// WithDropRaw(false) retains each field's raw source column next to its
// output; a source sharing the field's name is kept under name + "_raw".
// Fields with an explicit drop_raw override the run default.
func WithDropRaw(drop bool) Option {
	return func(c *config) { c.dropRaw = drop }
}

func applyOptions(opts []Option) *config {
	cfg := &config{registry: units.Default(), logger: zap.NewNop(), dropRaw: true}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = units.Default()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// ============================================================================
// NORMALIZE
// ============================================================================

// Normalize runs the schema over a frame and returns the normalized frame
// plus a run report. The input frame is never mutated.
//
// Fields with on_error "coerce" turn failing cells into NaN; fields with
// "raise" contribute a NormalizationError carrying every failing cell, and
// all raising fields are still scanned so one combined error reports them
// all. Configuration problems (unknown target unit, missing source column,
// a formula without its context key) abort immediately regardless of the
// on_error policy.
func (s *Schema) Normalize(in *Frame, opts ...Option) (*Frame, *Report, error) {
	if in == nil {
		return nil, nil, fmt.Errorf("schema: nil frame")
	}
	if s == nil {
		return nil, nil, fmt.Errorf("schema: nil schema")
	}
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	cfg := applyOptions(opts)
	started := time.Now()

	f := in.Clone()
	if s.Pre != nil {
		var err error
		if f, err = s.Pre(f); err != nil {
			return nil, nil, fmt.Errorf("schema: pre hook: %w", err)
		}
	}

	report := newReport(s.Name, f.Rows())
	outputs := make(map[string][]float64, len(s.Fields))
	var raised error
	for i := range s.Fields {
		fld := &s.Fields[i]
		vals, fr, err := normalizeField(f, fld, cfg)
		if err != nil {
			var nerr *NormalizationError
			if !errors.As(err, &nerr) {
				return nil, nil, err
			}
			raised = multierr.Append(raised, err)
		}
		if fr != nil {
			report.Fields = append(report.Fields, *fr)
			cfg.logger.Debug("field normalized",
				zap.String("field", fld.Name),
				zap.String("unit", fld.Unit),
				zap.Int("ok", fr.Counts[StateOk]),
				zap.Int("failed", len(fr.Issues)))
		}
		outputs[fld.Name] = vals
	}
	report.Duration = time.Since(started)
	if raised != nil {
		return nil, report, raised
	}

	out, err := assemble(f, s, cfg, outputs)
	if err != nil {
		return nil, nil, err
	}
	if s.Post != nil {
		if out, err = s.Post(out); err != nil {
			return nil, nil, fmt.Errorf("schema: post hook: %w", err)
		}
	}
	cfg.logger.Info("frame normalized",
		zap.String("run", report.RunID),
		zap.Int("rows", report.Rows),
		zap.Int("fields", len(report.Fields)),
		zap.Duration("took", report.Duration))
	return out, report, nil
}

// assemble builds the output frame: field outputs in schema order, each
// followed by its raw source when kept, then the keep list and any
// unmapped columns in their original order.
func assemble(f *Frame, s *Schema, cfg *config, outputs map[string][]float64) (*Frame, error) {
	out := NewFrame()
	consumed := make(map[string]bool)
	for i := range s.Fields {
		fld := &s.Fields[i]
		if err := out.SetFloats(fld.Name, outputs[fld.Name]); err != nil {
			return nil, err
		}
		src := fld.sourceColumn()
		consumed[src] = true
		if fld.UnitCol != "" {
			consumed[fld.UnitCol] = true
		}
		if !fld.dropsRaw(cfg.dropRaw) && !out.Has(src) {
			name := src
			if name == fld.Name {
				name += "_raw"
			}
			if err := copyColumn(out, f, src, name); err != nil {
				return nil, err
			}
		}
	}
	for _, name := range s.Keep {
		if out.Has(name) {
			continue
		}
		if !f.Has(name) {
			return nil, fmt.Errorf("schema: keep column %q not in frame", name)
		}
		if err := copyColumn(out, f, name, name); err != nil {
			return nil, err
		}
	}
	if cfg.keepUnmapped {
		for _, name := range f.Columns() {
			if out.Has(name) || consumed[name] {
				continue
			}
			if err := copyColumn(out, f, name, name); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func copyColumn(dst, src *Frame, from, to string) error {
	if vals, ok := src.Floats(from); ok {
		return dst.SetFloats(to, vals)
	}
	if vals, ok := src.Text(from); ok {
		return dst.SetText(to, vals)
	}
	return fmt.Errorf("schema: no column %q", from)
}

// ============================================================================
// PER-FIELD PIPELINE
// ============================================================================

// fieldRun accumulates the per-row working state of one field.
type fieldRun struct {
	states   []CellState
	details  []string
	expects  []string // overrides the default expected-dimension text
	suggests []string
	vals     []float64
	groups   map[string][]int  // folded alias -> rows awaiting conversion
	labels   map[string]string // folded alias -> alias as first written
}

func newFieldRun(n int) *fieldRun {
	r := &fieldRun{
		states:   make([]CellState, n),
		details:  make([]string, n),
		expects:  make([]string, n),
		suggests: make([]string, n),
		vals:     make([]float64, n),
		groups:   make(map[string][]int),
		labels:   make(map[string]string),
	}
	for i := range r.vals {
		r.vals[i] = math.NaN()
	}
	return r
}

func (r *fieldRun) group(alias string, row int, mag float64) {
	folded := units.Fold(alias)
	if _, seen := r.groups[folded]; !seen {
		r.labels[folded] = strings.TrimSpace(alias)
	}
	r.groups[folded] = append(r.groups[folded], row)
	r.vals[row] = mag
}

func (r *fieldRun) fail(row int, state CellState, detail string) {
	r.states[row] = state
	r.details[row] = detail
	r.vals[row] = math.NaN()
}

// normalizeField delivers one output column. The returned error is a
// *NormalizationError for failing cells under on_error "raise", or a plain
// error for configuration problems.
func normalizeField(f *Frame, fld *Field, cfg *config) ([]float64, *FieldReport, error) {
	src := fld.sourceColumn()
	if !f.Has(src) {
		return nil, nil, fmt.Errorf("schema: field %q: source column %q not in frame", fld.Name, src)
	}
	reg := cfg.registry
	ctx := units.Context(fld.Context)

	tgt, err := resolveDeclared(reg, fld.Unit, fld.Dimension)
	if err != nil {
		return nil, nil, fmt.Errorf("schema: field %q: target unit: %w", fld.Name, err)
	}
	tgtMult, tgtOff, err := tgt.Effective(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("schema: field %q: %w", fld.Name, err)
	}
	if !usableMultiplier(tgtMult) {
		return nil, nil, fmt.Errorf("schema: field %q: target unit %q has unusable multiplier %v", fld.Name, tgt.Symbol, tgtMult)
	}

	run := newFieldRun(f.Rows())
	if err := classify(f, fld, run); err != nil {
		return nil, nil, fmt.Errorf("schema: field %q: %w", fld.Name, err)
	}
	if err := convertGroups(run, fld, cfg, tgt, ctx, tgtMult, tgtOff); err != nil {
		return nil, nil, fmt.Errorf("schema: field %q: %w", fld.Name, err)
	}
	applyFieldBound(run, fld, tgt)
	applyRound(run, fld)

	issues := collectIssues(f, src, run, tgt.Dim().Name)
	fr := buildFieldReport(fld, tgt, run, issues)
	if fld.raises() && len(issues) > 0 {
		return run.vals, fr, &NormalizationError{Field: fld.Name, Issues: issues}
	}
	return run.vals, fr, nil
}

func resolveDeclared(reg *units.Registry, alias, dimension string) (*units.Unit, error) {
	if dimension != "" {
		return reg.Resolve(alias, dimension)
	}
	return reg.Resolve(alias)
}

func usableMultiplier(m float64) bool {
	return m != 0 && !math.IsNaN(m) && !math.IsInf(m, 0)
}

// classify walks the source column once and sorts every row into a unit
// group, a missing, or a failure. Four shapes of input are recognized:
// a per-row unit column, parse_string text with embedded units, bare
// numerics, and bare-number text, the last two taken in the field's
// source unit.
func classify(f *Frame, fld *Field, run *fieldRun) error {
	src := fld.sourceColumn()
	switch {
	case fld.UnitCol != "":
		unitCells := f.textRef(fld.UnitCol)
		if unitCells == nil {
			return fmt.Errorf("unit column %q is not a text column in the frame", fld.UnitCol)
		}
		classifyUnitCol(f, fld, run, unitCells)
	case f.IsNumeric(src):
		classifyNumeric(f.floatsRef(src), fld, run)
	case fld.ParseString:
		classifySplit(f.textRef(src), fld, run)
	default:
		classifyBareText(f.textRef(src), fld, run)
	}
	return nil
}

// classifySplit handles parse_string fields: each text cell carries its own
// number and unit.
func classifySplit(cells []string, fld *Field, run *fieldRun) {
	for i, cell := range cells {
		if parse.Missing(cell) {
			run.fail(i, StateMissing, "")
			continue
		}
		if c, ok := parse.Split(cell); ok {
			if math.IsNaN(c.Number) {
				run.fail(i, StateMissing, "")
				continue
			}
			run.group(c.Alias, i, c.Number)
			continue
		}
		if num, ok := parse.Number(cell); ok {
			if math.IsNaN(num) {
				run.fail(i, StateMissing, "")
				continue
			}
			if fld.SourceUnit == "" {
				run.fail(i, StateUnparseable, "bare number without a unit")
				continue
			}
			run.group(fld.SourceUnit, i, num)
			continue
		}
		run.fail(i, StateUnparseable, "no number and unit recognized")
	}
}

// classifyBareText reads text cells as plain numbers in the field's source
// unit (or the target unit when none is declared).
func classifyBareText(cells []string, fld *Field, run *fieldRun) {
	alias := fld.SourceUnit
	if alias == "" {
		alias = fld.Unit
	}
	for i, cell := range cells {
		if parse.Missing(cell) {
			run.fail(i, StateMissing, "")
			continue
		}
		num, ok := parse.Number(cell)
		if !ok {
			run.fail(i, StateUnparseable, "not a number")
			continue
		}
		if math.IsNaN(num) {
			run.fail(i, StateMissing, "")
			continue
		}
		run.group(alias, i, num)
	}
}

func classifyUnitCol(f *Frame, fld *Field, run *fieldRun, unitCells []string) {
	src := fld.sourceColumn()
	mags := f.floatsRef(src)
	texts := f.textRef(src)
	for i := range unitCells {
		var mag float64
		switch {
		case mags != nil:
			mag = mags[i]
			if math.IsNaN(mag) {
				run.fail(i, StateMissing, "")
				continue
			}
		default:
			cell := texts[i]
			if parse.Missing(cell) {
				run.fail(i, StateMissing, "")
				continue
			}
			num, ok := parse.Number(cell)
			if !ok {
				run.fail(i, StateUnparseable, "not a number")
				continue
			}
			if math.IsNaN(num) {
				run.fail(i, StateMissing, "")
				continue
			}
			mag = num
		}
		alias := strings.TrimSpace(unitCells[i])
		if alias == "" {
			alias = fld.SourceUnit
		}
		if alias == "" {
			run.fail(i, StateUnparseable, fmt.Sprintf("no unit in column %q for this row", fld.UnitCol))
			continue
		}
		run.group(alias, i, mag)
	}
}

func classifyNumeric(mags []float64, fld *Field, run *fieldRun) {
	// Without a source unit the numbers are taken to be in the target
	// unit already; bounds and rounding still apply.
	alias := fld.SourceUnit
	if alias == "" {
		alias = fld.Unit
	}
	for i, mag := range mags {
		if math.IsNaN(mag) {
			run.fail(i, StateMissing, "")
			continue
		}
		run.group(alias, i, mag)
	}
}

// convertGroups moves each alias group to base units in bulk, checks the
// catalog bound on the base values, and lands them in the target unit.
func convertGroups(run *fieldRun, fld *Field, cfg *config, tgt *units.Unit, ctx units.Context, tgtMult, tgtOff float64) error {
	var scratch []float64
	for folded, rows := range run.groups {
		display := run.labels[folded]
		u, rerr := resolveDeclared(cfg.registry, display, fld.Dimension)
		if rerr != nil {
			state, detail, suggestion := classifyResolveErr(rerr, cfg.registry, tgt)
			for _, i := range rows {
				run.fail(i, state, detail)
				run.suggests[i] = suggestion
			}
			continue
		}
		if u.Dim().Name != tgt.Dim().Name {
			detail := fmt.Sprintf("unit %q is %s, field wants %s", display, u.Dim().Name, tgt.Dim().Name)
			for _, i := range rows {
				run.fail(i, StateWrongDimension, detail)
			}
			continue
		}
		srcMult, srcOff, err := u.Effective(ctx)
		if err != nil {
			return err
		}
		if !usableMultiplier(srcMult) {
			return fmt.Errorf("unit %q has unusable multiplier %v", u.Symbol, srcMult)
		}

		if cap(scratch) < len(rows) {
			scratch = make([]float64, len(rows))
		}
		buf := scratch[:len(rows)]
		for k, i := range rows {
			buf[k] = run.vals[i]
		}
		floats.AddConst(srcOff, buf)
		floats.Scale(srcMult, buf)

		baseSym := tgt.Dim().Base
		srcBound := u.EffectiveBound()
		markOutside(run, rows, buf, srcBound, baseSym)
		if b := tgt.EffectiveBound(); b != nil && b != srcBound {
			markOutside(run, rows, buf, b, baseSym)
		}

		floats.Scale(1/tgtMult, buf)
		floats.AddConst(-tgtOff, buf)
		for k, i := range rows {
			if run.states[i] == StateOk {
				run.vals[i] = buf[k]
			}
		}
	}
	return nil
}

// markOutside flags rows whose base value escapes a bound. NaN never
// trips a bound.
func markOutside(run *fieldRun, rows []int, base []float64, b *units.Bound, baseSym string) {
	if b == nil {
		return
	}
	for k, i := range rows {
		if run.states[i] != StateOk {
			continue
		}
		if v := base[k]; v < b.Min || v > b.Max {
			detail := b.Msg
			if detail == "" {
				detail = fmt.Sprintf("base value %g outside %s", v, boundRange(b.Min, b.Max))
			}
			run.fail(i, StateOutOfBound, detail)
			run.expects[i] = fmt.Sprintf("%s %s", boundRange(b.Min, b.Max), baseSym)
		}
	}
}

func classifyResolveErr(err error, reg *units.Registry, tgt *units.Unit) (CellState, string, string) {
	var notFound *units.UnitNotFoundError
	if errors.As(err, &notFound) {
		return StateUnparseable,
			fmt.Sprintf("unknown unit %q", notFound.Alias),
			suggestUnit(reg, notFound.Alias, tgt.Dim().Name)
	}
	var ambiguous *units.AmbiguousUnitError
	if errors.As(err, &ambiguous) {
		return StateAmbiguous,
			fmt.Sprintf("unit %q matches dimensions %s, declare one on the field",
				ambiguous.Alias, strings.Join(ambiguous.Dimensions, ", ")),
			""
	}
	var mismatch *units.DimensionMismatchError
	if errors.As(err, &mismatch) {
		return StateWrongDimension,
			fmt.Sprintf("field wants %s, unit belongs to %s", mismatch.Left, mismatch.Right),
			""
	}
	return StateUnparseable, err.Error(), ""
}

// applyFieldBound enforces the field's min/max, expressed in target units.
func applyFieldBound(run *fieldRun, fld *Field, tgt *units.Unit) {
	if fld.Min == nil && fld.Max == nil {
		return
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	if fld.Min != nil {
		lo = *fld.Min
	}
	if fld.Max != nil {
		hi = *fld.Max
	}
	for i, v := range run.vals {
		if run.states[i] != StateOk {
			continue
		}
		if v < lo || v > hi {
			run.fail(i, StateOutOfBound,
				fmt.Sprintf("value %g %s outside %s", v, tgt.Symbol, boundRange(lo, hi)))
			run.expects[i] = fmt.Sprintf("%s %s", boundRange(lo, hi), tgt.Symbol)
		}
	}
}

// applyRound trims decimals after the bound checks, so a value is judged
// before it is prettied.
func applyRound(run *fieldRun, fld *Field) {
	if fld.Round == nil {
		return
	}
	pow := math.Pow(10, float64(*fld.Round))
	for i, v := range run.vals {
		if run.states[i] != StateOk || math.IsNaN(v) {
			continue
		}
		run.vals[i] = math.Round(v*pow) / pow
	}
}

func boundRange(lo, hi float64) string {
	return fmt.Sprintf("[%s, %s]", boundEdge(lo), boundEdge(hi))
}

func boundEdge(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsInf(v, 1):
		return "+inf"
	default:
		return fmt.Sprintf("%g", v)
	}
}

// collectIssues reports every non-ok row in row order, missing cells
// included. The expected text defaults to the field's dimension unless a
// bound check recorded something sharper.
func collectIssues(f *Frame, src string, run *fieldRun, expected string) []Issue {
	var issues []Issue
	texts := f.textRef(src)
	mags := f.floatsRef(src)
	for i, st := range run.states {
		if st == StateOk {
			continue
		}
		raw := ""
		switch {
		case texts != nil:
			raw = texts[i]
		case mags != nil && !math.IsNaN(mags[i]):
			raw = fmt.Sprintf("%g", mags[i])
		}
		exp := run.expects[i]
		if exp == "" {
			exp = expected
		}
		issues = append(issues, Issue{
			Row:        i,
			Kind:       st,
			Expected:   exp,
			Raw:        raw,
			Detail:     run.details[i],
			Suggestion: run.suggests[i],
		})
	}
	return issues
}
