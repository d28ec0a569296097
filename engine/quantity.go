// Package engine turns magnitudes and units into convertible quantities.
//
// A Quantity pairs an immutable magnitude with a resolved unit and caches
// the value expressed in the dimension's base unit. Every conversion and
// arithmetic operation works through that base cache:
//
//	base = (magnitude + offset) * multiplier
//	out  = base / target.multiplier - target.offset
//
// Construction evaluates axiom bindings in a fixed order: derive was folded
// into the multiplier at registration, shift applies before scale, and the
// bound is checked last, against the base value.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/caliper-org/caliper/numeric"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// QUANTITY — magnitude + unit with a cached base value
// ============================================================================

// Quantity is an immutable magnitude bound to a unit. The zero value is not
// usable; build quantities with Construct.
type Quantity struct {
	mag  numeric.Value
	base numeric.Value
	unit *units.Unit
	ctx  units.Context
	reg  *units.Registry
}

// Construct resolves a unit, applies its effective transform, and returns
// the quantity with its base value cached. The unit may be an alias string
// or a *units.Unit. Magnitudes may be any numeric Go value, a decimal, a
// float slice, or a prepared numeric.Value; strings are never magnitudes.
func Construct(magnitude any, unit any, opts ...Option) (*Quantity, error) {
	cfg := applyOptions(opts)

	u, err := resolveUnit(cfg.Registry, unit, cfg.Dimension)
	if err != nil {
		return nil, err
	}

	mag, err := toValue(magnitude)
	if err != nil {
		return nil, &ConversionError{From: u.Symbol, Reason: err.Error(), Err: err}
	}

	mult, offset, err := u.Effective(cfg.Context)
	if err != nil {
		return nil, err
	}
	if err := checkMultiplier(u.Symbol, mult); err != nil {
		return nil, err
	}

	// Shift, then scale.
	base := mag.AddConst(offset).MulConst(mult)

	// Bound last, in base space.
	if err := checkBound(u, base); err != nil {
		return nil, err
	}

	return &Quantity{mag: mag, base: base, unit: u, ctx: cfg.Context, reg: cfg.Registry}, nil
}

// MustConstruct is Construct panicking on error, for fixed catalog values.
func MustConstruct(magnitude any, unit any, opts ...Option) *Quantity {
	q, err := Construct(magnitude, unit, opts...)
	if err != nil {
		panic(err)
	}
	return q
}

// To converts the quantity to a target unit in the same dimension. Target
// aliases resolve with the source dimension as hint, so shared aliases
// never ambiguate here. The source context carries over; option context
// entries merge on top.
func (q *Quantity) To(target any, opts ...Option) (*Quantity, error) {
	cfg := applyOptions(opts)
	reg := cfg.Registry
	if q.reg != nil && reg == units.Default() {
		reg = q.reg
	}
	ctx := mergeContext(q.ctx, cfg.Context)

	tu, err := q.resolveTarget(reg, target)
	if err != nil {
		return nil, err
	}

	mult, offset, err := tu.Effective(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkMultiplier(tu.Symbol, mult); err != nil {
		return nil, err
	}

	out, err := q.base.DivConst(mult)
	if err != nil {
		return nil, &ConversionError{From: q.unit.Symbol, To: tu.Symbol, Reason: "zero multiplier", Err: err}
	}
	out = out.AddConst(-offset)

	// The target's bound still judges the base value, not the converted
	// magnitude.
	if err := checkBound(tu, q.base); err != nil {
		return nil, err
	}

	return &Quantity{mag: out, base: q.base, unit: tu, ctx: ctx, reg: reg}, nil
}

// ============================================================================
// ACCESSORS
// ============================================================================

// Magnitude returns the value expressed in the quantity's own unit.
func (q *Quantity) Magnitude() numeric.Value { return q.mag }

// BaseValue returns the cached value in the dimension's base unit.
func (q *Quantity) BaseValue() numeric.Value { return q.base }

// Unit returns the resolved unit.
func (q *Quantity) Unit() *units.Unit { return q.unit }

// Float64 returns the magnitude as a float64.
func (q *Quantity) Float64() float64 { return q.mag.Float64() }

// BaseFloat returns the base value as a float64. Quantities placed in a
// units.Context satisfy units.BaseValued through it, so context formulas
// read them in base space.
func (q *Quantity) BaseFloat() float64 { return q.base.Float64() }

// Context returns a copy of the construction context.
func (q *Quantity) Context() units.Context {
	out := units.Context{}
	for k, v := range q.ctx {
		out[k] = v
	}
	return out
}

func (q *Quantity) String() string { return q.Format() }

// ============================================================================
// FORMATTING
// ============================================================================

// Format renders the quantity. Options select precision, significant
// figures, scientific notation, and thousands grouping; by default the
// magnitude prints in full followed by the unit symbol.
func (q *Quantity) Format(opts ...FormatOption) string {
	cfg := applyFormatOptions(opts)
	num := formatValue(q.mag, cfg)
	if cfg.BareNumber || q.unit == nil {
		return num
	}
	return num + " " + q.unit.Symbol
}

func formatValue(v numeric.Value, cfg *formatConfig) string {
	if v.IsVector() {
		parts := make([]string, 0, v.Len())
		for _, f := range v.Slice() {
			parts = append(parts, formatFloat(f, cfg))
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	if v.Kind() == numeric.Decimal && !cfg.Scientific && cfg.SigFigs == 0 {
		if cfg.Precision >= 0 {
			return groupThousands(v.Decimal().StringFixed(int32(cfg.Precision)), cfg.Delimiter)
		}
		return groupThousands(v.Decimal().String(), cfg.Delimiter)
	}
	return formatFloat(v.Float64(), cfg)
}

func formatFloat(f float64, cfg *formatConfig) string {
	var s string
	switch {
	case cfg.SigFigs > 0:
		s = strconv.FormatFloat(f, 'g', cfg.SigFigs, 64)
	case cfg.Scientific:
		s = strconv.FormatFloat(f, 'e', cfg.Precision, 64)
	case cfg.Precision >= 0:
		s = strconv.FormatFloat(f, 'f', cfg.Precision, 64)
	default:
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return groupThousands(s, cfg.Delimiter)
}

// groupThousands inserts a separator every three digits of the integer
// part. Exponent notation passes through untouched.
func groupThousands(s, sep string) string {
	if sep == "" || strings.ContainsAny(s, "eE") {
		return s
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ============================================================================
// INTERNALS
// ============================================================================

func resolveUnit(reg *units.Registry, unit any, hint string) (*units.Unit, error) {
	switch t := unit.(type) {
	case *units.Unit:
		return t, nil
	case string:
		if hint != "" {
			return reg.Resolve(t, hint)
		}
		return reg.Resolve(t)
	default:
		return nil, fmt.Errorf("engine: unit must be an alias string or *units.Unit, got %T", unit)
	}
}

func (q *Quantity) resolveTarget(reg *units.Registry, target any) (*units.Unit, error) {
	switch t := target.(type) {
	case *units.Unit:
		if t.Dimension != q.unit.Dimension {
			return nil, &units.DimensionMismatchError{Op: "convert", Left: q.unit.Dimension, Right: t.Dimension}
		}
		return t, nil
	case string:
		return reg.Resolve(t, q.unit.Dimension)
	default:
		return nil, fmt.Errorf("engine: target must be an alias string or *units.Unit, got %T", target)
	}
}

func toValue(magnitude any) (numeric.Value, error) {
	if v, ok := magnitude.(numeric.Value); ok {
		return v, nil
	}
	return numeric.From(magnitude)
}

func checkMultiplier(symbol string, mult float64) error {
	if mult == 0 || math.IsNaN(mult) || math.IsInf(mult, 0) {
		return &ConversionError{From: symbol, Reason: fmt.Sprintf("effective multiplier %v is unusable", mult)}
	}
	return nil
}

func checkBound(u *units.Unit, base numeric.Value) error {
	b := u.EffectiveBound()
	if b == nil {
		return nil
	}
	if v, outside := base.Outside(b.Min, b.Max); outside {
		return &AxiomViolationError{Unit: u.Symbol, Value: v, Min: b.Min, Max: b.Max, Msg: b.Msg}
	}
	return nil
}

func mergeContext(base, extra units.Context) units.Context {
	if len(extra) == 0 {
		return base
	}
	out := units.Context{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
