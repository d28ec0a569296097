// Package numeric dispatches elementary math over scalar-or-array operands.
//
// A Value holds exactly one of: a float64, an arbitrary-precision decimal,
// or a float64 vector. The class is fixed at construction and never changes
// through arithmetic — mixing decimal and float operands is an error, and a
// vector broadcasts element-wise against either scalar class.
package numeric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// VALUE — closed scalar-or-array variant
// ============================================================================

// Kind identifies which representation a Value holds.
type Kind int

const (
	Float   Kind = iota // 64-bit float scalar
	Decimal             // arbitrary-precision decimal scalar
	Vector              // []float64, processed element-wise
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case Float:
		return "float64"
	case Decimal:
		return "decimal"
	case Vector:
		return "vector"
	}
	return "unknown"
}

// Mixing and shape rules are enforced at every binary operation.
var (
	ErrMixedPrecision = errors.New("numeric: decimal and float64 operands cannot mix")
	ErrShape          = errors.New("numeric: vector operands differ in length")
	ErrZeroDivisor    = errors.New("numeric: division by zero")
)

// Value is a number in exactly one of the three representations.
// Values are immutable — every operation returns a new Value.
type Value struct {
	kind Kind
	f    float64
	d    decimal.Decimal
	v    []float64
}

// ============================================================================
// CONSTRUCTORS
// ============================================================================

// FromFloat wraps a float64 scalar.
func FromFloat(f float64) Value {
	return Value{kind: Float, f: f}
}

// FromDecimal wraps an arbitrary-precision decimal scalar.
func FromDecimal(d decimal.Decimal) Value {
	return Value{kind: Decimal, d: d}
}

// FromVector wraps a copy of the given slice.
func FromVector(v []float64) Value {
	cp := make([]float64, len(v))
	copy(cp, v)
	return Value{kind: Vector, v: cp}
}

// From coerces a Go value into a Value.
// Accepted: Value, float64, float32, int variants, decimal.Decimal, []float64.
// Strings are rejected — parsing belongs to the schema pipeline, not here.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case float64:
		return FromFloat(t), nil
	case float32:
		return FromFloat(float64(t)), nil
	case int:
		return FromFloat(float64(t)), nil
	case int32:
		return FromFloat(float64(t)), nil
	case int64:
		return FromFloat(float64(t)), nil
	case decimal.Decimal:
		return FromDecimal(t), nil
	case []float64:
		return FromVector(t), nil
	case string:
		return Value{}, fmt.Errorf("numeric: string %q is not a valid magnitude", t)
	default:
		return Value{}, fmt.Errorf("numeric: unsupported magnitude type %T", x)
	}
}

// ============================================================================
// ACCESSORS
// ============================================================================

// Kind reports which representation the Value holds.
func (val Value) Kind() Kind { return val.kind }

// IsVector reports whether the Value is array-shaped.
func (val Value) IsVector() bool { return val.kind == Vector }

// Len returns the element count (1 for scalars).
func (val Value) Len() int {
	if val.kind == Vector {
		return len(val.v)
	}
	return 1
}

// Float64 returns the value as a float64, degrading decimals.
// For vectors it returns the first element (0 if empty).
func (val Value) Float64() float64 {
	switch val.kind {
	case Decimal:
		return val.d.InexactFloat64()
	case Vector:
		if len(val.v) == 0 {
			return 0
		}
		return val.v[0]
	default:
		return val.f
	}
}

// Decimal returns the decimal representation.
// Floats are converted exactly from their float64 bits; vectors use the
// first element.
func (val Value) Decimal() decimal.Decimal {
	switch val.kind {
	case Decimal:
		return val.d
	case Vector:
		if len(val.v) == 0 {
			return decimal.Zero
		}
		return decimal.NewFromFloat(val.v[0])
	default:
		return decimal.NewFromFloat(val.f)
	}
}

// Slice returns a copy of the elements ([x] for scalars).
func (val Value) Slice() []float64 {
	if val.kind == Vector {
		cp := make([]float64, len(val.v))
		copy(cp, val.v)
		return cp
	}
	return []float64{val.Float64()}
}

// String renders the value for plain output.
func (val Value) String() string {
	switch val.kind {
	case Decimal:
		return val.d.String()
	case Vector:
		parts := make([]string, len(val.v))
		for i, x := range val.v {
			parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return strconv.FormatFloat(val.f, 'g', -1, 64)
	}
}

// ============================================================================
// BOUNDS & ROUNDING
// ============================================================================

// Outside returns the first element falling outside [min, max] (inclusive).
// NaN elements never count as outside — they are missing, not impossible.
func (val Value) Outside(min, max float64) (float64, bool) {
	for _, x := range val.Slice() {
		if math.IsNaN(x) {
			continue
		}
		if x < min || x > max {
			return x, true
		}
	}
	return 0, false
}

// Round rounds to the given number of decimal places, preserving kind.
func (val Value) Round(places int) Value {
	switch val.kind {
	case Decimal:
		return FromDecimal(val.d.Round(int32(places)))
	case Vector:
		out := make([]float64, len(val.v))
		p := math.Pow(10, float64(places))
		for i, x := range val.v {
			out[i] = math.Round(x*p) / p
		}
		return Value{kind: Vector, v: out}
	default:
		p := math.Pow(10, float64(places))
		return FromFloat(math.Round(val.f*p) / p)
	}
}
