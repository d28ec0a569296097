package numeric

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// ============================================================================
// LINEAR-TRANSFORM BUILDING BLOCKS (constant operand, kind-preserving)
// ============================================================================

// AddConst returns val + c.
func (val Value) AddConst(c float64) Value {
	switch val.kind {
	case Decimal:
		return FromDecimal(val.d.Add(decimal.NewFromFloat(c)))
	case Vector:
		out := val.Slice()
		floats.AddConst(c, out)
		return Value{kind: Vector, v: out}
	default:
		return FromFloat(val.f + c)
	}
}

// MulConst returns val * c.
func (val Value) MulConst(c float64) Value {
	switch val.kind {
	case Decimal:
		return FromDecimal(val.d.Mul(decimal.NewFromFloat(c)))
	case Vector:
		out := val.Slice()
		floats.Scale(c, out)
		return Value{kind: Vector, v: out}
	default:
		return FromFloat(val.f * c)
	}
}

// DivConst returns val / c, rejecting a zero divisor.
func (val Value) DivConst(c float64) (Value, error) {
	if c == 0 {
		return Value{}, ErrZeroDivisor
	}
	switch val.kind {
	case Decimal:
		return FromDecimal(val.d.Div(decimal.NewFromFloat(c))), nil
	case Vector:
		out := val.Slice()
		floats.Scale(1/c, out)
		return Value{kind: Vector, v: out}, nil
	default:
		return FromFloat(val.f / c), nil
	}
}

// Neg returns -val.
func (val Value) Neg() Value {
	switch val.kind {
	case Decimal:
		return FromDecimal(val.d.Neg())
	case Vector:
		out := val.Slice()
		floats.Scale(-1, out)
		return Value{kind: Vector, v: out}
	default:
		return FromFloat(-val.f)
	}
}

// ============================================================================
// BINARY OPERATIONS — mixing policy enforced here
// ============================================================================
// float  with float  -> float
// dec    with dec    -> decimal (exact where the op allows)
// dec    with float  -> ErrMixedPrecision, always
// vector with any    -> vector, element-wise; a decimal operand degrades
//                       to float64 because array math is float math
// ============================================================================

// Add returns a + b under the mixing policy.
func Add(a, b Value) (Value, error) {
	return apply(a, b, floats.Add, decimal.Decimal.Add)
}

// Sub returns a - b under the mixing policy.
func Sub(a, b Value) (Value, error) {
	return apply(a, b, floats.Sub, decimal.Decimal.Sub)
}

// Mul returns a * b under the mixing policy.
func Mul(a, b Value) (Value, error) {
	return apply(a, b, floats.Mul, decimal.Decimal.Mul)
}

// Div returns a / b under the mixing policy, rejecting zero divisors
// (any zero element for vectors).
func Div(a, b Value) (Value, error) {
	if b.kind == Decimal {
		if b.d.IsZero() {
			return Value{}, ErrZeroDivisor
		}
	} else {
		for _, x := range b.Slice() {
			if x == 0 {
				return Value{}, ErrZeroDivisor
			}
		}
	}
	return apply(a, b, floats.Div, decimal.Decimal.Div)
}

// apply dispatches a binary op over the kind matrix.
// vecOp mutates its first argument in place (gonum convention).
func apply(a, b Value, vecOp func(dst, s []float64), decOp func(x, y decimal.Decimal) decimal.Decimal) (Value, error) {
	if a.kind == Vector || b.kind == Vector {
		x, y, err := broadcastPair(a, b)
		if err != nil {
			return Value{}, err
		}
		vecOp(x, y)
		return Value{kind: Vector, v: x}, nil
	}
	if a.kind == Decimal || b.kind == Decimal {
		if a.kind != b.kind {
			return Value{}, ErrMixedPrecision
		}
		return FromDecimal(decOp(a.d, b.d)), nil
	}
	// float with float via the vector op on single-element slices
	x := []float64{a.f}
	vecOp(x, []float64{b.f})
	return FromFloat(x[0]), nil
}

// broadcastPair expands scalars to match vector length.
// Returns fresh slices safe for in-place mutation.
func broadcastPair(a, b Value) ([]float64, []float64, error) {
	if a.kind == Vector && b.kind == Vector {
		if len(a.v) != len(b.v) {
			return nil, nil, ErrShape
		}
		return a.Slice(), b.Slice(), nil
	}
	if a.kind == Vector {
		return a.Slice(), fill(len(a.v), b.Float64()), nil
	}
	return fill(len(b.v), a.Float64()), b.Slice(), nil
}

func fill(n int, x float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = x
	}
	return out
}

// ============================================================================
// ELEMENTARY FUNCTIONS — kind-preserving
// ============================================================================
// Transcendentals on decimals pass through float64; exactness holds only
// for the ring ops above.

// Abs returns |val|.
func (val Value) Abs() Value {
	if val.kind == Decimal {
		return FromDecimal(val.d.Abs())
	}
	return val.map1(math.Abs)
}

// Pow raises every element to the given exponent.
func (val Value) Pow(exp float64) Value {
	if val.kind == Decimal {
		return FromDecimal(val.d.Pow(decimal.NewFromFloat(exp)))
	}
	return val.map1(func(x float64) float64 { return math.Pow(x, exp) })
}

// Sqrt returns the element-wise square root (NaN for negatives).
func (val Value) Sqrt() Value { return val.map1(math.Sqrt) }

// Cos returns the element-wise cosine.
func (val Value) Cos() Value { return val.map1(math.Cos) }

// Sin returns the element-wise sine.
func (val Value) Sin() Value { return val.map1(math.Sin) }

// map1 applies a float64 function while preserving the kind.
func (val Value) map1(f func(float64) float64) Value {
	switch val.kind {
	case Decimal:
		return FromDecimal(decimal.NewFromFloat(f(val.d.InexactFloat64())))
	case Vector:
		out := make([]float64, len(val.v))
		for i, x := range val.v {
			out[i] = f(x)
		}
		return Value{kind: Vector, v: out}
	default:
		return FromFloat(f(val.f))
	}
}
