package engine

import (
	"errors"
	"fmt"

	"github.com/caliper-org/caliper/numeric"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// ARITHMETIC — base-space operations on quantities
// ============================================================================
// Addition and subtraction stay inside one dimension and express the result
// in the left operand's unit, through that unit's full from-base transform.
// Multiplication and division always go through: the units compose into a
// derived descriptor and the base values multiply or divide element-wise.
// Numeric kind policy is the numeric package's: decimals never mix with
// floats, arrays broadcast against scalars.
// ============================================================================

// Add returns q + other expressed in q's unit.
func (q *Quantity) Add(other *Quantity) (*Quantity, error) {
	return q.linear("add", other, numeric.Add)
}

// Sub returns q - other expressed in q's unit.
func (q *Quantity) Sub(other *Quantity) (*Quantity, error) {
	return q.linear("subtract", other, numeric.Sub)
}

func (q *Quantity) linear(op string, other *Quantity, combine func(a, b numeric.Value) (numeric.Value, error)) (*Quantity, error) {
	if other == nil {
		return nil, fmt.Errorf("engine: %s needs two quantities", op)
	}
	if q.unit.Dimension != other.unit.Dimension {
		return nil, &units.DimensionMismatchError{Op: op, Left: q.unit.Dimension, Right: other.unit.Dimension}
	}

	base, err := combine(q.base, other.base)
	if err != nil {
		return nil, err
	}

	// Back out of base space through the left unit.
	mult, offset, err := q.unit.Effective(q.ctx)
	if err != nil {
		return nil, err
	}
	if err := checkMultiplier(q.unit.Symbol, mult); err != nil {
		return nil, err
	}
	mag, err := base.DivConst(mult)
	if err != nil {
		return nil, err
	}
	mag = mag.AddConst(-offset)

	// The result is a fresh construction, so its bound applies.
	if err := checkBound(q.unit, base); err != nil {
		return nil, err
	}

	return &Quantity{mag: mag, base: base, unit: q.unit, ctx: q.ctx, reg: q.reg}, nil
}

// Mul multiplies two quantities, composing their units.
func (q *Quantity) Mul(other *Quantity) (*Quantity, error) {
	return q.composeArith("*", other)
}

// Div divides two quantities, composing their units. A divisor with any
// zero base magnitude is refused.
func (q *Quantity) Div(other *Quantity) (*Quantity, error) {
	return q.composeArith("/", other)
}

func (q *Quantity) composeArith(op string, other *Quantity) (*Quantity, error) {
	if other == nil {
		return nil, fmt.Errorf("engine: %q needs two quantities", op)
	}
	reg := q.reg
	if reg == nil {
		reg = units.Default()
	}

	unit, err := reg.Compose(op, q.unit, other.unit)
	if err != nil {
		return nil, err
	}

	var base numeric.Value
	if op == "*" {
		base, err = numeric.Mul(q.base, other.base)
	} else {
		base, err = numeric.Div(q.base, other.base)
		if errors.Is(err, numeric.ErrZeroDivisor) {
			return nil, &ConversionError{From: q.unit.Symbol, To: unit.Symbol, Reason: "division by a zero magnitude", Err: err}
		}
	}
	if err != nil {
		return nil, err
	}

	mag, err := base.DivConst(unit.Multiplier)
	if err != nil {
		return nil, err
	}

	return &Quantity{mag: mag, base: base, unit: unit, ctx: q.ctx, reg: q.reg}, nil
}

// Neg returns the physically negated quantity: the base value flips sign
// and the magnitude is rebuilt through the unit's transform, subject to
// the unit's bound. For offset units the magnitude is not simply -m.
func (q *Quantity) Neg() (*Quantity, error) {
	base := q.base.Neg()
	mult, offset, err := q.unit.Effective(q.ctx)
	if err != nil {
		return nil, err
	}
	if err := checkMultiplier(q.unit.Symbol, mult); err != nil {
		return nil, err
	}
	mag, err := base.DivConst(mult)
	if err != nil {
		return nil, err
	}
	mag = mag.AddConst(-offset)
	if err := checkBound(q.unit, base); err != nil {
		return nil, err
	}
	return &Quantity{mag: mag, base: base, unit: q.unit, ctx: q.ctx, reg: q.reg}, nil
}
