package numeric

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// KIND & MIXING POLICY TESTS
// ============================================================================

func TestKindPreservation(t *testing.T) {
	f := FromFloat(2.5).AddConst(1).MulConst(3)
	require.Equal(t, Float, f.Kind())
	require.InDelta(t, 10.5, f.Float64(), 1e-12)

	d := FromDecimal(decimal.NewFromFloat(2.5)).AddConst(1).MulConst(3)
	require.Equal(t, Decimal, d.Kind())
	require.True(t, d.Decimal().Equal(decimal.NewFromFloat(10.5)))

	v := FromVector([]float64{1, 2, 3}).MulConst(2)
	require.Equal(t, Vector, v.Kind())
	require.Equal(t, []float64{2, 4, 6}, v.Slice())
}

func TestDecimalFloatMixAlwaysFails(t *testing.T) {
	d := FromDecimal(decimal.NewFromInt(1))
	f := FromFloat(1)

	for _, op := range []func(a, b Value) (Value, error){Add, Sub, Mul, Div} {
		_, err := op(d, f)
		require.ErrorIs(t, err, ErrMixedPrecision)
		_, err = op(f, d)
		require.ErrorIs(t, err, ErrMixedPrecision)
	}
}

func TestVectorBroadcastsAgainstScalars(t *testing.T) {
	v := FromVector([]float64{10, 20, 30})

	sum, err := Add(v, FromFloat(5))
	require.NoError(t, err)
	require.Equal(t, []float64{15, 25, 35}, sum.Slice())

	// Decimal degrades to float64 once an array participates.
	prod, err := Mul(FromDecimal(decimal.NewFromInt(2)), v)
	require.NoError(t, err)
	require.Equal(t, Vector, prod.Kind())
	require.Equal(t, []float64{20, 40, 60}, prod.Slice())
}

func TestVectorShapeMismatch(t *testing.T) {
	_, err := Add(FromVector([]float64{1, 2}), FromVector([]float64{1, 2, 3}))
	require.ErrorIs(t, err, ErrShape)
}

func TestZeroDivisorRejected(t *testing.T) {
	_, err := Div(FromFloat(1), FromFloat(0))
	require.ErrorIs(t, err, ErrZeroDivisor)

	_, err = Div(FromVector([]float64{1, 2}), FromVector([]float64{2, 0}))
	require.ErrorIs(t, err, ErrZeroDivisor)

	_, err = Div(FromDecimal(decimal.NewFromInt(1)), FromDecimal(decimal.Zero))
	require.ErrorIs(t, err, ErrZeroDivisor)

	_, err = FromFloat(1).DivConst(0)
	require.ErrorIs(t, err, ErrZeroDivisor)
}

func TestFromRejectsStrings(t *testing.T) {
	_, err := From("10 kg")
	require.Error(t, err)

	val, err := From(42)
	require.NoError(t, err)
	require.Equal(t, Float, val.Kind())
	require.InDelta(t, 42, val.Float64(), 0)
}

// ============================================================================
// TRANSFORM & BOUNDS TESTS
// ============================================================================

func TestLinearRoundTrip(t *testing.T) {
	// (x + offset) * k, then back: / k - offset
	cases := []Value{
		FromFloat(37.2),
		FromDecimal(decimal.NewFromFloat(37.2)),
		FromVector([]float64{-5, 0, 37.2}),
	}
	const offset, k = -32.0, 5.0 / 9.0

	for _, in := range cases {
		base := in.AddConst(offset).MulConst(k)
		back, err := base.DivConst(k)
		require.NoError(t, err)
		back = back.AddConst(-offset)
		for i, x := range back.Slice() {
			require.InDelta(t, in.Slice()[i], x, 1e-9)
		}
		require.Equal(t, in.Kind(), back.Kind())
	}
}

func TestOutsideBounds(t *testing.T) {
	// Limits are inclusive.
	_, out := FromFloat(0).Outside(0, 100)
	require.False(t, out)
	_, out = FromFloat(100).Outside(0, 100)
	require.False(t, out)

	bad, out := FromVector([]float64{5, -1, 7}).Outside(0, 100)
	require.True(t, out)
	require.InDelta(t, -1, bad, 0)

	// NaN is missing, not impossible.
	_, out = FromVector([]float64{math.NaN()}).Outside(0, 100)
	require.False(t, out)
}

func TestRound(t *testing.T) {
	require.InDelta(t, 680.39, FromFloat(680.388555).Round(2).Float64(), 1e-12)
	require.Equal(t, "680.39", FromDecimal(decimal.NewFromFloat(680.388555)).Round(2).String())
	require.Equal(t, []float64{1.23, 4.57}, FromVector([]float64{1.234, 4.567}).Round(2).Slice())
}

func TestElementaryFunctions(t *testing.T) {
	require.InDelta(t, 3, FromFloat(9).Sqrt().Float64(), 1e-12)
	require.Equal(t, []float64{1, 4, 9}, FromVector([]float64{1, 2, 3}).Pow(2).Slice())
	require.InDelta(t, 2.5, FromDecimal(decimal.NewFromFloat(-2.5)).Abs().Float64(), 1e-12)
	require.InDelta(t, 1, FromFloat(0).Cos().Float64(), 1e-12)
}
