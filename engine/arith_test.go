package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/caliper-org/caliper/numeric"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// ADDITION AND SUBTRACTION
// ============================================================================

func TestAddExpressesResultInLeftUnit(t *testing.T) {
	km := MustConstruct(1.0, "km")
	m := MustConstruct(500.0, "meters")

	sum, err := km.Add(m)
	require.NoError(t, err)
	require.Equal(t, "km", sum.Unit().Symbol)
	require.InDelta(t, 1.5, sum.Float64(), 1e-12)
	require.InDelta(t, 1500.0, sum.BaseFloat(), 1e-12)

	// Flipped operands keep the flipped left unit.
	sum2, err := m.Add(km)
	require.NoError(t, err)
	require.Equal(t, "m", sum2.Unit().Symbol)
	require.InDelta(t, 1500.0, sum2.Float64(), 1e-12)
}

func TestAddOffsetUnitsWorkInBaseSpace(t *testing.T) {
	// 100 °C + 10 K of headroom: the sum happens on base values, then
	// re-expresses through the left unit's full transform.
	c := MustConstruct(100.0, "C", WithDimension("temperature"))
	k := MustConstruct(10.0, "K")
	require.InDelta(t, -263.15, k.BaseFloat(), 1e-9)

	sum, err := c.Add(k)
	require.NoError(t, err)
	require.Equal(t, "°C", sum.Unit().Symbol)
	require.InDelta(t, -163.15, sum.Float64(), 1e-9)
}

func TestAddAcrossDimensionsFails(t *testing.T) {
	kg := MustConstruct(1.0, "kg")
	m := MustConstruct(1.0, "meters")

	_, err := kg.Add(m)
	var mismatch *units.DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "add", mismatch.Op)
	require.Equal(t, "mass", mismatch.Left)
	require.Equal(t, "length", mismatch.Right)
}

func TestSubBelowBoundFails(t *testing.T) {
	a := MustConstruct(5.0, "kg")
	b := MustConstruct(7.0, "kg")

	_, err := a.Sub(b)
	var violation *AxiomViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, -2.0, violation.Value)

	// Energy is unbounded, so the same shape of subtraction passes there.
	j1 := MustConstruct(5.0, "J")
	j2 := MustConstruct(7.0, "J")
	diff, err := j1.Sub(j2)
	require.NoError(t, err)
	require.InDelta(t, -2.0, diff.Float64(), 1e-12)
}

func TestMixedPrecisionAdditionFails(t *testing.T) {
	d := MustConstruct(decimal.NewFromInt(5), "kg")
	f := MustConstruct(5.0, "kg")

	_, err := d.Add(f)
	require.ErrorIs(t, err, numeric.ErrMixedPrecision)
}

func TestVectorScalarAddition(t *testing.T) {
	v := MustConstruct([]float64{1, 2, 3}, "km")
	s := MustConstruct(500.0, "meters")

	sum, err := v.Add(s)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2.5, 3.5}, sum.Magnitude().Slice())
}

// ============================================================================
// MULTIPLICATION AND DIVISION
// ============================================================================

func TestMulComposesIntoCanonicalDimension(t *testing.T) {
	a := MustConstruct(2.0, "m", WithDimension("length"))
	b := MustConstruct(3.0, "m", WithDimension("length"))

	area, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, "area", area.Unit().Dimension)
	require.InDelta(t, 6.0, area.BaseFloat(), 1e-12)

	// The composite converts like any registered area unit.
	sqft, err := area.To("ft2")
	require.NoError(t, err)
	require.InDelta(t, 6.0/(0.3048*0.3048), sqft.Float64(), 1e-9)
}

func TestDivComposesIntoSpeed(t *testing.T) {
	d := MustConstruct(100.0, "km")
	h := MustConstruct(1.0, "hours")

	v, err := d.Div(h)
	require.NoError(t, err)
	require.Equal(t, "speed", v.Unit().Dimension)
	require.Equal(t, "km/h", v.Unit().Symbol)
	require.InDelta(t, 100.0, v.Float64(), 1e-9)

	mph, err := v.To("mph")
	require.NoError(t, err)
	require.InDelta(t, 62.137119, mph.Float64(), 1e-6)
}

func TestDivIntoAnonymousDimension(t *testing.T) {
	e := MustConstruct(100.0, "J")
	s := MustConstruct(2.0, "seconds")

	p, err := e.Div(s)
	require.NoError(t, err)
	require.True(t, p.Unit().Dim().Anonymous)
	require.Equal(t, "length^2*mass^1*time^-3", p.Unit().Dimension)
	require.InDelta(t, 50.0, p.BaseFloat(), 1e-12)
}

func TestDivByZeroMagnitude(t *testing.T) {
	d := MustConstruct(5.0, "m", WithDimension("length"))
	z := MustConstruct(0.0, "seconds")

	_, err := d.Div(z)
	var conv *ConversionError
	require.ErrorAs(t, err, &conv)
	require.ErrorIs(t, err, numeric.ErrZeroDivisor)
}

func TestDimensionlessRatio(t *testing.T) {
	a := MustConstruct(250.0, "meters")
	b := MustConstruct(1.0, "km")

	ratio, err := a.Div(b)
	require.NoError(t, err)
	require.Equal(t, "dimensionless", ratio.Unit().Dimension)
	require.InDelta(t, 0.25, ratio.BaseFloat(), 1e-12)
}

// ============================================================================
// NEGATION
// ============================================================================

func TestNegFlipsBaseValue(t *testing.T) {
	c := MustConstruct(50.0, "C", WithDimension("temperature"))
	neg, err := c.Neg()
	require.NoError(t, err)
	require.InDelta(t, -50.0, neg.Float64(), 1e-12)

	// 32 °F sits at base zero; physical negation leaves it in place.
	f := MustConstruct(32.0, "F")
	negF, err := f.Neg()
	require.NoError(t, err)
	require.InDelta(t, 32.0, negF.Float64(), 1e-12)

	// Bounded dimensions refuse a flip below their floor.
	kg := MustConstruct(5.0, "kg")
	_, err = kg.Neg()
	var violation *AxiomViolationError
	require.ErrorAs(t, err, &violation)
}
