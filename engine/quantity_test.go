package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// CONSTRUCTION AND CONVERSION TESTS
// ============================================================================

func TestConstructAndConvert(t *testing.T) {
	q, err := Construct(1500, "lbs")
	require.NoError(t, err)
	require.Equal(t, "lb", q.Unit().Symbol)
	require.InDelta(t, 680.388555, q.BaseFloat(), 1e-9)

	kg, err := q.To("kg")
	require.NoError(t, err)
	require.InDelta(t, 680.388555, kg.Float64(), 1e-9)

	// The base cache survives conversion unchanged.
	require.InDelta(t, q.BaseFloat(), kg.BaseFloat(), 1e-12)
}

func TestRoundTrip(t *testing.T) {
	q, err := Construct(100.0, "km/h")
	require.NoError(t, err)

	mph, err := q.To("mph")
	require.NoError(t, err)
	require.InDelta(t, 62.137119, mph.Float64(), 1e-6)

	back, err := mph.To("kph")
	require.NoError(t, err)
	require.InDelta(t, 100.0, back.Float64(), 1e-9)
}

func TestTemperatureChain(t *testing.T) {
	f, err := Construct(32.0, "F")
	require.NoError(t, err)
	require.InDelta(t, 0.0, f.BaseFloat(), 1e-9)

	k, err := f.To("K")
	require.NoError(t, err)
	require.InDelta(t, 273.15, k.Float64(), 1e-9)

	boiling, err := Construct(100.0, "celsius")
	require.NoError(t, err)
	degF, err := boiling.To("fahrenheit")
	require.NoError(t, err)
	require.InDelta(t, 212.0, degF.Float64(), 1e-9)
}

func TestSharedAliasResolution(t *testing.T) {
	// Bare "m" is ambiguous between meters and months.
	_, err := Construct(5.0, "m")
	var amb *units.AmbiguousUnitError
	require.ErrorAs(t, err, &amb)

	// A dimension option disambiguates at construction.
	mo, err := Construct(5.0, "m", WithDimension("time"))
	require.NoError(t, err)
	require.Equal(t, "mo", mo.Unit().Symbol)

	// To() resolves with the source dimension as hint, so the shared alias
	// is never ambiguous mid-conversion.
	yr, err := Construct(12.0, "months")
	require.NoError(t, err)
	got, err := yr.To("m")
	require.NoError(t, err)
	require.Equal(t, "mo", got.Unit().Symbol)
	require.InDelta(t, 12.0, got.Float64(), 1e-9)
}

func TestWrongDimensionConversion(t *testing.T) {
	q, err := Construct(5.0, "kg")
	require.NoError(t, err)

	_, err = q.To("m")
	var mismatch *units.DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)

	// Passing a resolved unit of another dimension fails the same way.
	_, err = q.To(units.Meter)
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "mass", mismatch.Left)
	require.Equal(t, "length", mismatch.Right)
}

func TestUnknownUnit(t *testing.T) {
	_, err := Construct(1.0, "pallets")
	var notFound *units.UnitNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "pallets", notFound.Alias)
}

func TestConstructRejectsStringMagnitudes(t *testing.T) {
	_, err := Construct("1500", "lbs")
	var conv *ConversionError
	require.ErrorAs(t, err, &conv)
}

// ============================================================================
// BOUND TESTS
// ============================================================================

func TestBoundViolationAtConstruction(t *testing.T) {
	_, err := Construct(-5.0, "kg")
	var violation *AxiomViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "kg", violation.Unit)
	require.Equal(t, -5.0, violation.Value)
	require.Equal(t, 0.0, violation.Min)

	// Limits are inclusive.
	zero, err := Construct(0.0, "kg")
	require.NoError(t, err)
	require.Equal(t, 0.0, zero.Float64())
}

func TestBoundJudgesBaseNotMagnitude(t *testing.T) {
	// -40 °F is cold but physical: base -40 °C.
	q, err := Construct(-40.0, "F")
	require.NoError(t, err)
	require.InDelta(t, -40.0, q.BaseFloat(), 1e-9)

	// -500 °F lands below absolute zero in base space.
	_, err = Construct(-500.0, "F")
	var violation *AxiomViolationError
	require.ErrorAs(t, err, &violation)
	require.InDelta(t, -273.15, violation.Min, 1e-9)
}

func TestToRechecksTargetBound(t *testing.T) {
	r := units.NewRegistry()
	_, err := r.RegisterDimension("charge", &units.Unit{Symbol: "e"})
	require.NoError(t, err)
	_, err = r.Register(&units.Unit{
		Symbol:    "pos",
		Dimension: "charge",
		Bound:     units.BoundMin(0, "positive convention only"),
	})
	require.NoError(t, err)

	q, err := Construct(-3.0, "e", WithRegistry(r))
	require.NoError(t, err)

	_, err = q.To("pos")
	var violation *AxiomViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "pos", violation.Unit)
	require.Equal(t, -3.0, violation.Value)
}

// ============================================================================
// CONTEXT TESTS
// ============================================================================

func TestContextFormulaAtConstruction(t *testing.T) {
	r := units.NewRegistry()
	_, err := r.RegisterDimension("carbon", &units.Unit{Symbol: "tCO2e"})
	require.NoError(t, err)
	_, err = r.Register(&units.Unit{
		Symbol:    "MWh-grid",
		Dimension: "carbon",
		Scale:     units.Key("grid_intensity"),
	})
	require.NoError(t, err)

	// Without the key the construction fails lazily but loudly.
	_, err = Construct(10.0, "mwh-grid", WithRegistry(r))
	var missing *units.MissingContextError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "grid_intensity", missing.Key)
	require.Equal(t, "MWh-grid", missing.Unit)

	q, err := Construct(10.0, "mwh-grid", WithRegistry(r), WithValue("grid_intensity", 0.82))
	require.NoError(t, err)
	require.InDelta(t, 8.2, q.BaseFloat(), 1e-9)
}

func TestContextPropagatesThroughTo(t *testing.T) {
	// Mach carries its air temperature along the conversion chain.
	q, err := Construct(1.0, "mach", WithValue("temp_c", 0.0))
	require.NoError(t, err)
	require.InDelta(t, 331.3, q.BaseFloat(), 1e-9)

	ms, err := q.To("m/s")
	require.NoError(t, err)
	require.InDelta(t, 331.3, ms.Float64(), 1e-9)

	// Back again: the context rode along inside the quantity.
	back, err := ms.To("mach")
	require.NoError(t, err)
	require.InDelta(t, 1.0, back.Float64(), 1e-9)

	// Entries supplied at To() merge over the inherited context.
	warmer, err := ms.To("mach", WithValue("temp_c", 30.0))
	require.NoError(t, err)
	require.Less(t, warmer.Float64(), 1.0)
}

func TestMachDefaultAtmosphere(t *testing.T) {
	q, err := Construct(1.0, "mach")
	require.NoError(t, err)
	require.InDelta(t, 340.27, q.BaseFloat(), 0.05)
}

func TestQuantityInsideContext(t *testing.T) {
	// A quantity dropped into a context reads as its base value.
	temp, err := Construct(273.15, "K")
	require.NoError(t, err)

	q, err := Construct(1.0, "mach", WithValue("temp_c", temp))
	require.NoError(t, err)
	require.InDelta(t, 331.3, q.BaseFloat(), 1e-9)
}

// ============================================================================
// NUMERIC KIND TESTS
// ============================================================================

func TestVectorQuantity(t *testing.T) {
	q, err := Construct([]float64{0, 100, -40}, "F")
	require.NoError(t, err)

	c, err := q.To("C")
	require.NoError(t, err)
	got := c.Magnitude().Slice()
	require.Len(t, got, 3)
	require.InDelta(t, -17.777778, got[0], 1e-6)
	require.InDelta(t, 37.777778, got[1], 1e-6)
	require.InDelta(t, -40.0, got[2], 1e-9)
}

func TestVectorBoundViolationNamesOffender(t *testing.T) {
	_, err := Construct([]float64{1, 2, -3, 4}, "kg")
	var violation *AxiomViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, -3.0, violation.Value)
}

func TestDecimalQuantity(t *testing.T) {
	d := decimal.RequireFromString("1.5")
	q, err := Construct(d, "km")
	require.NoError(t, err)

	m, err := q.To("meters")
	require.NoError(t, err)
	require.Equal(t, "1500", m.Magnitude().Decimal().String())
}

// ============================================================================
// FORMAT TESTS
// ============================================================================

func TestFormat(t *testing.T) {
	q := MustConstruct(1234567.891, "m", WithDimension("length"))

	require.Equal(t, "1,234,567.89 m", q.Format(Precision(2), Delimiter(",")))
	require.Equal(t, "1234567.89", q.Format(Precision(2), BareNumber()))
	require.Equal(t, "1.23e+06 m", q.Format(SigFigs(3)))

	small := MustConstruct(680.388555, "kg")
	require.Equal(t, "680.39 kg", small.Format(Precision(2)))
	require.Equal(t, "680.388555 kg", small.String())
}
