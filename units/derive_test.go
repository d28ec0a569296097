package units

import (
	"math"
	"testing"
)

// ============================================================================
// DERIVATION TESTS
// ============================================================================

func TestDeriveMultiplierExactness(t *testing.T) {
	// Derived multipliers are quotients of registered multipliers, computed
	// once at registration. No literal approximations.
	tests := []struct {
		unit *Unit
		want float64
	}{
		{KilometerPerHour, 1000.0 / 3600.0},
		{MilePerHour, MileToMeter / 3600.0},
		{Knot, NauticalMileToMeter / 3600.0},
		{FootPerSecond, FootToMeter},
	}
	for _, tt := range tests {
		if tt.unit.Multiplier != tt.want {
			t.Errorf("%s multiplier = %v, want %v", tt.unit.Symbol, tt.unit.Multiplier, tt.want)
		}
	}
}

func TestDeriveDropsOffsets(t *testing.T) {
	r := NewRegistry()
	if _, err := r.RegisterDimension("warmth", &Unit{Symbol: "degc"}); err != nil {
		t.Fatalf("RegisterDimension failed: %v", err)
	}
	if _, err := r.Register(&Unit{Symbol: "degf", Dimension: "warmth", Multiplier: 5.0 / 9.0, Offset: -32}); err != nil {
		t.Fatalf("Register(degf) failed: %v", err)
	}
	if _, err := r.RegisterDimension("interval", &Unit{Symbol: "tick"}); err != nil {
		t.Fatalf("RegisterDimension failed: %v", err)
	}
	if _, err := r.Register(&Unit{Symbol: "h", Dimension: "interval", Multiplier: 3600}); err != nil {
		t.Fatalf("Register(h) failed: %v", err)
	}

	// A rate derived from an offset unit keeps only the interval scale.
	rate, err := r.Register(&Unit{
		Symbol:    "degf/h",
		Dimension: "warmth",
		Derive:    &Derivation{Mul: []string{"degf"}, Div: []string{"h"}},
	})
	if err != nil {
		t.Fatalf("Register(degf/h) failed: %v", err)
	}
	if rate.Multiplier != (5.0/9.0)/3600.0 {
		t.Errorf("derived multiplier = %v, want %v", rate.Multiplier, (5.0/9.0)/3600.0)
	}
	if rate.Offset != 0 {
		t.Errorf("derived offset = %v, want 0", rate.Offset)
	}
}

func TestDeriveUnknownFactor(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Register(&Unit{
		Symbol:    "warp",
		Dimension: "distance",
		Derive:    &Derivation{Mul: []string{"lightyear"}},
	})
	if err == nil {
		t.Fatal("derivation over an unknown factor succeeded")
	}
}

// ============================================================================
// COMPOSITION TESTS
// ============================================================================

func TestComposeCanonicalDimension(t *testing.T) {
	// length / time matches the registered speed signature.
	u, err := Compose("/", Meter, Second)
	if err != nil {
		t.Fatalf("Compose(m/s) failed: %v", err)
	}
	if u.Dimension != "speed" {
		t.Errorf("m/s dimension = %q, want speed", u.Dimension)
	}
	if u.Multiplier != 1 {
		t.Errorf("m/s multiplier = %v, want 1", u.Multiplier)
	}
	if u.Symbol != "m/s" {
		t.Errorf("m/s symbol = %q", u.Symbol)
	}

	// Scaled operands carry their ratio into the composite.
	kmh, err := Compose("/", Kilometer, Hour)
	if err != nil {
		t.Fatalf("Compose(km/h) failed: %v", err)
	}
	if kmh.Dimension != "speed" {
		t.Errorf("km/h dimension = %q, want speed", kmh.Dimension)
	}
	if kmh.Multiplier != 1000.0/3600.0 {
		t.Errorf("km/h multiplier = %v, want %v", kmh.Multiplier, 1000.0/3600.0)
	}

	// length * length matches area.
	sq, err := Compose("*", Meter, Meter)
	if err != nil {
		t.Fatalf("Compose(m*m) failed: %v", err)
	}
	if sq.Dimension != "area" {
		t.Errorf("m*m dimension = %q, want area", sq.Dimension)
	}
}

func TestComposeAnonymousDimension(t *testing.T) {
	// mass * length has no registered home; the composite gets a
	// deterministic signature-keyed dimension.
	u, err := Compose("*", Kilogram, Meter)
	if err != nil {
		t.Fatalf("Compose(kg*m) failed: %v", err)
	}
	dim := u.Dim()
	if dim == nil || !dim.Anonymous {
		t.Fatalf("kg*m dimension = %+v, want anonymous", dim)
	}
	if dim.Name != "length^1*mass^1" {
		t.Errorf("anonymous name = %q, want length^1*mass^1", dim.Name)
	}

	// Equal compositions agree on the dimension name regardless of order.
	v, err := Compose("*", Meter, Kilogram)
	if err != nil {
		t.Fatalf("Compose(m*kg) failed: %v", err)
	}
	if v.Dim().Name != dim.Name {
		t.Errorf("m*kg dimension = %q, want %q", v.Dim().Name, dim.Name)
	}
}

func TestComposeDimensionless(t *testing.T) {
	u, err := Compose("/", Meter, Kilometer)
	if err != nil {
		t.Fatalf("Compose(m/km) failed: %v", err)
	}
	dim := u.Dim()
	if dim == nil || dim.Name != "dimensionless" {
		t.Fatalf("m/km dimension = %+v, want dimensionless", dim)
	}
	if u.Multiplier != 1.0/1000.0 {
		t.Errorf("m/km multiplier = %v, want 0.001", u.Multiplier)
	}
}

func TestComposeRejectsBadOperands(t *testing.T) {
	if _, err := Compose("^", Meter, Second); err == nil {
		t.Error("unknown operator accepted")
	}
	if _, err := Compose("*", nil, Second); err == nil {
		t.Error("nil operand accepted")
	}
}

func TestSigKey(t *testing.T) {
	tests := []struct {
		sig  map[string]int
		want string
	}{
		{map[string]int{"length": 1, "time": -1}, "length^1*time^-1"},
		{map[string]int{"time": -1, "length": 1}, "length^1*time^-1"},
		{map[string]int{"mass": 1, "length": 2, "time": -2}, "length^2*mass^1*time^-2"},
		{map[string]int{}, "dimensionless"},
		{nil, "dimensionless"},
	}
	for _, tt := range tests {
		if got := SigKey(tt.sig); got != tt.want {
			t.Errorf("SigKey(%v) = %q, want %q", tt.sig, got, tt.want)
		}
	}
}

func TestComposedSpeedRoundTrip(t *testing.T) {
	// A composite built from catalog parts converts like the registered unit.
	kmh, err := Compose("/", Kilometer, Hour)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	base := 100 * kmh.Multiplier
	want := 100 * KilometerPerHour.Multiplier
	if math.Abs(base-want) > 1e-12 {
		t.Errorf("composite base %v != registered base %v", base, want)
	}
}
