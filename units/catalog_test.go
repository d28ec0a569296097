package units

import (
	"math"
	"strings"
	"testing"
)

// ============================================================================
// CATALOG TESTS
// ============================================================================

// toBase applies a unit's transform by hand: base = (mag + offset) * mult.
func toBase(t *testing.T, u *Unit, mag float64, ctx Context) float64 {
	t.Helper()
	mult, off, err := u.Effective(ctx)
	if err != nil {
		t.Fatalf("%s.Effective failed: %v", u.Symbol, err)
	}
	return (mag + off) * mult
}

func TestTemperatureToBase(t *testing.T) {
	tests := []struct {
		unit *Unit
		mag  float64
		want float64
	}{
		{Celsius, 100, 100},
		{Fahrenheit, 32, 0},
		{Fahrenheit, 212, 100},
		{Fahrenheit, -40, -40},
		{Kelvin, 273.15, 0},
		{Kelvin, 300, 26.85},
		{Rankine, 0, AbsoluteZeroC},
		{Reaumur, 80, 100},
	}
	for _, tt := range tests {
		got := toBase(t, tt.unit, tt.mag, nil)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%v %s = %v °C, want %v", tt.mag, tt.unit.Symbol, got, tt.want)
		}
	}
}

func TestFahrenheitKelvinChain(t *testing.T) {
	// 32 °F -> base 0 °C -> 273.15 K, via two effective transforms.
	base := toBase(t, Fahrenheit, 32, nil)
	mult, off, err := Kelvin.Effective(nil)
	if err != nil {
		t.Fatalf("Kelvin.Effective failed: %v", err)
	}
	k := base/mult - off
	if math.Abs(k-273.15) > 1e-9 {
		t.Errorf("32 °F = %v K, want 273.15", k)
	}
}

func TestMachScalesWithAirTemperature(t *testing.T) {
	// Without context Mach assumes the 15 °C standard atmosphere.
	mult, _, err := Mach.Effective(nil)
	if err != nil {
		t.Fatalf("Mach.Effective(nil) failed: %v", err)
	}
	if math.Abs(mult-340.27) > 0.05 {
		t.Errorf("standard-atmosphere Mach 1 = %v m/s, want ~340.27", mult)
	}

	// At 0 °C the formula collapses to the dry-air reference speed.
	mult, _, err = Mach.Effective(Context{"temp_c": 0})
	if err != nil {
		t.Fatalf("Mach.Effective(temp_c=0) failed: %v", err)
	}
	if mult != SpeedOfSound0C {
		t.Errorf("0 °C Mach 1 = %v m/s, want %v", mult, SpeedOfSound0C)
	}

	// Colder air, slower sound.
	cold, _, err := Mach.Effective(Context{"temp_c": -40.0})
	if err != nil {
		t.Fatalf("Mach.Effective(temp_c=-40) failed: %v", err)
	}
	if cold >= SpeedOfSound0C {
		t.Errorf("Mach 1 at -40 °C = %v, want below %v", cold, SpeedOfSound0C)
	}
}

func TestMonthAndYearAreJulian(t *testing.T) {
	if Year.Multiplier != 365.25*86400 {
		t.Errorf("year = %v s, want %v", Year.Multiplier, 365.25*86400)
	}
	if Month.Multiplier != (365.25*86400)/12 {
		t.Errorf("month = %v s, want %v", Month.Multiplier, (365.25*86400)/12)
	}
}

func TestDataDecimalVersusBinary(t *testing.T) {
	if Kilobyte.Multiplier != 1e3 || Kibibyte.Multiplier != 1024 {
		t.Errorf("KB = %v, KiB = %v; want 1000 and 1024", Kilobyte.Multiplier, Kibibyte.Multiplier)
	}
	if Gibibyte.Multiplier != 1024*1024*1024 {
		t.Errorf("GiB = %v, want 2^30", Gibibyte.Multiplier)
	}
	if Bit.Multiplier != 0.125 {
		t.Errorf("bit = %v B, want 0.125", Bit.Multiplier)
	}
}

func TestPressureFactors(t *testing.T) {
	if Atmosphere.Multiplier != StandardAtmospherePa {
		t.Errorf("atm = %v Pa, want %v", Atmosphere.Multiplier, StandardAtmospherePa)
	}
	if PSI.Multiplier != PsiToPa {
		t.Errorf("psi = %v Pa, want %v", PSI.Multiplier, PsiToPa)
	}
	if math.Abs(PSI.Multiplier-6894.757) > 0.001 {
		t.Errorf("psi = %v Pa, want ~6894.757", PSI.Multiplier)
	}
}

func TestEveryCatalogUnitResolvesBySymbol(t *testing.T) {
	shared := map[string]bool{"m": true, "c": true}
	for _, dim := range Dimensions() {
		for _, symbol := range UnitsIn(dim) {
			if shared[Fold(symbol)] {
				continue
			}
			u, err := Resolve(symbol)
			if err != nil {
				t.Errorf("Resolve(%q) failed: %v", symbol, err)
				continue
			}
			if !strings.EqualFold(u.Symbol, symbol) && u.Dimension != dim {
				t.Errorf("Resolve(%q) landed on %q in %q", symbol, u.Symbol, u.Dimension)
			}
		}
	}
}
