package units

import "sort"

// ============================================================================
// CONSTANTS — physical constants and exact conversion factors
// ============================================================================
// Single source for every factor the built-in catalog uses, so no magic
// numbers hide inside unit declarations. Values marked exact are fixed by
// international agreement.
// ============================================================================

const (
	// Thermodynamics
	ZeroCelsiusK     = 273.15 // K, exact
	StandardAtmTempK = 288.15 // K (15 °C)
	AbsoluteZeroC    = -ZeroCelsiusK
	FahrenheitOffset = 32.0              // °F at 0 °C
	RankineOffset    = ZeroCelsiusK * 1.8 // 491.67 °R, exact

	// Mechanics
	StandardGravity = 9.80665     // m/s², exact
	SpeedOfLight    = 299792458.0 // m/s, exact
	SpeedOfSound0C  = 331.3       // m/s, dry air at 0 °C

	// Length → meter, exact
	InchToMeter         = 0.0254
	FootToMeter         = 0.3048
	YardToMeter         = FootToMeter * 3
	MileToMeter         = 1609.344
	NauticalMileToMeter = 1852.0
	AstronomicalUnitM   = 149597870700.0
	LightYearToMeter    = 9460730472580800.0
	ParsecToMeter       = 3.085677581491367e16

	// Mass → kilogram
	PoundToKg    = 0.45359237 // exact
	OunceToKg    = PoundToKg / 16
	TroyOunceKg  = 0.0311034768
	StoneToKg    = PoundToKg * 14
	SlugToKg     = 14.5939029372
	ShortTonToKg = PoundToKg * 2000
	LongTonToKg  = PoundToKg * 2240
	CaratToKg    = 0.0002
	GrainToKg    = 0.00006479891

	// Pressure → pascal
	StandardAtmospherePa = 101325.0 // exact
	PsiToPa              = PoundToKg * StandardGravity / (InchToMeter * InchToMeter)
	TorrToPa             = StandardAtmospherePa / 760
	InHgToPa             = 3386.389

	// Volume → cubic meter, exact
	LiterToCubicMeter    = 0.001
	USGallonToCubicMeter = 0.003785411784
	UKGallonToCubicMeter = 0.00454609

	// Area → square meter
	HectareToSqMeter = 10000.0
	AreToSqMeter     = 100.0
	AcreToSqMeter    = 43560 * FootToMeter * FootToMeter

	// Time → second, exact; the Julian year is defined as 365.25 days
	MinuteToSecond      = 60.0
	HourToSecond        = MinuteToSecond * 60
	DayToSecond         = HourToSecond * 24
	WeekToSecond        = DayToSecond * 7
	JulianYearToSecond  = DayToSecond * 365.25
	JulianMonthToSecond = JulianYearToSecond / 12

	// Energy → joule
	CalorieToJoule      = 4.184 // thermochemical, exact
	BTUToJoule          = 1055.05585262
	WattHourToJoule     = 3600.0
	ElectronVoltToJoule = 1.602176634e-19 // exact

	// Data → byte
	BytesPerBit = 1.0 / 8
	IECBase     = 1024.0
)

// constantTable backs the by-name lookup surface.
var constantTable = map[string]float64{
	"zero_celsius_k":           ZeroCelsiusK,
	"standard_atm_temp_k":      StandardAtmTempK,
	"absolute_zero_c":          AbsoluteZeroC,
	"fahrenheit_offset":        FahrenheitOffset,
	"rankine_offset":           RankineOffset,
	"standard_gravity":         StandardGravity,
	"speed_of_light":           SpeedOfLight,
	"speed_of_sound_0c":        SpeedOfSound0C,
	"inch_to_meter":            InchToMeter,
	"foot_to_meter":            FootToMeter,
	"yard_to_meter":            YardToMeter,
	"mile_to_meter":            MileToMeter,
	"nautical_mile_to_meter":   NauticalMileToMeter,
	"astronomical_unit_m":      AstronomicalUnitM,
	"light_year_to_meter":      LightYearToMeter,
	"parsec_to_meter":          ParsecToMeter,
	"pound_to_kg":              PoundToKg,
	"ounce_to_kg":              OunceToKg,
	"troy_ounce_kg":            TroyOunceKg,
	"stone_to_kg":              StoneToKg,
	"slug_to_kg":               SlugToKg,
	"short_ton_to_kg":          ShortTonToKg,
	"long_ton_to_kg":           LongTonToKg,
	"carat_to_kg":              CaratToKg,
	"grain_to_kg":              GrainToKg,
	"standard_atmosphere_pa":   StandardAtmospherePa,
	"psi_to_pa":                PsiToPa,
	"torr_to_pa":               TorrToPa,
	"inhg_to_pa":               InHgToPa,
	"liter_to_cubic_meter":     LiterToCubicMeter,
	"us_gallon_to_cubic_meter": USGallonToCubicMeter,
	"uk_gallon_to_cubic_meter": UKGallonToCubicMeter,
	"hectare_to_sq_meter":      HectareToSqMeter,
	"are_to_sq_meter":          AreToSqMeter,
	"acre_to_sq_meter":         AcreToSqMeter,
	"minute_to_second":         MinuteToSecond,
	"hour_to_second":           HourToSecond,
	"day_to_second":            DayToSecond,
	"week_to_second":           WeekToSecond,
	"julian_year_to_second":    JulianYearToSecond,
	"julian_month_to_second":   JulianMonthToSecond,
	"calorie_to_joule":         CalorieToJoule,
	"btu_to_joule":             BTUToJoule,
	"watt_hour_to_joule":       WattHourToJoule,
	"electron_volt_to_joule":   ElectronVoltToJoule,
	"bytes_per_bit":            BytesPerBit,
	"iec_base":                 IECBase,
}

// Constant looks a constant up by its snake_case name.
func Constant(name string) (float64, bool) {
	v, ok := constantTable[Fold(name)]
	return v, ok
}

// ConstantNames returns every lookup name, sorted.
func ConstantNames() []string {
	out := make([]string, 0, len(constantTable))
	for name := range constantTable {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
