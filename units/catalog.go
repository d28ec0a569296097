package units

import "math"

// ============================================================================
// BUILT-IN CATALOG — dimensions and units registered at package load
// ============================================================================
// Every entry is a package-level declaration whose initializer registers it,
// so importing this package populates the default registry exactly once.
// Multipliers come from the constants table; no factor appears inline.
//
// Declaration order matters twice: a dimension precedes its units, and a
// unit derived from other units (km/h from km and h) precedes nothing it
// needs. Shared marks the genuine cross-dimension collisions: "m" is meter
// and month, "c" is Celsius and the speed of light.
// ============================================================================

// ============================================================================
// MASS — base: kilogram
// ============================================================================

var (
	Kilogram = &Unit{Symbol: "kg", Aliases: []string{"kilogram", "kilograms", "kgs"}}
	_        = MustRegisterDimension("mass", Kilogram,
		WithDimBound(BoundMin(0, "Mass cannot be negative.")))

	Gram      = MustRegister(&Unit{Symbol: "g", Dimension: "mass", Multiplier: 1e-3, Aliases: []string{"gram", "grams", "gm"}})
	Milligram = MustRegister(&Unit{Symbol: "mg", Dimension: "mass", Multiplier: 1e-6, Aliases: []string{"milligram", "milligrams"}})
	Tonne     = MustRegister(&Unit{Symbol: "t", Dimension: "mass", Multiplier: 1000, Aliases: []string{"tonne", "tonnes", "metric ton"}})
	Pound     = MustRegister(&Unit{Symbol: "lb", Dimension: "mass", Multiplier: PoundToKg, Aliases: []string{"lbs", "pound", "pounds"}})
	Ounce     = MustRegister(&Unit{Symbol: "oz", Dimension: "mass", Multiplier: OunceToKg, Aliases: []string{"ounce", "ounces"}})
	TroyOunce = MustRegister(&Unit{Symbol: "ozt", Dimension: "mass", Multiplier: TroyOunceKg, Aliases: []string{"troy ounce", "troy oz"}})
	Stone     = MustRegister(&Unit{Symbol: "st", Dimension: "mass", Multiplier: StoneToKg, Aliases: []string{"stone", "stones"}})
	Slug      = MustRegister(&Unit{Symbol: "slug", Dimension: "mass", Multiplier: SlugToKg, Aliases: []string{"slugs"}})
	ShortTon  = MustRegister(&Unit{Symbol: "ton", Dimension: "mass", Multiplier: ShortTonToKg, Aliases: []string{"short ton", "us ton"}})
	LongTon   = MustRegister(&Unit{Symbol: "lt", Dimension: "mass", Multiplier: LongTonToKg, Aliases: []string{"long ton", "uk ton"}})
	Carat     = MustRegister(&Unit{Symbol: "ct", Dimension: "mass", Multiplier: CaratToKg, Aliases: []string{"carat", "carats"}})
	Grain     = MustRegister(&Unit{Symbol: "gr", Dimension: "mass", Multiplier: GrainToKg, Aliases: []string{"grain", "grains"}})
)

// ============================================================================
// LENGTH — base: meter
// ============================================================================

var (
	Meter = &Unit{Symbol: "m", Aliases: []string{"meter", "metre", "meters", "metres"}}
	_     = MustRegisterDimension("length", Meter,
		WithDimBound(BoundMin(0, "Length cannot be negative.")))

	Kilometer    = MustRegister(&Unit{Symbol: "km", Dimension: "length", Multiplier: 1000, Aliases: []string{"kilometer", "kilometre", "kilometers"}})
	Centimeter   = MustRegister(&Unit{Symbol: "cm", Dimension: "length", Multiplier: 0.01, Aliases: []string{"centimeter", "centimetre", "centimeters"}})
	Millimeter   = MustRegister(&Unit{Symbol: "mm", Dimension: "length", Multiplier: 1e-3, Aliases: []string{"millimeter", "millimetre", "millimeters"}})
	Inch         = MustRegister(&Unit{Symbol: "in", Dimension: "length", Multiplier: InchToMeter, Aliases: []string{"inch", "inches"}})
	Foot         = MustRegister(&Unit{Symbol: "ft", Dimension: "length", Multiplier: FootToMeter, Aliases: []string{"foot", "feet"}})
	Yard         = MustRegister(&Unit{Symbol: "yd", Dimension: "length", Multiplier: YardToMeter, Aliases: []string{"yard", "yards"}})
	Mile         = MustRegister(&Unit{Symbol: "mi", Dimension: "length", Multiplier: MileToMeter, Aliases: []string{"mile", "miles"}})
	NauticalMile = MustRegister(&Unit{Symbol: "nmi", Dimension: "length", Multiplier: NauticalMileToMeter, Aliases: []string{"nautical mile", "nautical miles"}})
	Astronomical = MustRegister(&Unit{Symbol: "au", Dimension: "length", Multiplier: AstronomicalUnitM, Aliases: []string{"astronomical unit"}})
	LightYear    = MustRegister(&Unit{Symbol: "ly", Dimension: "length", Multiplier: LightYearToMeter, Aliases: []string{"light year", "lightyear"}})
	Parsec       = MustRegister(&Unit{Symbol: "pc", Dimension: "length", Multiplier: ParsecToMeter, Aliases: []string{"parsec", "parsecs"}})
)

// ============================================================================
// TIME — base: second
// ============================================================================

var (
	Second = &Unit{Symbol: "s", Aliases: []string{"second", "seconds", "sec", "secs"}}
	_      = MustRegisterDimension("time", Second,
		WithDimBound(BoundMin(0, "Elapsed time duration cannot be negative.")))

	Millisecond = MustRegister(&Unit{Symbol: "ms", Dimension: "time", Multiplier: 1e-3, Aliases: []string{"millisecond", "milliseconds"}})
	Minute      = MustRegister(&Unit{Symbol: "min", Dimension: "time", Multiplier: MinuteToSecond, Aliases: []string{"minute", "minutes"}})
	Hour        = MustRegister(&Unit{Symbol: "h", Dimension: "time", Multiplier: HourToSecond, Aliases: []string{"hour", "hours", "hr", "hrs"}})
	Day         = MustRegister(&Unit{Symbol: "d", Dimension: "time", Multiplier: DayToSecond, Aliases: []string{"day", "days"}})
	Week        = MustRegister(&Unit{Symbol: "wk", Dimension: "time", Multiplier: WeekToSecond, Aliases: []string{"week", "weeks"}})
	Month       = MustRegister(&Unit{Symbol: "mo", Dimension: "time", Multiplier: JulianMonthToSecond, Aliases: []string{"m", "month", "months"}, Shared: true})
	Year        = MustRegister(&Unit{Symbol: "yr", Dimension: "time", Multiplier: JulianYearToSecond, Aliases: []string{"year", "years", "y"}})
	Decade      = MustRegister(&Unit{Symbol: "decade", Dimension: "time", Multiplier: JulianYearToSecond * 10, Aliases: []string{"decades"}})
	Century     = MustRegister(&Unit{Symbol: "century", Dimension: "time", Multiplier: JulianYearToSecond * 100, Aliases: []string{"centuries"}})
	Millennium  = MustRegister(&Unit{Symbol: "millennium", Dimension: "time", Multiplier: JulianYearToSecond * 1000, Aliases: []string{"millennia", "millenniums"}})
)

// ============================================================================
// TEMPERATURE — base: degree Celsius
// ============================================================================
// Celsius anchors the dimension, so the other scales express themselves as
// (value + offset) * multiplier into °C. The absolute-zero bound sits on the
// dimension in base space and therefore covers every scale at once.
// ============================================================================

var (
	Celsius = &Unit{Symbol: "°C", Aliases: []string{"C", "celsius", "degC"}}
	_       = MustRegisterDimension("temperature", Celsius,
		WithDimBound(BoundMin(AbsoluteZeroC, "Temperature below absolute zero is not physical.")))

	Kelvin     = MustRegister(&Unit{Symbol: "K", Dimension: "temperature", Offset: AbsoluteZeroC, Multiplier: 1, Aliases: []string{"kelvin", "kelvins"}})
	Fahrenheit = MustRegister(&Unit{Symbol: "°F", Dimension: "temperature", Offset: -FahrenheitOffset, Multiplier: 5.0 / 9.0, Aliases: []string{"F", "fahrenheit", "degF"}})
	Rankine    = MustRegister(&Unit{Symbol: "°R", Dimension: "temperature", Offset: -RankineOffset, Multiplier: 5.0 / 9.0, Aliases: []string{"R", "rankine", "degR"}})
	Reaumur    = MustRegister(&Unit{Symbol: "°Ré", Dimension: "temperature", Multiplier: 1.25, Aliases: []string{"Re", "reaumur", "réaumur", "degRe"}})
)

// ============================================================================
// SPEED — base: meter per second
// ============================================================================

var (
	MeterPerSecond = &Unit{Symbol: "m/s", Aliases: []string{"mps", "meter per second", "meters per second"}}
	_              = MustRegisterDimension("speed", MeterPerSecond,
		WithSignature(map[string]int{"length": 1, "time": -1}),
		WithDimBound(BoundMin(0, "Speed cannot be negative.")))

	KilometerPerHour = MustRegister(&Unit{Symbol: "km/h", Dimension: "speed", Derive: &Derivation{Mul: []string{"km"}, Div: []string{"h"}}, Aliases: []string{"kph", "kmh", "kilometers per hour"}})
	MilePerHour      = MustRegister(&Unit{Symbol: "mph", Dimension: "speed", Derive: &Derivation{Mul: []string{"mi"}, Div: []string{"h"}}, Aliases: []string{"miles per hour"}})
	Knot             = MustRegister(&Unit{Symbol: "kn", Dimension: "speed", Derive: &Derivation{Mul: []string{"nmi"}, Div: []string{"h"}}, Aliases: []string{"knot", "knots", "kt"}})
	FootPerSecond    = MustRegister(&Unit{Symbol: "ft/s", Dimension: "speed", Derive: &Derivation{Mul: []string{"ft"}, Div: []string{"sec"}}, Aliases: []string{"fps", "feet per second"}})
	LightSpeed       = MustRegister(&Unit{Symbol: "c", Dimension: "speed", Multiplier: SpeedOfLight, Aliases: []string{"lightspeed", "light speed"}, Shared: true})

	// Mach rescales with local air temperature; without context it assumes
	// the ICAO standard atmosphere.
	Mach = MustRegister(&Unit{Symbol: "Ma", Dimension: "speed", Aliases: []string{"mach"}, Scale: Func(func(ctx Context) float64 {
		t, ok := ctx.Number("temp_c")
		if !ok {
			t = StandardAtmTempK - ZeroCelsiusK
		}
		return SpeedOfSound0C * math.Sqrt(1+t/ZeroCelsiusK)
	})})
)

// ============================================================================
// AREA — base: square meter
// ============================================================================

var (
	SquareMeter = &Unit{Symbol: "m²", Aliases: []string{"m2", "sqm", "square meter", "square meters"}}
	_           = MustRegisterDimension("area", SquareMeter,
		WithSignature(map[string]int{"length": 2}),
		WithDimBound(BoundMin(0, "Area cannot be negative.")))

	SquareKilometer = MustRegister(&Unit{Symbol: "km²", Dimension: "area", Multiplier: 1e6, Aliases: []string{"km2", "square kilometer"}})
	SquareFoot      = MustRegister(&Unit{Symbol: "ft²", Dimension: "area", Multiplier: FootToMeter * FootToMeter, Aliases: []string{"ft2", "sq ft", "square feet"}})
	Hectare         = MustRegister(&Unit{Symbol: "ha", Dimension: "area", Multiplier: HectareToSqMeter, Aliases: []string{"hectare", "hectares"}})
	Are             = MustRegister(&Unit{Symbol: "a", Dimension: "area", Multiplier: AreToSqMeter, Aliases: []string{"are", "ares"}})
	Acre            = MustRegister(&Unit{Symbol: "acre", Dimension: "area", Multiplier: AcreToSqMeter, Aliases: []string{"acres"}})
)

// ============================================================================
// VOLUME — base: cubic meter
// ============================================================================

var (
	CubicMeter = &Unit{Symbol: "m³", Aliases: []string{"m3", "cubic meter", "cubic meters"}}
	_          = MustRegisterDimension("volume", CubicMeter,
		WithSignature(map[string]int{"length": 3}),
		WithDimBound(BoundMin(0, "Volume cannot be negative.")))

	Liter      = MustRegister(&Unit{Symbol: "L", Dimension: "volume", Multiplier: LiterToCubicMeter, Aliases: []string{"liter", "litre", "liters", "litres"}})
	Milliliter = MustRegister(&Unit{Symbol: "mL", Dimension: "volume", Multiplier: LiterToCubicMeter / 1000, Aliases: []string{"milliliter", "millilitre"}})
	USGallon   = MustRegister(&Unit{Symbol: "gal", Dimension: "volume", Multiplier: USGallonToCubicMeter, Aliases: []string{"gallon", "gallons", "us gallon"}})
	UKGallon   = MustRegister(&Unit{Symbol: "gal-uk", Dimension: "volume", Multiplier: UKGallonToCubicMeter, Aliases: []string{"imperial gallon", "uk gallon"}})
	CubicFoot  = MustRegister(&Unit{Symbol: "ft³", Dimension: "volume", Multiplier: FootToMeter * FootToMeter * FootToMeter, Aliases: []string{"ft3", "cubic foot", "cubic feet"}})
)

// ============================================================================
// PRESSURE — base: pascal
// ============================================================================

var (
	Pascal = &Unit{Symbol: "Pa", Aliases: []string{"pascal", "pascals"}}
	_      = MustRegisterDimension("pressure", Pascal,
		WithSignature(map[string]int{"mass": 1, "length": -1, "time": -2}),
		WithDimBound(BoundMin(0, "Absolute pressure cannot be negative.")))

	Kilopascal    = MustRegister(&Unit{Symbol: "kPa", Dimension: "pressure", Multiplier: 1000, Aliases: []string{"kilopascal"}})
	Bar           = MustRegister(&Unit{Symbol: "bar", Dimension: "pressure", Multiplier: 1e5, Aliases: []string{"bars"}})
	Atmosphere    = MustRegister(&Unit{Symbol: "atm", Dimension: "pressure", Multiplier: StandardAtmospherePa, Aliases: []string{"atmosphere", "atmospheres"}})
	PSI           = MustRegister(&Unit{Symbol: "psi", Dimension: "pressure", Multiplier: PsiToPa})
	Torr          = MustRegister(&Unit{Symbol: "Torr", Dimension: "pressure", Multiplier: TorrToPa})
	InchOfMercury = MustRegister(&Unit{Symbol: "inHg", Dimension: "pressure", Multiplier: InHgToPa, Aliases: []string{"inches of mercury"}})
)

// ============================================================================
// ENERGY — base: joule
// ============================================================================
// Unbounded: potential energies go negative.
// ============================================================================

var (
	Joule = &Unit{Symbol: "J", Aliases: []string{"joule", "joules"}}
	_     = MustRegisterDimension("energy", Joule,
		WithSignature(map[string]int{"mass": 1, "length": 2, "time": -2}))

	Kilojoule    = MustRegister(&Unit{Symbol: "kJ", Dimension: "energy", Multiplier: 1000, Aliases: []string{"kilojoule", "kilojoules"}})
	WattHour     = MustRegister(&Unit{Symbol: "Wh", Dimension: "energy", Multiplier: WattHourToJoule, Aliases: []string{"watt hour", "watt-hour"}})
	KilowattHour = MustRegister(&Unit{Symbol: "kWh", Dimension: "energy", Multiplier: WattHourToJoule * 1000, Aliases: []string{"kilowatt hour", "kilowatt-hour"}})
	Calorie      = MustRegister(&Unit{Symbol: "cal", Dimension: "energy", Multiplier: CalorieToJoule, Aliases: []string{"calorie", "calories"}})
	Kilocalorie  = MustRegister(&Unit{Symbol: "kcal", Dimension: "energy", Multiplier: CalorieToJoule * 1000, Aliases: []string{"kilocalorie", "kilocalories"}})
	BTU          = MustRegister(&Unit{Symbol: "BTU", Dimension: "energy", Multiplier: BTUToJoule, Aliases: []string{"british thermal unit"}})
	ElectronVolt = MustRegister(&Unit{Symbol: "eV", Dimension: "energy", Multiplier: ElectronVoltToJoule, Aliases: []string{"electronvolt", "electron volt"}})
)

// ============================================================================
// DATA — base: byte
// ============================================================================

var (
	Byte = &Unit{Symbol: "B", Aliases: []string{"byte", "bytes"}}
	_    = MustRegisterDimension("data", Byte,
		WithDimBound(BoundMin(0, "Data size cannot be negative.")))

	Bit      = MustRegister(&Unit{Symbol: "bit", Dimension: "data", Multiplier: BytesPerBit, Aliases: []string{"bits"}})
	Kilobyte = MustRegister(&Unit{Symbol: "KB", Dimension: "data", Multiplier: 1e3, Aliases: []string{"kilobyte", "kilobytes"}})
	Megabyte = MustRegister(&Unit{Symbol: "MB", Dimension: "data", Multiplier: 1e6, Aliases: []string{"megabyte", "megabytes"}})
	Gigabyte = MustRegister(&Unit{Symbol: "GB", Dimension: "data", Multiplier: 1e9, Aliases: []string{"gigabyte", "gigabytes"}})
	Terabyte = MustRegister(&Unit{Symbol: "TB", Dimension: "data", Multiplier: 1e12, Aliases: []string{"terabyte", "terabytes"}})
	Kibibyte = MustRegister(&Unit{Symbol: "KiB", Dimension: "data", Multiplier: IECBase, Aliases: []string{"kibibyte"}})
	Mebibyte = MustRegister(&Unit{Symbol: "MiB", Dimension: "data", Multiplier: IECBase * IECBase, Aliases: []string{"mebibyte"}})
	Gibibyte = MustRegister(&Unit{Symbol: "GiB", Dimension: "data", Multiplier: IECBase * IECBase * IECBase, Aliases: []string{"gibibyte"}})
)
