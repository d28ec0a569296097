// Package caliper converts physical quantities between units.
//
// Usage:
//
//	import "github.com/caliper-org/caliper"
//
//	lbs, err := caliper.Convert(680.39, "kg").To("lbs").Float()
//	out, err := caliper.Convert(680.39, "kg").To("lbs").Precision(2).Tag().Resolve()
//
// The chain is sugar over the engine package: it resolves the aliases,
// constructs a quantity, converts it, and formats the result. Everything
// heavier lives below it: the units package holds the catalog and
// registry, engine does the dimensional algebra, and schema normalizes
// whole tabular columns at once.
package caliper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/caliper-org/caliper/engine"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// FLUENT CONVERSION BUILDER
// ============================================================================

type outputStyle int

const (
	styleRaw outputStyle = iota
	styleTagged
	styleVerbose
)

// Conversion is a lazily evaluated one-off conversion. Nothing resolves
// until a terminal method (Float, Resolve, Must) runs, so a half-built
// chain is free to construct.
type Conversion struct {
	value  any
	from   string
	target string
	reg    *units.Registry
	ctx    units.Context

	mode    string
	prec    int
	sigfigs int
	sci     bool
	delim   string
	style   outputStyle
}

// Convert starts a conversion chain from a magnitude and a source unit
// alias. The magnitude may be a float64, an int, a decimal.Decimal, or a
// []float64 vector.
func Convert(value any, from string) *Conversion {
	return &Conversion{
		value: value,
		from:  from,
		mode:  "float64",
		prec:  -1,
	}
}

// To sets the target unit alias.
func (c *Conversion) To(alias string) *Conversion {
	c.target = alias
	return c
}

// WithContext merges entries into the conversion context. Formula units
// such as Mach read their parameters from it.
func (c *Conversion) WithContext(ctx units.Context) *Conversion {
	if c.ctx == nil {
		c.ctx = units.Context{}
	}
	for k, v := range ctx {
		c.ctx[k] = v
	}
	return c
}

// WithRegistry resolves aliases against a specific registry instead of
// the shared default.
func (c *Conversion) WithRegistry(reg *units.Registry) *Conversion {
	c.reg = reg
	return c
}

// Mode selects the arithmetic representation, "float64" or "decimal".
// Decimal mode carries the magnitude as an arbitrary-precision decimal
// through the conversion, which keeps long display strings free of
// float artifacts.
func (c *Conversion) Mode(mode string) *Conversion {
	c.mode = strings.ToLower(strings.TrimSpace(mode))
	return c
}

// Precision fixes the number of decimal places in formatted output.
func (c *Conversion) Precision(places int) *Conversion {
	c.prec = places
	return c
}

// SigFigs formats with a number of significant figures.
func (c *Conversion) SigFigs(n int) *Conversion {
	c.sigfigs = n
	return c
}

// SciNote formats in scientific notation.
func (c *Conversion) SciNote() *Conversion {
	c.sci = true
	return c
}

// Delim groups the integer part in threes. The default separator is a
// comma; pass one argument to override it.
func (c *Conversion) Delim(sep ...string) *Conversion {
	c.delim = ","
	if len(sep) > 0 {
		c.delim = sep[0]
	}
	return c
}

// Tag appends the target unit symbol to the formatted value.
func (c *Conversion) Tag() *Conversion {
	c.style = styleTagged
	return c
}

// Verbose formats the whole equation, "1.5 km = 1500 m".
func (c *Conversion) Verbose() *Conversion {
	c.style = styleVerbose
	return c
}

// run resolves, constructs, and converts. All terminals funnel through it.
func (c *Conversion) run() (*engine.Quantity, *engine.Quantity, error) {
	if c.target == "" {
		return nil, nil, fmt.Errorf("caliper: no target unit, call To before resolving")
	}
	value := c.value
	switch c.mode {
	case "float64", "float", "":
	case "decimal", "dec":
		value = decimalValue(value)
	default:
		return nil, nil, fmt.Errorf("caliper: unknown mode %q, use \"decimal\" or \"float64\"", c.mode)
	}

	opts := []engine.Option{engine.WithContext(c.ctx)}
	if c.reg != nil {
		opts = append(opts, engine.WithRegistry(c.reg))
	}
	q, err := engine.Construct(value, c.from, opts...)
	if err != nil {
		return nil, nil, err
	}
	out, err := q.To(c.target)
	if err != nil {
		return nil, nil, err
	}
	return q, out, nil
}

// decimalValue lifts float and int magnitudes into decimals. Anything
// else passes through for the engine to judge.
func decimalValue(value any) any {
	switch t := value.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case float32:
		return decimal.NewFromFloat32(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	default:
		return value
	}
}

// Float runs the conversion and returns the target-unit magnitude.
func (c *Conversion) Float() (float64, error) {
	_, out, err := c.run()
	if err != nil {
		return 0, err
	}
	return out.Float64(), nil
}

// Resolve runs the conversion and returns the formatted result. The
// default is the bare number; Tag and Verbose add unit symbols.
func (c *Conversion) Resolve() (string, error) {
	src, out, err := c.run()
	if err != nil {
		return "", err
	}

	fopts := c.formatOptions()
	switch c.style {
	case styleVerbose:
		in := src.Format(engine.Delimiter(c.delim))
		return in + " = " + out.Format(fopts...), nil
	case styleTagged:
		return out.Format(fopts...), nil
	default:
		return out.Format(append(fopts, engine.BareNumber())...), nil
	}
}

// Must is Resolve that panics on error.
func (c *Conversion) Must() string {
	s, err := c.Resolve()
	if err != nil {
		panic(err)
	}
	return s
}

// MustFloat is Float that panics on error.
func (c *Conversion) MustFloat() float64 {
	f, err := c.Float()
	if err != nil {
		panic(err)
	}
	return f
}

func (c *Conversion) formatOptions() []engine.FormatOption {
	var opts []engine.FormatOption
	if c.prec >= 0 {
		opts = append(opts, engine.Precision(c.prec))
	}
	if c.sigfigs > 0 {
		opts = append(opts, engine.SigFigs(c.sigfigs))
	}
	if c.sci {
		opts = append(opts, engine.Scientific())
	}
	if c.delim != "" {
		opts = append(opts, engine.Delimiter(c.delim))
	}
	return opts
}

// ============================================================================
// FLEX — natural-language duration breakdown
// ============================================================================

// flexStep is one rung of the duration ladder, largest first.
type flexStep struct {
	name   string
	plural string
	span   float64 // seconds
}

var flexLadder = []flexStep{
	{"millennium", "millennia", units.JulianYearToSecond * 1000},
	{"century", "centuries", units.JulianYearToSecond * 100},
	{"decade", "decades", units.JulianYearToSecond * 10},
	{"year", "years", units.JulianYearToSecond},
	{"month", "months", units.JulianMonthToSecond},
	{"week", "weeks", units.WeekToSecond},
	{"day", "days", units.DayToSecond},
	{"hour", "hours", units.HourToSecond},
	{"minute", "minutes", units.MinuteToSecond},
	{"second", "seconds", 1},
}

// flexEpsilon stops the walk once the remainder is noise.
const flexEpsilon = 1e-4

// Flex renders a duration in seconds as a natural-language breakdown,
// "1 year 2 months 5 days". largest and smallest bound the units used;
// either may be empty for no bound. With smallest set, anything below it
// is dropped.
func Flex(seconds float64, largest, smallest string) (string, error) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("caliper: cannot break down duration %v", seconds)
	}

	start, end := 0, len(flexLadder)-1
	var err error
	if largest != "" {
		if start, err = flexIndex(largest); err != nil {
			return "", err
		}
	}
	if smallest != "" {
		if end, err = flexIndex(smallest); err != nil {
			return "", err
		}
	}
	if start > end {
		return "", fmt.Errorf("caliper: flex range %q to %q is inverted", largest, smallest)
	}

	remaining := seconds
	var parts []string
	for _, step := range flexLadder[start : end+1] {
		count := math.Floor(remaining / step.span)
		if count >= 1 {
			name := step.name
			if count > 1 {
				name = step.plural
			}
			parts = append(parts, groupInt(int64(count))+" "+name)
			remaining -= count * step.span
		}
		if remaining < flexEpsilon {
			break
		}
	}
	if len(parts) == 0 {
		return "0 seconds", nil
	}
	return strings.Join(parts, " "), nil
}

func flexIndex(name string) (int, error) {
	folded := units.Fold(name)
	for i, step := range flexLadder {
		if step.name == folded || step.plural == folded {
			return i, nil
		}
	}
	return 0, fmt.Errorf("caliper: %q is not a duration unit, use millennium through second", name)
}

// groupInt renders a non-negative integer with comma separators.
func groupInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
