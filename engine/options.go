package engine

import "github.com/caliper-org/caliper/units"

// ============================================================================
// ENGINE OPTIONS — Functional options for Construct() and To()
// ============================================================================

// Option configures quantity construction via functional options pattern.
type Option func(*config)

type config struct {
	Registry  *units.Registry
	Context   units.Context
	Dimension string // resolve hint for ambiguous aliases
}

// WithContext supplies context entries for axiom formulas (lazy lookups,
// context-dependent multipliers). On To() the entries merge over the
// source quantity's context, new keys winning.
func WithContext(ctx units.Context) Option {
	return func(c *config) {
		if c.Context == nil {
			c.Context = units.Context{}
		}
		for k, v := range ctx {
			c.Context[k] = v
		}
	}
}

// WithValue sets a single context entry.
func WithValue(key string, value any) Option {
	return func(c *config) {
		if c.Context == nil {
			c.Context = units.Context{}
		}
		c.Context[key] = value
	}
}

// WithRegistry resolves units against a specific registry instead of the
// shared default.
func WithRegistry(r *units.Registry) Option {
	return func(c *config) { c.Registry = r }
}

// WithDimension disambiguates alias resolution when one name lives in
// several dimensions ("m" is meters and months).
func WithDimension(name string) Option {
	return func(c *config) { c.Dimension = name }
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Registry: units.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ============================================================================
// FORMAT OPTIONS
// ============================================================================

// FormatOption configures Quantity.Format output.
type FormatOption func(*formatConfig)

type formatConfig struct {
	Precision  int    // decimal places; -1 leaves the value untouched
	SigFigs    int    // significant figures; 0 disables
	Scientific bool   // scientific notation
	Delimiter  string // thousands separator for the integer part
	BareNumber bool   // omit the unit symbol
}

// Precision formats with a fixed number of decimal places.
func Precision(places int) FormatOption {
	return func(c *formatConfig) { c.Precision = places }
}

// SigFigs formats with a number of significant figures.
func SigFigs(n int) FormatOption {
	return func(c *formatConfig) { c.SigFigs = n }
}

// Scientific formats in scientific notation.
func Scientific() FormatOption {
	return func(c *formatConfig) { c.Scientific = true }
}

// Delimiter groups the integer part in threes with the given separator.
func Delimiter(sep string) FormatOption {
	return func(c *formatConfig) { c.Delimiter = sep }
}

// BareNumber drops the unit symbol from the formatted string.
func BareNumber() FormatOption {
	return func(c *formatConfig) { c.BareNumber = true }
}

func applyFormatOptions(opts []FormatOption) *formatConfig {
	cfg := &formatConfig{Precision: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
