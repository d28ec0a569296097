package units

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// YAML CATALOG — declarative dimension/unit registration
// ============================================================================
// Domain modelers ship custom catalogs as YAML instead of Go declarations:
//
//	dimensions:
//	  - name: carbon
//	    base: tCO2e
//	    base_aliases: [tco2e, "tonnes co2e"]
//	    min: 0
//	    bound_msg: Emissions cannot be negative.
//	units:
//	  - symbol: kgCO2e
//	    dimension: carbon
//	    aliases: [kg-co2e]
//	    multiplier: 0.001
//	  - symbol: MWh-grid
//	    dimension: carbon
//	    scale_key: grid_intensity
//
// Declarations register in file order, dimensions before units, so derived
// units may reference anything declared above them.
// ============================================================================

type catalogFile struct {
	Dimensions []dimensionDecl `yaml:"dimensions"`
	Units      []unitDecl      `yaml:"units"`
}

type dimensionDecl struct {
	Name        string         `yaml:"name"`
	Base        string         `yaml:"base"`
	BaseAliases []string       `yaml:"base_aliases"`
	Signature   map[string]int `yaml:"signature"`
	Min         *float64       `yaml:"min"`
	Max         *float64       `yaml:"max"`
	BoundMsg    string         `yaml:"bound_msg"`
}

type unitDecl struct {
	Symbol       string      `yaml:"symbol"`
	Dimension    string      `yaml:"dimension"`
	Aliases      []string    `yaml:"aliases"`
	Multiplier   float64     `yaml:"multiplier"`
	Offset       float64     `yaml:"offset"`
	Shared       bool        `yaml:"shared"`
	Derive       *deriveDecl `yaml:"derive"`
	ScaleKey     string      `yaml:"scale_key"`
	ScaleDefault *float64    `yaml:"scale_default"`
	ShiftKey     string      `yaml:"shift_key"`
	ShiftDefault *float64    `yaml:"shift_default"`
	Min          *float64    `yaml:"min"`
	Max          *float64    `yaml:"max"`
	BoundMsg     string      `yaml:"bound_msg"`
}

type deriveDecl struct {
	Mul []string `yaml:"mul"`
	Div []string `yaml:"div"`
}

// CatalogOption configures catalog loading.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	registry *Registry
	logger   *zap.Logger
}

// WithRegistry loads into a specific registry instead of the default.
func WithRegistry(r *Registry) CatalogOption {
	return func(c *catalogConfig) { c.registry = r }
}

// WithLogger logs each registration through the given logger.
func WithLogger(l *zap.Logger) CatalogOption {
	return func(c *catalogConfig) { c.logger = l }
}

// LoadCatalog reads a YAML catalog and registers its declarations.
// The first bad declaration aborts the load; everything registered before
// it stays registered, consistent with load-time declaration semantics.
func LoadCatalog(r io.Reader, opts ...CatalogOption) error {
	cfg := &catalogConfig{registry: defaultRegistry, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("units: reading catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("units: parsing catalog: %w", err)
	}

	for _, decl := range file.Dimensions {
		var opts []DimensionOption
		if decl.Signature != nil {
			opts = append(opts, WithSignature(decl.Signature))
		}
		if b := boundFromDecl(decl.Min, decl.Max, decl.BoundMsg); b != nil {
			opts = append(opts, WithDimBound(b))
		}
		base := &Unit{Symbol: decl.Base, Aliases: decl.BaseAliases}
		if _, err := cfg.registry.RegisterDimension(decl.Name, base, opts...); err != nil {
			return fmt.Errorf("units: catalog dimension %q: %w", decl.Name, err)
		}
		cfg.logger.Debug("registered dimension",
			zap.String("dim", decl.Name),
			zap.String("base", decl.Base))
	}

	for _, decl := range file.Units {
		u := &Unit{
			Symbol:     decl.Symbol,
			Dimension:  decl.Dimension,
			Aliases:    decl.Aliases,
			Multiplier: decl.Multiplier,
			Offset:     decl.Offset,
			Shared:     decl.Shared,
			Bound:      boundFromDecl(decl.Min, decl.Max, decl.BoundMsg),
		}
		if decl.Derive != nil {
			u.Derive = &Derivation{Mul: decl.Derive.Mul, Div: decl.Derive.Div}
		}
		if decl.ScaleKey != "" {
			if decl.ScaleDefault != nil {
				u.Scale = KeyOr(decl.ScaleKey, *decl.ScaleDefault)
			} else {
				u.Scale = Key(decl.ScaleKey)
			}
		}
		if decl.ShiftKey != "" {
			if decl.ShiftDefault != nil {
				u.Shift = KeyOr(decl.ShiftKey, *decl.ShiftDefault)
			} else {
				u.Shift = Key(decl.ShiftKey)
			}
		}
		if _, err := cfg.registry.Register(u); err != nil {
			return fmt.Errorf("units: catalog unit %q: %w", decl.Symbol, err)
		}
		cfg.logger.Debug("registered unit",
			zap.String("symbol", decl.Symbol),
			zap.String("dim", decl.Dimension))
	}

	cfg.logger.Info("catalog loaded",
		zap.Int("dimensions", len(file.Dimensions)),
		zap.Int("units", len(file.Units)))
	return nil
}

// boundFromDecl builds a Bound from optional min/max fields.
func boundFromDecl(min, max *float64, msg string) *Bound {
	if min == nil && max == nil {
		return nil
	}
	b := &Bound{Min: math.Inf(-1), Max: math.Inf(1), Msg: msg}
	if min != nil {
		b.Min = *min
	}
	if max != nil {
		b.Max = *max
	}
	return b
}
