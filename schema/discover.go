package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/caliper-org/caliper/parse"
	"github.com/caliper-org/caliper/units"
)

// ============================================================================
// SCHEMA DISCOVERY — heuristic quantity detection
// ============================================================================
// Inspects a raw frame and proposes a Schema. No configuration needed for
// well-behaved tabular data.
//
// Classification pipeline per column:
//   1. Sample cells with an even stride
//   2. Count the shapes normalization understands (number+unit, bare
//      number, bare unit alias) and collect dimension votes
//   3. Columns over the quantity threshold become parse_string fields
//   4. Alias-only columns pair with a numeric column into unit_col fields
//   5. Everything unclaimed goes on the keep list, so a discovered schema
//      never loses data
// ============================================================================

const (
	// quantityShare is the fraction of sampled cells that must parse as
	// number-plus-known-unit before a column becomes a field.
	quantityShare = 0.6
	// aliasShare is the fraction of cells that must be bare unit aliases
	// before a column is treated as a per-row unit column.
	aliasShare = 0.9
	// numberShare is the fraction of cells that must be bare numbers for
	// a column to pair with a unit column.
	numberShare = 0.9
)

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	Registry   *units.Registry // alias resolution; nil = shared catalog
	SampleSize int             // max cells inspected per column. Default: 200
	Name       string          // schema name override
	Logger     *zap.Logger     // per-column verdicts at debug level
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 200,
		Name:       "discovered",
	}
}

// columnProfile is the evidence gathered from one column's sample.
type columnProfile struct {
	name      string
	sampled   int
	missing   int
	splits    int // number-plus-resolvable-unit cells
	badUnits  int // split cells whose alias no dimension knows
	numbers   int // bare-number cells
	aliasOnly int // cells that are a unit alias and nothing else
	dims      map[string]int
}

func (p *columnProfile) considered() int { return p.sampled - p.missing }

func (p *columnProfile) share(n int) float64 {
	c := p.considered()
	if c == 0 {
		return 0
	}
	return float64(n) / float64(c)
}

// topDimension returns the most voted dimension, ties broken by name so
// discovery is deterministic.
func (p *columnProfile) topDimension() (string, int) {
	names := make([]string, 0, len(p.dims))
	for d := range p.dims {
		names = append(names, d)
	}
	sort.Strings(names)
	best, votes := "", 0
	for _, d := range names {
		if p.dims[d] > votes {
			best, votes = d, p.dims[d]
		}
	}
	return best, votes
}

// Discover profiles a frame and proposes a schema: parse_string fields for
// columns of embedded quantities, unit_col fields for number columns paired
// with a unit column, and a keep entry for everything else. It fails when
// no column looks like a quantity.
func Discover(f *Frame, opts ...DiscoverOptions) (*Schema, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Registry == nil {
		opt.Registry = units.Default()
	}
	if opt.SampleSize <= 0 {
		opt.SampleSize = 200
	}
	if opt.Name == "" {
		opt.Name = "discovered"
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if f == nil || f.Rows() == 0 {
		return nil, fmt.Errorf("schema: nothing to discover in an empty frame")
	}

	// 1. Profile every text column.
	profiles := make(map[string]*columnProfile)
	for _, name := range f.Columns() {
		if cells := f.textRef(name); cells != nil {
			profiles[name] = profileColumn(name, cells, &opt)
		}
	}

	s := &Schema{Name: opt.Name}
	claimed := make(map[string]bool)

	// 2. Self-contained quantity columns.
	for _, name := range f.Columns() {
		p := profiles[name]
		if p == nil {
			continue
		}
		if p.share(p.splits) < quantityShare {
			if p.share(p.splits+p.badUnits) >= quantityShare {
				opt.Logger.Debug("column looks quantitative but its units are unknown",
					zap.String("column", name))
			}
			continue
		}
		dim, votes := p.topDimension()
		base, err := opt.Registry.BaseOf(dim)
		if err != nil {
			continue
		}
		fld := Field{
			Name:        toSnakeCase(name),
			Unit:        base.Symbol,
			Dimension:   dim,
			ParseString: true,
		}
		if fld.Name != name {
			fld.Source = name
		}
		s.Fields = append(s.Fields, fld)
		claimed[name] = true
		opt.Logger.Debug("discovered quantity column",
			zap.String("column", name),
			zap.String("dimension", dim),
			zap.String("unit", base.Symbol),
			zap.Float64("confidence", p.share(votes)))
	}

	// 3. Unit columns paired with a number column.
	for _, name := range f.Columns() {
		p := profiles[name]
		if p == nil || claimed[name] {
			continue
		}
		if p.share(p.aliasOnly) < aliasShare || len(p.dims) == 0 {
			continue
		}
		src := pairForUnitColumn(f, name, profiles, claimed)
		if src == "" {
			continue
		}
		dim, votes := p.topDimension()
		base, err := opt.Registry.BaseOf(dim)
		if err != nil {
			continue
		}
		fld := Field{
			Name:      toSnakeCase(src),
			Unit:      base.Symbol,
			Dimension: dim,
			UnitCol:   name,
		}
		if fld.Name != src {
			fld.Source = src
		}
		s.Fields = append(s.Fields, fld)
		claimed[name] = true
		claimed[src] = true
		opt.Logger.Debug("discovered unit column pair",
			zap.String("values", src),
			zap.String("units", name),
			zap.String("dimension", dim),
			zap.Float64("confidence", p.share(votes)))
	}

	if len(s.Fields) == 0 {
		return nil, fmt.Errorf("schema: no quantity columns recognized")
	}

	// 4. Keep whatever was not claimed.
	for _, name := range f.Columns() {
		if !claimed[name] {
			s.Keep = append(s.Keep, name)
		}
	}
	opt.Logger.Info("schema discovered",
		zap.Int("fields", len(s.Fields)),
		zap.Int("kept", len(s.Keep)))
	return s, nil
}

// profileColumn samples a text column with an even stride and counts the
// shapes its cells take.
func profileColumn(name string, cells []string, opt *DiscoverOptions) *columnProfile {
	p := &columnProfile{name: name, dims: make(map[string]int)}
	step := len(cells) / opt.SampleSize
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(cells); i += step {
		cell := cells[i]
		p.sampled++
		if parse.Missing(cell) {
			p.missing++
			continue
		}
		if c, ok := parse.Split(cell); ok {
			if voteDims(opt.Registry, c.Alias, p.dims) {
				p.splits++
			} else {
				p.badUnits++
			}
			continue
		}
		if _, ok := parse.Number(cell); ok {
			p.numbers++
			continue
		}
		if voteDims(opt.Registry, cell, p.dims) {
			p.aliasOnly++
		}
	}
	return p
}

// voteDims records which dimensions could own an alias. Ambiguous aliases
// vote for each of their dimensions.
func voteDims(reg *units.Registry, alias string, dims map[string]int) bool {
	u, err := reg.Resolve(alias)
	if err == nil {
		dims[u.Dim().Name]++
		return true
	}
	var ambiguous *units.AmbiguousUnitError
	if errors.As(err, &ambiguous) {
		for _, d := range ambiguous.Dimensions {
			dims[d]++
		}
		return true
	}
	return false
}

// pairForUnitColumn finds the value column a unit column describes: a
// name-linked column first ("weight_unit" pairs with "weight"), then the
// nearest earlier unclaimed numeric column.
func pairForUnitColumn(f *Frame, unitCol string, profiles map[string]*columnProfile, claimed map[string]bool) string {
	snake := toSnakeCase(unitCol)
	stem := strings.TrimSuffix(strings.TrimSuffix(snake, "_units"), "_unit")
	if stem != snake && stem != "" {
		for _, cand := range f.Columns() {
			if claimed[cand] || cand == unitCol {
				continue
			}
			if toSnakeCase(cand) == stem && numericish(f, cand, profiles) {
				return cand
			}
		}
	}
	best := ""
	for _, cand := range f.Columns() {
		if cand == unitCol {
			break
		}
		if !claimed[cand] && numericish(f, cand, profiles) {
			best = cand
		}
	}
	return best
}

// numericish accepts float columns and text columns that are nearly all
// bare numbers.
func numericish(f *Frame, name string, profiles map[string]*columnProfile) bool {
	if f.IsNumeric(name) {
		return true
	}
	p := profiles[name]
	return p != nil && p.share(p.numbers) >= numberShare
}

// toSnakeCase lowers a header to snake_case: runs of non-alphanumerics
// collapse to single underscores.
func toSnakeCase(s string) string {
	b := &strings.Builder{}
	lastUnder := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		alnum := r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		if alnum {
			b.WriteRune(r)
			lastUnder = false
			continue
		}
		if !lastUnder {
			b.WriteByte('_')
			lastUnder = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
