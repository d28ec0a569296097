package units

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// ============================================================================
// REGISTRY — process-wide unit catalog
// ============================================================================
// Maps dimension name → base unit and folded alias → candidate units.
// An alias may legitimately live in several dimensions ("m" is meter and
// month); resolution disambiguates with a dimension hint.
//
// Registrations happen at load/declaration time; reads dominate afterward.
// A RWMutex serializes the writes and keeps concurrent resolves safe.
// ============================================================================

// Registry is the catalog of dimensions, units, and aliases.
type Registry struct {
	mu       sync.RWMutex
	dims     map[string]*Dimension
	units    map[string]map[string]*Unit // dimension → folded symbol → unit
	aliases  map[string][]*Unit          // folded alias → candidates across dimensions
	sigIndex map[string]string           // signature key → canonical dimension name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		dims:     make(map[string]*Dimension),
		units:    make(map[string]map[string]*Unit),
		aliases:  make(map[string][]*Unit),
		sigIndex: make(map[string]string),
	}
}

// defaultRegistry backs the package-level functions. The built-in catalog
// registers into it at package load.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// ============================================================================
// DIMENSION REGISTRATION
// ============================================================================

// DimensionOption configures a dimension at registration.
type DimensionOption func(*Dimension)

// WithSignature attaches a composition signature (exponents over base
// dimensions), making the dimension a canonical match target for Compose.
func WithSignature(sig map[string]int) DimensionOption {
	return func(d *Dimension) { d.Signature = sig }
}

// WithDimBound attaches a dimension-wide bound, inherited by every unit
// that does not declare its own.
func WithDimBound(b *Bound) DimensionOption {
	return func(d *Dimension) { d.Bound = b }
}

// RegisterDimension creates a dimension anchored by its base unit.
// The base unit must carry the identity transform (multiplier 1, offset 0);
// it is registered like any other unit. Re-registering a dimension with the
// same base symbol is idempotent; a different base fails with
// DuplicateDimensionError.
func (r *Registry) RegisterDimension(name string, base *Unit, opts ...DimensionOption) (*Dimension, error) {
	if name == "" || base == nil || base.Symbol == "" {
		return nil, fmt.Errorf("units: dimension needs a name and a base unit symbol")
	}
	if base.Offset != 0 || (base.Multiplier != 0 && base.Multiplier != 1) || base.Derive != nil {
		return nil, fmt.Errorf("units: base unit %q must carry the identity transform", base.Symbol)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.dims[name]; ok {
		if existing.Base != base.Symbol {
			return nil, &DuplicateDimensionError{Name: name, ExistingBase: existing.Base, ProposedBase: base.Symbol}
		}
		return existing, nil
	}

	dim := &Dimension{Name: name, Base: base.Symbol}
	for _, opt := range opts {
		opt(dim)
	}
	if dim.Signature == nil {
		dim.Signature = map[string]int{name: 1}
	}

	r.dims[name] = dim
	r.units[name] = make(map[string]*Unit)
	sigKey := SigKey(dim.Signature)
	claimedSig := r.sigIndex[sigKey] == ""
	if claimedSig {
		r.sigIndex[sigKey] = name
	}

	base.Dimension = name
	base.Multiplier = 1
	if _, err := r.register(base); err != nil {
		delete(r.dims, name)
		delete(r.units, name)
		if claimedSig {
			delete(r.sigIndex, sigKey)
		}
		return nil, err
	}
	return dim, nil
}

// MustRegisterDimension is RegisterDimension, panicking on error.
// Catalog declarations use it so a bad declaration fails at load.
func (r *Registry) MustRegisterDimension(name string, base *Unit, opts ...DimensionOption) *Dimension {
	dim, err := r.RegisterDimension(name, base, opts...)
	if err != nil {
		panic(err)
	}
	return dim
}

// ============================================================================
// UNIT REGISTRATION
// ============================================================================

// Register adds a unit to its declared dimension and indexes its aliases.
//
// Rules enforced here:
//   - the dimension must already exist;
//   - a Derive binding resolves to the multiplier now, exactly once;
//   - re-registering an identical (dimension, symbol) pair is a no-op;
//   - a name already owned by another dimension fails with
//     AmbiguousAliasError unless this unit sets Shared;
//   - a name already owned by a different unit of the same dimension always
//     fails — no hint could ever disambiguate it.
func (r *Registry) Register(u *Unit) (*Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(u)
}

// MustRegister is Register, panicking on error. Unit declarations use it as
// their initializer, which makes declaring a unit register it exactly once.
func (r *Registry) MustRegister(u *Unit) *Unit {
	reg, err := r.Register(u)
	if err != nil {
		panic(err)
	}
	return reg
}

// register assumes the write lock is held.
func (r *Registry) register(u *Unit) (*Unit, error) {
	if u == nil || u.Symbol == "" {
		return nil, fmt.Errorf("units: unit needs a symbol")
	}
	dim, ok := r.dims[u.Dimension]
	if !ok {
		return nil, fmt.Errorf("units: unknown dimension %q for unit %q (register the dimension first)", u.Dimension, u.Symbol)
	}

	if u.Derive != nil {
		mult, err := r.resolveDerive(u)
		if err != nil {
			return nil, err
		}
		u.Multiplier = mult
		u.Offset = 0 // derived units are ratios of intervals; offsets do not survive
	}
	if u.Multiplier == 0 {
		u.Multiplier = 1
	}
	if math.IsNaN(u.Multiplier) || math.IsInf(u.Multiplier, 0) {
		return nil, fmt.Errorf("units: unit %q resolved a non-finite multiplier", u.Symbol)
	}

	key := Fold(u.Symbol)
	if existing, ok := r.units[u.Dimension][key]; ok {
		if existing.Multiplier == u.Multiplier && existing.Offset == u.Offset {
			return existing, nil
		}
		return nil, &AmbiguousAliasError{Alias: u.Symbol, Existing: u.Dimension, Proposed: u.Dimension}
	}

	names := u.Names()
	for _, name := range names {
		for _, cand := range r.aliases[name] {
			if cand.Dimension == u.Dimension {
				return nil, &AmbiguousAliasError{Alias: name, Existing: cand.Dimension, Proposed: u.Dimension}
			}
			if !u.Shared {
				return nil, &AmbiguousAliasError{Alias: name, Existing: cand.Dimension, Proposed: u.Dimension}
			}
		}
	}

	u.dim = dim
	r.units[u.Dimension][key] = u
	for _, name := range names {
		r.aliases[name] = append(r.aliases[name], u)
	}
	return u, nil
}

// ============================================================================
// RESOLUTION
// ============================================================================

// Resolve looks up an alias (case-insensitive, trimmed) and returns its
// unit. When the alias lives in several dimensions, an optional dimension
// hint picks the intended one:
//
//	no hint, one dimension   → the unit
//	no hint, many dimensions → AmbiguousUnitError
//	hint matches a candidate → that candidate
//	hint excludes them all   → DimensionMismatchError
//	alias unknown            → UnitNotFoundError
func (r *Registry) Resolve(alias string, hint ...string) (*Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h := ""
	if len(hint) > 0 {
		h = hint[0]
	}
	return r.resolve(alias, h)
}

// resolve assumes a read lock is held.
func (r *Registry) resolve(alias, hint string) (*Unit, error) {
	folded := Fold(alias)
	if folded == "" {
		return nil, &UnitNotFoundError{Alias: alias}
	}
	cands := r.aliases[folded]
	if len(cands) == 0 {
		return nil, &UnitNotFoundError{Alias: strings.TrimSpace(alias)}
	}

	if hint != "" {
		dims := make([]string, 0, len(cands))
		for _, c := range cands {
			if c.Dimension == hint {
				return c, nil
			}
			dims = append(dims, c.Dimension)
		}
		return nil, &DimensionMismatchError{Op: "resolve " + folded, Left: hint, Right: strings.Join(uniqSorted(dims), ", ")}
	}

	dims := make([]string, 0, len(cands))
	for _, c := range cands {
		dims = append(dims, c.Dimension)
	}
	dims = uniqSorted(dims)
	if len(dims) > 1 {
		return nil, &AmbiguousUnitError{Alias: folded, Dimensions: dims}
	}
	return cands[0], nil
}

// ============================================================================
// READ QUERIES
// ============================================================================

// Dimensions returns all dimension names, sorted.
func (r *Registry) Dimensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.dims))
	for name := range r.dims {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// UnitsIn returns the symbols registered under a dimension, sorted.
func (r *Registry) UnitsIn(dimension string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.units[dimension]
	out := make([]string, 0, len(members))
	for _, u := range members {
		out = append(out, u.Symbol)
	}
	sort.Strings(out)
	return out
}

// BaseOf returns the base unit of a dimension.
func (r *Registry) BaseOf(dimension string) (*Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dim, ok := r.dims[dimension]
	if !ok {
		return nil, fmt.Errorf("units: unknown dimension %q", dimension)
	}
	base, ok := r.units[dimension][Fold(dim.Base)]
	if !ok {
		return nil, fmt.Errorf("units: dimension %q has no registered base unit", dimension)
	}
	return base, nil
}

// DimensionOf resolves an alias to its owning dimension name.
func (r *Registry) DimensionOf(alias string) (string, error) {
	u, err := r.Resolve(alias)
	if err != nil {
		return "", err
	}
	return u.Dimension, nil
}

// DimensionNamed returns the dimension descriptor, if registered.
func (r *Registry) DimensionNamed(name string) (*Dimension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dim, ok := r.dims[name]
	return dim, ok
}

// DimensionForSignature returns the canonical dimension registered for a
// composition signature, if any.
func (r *Registry) DimensionForSignature(sig map[string]int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.sigIndex[SigKey(sig)]
	return name, ok
}

func uniqSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// ============================================================================
// PACKAGE-LEVEL WRAPPERS — delegate to the default registry
// ============================================================================

// RegisterDimension registers a dimension in the default registry.
func RegisterDimension(name string, base *Unit, opts ...DimensionOption) (*Dimension, error) {
	return defaultRegistry.RegisterDimension(name, base, opts...)
}

// MustRegisterDimension registers a dimension in the default registry,
// panicking on error.
func MustRegisterDimension(name string, base *Unit, opts ...DimensionOption) *Dimension {
	return defaultRegistry.MustRegisterDimension(name, base, opts...)
}

// Register registers a unit in the default registry.
func Register(u *Unit) (*Unit, error) { return defaultRegistry.Register(u) }

// MustRegister registers a unit in the default registry, panicking on error.
func MustRegister(u *Unit) *Unit { return defaultRegistry.MustRegister(u) }

// Resolve resolves an alias in the default registry.
func Resolve(alias string, hint ...string) (*Unit, error) {
	return defaultRegistry.Resolve(alias, hint...)
}

// Dimensions lists dimension names in the default registry.
func Dimensions() []string { return defaultRegistry.Dimensions() }

// UnitsIn lists unit symbols under a dimension in the default registry.
func UnitsIn(dimension string) []string { return defaultRegistry.UnitsIn(dimension) }

// BaseOf returns a dimension's base unit from the default registry.
func BaseOf(dimension string) (*Unit, error) { return defaultRegistry.BaseOf(dimension) }

// DimensionOf resolves an alias to its dimension in the default registry.
func DimensionOf(alias string) (string, error) { return defaultRegistry.DimensionOf(alias) }
