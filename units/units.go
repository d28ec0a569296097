// Package units holds the dimension model, the process-wide unit registry,
// and the axiom bindings that let a unit's transform parameters be computed
// from a runtime context.
//
// A unit maps a raw magnitude into its dimension's base representation via
// the linear transform base = (magnitude + offset) * multiplier. Everything
// else — registration, alias resolution, derivation, composition — exists to
// produce correct (multiplier, offset) pairs for that transform.
package units

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// DIMENSION — physical-quantity category with one base unit
// ============================================================================

// Dimension is a physical-quantity category (mass, length, ...).
// Exactly one base unit anchors the dimension: the unit every other member
// converts through.
type Dimension struct {
	Name      string
	Base      string         // base unit symbol
	Signature map[string]int // exponents over base dimensions, e.g. speed = {length:1, time:-1}
	Bound     *Bound         // dimension-wide bound in base space, inherited by units
	Anonymous bool           // synthesized by Compose, never registered
}

// SigKey renders a signature as a canonical sorted string, the key the
// registry matches composites against.
func SigKey(sig map[string]int) string {
	if len(sig) == 0 {
		return "dimensionless"
	}
	names := make([]string, 0, len(sig))
	for name := range sig {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "^" + strconv.Itoa(sig[name])
	}
	return strings.Join(parts, "*")
}

// ============================================================================
// BOUND — physical validity range on the base value
// ============================================================================

// Bound restricts a unit's BASE value to [Min, Max], both inclusive.
// A zero-value limit means unbounded on that side once built through the
// constructors below.
type Bound struct {
	Min float64
	Max float64
	Msg string // optional violation message shown to the user
}

// BoundMin builds a lower-bound-only constraint.
func BoundMin(min float64, msg string) *Bound {
	return &Bound{Min: min, Max: math.Inf(1), Msg: msg}
}

// BoundMax builds an upper-bound-only constraint.
func BoundMax(max float64, msg string) *Bound {
	return &Bound{Min: math.Inf(-1), Max: max, Msg: msg}
}

// BoundRange builds a two-sided constraint.
func BoundRange(min, max float64, msg string) *Bound {
	return &Bound{Min: min, Max: max, Msg: msg}
}

// ============================================================================
// CONTEXT — ephemeral construction-time inputs for axiom formulas
// ============================================================================

// Context carries named values consumed by axiom formulas at construction.
// Values may be plain numbers or anything exposing a base value (a Quantity).
// The context is read during construction and not retained afterward.
type Context map[string]any

// BaseValued is implemented by quantity types so a Context entry can carry
// a full Quantity; formulas consume its normalized base value.
type BaseValued interface {
	BaseFloat() float64
}

// Number extracts a float64 from a context entry.
func (c Context) Number(key string) (float64, bool) {
	raw, ok := c[key]
	if !ok {
		return 0, false
	}
	switch t := raw.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case BaseValued:
		return t.BaseFloat(), true
	default:
		return 0, false
	}
}

// ============================================================================
// UNIT — a member of a dimension with its transform parameters
// ============================================================================

// Unit describes one unit of measure. Catalog and user code declare Unit
// values and hand them to a Registry; registration resolves Derive, attaches
// the owning Dimension, and indexes every alias.
//
// A zero Multiplier means "unset" and defaults to 1 at registration — an
// explicitly zero multiplier is never valid.
type Unit struct {
	Symbol     string
	Dimension  string
	Aliases    []string
	Multiplier float64
	Offset     float64
	Scale      Formula     // overrides Multiplier per construction, from context
	Shift      Formula     // overrides Offset per construction, from context
	Derive     *Derivation // computes Multiplier once, at registration
	Bound      *Bound      // unit-level bound; overrides the dimension's
	Shared     bool        // allow this unit's names to coexist across dimensions

	dim *Dimension
}

// Dim returns the owning Dimension descriptor (nil before registration
// unless the unit came out of Compose).
func (u *Unit) Dim() *Dimension { return u.dim }

// Names returns the symbol plus aliases, folded and deduplicated, in
// registration order.
func (u *Unit) Names() []string {
	seen := make(map[string]bool, len(u.Aliases)+1)
	out := make([]string, 0, len(u.Aliases)+1)
	for _, name := range append([]string{u.Symbol}, u.Aliases...) {
		folded := Fold(name)
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, folded)
	}
	return out
}

// Effective evaluates the unit's axiom bindings against a context and
// returns the (multiplier, offset) pair governing this construction.
// Static parameters pass through untouched; Scale and Shift formulas
// override them. Bound checking happens later, on the base value.
func (u *Unit) Effective(ctx Context) (mult, offset float64, err error) {
	mult, offset = u.Multiplier, u.Offset
	if u.Shift != nil {
		offset, err = u.Shift(ctx)
		if err != nil {
			return 0, 0, u.tagContextErr(err)
		}
	}
	if u.Scale != nil {
		mult, err = u.Scale(ctx)
		if err != nil {
			return 0, 0, u.tagContextErr(err)
		}
	}
	return mult, offset, nil
}

// EffectiveBound returns the bound governing this unit: its own if set,
// else the dimension-wide one.
func (u *Unit) EffectiveBound() *Bound {
	if u.Bound != nil {
		return u.Bound
	}
	if u.dim != nil {
		return u.dim.Bound
	}
	return nil
}

// tagContextErr stamps the unit symbol onto a MissingContextError so the
// message names the unit that demanded the key.
func (u *Unit) tagContextErr(err error) error {
	if mc, ok := err.(*MissingContextError); ok && mc.Unit == "" {
		mc.Unit = u.Symbol
	}
	return err
}

// Fold normalizes an alias for lookup: trimmed and lowercased.
func Fold(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}
