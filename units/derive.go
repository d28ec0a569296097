package units

import (
	"fmt"
)

// ============================================================================
// DERIVATION — multiplier computed from other units, once
// ============================================================================
// Derive{Mul: ["kj"], Div: ["kg"]} declares a unit whose multiplier is the
// product of the Mul units' multipliers divided by the product of the Div
// units'. It resolves at registration time, never per construction, and the
// result keeps no offset: derived units are ratios of intervals.
// ============================================================================

// Derivation names the units an on-registration multiplier is computed from.
type Derivation struct {
	Mul []string
	Div []string
}

// resolveDerive computes the derived multiplier. Assumes the write lock is
// held; the referenced units must already be registered under unambiguous
// aliases.
func (r *Registry) resolveDerive(u *Unit) (float64, error) {
	d := u.Derive
	if len(d.Mul) == 0 && len(d.Div) == 0 {
		return 0, fmt.Errorf("units: unit %q declares an empty derivation", u.Symbol)
	}

	num := 1.0
	for _, alias := range d.Mul {
		src, err := r.resolve(alias, "")
		if err != nil {
			return 0, fmt.Errorf("units: deriving %q: %w", u.Symbol, err)
		}
		num *= src.Multiplier
	}

	den := 1.0
	for _, alias := range d.Div {
		src, err := r.resolve(alias, "")
		if err != nil {
			return 0, fmt.Errorf("units: deriving %q: %w", u.Symbol, err)
		}
		den *= src.Multiplier
	}
	if den == 0 {
		return 0, fmt.Errorf("units: deriving %q: divisor multiplier product is zero", u.Symbol)
	}
	return num / den, nil
}

// ============================================================================
// COMPOSE — algebraic unit combination for multiply/divide
// ============================================================================
// Compose is the pure-function form of "UnitA * UnitB": it combines two unit
// descriptors into a new one. The multiplier is the product (or quotient) of
// the operands'; offsets never survive composition. The result's dimension
// is the canonical registered dimension whose signature matches the combined
// exponents, if one exists — meter/second lands in "speed" — otherwise an
// unnamed derived dimension scoped to the result, identified by its
// signature key so equal compositions still compare equal.
//
// The result is a descriptor, not a registration: nothing is added to the
// registry.
// ============================================================================

// Compose combines two units under "*" or "/".
func (r *Registry) Compose(op string, left, right *Unit) (*Unit, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("units: compose needs two units")
	}
	if left.Multiplier == 0 || right.Multiplier == 0 {
		return nil, fmt.Errorf("units: compose needs registered units with resolved multipliers")
	}

	var mult float64
	var symbol string
	sig := cloneSig(r.signatureOf(left))

	switch op {
	case "*":
		mult = left.Multiplier * right.Multiplier
		symbol = left.Symbol + "·" + right.Symbol
		for name, exp := range r.signatureOf(right) {
			sig[name] += exp
		}
	case "/":
		mult = left.Multiplier / right.Multiplier
		symbol = left.Symbol + "/" + right.Symbol
		for name, exp := range r.signatureOf(right) {
			sig[name] -= exp
		}
	default:
		return nil, fmt.Errorf("units: compose supports %q and %q, got %q", "*", "/", op)
	}

	for name, exp := range sig {
		if exp == 0 {
			delete(sig, name)
		}
	}

	out := &Unit{Symbol: symbol, Multiplier: mult}
	if name, ok := r.DimensionForSignature(sig); ok {
		out.Dimension = name
		out.dim, _ = r.DimensionNamed(name)
		return out, nil
	}
	out.Dimension = SigKey(sig)
	out.dim = &Dimension{Name: out.Dimension, Signature: sig, Anonymous: true}
	return out, nil
}

// signatureOf finds the composition signature governing a unit: its
// attached dimension's, the registered dimension's, or — for a bare
// descriptor — itself as a base dimension.
func (r *Registry) signatureOf(u *Unit) map[string]int {
	if u.dim != nil && u.dim.Signature != nil {
		return u.dim.Signature
	}
	r.mu.RLock()
	dim, ok := r.dims[u.Dimension]
	r.mu.RUnlock()
	if ok && dim.Signature != nil {
		return dim.Signature
	}
	return map[string]int{u.Dimension: 1}
}

func cloneSig(sig map[string]int) map[string]int {
	out := make(map[string]int, len(sig))
	for name, exp := range sig {
		out[name] = exp
	}
	return out
}

// Compose combines two units through the default registry.
func Compose(op string, left, right *Unit) (*Unit, error) {
	return defaultRegistry.Compose(op, left, right)
}
