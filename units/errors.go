package units

import (
	"fmt"
	"strings"
)

// ============================================================================
// UNIT ERRORS — registration and resolution failures
// ============================================================================
// Every error names what was looked up and what the registry actually holds,
// so callers can surface them without re-querying.
// ============================================================================

// UnitNotFoundError reports an alias the registry has never seen.
type UnitNotFoundError struct {
	Alias string
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("unknown unit %q: not registered under any dimension", e.Alias)
}

// AmbiguousUnitError reports an alias that maps to multiple dimensions
// when no dimension hint was supplied to disambiguate.
type AmbiguousUnitError struct {
	Alias      string
	Dimensions []string
}

func (e *AmbiguousUnitError) Error() string {
	return fmt.Sprintf("ambiguous unit %q: matches dimensions [%s]; pass a dimension hint to disambiguate",
		e.Alias, strings.Join(e.Dimensions, ", "))
}

// AmbiguousAliasError reports a registration that would bind a name already
// owned elsewhere: either the same symbol re-registered with a different
// definition, or an alias crossing into another dimension without the
// Shared opt-in.
type AmbiguousAliasError struct {
	Alias    string
	Existing string // dimension currently owning the alias
	Proposed string // dimension attempting to claim it
}

func (e *AmbiguousAliasError) Error() string {
	if e.Existing == e.Proposed {
		return fmt.Sprintf("alias %q already registered in dimension %q with a different definition", e.Alias, e.Existing)
	}
	return fmt.Sprintf("alias %q already maps to dimension %q; set Shared on the %q unit to allow coexistence",
		e.Alias, e.Existing, e.Proposed)
}

// DuplicateDimensionError reports a dimension name re-registered with a
// different base unit.
type DuplicateDimensionError struct {
	Name         string
	ExistingBase string
	ProposedBase string
}

func (e *DuplicateDimensionError) Error() string {
	return fmt.Sprintf("dimension %q already exists with base %q (got %q)", e.Name, e.ExistingBase, e.ProposedBase)
}

// DimensionMismatchError reports an operation across incompatible
// dimensions: add/subtract between quantities, or a resolve whose hint
// excludes every candidate.
type DimensionMismatchError struct {
	Op    string
	Left  string // expected dimension
	Right string // actual dimension(s)
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch in %s: %q vs %q", e.Op, e.Left, e.Right)
}

// MissingContextError reports an axiom formula that required a context key
// not supplied at construction and declared no default.
type MissingContextError struct {
	Key  string
	Unit string
}

func (e *MissingContextError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("missing context key %q", e.Key)
	}
	return fmt.Sprintf("unit %q requires context key %q, which was not supplied", e.Unit, e.Key)
}
