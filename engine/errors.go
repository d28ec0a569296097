package engine

import (
	"fmt"
	"math"
)

// ============================================================================
// ERRORS — conversion-layer failure taxonomy
// ============================================================================
// Everything the conversion engine can refuse maps to one of three typed
// errors. Registry and context failures (unknown unit, ambiguous alias,
// missing context key) surface as the units package's own types; callers
// branch with errors.As across both packages.
// ============================================================================

// ConversionError reports a transform that cannot produce a number: a
// degenerate effective multiplier, a zero divisor, a magnitude of the
// wrong shape.
type ConversionError struct {
	From   string
	To     string
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	switch {
	case e.From != "" && e.To != "":
		return fmt.Sprintf("engine: cannot convert %s to %s: %s", e.From, e.To, e.Reason)
	case e.From != "":
		return fmt.Sprintf("engine: cannot convert %s: %s", e.From, e.Reason)
	default:
		return fmt.Sprintf("engine: conversion failed: %s", e.Reason)
	}
}

func (e *ConversionError) Unwrap() error { return e.Err }

// AxiomViolationError reports a base value outside a declared bound. Bounds
// live in base-unit space, so Value is always a base magnitude — for arrays,
// the first offending element.
type AxiomViolationError struct {
	Unit  string
	Value float64
	Min   float64
	Max   float64
	Msg   string
}

func (e *AxiomViolationError) Error() string {
	s := fmt.Sprintf("engine: %s: base value %v outside [%s, %s]",
		e.Unit, e.Value, boundEdge(e.Min), boundEdge(e.Max))
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func boundEdge(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if math.IsInf(v, 1) {
		return "+inf"
	}
	return fmt.Sprintf("%v", v)
}

// ArgumentError reports a guarded function argument carrying the wrong
// dimension.
type ArgumentError struct {
	Param    string
	Expected string
	Actual   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("engine: argument %q expects dimension %q, got %q",
		e.Param, e.Expected, e.Actual)
}
