package units

// ============================================================================
// FORMULAS — context-driven transform parameters
// ============================================================================
// A Formula produces one transform parameter (a multiplier or an offset)
// from the construction context. Three shapes exist:
//
//	Const(331.3)                      — fixed value, context ignored
//	Key("rate")                       — lazy lookup, fails if absent
//	KeyOr("temp_c", 15)               — lazy lookup with a default
//	Func(fn, "temp_c", "humidity")    — pure function of named entries
//
// Formulas run at construction time, once per Quantity.
// ============================================================================

// Formula computes a transform parameter from a Context.
type Formula func(ctx Context) (float64, error)

// Const returns a formula that always yields v.
func Const(v float64) Formula {
	return func(Context) (float64, error) { return v, nil }
}

// Key returns a formula reading a named context entry.
// The entry is required: absence fails with MissingContextError.
func Key(name string) Formula {
	return func(ctx Context) (float64, error) {
		v, ok := ctx.Number(name)
		if !ok {
			return 0, &MissingContextError{Key: name}
		}
		return v, nil
	}
}

// KeyOr returns a formula reading a named context entry, falling back to
// def when the entry is absent.
func KeyOr(name string, def float64) Formula {
	return func(ctx Context) (float64, error) {
		if v, ok := ctx.Number(name); ok {
			return v, nil
		}
		return def, nil
	}
}

// Func returns a formula computed by a pure function of the context.
// Every key listed in requires must be present, checked before fn runs;
// keys read through Context defaults inside fn need not be listed.
func Func(fn func(ctx Context) float64, requires ...string) Formula {
	return func(ctx Context) (float64, error) {
		for _, key := range requires {
			if _, ok := ctx.Number(key); !ok {
				return 0, &MissingContextError{Key: key}
			}
		}
		return fn(ctx), nil
	}
}
