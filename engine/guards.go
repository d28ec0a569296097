package engine

// ============================================================================
// GUARDS — dimension contracts on numeric kernels
// ============================================================================
// Domain formulas take named quantities. Guards wrap the kernel so callers
// get a typed ArgumentError before the math runs instead of a wrong number
// after it: Require pins each argument to a dimension, Prepare additionally
// converts arguments to declared units and feeds the kernel bare magnitudes.
// ============================================================================

// Kernel is a computation over named quantities.
type Kernel func(args map[string]*Quantity) (float64, error)

// PreparedKernel receives magnitudes already converted to declared units.
type PreparedKernel func(args map[string]float64) (float64, error)

// Require wraps a kernel with dimension pre-checks: each named argument
// must be present and carry the expected dimension.
func Require(kernel Kernel, expect map[string]string) Kernel {
	return func(args map[string]*Quantity) (float64, error) {
		for param, dim := range expect {
			q, ok := args[param]
			if !ok || q == nil {
				return 0, &ArgumentError{Param: param, Expected: dim, Actual: "missing"}
			}
			if q.Unit().Dimension != dim {
				return 0, &ArgumentError{Param: param, Expected: dim, Actual: q.Unit().Dimension}
			}
		}
		return kernel(args)
	}
}

// Prepare wraps a prepared kernel: each argument named in targets converts
// to its declared unit first, unnamed arguments pass through in their own
// unit. Conversion failures surface before the kernel runs.
func Prepare(kernel PreparedKernel, targets map[string]string) Kernel {
	return func(args map[string]*Quantity) (float64, error) {
		magnitudes := make(map[string]float64, len(args))
		for param, q := range args {
			if q == nil {
				return 0, &ArgumentError{Param: param, Expected: targets[param], Actual: "missing"}
			}
			alias, declared := targets[param]
			if !declared {
				magnitudes[param] = q.Float64()
				continue
			}
			converted, err := q.To(alias)
			if err != nil {
				return 0, err
			}
			magnitudes[param] = converted.Float64()
		}
		for param := range targets {
			if _, ok := args[param]; !ok {
				return 0, &ArgumentError{Param: param, Expected: targets[param], Actual: "missing"}
			}
		}
		return kernel(magnitudes)
	}
}
