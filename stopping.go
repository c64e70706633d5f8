package sparse

// StoppingCriteria decides whether a Krylov iteration (bicgstab.go) has
// converged, given the current residual and the right-hand side it is
// being measured against. Wrapping this in an interface rather than a bare
// tolerance float lets callers swap in an absolute test, a custom
// combination of both, or a maximum-iteration-only policy without
// touching BiCGstab itself.
type StoppingCriteria interface {
	// Converged reports whether residual (of norm residualNorm) is small
	// enough relative to rhs to stop iterating.
	Converged(residualNorm float64, rhs *Array) bool
}

// RelativeResidual stops once ||r|| / ||b|| falls below Tolerance. This is
// the default criterion BiCGstab uses when none is supplied: absolute
// residual norms are meaningless without knowing the scale of b, so a
// relative test is the safer default for a general-purpose solver.
type RelativeResidual struct {
	Tolerance float64
}

// Converged implements StoppingCriteria.
func (r RelativeResidual) Converged(residualNorm float64, rhs *Array) bool {
	rhsNorm := Nrm2(rhs)
	if rhsNorm == 0 {
		return residualNorm < r.Tolerance
	}
	return residualNorm/rhsNorm < r.Tolerance
}

// AbsoluteResidual stops once ||r|| falls below Tolerance directly,
// ignoring the scale of b. Useful when the right-hand side is known to be
// normalised already, or is exactly zero.
type AbsoluteResidual struct {
	Tolerance float64
}

// Converged implements StoppingCriteria.
func (a AbsoluteResidual) Converged(residualNorm float64, rhs *Array) bool {
	return residualNorm < a.Tolerance
}
