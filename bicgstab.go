package sparse

import (
	"fmt"
	"io"
)

// Preconditioner transforms a residual-like vector src into a search
// direction dst, approximating the action of A^-1 to accelerate
// convergence (spec.md §4.7). Apply must not alias src and dst.
type Preconditioner interface {
	Apply(dst, src *Array)
}

// IdentityPreconditioner is the no-op Preconditioner: dst <- src. BiCGstab
// uses this when no Preconditioner is supplied, which recovers
// unpreconditioned BiCGSTAB exactly.
type IdentityPreconditioner struct{}

// Apply implements Preconditioner.
func (IdentityPreconditioner) Apply(dst, src *Array) { Copy(dst, src) }

// Result reports the outcome of a BiCGstab solve.
type Result struct {
	// X is the approximate solution. It is always the caller-supplied x,
	// returned for convenience.
	X *Array

	// Iterations is the number of completed outer iterations.
	Iterations int

	// ResidualNorm is ||b - A x|| at the last update of x.
	ResidualNorm float64

	// Converged is true if StoppingCriteria was satisfied before
	// MaxIterations was reached.
	Converged bool
}

// BiCGstabOptions configures a BiCGstab solve. Fields left at their zero
// value take the defaults described on each field.
type BiCGstabOptions struct {
	// Stopping decides when to stop; if nil, RelativeResidual{1e-8} is
	// used.
	Stopping StoppingCriteria

	// Preconditioner applied to candidate search directions; if nil,
	// IdentityPreconditioner is used.
	Preconditioner Preconditioner

	// MaxIterations caps the number of outer iterations. If zero,
	// defaults to 2 * n where n is the system size.
	MaxIterations int

	// Log, if non-nil, receives one line per iteration reporting the
	// current residual norm - this package's only logging facility,
	// modelled as a plain io.Writer sink rather than a structured logging
	// dependency since nothing in this corpus pulls one in.
	Log io.Writer
}

// DefaultBiCGstabOptions returns a BiCGstabOptions with a relative
// residual tolerance of 1e-8, identity preconditioning, and no logging.
func DefaultBiCGstabOptions() BiCGstabOptions {
	return BiCGstabOptions{
		Stopping:       RelativeResidual{Tolerance: 1e-8},
		Preconditioner: IdentityPreconditioner{},
	}
}

func (o BiCGstabOptions) withDefaults(n int) BiCGstabOptions {
	if o.Stopping == nil {
		o.Stopping = RelativeResidual{Tolerance: 1e-8}
	}
	if o.Preconditioner == nil {
		o.Preconditioner = IdentityPreconditioner{}
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = 2 * n
	}
	return o
}

// BiCGstab solves A x = b for x using the stabilised Bi-Conjugate Gradient
// method (spec.md §4.7), starting from the caller's initial guess in x and
// overwriting it with each improved iterate. A, x and b must all share a
// memory space.
//
// BiCGstab is built entirely from Spmv and the BLAS-1 façade (array.go):
// it has no knowledge of which concrete sparse format A is, and runs
// identically whether A is Host- or Device-resident, since Spmv itself
// handles that dispatch.
//
// BiCGstab returns a *BreakdownError as its error if
// either of the method's two scalar denominators (the rho/alpha
// recurrence or the omega line-search) is numerically zero - the
// recurrence cannot make further progress and restarting with a different
// shadow residual is the caller's only recourse, so this is reported
// rather than silently producing garbage.
func BiCGstab(a Matrix, x, b *Array, opts BiCGstabOptions) (Result, error) {
	n, _ := a.Dims()
	opts = opts.withDefaults(n)
	space := a.Space()

	// r <- b - A*x0
	r := NewArray(space, n)
	Copy(r, b)
	if err := Spmv(-1, a, x, 1, r); err != nil {
		return Result{X: x}, err
	}

	rHat := NewArray(space, n)
	Copy(rHat, r)

	residualNorm := Nrm2(r)
	if opts.Stopping.Converged(residualNorm, b) {
		return Result{X: x, Iterations: 0, ResidualNorm: residualNorm, Converged: true}, nil
	}

	rho := 1.0
	alpha := 1.0
	omega := 1.0

	v := NewArray(space, n)
	p := NewArray(space, n)
	y := NewArray(space, n)
	s := NewArray(space, n)
	z := NewArray(space, n)
	t := NewArray(space, n)
	tmp := NewArray(space, n)

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		rhoNext := Dotc(rHat, r)
		if rhoNext == 0 {
			return Result{X: x, Iterations: iter - 1, ResidualNorm: residualNorm}, &BreakdownError{Step: "rho", Iter: iter}
		}

		if iter == 1 {
			Copy(p, r)
		} else {
			if omega == 0 {
				return Result{X: x, Iterations: iter - 1, ResidualNorm: residualNorm}, &BreakdownError{Step: "omega", Iter: iter}
			}
			beta := (rhoNext / rho) * (alpha / omega)
			// p <- r + beta*(p - omega*v)
			Copy(tmp, p)
			Axpy(-omega, v, tmp)
			Axpby(1, r, beta, tmp, p)
		}
		rho = rhoNext

		opts.Preconditioner.Apply(y, p)

		if err := Spmv(1, a, y, 0, v); err != nil {
			return Result{X: x, Iterations: iter - 1, ResidualNorm: residualNorm}, err
		}

		rHatDotV := Dotc(rHat, v)
		if rHatDotV == 0 {
			return Result{X: x, Iterations: iter - 1, ResidualNorm: residualNorm}, &BreakdownError{Step: "alpha", Iter: iter}
		}
		alpha = rho / rHatDotV

		// s <- r - alpha*v
		Copy(s, r)
		Axpy(-alpha, v, s)

		sNorm := Nrm2(s)
		if opts.Stopping.Converged(sNorm, b) {
			// x <- x + alpha*y
			Axpy(alpha, y, x)
			logIteration(opts.Log, iter, sNorm)
			return Result{X: x, Iterations: iter, ResidualNorm: sNorm, Converged: true}, nil
		}

		opts.Preconditioner.Apply(z, s)

		if err := Spmv(1, a, z, 0, t); err != nil {
			Axpy(alpha, y, x)
			return Result{X: x, Iterations: iter, ResidualNorm: sNorm}, err
		}

		tDotT := Dotc(t, t)
		if tDotT == 0 {
			Axpy(alpha, y, x)
			return Result{X: x, Iterations: iter, ResidualNorm: sNorm}, &BreakdownError{Step: "omega", Iter: iter}
		}
		omega = Dotc(t, s) / tDotT

		// x <- x + alpha*y + omega*z
		Axpbypcz(alpha, y, omega, z, x)

		// r <- s - omega*t
		Copy(r, s)
		Axpy(-omega, t, r)

		residualNorm = Nrm2(r)
		logIteration(opts.Log, iter, residualNorm)

		if opts.Stopping.Converged(residualNorm, b) {
			return Result{X: x, Iterations: iter, ResidualNorm: residualNorm, Converged: true}, nil
		}
	}

	return Result{X: x, Iterations: opts.MaxIterations, ResidualNorm: residualNorm, Converged: false}, nil
}

func logIteration(w io.Writer, iter int, residualNorm float64) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "bicgstab: iteration %d residual %g\n", iter, residualNorm)
}
