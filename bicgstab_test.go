package sparse

import (
	"math"
	"testing"
)

func TestBiCGstabIdentityOneIteration(t *testing.T) {
	const n = 5
	offsets := []int{0}
	data := []float64{1, 1, 1, 1, 1}
	a := NewDIA(Host, n, n, offsets, data)

	b := NewArrayFromSlice(Host, []float64{1, 2, 3, 4, 5})
	x := NewArray(Host, n)

	result, err := BiCGstab(a, x, b, DefaultBiCGstabOptions())
	if err != nil {
		t.Fatalf("BiCGstab: %v", err)
	}
	if !result.Converged {
		t.Fatalf("expected convergence, got %+v", result)
	}
	if result.Iterations > 1 {
		t.Errorf("Iterations = %d, want at most 1 for A = I", result.Iterations)
	}
	for i := 0; i < n; i++ {
		if math.Abs(x.At(i)-b.At(i)) > 1e-9 {
			t.Errorf("x[%d] = %g, want %g", i, x.At(i), b.At(i))
		}
	}
}

func laplacian1D(n int) *DIA {
	offsets := []int{-1, 0, 1}
	data := make([]float64, 3*n)
	for i := 0; i < n; i++ {
		data[1*n+i] = 2
	}
	for i := 1; i < n; i++ {
		data[0*n+i] = -1
	}
	for i := 0; i < n-1; i++ {
		data[2*n+i] = -1
	}
	return NewDIA(Host, n, n, offsets, data)
}

func TestBiCGstabLaplacianConverges(t *testing.T) {
	const n = 64
	a := laplacian1D(n)

	xTrue := NewArray(Host, n)
	for i := 0; i < n; i++ {
		xTrue.Set(i, 1)
	}

	b := NewArray(Host, n)
	if err := Spmv(1, a, xTrue, 0, b); err != nil {
		t.Fatalf("Spmv: %v", err)
	}

	x := NewArray(Host, n)
	opts := DefaultBiCGstabOptions()
	opts.Stopping = RelativeResidual{Tolerance: 1e-10}
	result, err := BiCGstab(a, x, b, opts)
	if err != nil {
		t.Fatalf("BiCGstab: %v", err)
	}
	if !result.Converged {
		t.Fatalf("expected convergence within %d iterations, got %+v", opts.MaxIterations, result)
	}
	for i := 0; i < n; i++ {
		if math.Abs(x.At(i)-1) > 1e-6 {
			t.Errorf("x[%d] = %g, want ~1", i, x.At(i))
		}
	}
}

func TestBiCGstabReportsBreakdown(t *testing.T) {
	// A zero matrix makes the very first rho = (rHat, r0) = (b, b), which
	// is non-zero for a non-zero b, but v = A*y is always zero, so the
	// alpha denominator (rHat, v) is zero on the first iteration.
	const n = 3
	a := NewCSR(Host, n, n, []int{0, 0, 0, 0}, nil, nil)
	b := NewArrayFromSlice(Host, []float64{1, 2, 3})
	x := NewArray(Host, n)

	_, err := BiCGstab(a, x, b, DefaultBiCGstabOptions())
	if err == nil {
		t.Fatal("expected a breakdown error for a singular system")
	}
	var bdErr *BreakdownError
	if be, ok := err.(*BreakdownError); ok {
		bdErr = be
	} else {
		t.Fatalf("expected *BreakdownError, got %T: %v", err, err)
	}
	if bdErr.Step != "alpha" {
		t.Errorf("Step = %q, want %q", bdErr.Step, "alpha")
	}
}
