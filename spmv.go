package sparse

import "github.com/sparsekit/spmv/internal/spblas"

// Spmv computes y <- alpha*A*x + beta*y, the sparse matrix/dense vector
// product every format in this package supports (spec.md §4.5). A, x and y
// must all reside in the same memory space; Spmv returns
// ErrMemorySpaceMismatch otherwise rather than panicking, since which
// space a caller's data lives in is a runtime fact, not a programmer
// mistake, in the same way a conversion's infeasibility is.
//
// Host-space matrices run their kernel synchronously on the calling
// goroutine. Device-space matrices dispatch to SpmvDevice instead, which
// fans the work out across a worker pool and blocks until it completes -
// from Spmv's caller's perspective the two are indistinguishable except in
// latency, matching spec.md §5's device execution model.
func Spmv(alpha float64, a Matrix, x *Array, beta float64, y *Array) error {
	ar, ac := a.Dims()
	if ac != x.Len() || ar != y.Len() {
		return ErrShapeMismatch
	}
	if a.Space() != x.Space() || a.Space() != y.Space() {
		return ErrMemorySpaceMismatch
	}

	if a.Space() == Device {
		return SpmvDevice(alpha, a, x, beta, y, DeviceHint{})
	}

	scaleY(beta, y.Raw())

	switch m := a.(type) {
	case *COO:
		spmvCOO(alpha, m, x.Raw(), y.Raw())
	case *CSR:
		spblas.Dusmv(m.shape.Rows, m.indptr, m.ind, m.data, alpha, x.Raw(), 1, y.Raw(), 1)
	case *DIA:
		spmvDIA(alpha, m, x.Raw(), y.Raw())
	case *ELL:
		spmvELL(alpha, m, x.Raw(), y.Raw())
	case *HYB:
		spmvELL(alpha, m.ell, x.Raw(), y.Raw())
		spmvCOO(alpha, m.coo, x.Raw(), y.Raw())
	default:
		panic("sparse: Spmv: unsupported matrix type")
	}
	return nil
}

// scaleY applies the beta*y term of y <- alpha*A*x + beta*y before the
// matrix/vector product accumulates into it. beta == 1 is the common case
// (pure accumulation) and is left as a no-op rather than a wasted
// multiply-by-one pass; beta == 0 clears y so stale values can't leak into
// a fresh solve.
func scaleY(beta float64, y []float64) {
	switch beta {
	case 1:
		return
	case 0:
		for i := range y {
			y[i] = 0
		}
	default:
		for i := range y {
			y[i] *= beta
		}
	}
}

// spmvCOO is the COO "flat" kernel (spec.md §4.5): one contribution per
// stored triplet, in storage order, each scattered directly into y. Unlike
// the segmented-reduction variant a data-parallel accelerator needs to
// avoid data races on y, this scalar version can safely accumulate
// directly since it runs single-threaded.
func spmvCOO(alpha float64, m *COO, x, y []float64) {
	for k := range m.data {
		y[m.rows[k]] += alpha * m.data[k] * x[m.cols[k]]
	}
}

// spmvDIA is the DIA per-diagonal kernel (spec.md §4.5): each stored
// diagonal contributes to a contiguous run of y, one multiply-add per
// valid (non-padding) entry.
func spmvDIA(alpha float64, m *DIA, x, y []float64) {
	for k, off := range m.offsets {
		n := diagLen(m.shape.Rows, m.shape.Cols, off)
		start := 0
		if off < 0 {
			start = -off
		}
		base := k * m.shape.Rows
		for i := start; i < start+n; i++ {
			y[i] += alpha * m.data[base+i] * x[i+off]
		}
	}
}

// spmvELL is the ELL per-row-per-slot kernel (spec.md §4.5): every row
// visits the same number of slots (Width), skipping padding. A
// data-parallel kernel would assign one lane per row and loop slots
// in lockstep; this scalar version does the same work serially.
func spmvELL(alpha float64, m *ELL, x, y []float64) {
	for i := 0; i < m.shape.Rows; i++ {
		var sum float64
		for s := 0; s < m.width; s++ {
			idx := s*m.shape.Rows + i
			col := m.cols[idx]
			if col == ellPad {
				continue
			}
			sum += m.data[idx] * x[col]
		}
		y[i] += alpha * sum
	}
}
