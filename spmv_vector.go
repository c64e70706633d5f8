package sparse

import (
	"runtime"
	"sync"

	"github.com/sparsekit/spmv/internal/spblas"
)

// SpmvVector computes y <- alpha*A*x + beta*y for a host-space CSR matrix
// using the "vector" kernel (spec.md §4.5): rather than one thread per
// row (spmv.go's scalar kernel), rows are partitioned across a pool of
// workers goroutines, each completing whichever rows it's given with
// spblas.Dusmv before the call returns. This suits matrices whose rows
// are long enough that the per-row reduction, not the row dispatch
// overhead, dominates - the same tradeoff a real vector/warp kernel makes
// against a scalar one.
//
// If workers <= 0, runtime.NumCPU() goroutines are used. SpmvVector
// returns ErrShapeMismatch or ErrMemorySpaceMismatch under the same
// conditions as Spmv, and requires a to be Host-space: Device-space
// matrices always go through SpmvDevice instead.
func SpmvVector(alpha float64, a *CSR, x *Array, beta float64, y *Array, workers int) error {
	ar, ac := a.Dims()
	if ac != x.Len() || ar != y.Len() {
		return ErrShapeMismatch
	}
	if a.Space() != x.Space() || a.Space() != y.Space() {
		return ErrMemorySpaceMismatch
	}
	if a.Space() != Host {
		panic("sparse: SpmvVector requires a Host-space matrix; use SpmvDevice")
	}

	scaleY(beta, y.Raw())

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > a.shape.Rows {
		workers = a.shape.Rows
	}
	if workers <= 1 || a.shape.Rows == 0 {
		spblas.Dusmv(a.shape.Rows, a.indptr, a.ind, a.data, alpha, x.Raw(), 1, y.Raw(), 1)
		return nil
	}

	dusmvRowsParallel(a, alpha, x.Raw(), y.Raw(), workers)
	return nil
}

// dusmvRowsParallel partitions a CSR matrix's rows into workers chunks and
// completes each chunk's contribution to y with spblas.Dusmv on its own
// goroutine before returning. Rows are disjoint, so each goroutine writes
// to a distinct slice of y and no reduction step is needed - unlike the
// COO segmented kernel (spmv_device.go), this partitioning never has two
// goroutines contending for the same output element. Used by both
// SpmvVector (Host) and SpmvDevice's CSR case.
func dusmvRowsParallel(a *CSR, alpha float64, x, y []float64, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > a.shape.Rows {
		workers = a.shape.Rows
	}
	if workers <= 1 || a.shape.Rows == 0 {
		spblas.Dusmv(a.shape.Rows, a.indptr, a.ind, a.data, alpha, x, 1, y, 1)
		return
	}

	chunk := (a.shape.Rows + workers - 1) / workers
	var wg sync.WaitGroup
	for begin := 0; begin < a.shape.Rows; begin += chunk {
		end := begin + chunk
		if end > a.shape.Rows {
			end = a.shape.Rows
		}
		wg.Add(1)
		go func(begin, end int) {
			defer wg.Done()
			rowIndptr := a.indptr[begin : end+1]
			dataStart := rowIndptr[0]
			localIndptr := make([]int, len(rowIndptr))
			for i, p := range rowIndptr {
				localIndptr[i] = p - dataStart
			}
			spblas.Dusmv(end-begin, localIndptr, a.ind[dataStart:a.indptr[end]], a.data[dataStart:a.indptr[end]], alpha, x, 1, y[begin:end], 1)
		}(begin, end)
	}
	wg.Wait()
}
