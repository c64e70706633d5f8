package sparse

import (
	"runtime"
	"sync"

	"github.com/sparsekit/spmv/internal/spblas"
)

// DeviceHint tunes how a Device-space SpMV is fanned out across this
// process's simulated accelerator. There is no real accelerator backing
// Device (see space.go); Workers controls how many goroutines a kernel
// splits its work across, standing in for the number of concurrently
// scheduled warps/work-groups a real device driver would choose.
type DeviceHint struct {
	// Workers is the number of goroutines to fan the kernel out across.
	// Zero or negative means runtime.NumCPU().
	Workers int

	// Textured selects the variant that reads x through a read-only cache
	// path. The simulated device has no such path, so both variants run
	// the same kernels and produce the same y.
	Textured bool
}

func (h DeviceHint) workers() int {
	if h.Workers <= 0 {
		return runtime.NumCPU()
	}
	return h.Workers
}

// SpmvDevice computes y <- alpha*A*x + beta*y for a Device-space matrix.
// The kernel fans its work out across a goroutine pool sized by hint and
// fences completion with a sync.WaitGroup before returning, modelling
// spec.md §5's execution model: asynchronous with respect to the device,
// synchronous from the caller's (here, the solver's) perspective - once
// SpmvDevice returns, every contribution to y is visible.
//
// A, x and y must all be Device-space; SpmvDevice returns
// ErrMemorySpaceMismatch otherwise. Spmv dispatches here automatically
// when its operands are Device-space, so callers rarely need to call
// SpmvDevice directly except to pass a non-default DeviceHint.
func SpmvDevice(alpha float64, a Matrix, x *Array, beta float64, y *Array, hint DeviceHint) error {
	ar, ac := a.Dims()
	if ac != x.Len() || ar != y.Len() {
		return ErrShapeMismatch
	}
	if a.Space() != Device || x.Space() != Device || y.Space() != Device {
		return ErrMemorySpaceMismatch
	}

	scaleY(beta, y.Raw())
	workers := hint.workers()

	switch m := a.(type) {
	case *COO:
		spmvCOODevice(alpha, m, x.Raw(), y.Raw(), workers)
	case *CSR:
		dusmvRowsParallel(m, alpha, x.Raw(), y.Raw(), workers)
	case *DIA:
		spmvDIADevice(alpha, m, x.Raw(), y.Raw(), workers)
	case *ELL:
		spmvELLDevice(alpha, m, x.Raw(), y.Raw(), workers)
	case *HYB:
		spmvELLDevice(alpha, m.ell, x.Raw(), y.Raw(), workers)
		spmvCOODevice(alpha, m.coo, x.Raw(), y.Raw(), workers)
	default:
		panic("sparse: SpmvDevice: unsupported matrix type")
	}
	return nil
}

// spmvCOODevice is the COO "segmented reduction" device kernel (spec.md
// §4.5): since one row's triplets can straddle two workers' chunks, two
// goroutines could otherwise race to accumulate into the same y[i]. Each
// worker instead
// gathers and scales its chunk of entries into a private length-Rows
// buffer with spblas.Dusga/Dussa, and the buffers are summed into y only
// after every worker has finished - the segmented reduction a real
// data-parallel device performs with a shared-memory scan, done here with
// one buffer per goroutine instead.
func spmvCOODevice(alpha float64, m *COO, x, y []float64, workers int) {
	nnz := len(m.data)
	if nnz == 0 {
		return
	}
	if workers > nnz {
		workers = nnz
	}
	if workers <= 1 {
		spmvCOO(alpha, m, x, y)
		return
	}

	partials := make([][]float64, workers)
	chunk := (nnz + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		begin := w * chunk
		end := begin + chunk
		if begin >= nnz {
			partials[w] = nil
			continue
		}
		if end > nnz {
			end = nnz
		}
		partials[w] = make([]float64, m.shape.Rows)
		wg.Add(1)
		go func(w, begin, end int) {
			defer wg.Done()
			local := partials[w]
			gathered := make([]float64, end-begin)
			spblas.Dusga(x, 1, gathered, m.cols[begin:end])
			for i := range gathered {
				gathered[i] *= alpha * m.data[begin+i]
			}
			spblas.Dussa(gathered, local, 1, m.rows[begin:end])
		}(w, begin, end)
	}
	wg.Wait()

	for _, local := range partials {
		for i, v := range local {
			y[i] += v
		}
	}
}

// spmvDIADevice parallelises the DIA kernel over diagonals. Diagonals
// don't overlap in which rows they touch in a way that's safe to assume
// disjoint across workers (two diagonals both write into every row), so
// each worker accumulates into its own private buffer as the COO kernel
// does, reduced into y once every worker has finished.
func spmvDIADevice(alpha float64, m *DIA, x, y []float64, workers int) {
	nd := len(m.offsets)
	if nd == 0 {
		return
	}
	if workers > nd {
		workers = nd
	}
	if workers <= 1 {
		spmvDIA(alpha, m, x, y)
		return
	}

	partials := make([][]float64, workers)
	chunk := (nd + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		begin := w * chunk
		end := begin + chunk
		if begin >= nd {
			continue
		}
		if end > nd {
			end = nd
		}
		partials[w] = make([]float64, m.shape.Rows)
		wg.Add(1)
		go func(w, begin, end int) {
			defer wg.Done()
			local := partials[w]
			for k := begin; k < end; k++ {
				off := m.offsets[k]
				n := diagLen(m.shape.Rows, m.shape.Cols, off)
				start := 0
				if off < 0 {
					start = -off
				}
				base := k * m.shape.Rows
				for i := start; i < start+n; i++ {
					local[i] += alpha * m.data[base+i] * x[i+off]
				}
			}
		}(w, begin, end)
	}
	wg.Wait()

	for _, local := range partials {
		if local == nil {
			continue
		}
		for i, v := range local {
			y[i] += v
		}
	}
}

// spmvELLDevice parallelises the ELL kernel over row chunks. Rows are
// disjoint in ELL's layout - no two rows ever write the same y[i] - so
// each worker writes directly into its slice of y with no reduction step,
// the same structure dusmvRowsParallel uses for CSR.
func spmvELLDevice(alpha float64, m *ELL, x, y []float64, workers int) {
	rows := m.shape.Rows
	if rows == 0 {
		return
	}
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		spmvELL(alpha, m, x, y)
		return
	}

	chunk := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for begin := 0; begin < rows; begin += chunk {
		end := begin + chunk
		if end > rows {
			end = rows
		}
		wg.Add(1)
		go func(begin, end int) {
			defer wg.Done()
			for i := begin; i < end; i++ {
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
		}(begin, end)
	}
	wg.Wait()
}
