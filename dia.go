package sparse

import "gonum.org/v1/gonum/mat"

var _ Matrix = (*DIA)(nil)

// DIA is a multi-diagonal (banded) format sparse matrix: each stored
// diagonal is identified by an offset (0 for the main diagonal, positive
// for diagonals above it, negative for diagonals below it) and stored as a
// column of length Rows, padded with unused entries where the diagonal
// runs off the edge of the matrix (spec.md §4.3, §4.5). Offsets are kept
// sorted ascending; lookups binary-search them.
//
// DIA.data is column-major: the diagonal at Offsets()[k] occupies
// data[k*Rows : k*Rows+Rows], indexed by row. For offset d >= 0,
// data[k*Rows+i] holds element (i, i+d) and is valid for i in
// [0, min(Rows, Cols-d)); entries beyond that are padding and ignored. For
// offset d < 0, data[k*Rows+i] holds element (i, i+d) and is valid for i in
// [-d, min(Rows, Cols-d)).
//
// DIA suits matrices whose non-zero pattern clusters on a small number of
// diagonals, such as those arising from finite-difference stencils; a
// matrix with many distinct diagonals wastes most of its stored padding
// and should stay in CSR instead (see convert.go's banded-ness check).
type DIA struct {
	shape   Shape
	space   Space
	offsets []int
	data    []float64
}

// NewDIA creates a DIA matrix of r rows and c columns from a sorted,
// duplicate-free slice of diagonal offsets and a column-major data slice
// of length len(offsets)*r. The data slice becomes the backing storage of
// the returned DIA; the caller must not mutate it afterwards.
func NewDIA(space Space, r, c int, offsets []int, data []float64) *DIA {
	checkShape(r, c)
	if len(data) != len(offsets)*r {
		panic(ErrShapeMismatch)
	}
	for k := 1; k < len(offsets); k++ {
		if offsets[k] <= offsets[k-1] {
			panic("sparse: DIA offsets must be sorted and distinct")
		}
	}

	d := &DIA{
		shape:   Shape{Rows: r, Cols: c},
		space:   space,
		offsets: offsets,
		data:    data,
	}
	d.shape.NNZ = d.countValid()
	return d
}

func diagLen(rows, cols, offset int) int {
	if offset >= 0 {
		n := rows
		if cols-offset < n {
			n = cols - offset
		}
		return n
	}
	n := rows + offset
	if cols < n {
		n = cols
	}
	return n
}

func (d *DIA) countValid() int {
	nnz := 0
	for _, off := range d.offsets {
		n := diagLen(d.shape.Rows, d.shape.Cols, off)
		if n > 0 {
			nnz += n
		}
	}
	return nnz
}

// Dims returns the number of rows and columns in the matrix.
func (d *DIA) Dims() (int, int) { return d.shape.Dims() }

// NNZ returns the number of valid (in-bounds) diagonal entries, excluding
// the padding positions a diagonal shorter than Rows carries.
func (d *DIA) NNZ() int { return d.shape.NNZ }

// Space reports the memory space backing this matrix's storage.
func (d *DIA) Space() Space { return d.space }

// Offsets returns the sorted slice of stored diagonal offsets.
func (d *DIA) Offsets() []int { return d.offsets }

// Data exposes the column-major backing storage directly, for the DIA SpMV
// kernel (spmv.go).
func (d *DIA) Data() []float64 { return d.data }

// At returns the element at row i, column j. At panics if i or j is out of
// range.
func (d *DIA) At(i, j int) float64 {
	if uint(i) >= uint(d.shape.Rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(d.shape.Cols) {
		panic(mat.ErrColAccess)
	}
	offset := j - i
	lo, hi := 0, len(d.offsets)
	for lo < hi {
		mid := (lo + hi) / 2
		if d.offsets[mid] < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(d.offsets) && d.offsets[lo] == offset {
		return d.data[lo*d.shape.Rows+i]
	}
	return 0
}

// T returns the transpose of the matrix as a new DIA sharing no backing
// storage with the receiver: transposing negates and re-sorts the
// offsets, and the per-diagonal padding lands on the opposite end, so the
// data cannot simply be reinterpreted in place.
func (d *DIA) T() mat.Matrix {
	offsets := make([]int, len(d.offsets))
	for i, off := range d.offsets {
		offsets[len(offsets)-1-i] = -off
	}
	data := make([]float64, len(offsets)*d.shape.Cols)
	for k, off := range d.offsets {
		tk := len(offsets) - 1 - k
		n := diagLen(d.shape.Rows, d.shape.Cols, off)
		start := 0
		if off < 0 {
			start = -off
		}
		for i := start; i < start+n; i++ {
			// element (i, i+off) in the receiver is element (i+off, i) in
			// the transpose, landing on transposed diagonal -off at row i+off.
			data[tk*d.shape.Cols+i+off] = d.data[k*d.shape.Rows+i]
		}
	}
	return NewDIA(d.space, d.shape.Cols, d.shape.Rows, offsets, data)
}

// ToCOO converts to COOrdinate format, emitting only the valid (in-bounds)
// entries of each stored diagonal. Entries are gathered diagonal by
// diagonal, not in (row, col) order; NewCOO sorts them into the order
// COO requires.
func (d *DIA) ToCOO() *COO {
	rows := make([]int, 0, d.shape.NNZ)
	cols := make([]int, 0, d.shape.NNZ)
	data := make([]float64, 0, d.shape.NNZ)

	for k, off := range d.offsets {
		n := diagLen(d.shape.Rows, d.shape.Cols, off)
		start := 0
		if off < 0 {
			start = -off
		}
		for i := start; i < start+n; i++ {
			v := d.data[k*d.shape.Rows+i]
			if v == 0 {
				continue
			}
			rows = append(rows, i)
			cols = append(cols, i+off)
			data = append(data, v)
		}
	}
	return NewCOO(d.space, d.shape.Rows, d.shape.Cols, rows, cols, data)
}

// ToCSR converts to Compressed Sparse Row format via COO.
func (d *DIA) ToCSR() *CSR { return d.ToCOO().ToCSR() }

// ToDIA returns the receiver; opts is ignored since the receiver is
// already in DIA format and cannot fail to convert to itself.
func (d *DIA) ToDIA(opts ConversionOptions) (*DIA, error) { return d, nil }

// ToELL attempts an ELLPACK conversion via COO; see convert.go.
func (d *DIA) ToELL(opts ConversionOptions) (*ELL, error) { return d.ToCOO().ToELL(opts) }

// ToHYB converts to hybrid ELL+COO format via COO; see convert.go.
func (d *DIA) ToHYB(opts ConversionOptions) (*HYB, error) { return d.ToCOO().ToHYB(opts) }
