package sparse

import "gonum.org/v1/gonum/mat"

var _ Matrix = (*ELL)(nil)

// ellPad marks an unused column slot in ELL storage. Column indices are
// always non-negative, so -1 is never a valid column and can be used as a
// sentinel without a separate validity bitmap (spec.md §4.3, §4.5).
const ellPad = -1

// ELL is an ELLPACK format sparse matrix: every row is stored in exactly
// Width column slots, column-major, padded with ellPad/0 where a row has
// fewer than Width entries. ELL suits matrices whose row lengths are
// roughly uniform - a data-parallel kernel can then process every row with
// the same number of steps, one lane per row, without per-row branches.
//
// ELL.cols and ELL.data are both column-major: slot s of row i lives at
// index s*Rows+i, so that the kernel's inner loop (spmv.go) over slots
// reads a contiguous stride-Rows column instead of striding through a
// row-major layout.
type ELL struct {
	shape Shape
	space Space
	width int
	cols  []int
	data  []float64
}

// NewELL creates an ELL matrix of r rows and c columns with the given
// per-row width, from column-major cols/data slices of length width*r.
// Unused slots in cols must be set to ellPad (-1); NewELL panics if any
// entry in cols is >= c. The slices become the backing storage of the
// returned ELL; the caller must not mutate them afterwards.
func NewELL(space Space, r, c, width int, cols []int, data []float64) *ELL {
	checkShape(r, c)
	if width < 0 || len(cols) != width*r || len(data) != width*r {
		panic(ErrShapeMismatch)
	}
	nnz := 0
	for _, col := range cols {
		if col >= c {
			panic(mat.ErrColAccess)
		}
		if col != ellPad {
			nnz++
		}
	}
	e := &ELL{
		shape: Shape{Rows: r, Cols: c, NNZ: nnz},
		space: space,
		width: width,
		cols:  cols,
		data:  data,
	}
	return e
}

// Dims returns the number of rows and columns in the matrix.
func (e *ELL) Dims() (int, int) { return e.shape.Dims() }

// NNZ returns the number of occupied (non-padding) slots.
func (e *ELL) NNZ() int { return e.shape.NNZ }

// Space reports the memory space backing this matrix's storage.
func (e *ELL) Space() Space { return e.space }

// Width returns the fixed number of column slots stored per row.
func (e *ELL) Width() int { return e.width }

// Cols exposes the column-major column-index storage directly, for the
// ELL SpMV kernel (spmv.go). Entries equal to ellPad are unused padding.
func (e *ELL) Cols() []int { return e.cols }

// Data exposes the column-major value storage directly.
func (e *ELL) Data() []float64 { return e.data }

// At returns the element at row i, column j. At panics if i or j is out of
// range.
func (e *ELL) At(i, j int) float64 {
	if uint(i) >= uint(e.shape.Rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(e.shape.Cols) {
		panic(mat.ErrColAccess)
	}
	for s := 0; s < e.width; s++ {
		idx := s*e.shape.Rows + i
		if e.cols[idx] == j {
			return e.data[idx]
		}
	}
	return 0
}

// T returns the transpose of the matrix. ELL's fixed-width-per-row layout
// has no natural analogue for a fixed-width-per-column transpose when row
// and column lengths differ, so T is expressed as an implicit gonum
// transpose rather than a reinterpretation of the stored slots.
func (e *ELL) T() mat.Matrix { return mat.Transpose{Matrix: e} }

// ToCOO converts to COOrdinate format, emitting only occupied slots.
// Entries are gathered slot by slot, not in (row, col) order; NewCOO
// sorts them into the order COO requires.
func (e *ELL) ToCOO() *COO {
	rows := make([]int, 0, e.shape.NNZ)
	cols := make([]int, 0, e.shape.NNZ)
	data := make([]float64, 0, e.shape.NNZ)

	for s := 0; s < e.width; s++ {
		for i := 0; i < e.shape.Rows; i++ {
			idx := s*e.shape.Rows + i
			if e.cols[idx] == ellPad {
				continue
			}
			rows = append(rows, i)
			cols = append(cols, e.cols[idx])
			data = append(data, e.data[idx])
		}
	}
	return NewCOO(e.space, e.shape.Rows, e.shape.Cols, rows, cols, data)
}

// ToCSR converts to Compressed Sparse Row format via COO.
func (e *ELL) ToCSR() *CSR { return e.ToCOO().ToCSR() }

// ToDIA attempts a multi-diagonal conversion via COO; see convert.go.
func (e *ELL) ToDIA(opts ConversionOptions) (*DIA, error) { return e.ToCOO().ToDIA(opts) }

// ToELL returns the receiver; opts is ignored since the receiver is
// already in ELL format and cannot fail to convert to itself.
func (e *ELL) ToELL(opts ConversionOptions) (*ELL, error) { return e, nil }

// ToHYB converts to hybrid ELL+COO format via COO; see convert.go.
func (e *ELL) ToHYB(opts ConversionOptions) (*HYB, error) { return e.ToCOO().ToHYB(opts) }
