package sparse

import "gonum.org/v1/gonum/mat"

var (
	_ Matrix        = (*CSR)(nil)
	_ TypeConverter = (*CSR)(nil)
)

// CSR is a Compressed Sparse Row format sparse matrix (spec.md §4.3): a
// row pointer slice indptr of length rows+1, paired with column-index and
// value slices ind/data of length NNZ. Row i's entries live at
// ind[indptr[i]:indptr[i+1]] / data[indptr[i]:indptr[i+1]].
//
// CSR is the primary operational hub format: it is the natural input to
// the scalar and vector SpMV kernels (spmv.go, spmv_vector.go), and it
// converts to ELL and HYB directly. DIA, ELL and HYB convert to other
// formats through COO. Unlike the teacher format this is
// drawn from, CSR here has no Set method - every CSR in this package is
// produced by a conversion (COO.ToCSR, COOBuilder.Build().ToCSR, ...) and
// is never mutated cell-by-cell afterwards.
type CSR struct {
	shape  Shape
	space  Space
	indptr []int
	ind    []int
	data   []float64
}

// NewCSR creates a CSR matrix of r rows and c columns from an index
// pointer slice of length r+1 and parallel column-index/value slices of
// length NNZ. The slices become the backing storage of the returned CSR;
// the caller must not mutate them afterwards.
func NewCSR(space Space, r, c int, indptr, ind []int, data []float64) *CSR {
	checkShape(r, c)
	if len(indptr) != r+1 {
		panic(ErrShapeMismatch)
	}
	if len(ind) != len(data) {
		panic(ErrShapeMismatch)
	}
	return &CSR{
		shape:  Shape{Rows: r, Cols: c, NNZ: len(data)},
		space:  space,
		indptr: indptr,
		ind:    ind,
		data:   data,
	}
}

// Dims returns the number of rows and columns in the matrix.
func (c *CSR) Dims() (int, int) { return c.shape.Dims() }

// NNZ returns the number of stored entries.
func (c *CSR) NNZ() int { return c.shape.NNZ }

// Space reports the memory space backing this matrix's storage.
func (c *CSR) Space() Space { return c.space }

// RowRange returns the half-open range [begin, end) into Ind/Data holding
// row i's entries, for kernels (spmv.go) that iterate a row directly
// rather than through At.
func (c *CSR) RowRange(i int) (begin, end int) { return c.indptr[i], c.indptr[i+1] }

// Indptr exposes the row pointer slice directly.
func (c *CSR) Indptr() []int { return c.indptr }

// Ind exposes the column index slice directly.
func (c *CSR) Ind() []int { return c.ind }

// Data exposes the value slice directly.
func (c *CSR) Data() []float64 { return c.data }

// At returns the element at row i, column j. At panics if i or j is out of
// range. Locating column j within row i is a linear scan over that row.
func (c *CSR) At(i, j int) float64 {
	if uint(i) >= uint(c.shape.Rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.shape.Cols) {
		panic(mat.ErrColAccess)
	}
	for k := c.indptr[i]; k < c.indptr[i+1]; k++ {
		if c.ind[k] == j {
			return c.data[k]
		}
	}
	return 0
}

// T returns the transpose of the matrix. Since CSR's row-major layout
// becomes column-major under transpose, the result is expressed as an
// implicit gonum transpose rather than a cheap reinterpretation (unlike
// the teacher format this is adapted from, there is no CSC type in this
// package to hand the swapped slices to directly).
func (c *CSR) T() mat.Matrix { return mat.Transpose{Matrix: c} }

// ToCOO converts to COOrdinate format. The returned COO does not share
// underlying storage with the receiver.
func (c *CSR) ToCOO() *COO {
	rows := make([]int, c.shape.NNZ)
	cols := make([]int, c.shape.NNZ)
	data := make([]float64, c.shape.NNZ)

	for i := 0; i < c.shape.Rows; i++ {
		for j := c.indptr[i]; j < c.indptr[i+1]; j++ {
			rows[j] = i
		}
	}
	copy(cols, c.ind)
	copy(data, c.data)

	return NewCOO(c.space, c.shape.Rows, c.shape.Cols, rows, cols, data)
}

// ToCSR returns the receiver.
func (c *CSR) ToCSR() *CSR { return c }

// ToDIA attempts a multi-diagonal conversion; see convert.go. CSR routes
// through COO, which is where the distinct-diagonal count check lives.
func (c *CSR) ToDIA(opts ConversionOptions) (*DIA, error) { return c.ToCOO().ToDIA(opts) }

// ToELL attempts an ELLPACK conversion; see convert.go.
func (c *CSR) ToELL(opts ConversionOptions) (*ELL, error) { return csrToELL(c, opts) }

// ToHYB converts to hybrid ELL+COO format; see convert.go.
func (c *CSR) ToHYB(opts ConversionOptions) (*HYB, error) { return csrToHYB(c, opts) }
