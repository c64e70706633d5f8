package sparse

import "gonum.org/v1/gonum/mat"

var _ Matrix = (*HYB)(nil)

// HYB is a hybrid ELLPACK + COOrdinate format sparse matrix: a common
// per-row width is stored densely in an ELL core, and whatever overflows
// that width - the handful of unusually dense rows a mostly-uniform matrix
// tends to have - is stored separately in a COO tail (spec.md §4.3, §4.5).
// This is the format HYB improves on ELL with: ELL alone must either pad
// every row out to the longest row's length (wasting memory and kernel
// cycles on matrices with a few outlier rows) or refuse to convert;
// HYB keeps the core narrow and lets the tail absorb the outliers.
//
// The ell and coo fields never share backing storage: a given stored
// entry lives in exactly one of them.
type HYB struct {
	shape Shape
	space Space
	ell   *ELL
	coo   *COO
}

// NewHYB composes an ELL core and a COO overflow tail into a HYB matrix.
// ell and coo must describe the same dimensions; NewHYB panics otherwise.
func NewHYB(ell *ELL, coo *COO) *HYB {
	er, ec := ell.Dims()
	cr, cc := coo.Dims()
	if er != cr || ec != cc {
		panic(ErrShapeMismatch)
	}
	return &HYB{
		shape: Shape{Rows: er, Cols: ec, NNZ: ell.NNZ() + coo.NNZ()},
		space: ell.Space(),
		ell:   ell,
		coo:   coo,
	}
}

// Dims returns the number of rows and columns in the matrix.
func (h *HYB) Dims() (int, int) { return h.shape.Dims() }

// NNZ returns the combined number of entries stored in the ELL core and
// the COO overflow tail.
func (h *HYB) NNZ() int { return h.shape.NNZ }

// Space reports the memory space backing this matrix's storage.
func (h *HYB) Space() Space { return h.space }

// ELL returns the matrix's ELLPACK core.
func (h *HYB) ELL() *ELL { return h.ell }

// COO returns the matrix's COOrdinate overflow tail.
func (h *HYB) COO() *COO { return h.coo }

// At returns the element at row i, column j, checking the ELL core first
// and falling back to the COO tail. At panics if i or j is out of range.
func (h *HYB) At(i, j int) float64 {
	if v := h.ell.At(i, j); v != 0 {
		return v
	}
	return h.coo.At(i, j)
}

// T returns the transpose of the matrix as an implicit gonum transpose;
// transposing would require re-splitting entries between a new ELL core
// and COO tail since "overflow" is a per-row, not per-column, concept.
func (h *HYB) T() mat.Matrix { return mat.Transpose{Matrix: h} }

// ToCOO converts to COOrdinate format by concatenating the ELL core's
// entries with the COO tail's. The concatenation isn't in (row, col)
// order; NewCOO sorts the combined triplets into the order COO requires.
func (h *HYB) ToCOO() *COO {
	ellCOO := h.ell.ToCOO()
	nnz := ellCOO.NNZ() + h.coo.NNZ()
	rows := make([]int, 0, nnz)
	cols := make([]int, 0, nnz)
	data := make([]float64, 0, nnz)

	ellCOO.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, v)
	})
	h.coo.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, v)
	})

	return NewCOO(h.space, h.shape.Rows, h.shape.Cols, rows, cols, data)
}

// ToCSR converts to Compressed Sparse Row format via COO.
func (h *HYB) ToCSR() *CSR { return h.ToCOO().ToCSR() }

// ToDIA attempts a multi-diagonal conversion via COO; see convert.go.
func (h *HYB) ToDIA(opts ConversionOptions) (*DIA, error) { return h.ToCOO().ToDIA(opts) }

// ToELL attempts an ELLPACK conversion via COO; see convert.go. Note this
// collapses the core/tail split: a HYB that round-trips through ToELL must
// have all of its entries fit within a single uniform width, which its own
// construction does not guarantee.
func (h *HYB) ToELL(opts ConversionOptions) (*ELL, error) { return h.ToCOO().ToELL(opts) }

// ToHYB returns the receiver; opts is ignored since the receiver is
// already in HYB format and cannot fail to convert to itself.
func (h *HYB) ToHYB(opts ConversionOptions) (*HYB, error) { return h, nil }
