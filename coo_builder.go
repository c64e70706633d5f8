package sparse

import "gonum.org/v1/gonum/mat"

// key identifies a stored entry's coordinate within a COOBuilder.
type key struct {
	i, j int
}

var _ mat.Mutable = (*COOBuilder)(nil)

// COOBuilder is a Dictionary-of-Keys-backed accumulator for incrementally
// constructing a sparse matrix one Set call at a time (spec.md §4.3's
// "Creational" format). It is good for random-access construction and poor
// for arithmetic or iteration in a guaranteed order; Build consumes it into
// an immutable COO for everything downstream.
//
// COOBuilder exists instead of letting COO itself be mutable because every
// other format in this package treats its storage as fixed once
// constructed - keeping the same discipline for COO means conversions
// never have to worry about the source matrix changing underneath them.
type COOBuilder struct {
	shape    Shape
	space    Space
	elements map[key]float64
}

// NewCOOBuilder creates an empty builder for an r x c matrix whose
// eventual COO will be tagged with the given memory space.
func NewCOOBuilder(space Space, r, c int) *COOBuilder {
	checkShape(r, c)
	return &COOBuilder{
		shape:    Shape{Rows: r, Cols: c},
		space:    space,
		elements: make(map[key]float64),
	}
}

// Dims returns the number of rows and columns.
func (b *COOBuilder) Dims() (int, int) { return b.shape.Dims() }

// At returns the element at row i, column j, or 0 if nothing has been Set
// there yet. At panics if i or j is out of range.
func (b *COOBuilder) At(i, j int) float64 {
	if uint(i) >= uint(b.shape.Rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(b.shape.Cols) {
		panic(mat.ErrColAccess)
	}
	return b.elements[key{i, j}]
}

// T returns an implicit transpose of the builder's current contents.
func (b *COOBuilder) T() mat.Matrix { return mat.Transpose{Matrix: b} }

// Set sets the element at row i, column j to v, overwriting any value
// previously stored there. Set panics if i or j is out of range.
func (b *COOBuilder) Set(i, j int, v float64) {
	if uint(i) >= uint(b.shape.Rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(b.shape.Cols) {
		panic(mat.ErrColAccess)
	}
	b.elements[key{i, j}] = v
}

// Add accumulates v into the element at row i, column j, so repeated calls
// for the same coordinate sum rather than overwrite - the behaviour COO's
// own At/convert duplicate-summing gives for free, made explicit here since
// COOBuilder's map storage has no notion of duplicates to sum later.
func (b *COOBuilder) Add(i, j int, v float64) {
	if uint(i) >= uint(b.shape.Rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(b.shape.Cols) {
		panic(mat.ErrColAccess)
	}
	b.elements[key{i, j}] += v
}

// NNZ returns the number of distinct coordinates set so far.
func (b *COOBuilder) NNZ() int { return len(b.elements) }

// Build consumes the builder's accumulated entries into a new COO. The
// entries are gathered in map iteration order, which is unspecified, but
// NewCOO sorts them into the (row, col) order every COO guarantees, so
// Build's result is deterministic regardless of the map's order.
func (b *COOBuilder) Build() *COO {
	nnz := b.NNZ()
	rows := make([]int, nnz)
	cols := make([]int, nnz)
	data := make([]float64, nnz)

	i := 0
	for k, v := range b.elements {
		rows[i], cols[i], data[i] = k.i, k.j, v
		i++
	}

	return NewCOO(b.space, b.shape.Rows, b.shape.Cols, rows, cols, data)
}
