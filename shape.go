package sparse

// Shape describes the dimensions and non-zero count shared by every sparse
// matrix format in this package (spec.md §3 "Sparse matrix", §4.1). Every
// format embeds a Shape and exposes it through Dims/NNZ rather than
// recomputing rows/cols/nnz on every call.
type Shape struct {
	Rows, Cols int
	NNZ        int
}

// Dims returns r, c: the number of rows and columns, satisfying
// gonum.org/v1/gonum/mat's Matrix interface.
func (s Shape) Dims() (r, c int) { return s.Rows, s.Cols }

func checkShape(rows, cols int) {
	if rows < 0 || cols < 0 {
		panic("sparse: negative dimension")
	}
}
