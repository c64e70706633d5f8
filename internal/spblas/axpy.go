package spblas

// Dusaxpy (sparse update (y <- alpha * x + y)) scales the sparse-valued row
// segment x (indexed by indx) by alpha and accumulates it into the dense
// vector y. indx is used as the index values to gather and incy as the
// stride for y. No SpMV kernel in the parent package calls it.
func Dusaxpy(alpha float64, x []float64, indx []int, y []float64, incy int) {
	for i, index := range indx {
		y[index*incy] += alpha * x[i]
	}
}
