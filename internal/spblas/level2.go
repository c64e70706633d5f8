package spblas

// Dusmv (sparse matrix / vector multiply (y <- alpha * A * x + y)) multiplies
// the dense vector x by the CSR matrix described by (rows, indptr, ind,
// data), scaled by alpha, and accumulates the result into the dense vector
// y. incx and incy give the stride to use when indexing into x and y. This
// is the CSR "scalar" kernel from spec.md's §4.5: one thread (here, one loop
// iteration) per row, iterating row_offsets[i]..row_offsets[i+1].
func Dusmv(rows int, indptr []int, ind []int, data []float64, alpha float64, x []float64, incx int, y []float64, incy int) {
	if alpha == 0 {
		return
	}

	for i := 0; i < rows; i++ {
		begin, end := indptr[i], indptr[i+1]
		y[i*incy] += alpha * Dusdot(data[begin:end], ind[begin:end], x, incx)
	}
}
