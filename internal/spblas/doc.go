/*
Package spblas provides the sparse BLAS (Basic Linear Algebra Subprograms)
gather/scatter/reduction primitives that some format-specific SpMV kernels in
the parent package are built from: dense-vector gather (Dusga) and
scatter-add (Dussa) for the COO device kernel, and the CSR scalar
matrix/vector product (Dusmv) with its sparse dot product (Dusdot) for the
CSR kernels. The sparse update (Dusaxpy) is also provided but is not used
by any kernel.

See http://www.netlib.org/blas/blast-forum/chapter3.pdf for further information.
*/
package spblas
