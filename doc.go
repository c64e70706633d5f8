/*
Package sparse provides sparse matrix containers for heterogeneous memory
(host RAM and simulated accelerator memory), the conversions between them,
sparse matrix/dense vector multiplication (SpMV), and a BiCGstab Krylov
solver built on those primitives.

Large matrices arising in scientific computing and machine learning are
typically mostly zero valued. Sparse formats take advantage of this by
storing and processing only the non-zero values. This package implements
five such formats, organised as in the wider sparse-matrix literature:

 1. Creational - formats suited to incrementally building a matrix.
    COOBuilder (COOrdinate construction, aka "triplet" construction) is the
    format in this category.

 2. Operational - formats suited to repeated arithmetic, principally SpMV.
    COO and CSR (Compressed Sparse Row, aka CRS) are the formats in this
    category; COO also doubles as a hub format for conversion.

 3. Specialised - formats suited to a particular sparsity pattern. DIA
    (multi-diagonal/banded matrices), ELL (ELLPACK, matrices with a roughly
    uniform number of non-zeros per row) and HYB (ELL with a COO overflow
    tail, for matrices that are mostly-uniform but have a handful of
    unusually dense rows) are the formats in this category.

A common pattern is to build a matrix with COOBuilder or COO and then
Convert it to whichever of CSR/DIA/ELL/HYB suits the matrix's sparsity
pattern and the arithmetic to be performed.

Every format implements the gonum.org/v1/gonum/mat Matrix interface (Dims,
At, T), so values of these types may be passed anywhere a mat.Matrix is
accepted.
*/
package sparse
