package sparse

import "gonum.org/v1/gonum/blas/blas64"

// Array is a dense, contiguous, one-dimensional buffer of float64 values
// tagged with the Space it resides in (spec.md §3 "Dense array", §4.2).
// Arrays back the x/y operands of SpMV and the solution/residual/search
// vectors of BiCGstab. Resize never preserves content and may reallocate,
// matching spec.md's stated invariant; callers that need the old values
// must copy them out first.
type Array struct {
	space Space
	data  []float64
}

// NewArray returns an Array of length n in the given space, zero filled.
func NewArray(space Space, n int) *Array {
	return &Array{space: space, data: space.alloc(n)}
}

// NewArrayFromSlice returns an Array in the given space backed by a copy of
// data. The source slice is always treated as host-resident regardless of
// space; constructing a Device array this way models the one bulk transfer
// a real accelerator upload would require.
func NewArrayFromSlice(space Space, data []float64) *Array {
	a := NewArray(space, len(data))
	copy(a.data, data)
	return a
}

// Space reports which memory space a resides in.
func (a *Array) Space() Space { return a.space }

// Len returns the current logical length of a.
func (a *Array) Len() int { return len(a.data) }

// At returns the element at index i. At panics if i is out of range.
func (a *Array) At(i int) float64 { return a.data[i] }

// Set sets the element at index i to v. Set panics if i is out of range.
func (a *Array) Set(i int, v float64) { a.data[i] = v }

// Raw exposes the backing slice directly, for kernels (spmv.go,
// spmv_vector.go, spmv_device.go) that need to operate on it without per-element At/Set call
// overhead. Callers must not retain the slice past the Array's next Resize
// or Swap.
func (a *Array) Raw() []float64 { return a.data }

// Resize grows or shrinks a to length n. Existing content is not
// preserved; the new length is zero filled. Per §4.2, this may reallocate
// and invalidates any slice previously returned by Raw.
func (a *Array) Resize(n int) {
	a.data = a.space.alloc(n)
}

// Swap exchanges the backing storage of a and b in O(1), including their
// memory spaces, without copying any elements.
func (a *Array) Swap(b *Array) {
	a.data, b.data = b.data, a.data
	a.space, b.space = b.space, a.space
}

// CopyTo copies a's contents into dst, resizing dst as needed. This is the
// single abstract cross-space-copy operation spec.md §9 calls for: whether
// src and dst share a space or not, CopyTo is the only place a bulk
// transfer between spaces happens. dst keeps its own space.
func (a *Array) CopyTo(dst *Array) {
	if dst.Len() != a.Len() {
		dst.data = dst.space.alloc(a.Len())
	}
	copy(dst.data, a.data)
}

// vec wraps a's backing slice as a gonum blas64.Vector with unit stride,
// for use by the BLAS-1 façade below.
func (a *Array) vec() blas64.Vector {
	return blas64.Vector{N: len(a.data), Inc: 1, Data: a.data}
}

// sameSpace reports whether a and b reside in the same memory space,
// which every BLAS-1 and SpMV operation below requires (spec.md §4.2, §5).
func sameSpace(spaces ...Space) bool {
	for i := 1; i < len(spaces); i++ {
		if spaces[i] != spaces[0] {
			return false
		}
	}
	return true
}

// Fill sets every element of a to v. There is no single BLAS-1 primitive
// named "fill"; blas64 has no equivalent, so this is a direct loop - the
// one BLAS-1 façade operation that makes no blas64 call at all.
func (a *Array) Fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Dotc returns the (conjugate, for the real float64 case simply the) dot
// product of a and b: sum(a[i]*b[i]). Dotc panics with ErrShapeMismatch if
// the lengths differ and ErrMemorySpaceMismatch if a and b are not
// co-resident.
func Dotc(a, b *Array) float64 {
	mustMatch(a, b)
	return blas64.Dot(a.vec(), b.vec())
}

// Nrm2 returns the Euclidean (L2) norm of a, used by the stopping
// criterion (stopping.go) and BiCGstab's per-iteration residual check.
func Nrm2(a *Array) float64 {
	return blas64.Nrm2(a.vec())
}

// Axpy computes y <- alpha*x + y in place.
func Axpy(alpha float64, x, y *Array) {
	mustMatch(x, y)
	blas64.Axpy(alpha, x.vec(), y.vec())
}

// Copy copies src into dst in place, without resizing (unlike CopyTo,
// which resizes dst when the lengths differ). Copy panics if the lengths
// differ.
func Copy(dst, src *Array) {
	mustMatch(dst, src)
	blas64.Copy(src.vec(), dst.vec())
}

// Axpby computes z <- alpha*x + beta*y, writing the result into z. z may
// alias neither x nor y. There is no "axpby" BLAS-1 primitive; this is
// composed from three blas64 calls (Copy, then Scal, then Axpy) rather
// than a single routine.
func Axpby(alpha float64, x *Array, beta float64, y *Array, z *Array) {
	mustMatch(x, y, z)
	Copy(z, y)
	blas64.Scal(beta, z.vec())
	blas64.Axpy(alpha, x.vec(), z.vec())
}

// Axpbypcz computes z <- alpha*x + beta*y + z in place, the fused
// triple-axpy BiCGstab's step 7 (x <- x + alpha*Mp + omega*Ms) needs. Like
// Axpby, there is no single BLAS-1 routine for this; it is composed from
// two blas64.Axpy calls.
func Axpbypcz(alpha float64, x *Array, beta float64, y *Array, z *Array) {
	mustMatch(x, y, z)
	blas64.Axpy(alpha, x.vec(), z.vec())
	blas64.Axpy(beta, y.vec(), z.vec())
}

func mustMatch(arrays ...*Array) {
	n := arrays[0].Len()
	spaces := make([]Space, len(arrays))
	for i, a := range arrays {
		if a.Len() != n {
			panic(ErrShapeMismatch)
		}
		spaces[i] = a.Space()
	}
	if !sameSpace(spaces...) {
		panic(ErrMemorySpaceMismatch)
	}
}
