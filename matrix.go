package sparse

import "gonum.org/v1/gonum/mat"

// Matrix is the interface every sparse format in this package implements.
// It embeds gonum.org/v1/gonum/mat.Matrix so any sparse container may be
// passed to gonum routines that accept a mat.Matrix, and adds the two
// properties spec.md §3 requires of every sparse matrix: its non-zero
// count and the memory space its storage resides in.
type Matrix interface {
	mat.Matrix

	// NNZ returns the number of explicitly stored (non-zero) entries.
	NNZ() int

	// Space reports which memory space backs this matrix's storage.
	Space() Space
}

// TypeConverter is implemented by formats that can produce every other
// format in the system. COO and CSR are the two hub formats (spec.md §4.4);
// every format converts to and from at least one of them. DIA, ELL and HYB
// conversions can fail - the sparsity pattern may not suit the destination
// format - so those return an error rather than a bare value.
type TypeConverter interface {
	// ToCOO returns a COOrdinate version of the matrix.
	ToCOO() *COO

	// ToCSR returns a Compressed Sparse Row version of the matrix.
	ToCSR() *CSR

	// ToDIA attempts a multi-diagonal version of the matrix, failing with a
	// *FormatConversionError if the matrix's entries lie on too many
	// distinct diagonals for its size.
	ToDIA(opts ConversionOptions) (*DIA, error)

	// ToELL attempts an ELLPACK version of the matrix, failing with a
	// *FormatConversionError if the row lengths are too uneven.
	ToELL(opts ConversionOptions) (*ELL, error)

	// ToHYB attempts a hybrid ELL+COO version of the matrix. Unlike ToELL,
	// ToHYB never fails on row-length variance: overflow beyond the common
	// per-row width is placed in the COO tail instead of being rejected.
	ToHYB(opts ConversionOptions) (*HYB, error)
}

// Format identifies one of the sparse storage layouts this package
// implements, used to name a conversion's destination and to report which
// format a FormatConversionError was attempting to produce.
type Format int

const (
	// COOFormat is the COOrdinate ("triplet") format: parallel row, column
	// and value slices, used both as a hub format and, once sorted and
	// deduplicated, as an operational format in its own right.
	COOFormat Format = iota

	// CSRFormat is Compressed Sparse Row format: the primary operational
	// hub format for arithmetic.
	CSRFormat

	// DIAFormat is the multi-diagonal (banded) format.
	DIAFormat

	// ELLFormat is the ELLPACK format: fixed-width, padded, column-major
	// per-row storage suited to roughly-uniform row lengths.
	ELLFormat

	// HYBFormat is the hybrid ELL+COO format: an ELL core plus a COO
	// overflow tail for rows longer than the core's width.
	HYBFormat
)

func (f Format) String() string {
	switch f {
	case COOFormat:
		return "COO"
	case CSRFormat:
		return "CSR"
	case DIAFormat:
		return "DIA"
	case ELLFormat:
		return "ELL"
	case HYBFormat:
		return "HYB"
	default:
		return "unknown format"
	}
}
