package sparse

// ConversionOptions tunes the thresholds the DIA and ELL/HYB conversions
// use to decide whether a destination format suits the source matrix's
// sparsity pattern (spec.md §4.4's Open Question on conversion
// feasibility, resolved here rather than left for the caller to detect
// after the fact).
type ConversionOptions struct {
	// DIABandednessRatio is the largest number of distinct diagonals a DIA
	// conversion accepts, as a fraction of Rows+Cols. Above this, the
	// matrix is not banded enough for DIA and CSR is the better
	// destination.
	DIABandednessRatio float64

	// ELLPaddingRatio is the maximum allowed ratio of an ELL matrix's
	// total storage (Width*Rows slots) to its NNZ. Above this, row
	// lengths are too uneven for a single width to suit every row.
	ELLPaddingRatio float64
}

// DefaultDIABandednessRatio is the bandedness threshold used when
// converting through DefaultConversionOptions: a matrix whose non-zeros
// lie on more than (Rows+Cols)/2 distinct diagonals is rejected, while,
// say, a 5x5 bidiagonal matrix (2 diagonals against a limit of 5)
// converts.
const DefaultDIABandednessRatio = 0.5

// DefaultELLPaddingRatio is the padding threshold used when converting
// through DefaultConversionOptions. A matrix whose longest row is more
// than 3x its average row length wastes more than two thirds of its ELL
// storage on padding and is rejected.
const DefaultELLPaddingRatio = 3.0

// DefaultConversionOptions returns the thresholds used by Convert and by
// every format's ToDIA/ToELL/ToHYB method when none are supplied directly.
func DefaultConversionOptions() ConversionOptions {
	return ConversionOptions{
		DIABandednessRatio: DefaultDIABandednessRatio,
		ELLPaddingRatio:    DefaultELLPaddingRatio,
	}
}

// Convert converts m to the given destination format using the default
// conversion thresholds, dispatching through the TypeConverter interface
// every format implements. Convert panics if m does not implement
// TypeConverter, which every format in this package does.
func Convert(m Matrix, to Format) (Matrix, error) {
	return ConvertWith(m, to, DefaultConversionOptions())
}

// ConvertWith is Convert with explicit conversion thresholds.
func ConvertWith(m Matrix, to Format, opts ConversionOptions) (Matrix, error) {
	tc := m.(TypeConverter)
	switch to {
	case COOFormat:
		return tc.ToCOO(), nil
	case CSRFormat:
		return tc.ToCSR(), nil
	case DIAFormat:
		return tc.ToDIA(opts)
	case ELLFormat:
		return tc.ToELL(opts)
	case HYBFormat:
		return tc.ToHYB(opts)
	default:
		panic("sparse: unknown Format")
	}
}

// rowLengthsCOO returns the number of stored entries per row of c, in a
// freshly allocated slice.
func rowLengthsCOO(c *COO) []int {
	lens := make([]int, c.shape.Rows)
	for _, row := range c.rows {
		lens[row]++
	}
	return lens
}

// cooToDIA implements COO.ToDIA: group entries by diagonal offset, reject
// if they lie on too many distinct diagonals for the matrix's size, else
// build the column-major DIA backing slice.
func cooToDIA(c *COO, opts ConversionOptions) (*DIA, error) {
	present := make(map[int]bool)
	for k := range c.data {
		present[c.rows[k]-c.cols[k]] = true
	}
	// offset here is row-col so that, after negation below, it matches
	// DIA's col-row convention; collect distinct offsets and sort them.
	offsets := make([]int, 0, len(present))
	for off := range present {
		offsets = append(offsets, -off)
	}
	for i := 1; i < len(offsets); i++ {
		for j := i; j > 0 && offsets[j-1] > offsets[j]; j-- {
			offsets[j-1], offsets[j] = offsets[j], offsets[j-1]
		}
	}

	if float64(len(offsets)) > opts.DIABandednessRatio*float64(c.shape.Rows+c.shape.Cols) {
		return nil, &FormatConversionError{
			Dst:    DIAFormat,
			Reason: "non-zeros are spread across too many distinct diagonals",
		}
	}

	storage := len(offsets) * c.shape.Rows
	if storage == 0 {
		return NewDIA(c.space, c.shape.Rows, c.shape.Cols, offsets, nil), nil
	}

	offsetIndex := make(map[int]int, len(offsets))
	for k, off := range offsets {
		offsetIndex[off] = k
	}

	data := make([]float64, storage)
	for k := range c.data {
		off := c.cols[k] - c.rows[k]
		idx := offsetIndex[off]
		data[idx*c.shape.Rows+c.rows[k]] += c.data[k]
	}

	return NewDIA(c.space, c.shape.Rows, c.shape.Cols, offsets, data), nil
}

// cooToELL implements COO.ToELL: find the longest row, reject if that
// would waste more storage on padding than opts allows, else build the
// column-major ELL backing slices.
func cooToELL(c *COO, opts ConversionOptions) (*ELL, error) {
	lens := rowLengthsCOO(c)
	width := 0
	for _, n := range lens {
		if n > width {
			width = n
		}
	}

	storage := width * c.shape.Rows
	if c.shape.NNZ > 0 && storage > 0 {
		padding := float64(storage) / float64(c.shape.NNZ)
		if padding > opts.ELLPaddingRatio {
			return nil, &FormatConversionError{
				Dst:    ELLFormat,
				Reason: "row lengths are too uneven for a single ELL width",
			}
		}
	}

	cols := make([]int, storage)
	for i := range cols {
		cols[i] = ellPad
	}
	data := make([]float64, storage)
	slot := make([]int, c.shape.Rows)

	for k := range c.data {
		row := c.rows[k]
		s := slot[row]
		idx := s*c.shape.Rows + row
		cols[idx] = c.cols[k]
		data[idx] += c.data[k]
		slot[row]++
	}

	return NewELL(c.space, c.shape.Rows, c.shape.Cols, width, cols, data), nil
}

// ellWidthForHYB picks the common per-row width a HYB conversion's ELL
// core uses: the average row length, rounded up. Rows longer than this
// overflow into the COO tail; rows shorter are padded as any ELL row is.
func ellWidthForHYB(rows, nnz int) int {
	if rows == 0 {
		return 0
	}
	width := nnz / rows
	if nnz%rows != 0 {
		width++
	}
	return width
}

// cooToHYB implements COO.ToHYB: split entries between an ELL core of a
// common width and a COO tail holding whatever overflows it. Unlike
// cooToELL, this never fails - the tail absorbs whatever the core can't.
func cooToHYB(c *COO, opts ConversionOptions) (*HYB, error) {
	width := ellWidthForHYB(c.shape.Rows, c.shape.NNZ)
	storage := width * c.shape.Rows

	cols := make([]int, storage)
	for i := range cols {
		cols[i] = ellPad
	}
	data := make([]float64, storage)
	slot := make([]int, c.shape.Rows)

	var tailRows, tailCols []int
	var tailData []float64

	for k := range c.data {
		row := c.rows[k]
		if slot[row] < width {
			s := slot[row]
			idx := s*c.shape.Rows + row
			cols[idx] = c.cols[k]
			data[idx] += c.data[k]
			slot[row]++
			continue
		}
		tailRows = append(tailRows, row)
		tailCols = append(tailCols, c.cols[k])
		tailData = append(tailData, c.data[k])
	}

	ell := NewELL(c.space, c.shape.Rows, c.shape.Cols, width, cols, data)
	tail := NewCOO(c.space, c.shape.Rows, c.shape.Cols, tailRows, tailCols, tailData)
	return NewHYB(ell, tail), nil
}

// csrToELL implements CSR.ToELL directly off the row-pointer structure,
// rather than routing through COO, since CSR already groups entries by row.
func csrToELL(c *CSR, opts ConversionOptions) (*ELL, error) {
	width := 0
	for i := 0; i < c.shape.Rows; i++ {
		begin, end := c.RowRange(i)
		if n := end - begin; n > width {
			width = n
		}
	}

	storage := width * c.shape.Rows
	if c.shape.NNZ > 0 && storage > 0 {
		padding := float64(storage) / float64(c.shape.NNZ)
		if padding > opts.ELLPaddingRatio {
			return nil, &FormatConversionError{
				Dst:    ELLFormat,
				Reason: "row lengths are too uneven for a single ELL width",
			}
		}
	}

	cols := make([]int, storage)
	for i := range cols {
		cols[i] = ellPad
	}
	data := make([]float64, storage)

	for i := 0; i < c.shape.Rows; i++ {
		begin, end := c.RowRange(i)
		for s, k := 0, begin; k < end; s, k = s+1, k+1 {
			idx := s*c.shape.Rows + i
			cols[idx] = c.ind[k]
			data[idx] = c.data[k]
		}
	}

	return NewELL(c.space, c.shape.Rows, c.shape.Cols, width, cols, data), nil
}

// csrToHYB implements CSR.ToHYB directly off the row-pointer structure.
func csrToHYB(c *CSR, opts ConversionOptions) (*HYB, error) {
	width := ellWidthForHYB(c.shape.Rows, c.shape.NNZ)
	storage := width * c.shape.Rows

	cols := make([]int, storage)
	for i := range cols {
		cols[i] = ellPad
	}
	data := make([]float64, storage)

	var tailRows, tailCols []int
	var tailData []float64

	for i := 0; i < c.shape.Rows; i++ {
		begin, end := c.RowRange(i)
		for s, k := 0, begin; k < end; s, k = s+1, k+1 {
			if s < width {
				idx := s*c.shape.Rows + i
				cols[idx] = c.ind[k]
				data[idx] = c.data[k]
				continue
			}
			tailRows = append(tailRows, i)
			tailCols = append(tailCols, c.ind[k])
			tailData = append(tailData, c.data[k])
		}
	}

	ell := NewELL(c.space, c.shape.Rows, c.shape.Cols, width, cols, data)
	tail := NewCOO(c.space, c.shape.Rows, c.shape.Cols, tailRows, tailCols, tailData)
	return NewHYB(ell, tail), nil
}
