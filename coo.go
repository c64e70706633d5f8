package sparse

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/sparsekit/spmv/internal/pool"
)

var (
	_ Matrix        = (*COO)(nil)
	_ TypeConverter = (*COO)(nil)
)

// COO is a COOrdinate ("triplet") format sparse matrix: parallel row,
// column and value slices, one triplet per stored entry (spec.md §3, §4.3).
// NewCOO maintains the invariant that (rows, cols) is lexicographically
// strictly increasing with no duplicate pairs; every method that produces
// a COO (T, every other format's ToCOO, COOBuilder.Build) goes through
// NewCOO and so preserves it too. COO is the format of choice for building
// a matrix (see COOBuilder) and for converting into every other format; it
// is a poor choice for arithmetic since locating a given (i, j) requires a
// linear scan.
//
// A COO value is immutable once constructed: there is no Set method. Code
// that needs to build a matrix entry by entry uses COOBuilder, which
// produces a COO via Build.
type COO struct {
	shape Shape
	space Space
	rows  []int
	cols  []int
	data  []float64
}

// NewCOO creates a COOrdinate format sparse matrix of r rows and c columns
// from parallel rows, cols and data slices, one triplet per stored entry.
// The input slices are read but never mutated or retained; NewCOO sorts
// the triplets lexicographically by (row, col) and sums the values of any
// duplicate coordinates, so that on return (rows, cols) is strictly
// increasing with no duplicate pairs, the invariant spec.md §3 and §8
// require of every successfully constructed COO.
func NewCOO(space Space, r, c int, rows, cols []int, data []float64) *COO {
	checkShape(r, c)
	if len(rows) != len(cols) || len(rows) != len(data) {
		panic(ErrShapeMismatch)
	}
	rows, cols, data = sortDedupeCOO(rows, cols, data)
	return &COO{
		shape: Shape{Rows: r, Cols: c, NNZ: len(data)},
		space: space,
		rows:  rows,
		cols:  cols,
		data:  data,
	}
}

// sortDedupeCOO returns freshly allocated rows/cols/data slices holding the
// same triplets as the inputs, sorted lexicographically by (row, col) with
// duplicate coordinates merged by summing their values. The input slices
// are read only, never mutated.
func sortDedupeCOO(rows, cols []int, data []float64) ([]int, []int, []float64) {
	n := len(rows)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if rows[ia] != rows[ib] {
			return rows[ia] < rows[ib]
		}
		return cols[ia] < cols[ib]
	})

	outRows := make([]int, 0, n)
	outCols := make([]int, 0, n)
	outData := make([]float64, 0, n)
	for _, i := range idx {
		r, c, v := rows[i], cols[i], data[i]
		if last := len(outRows) - 1; last >= 0 && outRows[last] == r && outCols[last] == c {
			outData[last] += v
			continue
		}
		outRows = append(outRows, r)
		outCols = append(outCols, c)
		outData = append(outData, v)
	}
	return outRows, outCols, outData
}

// Dims returns the number of rows and columns in the matrix.
func (c *COO) Dims() (int, int) { return c.shape.Dims() }

// NNZ returns the number of stored (row, col) entries. Construction
// dedupes, so this is always the number of distinct non-zero coordinates.
func (c *COO) NNZ() int { return c.shape.NNZ }

// Space reports the memory space backing this matrix's storage.
func (c *COO) Space() Space { return c.space }

// At returns the element at row i, column j, or 0 if nothing is stored
// there. At panics if i or j is out of range.
func (c *COO) At(i, j int) float64 {
	if uint(i) >= uint(c.shape.Rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(c.shape.Cols) {
		panic(mat.ErrColAccess)
	}
	for k, row := range c.rows {
		if row == i && c.cols[k] == j {
			return c.data[k]
		}
	}
	return 0
}

// T returns the transpose of the matrix as a new COO. Swapping rows and
// cols alone does not preserve the lexicographic (row, col) ordering the
// receiver holds - a (row, col) pair that sorts early can swap to a pair
// that sorts late - so T re-sorts via NewCOO rather than reinterpreting
// the receiver's storage in place, and the result does not share backing
// storage with the receiver.
func (c *COO) T() mat.Matrix {
	return NewCOO(c.space, c.shape.Cols, c.shape.Rows, c.cols, c.rows, c.data)
}

// DoNonZero calls fn once for every stored entry, in (row, col)
// lexicographic order.
func (c *COO) DoNonZero(fn func(i, j int, v float64)) {
	for k := range c.data {
		fn(c.rows[k], c.cols[k], c.data[k])
	}
}

// ToCOO returns the receiver.
func (c *COO) ToCOO() *COO { return c }

func cumsum(p, cnt []int, n int) int {
	nz := 0
	for i := 0; i < n; i++ {
		p[i] = nz
		nz += cnt[i]
		cnt[i] = p[i]
	}
	p[n] = nz
	return nz
}

// compress builds an uncompressed-but-grouped-by-row CSR triple (indptr,
// ind, data) from COO triplets, without deduplicating. Since the source
// COO's (rows, cols) is already lexicographically sorted (NewCOO's
// invariant), grouping by row preserves each row's columns in ascending
// order, so the CSR compress produces already satisfies CSR's own
// within-row ordering invariant on its own. rows/cols/data are read only,
// never mutated, so a COO built over caller-owned slices is always safe
// to convert more than once.
func compress(row, col []int, data []float64, n int) (ia, ja []int, d []float64) {
	w := pool.GetInts(n+1, true)
	defer pool.PutInts(w)
	ia = make([]int, n+1)
	ja = make([]int, len(col))
	d = make([]float64, len(data))

	for _, v := range row {
		w[v]++
	}
	cumsum(ia, w, n)

	for j, v := range col {
		p := w[row[j]]
		ja[p] = v
		d[p] = data[j]
		w[row[j]]++
	}
	return ia, ja, d
}

// dedupe collapses runs of duplicate column indices within each row of a
// row-grouped (but not yet deduplicated) CSR triple, summing their values.
// It returns the surviving, deduplicated ja/d slices and rewrites ia in
// place to point into them. A source COO never actually holds duplicate
// coordinates (NewCOO's invariant), so in practice every run has length
// one; dedupe stays in the conversion path as a defensive pass rather than
// an assumption that the invariant can never be violated by a future
// change.
func dedupe(ia, ja []int, d []float64, m, n int) ([]int, []float64) {
	w := pool.GetInts(n, false)
	defer pool.PutInts(w)
	for i := range w {
		w[i] = -1
	}
	nz := 0

	for i := 0; i < m; i++ {
		q := nz
		for j := ia[i]; j < ia[i+1]; j++ {
			if w[ja[j]] >= q {
				d[w[ja[j]]] += d[j]
			} else {
				w[ja[j]] = nz
				ja[nz] = ja[j]
				d[nz] = d[j]
				nz++
			}
		}
		ia[i] = q
	}
	ia[m] = nz

	return ja[:nz], d[:nz]
}

// ToCSR converts the matrix to Compressed Sparse Row format. The returned
// CSR does not share underlying storage with the receiver, which is left
// unmodified; duplicate coordinates are summed.
func (c *COO) ToCSR() *CSR {
	ia, ja, data := compress(c.rows, c.cols, c.data, c.shape.Rows)
	ja, data = dedupe(ia, ja, data, c.shape.Rows, c.shape.Cols)
	return NewCSR(c.space, c.shape.Rows, c.shape.Cols, ia, ja, data)
}

// ToDIA attempts a multi-diagonal conversion; see convert.go.
func (c *COO) ToDIA(opts ConversionOptions) (*DIA, error) { return cooToDIA(c, opts) }

// ToELL attempts an ELLPACK conversion; see convert.go.
func (c *COO) ToELL(opts ConversionOptions) (*ELL, error) { return cooToELL(c, opts) }

// ToHYB converts to hybrid ELL+COO format; see convert.go.
func (c *COO) ToHYB(opts ConversionOptions) (*HYB, error) { return cooToHYB(c, opts) }
