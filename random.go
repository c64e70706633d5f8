package sparse

import "math/rand"

// Random constructs an r x c matrix in the given space with non-zero
// values scattered randomly through it, then converts it to the requested
// format. density is a value in [0, 1]: Random draws density*r*c random
// coordinates, so 0 leaves the matrix empty. Coordinates that collide are
// summed by NewCOO, same as any other COO, so fewer than density*r*c
// elements may end up stored and a density of 1 does not fill every
// element.
//
// Random panics if converting to format fails (DIA and ELL can reject a
// pattern that doesn't suit them); callers building a matrix
// whose format conversion might fail should use DefaultConversionOptions
// directly via ConvertWith instead.
func Random(space Space, r, c int, density float32, format Format) Matrix {
	d := int(density * float32(r) * float32(c))

	rows := make([]int, d)
	cols := make([]int, d)
	data := make([]float64, d)

	for i := 0; i < d; i++ {
		data[i] = rand.Float64()
		rows[i] = rand.Intn(r)
		cols[i] = rand.Intn(c)
	}

	coo := NewCOO(space, r, c, rows, cols, data)
	m, err := Convert(coo, format)
	if err != nil {
		panic(err)
	}
	return m
}
