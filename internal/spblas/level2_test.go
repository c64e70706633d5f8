package spblas

import (
	"testing"
)

func TestDusmv(t *testing.T) {
	tests := []struct {
		rows     int
		indptr   []int
		ind      []int
		data     []float64
		alpha    float64
		x        []float64
		incx     int
		y        []float64
		incy     int
		expected []float64
	}{
		{
			rows:   3,
			indptr: []int{0, 2, 2, 5},
			ind:    []int{0, 2, 0, 1, 3},
			data:   []float64{1, 2, 3, 4, 5},
			alpha:  1,
			// 1, 0, 2, 0,
			// 0, 0, 0, 0,
			// 3, 4, 0, 5,
			x:        []float64{1, 2, 3, 4},
			incx:     1,
			y:        []float64{0, 0, 0},
			incy:     1,
			expected: []float64{7, 0, 31},
		},
		{
			rows:   3,
			indptr: []int{0, 2, 2, 5},
			ind:    []int{0, 2, 0, 1, 3},
			data:   []float64{1, 2, 3, 4, 5},
			alpha:  2,
			x: []float64{
				1, 5,
				2, 5,
				3, 5,
				4, 5,
			},
			incx: 2,
			y: []float64{
				1, 5, 5, 5,
				2, 5, 5, 5,
				3, 5, 5, 5,
			},
			incy: 4,
			expected: []float64{
				15, 5, 5, 5,
				2, 5, 5, 5,
				65, 5, 5, 5,
			},
		},
		{
			// alpha == 0 is a documented no-op
			rows:     3,
			indptr:   []int{0, 2, 2, 5},
			ind:      []int{0, 2, 0, 1, 3},
			data:     []float64{1, 2, 3, 4, 5},
			alpha:    0,
			x:        []float64{1, 2, 3, 4},
			incx:     1,
			y:        []float64{9, 9, 9},
			incy:     1,
			expected: []float64{9, 9, 9},
		},
	}

	for ti, test := range tests {
		Dusmv(test.rows, test.indptr, test.ind, test.data, test.alpha, test.x, test.incx, test.y, test.incy)

		for i, v := range test.expected {
			if v != test.y[i] {
				t.Errorf("Test %d: Expected %f at %d but received %f", ti, v, i, test.y[i])
			}
		}
	}
}
