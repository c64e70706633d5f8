package sparse

import "testing"

func TestDIADiagonal(t *testing.T) {
	// diag(1, 2, 3, 4)
	m := NewDIA(Host, 4, 4, []int{0}, []float64{1, 2, 3, 4})
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = float64(i + 1)
			}
			if got := m.At(i, j); got != want {
				t.Errorf("At(%d,%d) = %g, want %g", i, j, got, want)
			}
		}
	}
	if m.NNZ() != 4 {
		t.Errorf("NNZ() = %d, want 4", m.NNZ())
	}
}

func TestDIAMultiDiagonal(t *testing.T) {
	// tridiagonal 4x4: offsets -1, 0, 1
	offsets := []int{-1, 0, 1}
	data := make([]float64, 3*4)
	// offset -1: valid rows 1..3 -> element (i, i-1)
	data[0*4+1] = 21
	data[0*4+2] = 32
	data[0*4+3] = 43
	// offset 0: valid rows 0..3 -> element (i, i)
	data[1*4+0] = 11
	data[1*4+1] = 22
	data[1*4+2] = 33
	data[1*4+3] = 44
	// offset 1: valid rows 0..2 -> element (i, i+1)
	data[2*4+0] = 12
	data[2*4+1] = 23
	data[2*4+2] = 34

	m := NewDIA(Host, 4, 4, offsets, data)
	if got := m.At(1, 0); got != 21 {
		t.Errorf("At(1,0) = %g, want 21", got)
	}
	if got := m.At(0, 1); got != 12 {
		t.Errorf("At(0,1) = %g, want 12", got)
	}
	if got := m.At(3, 3); got != 44 {
		t.Errorf("At(3,3) = %g, want 44", got)
	}
	if got := m.At(3, 0); got != 0 {
		t.Errorf("At(3,0) = %g, want 0 (not a stored diagonal)", got)
	}
}

func TestDIAToCOORoundTrip(t *testing.T) {
	m := NewDIA(Host, 3, 3, []int{0}, []float64{1, 2, 3})
	coo := m.ToCOO()
	if coo.NNZ() != 3 {
		t.Fatalf("ToCOO().NNZ() = %d, want 3", coo.NNZ())
	}
	for i := 0; i < 3; i++ {
		if got := coo.At(i, i); got != float64(i+1) {
			t.Errorf("ToCOO().At(%d,%d) = %g, want %g", i, i, got, float64(i+1))
		}
	}
}

func TestDIAT(t *testing.T) {
	// rectangular: 2 rows, 3 cols, single super-diagonal offset 1.
	m := NewDIA(Host, 2, 3, []int{1}, []float64{10, 20})
	tr := m.T()
	r, c := tr.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("T().Dims() = (%d, %d), want (3, 2)", r, c)
	}
	if got := tr.At(1, 0); got != 10 {
		t.Errorf("T().At(1,0) = %g, want 10", got)
	}
	if got := tr.At(2, 1); got != 20 {
		t.Errorf("T().At(2,1) = %g, want 20", got)
	}
}
