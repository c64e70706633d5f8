package sparse

import "testing"

// denseRef is a small dense reference used to check every SpMV kernel
// against the same expected y.
var denseRef = [][]float64{
	{1, 0, 2},
	{0, 0, 0},
	{0, 3, 4},
}

func refMatVec(alpha float64, x []float64, beta float64, y []float64) []float64 {
	out := make([]float64, len(y))
	for i := range denseRef {
		var sum float64
		for j, v := range denseRef[i] {
			sum += v * x[j]
		}
		out[i] = beta*y[i] + alpha*sum
	}
	return out
}

func approxEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > 1e-9 {
			return false
		}
	}
	return true
}

func TestSpmvCSR(t *testing.T) {
	m := newTestCSR()
	x := NewArrayFromSlice(Host, []float64{1, 2, 3})
	y := NewArrayFromSlice(Host, []float64{10, 20, 30})

	if err := Spmv(2, m, x, 1, y); err != nil {
		t.Fatalf("Spmv: %v", err)
	}
	want := refMatVec(2, []float64{1, 2, 3}, 1, []float64{10, 20, 30})
	if !approxEqual(y.Raw(), want) {
		t.Errorf("y = %v, want %v", y.Raw(), want)
	}
}

func TestSpmvCOO(t *testing.T) {
	coo := NewCOO(Host, 3, 3, []int{0, 0, 2, 2}, []int{0, 2, 1, 2}, []float64{1, 2, 3, 4})
	x := NewArrayFromSlice(Host, []float64{1, 2, 3})
	y := NewArray(Host, 3)

	if err := Spmv(1, coo, x, 0, y); err != nil {
		t.Fatalf("Spmv: %v", err)
	}
	want := refMatVec(1, []float64{1, 2, 3}, 0, []float64{0, 0, 0})
	if !approxEqual(y.Raw(), want) {
		t.Errorf("y = %v, want %v", y.Raw(), want)
	}
}

func TestSpmvELL(t *testing.T) {
	m := newTestELL()
	x := NewArrayFromSlice(Host, []float64{1, 2, 3})
	y := NewArray(Host, 3)

	if err := Spmv(1, m, x, 0, y); err != nil {
		t.Fatalf("Spmv: %v", err)
	}
	want := refMatVec(1, []float64{1, 2, 3}, 0, []float64{0, 0, 0})
	if !approxEqual(y.Raw(), want) {
		t.Errorf("y = %v, want %v", y.Raw(), want)
	}
}

func TestSpmvDIA(t *testing.T) {
	// diag(1, 2, 3, 4)
	m := NewDIA(Host, 4, 4, []int{0}, []float64{1, 2, 3, 4})
	x := NewArrayFromSlice(Host, []float64{1, 1, 1, 1})
	y := NewArray(Host, 4)

	if err := Spmv(1, m, x, 0, y); err != nil {
		t.Fatalf("Spmv: %v", err)
	}
	want := []float64{1, 2, 3, 4}
	if !approxEqual(y.Raw(), want) {
		t.Errorf("y = %v, want %v", y.Raw(), want)
	}
}

func TestSpmvHYB(t *testing.T) {
	ell := newTestELL()
	tail := NewCOO(Host, 3, 3, []int{1}, []int{1}, []float64{9})
	h := NewHYB(ell, tail)

	x := NewArrayFromSlice(Host, []float64{1, 2, 3})
	y := NewArray(Host, 3)

	if err := Spmv(1, h, x, 0, y); err != nil {
		t.Fatalf("Spmv: %v", err)
	}
	ref := [][]float64{
		{1, 0, 2},
		{0, 9, 0},
		{0, 3, 4},
	}
	want := make([]float64, 3)
	for i := range ref {
		for j, v := range ref[i] {
			want[i] += v * x.At(j)
		}
	}
	if !approxEqual(y.Raw(), want) {
		t.Errorf("y = %v, want %v", y.Raw(), want)
	}
}

func TestSpmvMemorySpaceMismatch(t *testing.T) {
	m := newTestCSR()
	x := NewArray(Device, 3)
	y := NewArray(Host, 3)
	if err := Spmv(1, m, x, 1, y); err != ErrMemorySpaceMismatch {
		t.Errorf("Spmv = %v, want ErrMemorySpaceMismatch", err)
	}
}

func TestSpmvShapeMismatch(t *testing.T) {
	m := newTestCSR()
	x := NewArray(Host, 2)
	y := NewArray(Host, 3)
	if err := Spmv(1, m, x, 1, y); err != ErrShapeMismatch {
		t.Errorf("Spmv = %v, want ErrShapeMismatch", err)
	}
}

func TestSpmvVectorMatchesScalar(t *testing.T) {
	m := newTestCSR()
	x := NewArrayFromSlice(Host, []float64{1, 2, 3})

	yScalar := NewArrayFromSlice(Host, []float64{10, 20, 30})
	if err := Spmv(2, m, x, 1, yScalar); err != nil {
		t.Fatalf("Spmv: %v", err)
	}

	yVector := NewArrayFromSlice(Host, []float64{10, 20, 30})
	if err := SpmvVector(2, m, x, 1, yVector, 2); err != nil {
		t.Fatalf("SpmvVector: %v", err)
	}

	if !approxEqual(yScalar.Raw(), yVector.Raw()) {
		t.Errorf("SpmvVector = %v, want %v", yVector.Raw(), yScalar.Raw())
	}
}

func TestSpmvDeviceMatchesHost(t *testing.T) {
	for _, tc := range []struct {
		name string
		m    func(space Space) Matrix
	}{
		{"CSR", func(space Space) Matrix {
			indptr := []int{0, 2, 2, 4}
			ind := []int{0, 2, 1, 2}
			data := []float64{1, 2, 3, 4}
			return NewCSR(space, 3, 3, indptr, ind, data)
		}},
		{"COO", func(space Space) Matrix {
			return NewCOO(space, 3, 3, []int{0, 0, 2, 2}, []int{0, 2, 1, 2}, []float64{1, 2, 3, 4})
		}},
		{"ELL", func(space Space) Matrix {
			cols := []int{0, ellPad, 1, 2, ellPad, 2}
			data := []float64{1, 0, 3, 2, 0, 4}
			return NewELL(space, 3, 3, 2, cols, data)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hostM := tc.m(Host)
			deviceM := tc.m(Device)

			x := []float64{1, 2, 3}
			hostX := NewArrayFromSlice(Host, x)
			deviceX := NewArrayFromSlice(Device, x)
			hostY := NewArray(Host, 3)
			deviceY := NewArray(Device, 3)

			if err := Spmv(1, hostM, hostX, 0, hostY); err != nil {
				t.Fatalf("host Spmv: %v", err)
			}
			if err := Spmv(1, deviceM, deviceX, 0, deviceY); err != nil {
				t.Fatalf("device Spmv: %v", err)
			}
			if !approxEqual(hostY.Raw(), deviceY.Raw()) {
				t.Errorf("device result = %v, want %v", deviceY.Raw(), hostY.Raw())
			}
		})
	}
}
