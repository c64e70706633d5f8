package sparse

import "testing"

func newTestELL() *ELL {
	// [[1 0 2]
	//  [0 0 0]
	//  [0 3 4]]
	width := 2
	cols := []int{0, ellPad, 1, 2, ellPad, 2}
	data := []float64{1, 0, 3, 2, 0, 4}
	return NewELL(Host, 3, 3, width, cols, data)
}

func TestELLAt(t *testing.T) {
	m := newTestELL()
	tests := []struct {
		i, j int
		want float64
	}{
		{0, 0, 1},
		{0, 1, 0},
		{0, 2, 2},
		{1, 0, 0},
		{2, 1, 3},
		{2, 2, 4},
	}
	for _, test := range tests {
		if got := m.At(test.i, test.j); got != test.want {
			t.Errorf("At(%d,%d) = %g, want %g", test.i, test.j, got, test.want)
		}
	}
}

func TestELLNNZ(t *testing.T) {
	m := newTestELL()
	if m.NNZ() != 4 {
		t.Errorf("NNZ() = %d, want 4", m.NNZ())
	}
}

func TestELLToCOO(t *testing.T) {
	m := newTestELL()
	coo := m.ToCOO()
	if coo.NNZ() != 4 {
		t.Fatalf("ToCOO().NNZ() = %d, want 4", coo.NNZ())
	}
	if coo.At(2, 2) != 4 {
		t.Errorf("ToCOO().At(2,2) = %g, want 4", coo.At(2, 2))
	}
}

func TestELLPanicsOnOutOfRangeColumn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a column index >= Cols")
		}
	}()
	NewELL(Host, 2, 2, 1, []int{5, ellPad}, []float64{1, 0})
}
