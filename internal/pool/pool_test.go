package pool

import "testing"

func TestGetIntsClear(t *testing.T) {
	s := GetInts(4, false)
	for i := range s {
		s[i] = 9
	}
	PutInts(s)

	s = GetInts(4, true)
	for i, v := range s {
		if v != 0 {
			t.Errorf("element %d: wanted 0, got %d", i, v)
		}
	}
}

func TestGetFloatsGrows(t *testing.T) {
	s := GetFloats(pooledFloatSize+10, false)
	if len(s) != pooledFloatSize+10 {
		t.Errorf("wanted length %d, got %d", pooledFloatSize+10, len(s))
	}
	PutFloats(s)
}

func TestGetIntsLength(t *testing.T) {
	for _, l := range []int{0, 1, pooledIntSize, pooledIntSize * 2} {
		s := GetInts(l, false)
		if len(s) != l {
			t.Errorf("length %d: wanted %d, got %d", l, l, len(s))
		}
		PutInts(s)
	}
}
