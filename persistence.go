package sparse

import (
	"encoding"
	"encoding/binary"
	"errors"
	"math"
)

var (
	_ encoding.BinaryMarshaler   = (*COO)(nil)
	_ encoding.BinaryUnmarshaler = (*COO)(nil)
	_ encoding.BinaryMarshaler   = (*CSR)(nil)
	_ encoding.BinaryUnmarshaler = (*CSR)(nil)
	_ encoding.BinaryMarshaler   = (*DIA)(nil)
	_ encoding.BinaryUnmarshaler = (*DIA)(nil)
	_ encoding.BinaryMarshaler   = (*ELL)(nil)
	_ encoding.BinaryUnmarshaler = (*ELL)(nil)
	_ encoding.BinaryMarshaler   = (*HYB)(nil)
	_ encoding.BinaryUnmarshaler = (*HYB)(nil)
)

// errTruncated is returned by every format's UnmarshalBinary when the
// input is shorter than its header claims.
var errTruncated = errors.New("sparse: truncated binary data")

// binaryEncoder accumulates a little-endian int64-header / float64-payload
// buffer, the layout every format in this file uses (spec.md §6). Each
// format's MarshalBinary differs only in which fields it writes, not in
// how a field is encoded, so that part is factored out here once.
type binaryEncoder struct {
	buf []byte
}

func (e *binaryEncoder) putInt(v int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *binaryEncoder) putInts(s []int) {
	e.putInt(len(s))
	for _, v := range s {
		e.putInt(v)
	}
}

func (e *binaryEncoder) putFloats(s []float64) {
	e.putInt(len(s))
	var b [8]byte
	for _, v := range s {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		e.buf = append(e.buf, b[:]...)
	}
}

// binaryDecoder is the reverse of binaryEncoder, reading sequentially from
// a fixed byte slice and reporting errTruncated rather than panicking on a
// short read.
type binaryDecoder struct {
	data []byte
	pos  int
}

func (d *binaryDecoder) getInt() (int, error) {
	if len(d.data)-d.pos < 8 {
		return 0, errTruncated
	}
	v := int(int64(binary.LittleEndian.Uint64(d.data[d.pos : d.pos+8])))
	d.pos += 8
	return v, nil
}

func (d *binaryDecoder) getInts() ([]int, error) {
	n, err := d.getInt()
	if err != nil {
		return nil, err
	}
	if n < 0 || len(d.data)-d.pos < n*8 {
		return nil, errTruncated
	}
	s := make([]int, n)
	for i := range s {
		v, _ := d.getInt()
		s[i] = v
	}
	return s, nil
}

func (d *binaryDecoder) getFloats() ([]float64, error) {
	n, err := d.getInt()
	if err != nil {
		return nil, err
	}
	if n < 0 || len(d.data)-d.pos < n*8 {
		return nil, errTruncated
	}
	s := make([]float64, n)
	for i := range s {
		if len(d.data)-d.pos < 8 {
			return nil, errTruncated
		}
		s[i] = math.Float64frombits(binary.LittleEndian.Uint64(d.data[d.pos : d.pos+8]))
		d.pos += 8
	}
	return s, nil
}

// MarshalBinary encodes the receiver as:
//
//	0 -  7  rows             (int64)
//	8 - 15  cols              (int64)
//	16 - 23 len(rows triplet) (int64)
//	24 - .. rows indices      (int64 each)
//	..      len(cols)         (int64)
//	..      cols indices      (int64 each)
//	..      len(data)         (int64)
//	..      data values       (float64 each)
func (c *COO) MarshalBinary() ([]byte, error) {
	e := &binaryEncoder{}
	e.putInt(c.shape.Rows)
	e.putInt(c.shape.Cols)
	e.putInts(c.rows)
	e.putInts(c.cols)
	e.putFloats(c.data)
	return e.buf, nil
}

// UnmarshalBinary decodes data written by MarshalBinary into the receiver,
// which must be in the Host space: decoding always allocates fresh Host
// slices, matching Array's treatment of a raw source slice as host data.
func (c *COO) UnmarshalBinary(data []byte) error {
	d := &binaryDecoder{data: data}
	var err error
	var rows, cols int
	if rows, err = d.getInt(); err != nil {
		return err
	}
	if cols, err = d.getInt(); err != nil {
		return err
	}
	r, err := d.getInts()
	if err != nil {
		return err
	}
	cIdx, err := d.getInts()
	if err != nil {
		return err
	}
	values, err := d.getFloats()
	if err != nil {
		return err
	}
	if len(r) != len(cIdx) || len(r) != len(values) {
		return errTruncated
	}
	*c = *NewCOO(Host, rows, cols, r, cIdx, values)
	return nil
}

// MarshalBinary encodes the receiver as:
//
//	0 -  7  rows                (int64)
//	8 - 15  cols                 (int64)
//	16 - 23 len(indptr)          (int64)
//	24 - .. indptr                (int64 each)
//	..      ind, prefixed by len  (int64 each)
//	..      data, prefixed by len (float64 each)
func (c *CSR) MarshalBinary() ([]byte, error) {
	e := &binaryEncoder{}
	e.putInt(c.shape.Rows)
	e.putInt(c.shape.Cols)
	e.putInts(c.indptr)
	e.putInts(c.ind)
	e.putFloats(c.data)
	return e.buf, nil
}

// UnmarshalBinary decodes data written by MarshalBinary into the
// receiver, always producing a Host-space CSR.
func (c *CSR) UnmarshalBinary(data []byte) error {
	d := &binaryDecoder{data: data}
	var err error
	var rows, cols int
	if rows, err = d.getInt(); err != nil {
		return err
	}
	if cols, err = d.getInt(); err != nil {
		return err
	}
	indptr, err := d.getInts()
	if err != nil {
		return err
	}
	ind, err := d.getInts()
	if err != nil {
		return err
	}
	values, err := d.getFloats()
	if err != nil {
		return err
	}
	if len(indptr) != rows+1 || len(ind) != len(values) {
		return errTruncated
	}
	*c = *NewCSR(Host, rows, cols, indptr, ind, values)
	return nil
}

// MarshalBinary encodes the receiver as:
//
//	0 -  7  rows                     (int64)
//	8 - 15  cols                      (int64)
//	16 - 23 len(offsets)               (int64)
//	24 - .. offsets                    (int64 each)
//	..      data, prefixed by len       (float64 each)
func (m *DIA) MarshalBinary() ([]byte, error) {
	e := &binaryEncoder{}
	e.putInt(m.shape.Rows)
	e.putInt(m.shape.Cols)
	e.putInts(m.offsets)
	e.putFloats(m.data)
	return e.buf, nil
}

// UnmarshalBinary decodes data written by MarshalBinary into the
// receiver, always producing a Host-space DIA.
func (m *DIA) UnmarshalBinary(data []byte) error {
	d := &binaryDecoder{data: data}
	var err error
	var rows, cols int
	if rows, err = d.getInt(); err != nil {
		return err
	}
	if cols, err = d.getInt(); err != nil {
		return err
	}
	offsets, err := d.getInts()
	if err != nil {
		return err
	}
	values, err := d.getFloats()
	if err != nil {
		return err
	}
	if len(values) != len(offsets)*rows {
		return errTruncated
	}
	*m = *NewDIA(Host, rows, cols, offsets, values)
	return nil
}

// MarshalBinary encodes the receiver as:
//
//	0 -  7  rows                (int64)
//	8 - 15  cols                 (int64)
//	16 - 23 width                 (int64)
//	24 - .. cols index, len-prefixed (int64 each)
//	..      data, len-prefixed       (float64 each)
func (e *ELL) MarshalBinary() ([]byte, error) {
	enc := &binaryEncoder{}
	enc.putInt(e.shape.Rows)
	enc.putInt(e.shape.Cols)
	enc.putInt(e.width)
	enc.putInts(e.cols)
	enc.putFloats(e.data)
	return enc.buf, nil
}

// UnmarshalBinary decodes data written by MarshalBinary into the
// receiver, always producing a Host-space ELL.
func (ell *ELL) UnmarshalBinary(data []byte) error {
	d := &binaryDecoder{data: data}
	var err error
	var rows, cols, width int
	if rows, err = d.getInt(); err != nil {
		return err
	}
	if cols, err = d.getInt(); err != nil {
		return err
	}
	if width, err = d.getInt(); err != nil {
		return err
	}
	colIdx, err := d.getInts()
	if err != nil {
		return err
	}
	values, err := d.getFloats()
	if err != nil {
		return err
	}
	if len(colIdx) != width*rows || len(values) != width*rows {
		return errTruncated
	}
	*ell = *NewELL(Host, rows, cols, width, colIdx, values)
	return nil
}

// MarshalBinary encodes the receiver as the byte length of its ELL core's
// encoding (int64), then that encoding, then its COO tail's encoding, each
// with its own self-contained header - HYB has no fields of its own beyond
// the two members.
func (h *HYB) MarshalBinary() ([]byte, error) {
	ellBuf, err := h.ell.MarshalBinary()
	if err != nil {
		return nil, err
	}
	cooBuf, err := h.coo.MarshalBinary()
	if err != nil {
		return nil, err
	}
	e := &binaryEncoder{}
	e.putInt(len(ellBuf))
	e.buf = append(e.buf, ellBuf...)
	e.buf = append(e.buf, cooBuf...)
	return e.buf, nil
}

// UnmarshalBinary decodes data written by MarshalBinary into the receiver,
// always producing a Host-space HYB.
func (h *HYB) UnmarshalBinary(data []byte) error {
	d := &binaryDecoder{data: data}
	ellLen, err := d.getInt()
	if err != nil {
		return err
	}
	if ellLen < 0 || len(d.data)-d.pos < ellLen {
		return errTruncated
	}
	var ell ELL
	if err := ell.UnmarshalBinary(d.data[d.pos : d.pos+ellLen]); err != nil {
		return err
	}
	d.pos += ellLen

	var coo COO
	if err := coo.UnmarshalBinary(d.data[d.pos:]); err != nil {
		return err
	}

	*h = *NewHYB(&ell, &coo)
	return nil
}
