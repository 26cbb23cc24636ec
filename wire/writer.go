package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
)

/*
Writer is a growable output buffer for wire values. Encoding cannot fail except
when a length or count exceeds the 32-bit field that carries it, or when a union
value is malformed. In either case the first error is recorded and returned by
Err; later writes are still accepted but the output must be discarded.
*/

////////////////////////////////////////////////////////////////////////////////

// Writer appends little-endian wire values to an internal buffer.
type Writer struct {
	buf []byte
	err error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Err returns the first error recorded by the writer.
func (w *Writer) Err() error {
	return w.err
}

// Fail records err if no error has been recorded yet.
func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Raw appends b unchanged.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bool writes 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) Int8(v int8) {
	w.buf = append(w.buf, uint8(v))
}

func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) Int16(v int16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(v))
}

func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) Int32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) Int64(v int64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// Length writes n as a u32 length or count prefix. If n does not fit, a
// SizeOverflowError is recorded and a zero length is written in its place.
func (w *Writer) Length(n int) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		w.Fail(SizeOverflowError{Size: uint64(n)})
		w.Uint32(0)
		return
	}
	w.Uint32(uint32(n))
}

// String writes a u32 byte length followed by the bytes of s.
func (w *Writer) String(s string) {
	w.Length(len(s))
	w.buf = append(w.buf, s...)
}

// Guid writes g in mixed-endian GUID layout.
func (w *Writer) Guid(g Guid) {
	b := g.Bytes()
	w.buf = append(w.buf, b[:]...)
}

// Date writes the tick value of d.
func (w *Writer) Date(d Date) {
	w.Int64(int64(d))
}

// BeginFrame writes a placeholder u32 length and returns its offset, to be
// passed to EndFrame once the framed content has been written.
func (w *Writer) BeginFrame() int {
	off := len(w.buf)
	w.buf = append(w.buf, 0, 0, 0, 0)
	return off
}

// EndFrame patches the placeholder at off with the number of bytes written
// after it.
func (w *Writer) EndFrame(off int) {
	n := len(w.buf) - off - 4
	if uint64(n) > math.MaxUint32 {
		w.Fail(SizeOverflowError{Size: uint64(n)})
		return
	}
	binary.LittleEndian.PutUint32(w.buf[off:], uint32(n))
}

// MapEntry is one encoded key/value pair.
type MapEntry struct {
	Key   []byte
	Value []byte
}

// MapEntries writes a u32 count followed by each entry. Entries are written in
// order of their encoded keys so that equal maps always produce equal bytes.
func (w *Writer) MapEntries(entries []MapEntry) {
	slices.SortFunc(entries, func(a, b MapEntry) int {
		return bytes.Compare(a.Key, b.Key)
	})
	w.Length(len(entries))
	for _, e := range entries {
		w.buf = append(w.buf, e.Key...)
		w.buf = append(w.buf, e.Value...)
	}
}
