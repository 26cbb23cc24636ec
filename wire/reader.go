package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

/*
Reader is a bounds-checked cursor over an input buffer. Every read checks the
remaining length first and fails with a ShortReadError rather than panicking, so
a Reader is safe to use on untrusted input. Readers are cheap and are created per
decode call; they are not safe for concurrent use.
*/

////////////////////////////////////////////////////////////////////////////////

// Reader reads little-endian wire values from a byte slice.
type Reader struct {
	buf   []byte
	off   int
	depth int
}

// MaxDepth is the deepest nesting of frames and collections a Reader accepts.
const MaxDepth = 512

// maxPrealloc bounds the capacity reserved for an untrusted element count.
const maxPrealloc = 1024

// NewReader returns a Reader over b. The Reader does not copy b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) take(what string, n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ShortReadError{What: what, Need: n, Have: r.Remaining()}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Raw returns the next n bytes without copying them.
func (r *Reader) Raw(n int) ([]byte, error) {
	return r.take("bytes", n)
}

// Bool reads one byte. Any non-zero value is true.
func (r *Reader) Bool() (bool, error) {
	b, err := r.take("bool", 1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take("uint8", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Int8() (int8, error) {
	b, err := r.take("int8", 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take("uint16", 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Int16() (int16, error) {
	b, err := r.take("int16", 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take("uint32", 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Int32() (int32, error) {
	b, err := r.take("int32", 4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take("uint64", 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) Int64() (int64, error) {
	b, err := r.take("int64", 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *Reader) Float32() (float32, error) {
	b, err := r.take("float32", 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (r *Reader) Float64() (float64, error) {
	b, err := r.take("float64", 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// Length reads a u32 length or count prefix.
func (r *Reader) Length() (int, error) {
	n, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if uint64(n) > math.MaxInt {
		return 0, ShortReadError{What: "length", Need: math.MaxInt, Have: r.Remaining()}
	}
	return int(n), nil
}

// String reads a u32-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	n, err := r.Length()
	if err != nil {
		return "", err
	}
	start := r.off
	b, err := r.take("string", n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", InvalidUTF8Error{Offset: start}
	}
	return string(b), nil
}

// Guid reads 16 bytes in mixed-endian GUID layout.
func (r *Reader) Guid() (Guid, error) {
	b, err := r.take("guid", 16)
	if err != nil {
		return Guid{}, err
	}
	return GuidFromBytes([16]byte(b)), nil
}

// Date reads an opaque 64-bit tick value.
func (r *Reader) Date() (Date, error) {
	b, err := r.take("date", 8)
	if err != nil {
		return 0, err
	}
	return Date(binary.LittleEndian.Uint64(b)), nil
}

// Frame reads a u32 length and returns a Reader over exactly that many of the
// following bytes. The receiver advances past the whole frame, so content the
// caller does not understand is skipped as a unit.
func (r *Reader) Frame() (*Reader, error) {
	if r.depth >= MaxDepth {
		return nil, DepthError{Limit: MaxDepth}
	}
	n, err := r.Length()
	if err != nil {
		return nil, err
	}
	b, err := r.take("frame", n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b, depth: r.depth + 1}, nil
}

// Enter records one level of collection nesting. Each successful Enter must be
// paired with a Leave.
func (r *Reader) Enter() error {
	if r.depth >= MaxDepth {
		return DepthError{Limit: MaxDepth}
	}
	r.depth++
	return nil
}

// Leave undoes Enter.
func (r *Reader) Leave() {
	r.depth--
}

// Prealloc returns the capacity to reserve for n elements read from r. n comes
// from the input, so the result is bounded by the bytes left and a fixed
// ceiling; callers grow past it with append.
func (r *Reader) Prealloc(n int) int {
	return min(n, r.Remaining(), maxPrealloc)
}
