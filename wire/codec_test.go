package wire_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/bop/util/testutils"
	"github.com/wkalt/bop/wire"
)

func encodeWith[T any](t *testing.T, c wire.Codec[T], v T) []byte {
	t.Helper()
	w := wire.NewWriter()
	c.Write(w, v)
	require.NoError(t, w.Err())
	return w.Bytes()
}

func roundtrip[T any](t *testing.T, c wire.Codec[T], v T) {
	t.Helper()
	buf := encodeWith(t, c, v)
	r := wire.NewReader(buf)
	out, err := c.Read(r)
	require.NoError(t, err)
	require.Equal(t, v, out)
	require.Equal(t, 0, r.Remaining())
}

func TestCodecRoundtrip(t *testing.T) {
	roundtrip(t, wire.BoolCodec, true)
	roundtrip(t, wire.Uint8Codec, uint8(200))
	roundtrip(t, wire.Int8Codec, int8(-100))
	roundtrip(t, wire.Uint16Codec, uint16(65535))
	roundtrip(t, wire.Int16Codec, int16(-300))
	roundtrip(t, wire.Uint32Codec, uint32(1<<31))
	roundtrip(t, wire.Int32Codec, int32(-1<<31))
	roundtrip(t, wire.Uint64Codec, uint64(1<<63))
	roundtrip(t, wire.Int64Codec, int64(-1<<63))
	roundtrip(t, wire.Float32Codec, float32(3.25))
	roundtrip(t, wire.Float64Codec, 1e-300)
	roundtrip(t, wire.StringCodec, "hello world")
	roundtrip(t, wire.DateCodec, wire.Date(-42))
	roundtrip(t, wire.GuidCodec, wire.Guid{Data1: 1, Data2: 2, Data3: 3, Data4: [8]byte{4, 5, 6, 7, 8, 9, 10, 11}})
	roundtrip(t, wire.BytesCodec, []byte{1, 2, 3})
	roundtrip(t, wire.ArrayOf(wire.StringCodec), []string{"a", "", "bc"})
	roundtrip(t, wire.ArrayOf(wire.ArrayOf(wire.Int32Codec)), [][]int32{{1}, {}, {2, 3}})
	roundtrip(t, wire.MapOf(wire.StringCodec, wire.ArrayOf(wire.BoolCodec)), map[string][]bool{
		"x": {true},
		"y": {false, true},
	})
}

func TestBytesCodecMatchesArrayOfUint8(t *testing.T) {
	v := []byte{9, 8, 7}
	require.Equal(t,
		encodeWith(t, wire.ArrayOf(wire.Uint8Codec), v),
		encodeWith(t, wire.BytesCodec, v),
	)
	require.Equal(t, []byte{3, 0, 0, 0, 9, 8, 7}, encodeWith(t, wire.BytesCodec, v))
}

func TestArrayCodec(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		buf := encodeWith(t, wire.ArrayOf(wire.Uint16Codec), []uint16{1, 2})
		require.Equal(t, []byte{2, 0, 0, 0, 1, 0, 2, 0}, buf)
	})

	t.Run("truncated element", func(t *testing.T) {
		_, err := wire.ArrayOf(wire.Uint16Codec).Read(wire.NewReader([]byte{2, 0, 0, 0, 1, 0, 2}))
		require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
	})

	t.Run("huge count does not preallocate", func(t *testing.T) {
		_, err := wire.ArrayOf(wire.Uint64Codec).Read(wire.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
		require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
	})

	t.Run("huge count with large elements", func(t *testing.T) {
		input := testutils.Flatten(testutils.U32b(0xffffffff), make([]byte, 1<<20))
		allocated := allocatedBy(func() {
			_, err := wire.ArrayOf(wire.RecordOf[wide]()).Read(wire.NewReader(input))
			require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
		})
		require.Less(t, allocated, uint64(16<<20))
	})
}

func allocatedBy(f func()) uint64 {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	f()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

type wide struct {
	Words [23]uint64
}

func (v *wide) EncodeTo(w *wire.Writer) {
	for _, x := range v.Words {
		w.Uint64(x)
	}
}

func (v *wide) DecodeFrom(r *wire.Reader) error {
	var out wide
	for i := range out.Words {
		x, err := r.Uint64()
		if err != nil {
			return err
		}
		out.Words[i] = x
	}
	*v = out
	return nil
}

func TestCollectionDepth(t *testing.T) {
	r := wire.NewReader(testutils.Flatten(testutils.U32b(1), testutils.U32b(0)))
	for i := 0; i < wire.MaxDepth-1; i++ {
		require.NoError(t, r.Enter())
	}
	// one level is left for the outer array; the inner one exceeds the limit.
	_, err := wire.ArrayOf(wire.ArrayOf(wire.Uint8Codec)).Read(r)
	require.ErrorIs(t, err, wire.ErrDepthExceeded)

	for i := 0; i < wire.MaxDepth-1; i++ {
		r.Leave()
	}
	out, err := wire.ArrayOf(wire.ArrayOf(wire.Uint8Codec)).Read(wire.NewReader(testutils.Flatten(testutils.U32b(1), testutils.U32b(0))))
	require.NoError(t, err)
	require.Equal(t, [][]uint8{{}}, out)
}

func TestMapCodec(t *testing.T) {
	c := wire.MapOf(wire.Uint8Codec, wire.StringCodec)

	t.Run("entries are sorted by encoded key", func(t *testing.T) {
		buf := encodeWith(t, c, map[uint8]string{3: "c", 1: "a", 2: "b"})
		expected := testutils.Flatten(
			testutils.U32b(3),
			[]byte{1}, testutils.PrefixedString("a"),
			[]byte{2}, testutils.PrefixedString("b"),
			[]byte{3}, testutils.PrefixedString("c"),
		)
		require.Equal(t, expected, buf)
	})

	t.Run("duplicate keys overwrite", func(t *testing.T) {
		input := testutils.Flatten(
			testutils.U32b(2),
			[]byte{1}, testutils.PrefixedString("first"),
			[]byte{1}, testutils.PrefixedString("second"),
		)
		m, err := c.Read(wire.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, map[uint8]string{1: "second"}, m)
	})

	t.Run("huge count does not preallocate", func(t *testing.T) {
		input := testutils.Flatten(testutils.U32b(0xffffffff), make([]byte, 1<<20))
		allocated := allocatedBy(func() {
			_, err := wire.MapOf(wire.Uint64Codec, wire.GuidCodec).Read(wire.NewReader(input))
			require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
		})
		require.Less(t, allocated, uint64(16<<20))
	})

	t.Run("guid keys", func(t *testing.T) {
		g := wire.Guid{Data1: 0xdeadbeef}
		roundtrip(t, wire.MapOf(wire.GuidCodec, wire.Int64Codec), map[wire.Guid]int64{g: 1, {}: 2})
	})
}

type point struct {
	X int32
	Y int32
}

func (p *point) EncodeTo(w *wire.Writer) {
	w.Int32(p.X)
	w.Int32(p.Y)
}

func (p *point) DecodeFrom(r *wire.Reader) error {
	x, err := r.Int32()
	if err != nil {
		return wire.WrapField("point", "x", err)
	}
	y, err := r.Int32()
	if err != nil {
		return wire.WrapField("point", "y", err)
	}
	*p = point{X: x, Y: y}
	return nil
}

func TestRecordCodec(t *testing.T) {
	roundtrip(t, wire.ArrayOf(wire.RecordOf[point]()), []point{{1, 2}, {-3, 4}})

	var p point
	err := wire.Decode([]byte{1, 0, 0, 0, 2, 0}, &p)
	require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
	require.ErrorContains(t, err, "point.y")
	require.Equal(t, point{}, p, "failed decode leaves the value untouched")

	buf, err := wire.Encode(&point{X: 1, Y: 2})
	require.NoError(t, err)
	require.Equal(t, testutils.Flatten(testutils.I32b(1), testutils.I32b(2)), buf)
}
