package wire_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/bop/util/testutils"
	"github.com/wkalt/bop/wire"
)

func TestReaderPrimitives(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		r := wire.NewReader([]byte{0, 1, 7})
		b, err := r.Bool()
		require.NoError(t, err)
		require.False(t, b)
		b, err = r.Bool()
		require.NoError(t, err)
		require.True(t, b)
		b, err = r.Bool()
		require.NoError(t, err)
		require.True(t, b, "any non-zero byte is true")
		_, err = r.Bool()
		require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
	})

	t.Run("integers", func(t *testing.T) {
		r := wire.NewReader(testutils.Flatten(
			[]byte{0xff},
			testutils.U16b(0x0102),
			testutils.I32b(-2),
			testutils.U64b(math.MaxUint64),
			testutils.I64b(math.MinInt64),
		))
		i8, err := r.Int8()
		require.NoError(t, err)
		require.Equal(t, int8(-1), i8)
		u16, err := r.Uint16()
		require.NoError(t, err)
		require.Equal(t, uint16(0x0102), u16)
		i32, err := r.Int32()
		require.NoError(t, err)
		require.Equal(t, int32(-2), i32)
		u64, err := r.Uint64()
		require.NoError(t, err)
		require.Equal(t, uint64(math.MaxUint64), u64)
		i64, err := r.Int64()
		require.NoError(t, err)
		require.Equal(t, int64(math.MinInt64), i64)
		require.Equal(t, 0, r.Remaining())
	})

	t.Run("floats", func(t *testing.T) {
		r := wire.NewReader(testutils.Flatten(testutils.F32b(1.5), testutils.F64b(-0.25)))
		f32, err := r.Float32()
		require.NoError(t, err)
		require.InDelta(t, 1.5, f32, 0)
		f64, err := r.Float64()
		require.NoError(t, err)
		require.InDelta(t, -0.25, f64, 0)
	})

	t.Run("short reads", func(t *testing.T) {
		cases := []struct {
			assertion string
			read      func(r *wire.Reader) error
		}{
			{"uint16", func(r *wire.Reader) error { _, err := r.Uint16(); return err }},
			{"int32", func(r *wire.Reader) error { _, err := r.Int32(); return err }},
			{"uint64", func(r *wire.Reader) error { _, err := r.Uint64(); return err }},
			{"float64", func(r *wire.Reader) error { _, err := r.Float64(); return err }},
			{"guid", func(r *wire.Reader) error { _, err := r.Guid(); return err }},
			{"date", func(r *wire.Reader) error { _, err := r.Date(); return err }},
		}
		for _, c := range cases {
			t.Run(c.assertion, func(t *testing.T) {
				r := wire.NewReader([]byte{1})
				err := c.read(r)
				require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
				require.Equal(t, 0, r.Offset(), "failed reads do not consume")
			})
		}
	})
}

func TestReaderString(t *testing.T) {
	cases := []struct {
		assertion string
		input     []byte
		expected  string
		err       error
	}{
		{"empty", []byte{0, 0, 0, 0}, "", nil},
		{"ascii", []byte{2, 0, 0, 0, 0x41, 0x42}, "AB", nil},
		{"multibyte", testutils.PrefixedString("héllo"), "héllo", nil},
		{"missing length", []byte{2, 0}, "", wire.ErrUnexpectedEnd},
		{"truncated body", []byte{5, 0, 0, 0, 0x41}, "", wire.ErrUnexpectedEnd},
		{"invalid utf8", []byte{2, 0, 0, 0, 0xc3, 0x28}, "", wire.ErrInvalidUTF8},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			s, err := wire.NewReader(c.input).String()
			if c.err != nil {
				require.ErrorIs(t, err, c.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.expected, s)
		})
	}
}

func TestReaderFrame(t *testing.T) {
	t.Run("frame bounds the inner reader and advances the outer", func(t *testing.T) {
		r := wire.NewReader(testutils.Flatten(
			testutils.Framed([]byte{1, 2, 3}),
			[]byte{9},
		))
		inner, err := r.Frame()
		require.NoError(t, err)
		require.Equal(t, 3, inner.Remaining())
		_, err = inner.Uint32()
		require.ErrorIs(t, err, wire.ErrUnexpectedEnd)

		next, err := r.Uint8()
		require.NoError(t, err)
		require.Equal(t, uint8(9), next)
	})

	t.Run("frame longer than input", func(t *testing.T) {
		_, err := wire.NewReader(testutils.Flatten(testutils.U32b(10), []byte{1})).Frame()
		require.ErrorIs(t, err, wire.ErrUnexpectedEnd)
	})
}

func TestReaderFrameDepth(t *testing.T) {
	nested := func(levels int) []byte {
		buf := []byte{}
		for i := 0; i < levels; i++ {
			buf = testutils.Framed(buf)
		}
		return buf
	}
	descend := func(r *wire.Reader, levels int) error {
		for i := 0; i < levels; i++ {
			inner, err := r.Frame()
			if err != nil {
				return err
			}
			r = inner
		}
		return nil
	}
	cases := []struct {
		assertion string
		levels    int
		err       error
	}{
		{"at the limit", wire.MaxDepth, nil},
		{"past the limit", wire.MaxDepth + 1, wire.ErrDepthExceeded},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			err := descend(wire.NewReader(nested(c.levels)), c.levels)
			if c.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestReaderPrealloc(t *testing.T) {
	cases := []struct {
		assertion string
		count     int
		input     int
		expected  int
	}{
		{"small count", 3, 100, 3},
		{"count above input", 1000, 10, 10},
		{"count above ceiling", 1 << 30, 1 << 20, 1024},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			require.Equal(t, c.expected, wire.NewReader(make([]byte, c.input)).Prealloc(c.count))
		})
	}
}
