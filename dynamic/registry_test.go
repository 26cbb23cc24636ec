package dynamic_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/bop/dynamic"
	"github.com/wkalt/bop/schema"
	"github.com/wkalt/bop/util/testutils"
	"github.com/wkalt/bop/wire"
)

const mediaSchema = `
enum VideoCodec {
	H264 = 0;
	H265 = 1;
}

struct VideoData {
	float64 time;
	uint32 width;
	uint32 height;
	byte[] fragment;
}

[opcode("MDIA")]
message MediaMessage {
	1 -> VideoCodec codec;
	2 -> VideoData data;
}

message Counter {
	1 -> uint32 count;
	2 -> string name;
}

union Shape {
	3 -> struct Square { uint32 side; }
	4 -> message Label { 1 -> string text; }
}

struct Everything {
	bool a;
	int8 b;
	uint16 c;
	int16 d;
	int64 e;
	uint64 f;
	float32 g;
	guid h;
	date i;
	string[] j;
	map[string, int32] k;
	map[VideoCodec, bool] l;
	Shape m;
}
`

func registry(t *testing.T) *dynamic.Registry {
	t.Helper()
	s, err := schema.Parse("media.bop", []byte(mediaSchema))
	require.NoError(t, err)
	r, err := dynamic.New(s)
	require.NoError(t, err)
	return r
}

func sampleMessage() map[string]any {
	return map[string]any{
		"codec": "H264",
		"data": map[string]any{
			"time":     1.0,
			"width":    uint32(100),
			"height":   uint32(300),
			"fragment": []byte{1, 2, 3},
		},
	}
}

func TestEncodeSampleMessage(t *testing.T) {
	r := registry(t)
	buf, err := r.Encode("MediaMessage", sampleMessage())
	require.NoError(t, err)
	require.Equal(t, testutils.Hex(t, `
		1e000000
		01 00000000
		02 000000000000f03f 64000000 2c010000 03000000 010203
		00`), buf)

	v, err := r.Decode("MediaMessage", buf)
	require.NoError(t, err)
	require.Equal(t, sampleMessage(), v)
}

func TestEncodeMessage(t *testing.T) {
	cases := []struct {
		assertion string
		value     map[string]any
		expected  []byte
	}{
		{
			"only field 1",
			map[string]any{"count": uint32(5)},
			testutils.Hex(t, "06000000 01 05000000 00"),
		},
		{
			"empty",
			map[string]any{},
			testutils.Hex(t, "01000000 00"),
		},
		{
			"nil is absent",
			map[string]any{"count": nil, "name": "AB"},
			testutils.Hex(t, "08000000 02 02000000 4142 00"),
		},
	}
	r := registry(t)
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			buf, err := r.Encode("Counter", c.value)
			require.NoError(t, err)
			require.Equal(t, c.expected, buf)
		})
	}
}

func TestDecodeMessageCompatibility(t *testing.T) {
	cases := []struct {
		assertion string
		input     []byte
		expected  map[string]any
	}{
		{
			"unknown tag stops decoding",
			testutils.Flatten(
				testutils.Framed(
					testutils.U8b(9), testutils.U32b(7),
					testutils.U8b(2), testutils.PrefixedString("x"),
					testutils.U8b(0),
				),
			),
			map[string]any{},
		},
		{
			"known fields before unknown tag are kept",
			testutils.Framed(
				testutils.U8b(1), testutils.U32b(7),
				testutils.U8b(9), testutils.U32b(7),
				testutils.U8b(0),
			),
			map[string]any{"count": uint32(7)},
		},
		{
			"fields out of order",
			testutils.Framed(
				testutils.U8b(2), testutils.PrefixedString("x"),
				testutils.U8b(1), testutils.U32b(7),
				testutils.U8b(0),
			),
			map[string]any{"count": uint32(7), "name": "x"},
		},
		{
			"trailing bytes ignored",
			append(testutils.Framed(testutils.U8b(0)), 0xff, 0xff),
			map[string]any{},
		},
	}
	r := registry(t)
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			v, err := r.Decode("Counter", c.input)
			require.NoError(t, err)
			require.Equal(t, c.expected, v)
		})
	}
}

func TestUnion(t *testing.T) {
	r := registry(t)
	buf, err := r.Encode("Shape", dynamic.Union{Name: "Square", Value: map[string]any{"side": uint32(7)}})
	require.NoError(t, err)
	require.Equal(t, testutils.Hex(t, "05000000 03 07000000"), buf)

	v, err := r.Decode("Shape", buf)
	require.NoError(t, err)
	require.Equal(t, dynamic.Union{Name: "Square", Value: map[string]any{"side": uint32(7)}}, v)

	// payload bytes the variant does not consume are ignored.
	v, err = r.Decode("Shape", testutils.Hex(t, "07000000 03 07000000 aabb 01"))
	require.NoError(t, err)
	require.Equal(t, dynamic.Union{Name: "Square", Value: map[string]any{"side": uint32(7)}}, v)

	label := dynamic.Union{Name: "Label", Value: map[string]any{"text": "hi"}}
	buf, err = r.Encode("Shape", label)
	require.NoError(t, err)
	v, err = r.Decode("Shape", buf)
	require.NoError(t, err)
	require.Equal(t, label, v)
}

func TestRoundtripEverything(t *testing.T) {
	r := registry(t)
	value := map[string]any{
		"a": true,
		"b": int8(-3),
		"c": uint16(65535),
		"d": int16(-2),
		"e": int64(-1 << 40),
		"f": uint64(1 << 63),
		"g": float32(1.5),
		"h": wire.Guid{Data1: 1, Data2: 2, Data3: 3, Data4: [8]byte{4, 5, 6, 7, 8, 9, 10, 11}},
		"i": wire.Date(638000000000000000),
		"j": []any{"x", "", "yz"},
		"k": map[any]any{"b": int32(2), "a": int32(1)},
		"l": map[any]any{"H265": true, "H264": false},
		"m": dynamic.Union{Name: "Label", Value: map[string]any{}},
	}
	buf, err := r.Encode("Everything", value)
	require.NoError(t, err)
	v, err := r.Decode("Everything", buf)
	require.NoError(t, err)
	require.Equal(t, value, v)

	again, err := r.Encode("Everything", v)
	require.NoError(t, err)
	require.Equal(t, buf, again)
}

func TestMapEncodingIsSorted(t *testing.T) {
	s, err := schema.Parse("m.bop", []byte(`struct M { map[string, uint8] m; }`))
	require.NoError(t, err)
	r, err := dynamic.New(s)
	require.NoError(t, err)
	buf, err := r.Encode("M", map[string]any{"m": map[any]any{"b": uint8(2), "a": uint8(1)}})
	require.NoError(t, err)
	require.Equal(t, testutils.Hex(t, "02000000 01000000 61 01 01000000 62 02"), buf)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		assertion string
		typ       string
		input     []byte
		err       error
	}{
		{"truncated struct", "VideoData", testutils.Hex(t, "000000000000f03f 6400"), wire.ErrUnexpectedEnd},
		{"unknown enum value", "VideoCodec", testutils.U32b(9), wire.ErrUnknownEnumValue},
		{"unknown enum value in message", "MediaMessage", testutils.Framed(testutils.U8b(1), testutils.U32b(9)), wire.ErrUnknownEnumValue},
		{"unknown union tag", "Shape", testutils.Hex(t, "01000000 09"), wire.ErrUnknownUnionTag},
		{"empty union body", "Shape", testutils.Hex(t, "00000000"), wire.ErrUnexpectedEnd},
		{"missing terminator", "Counter", testutils.Framed(testutils.U8b(1), testutils.U32b(7)), wire.ErrUnexpectedEnd},
		{"message length past end", "Counter", testutils.Hex(t, "ff000000 00"), wire.ErrUnexpectedEnd},
		{"invalid utf8", "Label", testutils.Framed(testutils.U8b(1), testutils.Hex(t, "02000000 c328"), testutils.U8b(0)), wire.ErrInvalidUTF8},
		{"unknown type", "Nope", nil, dynamic.UnknownTypeError{}},
	}
	r := registry(t)
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := r.Decode(c.typ, c.input)
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestDecodeDepthLimit(t *testing.T) {
	s, err := schema.Parse("tree.bop", []byte(`
		message Node { 1 -> Node next; }
		struct Tree { Tree[] children; }
	`))
	require.NoError(t, err)
	r, err := dynamic.New(s)
	require.NoError(t, err)

	nodes := func(levels int) []byte {
		buf := testutils.Framed(testutils.U8b(0))
		for i := 1; i < levels; i++ {
			buf = testutils.Framed(testutils.U8b(1), buf, testutils.U8b(0))
		}
		return buf
	}
	trees := func(levels int) []byte {
		buf := testutils.U32b(0)
		for i := 1; i < levels; i++ {
			buf = testutils.Flatten(testutils.U32b(1), buf)
		}
		return buf
	}
	cases := []struct {
		assertion string
		typ       string
		input     []byte
		err       error
	}{
		{"messages at the limit", "Node", nodes(wire.MaxDepth), nil},
		{"messages past the limit", "Node", nodes(wire.MaxDepth + 1), wire.ErrDepthExceeded},
		{"arrays at the limit", "Tree", trees(wire.MaxDepth), nil},
		{"arrays past the limit", "Tree", trees(wire.MaxDepth + 1), wire.ErrDepthExceeded},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := r.Decode(c.typ, c.input)
			if c.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	cases := []struct {
		assertion string
		typ       string
		value     any
		err       error
	}{
		{"wrong scalar type", "Counter", map[string]any{"count": 5}, dynamic.TypeError{}},
		{"not a record", "VideoData", "x", dynamic.TypeError{}},
		{"missing struct field", "VideoData", map[string]any{"time": 1.0}, dynamic.TypeError{}},
		{"unknown field", "Counter", map[string]any{"other": uint32(1)}, dynamic.TypeError{}},
		{"unknown enum member", "VideoCodec", "AV1", dynamic.TypeError{}},
		{"unknown variant", "Shape", dynamic.Union{Name: "Circle"}, dynamic.TypeError{}},
		{"union not wrapped", "Shape", map[string]any{}, dynamic.TypeError{}},
		{"unknown type", "Nope", nil, dynamic.UnknownTypeError{}},
	}
	r := registry(t)
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := r.Encode(c.typ, c.value)
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestOpcodes(t *testing.T) {
	r := registry(t)
	opcode, ok := r.Opcode("MediaMessage")
	require.True(t, ok)
	require.Equal(t, uint32(0x4149444d), opcode)
	_, ok = r.Opcode("Counter")
	require.False(t, ok)

	name, ok := r.ByOpcode(0x4149444d)
	require.True(t, ok)
	require.Equal(t, "MediaMessage", name)
	_, ok = r.ByOpcode(1)
	require.False(t, ok)
	require.Equal(t, []uint32{0x4149444d}, r.Opcodes())
}
