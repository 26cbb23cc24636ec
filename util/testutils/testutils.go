package testutils

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

/*
Byte builders for wire-format tests. Every multi-byte value is little-endian,
matching the wire contract.
*/

////////////////////////////////////////////////////////////////////////////////

// Flatten concatenates slices of the same type.
func Flatten[T any](slices ...[]T) []T {
	var result []T
	for _, s := range slices {
		result = append(result, s...)
	}
	return result
}

// U8b returns a byte slice containing a single uint8 value.
func U8b(v uint8) []byte {
	return []byte{v}
}

// U16b returns a byte slice containing a single uint16 value.
func U16b(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

// U32b returns a byte slice containing a single uint32 value.
func U32b(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func U64b(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

func I32b(v int32) []byte {
	return U32b(uint32(v))
}

func I64b(v int64) []byte {
	return U64b(uint64(v))
}

func F32b(v float32) []byte {
	return U32b(math.Float32bits(v))
}

func F64b(v float64) []byte {
	return U64b(math.Float64bits(v))
}

// PrefixedString returns s with a u32 length prefix.
func PrefixedString(s string) []byte {
	return append(U32b(uint32(len(s))), s...)
}

// Framed returns the concatenation of parts with a u32 length prefix covering
// all of them, as used by messages and unions.
func Framed(parts ...[]byte) []byte {
	body := Flatten(parts...)
	return append(U32b(uint32(len(body))), body...)
}

// Hex decodes a hex string, ignoring whitespace. It fails the test on invalid
// input.
func Hex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	require.NoError(t, err)
	return b
}
