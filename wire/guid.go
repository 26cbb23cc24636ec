package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

/*
Guid is a 16-byte identifier stored on the wire in the mixed-endian layout used
by Microsoft GUIDs: the first three groups are little-endian integers and the
final eight bytes are opaque. The canonical text form renders each group in
order, so the text of a Guid matches the text of the equivalent RFC 4122 UUID
even though their byte layouts differ.
*/

////////////////////////////////////////////////////////////////////////////////

// Guid is a globally unique identifier.
type Guid struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// GuidFromBytes returns the Guid whose wire encoding is b.
func GuidFromBytes(b [16]byte) Guid {
	g := Guid{
		Data1: binary.LittleEndian.Uint32(b[0:4]),
		Data2: binary.LittleEndian.Uint16(b[4:6]),
		Data3: binary.LittleEndian.Uint16(b[6:8]),
	}
	copy(g.Data4[:], b[8:])
	return g
}

// Bytes returns the wire encoding of g.
func (g Guid) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint32(b[0:4], g.Data1)
	binary.LittleEndian.PutUint16(b[4:6], g.Data2)
	binary.LittleEndian.PutUint16(b[6:8], g.Data3)
	copy(b[8:], g.Data4[:])
	return b
}

// String returns the canonical lowercase form
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func (g Guid) String() string {
	d := g.Data4
	return fmt.Sprintf(
		"%08x-%04x-%04x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		g.Data1, g.Data2, g.Data3, d[0], d[1], d[2], d[3], d[4], d[5], d[6], d[7],
	)
}

// GuidFromUUID converts an RFC 4122 UUID into the Guid with the same text form.
func GuidFromUUID(u uuid.UUID) Guid {
	g := Guid{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(g.Data4[:], u[8:])
	return g
}

// UUID converts g into the RFC 4122 UUID with the same text form.
func (g Guid) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:], g.Data4[:])
	return u
}

// ParseGuid parses the text form of a Guid. Any form accepted by uuid.Parse is
// accepted, including braced and urn-prefixed forms.
func ParseGuid(s string) (Guid, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Guid{}, fmt.Errorf("failed to parse guid: %w", err)
	}
	return GuidFromUUID(u), nil
}

// MarshalText implements encoding.TextMarshaler.
func (g Guid) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Guid) UnmarshalText(b []byte) error {
	parsed, err := ParseGuid(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
