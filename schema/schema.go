package schema

import (
	"fmt"
	"strings"
)

/*
The schema model produced by the parser. A Schema is a flat, ordered list of
definitions gathered from a root file and everything it imports. Definitions are
built once per load and are not modified afterward.
*/

////////////////////////////////////////////////////////////////////////////////

// PrimitiveType enumerates the built-in scalar types.
type PrimitiveType int

const (
	BOOL PrimitiveType = iota + 1
	BYTE
	UINT8
	INT8
	UINT16
	INT16
	UINT32
	INT32
	UINT64
	INT64
	FLOAT32
	FLOAT64
	STRING
	GUID
	DATE
)

var primitiveNames = map[PrimitiveType]string{ // nolint:gochecknoglobals
	BOOL:    "bool",
	BYTE:    "byte",
	UINT8:   "uint8",
	INT8:    "int8",
	UINT16:  "uint16",
	INT16:   "int16",
	UINT32:  "uint32",
	INT32:   "int32",
	UINT64:  "uint64",
	INT64:   "int64",
	FLOAT32: "float32",
	FLOAT64: "float64",
	STRING:  "string",
	GUID:    "guid",
	DATE:    "date",
}

var primitiveTypes = func() map[string]PrimitiveType { // nolint:gochecknoglobals
	m := make(map[string]PrimitiveType, len(primitiveNames))
	for p, name := range primitiveNames {
		m[name] = p
	}
	return m
}()

// String returns the schema keyword for the primitive.
func (p PrimitiveType) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PrimitiveType(%d)", int(p))
}

// Type is a type expression. Exactly one of Primitive, Array, Map, or Named is
// set.
type Type struct {
	Primitive PrimitiveType

	// If it's an array...
	Array bool
	Items *Type

	// If it's a map...
	Map   bool
	Key   *Type
	Value *Type

	// If it's a reference to a definition...
	Named string
}

// IsPrimitive returns true if the type is a primitive.
func (t Type) IsPrimitive() bool {
	return t.Primitive > 0
}

// IsByteArray returns true for byte[] and uint8[].
func (t Type) IsByteArray() bool {
	return t.Array && (t.Items.Primitive == BYTE || t.Items.Primitive == UINT8)
}

// String renders the type in schema syntax.
func (t Type) String() string {
	switch {
	case t.IsPrimitive():
		return t.Primitive.String()
	case t.Array:
		return t.Items.String() + "[]"
	case t.Map:
		return "map[" + t.Key.String() + ", " + t.Value.String() + "]"
	default:
		return t.Named
	}
}

// Kind is the kind of a definition.
type Kind int

const (
	ENUM Kind = iota + 1
	STRUCT
	MESSAGE
	UNION
)

func (k Kind) String() string {
	switch k {
	case ENUM:
		return "enum"
	case STRUCT:
		return "struct"
	case MESSAGE:
		return "message"
	case UNION:
		return "union"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Position is a location in a schema file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// EnumValue is a member of an enum.
type EnumValue struct {
	Name       string
	Value      uint32
	Deprecated bool
	Reason     string
}

// Field is a struct or message field. Index is zero for struct fields, whose
// wire position is their declaration order.
type Field struct {
	Index      uint8
	Name       string
	Type       Type
	Deprecated bool
	Reason     string
	Pos        Position
}

// Variant is a union branch. Its payload is an inline definition.
type Variant struct {
	Index      uint8
	Definition *Definition
}

// Definition is an enum, struct, message, or union.
type Definition struct {
	Kind      Kind
	Name      string
	Opcode    uint32
	HasOpcode bool
	Readonly  bool
	Pos       Position

	Values   []EnumValue // enum
	Fields   []Field     // struct, message
	Variants []Variant   // union
}

// Field returns the message field with the given index.
func (d *Definition) Field(index uint8) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Index == index {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// Variant returns the union variant with the given index.
func (d *Definition) Variant(index uint8) (*Variant, bool) {
	for i := range d.Variants {
		if d.Variants[i].Index == index {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

// Schema is the flattened set of definitions from one or more files.
type Schema struct {
	Definitions []*Definition
	Files       []string

	index map[string]*Definition
}

// Lookup returns the definition with the given name.
func (s *Schema) Lookup(name string) (*Definition, bool) {
	d, ok := s.index[name]
	return d, ok
}

// DefinitionsIn returns the definitions declared in the given file, in order.
func (s *Schema) DefinitionsIn(file string) []*Definition {
	var defs []*Definition
	for _, d := range s.Definitions {
		if d.Pos.File == file {
			defs = append(defs, d)
		}
	}
	return defs
}

// String renders a one-line summary per definition.
func (s *Schema) String() string {
	sb := &strings.Builder{}
	for _, d := range s.Definitions {
		fmt.Fprintf(sb, "%s %s", d.Kind, d.Name)
		if d.HasOpcode {
			fmt.Fprintf(sb, " opcode=0x%08x", d.Opcode)
		}
		switch d.Kind {
		case ENUM:
			fmt.Fprintf(sb, " values=%d", len(d.Values))
		case STRUCT, MESSAGE:
			fmt.Fprintf(sb, " fields=%d", len(d.Fields))
		case UNION:
			fmt.Fprintf(sb, " variants=%d", len(d.Variants))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
