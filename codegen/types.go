package codegen

import (
	"fmt"

	"github.com/go-openapi/swag"
	"github.com/wkalt/bop/schema"
)

/*
Mapping from schema type expressions to Go type expressions, wire codec
expressions, and Reader/Writer method names.
*/

////////////////////////////////////////////////////////////////////////////////

type primitiveMapping struct {
	goType string
	method string
}

// nolint:gochecknoglobals
var primitives = map[schema.PrimitiveType]primitiveMapping{
	schema.BOOL:    {"bool", "Bool"},
	schema.BYTE:    {"byte", "Uint8"},
	schema.UINT8:   {"uint8", "Uint8"},
	schema.INT8:    {"int8", "Int8"},
	schema.UINT16:  {"uint16", "Uint16"},
	schema.INT16:   {"int16", "Int16"},
	schema.UINT32:  {"uint32", "Uint32"},
	schema.INT32:   {"int32", "Int32"},
	schema.UINT64:  {"uint64", "Uint64"},
	schema.INT64:   {"int64", "Int64"},
	schema.FLOAT32: {"float32", "Float32"},
	schema.FLOAT64: {"float64", "Float64"},
	schema.STRING:  {"string", "String"},
	schema.GUID:    {"wire.Guid", "Guid"},
	schema.DATE:    {"wire.Date", "Date"},
}

// nolint:gochecknoglobals
var reservedMethods = map[string]bool{
	"EncodeTo":      true,
	"DecodeFrom":    true,
	"Encode":        true,
	"Decode":        true,
	"Opcode":        true,
	"String":        true,
	"MarshalText":   true,
	"UnmarshalText": true,
}

// GoName returns the exported Go identifier for a schema name.
func GoName(name string) string {
	return swag.ToGoName(name)
}

// fieldName returns the Go name of a field, avoiding the generated methods.
func fieldName(name string) string {
	goName := GoName(name)
	if reservedMethods[goName] {
		return goName + "Field"
	}
	return goName
}

func (g *generator) goType(t schema.Type) string {
	switch {
	case t.IsPrimitive():
		return primitives[t.Primitive].goType
	case t.IsByteArray():
		return "[]byte"
	case t.Array:
		return "[]" + g.goType(*t.Items)
	case t.Map:
		return fmt.Sprintf("map[%s]%s", g.goType(*t.Key), g.goType(*t.Value))
	default:
		return g.names[t.Named]
	}
}

func (g *generator) codec(t schema.Type) string {
	switch {
	case t.IsPrimitive():
		return "wire." + primitives[t.Primitive].method + "Codec"
	case t.IsByteArray():
		return "wire.BytesCodec"
	case t.Array:
		return fmt.Sprintf("wire.ArrayOf(%s)", g.codec(*t.Items))
	case t.Map:
		return fmt.Sprintf("wire.MapOf(%s, %s)", g.codec(*t.Key), g.codec(*t.Value))
	default:
		return fmt.Sprintf("wire.RecordOf[%s]()", g.names[t.Named])
	}
}

// writeValue returns a statement writing expr to w. Named types require expr
// to be addressable or a pointer.
func (g *generator) writeValue(expr string, t schema.Type) string {
	switch {
	case t.IsPrimitive():
		return fmt.Sprintf("w.%s(%s)", primitives[t.Primitive].method, expr)
	case t.Named != "":
		return expr + ".EncodeTo(w)"
	default:
		return fmt.Sprintf("%s.Write(w, %s)", g.codec(t), expr)
	}
}

// assignValue returns a statement that reads from reader into an existing
// lvalue and sets err.
func (g *generator) assignValue(lvalue string, reader string, t schema.Type) string {
	switch {
	case t.IsPrimitive():
		return fmt.Sprintf("%s, err = %s.%s()", lvalue, reader, primitives[t.Primitive].method)
	case t.Named != "":
		return fmt.Sprintf("err = %s.DecodeFrom(%s)", lvalue, reader)
	default:
		return fmt.Sprintf("%s, err = %s.Read(%s)", lvalue, g.codec(t), reader)
	}
}

// declareValue returns statements that declare x and err, reading x from
// reader.
func (g *generator) declareValue(reader string, t schema.Type) string {
	switch {
	case t.IsPrimitive():
		return fmt.Sprintf("x, err := %s.%s()", reader, primitives[t.Primitive].method)
	case t.Named != "":
		return fmt.Sprintf("var x %s\nerr := x.DecodeFrom(%s)", g.names[t.Named], reader)
	default:
		return fmt.Sprintf("x, err := %s.Read(%s)", g.codec(t), reader)
	}
}
