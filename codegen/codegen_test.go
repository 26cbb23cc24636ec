package codegen_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/bop/codegen"
	"github.com/wkalt/bop/schema"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	s, err := schema.Parse("test.bop", []byte(src))
	require.NoError(t, err)
	out, err := codegen.Generate(s, codegen.Options{Package: "test"})
	require.NoError(t, err)
	return string(out)
}

// requireContains checks for snippet in src ignoring gofmt alignment.
func requireContains(t *testing.T, src string, snippet string) {
	t.Helper()
	require.Contains(t, strings.Join(strings.Fields(src), " "), strings.Join(strings.Fields(snippet), " "))
}

// declarations returns the names of the top-level types, constants and
// functions in src.
func declarations(t *testing.T, src string) []string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "test.go", src, 0)
	require.NoError(t, err)
	names := []string{}
	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				switch spec := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, spec.Name.Name)
				case *ast.ValueSpec:
					for _, name := range spec.Names {
						names = append(names, name.Name)
					}
				}
			}
		case *ast.FuncDecl:
			name := decl.Name.Name
			if decl.Recv != nil {
				recv := decl.Recv.List[0].Type
				if star, ok := recv.(*ast.StarExpr); ok {
					recv = star.X
				}
				name = recv.(*ast.Ident).Name + "." + name
			}
			names = append(names, name)
		}
	}
	return names
}

func TestGenerateEnum(t *testing.T) {
	out := generate(t, `
enum VideoCodec {
	H264 = 0;
	[deprecated("use H264")]
	Legacy = 7;
}`)
	require.Contains(t, out, "type VideoCodec uint32")
	requireContains(t, out, "VideoCodecLegacy VideoCodec = 7")
	require.Contains(t, out, "// Deprecated: use H264")
	require.Contains(t, out, `wire.UnknownEnumValueError{Enum: "VideoCodec", Value: x}`)
	require.Contains(t, out, `w.Fail(wire.UnknownEnumValueError{Enum: "VideoCodec", Value: uint32(*v)})`)
	require.Contains(t, out, `"fmt"`)
	require.ElementsMatch(t, []string{
		"VideoCodec",
		"VideoCodecH264",
		"VideoCodecLegacy",
		"VideoCodec.String",
		"VideoCodec.MarshalText",
		"VideoCodec.UnmarshalText",
		"VideoCodec.EncodeTo",
		"VideoCodec.DecodeFrom",
		"VideoCodec.Encode",
		"VideoCodec.Decode",
	}, declarations(t, out))
}

func TestGenerateStruct(t *testing.T) {
	out := generate(t, `
enum Kind { A = 1; }
struct Point {
	float64 x;
	byte[] raw;
	uint8[] also_raw;
	string[][] grid;
	map[string, Kind] kinds;
	Kind kind;
	guid id;
	date at;
	int32 encode;
}`)
	for _, snippet := range []string{
		"X float64 `json:\"x\"`",
		"Raw []byte `json:\"raw\"`",
		"AlsoRaw []byte `json:\"also_raw\"`",
		"Grid [][]string `json:\"grid\"`",
		"Kinds map[string]Kind `json:\"kinds\"`",
		"ID wire.Guid `json:\"id\"`",
		"At wire.Date `json:\"at\"`",
		"EncodeField int32 `json:\"encode\"`",
		"w.Float64(v.X)",
		"wire.BytesCodec.Write(w, v.Raw)",
		"wire.ArrayOf(wire.ArrayOf(wire.StringCodec)).Write(w, v.Grid)",
		"wire.MapOf(wire.StringCodec, wire.RecordOf[Kind]()).Write(w, v.Kinds)",
		"v.Kind.EncodeTo(w)",
		"if out.X, err = r.Float64(); err != nil {",
		"if err = out.Kind.DecodeFrom(r); err != nil {",
		`return wire.WrapField("Point", "also_raw", err)`,
	} {
		requireContains(t, out, snippet)
	}
}

func TestGenerateMessage(t *testing.T) {
	out := generate(t, `
struct Inner { int32 a; }
[opcode("ABCD")]
readonly message Outer {
	1 -> Inner inner;
	[deprecated("use names")]
	2 -> string name;
	3 -> string[] names;
}`)
	for _, snippet := range []string{
		"// Outer is a readonly message.",
		"Inner *Inner `json:\"inner,omitempty\"`",
		"// Deprecated: use names",
		"Names *[]string `json:\"names,omitempty\"`",
		"off := w.BeginFrame()",
		"w.Uint8(3)",
		"wire.ArrayOf(wire.StringCodec).Write(w, *v.Names)",
		"w.String(*v.Name)",
		"v.Inner.EncodeTo(w)",
		"w.EndFrame(off)",
		"body, err := r.Frame()",
		"x, err := body.String()",
		"const OuterOpcode uint32 = 0x44434241",
	} {
		requireContains(t, out, snippet)
	}
	require.Contains(t, declarations(t, out), "Outer.Opcode")
}

func TestGenerateUnion(t *testing.T) {
	out := generate(t, `
union Shape {
	0 -> struct Circle { float32 r; }
	4 -> message Poly { 1 -> float32[] points; }
}`)
	for _, snippet := range []string{
		"Circle *Circle `json:\"Circle,omitempty\"`",
		"Poly *Poly `json:\"Poly,omitempty\"`",
		`w.Fail(wire.UnionVariantError{Union: "Shape", Set: set})`,
		"w.Uint8(4)",
		`return wire.UnknownUnionTagError{Union: "Shape", Tag: tag}`,
	} {
		requireContains(t, out, snippet)
	}
	decls := declarations(t, out)
	require.Equal(t, []string{"Circle", "Poly", "Shape"}, []string{decls[0], decls[5], decls[10]})
}

func TestGenerateEmpty(t *testing.T) {
	cases := []struct {
		assertion string
		input     string
	}{
		{"empty schema", ""},
		{"empty enum", "enum E {}"},
		{"empty struct", "struct S {}"},
		{"empty message", "message M {}"},
		{"empty union", "union U {}"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			out := generate(t, c.input)
			require.Contains(t, out, "package test")
		})
	}
}

func TestGenerateFile(t *testing.T) {
	s, err := schema.Parse("test.bop", []byte(`struct A {} struct B { A a; }`))
	require.NoError(t, err)
	out, err := codegen.GenerateFile(s, "test.bop", codegen.Options{Package: "sample"})
	require.NoError(t, err)
	require.Contains(t, string(out), "// source: test.bop")
	require.Contains(t, string(out), "package sample")

	out, err = codegen.GenerateFile(s, "other.bop", codegen.Options{Package: "sample"})
	require.NoError(t, err)
	require.NotContains(t, string(out), "import")
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		assertion string
		input     string
		pkg       string
		err       error
	}{
		{"invalid package", "struct A {}", "not-a-package", codegen.ErrInvalidPackage},
		{"empty package", "struct A {}", "", codegen.ErrInvalidPackage},
		{"type names collide", "struct foo {} struct Foo {}", "test", codegen.ErrNameCollision},
		{"field names collide", "struct A { int32 foo_bar; int32 fooBar; }", "test", codegen.ErrNameCollision},
		{"enum constant collides with a type", "enum Color { Red = 1; } struct ColorRed {}", "test", codegen.ErrNameCollision},
		{"enum constants of two enums collide", "enum A { BC = 1; } enum AB { C = 1; }", "test", codegen.ErrNameCollision},
		{"opcode constant collides with a type", "[opcode(1)] struct Foo {} struct FooOpcode {}", "test", codegen.ErrNameCollision},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			s, err := schema.Parse("test.bop", []byte(c.input))
			require.NoError(t, err)
			_, err = codegen.Generate(s, codegen.Options{Package: c.pkg})
			require.ErrorIs(t, err, c.err)
		})
	}
}
