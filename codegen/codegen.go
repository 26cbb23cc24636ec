package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"

	"github.com/wkalt/bop/schema"
)

/*
Package codegen emits Go source for a schema. Each definition becomes a Go type
with EncodeTo/DecodeFrom methods over the wire runtime plus Encode/Decode
convenience methods:

* enum: a named uint32 with one constant per member.
* struct: a Go struct of value fields in declaration order.
* message: a Go struct of pointer fields, nil meaning absent.
* union: a Go struct with one pointer per variant, exactly one of which is set.

Output is formatted with go/format.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrInvalidPackage is returned when the package name is not a Go identifier.
var ErrInvalidPackage = errors.New("invalid package name")

// ErrNameCollision is returned when two schema names map to the same Go name.
var ErrNameCollision = errors.New("go name collision")

// Options control generation.
type Options struct {
	// Package is the Go package name of the generated file.
	Package string

	// Source is recorded in the file header.
	Source string
}

type generator struct {
	buf   bytes.Buffer
	s     *schema.Schema
	opts  Options
	names map[string]string
}

// Generate emits Go source for every definition in s.
func Generate(s *schema.Schema, opts Options) ([]byte, error) {
	return generate(s, s.Definitions, opts)
}

// GenerateFile emits Go source for the definitions declared in file. Types it
// references from other files are expected in the same Go package.
func GenerateFile(s *schema.Schema, file string, opts Options) ([]byte, error) {
	if opts.Source == "" {
		opts.Source = file
	}
	return generate(s, s.DefinitionsIn(file), opts)
}

func generate(s *schema.Schema, defs []*schema.Definition, opts Options) ([]byte, error) {
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPackage, opts.Package)
	}
	g := &generator{s: s, opts: opts, names: make(map[string]string, len(s.Definitions))}
	if err := g.assignNames(); err != nil {
		return nil, err
	}
	g.header(defs)
	for _, d := range defs {
		g.printf("\n")
		switch d.Kind {
		case schema.ENUM:
			g.enum(d)
		case schema.STRUCT:
			g.structType(d)
		case schema.MESSAGE:
			g.message(d)
		case schema.UNION:
			g.union(d)
		}
		g.opcode(d)
		g.convenience(d)
	}
	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return src, nil
}

func (g *generator) assignNames() error {
	owners := make(map[string]string, len(g.s.Definitions))
	claim := func(name, owner string) error {
		if other, ok := owners[name]; ok {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrNameCollision, other, owner, name)
		}
		owners[name] = owner
		return nil
	}
	for _, d := range g.s.Definitions {
		name := GoName(d.Name)
		if err := claim(name, d.Name); err != nil {
			return err
		}
		g.names[d.Name] = name
	}
	// constants share the package scope with the types.
	for _, d := range g.s.Definitions {
		name := g.names[d.Name]
		for _, v := range d.Values {
			if err := claim(name+GoName(v.Name), d.Name+"."+v.Name); err != nil {
				return err
			}
		}
		if d.HasOpcode {
			if err := claim(name+"Opcode", "the opcode of "+d.Name); err != nil {
				return err
			}
		}
	}
	for _, d := range g.s.Definitions {
		seen := map[string]string{}
		for _, f := range d.Fields {
			name := fieldName(f.Name)
			if other, ok := seen[name]; ok {
				return fmt.Errorf("%w: %s.%s and %s.%s both map to %s", ErrNameCollision, d.Name, other, d.Name, f.Name, name)
			}
			seen[name] = f.Name
		}
	}
	return nil
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *generator) header(defs []*schema.Definition) {
	g.printf("// Code generated by bop. DO NOT EDIT.\n")
	if g.opts.Source != "" {
		g.printf("// source: %s\n", g.opts.Source)
	}
	g.printf("\npackage %s\n", g.opts.Package)
	if len(defs) == 0 {
		return
	}
	g.printf("\nimport (\n")
	for _, d := range defs {
		if d.Kind == schema.ENUM {
			g.printf("\t\"fmt\"\n\n")
			break
		}
	}
	g.printf("\t\"github.com/wkalt/bop/wire\"\n)\n")
}

func (g *generator) doc(d *schema.Definition, what string) {
	name := g.names[d.Name]
	article := "a"
	switch {
	case d.Readonly:
		article = "a readonly"
	case d.Kind == schema.ENUM:
		article = "an"
	}
	g.printf("// %s is %s %s.\n", name, article, what)
}

func (g *generator) enum(d *schema.Definition) {
	name := g.names[d.Name]
	g.doc(d, "enum")
	g.printf("type %s uint32\n\n", name)
	if len(d.Values) > 0 {
		g.printf("const (\n")
		for _, v := range d.Values {
			if v.Deprecated {
				g.deprecated(v.Reason)
			}
			g.printf("%s%s %s = %d\n", name, GoName(v.Name), name, v.Value)
		}
		g.printf(")\n\n")
	}

	g.printf("func (v %s) String() string {\n", name)
	g.printf("switch v {\n")
	for _, v := range d.Values {
		g.printf("case %s%s:\nreturn %q\n", name, GoName(v.Name), v.Name)
	}
	g.printf("default:\nreturn fmt.Sprintf(\"%s(%%d)\", uint32(v))\n}\n}\n\n", name)

	g.printf("// MarshalText encodes v as its member name.\n")
	g.printf("func (v %s) MarshalText() ([]byte, error) {\n", name)
	g.printf("switch v {\n")
	if len(d.Values) > 0 {
		g.printf("case %s:\nreturn []byte(v.String()), nil\n", g.enumMembers(d))
	}
	g.printf("default:\nreturn nil, wire.UnknownEnumValueError{Enum: %q, Value: uint32(v)}\n}\n}\n\n", d.Name)

	g.printf("// UnmarshalText decodes a member name.\n")
	g.printf("func (v *%s) UnmarshalText(b []byte) error {\n", name)
	g.printf("switch string(b) {\n")
	for _, v := range d.Values {
		g.printf("case %q:\n*v = %s%s\n", v.Name, name, GoName(v.Name))
	}
	g.printf("default:\nreturn fmt.Errorf(\"unknown %s member %%q\", b)\n}\nreturn nil\n}\n\n", d.Name)

	g.printf("// EncodeTo writes v to w. A value that is not a member fails the writer.\n")
	g.printf("func (v *%s) EncodeTo(w *wire.Writer) {\n", name)
	g.printf("switch *v {\n")
	if len(d.Values) > 0 {
		g.printf("case %s:\n", g.enumMembers(d))
	}
	g.printf("default:\nw.Fail(wire.UnknownEnumValueError{Enum: %q, Value: uint32(*v)})\n}\n", d.Name)
	g.printf("w.Uint32(uint32(*v))\n}\n\n")

	g.printf("// DecodeFrom reads v from r.\n")
	g.printf("func (v *%s) DecodeFrom(r *wire.Reader) error {\n", name)
	g.printf("x, err := r.Uint32()\nif err != nil {\nreturn err\n}\n")
	g.printf("switch %s(x) {\n", name)
	if len(d.Values) > 0 {
		g.printf("case %s:\n", g.enumMembers(d))
	}
	g.printf("default:\nreturn wire.UnknownEnumValueError{Enum: %q, Value: x}\n}\n", d.Name)
	g.printf("*v = %s(x)\nreturn nil\n}\n", name)
}

func (g *generator) enumMembers(d *schema.Definition) string {
	members := make([]string, len(d.Values))
	for i, v := range d.Values {
		members[i] = g.names[d.Name] + GoName(v.Name)
	}
	return strings.Join(members, ", ")
}

func (g *generator) deprecated(reason string) {
	if reason == "" {
		reason = "do not use."
	}
	g.printf("// Deprecated: %s\n", reason)
}

func (g *generator) structType(d *schema.Definition) {
	name := g.names[d.Name]
	g.doc(d, "struct")
	g.printf("type %s struct {\n", name)
	for _, f := range d.Fields {
		g.printf("%s %s `json:\"%s\"`\n", fieldName(f.Name), g.goType(f.Type), f.Name)
	}
	g.printf("}\n\n")

	g.printf("// EncodeTo writes v to w.\n")
	g.printf("func (v *%s) EncodeTo(w *wire.Writer) {\n", name)
	for _, f := range d.Fields {
		g.printf("%s\n", g.writeValue("v."+fieldName(f.Name), f.Type))
	}
	g.printf("}\n\n")

	g.printf("// DecodeFrom reads v from r.\n")
	g.printf("func (v *%s) DecodeFrom(r *wire.Reader) error {\n", name)
	g.printf("var out %s\n", name)
	if len(d.Fields) > 0 {
		g.printf("var err error\n")
	}
	for _, f := range d.Fields {
		g.printf("if %s; err != nil {\n", g.assignValue("out."+fieldName(f.Name), "r", f.Type))
		g.printf("return wire.WrapField(%q, %q, err)\n}\n", d.Name, f.Name)
	}
	g.printf("*v = out\nreturn nil\n}\n")
}

func (g *generator) message(d *schema.Definition) {
	name := g.names[d.Name]
	g.doc(d, "message")
	g.printf("type %s struct {\n", name)
	for _, f := range d.Fields {
		if f.Deprecated {
			g.deprecated(f.Reason)
		}
		g.printf("%s *%s `json:\"%s,omitempty\"`\n", fieldName(f.Name), g.goType(f.Type), f.Name)
	}
	g.printf("}\n\n")

	g.printf("// EncodeTo writes the present fields of v to w.\n")
	g.printf("func (v *%s) EncodeTo(w *wire.Writer) {\n", name)
	g.printf("off := w.BeginFrame()\n")
	for _, f := range d.Fields {
		field := "v." + fieldName(f.Name)
		expr := "*" + field
		if f.Type.Named != "" {
			expr = field
		}
		g.printf("if %s != nil {\n", field)
		g.printf("w.Uint8(%d)\n", f.Index)
		g.printf("%s\n}\n", g.writeValue(expr, f.Type))
	}
	g.printf("w.Uint8(0)\nw.EndFrame(off)\n}\n\n")

	g.printf("// DecodeFrom reads v from r. Decoding stops at the terminator or at the\n")
	g.printf("// first field index this version does not know.\n")
	g.printf("func (v *%s) DecodeFrom(r *wire.Reader) error {\n", name)
	g.printf("body, err := r.Frame()\nif err != nil {\nreturn err\n}\n")
	g.printf("var out %s\n", name)
	g.printf("for {\n")
	g.printf("tag, err := body.Uint8()\nif err != nil {\nreturn err\n}\n")
	g.printf("switch tag {\n")
	for _, f := range d.Fields {
		g.printf("case %d:\n", f.Index)
		g.printf("%s\n", g.declareValue("body", f.Type))
		g.printf("if err != nil {\nreturn wire.WrapField(%q, %q, err)\n}\n", d.Name, f.Name)
		g.printf("out.%s = &x\n", fieldName(f.Name))
	}
	g.printf("default:\n*v = out\nreturn nil\n}\n}\n}\n")
}

func (g *generator) union(d *schema.Definition) {
	name := g.names[d.Name]
	g.doc(d, "union")
	g.printf("//\n// Exactly one variant must be set when encoding.\n")
	g.printf("type %s struct {\n", name)
	for _, v := range d.Variants {
		g.printf("%s *%s `json:\"%s,omitempty\"`\n",
			fieldName(v.Definition.Name), g.names[v.Definition.Name], v.Definition.Name)
	}
	g.printf("}\n\n")

	g.printf("// EncodeTo writes the set variant of v to w.\n")
	g.printf("func (v *%s) EncodeTo(w *wire.Writer) {\n", name)
	g.printf("set := 0\n")
	for _, v := range d.Variants {
		g.printf("if v.%s != nil {\nset++\n}\n", fieldName(v.Definition.Name))
	}
	g.printf("if set != 1 {\nw.Fail(wire.UnionVariantError{Union: %q, Set: set})\nreturn\n}\n", d.Name)
	g.printf("off := w.BeginFrame()\n")
	if len(d.Variants) > 0 {
		g.printf("switch {\n")
		for _, v := range d.Variants {
			variant := fieldName(v.Definition.Name)
			g.printf("case v.%s != nil:\n", variant)
			g.printf("w.Uint8(%d)\nv.%s.EncodeTo(w)\n", v.Index, variant)
		}
		g.printf("}\n")
	}
	g.printf("w.EndFrame(off)\n}\n\n")

	g.printf("// DecodeFrom reads v from r.\n")
	g.printf("func (v *%s) DecodeFrom(r *wire.Reader) error {\n", name)
	g.printf("body, err := r.Frame()\nif err != nil {\nreturn err\n}\n")
	g.printf("tag, err := body.Uint8()\nif err != nil {\nreturn err\n}\n")
	g.printf("var out %s\n", name)
	g.printf("switch tag {\n")
	for _, v := range d.Variants {
		g.printf("case %d:\n", v.Index)
		g.printf("var x %s\n", g.names[v.Definition.Name])
		g.printf("if err := x.DecodeFrom(body); err != nil {\n")
		g.printf("return wire.WrapField(%q, %q, err)\n}\n", d.Name, v.Definition.Name)
		g.printf("out.%s = &x\n", fieldName(v.Definition.Name))
	}
	g.printf("default:\nreturn wire.UnknownUnionTagError{Union: %q, Tag: tag}\n}\n", d.Name)
	g.printf("*v = out\nreturn nil\n}\n")
}

func (g *generator) opcode(d *schema.Definition) {
	if !d.HasOpcode {
		return
	}
	name := g.names[d.Name]
	g.printf("\n// %sOpcode identifies %s in dispatch tables.\n", name, name)
	g.printf("const %sOpcode uint32 = 0x%08x\n\n", name, d.Opcode)
	g.printf("// Opcode returns %sOpcode.\n", name)
	g.printf("func (v *%s) Opcode() uint32 {\nreturn %sOpcode\n}\n", name, name)
}

func (g *generator) convenience(d *schema.Definition) {
	name := g.names[d.Name]
	g.printf("\n// Encode returns the wire encoding of v.\n")
	g.printf("func (v *%s) Encode() ([]byte, error) {\nreturn wire.Encode(v)\n}\n\n", name)
	g.printf("// Decode decodes v from b.\n")
	g.printf("func (v *%s) Decode(b []byte) error {\nreturn wire.Decode(b, v)\n}\n", name)
}
