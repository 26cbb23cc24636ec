package dynamic

import (
	"errors"
	"slices"

	"github.com/wkalt/bop/schema"
	"github.com/wkalt/bop/wire"
	"golang.org/x/exp/maps"
)

/*
Package dynamic encodes and decodes schema values without generated code. A
Registry holds one descriptor per definition and interprets it over generic Go
values:

* primitives as their Go scalar, wire.Guid, or wire.Date
* byte arrays as []byte, other arrays as []any, maps as map[any]any
* structs and messages as map[string]any keyed by field name; messages omit
  absent fields
* enums as the member name
* unions as a Union

The bytes it produces are identical to those of generated code for the same
logical value. A Registry is immutable and safe for concurrent use.
*/

////////////////////////////////////////////////////////////////////////////////

// Union is the dynamic form of a union value: the name of the set variant and
// its payload.
type Union struct {
	Name  string
	Value any
}

type descriptor struct {
	def      *schema.Definition
	values   map[string]uint32
	members  map[uint32]string
	fields   map[uint8]*schema.Field
	names    map[string]*schema.Field
	variants map[uint8]*schema.Definition
	tags     map[string]uint8
}

// Registry is a descriptor table keyed by definition name.
type Registry struct {
	descriptors map[string]*descriptor
	opcodes     map[uint32]string
}

// New builds a registry for s.
func New(s *schema.Schema) (*Registry, error) {
	if s == nil {
		return nil, errors.New("nil schema")
	}
	r := &Registry{
		descriptors: make(map[string]*descriptor, len(s.Definitions)),
		opcodes:     map[uint32]string{},
	}
	for _, def := range s.Definitions {
		d := &descriptor{def: def}
		switch def.Kind {
		case schema.ENUM:
			d.values = make(map[string]uint32, len(def.Values))
			d.members = make(map[uint32]string, len(def.Values))
			for _, v := range def.Values {
				d.values[v.Name] = v.Value
				d.members[v.Value] = v.Name
			}
		case schema.STRUCT, schema.MESSAGE:
			d.fields = make(map[uint8]*schema.Field, len(def.Fields))
			d.names = make(map[string]*schema.Field, len(def.Fields))
			for i := range def.Fields {
				f := &def.Fields[i]
				d.fields[f.Index] = f
				d.names[f.Name] = f
			}
		case schema.UNION:
			d.variants = make(map[uint8]*schema.Definition, len(def.Variants))
			d.tags = make(map[string]uint8, len(def.Variants))
			for _, v := range def.Variants {
				d.variants[v.Index] = v.Definition
				d.tags[v.Definition.Name] = v.Index
			}
		}
		r.descriptors[def.Name] = d
		if def.HasOpcode {
			r.opcodes[def.Opcode] = def.Name
		}
	}
	return r, nil
}

func (r *Registry) lookup(name string) (*descriptor, error) {
	d, ok := r.descriptors[name]
	if !ok {
		return nil, UnknownTypeError{Name: name}
	}
	return d, nil
}

// Definition returns the definition with the given name.
func (r *Registry) Definition(name string) (*schema.Definition, bool) {
	d, ok := r.descriptors[name]
	if !ok {
		return nil, false
	}
	return d.def, true
}

// Opcode returns the opcode declared by the named definition.
func (r *Registry) Opcode(name string) (uint32, bool) {
	d, ok := r.descriptors[name]
	if !ok || !d.def.HasOpcode {
		return 0, false
	}
	return d.def.Opcode, true
}

// ByOpcode returns the name of the definition declaring opcode.
func (r *Registry) ByOpcode(opcode uint32) (string, bool) {
	name, ok := r.opcodes[opcode]
	return name, ok
}

// Opcodes returns every declared opcode in ascending order.
func (r *Registry) Opcodes() []uint32 {
	opcodes := maps.Keys(r.opcodes)
	slices.Sort(opcodes)
	return opcodes
}

// Encode encodes v as the named definition.
func (r *Registry) Encode(name string, v any) ([]byte, error) {
	d, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter()
	if err := r.encodeDefinition(w, d, v); err != nil {
		return nil, err
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode decodes b as the named definition. Bytes following the value are
// ignored.
func (r *Registry) Decode(name string, b []byte) (any, error) {
	d, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return r.decodeDefinition(wire.NewReader(b), d)
}
