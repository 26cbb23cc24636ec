package schema

import (
	"encoding/binary"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

/*
transform turns participle AST nodes into schema definitions. It enforces the
rules that can be checked on a single definition: number syntax, index ranges,
the reserved message index, opcode shape, and uniqueness of names, indices and
discriminants within the definition. Rules that need the whole flattened schema
live in validate.go.
*/

////////////////////////////////////////////////////////////////////////////////

func parseNumber(pos Position, s string) (uint32, error) {
	digits, base := s, 10
	if strings.HasPrefix(s, "0x") {
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, errorf(pos, ErrInvalidNumber, "%q", s)
	}
	return uint32(v), nil
}

func parseIndex(pos Position, s string) (uint8, error) {
	v, err := parseNumber(pos, s)
	if err != nil {
		return 0, err
	}
	if v > 255 {
		return 0, errorf(pos, ErrIndexRange, "index must be <= 255, but got %d", v)
	}
	return uint8(v), nil
}

func checkIdent(pos Position, s string) error {
	r, _ := utf8.DecodeRuneInString(s)
	if r != '_' && !unicode.IsLetter(r) {
		return errorf(pos, ErrInvalidIdentifier, "expected identifier, but got %q", s)
	}
	return nil
}

func transformOpcode(op *astOpcode) (uint32, error) {
	pos := toPosition(op.Pos)
	if op.Number != nil {
		return parseNumber(pos, *op.Number)
	}
	b := []byte(*op.Literal)
	if len(b) != 4 {
		return 0, errorf(pos, ErrOpcodeLength, "%q is %d bytes", *op.Literal, len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

func transformType(t *astType) (Type, error) {
	var out Type
	switch {
	case t.Map != nil:
		key, err := transformType(t.Map.Key)
		if err != nil {
			return Type{}, err
		}
		value, err := transformType(t.Map.Value)
		if err != nil {
			return Type{}, err
		}
		out = Type{Map: true, Key: &key, Value: &value}
	case t.Array != nil:
		items, err := transformType(t.Array)
		if err != nil {
			return Type{}, err
		}
		out = Type{Array: true, Items: &items}
	default:
		if primitive, ok := primitiveTypes[t.Name]; ok {
			out = Type{Primitive: primitive}
			break
		}
		if err := checkIdent(toPosition(t.Pos), t.Name); err != nil {
			return Type{}, err
		}
		out = Type{Named: t.Name}
	}
	for range t.Dims {
		items := out
		out = Type{Array: true, Items: &items}
	}
	return out, nil
}

type nameSet map[string]bool

func (s nameSet) add(pos Position, what string, name string) error {
	if s[name] {
		return errorf(pos, ErrDuplicate, "%s %q", what, name)
	}
	s[name] = true
	return nil
}

// transformDefinition returns the definition and, ahead of it, any definitions
// nested in union variants.
func transformDefinition(d *astDefinition) ([]*Definition, error) {
	pos := toPosition(d.Pos)
	def := &Definition{Pos: pos, Readonly: d.Readonly}
	if d.Opcode != nil {
		opcode, err := transformOpcode(d.Opcode)
		if err != nil {
			return nil, err
		}
		def.Opcode = opcode
		def.HasOpcode = true
	}
	var nested []*Definition
	var err error
	switch {
	case d.Enum != nil:
		err = transformEnum(def, d.Enum)
	case d.Struct != nil:
		err = transformStruct(def, d.Struct)
	case d.Message != nil:
		err = transformMessage(def, d.Message)
	case d.Union != nil:
		nested, err = transformUnion(def, d.Union)
	}
	if err != nil {
		return nil, err
	}
	return append(nested, def), nil
}

func transformEnum(def *Definition, e *astEnum) error {
	def.Kind = ENUM
	def.Name = e.Name
	if err := checkIdent(def.Pos, e.Name); err != nil {
		return err
	}
	if def.HasOpcode {
		return errorf(def.Pos, ErrEnumOpcode, "enum %s", e.Name)
	}
	names := nameSet{}
	values := map[uint32]string{}
	for _, v := range e.Values {
		pos := toPosition(v.Pos)
		if err := checkIdent(pos, v.Name); err != nil {
			return err
		}
		if err := names.add(pos, "enum member", v.Name); err != nil {
			return err
		}
		n, err := parseNumber(pos, v.Value)
		if err != nil {
			return err
		}
		if other, ok := values[n]; ok {
			return errorf(pos, ErrDuplicate, "discriminant %d of %s is already used by %s", n, v.Name, other)
		}
		values[n] = v.Name
		value := EnumValue{Name: v.Name, Value: n}
		if v.Deprecated != nil {
			value.Deprecated = true
			if v.Deprecated.Reason != nil {
				value.Reason = *v.Deprecated.Reason
			}
		}
		def.Values = append(def.Values, value)
	}
	return nil
}

func transformStruct(def *Definition, s *astStruct) error {
	def.Kind = STRUCT
	def.Name = s.Name
	if err := checkIdent(def.Pos, s.Name); err != nil {
		return err
	}
	names := nameSet{}
	for _, f := range s.Fields {
		pos := toPosition(f.Pos)
		if err := checkIdent(pos, f.Name); err != nil {
			return err
		}
		if err := names.add(pos, "field", f.Name); err != nil {
			return err
		}
		typ, err := transformType(f.Type)
		if err != nil {
			return err
		}
		def.Fields = append(def.Fields, Field{Name: f.Name, Type: typ, Pos: pos})
	}
	return nil
}

func transformMessage(def *Definition, m *astMessage) error {
	def.Kind = MESSAGE
	def.Name = m.Name
	if err := checkIdent(def.Pos, m.Name); err != nil {
		return err
	}
	names := nameSet{}
	indices := map[uint8]string{}
	for _, f := range m.Fields {
		pos := toPosition(f.Pos)
		index, err := parseIndex(pos, f.Index)
		if err != nil {
			return err
		}
		if index == 0 {
			return errorf(pos, ErrReservedIndex, "field %s", f.Name)
		}
		if other, ok := indices[index]; ok {
			return errorf(pos, ErrDuplicate, "index %d of %s is already used by %s", index, f.Name, other)
		}
		indices[index] = f.Name
		if err := checkIdent(pos, f.Name); err != nil {
			return err
		}
		if err := names.add(pos, "field", f.Name); err != nil {
			return err
		}
		typ, err := transformType(f.Type)
		if err != nil {
			return err
		}
		field := Field{Index: index, Name: f.Name, Type: typ, Pos: pos}
		if f.Deprecated != nil {
			field.Deprecated = true
			if f.Deprecated.Reason != nil {
				field.Reason = *f.Deprecated.Reason
			}
		}
		def.Fields = append(def.Fields, field)
	}
	return nil
}

func transformUnion(def *Definition, u *astUnion) ([]*Definition, error) {
	def.Kind = UNION
	def.Name = u.Name
	if err := checkIdent(def.Pos, u.Name); err != nil {
		return nil, err
	}
	var nested []*Definition
	indices := map[uint8]string{}
	for _, v := range u.Variants {
		pos := toPosition(v.Pos)
		index, err := parseIndex(pos, v.Index)
		if err != nil {
			return nil, err
		}
		defs, err := transformDefinition(v.Definition)
		if err != nil {
			return nil, err
		}
		payload := defs[len(defs)-1]
		if other, ok := indices[index]; ok {
			return nil, errorf(pos, ErrDuplicate, "index %d of %s is already used by %s", index, payload.Name, other)
		}
		indices[index] = payload.Name
		nested = append(nested, defs...)
		def.Variants = append(def.Variants, Variant{Index: index, Definition: payload})
	}
	return nested, nil
}
