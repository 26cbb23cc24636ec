package schema

import (
	"slices"
	"strings"
)

/*
Whole-schema validation, run after imports are flattened. It checks that
definition names and opcodes are unique, that every named type resolves, that
map keys are scalars or enums, and that no struct contains itself by value.
*/

////////////////////////////////////////////////////////////////////////////////

func validate(s *Schema) error {
	s.index = make(map[string]*Definition, len(s.Definitions))
	opcodes := map[uint32]*Definition{}
	for _, d := range s.Definitions {
		if other, ok := s.index[d.Name]; ok {
			return errorf(d.Pos, ErrDuplicate, "%s is already defined at %s", d.Name, other.Pos)
		}
		s.index[d.Name] = d
		if !d.HasOpcode {
			continue
		}
		if other, ok := opcodes[d.Opcode]; ok {
			return errorf(d.Pos, ErrDuplicate, "opcode 0x%08x of %s is already used by %s", d.Opcode, d.Name, other.Name)
		}
		opcodes[d.Opcode] = d
	}
	for _, d := range s.Definitions {
		for _, f := range d.Fields {
			if err := s.checkType(f.Pos, f.Type); err != nil {
				return err
			}
		}
	}
	visited := map[*Definition]bool{}
	for _, d := range s.Definitions {
		if d.Kind != STRUCT {
			continue
		}
		if err := s.checkRecursion(d, nil, map[*Definition]bool{}, visited); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) checkType(pos Position, t Type) error {
	switch {
	case t.IsPrimitive():
		return nil
	case t.Array:
		return s.checkType(pos, *t.Items)
	case t.Map:
		if err := s.checkType(pos, *t.Key); err != nil {
			return err
		}
		if !s.validKey(*t.Key) {
			return errorf(pos, ErrInvalidMapKey, "%s", t.Key)
		}
		return s.checkType(pos, *t.Value)
	default:
		if _, ok := s.index[t.Named]; !ok {
			return errorf(pos, ErrUnknownType, "%s", t.Named)
		}
		return nil
	}
}

func (s *Schema) validKey(t Type) bool {
	if t.IsPrimitive() {
		return true
	}
	if t.Named == "" {
		return false
	}
	d := s.index[t.Named]
	return d.Kind == ENUM
}

// checkRecursion walks struct-typed fields of d depth first. path holds the
// fields leading to d and onPath the structs on it.
func (s *Schema) checkRecursion(
	d *Definition,
	path []string,
	onPath map[*Definition]bool,
	visited map[*Definition]bool,
) error {
	if visited[d] {
		return nil
	}
	onPath[d] = true
	for _, f := range d.Fields {
		if f.Type.Named == "" {
			continue
		}
		target := s.index[f.Type.Named]
		if target.Kind != STRUCT {
			continue
		}
		fieldPath := append(slices.Clone(path), d.Name+"."+f.Name)
		if onPath[target] {
			return errorf(f.Pos, ErrRecursiveStruct, "%s -> %s", strings.Join(fieldPath, " -> "), target.Name)
		}
		if err := s.checkRecursion(target, fieldPath, onPath, visited); err != nil {
			return err
		}
	}
	delete(onPath, d)
	visited[d] = true
	return nil
}
