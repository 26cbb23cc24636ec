package dynamic

import (
	"github.com/wkalt/bop/schema"
	"github.com/wkalt/bop/wire"
)

func (r *Registry) decodeDefinition(rd *wire.Reader, d *descriptor) (any, error) {
	switch d.def.Kind {
	case schema.ENUM:
		x, err := rd.Uint32()
		if err != nil {
			return nil, err
		}
		name, ok := d.members[x]
		if !ok {
			return nil, wire.UnknownEnumValueError{Enum: d.def.Name, Value: x}
		}
		return name, nil
	case schema.STRUCT:
		out := make(map[string]any, len(d.def.Fields))
		for _, f := range d.def.Fields {
			v, err := r.decodeType(rd, f.Type)
			if err != nil {
				return nil, wire.WrapField(d.def.Name, f.Name, err)
			}
			out[f.Name] = v
		}
		return out, nil
	case schema.MESSAGE:
		return r.decodeMessage(rd, d)
	case schema.UNION:
		return r.decodeUnion(rd, d)
	default:
		return nil, UnknownTypeError{Name: d.def.Name}
	}
}

func (r *Registry) decodeMessage(rd *wire.Reader, d *descriptor) (any, error) {
	body, err := rd.Frame()
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	for {
		tag, err := body.Uint8()
		if err != nil {
			return nil, err
		}
		f, ok := d.fields[tag]
		if tag == 0 || !ok {
			return out, nil
		}
		v, err := r.decodeType(body, f.Type)
		if err != nil {
			return nil, wire.WrapField(d.def.Name, f.Name, err)
		}
		out[f.Name] = v
	}
}

func (r *Registry) decodeUnion(rd *wire.Reader, d *descriptor) (any, error) {
	body, err := rd.Frame()
	if err != nil {
		return nil, err
	}
	tag, err := body.Uint8()
	if err != nil {
		return nil, err
	}
	variant, ok := d.variants[tag]
	if !ok {
		return nil, wire.UnknownUnionTagError{Union: d.def.Name, Tag: tag}
	}
	v, err := r.decodeDefinition(body, r.descriptors[variant.Name])
	if err != nil {
		return nil, wire.WrapField(d.def.Name, variant.Name, err)
	}
	return Union{Name: variant.Name, Value: v}, nil
}

func (r *Registry) decodeType(rd *wire.Reader, t schema.Type) (any, error) {
	switch {
	case t.IsPrimitive():
		return decodePrimitive(rd, t.Primitive)
	case t.IsByteArray():
		return wire.BytesCodec.Read(rd)
	case t.Array:
		n, err := rd.Length()
		if err != nil {
			return nil, err
		}
		if err := rd.Enter(); err != nil {
			return nil, err
		}
		defer rd.Leave()
		items := make([]any, 0, rd.Prealloc(n))
		for i := 0; i < n; i++ {
			item, err := r.decodeType(rd, *t.Items)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case t.Map:
		n, err := rd.Length()
		if err != nil {
			return nil, err
		}
		if err := rd.Enter(); err != nil {
			return nil, err
		}
		defer rd.Leave()
		m := make(map[any]any, rd.Prealloc(n))
		for i := 0; i < n; i++ {
			key, err := r.decodeType(rd, *t.Key)
			if err != nil {
				return nil, err
			}
			value, err := r.decodeType(rd, *t.Value)
			if err != nil {
				return nil, err
			}
			m[key] = value
		}
		return m, nil
	default:
		return r.decodeDefinition(rd, r.descriptors[t.Named])
	}
}

func decodePrimitive(rd *wire.Reader, p schema.PrimitiveType) (any, error) { // nolint:cyclop
	switch p {
	case schema.BOOL:
		return rd.Bool()
	case schema.BYTE, schema.UINT8:
		return rd.Uint8()
	case schema.INT8:
		return rd.Int8()
	case schema.UINT16:
		return rd.Uint16()
	case schema.INT16:
		return rd.Int16()
	case schema.UINT32:
		return rd.Uint32()
	case schema.INT32:
		return rd.Int32()
	case schema.UINT64:
		return rd.Uint64()
	case schema.INT64:
		return rd.Int64()
	case schema.FLOAT32:
		return rd.Float32()
	case schema.FLOAT64:
		return rd.Float64()
	case schema.STRING:
		return rd.String()
	case schema.GUID:
		return rd.Guid()
	case schema.DATE:
		return rd.Date()
	default:
		return nil, UnknownTypeError{Name: p.String()}
	}
}
