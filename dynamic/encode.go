package dynamic

import (
	"github.com/wkalt/bop/schema"
	"github.com/wkalt/bop/wire"
)

func (r *Registry) encodeDefinition(w *wire.Writer, d *descriptor, v any) error {
	switch d.def.Kind {
	case schema.ENUM:
		return encodeEnum(w, d, v)
	case schema.STRUCT:
		return r.encodeStruct(w, d, v)
	case schema.MESSAGE:
		return r.encodeMessage(w, d, v)
	case schema.UNION:
		return r.encodeUnion(w, d, v)
	default:
		return typeError(d.def.Name, v, "unsupported definition kind")
	}
}

func encodeEnum(w *wire.Writer, d *descriptor, v any) error {
	name, ok := v.(string)
	if !ok {
		return typeError(d.def.Name, v, "")
	}
	value, ok := d.values[name]
	if !ok {
		return typeError(d.def.Name, v, "unknown member "+name)
	}
	w.Uint32(value)
	return nil
}

func record(d *descriptor, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeError(d.def.Name, v, "")
	}
	for key := range m {
		if _, ok := d.names[key]; !ok {
			return nil, typeError(d.def.Name, v, "unknown field "+key)
		}
	}
	return m, nil
}

func (r *Registry) encodeStruct(w *wire.Writer, d *descriptor, v any) error {
	m, err := record(d, v)
	if err != nil {
		return err
	}
	for _, f := range d.def.Fields {
		value, ok := m[f.Name]
		if !ok {
			return typeError(d.def.Name, v, "missing field "+f.Name)
		}
		if err := r.encodeType(w, f.Type, value); err != nil {
			return wire.WrapField(d.def.Name, f.Name, err)
		}
	}
	return nil
}

func (r *Registry) encodeMessage(w *wire.Writer, d *descriptor, v any) error {
	m, err := record(d, v)
	if err != nil {
		return err
	}
	off := w.BeginFrame()
	for _, f := range d.def.Fields {
		value, ok := m[f.Name]
		if !ok || value == nil {
			continue
		}
		w.Uint8(f.Index)
		if err := r.encodeType(w, f.Type, value); err != nil {
			return wire.WrapField(d.def.Name, f.Name, err)
		}
	}
	w.Uint8(0)
	w.EndFrame(off)
	return nil
}

func (r *Registry) encodeUnion(w *wire.Writer, d *descriptor, v any) error {
	u, ok := v.(Union)
	if !ok {
		return typeError(d.def.Name, v, "")
	}
	tag, ok := d.tags[u.Name]
	if !ok {
		return typeError(d.def.Name, v, "unknown variant "+u.Name)
	}
	off := w.BeginFrame()
	w.Uint8(tag)
	if err := r.encodeDefinition(w, r.descriptors[u.Name], u.Value); err != nil {
		return wire.WrapField(d.def.Name, u.Name, err)
	}
	w.EndFrame(off)
	return nil
}

func (r *Registry) encodeType(w *wire.Writer, t schema.Type, v any) error {
	switch {
	case t.IsPrimitive():
		return encodePrimitive(w, t, v)
	case t.IsByteArray():
		b, ok := v.([]byte)
		if !ok {
			return typeError(t.String(), v, "")
		}
		wire.BytesCodec.Write(w, b)
		return nil
	case t.Array:
		items, ok := v.([]any)
		if !ok {
			return typeError(t.String(), v, "")
		}
		w.Length(len(items))
		for _, item := range items {
			if err := r.encodeType(w, *t.Items, item); err != nil {
				return err
			}
		}
		return nil
	case t.Map:
		return r.encodeMap(w, t, v)
	default:
		return r.encodeDefinition(w, r.descriptors[t.Named], v)
	}
}

func (r *Registry) encodeMap(w *wire.Writer, t schema.Type, v any) error {
	m, ok := v.(map[any]any)
	if !ok {
		return typeError(t.String(), v, "")
	}
	entries := make([]wire.MapEntry, 0, len(m))
	for key, value := range m {
		kw := wire.NewWriter()
		if err := r.encodeType(kw, *t.Key, key); err != nil {
			return err
		}
		vw := wire.NewWriter()
		if err := r.encodeType(vw, *t.Value, value); err != nil {
			return err
		}
		if err := kw.Err(); err != nil {
			w.Fail(err)
		}
		if err := vw.Err(); err != nil {
			w.Fail(err)
		}
		entries = append(entries, wire.MapEntry{Key: kw.Bytes(), Value: vw.Bytes()})
	}
	w.MapEntries(entries)
	return nil
}

func encodePrimitive(w *wire.Writer, t schema.Type, v any) error { // nolint:funlen,cyclop
	ok := true
	switch t.Primitive {
	case schema.BOOL:
		var x bool
		if x, ok = v.(bool); ok {
			w.Bool(x)
		}
	case schema.BYTE, schema.UINT8:
		var x uint8
		if x, ok = v.(uint8); ok {
			w.Uint8(x)
		}
	case schema.INT8:
		var x int8
		if x, ok = v.(int8); ok {
			w.Int8(x)
		}
	case schema.UINT16:
		var x uint16
		if x, ok = v.(uint16); ok {
			w.Uint16(x)
		}
	case schema.INT16:
		var x int16
		if x, ok = v.(int16); ok {
			w.Int16(x)
		}
	case schema.UINT32:
		var x uint32
		if x, ok = v.(uint32); ok {
			w.Uint32(x)
		}
	case schema.INT32:
		var x int32
		if x, ok = v.(int32); ok {
			w.Int32(x)
		}
	case schema.UINT64:
		var x uint64
		if x, ok = v.(uint64); ok {
			w.Uint64(x)
		}
	case schema.INT64:
		var x int64
		if x, ok = v.(int64); ok {
			w.Int64(x)
		}
	case schema.FLOAT32:
		var x float32
		if x, ok = v.(float32); ok {
			w.Float32(x)
		}
	case schema.FLOAT64:
		var x float64
		if x, ok = v.(float64); ok {
			w.Float64(x)
		}
	case schema.STRING:
		var x string
		if x, ok = v.(string); ok {
			w.String(x)
		}
	case schema.GUID:
		var x wire.Guid
		if x, ok = v.(wire.Guid); ok {
			w.Guid(x)
		}
	case schema.DATE:
		var x wire.Date
		if x, ok = v.(wire.Date); ok {
			w.Date(x)
		}
	default:
		ok = false
	}
	if !ok {
		return typeError(t.String(), v, "")
	}
	return nil
}
