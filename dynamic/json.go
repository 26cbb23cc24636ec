package dynamic

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/wkalt/bop/schema"
	"github.com/wkalt/bop/wire"
)

/*
JSON transcoding of dynamic values. The JSON forms match encoding/json's
treatment of generated types: guids as their text form, byte arrays as base64,
dates as numbers, enums as member names, map keys as strings, and unions as an
object with a single key naming the set variant.
*/

////////////////////////////////////////////////////////////////////////////////

// ToJSON decodes b as the named definition and renders it as JSON.
func (r *Registry) ToJSON(name string, b []byte) ([]byte, error) {
	v, err := r.Decode(name, b)
	if err != nil {
		return nil, err
	}
	d, _ := r.lookup(name)
	out, err := json.Marshal(r.definitionToJSON(d, v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return out, nil
}

// FromJSON parses data as the JSON form of the named definition and returns
// its wire encoding.
func (r *Registry) FromJSON(name string, data []byte) ([]byte, error) {
	d, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	v, err := r.definitionFromJSON(d, raw)
	if err != nil {
		return nil, err
	}
	return r.Encode(name, v)
}

func (r *Registry) definitionToJSON(d *descriptor, v any) any {
	switch d.def.Kind {
	case schema.STRUCT, schema.MESSAGE:
		m := v.(map[string]any)
		out := make(map[string]any, len(m))
		for name, value := range m {
			out[name] = r.typeToJSON(d.names[name].Type, value)
		}
		return out
	case schema.UNION:
		u := v.(Union)
		return map[string]any{u.Name: r.definitionToJSON(r.descriptors[u.Name], u.Value)}
	default:
		return v
	}
}

func (r *Registry) typeToJSON(t schema.Type, v any) any {
	switch {
	case t.IsPrimitive(), t.IsByteArray():
		return v
	case t.Array:
		items := v.([]any)
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = r.typeToJSON(*t.Items, item)
		}
		return out
	case t.Map:
		m := v.(map[any]any)
		out := make(map[string]any, len(m))
		for key, value := range m {
			out[keyString(key)] = r.typeToJSON(*t.Value, value)
		}
		return out
	default:
		return r.definitionToJSON(r.descriptors[t.Named], v)
	}
}

func keyString(key any) string {
	switch key := key.(type) {
	case string:
		return key
	case bool:
		return strconv.FormatBool(key)
	case float32:
		return strconv.FormatFloat(float64(key), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(key, 'g', -1, 64)
	default:
		return fmt.Sprint(key)
	}
}

func (r *Registry) definitionFromJSON(d *descriptor, raw any) (any, error) {
	switch d.def.Kind {
	case schema.ENUM:
		if _, ok := raw.(string); !ok {
			return nil, typeError(d.def.Name, raw, "")
		}
		return raw, nil
	case schema.STRUCT, schema.MESSAGE:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, typeError(d.def.Name, raw, "")
		}
		out := make(map[string]any, len(obj))
		for name, value := range obj {
			f, ok := d.names[name]
			if !ok {
				return nil, typeError(d.def.Name, raw, "unknown field "+name)
			}
			if value == nil && d.def.Kind == schema.MESSAGE {
				continue
			}
			v, err := r.typeFromJSON(f.Type, value)
			if err != nil {
				return nil, wire.WrapField(d.def.Name, name, err)
			}
			out[name] = v
		}
		return out, nil
	case schema.UNION:
		obj, ok := raw.(map[string]any)
		if !ok || len(obj) != 1 {
			return nil, typeError(d.def.Name, raw, "expected an object with one variant")
		}
		for name, value := range obj {
			if _, ok := d.tags[name]; !ok {
				return nil, typeError(d.def.Name, raw, "unknown variant "+name)
			}
			v, err := r.definitionFromJSON(r.descriptors[name], value)
			if err != nil {
				return nil, wire.WrapField(d.def.Name, name, err)
			}
			return Union{Name: name, Value: v}, nil
		}
	}
	return nil, typeError(d.def.Name, raw, "")
}

func (r *Registry) typeFromJSON(t schema.Type, raw any) (any, error) {
	switch {
	case t.IsPrimitive():
		return primitiveFromJSON(t.Primitive, raw)
	case t.IsByteArray():
		s, ok := raw.(string)
		if !ok {
			return nil, typeError(t.String(), raw, "")
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, typeError(t.String(), raw, err.Error())
		}
		return b, nil
	case t.Array:
		items, ok := raw.([]any)
		if !ok {
			return nil, typeError(t.String(), raw, "")
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := r.typeFromJSON(*t.Items, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case t.Map:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, typeError(t.String(), raw, "")
		}
		out := make(map[any]any, len(obj))
		for key, value := range obj {
			k, err := r.keyFromJSON(*t.Key, key)
			if err != nil {
				return nil, err
			}
			v, err := r.typeFromJSON(*t.Value, value)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	default:
		return r.definitionFromJSON(r.descriptors[t.Named], raw)
	}
}

func (r *Registry) keyFromJSON(t schema.Type, key string) (any, error) {
	if !t.IsPrimitive() {
		return key, nil
	}
	switch t.Primitive {
	case schema.STRING, schema.GUID:
		return primitiveFromJSON(t.Primitive, key)
	case schema.BOOL:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return nil, typeError(t.String(), key, err.Error())
		}
		return b, nil
	default:
		return primitiveFromJSON(t.Primitive, json.Number(key))
	}
}

func primitiveFromJSON(p schema.PrimitiveType, raw any) (any, error) { // nolint:cyclop
	fail := func(reason string) error {
		return typeError(p.String(), raw, reason)
	}
	switch p {
	case schema.BOOL:
		b, ok := raw.(bool)
		if !ok {
			return nil, fail("")
		}
		return b, nil
	case schema.STRING:
		s, ok := raw.(string)
		if !ok {
			return nil, fail("")
		}
		return s, nil
	case schema.GUID:
		s, ok := raw.(string)
		if !ok {
			return nil, fail("")
		}
		g, err := wire.ParseGuid(s)
		if err != nil {
			return nil, fail(err.Error())
		}
		return g, nil
	}
	n, ok := raw.(json.Number)
	if !ok {
		return nil, fail("")
	}
	switch p {
	case schema.FLOAT32, schema.FLOAT64:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return nil, fail(err.Error())
		}
		if p == schema.FLOAT32 {
			if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
				return nil, fail("out of range")
			}
			return float32(f), nil
		}
		return f, nil
	case schema.BYTE, schema.UINT8, schema.UINT16, schema.UINT32, schema.UINT64:
		bits := map[schema.PrimitiveType]int{
			schema.BYTE: 8, schema.UINT8: 8, schema.UINT16: 16, schema.UINT32: 32, schema.UINT64: 64,
		}[p]
		u, err := strconv.ParseUint(string(n), 10, bits)
		if err != nil {
			return nil, fail(err.Error())
		}
		switch bits {
		case 8:
			return uint8(u), nil
		case 16:
			return uint16(u), nil
		case 32:
			return uint32(u), nil
		default:
			return u, nil
		}
	default:
		bits := map[schema.PrimitiveType]int{
			schema.INT8: 8, schema.INT16: 16, schema.INT32: 32, schema.INT64: 64, schema.DATE: 64,
		}[p]
		i, err := strconv.ParseInt(string(n), 10, bits)
		if err != nil {
			return nil, fail(err.Error())
		}
		switch p {
		case schema.INT8:
			return int8(i), nil
		case schema.INT16:
			return int16(i), nil
		case schema.INT32:
			return int32(i), nil
		case schema.DATE:
			return wire.Date(i), nil
		default:
			return i, nil
		}
	}
}
