package wire

/*
Codec is the single capability shared by every wire type: primitives, strings,
collections, value types and generated definitions. Generated code composes
codecs structurally, so map[string][]VideoData is encoded by
MapOf(StringCodec, ArrayOf(RecordOf[VideoData]())).
*/

////////////////////////////////////////////////////////////////////////////////

// Codec reads and writes values of type T.
type Codec[T any] interface {
	Read(r *Reader) (T, error)
	Write(w *Writer, v T)
}

// Marshaler is implemented by generated definition types.
type Marshaler interface {
	EncodeTo(w *Writer)
	DecodeFrom(r *Reader) error
}

// Opcoder is implemented by generated types that declare an opcode.
type Opcoder interface {
	Opcode() uint32
}

// Encode encodes m into a new buffer.
func Encode(m Marshaler) ([]byte, error) {
	w := NewWriter()
	m.EncodeTo(w)
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode decodes m from b. Bytes following the value are ignored.
func Decode(b []byte, m Marshaler) error {
	return m.DecodeFrom(NewReader(b))
}

type funcCodec[T any] struct {
	read  func(*Reader) (T, error)
	write func(*Writer, T)
}

func (c funcCodec[T]) Read(r *Reader) (T, error) { return c.read(r) }
func (c funcCodec[T]) Write(w *Writer, v T)      { c.write(w, v) }

// nolint:gochecknoglobals
var (
	BoolCodec    Codec[bool]    = funcCodec[bool]{(*Reader).Bool, (*Writer).Bool}
	Uint8Codec   Codec[uint8]   = funcCodec[uint8]{(*Reader).Uint8, (*Writer).Uint8}
	Int8Codec    Codec[int8]    = funcCodec[int8]{(*Reader).Int8, (*Writer).Int8}
	Uint16Codec  Codec[uint16]  = funcCodec[uint16]{(*Reader).Uint16, (*Writer).Uint16}
	Int16Codec   Codec[int16]   = funcCodec[int16]{(*Reader).Int16, (*Writer).Int16}
	Uint32Codec  Codec[uint32]  = funcCodec[uint32]{(*Reader).Uint32, (*Writer).Uint32}
	Int32Codec   Codec[int32]   = funcCodec[int32]{(*Reader).Int32, (*Writer).Int32}
	Uint64Codec  Codec[uint64]  = funcCodec[uint64]{(*Reader).Uint64, (*Writer).Uint64}
	Int64Codec   Codec[int64]   = funcCodec[int64]{(*Reader).Int64, (*Writer).Int64}
	Float32Codec Codec[float32] = funcCodec[float32]{(*Reader).Float32, (*Writer).Float32}
	Float64Codec Codec[float64] = funcCodec[float64]{(*Reader).Float64, (*Writer).Float64}
	StringCodec  Codec[string]  = funcCodec[string]{(*Reader).String, (*Writer).String}
	GuidCodec    Codec[Guid]    = funcCodec[Guid]{(*Reader).Guid, (*Writer).Guid}
	DateCodec    Codec[Date]    = funcCodec[Date]{(*Reader).Date, (*Writer).Date}

	// BytesCodec encodes byte arrays. It is wire-identical to
	// ArrayOf(Uint8Codec) but copies the payload in one step.
	BytesCodec Codec[[]byte] = bytesCodec{}
)

type bytesCodec struct{}

func (bytesCodec) Read(r *Reader) ([]byte, error) {
	n, err := r.Length()
	if err != nil {
		return nil, err
	}
	b, err := r.Raw(n)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

func (bytesCodec) Write(w *Writer, v []byte) {
	w.Length(len(v))
	w.Raw(v)
}

type arrayCodec[T any] struct {
	elem Codec[T]
}

// ArrayOf returns a codec for []T: a u32 count followed by each element.
func ArrayOf[T any](elem Codec[T]) Codec[[]T] {
	return arrayCodec[T]{elem: elem}
}

func (c arrayCodec[T]) Read(r *Reader) ([]T, error) {
	n, err := r.Length()
	if err != nil {
		return nil, err
	}
	if err := r.Enter(); err != nil {
		return nil, err
	}
	defer r.Leave()
	result := make([]T, 0, r.Prealloc(n))
	for i := 0; i < n; i++ {
		v, err := c.elem.Read(r)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func (c arrayCodec[T]) Write(w *Writer, v []T) {
	w.Length(len(v))
	for _, item := range v {
		c.elem.Write(w, item)
	}
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
}

// MapOf returns a codec for map[K]V: a u32 count followed by key/value pairs.
// Later duplicates of a key overwrite earlier ones on decode.
func MapOf[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, value: value}
}

func (c mapCodec[K, V]) Read(r *Reader) (map[K]V, error) {
	n, err := r.Length()
	if err != nil {
		return nil, err
	}
	if err := r.Enter(); err != nil {
		return nil, err
	}
	defer r.Leave()
	result := make(map[K]V, r.Prealloc(n))
	for i := 0; i < n; i++ {
		k, err := c.key.Read(r)
		if err != nil {
			return nil, err
		}
		v, err := c.value.Read(r)
		if err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

func (c mapCodec[K, V]) Write(w *Writer, m map[K]V) {
	entries := make([]MapEntry, 0, len(m))
	for k, v := range m {
		kw := NewWriter()
		c.key.Write(kw, k)
		vw := NewWriter()
		c.value.Write(vw, v)
		if err := kw.Err(); err != nil {
			w.Fail(err)
		}
		if err := vw.Err(); err != nil {
			w.Fail(err)
		}
		entries = append(entries, MapEntry{Key: kw.Bytes(), Value: vw.Bytes()})
	}
	w.MapEntries(entries)
}

type recordCodec[T any, P interface {
	*T
	Marshaler
}] struct{}

// RecordOf returns a codec for a generated type whose pointer implements
// Marshaler.
func RecordOf[T any, P interface {
	*T
	Marshaler
}]() Codec[T] {
	return recordCodec[T, P]{}
}

func (recordCodec[T, P]) Read(r *Reader) (T, error) {
	var v T
	if err := P(&v).DecodeFrom(r); err != nil {
		return v, err
	}
	return v, nil
}

func (recordCodec[T, P]) Write(w *Writer, v T) {
	P(&v).EncodeTo(w)
}
