package wire

import (
	"fmt"
)

/*
Errors returned by the wire runtime. Decode errors abort only the call that
raised them. The sentinel values below may be used with errors.Is to match any
error of the corresponding type regardless of its details.
*/

////////////////////////////////////////////////////////////////////////////////

// nolint:gochecknoglobals
var (
	ErrUnexpectedEnd    = ShortReadError{}
	ErrInvalidUTF8      = InvalidUTF8Error{}
	ErrUnknownEnumValue = UnknownEnumValueError{}
	ErrUnknownUnionTag  = UnknownUnionTagError{}
	ErrSizeOverflow     = SizeOverflowError{}
	ErrUnionVariant     = UnionVariantError{}
	ErrDepthExceeded    = DepthError{}
)

// ShortReadError is returned when fewer bytes remain than a read requires.
type ShortReadError struct {
	What string
	Need int
	Have int
}

// Error returns a string representation of the error.
func (e ShortReadError) Error() string {
	if e.What == "" {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected end of input reading %s: need %d bytes, have %d", e.What, e.Need, e.Have)
}

// Is returns true if the target error is a ShortReadError.
func (e ShortReadError) Is(target error) bool {
	_, ok := target.(ShortReadError)
	return ok
}

// InvalidUTF8Error is returned when string bytes are not valid UTF-8.
type InvalidUTF8Error struct {
	Offset int
}

func (e InvalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 in string at offset %d", e.Offset)
}

// Is returns true if the target error is an InvalidUTF8Error.
func (e InvalidUTF8Error) Is(target error) bool {
	_, ok := target.(InvalidUTF8Error)
	return ok
}

// UnknownEnumValueError is returned when a decoded discriminant matches no
// member of the enum. Enums are not forward compatible.
type UnknownEnumValueError struct {
	Enum  string
	Value uint32
}

func (e UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown value %d for enum %s", e.Value, e.Enum)
}

// Is returns true if the target error is an UnknownEnumValueError.
func (e UnknownEnumValueError) Is(target error) bool {
	_, ok := target.(UnknownEnumValueError)
	return ok
}

// UnknownUnionTagError is returned when a decoded union tag matches no variant.
type UnknownUnionTagError struct {
	Union string
	Tag   uint8
}

func (e UnknownUnionTagError) Error() string {
	return fmt.Sprintf("unknown tag %d for union %s", e.Tag, e.Union)
}

// Is returns true if the target error is an UnknownUnionTagError.
func (e UnknownUnionTagError) Is(target error) bool {
	_, ok := target.(UnknownUnionTagError)
	return ok
}

// SizeOverflowError is returned on encode when a length or count does not fit
// in the 32-bit field that carries it.
type SizeOverflowError struct {
	Size uint64
}

func (e SizeOverflowError) Error() string {
	return fmt.Sprintf("size %d exceeds 32-bit length field", e.Size)
}

// Is returns true if the target error is a SizeOverflowError.
func (e SizeOverflowError) Is(target error) bool {
	_, ok := target.(SizeOverflowError)
	return ok
}

// DepthError is returned when input nests frames or collections deeper than
// the Reader allows.
type DepthError struct {
	Limit int
}

func (e DepthError) Error() string {
	return fmt.Sprintf("nesting exceeds depth limit %d", e.Limit)
}

// Is returns true if the target error is a DepthError.
func (e DepthError) Is(target error) bool {
	_, ok := target.(DepthError)
	return ok
}

// UnionVariantError is returned on encode when a union value does not have
// exactly one variant set.
type UnionVariantError struct {
	Union string
	Set   int
}

func (e UnionVariantError) Error() string {
	return fmt.Sprintf("union %s must have exactly one variant set, found %d", e.Union, e.Set)
}

// Is returns true if the target error is a UnionVariantError.
func (e UnionVariantError) Is(target error) bool {
	_, ok := target.(UnionVariantError)
	return ok
}

// FieldError attaches the type and field being decoded to an underlying error.
type FieldError struct {
	Type  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Type, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// WrapField wraps err with the type and field that failed to decode.
func WrapField(typ string, field string, err error) error {
	return &FieldError{Type: typ, Field: field, Err: err}
}
