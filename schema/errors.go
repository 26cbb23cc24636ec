package schema

import (
	"errors"
	"fmt"
)

/*
Schema errors are fatal diagnostics. Each carries a position and wraps one of the
sentinel categories below, so callers can use errors.Is to classify a failure
and print the error to locate it.
*/

////////////////////////////////////////////////////////////////////////////////

// nolint:gochecknoglobals
var (
	ErrSyntax             = errors.New("syntax error")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrOpcodeLength       = errors.New("opcode literal must be exactly four bytes")
	ErrIndexRange         = errors.New("index out of range")
	ErrReservedIndex      = errors.New("message field index 0 is reserved for the terminator")
	ErrEnumOpcode         = errors.New("enums cannot have an opcode")
	ErrDuplicate          = errors.New("duplicate declaration")
	ErrUnknownType        = errors.New("unknown type")
	ErrInvalidMapKey      = errors.New("invalid map key type")
	ErrRecursiveStruct    = errors.New("struct contains itself")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrImport             = errors.New("unable to import")
	ErrCyclicImport       = errors.New("cyclic import")
)

// Error is a positioned schema diagnostic.
type Error struct {
	Pos    Position
	Err    error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Err, e.Detail)
}

// Unwrap returns the error category.
func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(pos Position, err error, format string, args ...any) *Error {
	return &Error{Pos: pos, Err: err, Detail: fmt.Sprintf(format, args...)}
}
