package dynamic

import "fmt"

// TypeError is returned when a Go value does not have the shape required by
// the schema type it is encoded as.
type TypeError struct {
	Type   string
	Got    string
	Reason string
}

func typeError(typ string, v any, reason string) TypeError {
	return TypeError{Type: typ, Got: fmt.Sprintf("%T", v), Reason: reason}
}

func (e TypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot encode %s as %s: %s", e.Got, e.Type, e.Reason)
	}
	return fmt.Sprintf("cannot encode %s as %s", e.Got, e.Type)
}

// Is returns true if the target error is a TypeError.
func (e TypeError) Is(target error) bool {
	_, ok := target.(TypeError)
	return ok
}

// UnknownTypeError is returned when a definition name is not in the registry.
type UnknownTypeError struct {
	Name string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %s", e.Name)
}

// Is returns true if the target error is an UnknownTypeError.
func (e UnknownTypeError) Is(target error) bool {
	_, ok := target.(UnknownTypeError)
	return ok
}
