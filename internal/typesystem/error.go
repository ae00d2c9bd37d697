package typesystem

import "fmt"

// UnknownTypeError indicates a type-expression referenced a name that
// does not resolve to a type symbol.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %s", e.Name)
}

func NewUnknownTypeError(name string) *UnknownTypeError {
	return &UnknownTypeError{Name: name}
}
