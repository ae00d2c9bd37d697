// Package values represents runtime-shaped constants used inside
// literals and folded expressions (spec §3.2). It mirrors
// internal/typesystem's shape — one variant per type kind — but holds
// data, not type descriptions.
package values

import (
	"strconv"

	"github.com/lincfront/linc/internal/typesystem"
)

// Value is the interface every constant value implements.
type Value interface {
	Type() typesystem.Type
	String() string

	// Clone returns a deep copy. Required because function values own
	// a bound expression body and must not alias it across copies
	// (spec §3.2, §4.3).
	Clone() Value
}

// Bool is a boolean constant.
type Bool struct{ V bool }

func (b Bool) Type() typesystem.Type { return typesystem.Primitive{Kind: typesystem.Bool} }
func (b Bool) String() string {
	if b.V {
		return "true"
	}
	return "false"
}
func (b Bool) Clone() Value { return b }

// Int is an integer constant of a specific fixed-width kind.
type Int struct {
	Kind typesystem.PrimitiveKind
	V    int64
}

func (i Int) Type() typesystem.Type { return typesystem.Primitive{Kind: i.Kind} }
func (i Int) String() string        { return formatInt(i.V) }
func (i Int) Clone() Value          { return i }

// Float is a floating-point constant of a specific width.
type Float struct {
	Kind typesystem.PrimitiveKind
	V    float64
}

func (f Float) Type() typesystem.Type { return typesystem.Primitive{Kind: f.Kind} }
func (f Float) String() string        { return formatFloat(f.V) }
func (f Float) Clone() Value          { return f }

// Char is a single character constant.
type Char struct{ V rune }

func (c Char) Type() typesystem.Type { return typesystem.Primitive{Kind: typesystem.Char} }
func (c Char) String() string        { return string(c.V) }
func (c Char) Clone() Value          { return c }

// String is a string constant.
type String struct{ V string }

func (s String) Type() typesystem.Type { return typesystem.Primitive{Kind: typesystem.String} }
func (s String) String() string        { return s.V }
func (s String) Clone() Value          { return s }

// Array is an ordered sequence of values sharing an element type.
type Array struct {
	ElementType typesystem.Type
	Elements    []Value
}

func (a Array) Type() typesystem.Type {
	length := uint64(len(a.Elements))
	return typesystem.Array{Element: a.ElementType, Length: &length}
}
func (a Array) String() string {
	out := "["
	for i, e := range a.Elements {
		if i > 0 {
			out += ", "
		}
		out += e.String()
	}
	return out + "]"
}
func (a Array) Clone() Value {
	elems := make([]Value, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = e.Clone()
	}
	return Array{ElementType: a.ElementType, Elements: elems}
}

// BoundExpression is the minimal surface values.Function needs from the
// bound tree without importing it (internal/boundtree already imports
// internal/values for literal typing, so the reverse import would
// cycle — spec §4.3 "ownership is strictly a tree" still holds, this
// is only about Go package layering).
type BoundExpression interface {
	CloneBody() BoundExpression
}

// Function is a function constant: a name, its parameter names, and an
// owned bound body (spec §3.2). The body is cloned whenever the
// function value itself is cloned, matching the C++ original's
// unique_ptr ownership (see original_source FunctionValue.hpp).
type Function struct {
	Name          string
	ParameterNames []string
	SignatureType typesystem.Function
	Body          BoundExpression
}

func (f Function) Type() typesystem.Type { return f.SignatureType }
func (f Function) String() string        { return "fn " + f.Name }
func (f Function) Clone() Value {
	var body BoundExpression
	if f.Body != nil {
		body = f.Body.CloneBody()
	}
	names := make([]string, len(f.ParameterNames))
	copy(names, f.ParameterNames)
	return Function{Name: f.Name, ParameterNames: names, SignatureType: f.SignatureType, Body: body}
}

// Enumerator is an enumeration value: which enum, which variant, and
// an optional payload (spec §3.2).
type Enumerator struct {
	EnumType     typesystem.Enumeration
	VariantIndex int
	Payload      Value // nil when the variant carries no payload.
}

func (e Enumerator) Type() typesystem.Type { return e.EnumType }
func (e Enumerator) String() string {
	name := "?"
	if e.VariantIndex >= 0 && e.VariantIndex < len(e.EnumType.Variants) {
		name = e.EnumType.Variants[e.VariantIndex].Name
	}
	out := e.EnumType.Name + "::" + name
	if e.Payload != nil {
		out += "(" + e.Payload.String() + ")"
	}
	return out
}
func (e Enumerator) Clone() Value {
	var payload Value
	if e.Payload != nil {
		payload = e.Payload.Clone()
	}
	return Enumerator{EnumType: e.EnumType, VariantIndex: e.VariantIndex, Payload: payload}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
