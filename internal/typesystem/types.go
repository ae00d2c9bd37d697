// Package typesystem represents and compares the language's types and
// computes conversion/operator rules.
package typesystem

import (
	"strconv"
	"strings"
)

// Type is the interface every type-system value implements.
type Type interface {
	String() string

	// Equals is structural equality, modulo mutability.
	Equals(other Type) bool
}

// PrimitiveKind enumerates the language's scalar kinds.
type PrimitiveKind int

const (
	Void PrimitiveKind = iota
	Bool
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Char
	String
	TypeKind // the type of a type expression used as a value, e.g. `type` literals.
)

func (k PrimitiveKind) String() string {
	switch k {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Char:
		return "char"
	case String:
		return "string"
	case TypeKind:
		return "type"
	default:
		return "?"
	}
}

// IsInteger reports whether the kind is one of the fixed-width integer
// kinds (signed or unsigned).
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case U8, U16, U32, U64, I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsSignedInteger reports whether the kind is a signed integer kind.
func (k PrimitiveKind) IsSignedInteger() bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsUnsignedInteger reports whether the kind is an unsigned integer kind.
func (k PrimitiveKind) IsUnsignedInteger() bool {
	switch k {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the kind is a floating-point kind.
func (k PrimitiveKind) IsFloat() bool {
	return k == F32 || k == F64
}

// IsNumeric reports whether the kind participates in numeric widening:
// any integer or float kind.
func (k PrimitiveKind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloat()
}

// Rank orders numeric kinds by width within their sign class, used to
// decide widen vs. narrow. Kinds outside a class return -1.
func (k PrimitiveKind) Rank() int {
	switch k {
	case I8, U8:
		return 0
	case I16, U16:
		return 1
	case I32, U32, F32:
		return 2
	case I64, U64, F64:
		return 3
	default:
		return -1
	}
}

// Primitive is a scalar type.
type Primitive struct {
	Kind    PrimitiveKind
	Mutable bool
}

func (p Primitive) String() string { return p.Kind.String() }

func (p Primitive) Equals(other Type) bool {
	o, ok := other.(Primitive)
	return ok && o.Kind == p.Kind
}

// Array is either a fixed-length or dynamic array type. Length == nil
// denotes a dynamic array.
type Array struct {
	Element Type
	Length  *uint64
	Mutable bool
}

func (a Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if a.Length != nil {
		b.WriteString(itoa(*a.Length))
	}
	b.WriteByte(']')
	if a.Element != nil {
		b.WriteString(a.Element.String())
	}
	return b.String()
}

func (a Array) Equals(other Type) bool {
	o, ok := other.(Array)
	if !ok {
		return false
	}
	if (a.Length == nil) != (o.Length == nil) {
		return false
	}
	if a.Length != nil && *a.Length != *o.Length {
		return false
	}
	return typeEquals(a.Element, o.Element)
}

// Function is a callable signature. It carries no parameter names:
// those belong to the declaration, not the type.
type Function struct {
	Return     Type
	Parameters []Type
}

func (f Function) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range f.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	if f.Return != nil {
		b.WriteString(f.Return.String())
	}
	return b.String()
}

func (f Function) Equals(other Type) bool {
	o, ok := other.(Function)
	if !ok || len(f.Parameters) != len(o.Parameters) {
		return false
	}
	if !typeEquals(f.Return, o.Return) {
		return false
	}
	for i := range f.Parameters {
		if !typeEquals(f.Parameters[i], o.Parameters[i]) {
			return false
		}
	}
	return true
}

// Field is one member of a Structure, in declaration order.
type Field struct {
	Name string
	Type Type
}

// Structure is a nominal product type.
type Structure struct {
	Name   string
	Fields []Field
}

func (s Structure) String() string { return s.Name }

func (s Structure) Equals(other Type) bool {
	o, ok := other.(Structure)
	if !ok || s.Name != o.Name || len(s.Fields) != len(o.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i].Name != o.Fields[i].Name || !typeEquals(s.Fields[i].Type, o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// FieldIndex returns the index of a field by name, or -1.
func (s Structure) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Variant is one case of an Enumeration; Payload is nil when the
// variant carries no value.
type Variant struct {
	Name    string
	Payload Type
}

// Enumeration is a nominal sum type. Two enumerations with identical
// variants but distinct names are distinct.
type Enumeration struct {
	Name     string
	Variants []Variant
}

func (e Enumeration) String() string { return e.Name }

func (e Enumeration) Equals(other Type) bool {
	o, ok := other.(Enumeration)
	return ok && e.Name == o.Name
}

// VariantIndex returns the index of a variant by name, or -1.
func (e Enumeration) VariantIndex(name string) int {
	for i, v := range e.Variants {
		if v.Name == name {
			return i
		}
	}
	return -1
}

// Alias names another type without introducing a distinct nominal
// identity: Equals delegates to the underlying type (unlike
// Enumeration/Structure, which are nominal).
type Alias struct {
	Name       string
	Underlying Type
}

func (a Alias) String() string { return a.Name }

func (a Alias) Equals(other Type) bool {
	return typeEquals(a.Underlying, other)
}

// Invalid marks a poisoned node's type. It compares equal only to
// itself so that poison never silently satisfies an assignability
// check.
type Invalid struct{}

func (Invalid) String() string { return "<invalid>" }

func (Invalid) Equals(other Type) bool {
	_, ok := other.(Invalid)
	return ok
}

// IsInvalid reports whether t is the poison type, treating a nil Type
// as poisoned too (a binder bug, not a valid absence).
func IsInvalid(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(Invalid)
	return ok
}

// FitsInRange reports whether an integer literal value v is
// representable in kind without narrowing, used to decide whether a
// polymorphic integer literal may adopt a context type directly.
func FitsInRange(kind PrimitiveKind, v int64) bool {
	switch kind {
	case U8:
		return v >= 0 && v <= 255
	case U16:
		return v >= 0 && v <= 65535
	case U32:
		return v >= 0 && v <= 4294967295
	case U64:
		return v >= 0
	case I8:
		return v >= -128 && v <= 127
	case I16:
		return v >= -32768 && v <= 32767
	case I32:
		return v >= -2147483648 && v <= 2147483647
	case I64:
		return true
	default:
		return false
	}
}

// Underlying strips Alias wrappers, returning the first non-alias type.
func Underlying(t Type) Type {
	for {
		a, ok := t.(Alias)
		if !ok {
			return t
		}
		t = a.Underlying
	}
}

func typeEquals(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
