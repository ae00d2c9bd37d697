package typesystem

import "testing"

func TestPrimitiveEquality(t *testing.T) {
	a := Primitive{Kind: I32}
	b := Primitive{Kind: I32, Mutable: true}
	if !a.Equals(b) {
		t.Errorf("Primitive equality should ignore mutability")
	}
	c := Primitive{Kind: I64}
	if a.Equals(c) {
		t.Errorf("i32 should not equal i64")
	}
}

func TestEnumerationNominal(t *testing.T) {
	a := Enumeration{Name: "Color", Variants: []Variant{{Name: "Red"}, {Name: "Green"}}}
	b := Enumeration{Name: "Signal", Variants: []Variant{{Name: "Red"}, {Name: "Green"}}}
	if a.Equals(b) {
		t.Errorf("enumerations with identical variants but distinct names must be distinct")
	}
}

func TestAssignableIdentity(t *testing.T) {
	i32 := Primitive{Kind: I32}
	if Assignable(i32, i32) != Identity {
		t.Errorf("assignable(T,T) should be identity")
	}
}

func TestAssignableWiden(t *testing.T) {
	i16 := Primitive{Kind: I16}
	i32 := Primitive{Kind: I32}
	if got := Assignable(i16, i32); got != ImplicitWiden {
		t.Errorf("i16 -> i32 should widen, got %v", got)
	}
	if got := Assignable(i32, i16); got != ExplicitOnly {
		t.Errorf("i32 -> i16 should require explicit conversion, got %v", got)
	}
}

func TestAssignableMonotonic(t *testing.T) {
	// assignable(T,U)=widen => assignable(U,T) in {narrow-ish explicit, incompatible}
	i16 := Primitive{Kind: I16}
	u32 := Primitive{Kind: U32}
	i32 := Primitive{Kind: I32}
	if got := Assignable(i16, i32); got != ImplicitWiden {
		t.Errorf("i16 -> i32 should widen, got %v", got)
	}
	if got := Assignable(i32, i16); got != ImplicitNarrowWarn && got != ExplicitOnly && got != Incompatible {
		t.Errorf("i32 -> i16 should not widen or be identity, got %v", got)
	}
	if got := Assignable(u32, i32); got == ImplicitWiden {
		t.Errorf("sign mismatch should never implicitly widen")
	}
}

func TestAssignableSignMismatchExplicit(t *testing.T) {
	u32 := Primitive{Kind: U32}
	i32 := Primitive{Kind: I32}
	if got := Assignable(u32, i32); got != ExplicitOnly {
		t.Errorf("u32 -> i32 should be explicit-only, got %v", got)
	}
}

func TestAssignableFloatIntExplicit(t *testing.T) {
	f32 := Primitive{Kind: F32}
	i32 := Primitive{Kind: I32}
	if got := Assignable(i32, f32); got != ExplicitOnly {
		t.Errorf("i32 -> f32 should be explicit-only, got %v", got)
	}
}

func TestCommonNumeric(t *testing.T) {
	i16 := Primitive{Kind: I16}
	i32 := Primitive{Kind: I32}
	if c := Common(i16, i32); c == nil || !c.Equals(i32) {
		t.Errorf("common(i16,i32) should be i32, got %v", c)
	}
}

func TestArrayAssignability(t *testing.T) {
	len3 := uint64(3)
	fixed := Array{Element: Primitive{Kind: I32}, Length: &len3}
	dynamic := Array{Element: Primitive{Kind: I32}}
	if Assignable(fixed, dynamic) == Incompatible {
		t.Errorf("fixed array should be assignable to a dynamic array of the same element type")
	}
	len4 := uint64(4)
	otherFixed := Array{Element: Primitive{Kind: I32}, Length: &len4}
	if Assignable(fixed, otherFixed) != Incompatible {
		t.Errorf("arrays of different fixed lengths should be incompatible")
	}
}

func TestUnaryOperators(t *testing.T) {
	if Unary(UnaryNot, Primitive{Kind: Bool}) == nil {
		t.Errorf("! should apply to bool")
	}
	if Unary(UnaryNot, Primitive{Kind: I32}) != nil {
		t.Errorf("! should not apply to i32")
	}
	if Unary(UnaryNeg, Primitive{Kind: U32}) != nil {
		t.Errorf("- should not apply to unsigned integers")
	}
	if Unary(UnaryBitNot, Primitive{Kind: I32}) == nil {
		t.Errorf("~ should apply to integers")
	}
}

func TestBinaryStringConcat(t *testing.T) {
	str := Primitive{Kind: String}
	ch := Primitive{Kind: Char}
	if got := Binary(BinaryAdd, str, str); got == nil || !got.Equals(str) {
		t.Errorf("string + string should yield string")
	}
	if got := Binary(BinaryAdd, str, ch); got == nil || !got.Equals(str) {
		t.Errorf("string + char should yield string")
	}
}

func TestBinaryLogical(t *testing.T) {
	b := Primitive{Kind: Bool}
	i := Primitive{Kind: I32}
	if Binary(BinaryAnd, b, b) == nil {
		t.Errorf("&& should apply to bool operands")
	}
	if Binary(BinaryAnd, b, i) != nil {
		t.Errorf("&& should reject a non-bool operand")
	}
}

func TestBinaryComparisonYieldsBool(t *testing.T) {
	i32 := Primitive{Kind: I32}
	got := Binary(BinaryLt, i32, i32)
	if got == nil || !got.Equals(Primitive{Kind: Bool}) {
		t.Errorf("comparisons should yield bool, got %v", got)
	}
}
