package typesystem

// Assignability classifies how a value of one type may flow into a
// location of another.
type Assignability int

const (
	Identity Assignability = iota
	ImplicitWiden
	ImplicitNarrowWarn
	ExplicitOnly
	Incompatible
)

// Assignable computes the assignability of src into a dst-typed
// location.
func Assignable(src, dst Type) Assignability {
	if IsInvalid(src) || IsInvalid(dst) {
		return Incompatible
	}
	src = Underlying(src)
	dst = Underlying(dst)

	if src.Equals(dst) {
		return Identity
	}

	if sp, ok := src.(Primitive); ok {
		if dp, ok := dst.(Primitive); ok {
			return assignablePrimitive(sp, dp)
		}
	}

	if sa, ok := src.(Array); ok {
		if da, ok := dst.(Array); ok {
			return assignableArray(sa, da)
		}
	}

	if _, ok := src.(Function); ok {
		if _, ok := dst.(Function); ok {
			if src.Equals(dst) {
				return Identity
			}
			return Incompatible
		}
	}

	return Incompatible
}

func assignablePrimitive(src, dst Primitive) Assignability {
	// bool <-> numeric, char <-> u8, string <-> array-of-char: explicit-only.
	if src.Kind == Bool || dst.Kind == Bool {
		if src.Kind == dst.Kind {
			return Identity
		}
		return ExplicitOnly
	}
	if (src.Kind == Char && dst.Kind == U8) || (src.Kind == U8 && dst.Kind == Char) {
		return ExplicitOnly
	}
	if !src.Kind.IsNumeric() || !dst.Kind.IsNumeric() {
		return Incompatible
	}

	// float <-> int and sign-class mismatch both require explicit conversion.
	if src.Kind.IsFloat() != dst.Kind.IsFloat() {
		return ExplicitOnly
	}
	if !src.Kind.IsFloat() && src.Kind.IsSignedInteger() != dst.Kind.IsSignedInteger() {
		return ExplicitOnly
	}

	if dst.Kind.Rank() >= src.Kind.Rank() {
		return ImplicitWiden
	}
	return ExplicitOnly
}

func assignableArray(src, dst Array) Assignability {
	elem := Assignable(src.Element, dst.Element)
	if elem == Incompatible {
		return Incompatible
	}
	lengthOK := dst.Length == nil || (src.Length != nil && *src.Length == *dst.Length)
	if !lengthOK {
		return Incompatible
	}
	if elem == Identity {
		return Identity
	}
	return elem
}

// StringAssignableFromCharArray reports the special-cased
// `string`<->`array-of-char` conversion, since it straddles the
// Primitive/Array boundary Assignable otherwise treats as
// always-incompatible.
func StringAssignableFromCharArray(src, dst Type) (Assignability, bool) {
	if sp, ok := Underlying(dst).(Primitive); ok && sp.Kind == String {
		if sa, ok := Underlying(src).(Array); ok {
			if cp, ok := sa.Element.(Primitive); ok && cp.Kind == Char {
				return ExplicitOnly, true
			}
		}
	}
	if dp, ok := Underlying(dst).(Array); ok {
		if cp, ok := dp.Element.(Primitive); ok && cp.Kind == Char {
			if sp, ok := Underlying(src).(Primitive); ok && sp.Kind == String {
				return ExplicitOnly, true
			}
		}
	}
	return Incompatible, false
}

// Common computes the least upper bound of t and u under Assignable,
// or nil when none exists.
func Common(t, u Type) Type {
	if IsInvalid(t) || IsInvalid(u) {
		return nil
	}
	if t.Equals(u) {
		return t
	}
	if a := Assignable(t, u); a == ImplicitWiden || a == Identity {
		return u
	}
	if a := Assignable(u, t); a == ImplicitWiden || a == Identity {
		return t
	}
	// Neither widens to the other directly; for numeric types, climb to
	// a shared wider kind using the tie-break rules below.
	tp, tOK := Underlying(t).(Primitive)
	up, uOK := Underlying(u).(Primitive)
	if tOK && uOK && tp.Kind.IsNumeric() && up.Kind.IsNumeric() {
		if k, ok := commonNumericKind(tp.Kind, up.Kind); ok {
			return Primitive{Kind: k}
		}
	}
	return nil
}

// commonNumericKind applies the numeric tie-break rules: prefer
// signed->signed over signed->unsigned, integer->float widens to the
// smallest float containing the integer's range, otherwise widen to
// the larger float.
func commonNumericKind(a, b PrimitiveKind) (PrimitiveKind, bool) {
	if a.IsFloat() || b.IsFloat() {
		if a.IsFloat() && b.IsFloat() {
			if a.Rank() >= b.Rank() {
				return a, true
			}
			return b, true
		}
		// integer -> float: 16-bit and narrower integers go to f32;
		// i32/u32 and wider require f64. The float operand's own width
		// is never narrowed.
		intKind, floatKind := a, b
		if a.IsFloat() {
			intKind, floatKind = b, a
		}
		k := F64
		if intKind.Rank() <= 1 {
			k = F32
		}
		if floatKind.Rank() > k.Rank() {
			k = floatKind
		}
		return k, true
	}
	if a.IsSignedInteger() && b.IsSignedInteger() {
		if a.Rank() >= b.Rank() {
			return a, true
		}
		return b, true
	}
	if a.IsUnsignedInteger() && b.IsUnsignedInteger() {
		if a.Rank() >= b.Rank() {
			return a, true
		}
		return b, true
	}
	// Sign mismatch: prefer widening to the signed kind wide enough to
	// hold both, per the "prefer signed->signed" tie-break.
	signed, unsigned := a, b
	if !a.IsSignedInteger() {
		signed, unsigned = b, a
	}
	rank := signed.Rank()
	if unsigned.Rank()+1 > rank {
		rank = unsigned.Rank() + 1 // the unsigned side needs one more bit of headroom.
	}
	switch {
	case rank <= 1:
		return I16, true
	case rank == 2:
		return I32, true
	default:
		return I64, true
	}
}
