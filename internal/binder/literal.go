package binder

import (
	"github.com/lincfront/linc/internal/boundtree"
	"github.com/lincfront/linc/internal/token"
	"github.com/lincfront/linc/internal/typesystem"
	"github.com/lincfront/linc/internal/values"
)

// bindLiteral resolves integer-literal polymorphism: the literal's
// type derives from the token kind and defaults to i32, but when hint
// names an integer kind the literal's value fits in, it adopts hint's
// kind directly instead.
func (b *Binder) bindLiteral(e *boundtree.LiteralExpression, tok token.Token, hint typesystem.Type) {
	switch tok.Kind {
	case token.IntegerLiteral:
		kind := typesystem.I32
		if hp, ok := asPrimitive(hint); ok && hp.Kind.IsInteger() && typesystem.FitsInRange(hp.Kind, tok.Numeric.Int) {
			kind = hp.Kind
		}
		e.Resolved = typesystem.Primitive{Kind: kind}
		e.Value = values.Int{Kind: kind, V: tok.Numeric.Int}

	case token.FloatLiteral:
		kind := typesystem.F64
		if hp, ok := asPrimitive(hint); ok && hp.Kind.IsFloat() {
			kind = hp.Kind
		}
		e.Resolved = typesystem.Primitive{Kind: kind}
		e.Value = values.Float{Kind: kind, V: tok.Numeric.Float}

	case token.StringLiteral:
		e.Resolved = typesystem.Primitive{Kind: typesystem.String}
		e.Value = values.String{V: tok.String}

	case token.CharLiteral:
		r := rune(0)
		if len(tok.String) > 0 {
			r = []rune(tok.String)[0]
		}
		e.Resolved = typesystem.Primitive{Kind: typesystem.Char}
		e.Value = values.Char{V: r}

	case token.BoolLiteral:
		e.Resolved = typesystem.Primitive{Kind: typesystem.Bool}
		e.Value = values.Bool{V: tok.Lexeme == "true"}

	default:
		e.Resolved = typesystem.Invalid{}
	}
}

func asPrimitive(t typesystem.Type) (typesystem.Primitive, bool) {
	if t == nil {
		return typesystem.Primitive{}, false
	}
	p, ok := typesystem.Underlying(t).(typesystem.Primitive)
	return p, ok
}
