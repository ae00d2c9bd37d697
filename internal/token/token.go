// Package token defines the contract this front end consumes from the
// lexer: a stream of kinded, spanned tokens. The lexer itself is an
// external collaborator (see spec §1/§6) — this package only fixes the
// shape both sides agree on.
package token

// Kind identifies the lexical category of a token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Identifier
	IntegerLiteral
	FloatLiteral
	StringLiteral
	CharLiteral
	BoolLiteral

	// Keywords, operators and punctuation are left to the lexer/parser
	// collaborator to enumerate in full; the binder only ever inspects
	// Kind for literal/identifier tokens and otherwise treats a token as
	// an opaque position marker carried by a tree node.
	Keyword
	Operator
	Punctuation
)

// Span identifies a half-open range of source text.
type Span struct {
	File        string
	Line        int
	Column      int
	StartOffset int
	EndOffset   int
}

// Join returns the smallest span covering both a and b. A zero-value
// span on either side is treated as absent.
func Join(a, b Span) Span {
	if a == (Span{}) {
		return b
	}
	if b == (Span{}) {
		return a
	}
	start := a
	if b.StartOffset < a.StartOffset {
		start = b
	}
	end := a.EndOffset
	if b.EndOffset > end {
		end = b.EndOffset
	}
	return Span{
		File:        start.File,
		Line:        start.Line,
		Column:      start.Column,
		StartOffset: start.StartOffset,
		EndOffset:   end,
	}
}

// Token is the unit the lexer hands the parser, and the parser in turn
// attaches to every unbound tree node it builds.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span

	// String and Numeric are populated according to Kind: identifier
	// tokens carry their lexeme again in String for convenience,
	// string/char literals carry their decoded value in String, and
	// numeric literals carry their parsed value in Numeric.
	String  string
	Numeric NumericValue
}

// NumericValue holds a parsed numeric literal, integer or float.
type NumericValue struct {
	IsFloat bool
	Int     int64
	Float   float64
}
