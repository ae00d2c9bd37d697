package loader

import (
	"testing"

	"github.com/lincfront/linc/internal/tree"
)

func TestDecodeProgramEmpty(t *testing.T) {
	prog, err := DecodeProgram([]byte("declarations: []\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Declarations) != 0 {
		t.Errorf("expected no declarations, got %d", len(prog.Declarations))
	}
}

func TestDecodeVariableDeclarationWithLiteralInitializer(t *testing.T) {
	doc := `
declarations:
  - kind: var
    name: x
    mutable: true
    type: i32
    init:
      kind: literal
      token: {kind: int, value: 5}
`
	prog, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}
	v, ok := prog.Declarations[0].(*tree.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *tree.VariableDeclaration, got %T", prog.Declarations[0])
	}
	if v.Name.Name != "x" || !v.Mutable || v.TypeAnnotation.Name != "i32" {
		t.Errorf("unexpected declaration shape: %+v", v)
	}
	lit, ok := v.Initializer.(*tree.LiteralExpression)
	if !ok {
		t.Fatalf("expected a literal initializer, got %T", v.Initializer)
	}
	if lit.Token.Numeric.Int != 5 {
		t.Errorf("expected literal value 5, got %d", lit.Token.Numeric.Int)
	}
}

func TestDecodeFunctionDeclarationWithBlockBody(t *testing.T) {
	doc := `
declarations:
  - kind: fn
    name: add
    params:
      - {name: a, type: i32}
      - {name: b, type: i32}
    returns: i32
    body:
      kind: block
      stmts: []
      tail:
        kind: binary
        op: "+"
        left: {kind: ident, name: a}
        right: {kind: ident, name: b}
`
	prog, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := prog.Declarations[0].(*tree.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *tree.FunctionDeclaration, got %T", prog.Declarations[0])
	}
	if len(fn.Parameters) != 2 || fn.Parameters[0].Name.Name != "a" || fn.ReturnType.Name != "i32" {
		t.Errorf("unexpected parameters/return type: %+v", fn)
	}
	body, ok := fn.Body.(*tree.BlockExpression)
	if !ok {
		t.Fatalf("expected *tree.BlockExpression body, got %T", fn.Body)
	}
	bin, ok := body.Tail.(*tree.BinaryExpression)
	if !ok {
		t.Fatalf("expected a binary tail expression, got %T", body.Tail)
	}
	if bin.Op != tree.OpAdd {
		t.Errorf("expected OpAdd, got %v", bin.Op)
	}
}

func TestDecodeStructureAndEnumerationDeclarations(t *testing.T) {
	doc := `
declarations:
  - kind: struct
    name: Point
    fields:
      - {name: x, type: i32}
      - {name: y, type: i32}
  - kind: enum
    name: Color
    variants:
      - {name: Red}
      - {name: Wrapped, payload: i32}
`
	prog, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := prog.Declarations[0].(*tree.StructureDeclaration)
	if len(st.Fields) != 2 || st.Fields[1].Name.Name != "y" {
		t.Errorf("unexpected fields: %+v", st.Fields)
	}
	en := prog.Declarations[1].(*tree.EnumerationDeclaration)
	if len(en.Variants) != 2 || en.Variants[0].Payload != nil {
		t.Errorf("expected Red to carry no payload: %+v", en.Variants[0])
	}
	if en.Variants[1].Payload == nil || en.Variants[1].Payload.Name != "i32" {
		t.Errorf("expected Wrapped to carry an i32 payload: %+v", en.Variants[1])
	}
}

func TestDecodeRangedForClause(t *testing.T) {
	doc := `
declarations:
  - kind: fn
    name: f
    body:
      kind: block
      stmts:
        - kind: expr
          expr:
            kind: for
            label: outer
            clause:
              style: ranged
              var: i
              iterable:
                kind: range
                start: {kind: literal, token: {kind: int, value: 0}}
                end: {kind: literal, token: {kind: int, value: 10}}
            body:
              kind: block
              stmts: []
`
	prog, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Declarations[0].(*tree.FunctionDeclaration)
	stmt := fn.Body.(*tree.BlockExpression).Statements[0].(*tree.ExpressionStatement)
	forExpr := stmt.Expr.(*tree.ForExpression)
	if forExpr.Label.Name != "outer" {
		t.Errorf("expected label outer, got %v", forExpr.Label)
	}
	ranged, ok := forExpr.Clause.(*tree.RangedForClause)
	if !ok {
		t.Fatalf("expected *tree.RangedForClause, got %T", forExpr.Clause)
	}
	if ranged.Variable.Name != "i" {
		t.Errorf("expected loop variable i, got %v", ranged.Variable)
	}
}

func TestDecodeArrayTypeAnnotation(t *testing.T) {
	doc := `
declarations:
  - kind: var
    name: xs
    type: {array_of: i32, length: 3}
`
	prog, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := prog.Declarations[0].(*tree.VariableDeclaration)
	if v.TypeAnnotation.ArrayOf == nil || v.TypeAnnotation.ArrayOf.Name != "i32" {
		t.Fatalf("expected an array-of-i32 type annotation, got %+v", v.TypeAnnotation)
	}
	if v.TypeAnnotation.ArrayLength == nil || *v.TypeAnnotation.ArrayLength != 3 {
		t.Errorf("expected array length 3, got %v", v.TypeAnnotation.ArrayLength)
	}
}

func TestDecodeUnrecognizedDeclarationKindErrors(t *testing.T) {
	_, err := DecodeProgram([]byte("declarations:\n  - kind: bogus\n"))
	if err == nil {
		t.Errorf("expected an error for an unrecognized declaration kind")
	}
}

func TestDecodeMatchExpressionClauses(t *testing.T) {
	doc := `
declarations:
  - kind: var
    name: result
    init:
      kind: match
      subject: {kind: ident, name: x}
      clauses:
        - patterns:
            - {kind: literal, token: {kind: int, value: 1}}
          body: {kind: literal, token: {kind: int, value: 100}}
        - patterns: []
          body: {kind: literal, token: {kind: int, value: 0}}
`
	prog, err := DecodeProgram([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := prog.Declarations[0].(*tree.VariableDeclaration)
	m := v.Initializer.(*tree.MatchExpression)
	if len(m.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(m.Clauses))
	}
	if len(m.Clauses[0].Patterns) != 1 {
		t.Errorf("expected 1 pattern on the first clause")
	}
	if len(m.Clauses[1].Patterns) != 0 {
		t.Errorf("expected the second clause to be the default (no patterns)")
	}
}
