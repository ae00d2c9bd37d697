package binder

import (
	"testing"

	"github.com/lincfront/linc/internal/boundtree"
	"github.com/lincfront/linc/internal/config"
	"github.com/lincfront/linc/internal/diagnostics"
	"github.com/lincfront/linc/internal/token"
	"github.com/lincfront/linc/internal/tree"
	"github.com/lincfront/linc/internal/typesystem"
)

func intLit(v int64) *tree.LiteralExpression {
	return &tree.LiteralExpression{Token: token.Token{Kind: token.IntegerLiteral, Numeric: token.NumericValue{Int: v}}}
}

func boolLit(v bool) *tree.LiteralExpression {
	lexeme := "false"
	if v {
		lexeme = "true"
	}
	return &tree.LiteralExpression{Token: token.Token{Kind: token.BoolLiteral, Lexeme: lexeme}}
}

func stringLit(v string) *tree.LiteralExpression {
	return &tree.LiteralExpression{Token: token.Token{Kind: token.StringLiteral, String: v}}
}

func ty(name string) *tree.TypeExpression { return &tree.TypeExpression{Name: name} }

func hasErrorCode(diags *diagnostics.Collector, code diagnostics.Code) bool {
	for _, r := range diags.Reports() {
		if r.Code == code && r.Severity == diagnostics.Error {
			return true
		}
	}
	return false
}

func hasWarningCode(diags *diagnostics.Collector, code diagnostics.Code) bool {
	for _, r := range diags.Reports() {
		if r.Code == code && r.Severity == diagnostics.Warning {
			return true
		}
	}
	return false
}

// Scenario 1: `let x: i32 = 5; let y = x + 1;` binds cleanly,
// with y inferred as i32 via integer-literal polymorphism.
func TestScenarioLiteralPolymorphismInference(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "x"}, TypeAnnotation: ty("i32"), Initializer: intLit(5)},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "y"}, Initializer: &tree.BinaryExpression{
			Op: tree.OpAdd, Left: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "x"}}, Right: intLit(1),
		}},
	}}

	bound, diags := Bind(prog, config.DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %v", diags.Reports())
	}
	y := bound.Declarations[1].(*boundtree.VariableDeclaration)
	if !y.Resolved.Equals(typesystem.Primitive{Kind: typesystem.I32}) {
		t.Errorf("expected y inferred as i32, got %s", y.Resolved)
	}
}

// Scenario 2: `let x: u8 = 300;` is a TypeMismatch because the
// literal does not fit u8's range.
func TestScenarioLiteralOutOfRange(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "x"}, TypeAnnotation: ty("u8"), Initializer: intLit(300)},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeTypeMismatch) {
		t.Errorf("expected TypeMismatch, got %v", diags.Reports())
	}
}

// Scenario 3: `if true { 1 } else { "a" }` types void, with no
// diagnostic at the if-expression site itself.
func TestScenarioIfElseNoCommonType(t *testing.T) {
	ifExpr := &tree.IfElseExpression{
		Condition: boolLit(true),
		Then:      &tree.BlockExpression{Tail: intLit(1)},
		Else:      &tree.BlockExpression{Tail: stringLit("a")},
	}
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "_"}, Initializer: ifExpr},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics at the if-expression site, got %v", diags.Reports())
	}
}

// Scenario 4: `fn f(): i32 { if cond { return 1; } }` is a
// MissingReturn because the else path is absent.
func TestScenarioMissingReturn(t *testing.T) {
	body := &tree.BlockExpression{Statements: []tree.Statement{
		&tree.ExpressionStatement{Expr: &tree.IfElseExpression{
			Condition: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "cond"}},
			Then:      &tree.BlockExpression{Statements: []tree.Statement{&tree.ReturnStatement{Value: intLit(1)}}},
		}},
	}}
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.FunctionDeclaration{
			Name: &tree.Identifier{Name: "f"}, ReturnType: ty("i32"),
			Parameters: []tree.Parameter{{Name: &tree.Identifier{Name: "cond"}, Type: ty("bool")}},
			Body:       body,
		},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeMissingReturn) {
		t.Errorf("expected MissingReturn, got %v", diags.Reports())
	}
}

// `fn f(): i32 { true }` is a TypeMismatch: the block's tail is the
// function's de-facto return value and must be assignable to the
// declared return type, just like an explicit `return` statement.
func TestFunctionBodyTailTypeMismatch(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.FunctionDeclaration{
			Name: &tree.Identifier{Name: "f"}, ReturnType: ty("i32"),
			Body: &tree.BlockExpression{Tail: boolLit(true)},
		},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeTypeMismatch) {
		t.Errorf("expected TypeMismatch on a bool tail against an i32 return, got %v", diags.Reports())
	}
}

// Scenario 5: a non-default match on a 3-variant enumeration
// warns NonExhaustiveMatch.
func TestScenarioNonExhaustiveMatch(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.EnumerationDeclaration{Name: &tree.Identifier{Name: "Enum"}, Variants: []tree.VariantDeclaration{
			{Name: &tree.Identifier{Name: "a"}}, {Name: &tree.Identifier{Name: "b"}}, {Name: &tree.Identifier{Name: "c"}},
		}},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "e"}, TypeAnnotation: ty("Enum"), Initializer: &tree.AccessExpression{
			Base: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "Enum"}}, Field: &tree.Identifier{Name: "a"},
		}},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "_"}, Initializer: &tree.MatchExpression{
			Subject: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "e"}},
			Clauses: []*tree.MatchClause{
				{Patterns: []tree.Expression{&tree.AccessExpression{Base: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "Enum"}}, Field: &tree.Identifier{Name: "a"}}}, Body: intLit(1)},
				{Patterns: []tree.Expression{&tree.AccessExpression{Base: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "Enum"}}, Field: &tree.Identifier{Name: "b"}}}, Body: intLit(2)},
			},
		}},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasWarningCode(diags, diagnostics.CodeNonExhaustiveMatch) {
		t.Errorf("expected NonExhaustiveMatch warning, got %v", diags.Reports())
	}
	if diags.HasErrors() {
		t.Errorf("NonExhaustiveMatch is a warning, not an error: %v", diags.Reports())
	}
}

// Scenario 6: `break outer;` inside a nested while carries the
// outer loop's block-index with no diagnostic.
func TestScenarioLabeledBreak(t *testing.T) {
	inner := &tree.WhileExpression{
		Condition: boolLit(true),
		Body:      &tree.BlockExpression{Statements: []tree.Statement{&tree.BreakStatement{Label: &tree.Identifier{Name: "outer"}}}},
	}
	outer := &tree.WhileExpression{
		Label:     &tree.Identifier{Name: "outer"},
		Condition: boolLit(true),
		Body:      &tree.BlockExpression{Tail: inner},
	}
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "_"}, Initializer: outer},
	}}
	bound, diags := Bind(prog, config.DefaultOptions())
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %v", diags.Reports())
	}
	decl := bound.Declarations[0].(*boundtree.VariableDeclaration)
	boundOuter := decl.Initializer.(*boundtree.WhileExpression)
	boundInner := boundOuter.Body.(*boundtree.BlockExpression).Tail.(*boundtree.WhileExpression)
	brk := boundInner.Body.(*boundtree.BlockExpression).Statements[0].(*boundtree.BreakStatement)
	if !brk.Target.Valid || brk.Target.BlockIndex != boundOuter.BlockIndex {
		t.Errorf("expected break target to resolve to outer loop's block index %d, got %+v", boundOuter.BlockIndex, brk.Target)
	}
}

func TestRedeclarationInSameFrame(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.FunctionDeclaration{Name: &tree.Identifier{Name: "f"}, Body: &tree.BlockExpression{Statements: []tree.Statement{
			&tree.DeclarationStatement{Decl: &tree.VariableDeclaration{Name: &tree.Identifier{Name: "x"}, Initializer: intLit(1)}},
			&tree.DeclarationStatement{Decl: &tree.VariableDeclaration{Name: &tree.Identifier{Name: "x"}, Initializer: intLit(2)}},
		}}},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeRedeclaration) {
		t.Errorf("expected Redeclaration, got %v", diags.Reports())
	}
}

func TestImmutableAssignment(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "x"}, Mutable: false, Initializer: intLit(1)},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "_"}, Initializer: &tree.VariableAssignmentExpression{
			Target: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "x"}}, Value: intLit(2),
		}},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeImmutableAssignment) {
		t.Errorf("expected ImmutableAssignment, got %v", diags.Reports())
	}
}

func TestUninitializedStructBinding(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.StructureDeclaration{Name: &tree.Identifier{Name: "Point"}, Fields: []tree.FieldDeclaration{
			{Name: &tree.Identifier{Name: "x"}, Type: ty("i32")},
		}},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "p"}, TypeAnnotation: ty("Point")},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeUninitializedBinding) {
		t.Errorf("expected UninitializedBinding, got %v", diags.Reports())
	}
}

func TestUnresolvedName(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "_"}, Initializer: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "nope"}}},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeUnresolvedName) {
		t.Errorf("expected UnresolvedName, got %v", diags.Reports())
	}
}

func TestArityMismatch(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.FunctionDeclaration{Name: &tree.Identifier{Name: "f"}, ReturnType: ty("i32"),
			Parameters: []tree.Parameter{{Name: &tree.Identifier{Name: "a"}, Type: ty("i32")}},
			Body:       &tree.BlockExpression{Tail: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "a"}}},
		},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "_"}, Initializer: &tree.FunctionCallExpression{
			Callee: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "f"}},
		}},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeArityMismatch) {
		t.Errorf("expected ArityMismatch, got %v", diags.Reports())
	}
}

// Narrowing a non-literal value into a smaller declared type requires
// an explicit conversion; only a literal narrows implicitly.
func TestNarrowingNonLiteralRequiresExplicitConversion(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "x"}, TypeAnnotation: ty("i32"), Initializer: intLit(5)},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "y"}, TypeAnnotation: ty("i16"), Initializer: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "x"}}},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if !hasErrorCode(diags, diagnostics.CodeTypeMismatch) {
		t.Errorf("expected narrowing without an explicit conversion to be a TypeMismatch, got %v", diags.Reports())
	}
}

// The same narrowing spelled with an explicit `as` conversion binds
// cleanly.
func TestNarrowingWithExplicitConversion(t *testing.T) {
	prog := &tree.Program{Declarations: []tree.Declaration{
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "x"}, TypeAnnotation: ty("i32"), Initializer: intLit(5)},
		&tree.VariableDeclaration{Name: &tree.Identifier{Name: "y"}, TypeAnnotation: ty("i16"), Initializer: &tree.ConversionExpression{
			Target: ty("i16"), Operand: &tree.IdentifierExpression{Ident: &tree.Identifier{Name: "x"}},
		}},
	}}
	_, diags := Bind(prog, config.DefaultOptions())
	if diags.HasErrors() {
		t.Errorf("expected an explicit conversion to bind cleanly, got %v", diags.Reports())
	}
}
