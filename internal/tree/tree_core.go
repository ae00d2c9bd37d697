// Package tree implements the unbound syntax tree: the purely
// syntactic sum of expression/statement/declaration variants the
// parser collaborator produces and the binder consumes.
package tree

import "github.com/lincfront/linc/internal/token"

// NodeInfo is the span/token bookkeeping every node carries.
type NodeInfo struct {
	Tokens []token.Token
	Span   token.Span
	Line   int
}

// Visitor is the traversal protocol: one method per node category, not
// one per variant, since each visit method is expected to type-switch
// on the concrete node itself.
type Visitor interface {
	VisitExpression(Expression)
	VisitStatement(Statement)
	VisitDeclaration(Declaration)
}

// Node is the base interface every tree node implements.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	NodeInfo() NodeInfo
}

// Expression is a Node that yields a value.
type Expression interface {
	Node
	expressionNode()
	CloneExpression() Expression
}

// Statement is a Node that does not itself yield a value.
type Statement interface {
	Node
	statementNode()
	CloneStatement() Statement
}

// Declaration introduces a name into scope.
type Declaration interface {
	Node
	declarationNode()
	CloneDeclaration() Declaration
}

// Program is the unbound tree's root: an ordered sequence of
// declarations.
type Program struct {
	Info         NodeInfo
	Declarations []Declaration
}

func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}
func (p *Program) NodeInfo() NodeInfo { return p.Info }
func (p *Program) Accept(v Visitor) {
	for _, d := range p.Declarations {
		d.Accept(v)
	}
}

// Clone deep-copies the program and every declaration it owns.
func (p *Program) Clone() *Program {
	decls := make([]Declaration, len(p.Declarations))
	for i, d := range p.Declarations {
		decls[i] = d.CloneDeclaration()
	}
	return &Program{Info: p.Info, Declarations: decls}
}

// TypeExpression is the syntactic spelling of a type: a bare name
// (`i32`, `MyStruct`), possibly with array brackets or a generic
// argument clause. The binder resolves it by name against the primitive
// names and its table of declared types (not the scope stack's value
// frames) into a typesystem.Type; generic arguments are recorded as inert metadata,
// never instantiated.
type TypeExpression struct {
	Info NodeInfo
	// Name is the bare type name, e.g. "i32", "MyStruct".
	Name string
	// ArrayOf, when non-nil, makes this an array-of-Name-or-ArrayOf type.
	ArrayOf *TypeExpression
	// ArrayLength is nil for a dynamic array.
	ArrayLength *uint64
	// GenericArguments are parametric identifier arguments the binder
	// records but never instantiates.
	GenericArguments []*TypeExpression
}

func (t *TypeExpression) TokenLiteral() string { return t.Name }
func (t *TypeExpression) NodeInfo() NodeInfo   { return t.Info }
func (t *TypeExpression) Accept(v Visitor)     {}

func (t *TypeExpression) Clone() *TypeExpression {
	if t == nil {
		return nil
	}
	out := &TypeExpression{Info: t.Info, Name: t.Name, ArrayLength: t.ArrayLength}
	out.ArrayOf = t.ArrayOf.Clone()
	if t.GenericArguments != nil {
		out.GenericArguments = make([]*TypeExpression, len(t.GenericArguments))
		for i, g := range t.GenericArguments {
			out.GenericArguments[i] = g.Clone()
		}
	}
	return out
}

// Identifier names a binding or label reference, optionally with a
// generic type-arguments clause.
type Identifier struct {
	Info             NodeInfo
	Name             string
	GenericArguments []*TypeExpression
}

func (i *Identifier) Clone() *Identifier {
	if i == nil {
		return nil
	}
	out := &Identifier{Info: i.Info, Name: i.Name}
	if i.GenericArguments != nil {
		out.GenericArguments = make([]*TypeExpression, len(i.GenericArguments))
		for j, g := range i.GenericArguments {
			out.GenericArguments[j] = g.Clone()
		}
	}
	return out
}
