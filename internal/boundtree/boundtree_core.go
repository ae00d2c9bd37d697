// Package boundtree implements the typed, name-resolved counterpart of
// internal/tree (spec §3.4): the binder's output. Every expression
// carries a resolved typesystem.Type; identifier-shaped references
// carry a concrete referent instead of a bare name.
package boundtree

import (
	"github.com/lincfront/linc/internal/token"
	"github.com/lincfront/linc/internal/tree"
	"github.com/lincfront/linc/internal/typesystem"
)

// NodeInfo is reused as-is from the unbound tree: binding never
// changes a node's source span/tokens.
type NodeInfo = tree.NodeInfo

// Visitor mirrors tree.Visitor: one method per node category (spec
// §9).
type Visitor interface {
	VisitExpression(Expression)
	VisitStatement(Statement)
	VisitDeclaration(Declaration)
}

type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	NodeInfo() NodeInfo
}

// Expression is a Node whose resolved Type is never nil (spec §8:
// "every expression in every bound program has a non-null resolved
// type").
type Expression interface {
	Node
	expressionNode()
	Type() typesystem.Type
	CloneExpression() Expression
}

type Statement interface {
	Node
	statementNode()
	CloneStatement() Statement
}

type Declaration interface {
	Node
	declarationNode()
	CloneDeclaration() Declaration
}

// Program is the bound tree's root (spec §6): an ordered sequence of
// bound declarations, produced alongside a diagnostics.Collector.
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

func (p *Program) Clone() *Program {
	decls := make([]Declaration, len(p.Declarations))
	for i, d := range p.Declarations {
		decls[i] = d.CloneDeclaration()
	}
	return &Program{Info: p.Info, Declarations: decls}
}

// LabelTarget is the normalized form every break/continue/jump carries
// once bound: an integer block-index paired with the scope depth at
// the point of transfer (spec §4.6, §9). A Valid flag of false marks
// an unresolved label (the binder still emits a poisoned statement,
// never a node with a half-filled target).
type LabelTarget struct {
	BlockIndex int
	ScopeDepth int
	Valid      bool
}

func tok(t token.Token) string { return t.Lexeme }
