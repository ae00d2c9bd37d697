package boundtree

import "github.com/lincfront/linc/internal/typesystem"

func (*VariableDeclaration) declarationNode()    {}
func (*FunctionDeclaration) declarationNode()    {}
func (*ExternalDeclaration) declarationNode()    {}
func (*StructureDeclaration) declarationNode()   {}
func (*EnumerationDeclaration) declarationNode() {}
func (*AliasDeclaration) declarationNode()       {}

// VariableDeclaration carries the declared type (explicit or inferred
// from Initializer) so no later pass needs to re-derive it (spec
// §4.5).
type VariableDeclaration struct {
	Info        NodeInfo
	Symbol      string
	Mutable     bool
	Resolved    typesystem.Type
	Initializer Expression // nil when absent.
}

func (d *VariableDeclaration) TokenLiteral() string { return d.Symbol }
func (d *VariableDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *VariableDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *VariableDeclaration) CloneDeclaration() Declaration {
	out := &VariableDeclaration{Info: d.Info, Symbol: d.Symbol, Mutable: d.Mutable, Resolved: d.Resolved}
	if d.Initializer != nil {
		out.Initializer = d.Initializer.CloneExpression()
	}
	return out
}

type FunctionDeclaration struct {
	Info           NodeInfo
	Symbol         string
	ParameterNames []string
	Resolved       typesystem.Function
	Body           Expression
}

func (d *FunctionDeclaration) TokenLiteral() string { return d.Symbol }
func (d *FunctionDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *FunctionDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *FunctionDeclaration) CloneDeclaration() Declaration {
	names := make([]string, len(d.ParameterNames))
	copy(names, d.ParameterNames)
	out := &FunctionDeclaration{Info: d.Info, Symbol: d.Symbol, ParameterNames: names, Resolved: d.Resolved}
	if d.Body != nil {
		out.Body = d.Body.CloneExpression()
	}
	return out
}

// ExternalDeclaration has no body; the binder only checks call sites
// against Resolved (spec §6).
type ExternalDeclaration struct {
	Info     NodeInfo
	Symbol   string
	Resolved typesystem.Function
}

func (d *ExternalDeclaration) TokenLiteral() string { return d.Symbol }
func (d *ExternalDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *ExternalDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *ExternalDeclaration) CloneDeclaration() Declaration {
	return &ExternalDeclaration{Info: d.Info, Symbol: d.Symbol, Resolved: d.Resolved}
}

type StructureDeclaration struct {
	Info     NodeInfo
	Resolved typesystem.Structure
}

func (d *StructureDeclaration) TokenLiteral() string { return d.Resolved.Name }
func (d *StructureDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *StructureDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *StructureDeclaration) CloneDeclaration() Declaration {
	return &StructureDeclaration{Info: d.Info, Resolved: d.Resolved}
}

type EnumerationDeclaration struct {
	Info     NodeInfo
	Resolved typesystem.Enumeration
}

func (d *EnumerationDeclaration) TokenLiteral() string { return d.Resolved.Name }
func (d *EnumerationDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *EnumerationDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *EnumerationDeclaration) CloneDeclaration() Declaration {
	return &EnumerationDeclaration{Info: d.Info, Resolved: d.Resolved}
}

// AliasDeclaration's Resolved.Underlying is already bound; aliases are
// non-nominal (spec §3.1, typesystem.Alias.Equals delegates).
type AliasDeclaration struct {
	Info     NodeInfo
	Resolved typesystem.Alias
}

func (d *AliasDeclaration) TokenLiteral() string { return d.Resolved.Name }
func (d *AliasDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *AliasDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *AliasDeclaration) CloneDeclaration() Declaration {
	return &AliasDeclaration{Info: d.Info, Resolved: d.Resolved}
}
