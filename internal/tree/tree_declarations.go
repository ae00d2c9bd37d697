package tree

func (*VariableDeclaration) declarationNode()    {}
func (*FunctionDeclaration) declarationNode()    {}
func (*ExternalDeclaration) declarationNode()    {}
func (*StructureDeclaration) declarationNode()   {}
func (*EnumerationDeclaration) declarationNode() {}
func (*AliasDeclaration) declarationNode()       {}

// VariableDeclaration introduces a binding, mutable (`var`) or
// constant; TypeAnnotation may be nil when the declared type is
// inferred from Initializer.
type VariableDeclaration struct {
	Info           NodeInfo
	Name           *Identifier
	Mutable        bool
	TypeAnnotation *TypeExpression
	Initializer    Expression // nil when absent.
}

func (d *VariableDeclaration) TokenLiteral() string { return d.Name.Name }
func (d *VariableDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *VariableDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *VariableDeclaration) CloneDeclaration() Declaration {
	out := &VariableDeclaration{Info: d.Info, Name: d.Name.Clone(), Mutable: d.Mutable, TypeAnnotation: d.TypeAnnotation.Clone()}
	if d.Initializer != nil {
		out.Initializer = d.Initializer.CloneExpression()
	}
	return out
}

// Parameter is one function parameter: a name and a declared type.
type Parameter struct {
	Name *Identifier
	Type *TypeExpression
}

func (p Parameter) Clone() Parameter {
	return Parameter{Name: p.Name.Clone(), Type: p.Type.Clone()}
}

// FunctionDeclaration declares a named function with an owned body:
// the binder pushes a frame, declares each parameter, binds
// Body, and verifies all paths return when ReturnType != void.
type FunctionDeclaration struct {
	Info       NodeInfo
	Name       *Identifier
	Parameters []Parameter
	ReturnType *TypeExpression // nil means void.
	Body       Expression
}

func (d *FunctionDeclaration) TokenLiteral() string { return d.Name.Name }
func (d *FunctionDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *FunctionDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *FunctionDeclaration) CloneDeclaration() Declaration {
	params := make([]Parameter, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = p.Clone()
	}
	out := &FunctionDeclaration{Info: d.Info, Name: d.Name.Clone(), Parameters: params, ReturnType: d.ReturnType.Clone()}
	if d.Body != nil {
		out.Body = d.Body.CloneExpression()
	}
	return out
}

// ExternalDeclaration declares a foreign function signature with no
// body; the binder only type-checks calls against it.
type ExternalDeclaration struct {
	Info       NodeInfo
	Name       *Identifier
	Parameters []Parameter
	ReturnType *TypeExpression // nil means void.
}

func (d *ExternalDeclaration) TokenLiteral() string { return d.Name.Name }
func (d *ExternalDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *ExternalDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *ExternalDeclaration) CloneDeclaration() Declaration {
	params := make([]Parameter, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = p.Clone()
	}
	return &ExternalDeclaration{Info: d.Info, Name: d.Name.Clone(), Parameters: params, ReturnType: d.ReturnType.Clone()}
}

// FieldDeclaration is one member of a StructureDeclaration.
type FieldDeclaration struct {
	Name *Identifier
	Type *TypeExpression
}

func (f FieldDeclaration) Clone() FieldDeclaration {
	return FieldDeclaration{Name: f.Name.Clone(), Type: f.Type.Clone()}
}

type StructureDeclaration struct {
	Info   NodeInfo
	Name   *Identifier
	Fields []FieldDeclaration
}

func (d *StructureDeclaration) TokenLiteral() string { return d.Name.Name }
func (d *StructureDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *StructureDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *StructureDeclaration) CloneDeclaration() Declaration {
	fields := make([]FieldDeclaration, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = f.Clone()
	}
	return &StructureDeclaration{Info: d.Info, Name: d.Name.Clone(), Fields: fields}
}

// VariantDeclaration is one case of an EnumerationDeclaration; Payload
// is nil when the variant carries no value.
type VariantDeclaration struct {
	Name    *Identifier
	Payload *TypeExpression
}

func (v VariantDeclaration) Clone() VariantDeclaration {
	return VariantDeclaration{Name: v.Name.Clone(), Payload: v.Payload.Clone()}
}

type EnumerationDeclaration struct {
	Info     NodeInfo
	Name     *Identifier
	Variants []VariantDeclaration
}

func (d *EnumerationDeclaration) TokenLiteral() string { return d.Name.Name }
func (d *EnumerationDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *EnumerationDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *EnumerationDeclaration) CloneDeclaration() Declaration {
	variants := make([]VariantDeclaration, len(d.Variants))
	for i, vr := range d.Variants {
		variants[i] = vr.Clone()
	}
	return &EnumerationDeclaration{Info: d.Info, Name: d.Name.Clone(), Variants: variants}
}

// AliasDeclaration names an existing type under a new name.
type AliasDeclaration struct {
	Info NodeInfo
	Name *Identifier
	Type *TypeExpression
}

func (d *AliasDeclaration) TokenLiteral() string { return d.Name.Name }
func (d *AliasDeclaration) NodeInfo() NodeInfo   { return d.Info }
func (d *AliasDeclaration) Accept(v Visitor)     { v.VisitDeclaration(d) }
func (d *AliasDeclaration) CloneDeclaration() Declaration {
	return &AliasDeclaration{Info: d.Info, Name: d.Name.Clone(), Type: d.Type.Clone()}
}
