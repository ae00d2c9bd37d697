package binder

import (
	"github.com/lincfront/linc/internal/boundtree"
	"github.com/lincfront/linc/internal/diagnostics"
	"github.com/lincfront/linc/internal/scope"
	"github.com/lincfront/linc/internal/tree"
	"github.com/lincfront/linc/internal/typesystem"
)

// bindProgram takes an unbound Program and returns the bound Program
// plus the diagnostics accumulated while binding it. It declares every
// top-level name before binding any body, so mutually recursive
// functions resolve regardless of declaration order and any signature
// or body can name any declared type. Type declarations among
// themselves resolve in order (see declareSignatures).
func (b *Binder) bindProgram(prog *tree.Program) *boundtree.Program {
	b.scope.PushFrame()
	b.declareSignatures(prog.Declarations)

	out := &boundtree.Program{Info: prog.Info}
	for _, d := range prog.Declarations {
		out.Declarations = append(out.Declarations, b.bindDeclaration(d))
	}
	return out
}

// declareSignatures is the forward-declaration pre-pass: structures
// and enumerations first, in declaration order, then aliases, then
// function and external signatures. A field or variant payload type
// resolves only against structures and enumerations declared before
// it, never against an alias; an alias target resolves against every
// structure and enumeration but only against aliases declared before it.
func (b *Binder) declareSignatures(decls []tree.Declaration) {
	for _, d := range decls {
		switch dd := d.(type) {
		case *tree.StructureDeclaration:
			b.declareStructureSignature(dd)
		case *tree.EnumerationDeclaration:
			b.declareEnumerationSignature(dd)
		}
	}
	for _, d := range decls {
		if dd, ok := d.(*tree.AliasDeclaration); ok {
			b.declareAliasSignature(dd)
		}
	}
	for _, d := range decls {
		switch dd := d.(type) {
		case *tree.FunctionDeclaration:
			b.declareFunctionSignature(dd)
		case *tree.ExternalDeclaration:
			b.declareExternalSignature(dd)
		}
	}
}

func (b *Binder) declareStructureSignature(d *tree.StructureDeclaration) {
	fields := make([]typesystem.Field, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = typesystem.Field{Name: f.Name.Name, Type: b.resolveType(f.Type)}
	}
	st := typesystem.Structure{Name: d.Name.Name, Fields: fields}
	b.types[d.Name.Name] = st
	if err := b.scope.Declare(d.Name.Name, scope.Symbol{Name: d.Name.Name, Kind: scope.SymbolStruct, Type: st}); err != nil {
		b.reportRedeclaration(d.Name.Name, d.NodeInfo())
	}
}

func (b *Binder) declareEnumerationSignature(d *tree.EnumerationDeclaration) {
	variants := make([]typesystem.Variant, len(d.Variants))
	for i, v := range d.Variants {
		var payload typesystem.Type
		if v.Payload != nil {
			payload = b.resolveType(v.Payload)
		}
		variants[i] = typesystem.Variant{Name: v.Name.Name, Payload: payload}
	}
	en := typesystem.Enumeration{Name: d.Name.Name, Variants: variants}
	b.types[d.Name.Name] = en
	if err := b.scope.Declare(d.Name.Name, scope.Symbol{Name: d.Name.Name, Kind: scope.SymbolEnum, Type: en}); err != nil {
		b.reportRedeclaration(d.Name.Name, d.NodeInfo())
	}
}

func (b *Binder) declareAliasSignature(d *tree.AliasDeclaration) {
	al := typesystem.Alias{Name: d.Name.Name, Underlying: b.resolveType(d.Type)}
	b.types[d.Name.Name] = al
	if err := b.scope.Declare(d.Name.Name, scope.Symbol{Name: d.Name.Name, Kind: scope.SymbolAlias, Type: al}); err != nil {
		b.reportRedeclaration(d.Name.Name, d.NodeInfo())
	}
}

func (b *Binder) declareFunctionSignature(d *tree.FunctionDeclaration) {
	params := make([]typesystem.Type, len(d.Parameters))
	names := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = b.resolveType(p.Type)
		names[i] = p.Name.Name
	}
	fn := typesystem.Function{Return: b.resolveReturnType(d.ReturnType), Parameters: params}
	b.functionParams[d.Name.Name] = names
	if err := b.scope.Declare(d.Name.Name, scope.Symbol{Name: d.Name.Name, Kind: scope.SymbolFunction, Type: fn}); err != nil {
		b.reportRedeclaration(d.Name.Name, d.NodeInfo())
	}
}

func (b *Binder) declareExternalSignature(d *tree.ExternalDeclaration) {
	params := make([]typesystem.Type, len(d.Parameters))
	names := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = b.resolveType(p.Type)
		names[i] = p.Name.Name
	}
	fn := typesystem.Function{Return: b.resolveReturnType(d.ReturnType), Parameters: params}
	b.functionParams[d.Name.Name] = names
	if err := b.scope.Declare(d.Name.Name, scope.Symbol{Name: d.Name.Name, Kind: scope.SymbolFunction, Type: fn}); err != nil {
		b.reportRedeclaration(d.Name.Name, d.NodeInfo())
	}
}

func (b *Binder) reportRedeclaration(name string, info tree.NodeInfo) {
	b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeRedeclaration, info.Span, "redeclaration of %q", name)
}

func (b *Binder) bindDeclaration(d tree.Declaration) boundtree.Declaration {
	switch dd := d.(type) {
	case *tree.VariableDeclaration:
		return b.bindVariableDeclaration(dd)
	case *tree.FunctionDeclaration:
		return b.bindFunctionDeclaration(dd)
	case *tree.ExternalDeclaration:
		return b.bindExternalDeclaration(dd)
	case *tree.StructureDeclaration:
		st, _ := b.types[dd.Name.Name].(typesystem.Structure)
		return &boundtree.StructureDeclaration{Info: dd.Info, Resolved: st}
	case *tree.EnumerationDeclaration:
		en, _ := b.types[dd.Name.Name].(typesystem.Enumeration)
		return &boundtree.EnumerationDeclaration{Info: dd.Info, Resolved: en}
	case *tree.AliasDeclaration:
		al, _ := b.types[dd.Name.Name].(typesystem.Alias)
		return &boundtree.AliasDeclaration{Info: dd.Info, Resolved: al}
	default:
		return &boundtree.VariableDeclaration{Info: d.NodeInfo(), Resolved: typesystem.Invalid{}}
	}
}

// bindVariableDeclaration declares the name in the current frame; the
// initializer (if any) is bound with the annotated type as a hint and
// then converted to it; a missing initializer for a type with no
// default value is an error.
func (b *Binder) bindVariableDeclaration(d *tree.VariableDeclaration) boundtree.Declaration {
	declared := b.resolveType(d.TypeAnnotation)

	var init boundtree.Expression
	if d.Initializer != nil {
		init = b.bindExpression(d.Initializer, declared)
		if declared == nil {
			declared = init.Type()
		} else if !typesystem.IsInvalid(init.Type()) {
			switch typesystem.Assignable(init.Type(), declared) {
			case typesystem.Identity, typesystem.ImplicitWiden:
				init = b.convertIfNeeded(init, declared)
			case typesystem.ImplicitNarrowWarn:
				if b.options.StrictNarrowing {
					b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, d.Info.Span,
						"narrowing initializer of %q from %s to %s requires an explicit conversion", d.Name.Name, init.Type(), declared)
					declared = typesystem.Invalid{}
				} else {
					b.diags.Warnf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, d.Info.Span,
						"initializer of %q narrows from %s to %s", d.Name.Name, init.Type(), declared)
					init = b.convertIfNeeded(init, declared)
				}
			default:
				b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, d.Info.Span,
					"initializer of %q has type %s, not assignable to declared type %s", d.Name.Name, init.Type(), declared)
				declared = typesystem.Invalid{}
			}
		}
	} else {
		if declared == nil {
			declared = typesystem.Invalid{}
		}
		if !hasDefaultValue(declared) {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUninitializedBinding, d.Info.Span,
				"%q of type %s must be initialized", d.Name.Name, declared)
			declared = typesystem.Invalid{}
		}
	}

	if err := b.scope.Declare(d.Name.Name, scope.Symbol{
		Name: d.Name.Name, Kind: scope.SymbolVariable, Type: declared, Mutable: d.Mutable,
	}); err != nil {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeRedeclaration, d.Info.Span, "redeclaration of %q", d.Name.Name)
	}

	return &boundtree.VariableDeclaration{Info: d.Info, Symbol: d.Name.Name, Mutable: d.Mutable, Resolved: declared, Initializer: init}
}

// hasDefaultValue reports whether a type has an implicit zero value a
// variable may start from without an initializer. Structures and
// enumerations are not default-constructible in this language (spec
// §4.5 UninitializedBinding).
func hasDefaultValue(t typesystem.Type) bool {
	switch typesystem.Underlying(t).(type) {
	case typesystem.Primitive, typesystem.Array:
		return true
	default:
		return false
	}
}

func (b *Binder) bindFunctionDeclaration(d *tree.FunctionDeclaration) boundtree.Declaration {
	sym, _ := b.scope.Lookup(d.Name.Name)
	fn, _ := sym.Type.(typesystem.Function)

	names := make([]string, len(d.Parameters))
	b.scope.PushFrame()
	for i, p := range d.Parameters {
		names[i] = p.Name.Name
		pt := fn.Parameters[i]
		if err := b.scope.Declare(p.Name.Name, scope.Symbol{Name: p.Name.Name, Kind: scope.SymbolVariable, Type: pt, Mutable: false}); err != nil {
			b.reportRedeclaration(p.Name.Name, d.Info)
		}
	}

	savedReturn := b.currentReturn
	b.currentReturn = fn.Return
	var body boundtree.Expression
	if d.Body != nil {
		body = b.bindExpression(d.Body, fn.Return)
	}
	b.currentReturn = savedReturn
	b.scope.PopFrame()

	if !typesystem.IsInvalid(fn.Return) && !typesystem.Underlying(fn.Return).Equals(voidType()) {
		if body == nil || !reachableAlwaysReturns(body) {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeMissingReturn, d.Info.Span,
				"function %q does not return on every path", d.Name.Name)
		}
		b.checkBodyTailReturn(d, body, fn.Return)
	}

	return &boundtree.FunctionDeclaration{Info: d.Info, Symbol: d.Name.Name, ParameterNames: names, Resolved: fn, Body: body}
}

// checkBodyTailReturn enforces spec §4.5's return rule on the implicit
// return value of a non-void function body's trailing block
// expression: the tail is the de-facto return, so it must be
// assignable to the declared return type the same way an explicit
// `return` statement's value must be (see bindReturnStatement).
func (b *Binder) checkBodyTailReturn(d *tree.FunctionDeclaration, body boundtree.Expression, ret typesystem.Type) {
	blk, ok := body.(*boundtree.BlockExpression)
	if !ok || blk.Tail == nil || typesystem.IsInvalid(blk.Tail.Type()) {
		return
	}
	switch typesystem.Assignable(blk.Tail.Type(), ret) {
	case typesystem.Identity, typesystem.ImplicitWiden:
		// already converted by bindBlockExpression's hint handling.
	case typesystem.ImplicitNarrowWarn:
		b.diags.Warnf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, d.Info.Span,
			"function %q body narrows from %s to %s", d.Name.Name, blk.Tail.Type(), ret)
	default:
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, d.Info.Span,
			"function %q body has type %s, expected %s", d.Name.Name, blk.Tail.Type(), ret)
	}
}

func (b *Binder) bindExternalDeclaration(d *tree.ExternalDeclaration) boundtree.Declaration {
	sym, _ := b.scope.Lookup(d.Name.Name)
	fn, _ := sym.Type.(typesystem.Function)
	return &boundtree.ExternalDeclaration{Info: d.Info, Symbol: d.Name.Name, Resolved: fn}
}
