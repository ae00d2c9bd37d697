package binder

import (
	"github.com/lincfront/linc/internal/boundtree"
	"github.com/lincfront/linc/internal/diagnostics"
	"github.com/lincfront/linc/internal/tree"
	"github.com/lincfront/linc/internal/typesystem"
)

func (b *Binder) bindStatement(s tree.Statement) boundtree.Statement {
	switch st := s.(type) {
	case *tree.ExpressionStatement:
		return &boundtree.ExpressionStatement{Info: st.Info, Expr: b.bindExpression(st.Expr, nil)}

	case *tree.DeclarationStatement:
		return &boundtree.DeclarationStatement{Info: st.Info, Decl: b.bindDeclaration(st.Decl)}

	case *tree.ScopeStatement:
		b.scope.PushFrame()
		stmts := make([]boundtree.Statement, len(st.Statements))
		for i, inner := range st.Statements {
			stmts[i] = b.bindStatement(inner)
		}
		b.scope.PopFrame()
		return &boundtree.ScopeStatement{Info: st.Info, Statements: stmts}

	case *tree.ReturnStatement:
		return b.bindReturnStatement(st)

	case *tree.BreakStatement:
		return &boundtree.BreakStatement{Info: st.Info, Target: b.resolveLoopTarget(st.Label, st.Info)}

	case *tree.ContinueStatement:
		return &boundtree.ContinueStatement{Info: st.Info, Target: b.resolveLoopTarget(st.Label, st.Info)}

	case *tree.LabelStatement:
		blockIndex := b.scope.NextBlockIndex()
		b.scope.DeclareLabel(st.Name.Name, blockIndex)
		next := b.bindStatement(st.Next)
		return &boundtree.LabelStatement{Info: st.Info, Name: st.Name.Name, BlockIndex: blockIndex, Next: next}

	case *tree.JumpStatement:
		blockIndex, scopeDepth, ok := b.scope.LookupLabel(st.Name.Name)
		if !ok {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, st.Info.Span,
				"unresolved label %q", st.Name.Name)
			return &boundtree.JumpStatement{Info: st.Info, Target: boundtree.LabelTarget{Valid: false}}
		}
		return &boundtree.JumpStatement{Info: st.Info, Target: boundtree.LabelTarget{BlockIndex: blockIndex, ScopeDepth: scopeDepth, Valid: true}}

	case *tree.PutCharacterStatement:
		return &boundtree.PutCharacterStatement{Info: st.Info, Value: b.bindExpression(st.Value, typesystem.Primitive{Kind: typesystem.Char})}

	case *tree.PutStringStatement:
		return &boundtree.PutStringStatement{Info: st.Info, Value: b.bindExpression(st.Value, typesystem.Primitive{Kind: typesystem.String})}

	default:
		return &boundtree.ExpressionStatement{Info: s.NodeInfo(), Expr: b.invalidExpression(s.NodeInfo(), "unrecognized statement node")}
	}
}

func (b *Binder) bindReturnStatement(st *tree.ReturnStatement) boundtree.Statement {
	if st.Value == nil {
		if b.currentReturn != nil && !typesystem.IsInvalid(b.currentReturn) && !typesystem.Underlying(b.currentReturn).Equals(voidType()) {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, st.Info.Span,
				"bare return in a function that returns %s", b.currentReturn)
		}
		return &boundtree.ReturnStatement{Info: st.Info}
	}

	value := b.bindExpression(st.Value, b.currentReturn)
	if b.currentReturn != nil && !typesystem.IsInvalid(value.Type()) && !typesystem.IsInvalid(b.currentReturn) {
		switch typesystem.Assignable(value.Type(), b.currentReturn) {
		case typesystem.Identity, typesystem.ImplicitWiden:
			value = b.convertIfNeeded(value, b.currentReturn)
		case typesystem.ImplicitNarrowWarn:
			b.diags.Warnf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, st.Info.Span,
				"return value narrows from %s to %s", value.Type(), b.currentReturn)
			value = b.convertIfNeeded(value, b.currentReturn)
		default:
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, st.Info.Span,
				"return value has type %s, expected %s", value.Type(), b.currentReturn)
		}
	}
	return &boundtree.ReturnStatement{Info: st.Info, Value: value}
}

// resolveLoopTarget resolves break/continue to the innermost loop when
// no label is given, and otherwise resolves a named label through the
// scope stack's label namespace.
func (b *Binder) resolveLoopTarget(label *tree.Identifier, info tree.NodeInfo) boundtree.LabelTarget {
	if label == nil {
		if len(b.loops) == 0 {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, info.Span, "break/continue outside of a loop")
			return boundtree.LabelTarget{Valid: false}
		}
		top := b.loops[len(b.loops)-1]
		return boundtree.LabelTarget{BlockIndex: top.blockIndex, ScopeDepth: top.scopeDepth, Valid: true}
	}
	blockIndex, scopeDepth, ok := b.scope.LookupLabel(label.Name)
	if !ok {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, info.Span, "unresolved label %q", label.Name)
		return boundtree.LabelTarget{Valid: false}
	}
	return boundtree.LabelTarget{BlockIndex: blockIndex, ScopeDepth: scopeDepth, Valid: true}
}
