package binder

import (
	"github.com/lincfront/linc/internal/diagnostics"
	"github.com/lincfront/linc/internal/tree"
	"github.com/lincfront/linc/internal/typesystem"
)

// resolveType resolves a syntactic type expression against the type
// namespace. A nil TypeExpression means "no annotation" and resolves
// to nil, not void — callers decide what an absent annotation means in
// context (inferred-from-initializer for variables, void for return
// types).
func (b *Binder) resolveType(te *tree.TypeExpression) typesystem.Type {
	if te == nil {
		return nil
	}
	if te.ArrayOf != nil {
		elem := b.resolveType(te.ArrayOf)
		if elem == nil {
			elem = typesystem.Invalid{}
		}
		return typesystem.Array{Element: elem, Length: te.ArrayLength}
	}
	t, ok := b.types[te.Name]
	if !ok {
		err := typesystem.NewUnknownTypeError(te.Name)
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, te.NodeInfo().Span, "%s", err)
		return typesystem.Invalid{}
	}
	return t
}

// resolveReturnType treats a nil annotation as void.
func (b *Binder) resolveReturnType(te *tree.TypeExpression) typesystem.Type {
	if te == nil {
		return voidType()
	}
	return b.resolveType(te)
}

func convertUnaryOp(op tree.UnaryOpKind) typesystem.UnaryOp {
	switch op {
	case tree.OpNot:
		return typesystem.UnaryNot
	case tree.OpNeg:
		return typesystem.UnaryNeg
	case tree.OpBitNot:
		return typesystem.UnaryBitNot
	default:
		return typesystem.UnaryNot
	}
}

func convertBinaryOp(op tree.BinaryOpKind) typesystem.BinaryOp {
	switch op {
	case tree.OpAdd:
		return typesystem.BinaryAdd
	case tree.OpSub:
		return typesystem.BinarySub
	case tree.OpMul:
		return typesystem.BinaryMul
	case tree.OpDiv:
		return typesystem.BinaryDiv
	case tree.OpMod:
		return typesystem.BinaryMod
	case tree.OpEq:
		return typesystem.BinaryEq
	case tree.OpNeq:
		return typesystem.BinaryNeq
	case tree.OpLt:
		return typesystem.BinaryLt
	case tree.OpLte:
		return typesystem.BinaryLte
	case tree.OpGt:
		return typesystem.BinaryGt
	case tree.OpGte:
		return typesystem.BinaryGte
	case tree.OpAnd:
		return typesystem.BinaryAnd
	case tree.OpOr:
		return typesystem.BinaryOr
	case tree.OpBitAnd:
		return typesystem.BinaryBitAnd
	case tree.OpBitOr:
		return typesystem.BinaryBitOr
	case tree.OpBitXor:
		return typesystem.BinaryBitXor
	case tree.OpShl:
		return typesystem.BinaryShl
	case tree.OpShr:
		return typesystem.BinaryShr
	default:
		return typesystem.BinaryAdd
	}
}
