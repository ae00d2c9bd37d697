package binder

import (
	"github.com/lincfront/linc/internal/boundtree"
	"github.com/lincfront/linc/internal/typesystem"
)

// convertIfNeeded wraps expr in a ConversionExpression when its type
// differs from target, recording initial_type -> target_type for every
// implicit widening insertion. A no-op when the types already match
// structurally.
func (b *Binder) convertIfNeeded(expr boundtree.Expression, target typesystem.Type) boundtree.Expression {
	if target == nil || typesystem.IsInvalid(target) {
		return expr
	}
	if expr.Type().Equals(target) {
		return expr
	}
	return &boundtree.ConversionExpression{
		Info:        expr.NodeInfo(),
		InitialType: expr.Type(),
		TargetType:  target,
		Operand:     expr,
	}
}
