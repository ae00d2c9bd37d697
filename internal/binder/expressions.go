package binder

import (
	"github.com/lincfront/linc/internal/boundtree"
	"github.com/lincfront/linc/internal/diagnostics"
	"github.com/lincfront/linc/internal/scope"
	"github.com/lincfront/linc/internal/token"
	"github.com/lincfront/linc/internal/tree"
	"github.com/lincfront/linc/internal/typesystem"
)

// bindExpression binds e, using hint as the context type the result is
// expected to flow into (a declared variable's type, a parameter's
// type, a function's return type, and so on). hint may be nil when no
// such context exists; it only ever narrows literal polymorphism and
// drives conversion insertion, never rejects an otherwise-valid
// expression on its own.
func (b *Binder) bindExpression(e tree.Expression, hint typesystem.Type) boundtree.Expression {
	switch ex := e.(type) {
	case *tree.LiteralExpression:
		out := &boundtree.LiteralExpression{Info: ex.Info, Token: ex.Token}
		b.bindLiteral(out, ex.Token, hint)
		return out

	case *tree.IdentifierExpression:
		return b.bindIdentifierExpression(ex)

	case *tree.ParenthesisExpression:
		return b.bindExpression(ex.Inner, hint)

	case *tree.UnaryExpression:
		return b.bindUnaryExpression(ex)

	case *tree.BinaryExpression:
		return b.bindBinaryExpression(ex)

	case *tree.IndexExpression:
		return b.bindIndexExpression(ex)

	case *tree.AccessExpression:
		return b.bindAccessExpression(ex)

	case *tree.RangeExpression:
		return b.bindRangeExpression(ex)

	case *tree.ArrayInitializerExpression:
		return b.bindArrayInitializerExpression(ex, hint)

	case *tree.StructureInitializerExpression:
		return b.bindStructureInitializerExpression(ex)

	case *tree.IfElseExpression:
		return b.bindIfElseExpression(ex, hint)

	case *tree.WhileExpression:
		return b.bindWhileExpression(ex)

	case *tree.ForExpression:
		return b.bindForExpression(ex)

	case *tree.MatchExpression:
		return b.bindMatchExpression(ex, hint)

	case *tree.BlockExpression:
		return b.bindBlockExpression(ex, hint)

	case *tree.FunctionCallExpression:
		return b.bindFunctionCallExpression(ex)

	case *tree.ExternalCallExpression:
		return b.bindExternalCallExpression(ex)

	case *tree.ConversionExpression:
		return b.bindConversionExpression(ex)

	case *tree.ShellExpression:
		cmd := b.bindExpression(ex.Command, typesystem.Primitive{Kind: typesystem.String})
		return &boundtree.ShellExpression{Info: ex.Info, Command: cmd}

	case *tree.VariableAssignmentExpression:
		return b.bindVariableAssignmentExpression(ex)

	case *tree.TypeValueExpression:
		return &boundtree.TypeValueExpression{Info: ex.Info, Referenced: b.resolveType(ex.Type)}

	default:
		return b.invalidExpression(e.NodeInfo(), "unrecognized expression node")
	}
}

func (b *Binder) bindIdentifierExpression(ex *tree.IdentifierExpression) boundtree.Expression {
	sym, ok := b.scope.Lookup(ex.Ident.Name)
	if !ok {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, ex.Info.Span,
			"unresolved name %q", ex.Ident.Name)
		return b.invalidExpression(ex.Info, "unresolved name")
	}
	switch sym.Kind {
	case scope.SymbolFunction:
		fn, _ := sym.Type.(typesystem.Function)
		return &boundtree.FunctionExpression{Info: ex.Info, Symbol: sym.Name, Resolved: fn, ParameterNames: b.functionParams[sym.Name]}
	case scope.SymbolStruct, scope.SymbolEnum, scope.SymbolAlias:
		return &boundtree.TypeValueExpression{Info: ex.Info, Referenced: sym.Type}
	default:
		return &boundtree.VariableExpression{Info: ex.Info, Symbol: sym.Name, Resolved: sym.Type, Mutable: sym.Mutable}
	}
}

func (b *Binder) bindUnaryExpression(ex *tree.UnaryExpression) boundtree.Expression {
	op := convertUnaryOp(ex.Op)
	operand := b.bindExpression(ex.Operand, nil)
	if typesystem.IsInvalid(operand.Type()) {
		return b.invalidExpression(ex.Info, "poisoned operand")
	}
	result := typesystem.Unary(op, operand.Type())
	if result == nil {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeInvalidOperator, ex.Info.Span,
			"no unary operator rule for %s on %s", ex.OpToken.Lexeme, operand.Type())
		return b.invalidExpression(ex.Info, "invalid unary operator")
	}
	return &boundtree.UnaryExpression{Info: ex.Info, Op: op, Resolved: result, Operand: operand}
}

func (b *Binder) bindBinaryExpression(ex *tree.BinaryExpression) boundtree.Expression {
	op := convertBinaryOp(ex.Op)
	left := b.bindExpression(ex.Left, nil)

	var rightHint typesystem.Type
	if lp, ok := asPrimitive(left.Type()); ok && lp.Kind.IsNumeric() {
		rightHint = left.Type()
	}
	right := b.bindExpression(ex.Right, rightHint)

	if typesystem.IsInvalid(left.Type()) || typesystem.IsInvalid(right.Type()) {
		return b.invalidExpression(ex.Info, "poisoned operand")
	}

	result := typesystem.Binary(op, left.Type(), right.Type())
	if result == nil {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeInvalidOperator, ex.Info.Span,
			"no binary operator rule for %s between %s and %s", ex.OpToken.Lexeme, left.Type(), right.Type())
		return b.invalidExpression(ex.Info, "invalid binary operator")
	}

	if op.IsArithmetic() || op.IsComparison() {
		common := typesystem.Common(left.Type(), right.Type())
		if common != nil {
			left = b.convertIfNeeded(left, common)
			right = b.convertIfNeeded(right, common)
		}
	}

	return &boundtree.BinaryExpression{Info: ex.Info, Op: op, Resolved: result, Left: left, Right: right}
}

func (b *Binder) bindIndexExpression(ex *tree.IndexExpression) boundtree.Expression {
	base := b.bindExpression(ex.Base, nil)
	index := b.bindExpression(ex.Index, typesystem.Primitive{Kind: typesystem.I32})

	if typesystem.IsInvalid(base.Type()) {
		return b.invalidExpression(ex.Info, "poisoned base")
	}
	if ip, ok := asPrimitive(index.Type()); !ok || !ip.Kind.IsInteger() {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span, "index must be an integer, got %s", index.Type())
		return b.invalidExpression(ex.Info, "non-integer index")
	}

	switch bt := typesystem.Underlying(base.Type()).(type) {
	case typesystem.Array:
		return &boundtree.IndexExpression{Info: ex.Info, Resolved: bt.Element, Base: base, Index: index}
	case typesystem.Primitive:
		if bt.Kind == typesystem.String {
			return &boundtree.IndexExpression{Info: ex.Info, Resolved: typesystem.Primitive{Kind: typesystem.Char}, Base: base, Index: index}
		}
	}
	b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span, "%s is not indexable", base.Type())
	return b.invalidExpression(ex.Info, "not indexable")
}

func (b *Binder) bindAccessExpression(ex *tree.AccessExpression) boundtree.Expression {
	// Static `EnumName.Variant` access: the base names a declared
	// enumeration type, not a value.
	if ident, ok := ex.Base.(*tree.IdentifierExpression); ok {
		if t, exists := b.types[ident.Ident.Name]; exists {
			if en, isEnum := t.(typesystem.Enumeration); isEnum {
				idx := en.VariantIndex(ex.Field.Name)
				if idx < 0 {
					b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, ex.Info.Span,
						"%s has no variant %q", en.Name, ex.Field.Name)
					return b.invalidExpression(ex.Info, "unresolved variant")
				}
				return &boundtree.EnumeratorExpression{Info: ex.Info, Resolved: en, VariantIndex: idx}
			}
		}
	}

	base := b.bindExpression(ex.Base, nil)
	if typesystem.IsInvalid(base.Type()) {
		return b.invalidExpression(ex.Info, "poisoned base")
	}
	st, ok := typesystem.Underlying(base.Type()).(typesystem.Structure)
	if !ok {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span, "%s has no fields", base.Type())
		return b.invalidExpression(ex.Info, "not a structure")
	}
	idx := st.FieldIndex(ex.Field.Name)
	if idx < 0 {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, ex.Info.Span, "%s has no field %q", st.Name, ex.Field.Name)
		return b.invalidExpression(ex.Info, "unresolved field")
	}
	return &boundtree.AccessExpression{Info: ex.Info, Resolved: st.Fields[idx].Type, Base: base, FieldIndex: idx}
}

func (b *Binder) bindRangeExpression(ex *tree.RangeExpression) boundtree.Expression {
	start := b.bindExpression(ex.Start, nil)
	end := b.bindExpression(ex.End, nil)
	if typesystem.IsInvalid(start.Type()) || typesystem.IsInvalid(end.Type()) {
		return b.invalidExpression(ex.Info, "poisoned endpoint")
	}
	common := typesystem.Common(start.Type(), end.Type())
	if cp, ok := asPrimitive(common); !ok || !cp.Kind.IsInteger() {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span,
			"range endpoints must share a common integer type, got %s and %s", start.Type(), end.Type())
		return b.invalidExpression(ex.Info, "incompatible range endpoints")
	}
	start = b.convertIfNeeded(start, common)
	end = b.convertIfNeeded(end, common)
	return &boundtree.RangeExpression{Info: ex.Info, Resolved: common, Start: start, End: end}
}

func (b *Binder) bindArrayInitializerExpression(ex *tree.ArrayInitializerExpression, hint typesystem.Type) boundtree.Expression {
	var elemHint typesystem.Type
	if ha, ok := hint.(typesystem.Array); ok {
		elemHint = ha.Element
	}
	elements := make([]boundtree.Expression, len(ex.Elements))
	for i, el := range ex.Elements {
		elements[i] = b.bindExpression(el, elemHint)
	}
	if len(elements) == 0 {
		elem := elemHint
		if elem == nil {
			elem = typesystem.Invalid{}
		}
		length := uint64(0)
		return &boundtree.ArrayInitializerExpression{Info: ex.Info, Resolved: typesystem.Array{Element: elem, Length: &length}, Elements: elements}
	}

	common := elements[0].Type()
	poisoned := typesystem.IsInvalid(common)
	for _, el := range elements[1:] {
		if typesystem.IsInvalid(el.Type()) {
			poisoned = true
			continue
		}
		if c := typesystem.Common(common, el.Type()); c != nil {
			common = c
		} else {
			poisoned = true
		}
	}
	if poisoned {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span, "array elements do not share a common type")
		return b.invalidExpression(ex.Info, "incompatible array elements")
	}
	for i, el := range elements {
		elements[i] = b.convertIfNeeded(el, common)
	}
	length := uint64(len(elements))
	return &boundtree.ArrayInitializerExpression{Info: ex.Info, Resolved: typesystem.Array{Element: common, Length: &length}, Elements: elements}
}

func (b *Binder) bindStructureInitializerExpression(ex *tree.StructureInitializerExpression) boundtree.Expression {
	t, ok := b.types[ex.StructName.Name]
	st, isStruct := t.(typesystem.Structure)
	if !ok || !isStruct {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, ex.Info.Span, "unresolved structure %q", ex.StructName.Name)
		return b.invalidExpression(ex.Info, "unresolved structure")
	}
	if len(ex.Values) != len(st.Fields) {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArityMismatch, ex.Info.Span,
			"%s expects %d field values, got %d", st.Name, len(st.Fields), len(ex.Values))
		return b.invalidExpression(ex.Info, "structure arity mismatch")
	}
	values := make([]boundtree.Expression, len(ex.Values))
	poisoned := false
	for i, v := range ex.Values {
		field := st.Fields[i]
		bound := b.bindExpression(v, field.Type)
		if typesystem.IsInvalid(bound.Type()) {
			poisoned = true
		} else if a := typesystem.Assignable(bound.Type(), field.Type); a == typesystem.Incompatible {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, v.NodeInfo().Span,
				"field %q of %s expects %s, got %s", field.Name, st.Name, field.Type, bound.Type())
			poisoned = true
		} else {
			bound = b.convertIfNeeded(bound, field.Type)
		}
		values[i] = bound
	}
	if poisoned {
		return b.invalidExpression(ex.Info, "structure field mismatch")
	}
	return &boundtree.StructureInitializerExpression{Info: ex.Info, Resolved: st, Values: values}
}

func (b *Binder) bindIfElseExpression(ex *tree.IfElseExpression, hint typesystem.Type) boundtree.Expression {
	cond := b.bindExpression(ex.Condition, boolType())
	if cp, ok := asPrimitive(cond.Type()); !typesystem.IsInvalid(cond.Type()) && (!ok || cp.Kind != typesystem.Bool) {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Condition.NodeInfo().Span,
			"if condition must be bool, got %s", cond.Type())
	}

	then := b.bindExpression(ex.Then, hint)
	if ex.Else == nil {
		return &boundtree.IfElseExpression{Info: ex.Info, Resolved: voidType(), Condition: cond, Then: then}
	}
	els := b.bindExpression(ex.Else, hint)

	if typesystem.IsInvalid(then.Type()) || typesystem.IsInvalid(els.Type()) {
		return &boundtree.IfElseExpression{Info: ex.Info, Resolved: voidType(), Condition: cond, Then: then, Else: els}
	}

	if common := typesystem.Common(then.Type(), els.Type()); common != nil {
		then = b.convertIfNeeded(then, common)
		els = b.convertIfNeeded(els, common)
		return &boundtree.IfElseExpression{Info: ex.Info, Resolved: common, Condition: cond, Then: then, Else: els}
	}
	// No common type between branches: the expression types void (spec
	// §8 scenario 3); using it as a value is a TypeMismatch at the use
	// site, not here.
	return &boundtree.IfElseExpression{Info: ex.Info, Resolved: voidType(), Condition: cond, Then: then, Else: els}
}

func (b *Binder) bindWhileExpression(ex *tree.WhileExpression) boundtree.Expression {
	blockIndex := b.scope.NextBlockIndex()
	label := ""
	if ex.Label != nil {
		label = ex.Label.Name
	}

	cond := b.bindExpression(ex.Condition, boolType())
	if cp, ok := asPrimitive(cond.Type()); !typesystem.IsInvalid(cond.Type()) && (!ok || cp.Kind != typesystem.Bool) {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Condition.NodeInfo().Span,
			"while condition must be bool, got %s", cond.Type())
	}

	b.scope.PushFrame()
	if label != "" {
		b.scope.DeclareLabel(label, blockIndex)
	}
	b.loops = append(b.loops, loopContext{label: label, blockIndex: blockIndex, scopeDepth: b.scope.Depth()})
	body := b.bindExpression(ex.Body, nil)
	b.loops = b.loops[:len(b.loops)-1]
	b.scope.PopFrame()

	return &boundtree.WhileExpression{Info: ex.Info, BlockIndex: blockIndex, Label: label, Condition: cond, Body: body}
}

func (b *Binder) bindForExpression(ex *tree.ForExpression) boundtree.Expression {
	blockIndex := b.scope.NextBlockIndex()
	label := ""
	if ex.Label != nil {
		label = ex.Label.Name
	}

	b.scope.PushFrame()
	if label != "" {
		b.scope.DeclareLabel(label, blockIndex)
	}

	var clause boundtree.ForClause
	switch c := ex.Clause.(type) {
	case *tree.CStyleForClause:
		var init boundtree.Statement
		if c.Init != nil {
			init = b.bindStatement(c.Init)
		}
		cond := b.bindExpression(c.Condition, boolType())
		var update boundtree.Expression
		if c.Update != nil {
			update = b.bindExpression(c.Update, nil)
		}
		clause = &boundtree.CStyleForClause{Info: c.Info, Init: init, Condition: cond, Update: update}
	case *tree.RangedForClause:
		iterable := b.bindExpression(c.Iterable, nil)
		var elemType typesystem.Type = typesystem.Invalid{}
		switch it := typesystem.Underlying(iterable.Type()).(type) {
		case typesystem.Array:
			elemType = it.Element
		default:
			if !typesystem.IsInvalid(iterable.Type()) {
				// A Range expression's Resolved type is the shared
				// integer type of its endpoints; ranged-for over it
				// iterates that integer type directly.
				elemType = iterable.Type()
			}
		}
		if err := b.scope.Declare(c.Variable.Name, scope.Symbol{Name: c.Variable.Name, Kind: scope.SymbolVariable, Type: elemType, Mutable: false}); err != nil {
			b.reportRedeclaration(c.Variable.Name, c.Info)
		}
		clause = &boundtree.RangedForClause{Info: c.Info, VariableSymbol: c.Variable.Name, VariableType: elemType, Iterable: iterable}
	}

	b.loops = append(b.loops, loopContext{label: label, blockIndex: blockIndex, scopeDepth: b.scope.Depth()})
	body := b.bindExpression(ex.Body, nil)
	b.loops = b.loops[:len(b.loops)-1]
	b.scope.PopFrame()

	return &boundtree.ForExpression{Info: ex.Info, BlockIndex: blockIndex, Label: label, Clause: clause, Body: body}
}

func (b *Binder) bindMatchExpression(ex *tree.MatchExpression, hint typesystem.Type) boundtree.Expression {
	subject := b.bindExpression(ex.Subject, nil)

	clauses := make([]*boundtree.MatchClause, len(ex.Clauses))
	hasDefault := false
	coveredVariants := map[int]bool{}
	var bodyType typesystem.Type
	bodyPoisoned := false

	for i, c := range ex.Clauses {
		patterns := make([]boundtree.Expression, len(c.Patterns))
		for j, p := range c.Patterns {
			bp := b.bindExpression(p, subject.Type())
			if !typesystem.IsInvalid(bp.Type()) && !typesystem.IsInvalid(subject.Type()) {
				if a := typesystem.Assignable(bp.Type(), subject.Type()); a == typesystem.Incompatible {
					b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, p.NodeInfo().Span,
						"match pattern has type %s, not assignable to %s", bp.Type(), subject.Type())
				}
			}
			if ee, ok := bp.(*boundtree.EnumeratorExpression); ok {
				coveredVariants[ee.VariantIndex] = true
			}
			patterns[j] = bp
		}
		if len(c.Patterns) == 0 {
			hasDefault = true
		}
		body := b.bindExpression(c.Body, hint)
		if typesystem.IsInvalid(body.Type()) {
			bodyPoisoned = true
		} else if bodyType == nil {
			bodyType = body.Type()
		} else if common := typesystem.Common(bodyType, body.Type()); common != nil {
			bodyType = common
		} else {
			bodyPoisoned = true
		}
		clauses[i] = &boundtree.MatchClause{Info: c.Info, Patterns: patterns, Body: body}
	}

	if en, ok := typesystem.Underlying(subject.Type()).(typesystem.Enumeration); ok && !hasDefault {
		if len(coveredVariants) < len(en.Variants) {
			b.diags.Warnf(diagnostics.StageABT, diagnostics.CodeNonExhaustiveMatch, ex.Info.Span,
				"match on %s does not cover all variants", en.Name)
		}
	}

	resolved := typesystem.Type(voidType())
	if !bodyPoisoned && bodyType != nil {
		resolved = bodyType
		for i, c := range clauses {
			c.Body = b.convertIfNeeded(c.Body, resolved)
			clauses[i] = c
		}
	}

	return &boundtree.MatchExpression{Info: ex.Info, Resolved: resolved, Subject: subject, Clauses: clauses}
}

func (b *Binder) bindBlockExpression(ex *tree.BlockExpression, hint typesystem.Type) boundtree.Expression {
	b.scope.PushFrame()
	stmts := make([]boundtree.Statement, len(ex.Statements))
	for i, s := range ex.Statements {
		stmts[i] = b.bindStatement(s)
	}
	var tail boundtree.Expression
	resolved := typesystem.Type(voidType())
	if ex.Tail != nil {
		tail = b.bindExpression(ex.Tail, hint)
		resolved = tail.Type()
		if hint != nil && !typesystem.IsInvalid(resolved) {
			if a := typesystem.Assignable(resolved, hint); a == typesystem.Identity || a == typesystem.ImplicitWiden {
				tail = b.convertIfNeeded(tail, hint)
				resolved = hint
			}
		}
	}
	b.scope.PopFrame()
	return &boundtree.BlockExpression{Info: ex.Info, Resolved: resolved, Statements: stmts, Tail: tail}
}

func (b *Binder) bindFunctionCallExpression(ex *tree.FunctionCallExpression) boundtree.Expression {
	callee := b.bindExpression(ex.Callee, nil)

	if ee, ok := callee.(*boundtree.EnumeratorExpression); ok {
		return b.bindEnumeratorCall(ex, ee)
	}

	fn, ok := typesystem.Underlying(callee.Type()).(typesystem.Function)
	if !ok {
		if !typesystem.IsInvalid(callee.Type()) {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeInvalidOperator, ex.Info.Span, "%s is not callable", callee.Type())
		}
		return b.invalidExpression(ex.Info, "not callable")
	}

	var paramNames []string
	if fe, ok := callee.(*boundtree.FunctionExpression); ok {
		paramNames = fe.ParameterNames
	}

	args, ok := b.bindCallArguments(ex.Arguments, fn, paramNames, ex.Info.Span)
	if !ok {
		return b.invalidExpression(ex.Info, "argument mismatch")
	}
	return &boundtree.FunctionCallExpression{Info: ex.Info, Resolved: fn.Return, Callee: callee, Arguments: args}
}

// bindCallArguments matches named-or-positional arguments against a
// function signature: arity must match, and every argument is
// implicitly converted to its parameter's type.
func (b *Binder) bindCallArguments(args []tree.Argument, fn typesystem.Function, paramNames []string, span token.Span) ([]boundtree.Expression, bool) {
	if len(args) != len(fn.Parameters) {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArityMismatch, span,
			"expected %d arguments, got %d", len(fn.Parameters), len(args))
		return nil, false
	}

	ordered := make([]tree.Expression, len(fn.Parameters))
	filled := make([]bool, len(fn.Parameters))
	positionalIndex := 0
	for _, a := range args {
		slot := positionalIndex
		if a.Name != "" && paramNames != nil {
			found := -1
			for i, n := range paramNames {
				if n == a.Name {
					found = i
					break
				}
			}
			if found < 0 {
				b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArgumentTypeMismatch, span, "no parameter named %q", a.Name)
				return nil, false
			}
			slot = found
		} else {
			positionalIndex++
		}
		if slot >= len(ordered) || filled[slot] {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArityMismatch, span, "argument slot conflict")
			return nil, false
		}
		ordered[slot] = a.Value
		filled[slot] = true
	}

	out := make([]boundtree.Expression, len(fn.Parameters))
	poisoned := false
	for i, paramType := range fn.Parameters {
		bound := b.bindExpression(ordered[i], paramType)
		if typesystem.IsInvalid(bound.Type()) {
			poisoned = true
		} else if a := typesystem.Assignable(bound.Type(), paramType); a == typesystem.Incompatible {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArgumentTypeMismatch, ordered[i].NodeInfo().Span,
				"argument %d has type %s, expected %s", i+1, bound.Type(), paramType)
			poisoned = true
		} else {
			bound = b.convertIfNeeded(bound, paramType)
		}
		out[i] = bound
	}
	if poisoned {
		return nil, false
	}
	return out, true
}

func (b *Binder) bindEnumeratorCall(ex *tree.FunctionCallExpression, ee *boundtree.EnumeratorExpression) boundtree.Expression {
	variant := ee.Resolved.Variants[ee.VariantIndex]
	if variant.Payload == nil {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArityMismatch, ex.Info.Span,
			"variant %s::%s carries no payload", ee.Resolved.Name, variant.Name)
		return b.invalidExpression(ex.Info, "variant takes no payload")
	}
	if len(ex.Arguments) != 1 {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArityMismatch, ex.Info.Span,
			"variant %s::%s expects exactly one payload argument, got %d", ee.Resolved.Name, variant.Name, len(ex.Arguments))
		return b.invalidExpression(ex.Info, "variant payload arity mismatch")
	}
	payload := b.bindExpression(ex.Arguments[0].Value, variant.Payload)
	if a := typesystem.Assignable(payload.Type(), variant.Payload); a == typesystem.Incompatible {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArgumentTypeMismatch, ex.Info.Span,
			"variant %s::%s payload has type %s, expected %s", ee.Resolved.Name, variant.Name, payload.Type(), variant.Payload)
		return b.invalidExpression(ex.Info, "variant payload mismatch")
	}
	payload = b.convertIfNeeded(payload, variant.Payload)
	return &boundtree.EnumeratorExpression{Info: ex.Info, Resolved: ee.Resolved, VariantIndex: ee.VariantIndex, Payload: payload}
}

func (b *Binder) bindExternalCallExpression(ex *tree.ExternalCallExpression) boundtree.Expression {
	sym, ok := b.scope.Lookup(ex.Name.Name)
	if !ok {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeUnresolvedName, ex.Info.Span, "unresolved external %q", ex.Name.Name)
		return b.invalidExpression(ex.Info, "unresolved external")
	}
	fn, ok := sym.Type.(typesystem.Function)
	if !ok {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeInvalidOperator, ex.Info.Span, "%q is not callable", ex.Name.Name)
		return b.invalidExpression(ex.Info, "not callable")
	}
	if len(ex.Arguments) != len(fn.Parameters) {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArityMismatch, ex.Info.Span,
			"expected %d arguments, got %d", len(fn.Parameters), len(ex.Arguments))
		return b.invalidExpression(ex.Info, "arity mismatch")
	}
	args := make([]boundtree.Expression, len(ex.Arguments))
	poisoned := false
	for i, a := range ex.Arguments {
		bound := b.bindExpression(a, fn.Parameters[i])
		if typesystem.IsInvalid(bound.Type()) {
			poisoned = true
		} else if ass := typesystem.Assignable(bound.Type(), fn.Parameters[i]); ass == typesystem.Incompatible {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeArgumentTypeMismatch, a.NodeInfo().Span,
				"argument %d has type %s, expected %s", i+1, bound.Type(), fn.Parameters[i])
			poisoned = true
		} else {
			bound = b.convertIfNeeded(bound, fn.Parameters[i])
		}
		args[i] = bound
	}
	if poisoned {
		return b.invalidExpression(ex.Info, "argument mismatch")
	}
	return &boundtree.ExternalCallExpression{Info: ex.Info, Resolved: fn.Return, Symbol: ex.Name.Name, Arguments: args}
}

func (b *Binder) bindConversionExpression(ex *tree.ConversionExpression) boundtree.Expression {
	target := b.resolveType(ex.Target)
	operand := b.bindExpression(ex.Operand, target)
	if typesystem.IsInvalid(operand.Type()) || typesystem.IsInvalid(target) {
		return b.invalidExpression(ex.Info, "poisoned conversion")
	}

	a := typesystem.Assignable(operand.Type(), target)
	if a == typesystem.Incompatible {
		if _, ok := typesystem.StringAssignableFromCharArray(operand.Type(), target); !ok {
			b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span,
				"cannot convert %s to %s", operand.Type(), target)
			return b.invalidExpression(ex.Info, "invalid conversion")
		}
	}

	return &boundtree.ConversionExpression{Info: ex.Info, InitialType: operand.Type(), TargetType: target, Operand: operand}
}

func (b *Binder) bindVariableAssignmentExpression(ex *tree.VariableAssignmentExpression) boundtree.Expression {
	target := b.bindExpression(ex.Target, nil)
	if !isMutableTarget(target) && !typesystem.IsInvalid(target.Type()) {
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeImmutableAssignment, ex.Info.Span, "assignment to a non-mutable binding")
	}

	value := b.bindExpression(ex.Value, target.Type())
	if typesystem.IsInvalid(target.Type()) || typesystem.IsInvalid(value.Type()) {
		return &boundtree.VariableAssignmentExpression{Info: ex.Info, Resolved: voidType(), Target: target, Value: value}
	}
	switch typesystem.Assignable(value.Type(), target.Type()) {
	case typesystem.Identity, typesystem.ImplicitWiden:
		value = b.convertIfNeeded(value, target.Type())
	case typesystem.ImplicitNarrowWarn:
		b.diags.Warnf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span,
			"assignment narrows from %s to %s", value.Type(), target.Type())
		value = b.convertIfNeeded(value, target.Type())
	default:
		b.diags.Errorf(diagnostics.StageABT, diagnostics.CodeTypeMismatch, ex.Info.Span,
			"cannot assign %s to %s", value.Type(), target.Type())
	}
	return &boundtree.VariableAssignmentExpression{Info: ex.Info, Resolved: target.Type(), Target: target, Value: value}
}

func isMutableTarget(e boundtree.Expression) bool {
	switch t := e.(type) {
	case *boundtree.VariableExpression:
		return t.Mutable
	case *boundtree.IndexExpression:
		return isMutableTarget(t.Base)
	case *boundtree.AccessExpression:
		return isMutableTarget(t.Base)
	default:
		return false
	}
}
