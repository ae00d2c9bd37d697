package tree

// Children returns the ordered sequence of direct child nodes of n,
// for generic traversal and pretty-printing. It does not recurse.
func Children(n Node) []Node {
	switch e := n.(type) {
	case *Program:
		out := make([]Node, len(e.Declarations))
		for i, d := range e.Declarations {
			out[i] = d
		}
		return out

	case *LiteralExpression, *IdentifierExpression:
		return nil

	case *UnaryExpression:
		return []Node{e.Operand}
	case *BinaryExpression:
		return []Node{e.Left, e.Right}
	case *ParenthesisExpression:
		return []Node{e.Inner}
	case *IndexExpression:
		return []Node{e.Base, e.Index}
	case *AccessExpression:
		return []Node{e.Base}
	case *RangeExpression:
		return []Node{e.Start, e.End}
	case *ArrayInitializerExpression:
		out := make([]Node, len(e.Elements))
		for i, x := range e.Elements {
			out[i] = x
		}
		return out
	case *StructureInitializerExpression:
		out := make([]Node, len(e.Values))
		for i, x := range e.Values {
			out[i] = x
		}
		return out
	case *IfElseExpression:
		out := []Node{e.Condition, e.Then}
		if e.Else != nil {
			out = append(out, e.Else)
		}
		return out
	case *WhileExpression:
		return []Node{e.Condition, e.Body}
	case *ForExpression:
		return []Node{e.Clause, e.Body}
	case *CStyleForClause:
		out := []Node{}
		if e.Init != nil {
			out = append(out, e.Init)
		}
		out = append(out, e.Condition)
		if e.Update != nil {
			out = append(out, e.Update)
		}
		return out
	case *RangedForClause:
		return []Node{e.Iterable}
	case *MatchExpression:
		out := []Node{e.Subject}
		for _, c := range e.Clauses {
			out = append(out, c)
		}
		return out
	case *MatchClause:
		out := make([]Node, 0, len(e.Patterns)+1)
		for _, p := range e.Patterns {
			out = append(out, p)
		}
		out = append(out, e.Body)
		return out
	case *BlockExpression:
		out := make([]Node, 0, len(e.Statements)+1)
		for _, s := range e.Statements {
			out = append(out, s)
		}
		if e.Tail != nil {
			out = append(out, e.Tail)
		}
		return out
	case *FunctionCallExpression:
		out := []Node{e.Callee}
		for _, a := range e.Arguments {
			out = append(out, a.Value)
		}
		return out
	case *ExternalCallExpression:
		out := make([]Node, len(e.Arguments))
		for i, a := range e.Arguments {
			out[i] = a
		}
		return out
	case *ConversionExpression:
		return []Node{e.Operand}
	case *ShellExpression:
		return []Node{e.Command}
	case *VariableAssignmentExpression:
		return []Node{e.Target, e.Value}
	case *TypeValueExpression:
		return nil

	case *ExpressionStatement:
		return []Node{e.Expr}
	case *DeclarationStatement:
		return []Node{e.Decl}
	case *ScopeStatement:
		out := make([]Node, len(e.Statements))
		for i, s := range e.Statements {
			out[i] = s
		}
		return out
	case *ReturnStatement:
		if e.Value != nil {
			return []Node{e.Value}
		}
		return nil
	case *BreakStatement, *ContinueStatement, *JumpStatement:
		return nil
	case *LabelStatement:
		return []Node{e.Next}
	case *PutCharacterStatement:
		return []Node{e.Value}
	case *PutStringStatement:
		return []Node{e.Value}

	case *VariableDeclaration:
		if e.Initializer != nil {
			return []Node{e.Initializer}
		}
		return nil
	case *FunctionDeclaration:
		if e.Body != nil {
			return []Node{e.Body}
		}
		return nil
	case *ExternalDeclaration, *StructureDeclaration, *EnumerationDeclaration, *AliasDeclaration:
		return nil
	}
	return nil
}
