package binder

import "github.com/lincfront/linc/internal/boundtree"

// reachableAlwaysReturns is a simple reachability walk: a block ending
// with return, an if/else whose both branches return, or a match whose
// every clause returns, all count as guaranteeing a value on every
// path. A bare non-block body (a single tail expression with no
// statements) always supplies its value, so it trivially satisfies the
// check.
func reachableAlwaysReturns(body boundtree.Expression) bool {
	blk, ok := body.(*boundtree.BlockExpression)
	if !ok {
		return true
	}
	if blk.Tail != nil {
		return true
	}
	return statementsAlwaysReturn(blk.Statements)
}

func statementsAlwaysReturn(stmts []boundtree.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	return statementAlwaysReturns(stmts[len(stmts)-1])
}

func statementAlwaysReturns(s boundtree.Statement) bool {
	switch st := s.(type) {
	case *boundtree.ReturnStatement:
		return true
	case *boundtree.ExpressionStatement:
		return expressionAlwaysReturns(st.Expr)
	case *boundtree.ScopeStatement:
		return statementsAlwaysReturn(st.Statements)
	case *boundtree.LabelStatement:
		return statementAlwaysReturns(st.Next)
	default:
		return false
	}
}

func expressionAlwaysReturns(e boundtree.Expression) bool {
	switch ex := e.(type) {
	case *boundtree.IfElseExpression:
		if ex.Else == nil {
			return false
		}
		return expressionAlwaysReturns(ex.Then) && expressionAlwaysReturns(ex.Else)
	case *boundtree.MatchExpression:
		if len(ex.Clauses) == 0 {
			return false
		}
		for _, c := range ex.Clauses {
			if !expressionAlwaysReturns(c.Body) {
				return false
			}
		}
		return true
	case *boundtree.BlockExpression:
		return reachableAlwaysReturns(ex)
	default:
		return false
	}
}
