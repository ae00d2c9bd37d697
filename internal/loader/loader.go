// Package loader decodes the YAML-described unbound program the demo
// CLI (cmd/lincfront) accepts in place of a real lexer/parser front
// end (spec §1 names the textual lexer and recursive-descent parser as
// external collaborators; this package stands in for "whatever the
// parser hands the binder" with a structured textual format instead of
// the source language's own grammar).
package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lincfront/linc/internal/token"
	"github.com/lincfront/linc/internal/tree"
)

// DecodeProgram parses a YAML document into an unbound tree.Program.
func DecodeProgram(data []byte) (*tree.Program, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("loader: parsing yaml: %w", err)
	}
	declsRaw, _ := raw["declarations"].([]any)
	decls := make([]tree.Declaration, len(declsRaw))
	for i, d := range declsRaw {
		dd, err := decodeDeclaration(asMap(d))
		if err != nil {
			return nil, fmt.Errorf("loader: declaration %d: %w", i, err)
		}
		decls[i] = dd
	}
	return &tree.Program{Declarations: decls}, nil
}

// --- generic YAML helpers -------------------------------------------------

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func asBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func ident(name string) *tree.Identifier {
	if name == "" {
		return nil
	}
	return &tree.Identifier{Name: name}
}

// --- type expressions ------------------------------------------------------

// decodeType accepts either a bare string ("i32", "MyStruct") or a
// mapping describing an array (`{array_of: <type>, length: <n>}`).
func decodeType(v any) *tree.TypeExpression {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &tree.TypeExpression{Name: s}
	}
	m := asMap(v)
	if m == nil {
		return nil
	}
	if elemRaw, ok := m["array_of"]; ok {
		te := &tree.TypeExpression{ArrayOf: decodeType(elemRaw)}
		if n, ok := m["length"]; ok {
			length := toUint64(n)
			te.ArrayLength = &length
		}
		return te
	}
	te := &tree.TypeExpression{Name: asString(m, "name")}
	for _, g := range asSlice(m["generic_arguments"]) {
		te.GenericArguments = append(te.GenericArguments, decodeType(g))
	}
	return te
}

func toUint64(v any) uint64 {
	switch n := v.(type) {
	case int:
		return uint64(n)
	case int64:
		return uint64(n)
	case uint64:
		return n
	case float64:
		return uint64(n)
	default:
		return 0
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// --- declarations ------------------------------------------------------

func decodeDeclaration(m map[string]any) (tree.Declaration, error) {
	switch kind := asString(m, "kind"); kind {
	case "var":
		var init tree.Expression
		var err error
		if hasKey(m, "init") {
			init, err = decodeExpression(asMap(m["init"]))
			if err != nil {
				return nil, err
			}
		}
		return &tree.VariableDeclaration{
			Name:           ident(asString(m, "name")),
			Mutable:        asBool(m, "mutable"),
			TypeAnnotation: decodeType(m["type"]),
			Initializer:    init,
		}, nil

	case "fn":
		params, err := decodeParameters(asSlice(m["params"]))
		if err != nil {
			return nil, err
		}
		var body tree.Expression
		if hasKey(m, "body") {
			body, err = decodeExpression(asMap(m["body"]))
			if err != nil {
				return nil, err
			}
		}
		return &tree.FunctionDeclaration{
			Name:       ident(asString(m, "name")),
			Parameters: params,
			ReturnType: decodeType(m["returns"]),
			Body:       body,
		}, nil

	case "external":
		params, err := decodeParameters(asSlice(m["params"]))
		if err != nil {
			return nil, err
		}
		return &tree.ExternalDeclaration{
			Name:       ident(asString(m, "name")),
			Parameters: params,
			ReturnType: decodeType(m["returns"]),
		}, nil

	case "struct":
		fieldsRaw := asSlice(m["fields"])
		fields := make([]tree.FieldDeclaration, len(fieldsRaw))
		for i, f := range fieldsRaw {
			fm := asMap(f)
			fields[i] = tree.FieldDeclaration{Name: ident(asString(fm, "name")), Type: decodeType(fm["type"])}
		}
		return &tree.StructureDeclaration{Name: ident(asString(m, "name")), Fields: fields}, nil

	case "enum":
		variantsRaw := asSlice(m["variants"])
		variants := make([]tree.VariantDeclaration, len(variantsRaw))
		for i, vr := range variantsRaw {
			vm := asMap(vr)
			variants[i] = tree.VariantDeclaration{Name: ident(asString(vm, "name")), Payload: decodeType(vm["payload"])}
		}
		return &tree.EnumerationDeclaration{Name: ident(asString(m, "name")), Variants: variants}, nil

	case "alias":
		return &tree.AliasDeclaration{Name: ident(asString(m, "name")), Type: decodeType(m["type"])}, nil

	default:
		return nil, fmt.Errorf("unrecognized declaration kind %q", kind)
	}
}

func decodeParameters(raw []any) ([]tree.Parameter, error) {
	out := make([]tree.Parameter, len(raw))
	for i, p := range raw {
		pm := asMap(p)
		out[i] = tree.Parameter{Name: ident(asString(pm, "name")), Type: decodeType(pm["type"])}
	}
	return out, nil
}

// --- statements ------------------------------------------------------

func decodeStatement(m map[string]any) (tree.Statement, error) {
	switch kind := asString(m, "kind"); kind {
	case "expr":
		e, err := decodeExpression(asMap(m["expr"]))
		if err != nil {
			return nil, err
		}
		return &tree.ExpressionStatement{Expr: e}, nil

	case "decl":
		d, err := decodeDeclaration(asMap(m["decl"]))
		if err != nil {
			return nil, err
		}
		return &tree.DeclarationStatement{Decl: d}, nil

	case "scope":
		stmts, err := decodeStatements(asSlice(m["stmts"]))
		if err != nil {
			return nil, err
		}
		return &tree.ScopeStatement{Statements: stmts}, nil

	case "return":
		var value tree.Expression
		var err error
		if hasKey(m, "value") {
			value, err = decodeExpression(asMap(m["value"]))
			if err != nil {
				return nil, err
			}
		}
		return &tree.ReturnStatement{Value: value}, nil

	case "break":
		return &tree.BreakStatement{Label: ident(asString(m, "label"))}, nil

	case "continue":
		return &tree.ContinueStatement{Label: ident(asString(m, "label"))}, nil

	case "label":
		next, err := decodeStatement(asMap(m["next"]))
		if err != nil {
			return nil, err
		}
		return &tree.LabelStatement{Name: ident(asString(m, "name")), Next: next}, nil

	case "jump":
		return &tree.JumpStatement{Name: ident(asString(m, "name"))}, nil

	case "putc":
		value, err := decodeExpression(asMap(m["value"]))
		if err != nil {
			return nil, err
		}
		return &tree.PutCharacterStatement{Value: value}, nil

	case "puts":
		value, err := decodeExpression(asMap(m["value"]))
		if err != nil {
			return nil, err
		}
		return &tree.PutStringStatement{Value: value}, nil

	default:
		return nil, fmt.Errorf("unrecognized statement kind %q", kind)
	}
}

func decodeStatements(raw []any) ([]tree.Statement, error) {
	out := make([]tree.Statement, len(raw))
	for i, s := range raw {
		st, err := decodeStatement(asMap(s))
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		out[i] = st
	}
	return out, nil
}

// --- expressions ------------------------------------------------------

var unaryOps = map[string]tree.UnaryOpKind{"!": tree.OpNot, "-": tree.OpNeg, "~": tree.OpBitNot}

var binaryOps = map[string]tree.BinaryOpKind{
	"+": tree.OpAdd, "-": tree.OpSub, "*": tree.OpMul, "/": tree.OpDiv, "%": tree.OpMod,
	"==": tree.OpEq, "!=": tree.OpNeq, "<": tree.OpLt, "<=": tree.OpLte, ">": tree.OpGt, ">=": tree.OpGte,
	"&&": tree.OpAnd, "||": tree.OpOr,
	"&": tree.OpBitAnd, "|": tree.OpBitOr, "^": tree.OpBitXor, "<<": tree.OpShl, ">>": tree.OpShr,
}

func decodeExpression(m map[string]any) (tree.Expression, error) {
	switch kind := asString(m, "kind"); kind {
	case "literal":
		tok, err := decodeLiteralToken(asMap(m["token"]))
		if err != nil {
			return nil, err
		}
		return &tree.LiteralExpression{Token: tok}, nil

	case "ident":
		return &tree.IdentifierExpression{Ident: ident(asString(m, "name"))}, nil

	case "unary":
		op, ok := unaryOps[asString(m, "op")]
		if !ok {
			return nil, fmt.Errorf("unrecognized unary operator %q", asString(m, "op"))
		}
		operand, err := decodeExpression(asMap(m["operand"]))
		if err != nil {
			return nil, err
		}
		return &tree.UnaryExpression{Op: op, OpToken: token.Token{Lexeme: asString(m, "op")}, Operand: operand}, nil

	case "binary":
		op, ok := binaryOps[asString(m, "op")]
		if !ok {
			return nil, fmt.Errorf("unrecognized binary operator %q", asString(m, "op"))
		}
		left, err := decodeExpression(asMap(m["left"]))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(asMap(m["right"]))
		if err != nil {
			return nil, err
		}
		return &tree.BinaryExpression{Op: op, OpToken: token.Token{Lexeme: asString(m, "op")}, Left: left, Right: right}, nil

	case "paren":
		inner, err := decodeExpression(asMap(m["inner"]))
		if err != nil {
			return nil, err
		}
		return &tree.ParenthesisExpression{Inner: inner}, nil

	case "index":
		base, err := decodeExpression(asMap(m["base"]))
		if err != nil {
			return nil, err
		}
		index, err := decodeExpression(asMap(m["index"]))
		if err != nil {
			return nil, err
		}
		return &tree.IndexExpression{Base: base, Index: index}, nil

	case "access":
		base, err := decodeExpression(asMap(m["base"]))
		if err != nil {
			return nil, err
		}
		return &tree.AccessExpression{Base: base, Field: ident(asString(m, "field"))}, nil

	case "range":
		start, err := decodeExpression(asMap(m["start"]))
		if err != nil {
			return nil, err
		}
		end, err := decodeExpression(asMap(m["end"]))
		if err != nil {
			return nil, err
		}
		return &tree.RangeExpression{Start: start, End: end}, nil

	case "array":
		elems, err := decodeExpressions(asSlice(m["elements"]))
		if err != nil {
			return nil, err
		}
		return &tree.ArrayInitializerExpression{Elements: elems}, nil

	case "struct_init":
		values, err := decodeExpressions(asSlice(m["values"]))
		if err != nil {
			return nil, err
		}
		return &tree.StructureInitializerExpression{StructName: ident(asString(m, "name")), Values: values}, nil

	case "if":
		cond, err := decodeExpression(asMap(m["cond"]))
		if err != nil {
			return nil, err
		}
		then, err := decodeExpression(asMap(m["then"]))
		if err != nil {
			return nil, err
		}
		out := &tree.IfElseExpression{Condition: cond, Then: then}
		if hasKey(m, "else") {
			out.Else, err = decodeExpression(asMap(m["else"]))
			if err != nil {
				return nil, err
			}
		}
		return out, nil

	case "while":
		cond, err := decodeExpression(asMap(m["cond"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeExpression(asMap(m["body"]))
		if err != nil {
			return nil, err
		}
		return &tree.WhileExpression{Label: ident(asString(m, "label")), Condition: cond, Body: body}, nil

	case "for":
		clause, err := decodeForClause(asMap(m["clause"]))
		if err != nil {
			return nil, err
		}
		body, err := decodeExpression(asMap(m["body"]))
		if err != nil {
			return nil, err
		}
		return &tree.ForExpression{Label: ident(asString(m, "label")), Clause: clause, Body: body}, nil

	case "match":
		subject, err := decodeExpression(asMap(m["subject"]))
		if err != nil {
			return nil, err
		}
		clausesRaw := asSlice(m["clauses"])
		clauses := make([]*tree.MatchClause, len(clausesRaw))
		for i, c := range clausesRaw {
			cm := asMap(c)
			patterns, err := decodeExpressions(asSlice(cm["patterns"]))
			if err != nil {
				return nil, err
			}
			body, err := decodeExpression(asMap(cm["body"]))
			if err != nil {
				return nil, err
			}
			clauses[i] = &tree.MatchClause{Patterns: patterns, Body: body}
		}
		return &tree.MatchExpression{Subject: subject, Clauses: clauses}, nil

	case "block":
		stmts, err := decodeStatements(asSlice(m["stmts"]))
		if err != nil {
			return nil, err
		}
		out := &tree.BlockExpression{Statements: stmts}
		if hasKey(m, "tail") {
			out.Tail, err = decodeExpression(asMap(m["tail"]))
			if err != nil {
				return nil, err
			}
		}
		return out, nil

	case "call":
		callee, err := decodeExpression(asMap(m["callee"]))
		if err != nil {
			return nil, err
		}
		argsRaw := asSlice(m["args"])
		args := make([]tree.Argument, len(argsRaw))
		for i, a := range argsRaw {
			am := asMap(a)
			value, err := decodeExpression(asMap(am["value"]))
			if err != nil {
				return nil, err
			}
			args[i] = tree.Argument{Name: asString(am, "name"), Value: value}
		}
		return &tree.FunctionCallExpression{Callee: callee, Arguments: args}, nil

	case "external_call":
		args, err := decodeExpressions(asSlice(m["args"]))
		if err != nil {
			return nil, err
		}
		return &tree.ExternalCallExpression{Name: ident(asString(m, "name")), Arguments: args}, nil

	case "as":
		operand, err := decodeExpression(asMap(m["operand"]))
		if err != nil {
			return nil, err
		}
		return &tree.ConversionExpression{Target: decodeType(m["target"]), Operand: operand}, nil

	case "shell":
		cmd, err := decodeExpression(asMap(m["command"]))
		if err != nil {
			return nil, err
		}
		return &tree.ShellExpression{Command: cmd}, nil

	case "assign":
		target, err := decodeExpression(asMap(m["target"]))
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(asMap(m["value"]))
		if err != nil {
			return nil, err
		}
		return &tree.VariableAssignmentExpression{Target: target, Value: value}, nil

	case "type_value":
		return &tree.TypeValueExpression{Type: decodeType(m["type"])}, nil

	default:
		return nil, fmt.Errorf("unrecognized expression kind %q", kind)
	}
}

func decodeExpressions(raw []any) ([]tree.Expression, error) {
	out := make([]tree.Expression, len(raw))
	for i, e := range raw {
		ee, err := decodeExpression(asMap(e))
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i, err)
		}
		out[i] = ee
	}
	return out, nil
}

func decodeForClause(m map[string]any) (tree.ForClause, error) {
	switch asString(m, "style") {
	case "ranged":
		iterable, err := decodeExpression(asMap(m["iterable"]))
		if err != nil {
			return nil, err
		}
		return &tree.RangedForClause{Variable: ident(asString(m, "var")), Iterable: iterable}, nil
	default: // "c", or unspecified: default to the C-style clause.
		var init tree.Statement
		var err error
		if hasKey(m, "init") {
			init, err = decodeStatement(asMap(m["init"]))
			if err != nil {
				return nil, err
			}
		}
		cond, err := decodeExpression(asMap(m["cond"]))
		if err != nil {
			return nil, err
		}
		var update tree.Expression
		if hasKey(m, "update") {
			update, err = decodeExpression(asMap(m["update"]))
			if err != nil {
				return nil, err
			}
		}
		return &tree.CStyleForClause{Init: init, Condition: cond, Update: update}, nil
	}
}

// decodeLiteralToken builds the minimal token a LiteralExpression needs:
// Kind plus whichever of Lexeme/String/Numeric the kind calls for.
func decodeLiteralToken(m map[string]any) (token.Token, error) {
	switch kind := asString(m, "kind"); kind {
	case "int":
		return token.Token{Kind: token.IntegerLiteral, Numeric: token.NumericValue{Int: toInt64(m["value"])}}, nil
	case "float":
		return token.Token{Kind: token.FloatLiteral, Numeric: token.NumericValue{IsFloat: true, Float: toFloat64(m["value"])}}, nil
	case "string":
		return token.Token{Kind: token.StringLiteral, String: asString(m, "value")}, nil
	case "char":
		return token.Token{Kind: token.CharLiteral, String: asString(m, "value")}, nil
	case "bool":
		lexeme := "false"
		if asBool(m, "value") {
			lexeme = "true"
		}
		return token.Token{Kind: token.BoolLiteral, Lexeme: lexeme}, nil
	default:
		return token.Token{}, fmt.Errorf("unrecognized literal token kind %q", kind)
	}
}
