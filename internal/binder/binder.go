// Package binder implements the core semantic-binding pass: it walks
// an unbound internal/tree.Program and produces a typed
// internal/boundtree.Program plus a diagnostics.Collector. It is a
// single-threaded recursive visitor with a small mutable context,
// mirroring a single-pass analyzer shape but checking structural
// assignability instead of Hindley-Milner unification.
package binder

import (
	"github.com/lincfront/linc/internal/boundtree"
	"github.com/lincfront/linc/internal/config"
	"github.com/lincfront/linc/internal/diagnostics"
	"github.com/lincfront/linc/internal/scope"
	"github.com/lincfront/linc/internal/tree"
	"github.com/lincfront/linc/internal/typesystem"
)

// loopContext tracks one enclosing loop's label lowering target, so
// break/continue without an explicit label resolve to the innermost
// one.
type loopContext struct {
	label      string // empty when the loop carries no label.
	blockIndex int
	scopeDepth int
}

// Binder holds the single mutable scope stack and the small per-pass
// context binding needs: the current function's return type and the
// loop label stack. Never safe for concurrent use.
type Binder struct {
	options config.BinderOptions
	scope   *scope.Stack
	diags   *diagnostics.Collector

	// types is the separate type-name namespace (structures,
	// enumerations, aliases, primitives): the scope stack holds value
	// symbols, but type expressions are resolved by name lookup against
	// declared type definitions, not against the value frames.
	types map[string]typesystem.Type

	// functionParams records each top-level function's parameter names
	// in declaration order, used to resolve named call arguments
	// without requiring every bound Expression to carry parameter
	// names.
	functionParams map[string][]string

	currentReturn typesystem.Type
	loops         []loopContext
}

// New returns a Binder ready to bind a single program.
func New(options config.BinderOptions) *Binder {
	return &Binder{
		options:        options,
		scope:          scope.New(),
		diags:          diagnostics.NewCollector(),
		types:          builtinTypes(),
		functionParams: make(map[string][]string),
	}
}

// Bind runs the full pass over prog and returns the bound program
// together with the diagnostics accumulated while binding it.
func Bind(prog *tree.Program, options config.BinderOptions) (*boundtree.Program, *diagnostics.Collector) {
	b := New(options)
	return b.bindProgram(prog), b.diags
}

func builtinTypes() map[string]typesystem.Type {
	return map[string]typesystem.Type{
		"void":   typesystem.Primitive{Kind: typesystem.Void},
		"bool":   typesystem.Primitive{Kind: typesystem.Bool},
		"u8":     typesystem.Primitive{Kind: typesystem.U8},
		"u16":    typesystem.Primitive{Kind: typesystem.U16},
		"u32":    typesystem.Primitive{Kind: typesystem.U32},
		"u64":    typesystem.Primitive{Kind: typesystem.U64},
		"i8":     typesystem.Primitive{Kind: typesystem.I8},
		"i16":    typesystem.Primitive{Kind: typesystem.I16},
		"i32":    typesystem.Primitive{Kind: typesystem.I32},
		"i64":    typesystem.Primitive{Kind: typesystem.I64},
		"f32":    typesystem.Primitive{Kind: typesystem.F32},
		"f64":    typesystem.Primitive{Kind: typesystem.F64},
		"char":   typesystem.Primitive{Kind: typesystem.Char},
		"string": typesystem.Primitive{Kind: typesystem.String},
		"type":   typesystem.Primitive{Kind: typesystem.TypeKind},
	}
}

func voidType() typesystem.Type { return typesystem.Primitive{Kind: typesystem.Void} }
func boolType() typesystem.Type { return typesystem.Primitive{Kind: typesystem.Bool} }

// invalidExpression builds the poisoned expression node every
// recoverable error produces: it carries typesystem.Invalid so
// containing expressions detect and propagate poison without
// re-reporting the original cause.
func (b *Binder) invalidExpression(info boundtree.NodeInfo, reason string) boundtree.Expression {
	return &boundtree.InvalidExpression{Info: info, Reason: reason}
}
