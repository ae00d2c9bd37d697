// Package scope implements the binder's scope stack: a stack of
// frames mapping names to symbol descriptors, plus a
// separate label namespace and a program-wide block-index counter used
// to lower structured control flow to integer targets.
package scope

import "github.com/lincfront/linc/internal/typesystem"

// SymbolKind classifies what a name in scope refers to.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolAlias
	SymbolStruct
	SymbolEnum
)

// Symbol is the descriptor a frame maps a name to.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       typesystem.Type
	Mutable    bool
	BlockIndex int
}

type label struct {
	blockIndex int
	scopeDepth int
}

// frame is one lexical scope: its own symbol table and label table,
// so labels never leak across an enclosing loop boundary they weren't
// declared in.
type frame struct {
	symbols map[string]Symbol
	labels  map[string]label
}

func newFrame() *frame {
	return &frame{symbols: make(map[string]Symbol), labels: make(map[string]label)}
}

// Redeclaration is returned by Declare when name already exists in the
// current (topmost) frame.
type Redeclaration struct {
	Name string
}

func (e *Redeclaration) Error() string { return "redeclaration of " + e.Name }

// Stack is the scope stack proper. It is not safe for concurrent use;
// the binder that owns it is single-threaded.
type Stack struct {
	frames    []*frame
	nextBlock int
}

// New returns a stack with no frames pushed. Callers push a frame
// before declaring anything at program scope.
func New() *Stack {
	return &Stack{}
}

// PushFrame enters a new lexical scope (block, function body, loop, or
// for-scope).
func (s *Stack) PushFrame() {
	s.frames = append(s.frames, newFrame())
}

// PopFrame leaves the innermost lexical scope.
func (s *Stack) PopFrame() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports the current scope nesting depth, used to stamp
// break/continue/jump targets with a scope-depth alongside their
// block-index.
func (s *Stack) Depth() int { return len(s.frames) }

// NextBlockIndex returns a fresh, monotonically increasing block
// index. A single program-wide counter is simpler to reason about than
// a per-scope one and still satisfies the uniqueness downstream
// consumers require.
func (s *Stack) NextBlockIndex() int {
	i := s.nextBlock
	s.nextBlock++
	return i
}

// Declare adds name to the current frame. Returns *Redeclaration if
// name already exists in that frame (shadowing an outer frame's name
// is allowed and is not a redeclaration).
func (s *Stack) Declare(name string, sym Symbol) error {
	if len(s.frames) == 0 {
		s.PushFrame()
	}
	top := s.frames[len(s.frames)-1]
	if _, exists := top.symbols[name]; exists {
		return &Redeclaration{Name: name}
	}
	top.symbols[name] = sym
	return nil
}

// Lookup walks frames top-to-bottom; the first hit wins.
func (s *Stack) Lookup(name string) (Symbol, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if sym, ok := s.frames[i].symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// DeclareLabel adds name to the label namespace of the current frame,
// separate from the symbol namespace.
func (s *Stack) DeclareLabel(name string, blockIndex int) {
	if len(s.frames) == 0 {
		s.PushFrame()
	}
	top := s.frames[len(s.frames)-1]
	top.labels[name] = label{blockIndex: blockIndex, scopeDepth: len(s.frames)}
}

// LookupLabel walks frames top-to-bottom in the label namespace,
// returning the (block-index, scope-depth) pair a break/continue/jump
// should carry.
func (s *Stack) LookupLabel(name string) (blockIndex int, scopeDepth int, ok bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if l, found := s.frames[i].labels[name]; found {
			return l.blockIndex, l.scopeDepth, true
		}
	}
	return 0, 0, false
}
