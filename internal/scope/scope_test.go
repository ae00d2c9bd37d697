package scope

import (
	"testing"

	"github.com/lincfront/linc/internal/typesystem"
)

func TestDeclareLookupShadow(t *testing.T) {
	s := New()
	s.PushFrame()
	if err := s.Declare("x", Symbol{Name: "x", Kind: SymbolVariable, Type: typesystem.Primitive{Kind: typesystem.I32}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.PushFrame()
	if err := s.Declare("x", Symbol{Name: "x", Kind: SymbolVariable, Type: typesystem.Primitive{Kind: typesystem.String}}); err != nil {
		t.Fatalf("shadowing an outer name should be allowed: %v", err)
	}

	sym, ok := s.Lookup("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if sym.Type.String() != "string" {
		t.Errorf("expected inner shadowed x to be string, got %s", sym.Type.String())
	}

	s.PopFrame()
	sym, ok = s.Lookup("x")
	if !ok {
		t.Fatal("expected to find outer x after popping shadow frame")
	}
	if sym.Type.String() != "i32" {
		t.Errorf("expected outer x to be i32, got %s", sym.Type.String())
	}
}

func TestDeclareRedeclarationSameFrame(t *testing.T) {
	s := New()
	s.PushFrame()
	if err := s.Declare("x", Symbol{Name: "x", Kind: SymbolVariable}); err != nil {
		t.Fatalf("unexpected error on first declare: %v", err)
	}
	err := s.Declare("x", Symbol{Name: "x", Kind: SymbolVariable})
	if err == nil {
		t.Fatal("expected Redeclaration error")
	}
	if _, ok := err.(*Redeclaration); !ok {
		t.Fatalf("expected *Redeclaration, got %T", err)
	}
}

func TestLookupMiss(t *testing.T) {
	s := New()
	s.PushFrame()
	if _, ok := s.Lookup("nope"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestLabelSeparateNamespace(t *testing.T) {
	s := New()
	s.PushFrame()
	if err := s.Declare("outer", Symbol{Name: "outer", Kind: SymbolVariable}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A label may share a name with a variable: separate namespaces.
	s.DeclareLabel("outer", s.NextBlockIndex())

	if _, ok := s.Lookup("outer"); !ok {
		t.Fatal("expected variable lookup to still succeed")
	}
	if _, _, ok := s.LookupLabel("outer"); !ok {
		t.Fatal("expected label lookup to succeed")
	}
}

func TestLabelLookupScopeDepth(t *testing.T) {
	s := New()
	s.PushFrame() // depth 1
	block := s.NextBlockIndex()
	s.DeclareLabel("loop", block)

	s.PushFrame() // depth 2, nested block inside the loop body
	gotBlock, gotDepth, ok := s.LookupLabel("loop")
	if !ok {
		t.Fatal("expected to resolve label from nested frame")
	}
	if gotBlock != block {
		t.Errorf("expected block index %d, got %d", block, gotBlock)
	}
	if gotDepth != 1 {
		t.Errorf("expected label's declaring depth 1, got %d", gotDepth)
	}
}

func TestNextBlockIndexMonotonic(t *testing.T) {
	s := New()
	a := s.NextBlockIndex()
	b := s.NextBlockIndex()
	if b != a+1 {
		t.Errorf("expected monotonically increasing block indices, got %d then %d", a, b)
	}
}
