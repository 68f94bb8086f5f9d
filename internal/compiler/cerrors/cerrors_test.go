package cerrors

import (
	"testing"

	"emergent/internal/compiler/token"
)

func TestCompileErrorParserFormat(t *testing.T) {
	err := &CompileError{
		Phase:    PhaseParser,
		Caller:   "Model",
		Expected: "'{'",
		Found:    "state",
		Pos:      token.Position{Line: 3, Column: 7},
	}
	expected := "Parsing Error: Model\n>>> Expected '{'.\nInstead got 'state'.\nLine 3, Column 7."
	if got := err.Error(); got != expected {
		t.Errorf("Error() =\n%q\nwant\n%q", got, expected)
	}
}

func TestCompileErrorSemanticFormat(t *testing.T) {
	err := &CompileError{
		Phase:   PhaseSemantic,
		Caller:  "Model",
		Message: "Model has no default state.",
		Pos:     token.Position{Line: 1, Column: 1},
	}
	expected := "Semantic Error: Model\n>>> Model has no default state.\nLine 1, Column 1."
	if got := err.Error(); got != expected {
		t.Errorf("Error() =\n%q\nwant\n%q", got, expected)
	}
}

func TestListAddParserAndFirst(t *testing.T) {
	l := NewList()
	if l.HasErrors() {
		t.Fatal("new list should have no errors")
	}
	if l.First() != nil {
		t.Fatal("new list's First() should be nil")
	}

	l.AddParser("State", "'{'", token.Token{Literal: "}", Pos: token.Position{Line: 2, Column: 4}})
	l.AddParser("Element", "identifier", token.Token{Literal: "+"})

	if !l.HasErrors() {
		t.Fatal("expected HasErrors() true after AddParser")
	}
	first := l.First()
	if first == nil || first.Caller != "State" {
		t.Fatalf("expected first error from 'State', got %+v", first)
	}
	if len(l.Errors) != 2 {
		t.Fatalf("expected 2 accumulated errors, got %d", len(l.Errors))
	}
}

func TestListAddSemantic(t *testing.T) {
	l := NewList()
	l.AddSemantic("Identifier", "Unrecognised name", token.Position{Line: 5, Column: 9})
	first := l.First()
	if first == nil || first.Phase != PhaseSemantic || first.Message != "Unrecognised name" {
		t.Fatalf("unexpected first error: %+v", first)
	}
}
