// Package cerrors collects diagnostics raised by the lexer, parser and
// generator, in a single uniform format across all three phases.
package cerrors

import (
	"fmt"

	"emergent/internal/compiler/token"
)

// Phase names the compiler stage that raised an error.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseSemantic Phase = "semantic"
)

// CompileError is one diagnostic: the production/node that raised it,
// what was expected, what was actually found, and where.
type CompileError struct {
	Phase    Phase
	Caller   string // production name, or semantic node kind
	Expected string // for parser errors: the allowed follow set, rendered
	Found    string // offending lexeme (parser) or empty (semantic)
	Message  string // semantic: the human phrase; parser: unused
	Pos      token.Position
}

// Error renders the diagnostic text: a header line naming the phase and
// caller, a ">>>" line with the expectation, the offending lexeme, and
// the 1-based line/column.
func (e *CompileError) Error() string {
	switch e.Phase {
	case PhaseParser:
		return fmt.Sprintf(
			"Parsing Error: %s\n>>> Expected %s.\nInstead got '%s'.\nLine %d, Column %d.",
			e.Caller, e.Expected, e.Found, e.Pos.Line, e.Pos.Column,
		)
	default:
		return fmt.Sprintf(
			"Semantic Error: %s\n>>> %s\nLine %d, Column %d.",
			e.Caller, e.Message, e.Pos.Line, e.Pos.Column,
		)
	}
}

// List accumulates CompileErrors. The first error recorded is the one
// that terminates the stage; later stages never run once a List is
// non-empty.
type List struct {
	Errors []*CompileError
}

// NewList returns an empty List.
func NewList() *List {
	return &List{}
}

// AddParser records a parse error: the production, the expected follow
// set (already rendered as "'a', 'b' or 'c'"), and the offending token.
func (l *List) AddParser(caller, expected string, found token.Token) {
	l.Errors = append(l.Errors, &CompileError{
		Phase:    PhaseParser,
		Caller:   caller,
		Expected: expected,
		Found:    found.Literal,
		Pos:      found.Pos,
	})
}

// AddSemantic records a semantic error: the AST node kind and the
// human-readable phrase describing the violation.
func (l *List) AddSemantic(nodeKind, message string, pos token.Position) {
	l.Errors = append(l.Errors, &CompileError{
		Phase:   PhaseSemantic,
		Caller:  nodeKind,
		Message: message,
		Pos:     pos,
	})
}

// HasErrors reports whether any error has been recorded.
func (l *List) HasErrors() bool {
	return len(l.Errors) > 0
}

// First returns the first recorded error, or nil if there is none. Only
// the first error at any stage is terminal.
func (l *List) First() *CompileError {
	if len(l.Errors) == 0 {
		return nil
	}
	return l.Errors[0]
}
