// Package generator is the thin facade over ast's codegen traversal:
// it owns nothing itself, it only wires a fresh Context to a parsed
// Program and runs the traversal.
package generator

import (
	"fmt"

	"emergent/internal/compiler/ast"
	"emergent/internal/compiler/cerrors"
)

// Context is the scoped state threaded through codegen. It lives in
// package ast because every node's Codegen method needs it and ast
// must not import back into generator.
type Context = ast.CodegenContext

// Generator produces target-language text from a parsed Program.
type Generator struct{}

// New returns a ready-to-use Generator. It holds no state across calls;
// each Generate call gets a fresh Context, so a Generator is safe to
// reuse and to share across goroutines that each compile a different
// program.
func New() *Generator {
	return &Generator{}
}

// Generate runs semantic analysis and codegen over program in a single
// depth-first traversal, returning the complete emitted C++ text. On
// the first semantic error it aborts and returns that error.
func (g *Generator) Generate(program *ast.Program) (string, error) {
	ctx := ast.NewCodegenContext()
	code, ok := program.Codegen(ctx)
	if !ok {
		return "", wrapFirst(ctx.Errors)
	}
	return code, nil
}

func wrapFirst(errs *cerrors.List) error {
	if first := errs.First(); first != nil {
		return fmt.Errorf("%w", first)
	}
	return fmt.Errorf("generation failed with no recorded error")
}
