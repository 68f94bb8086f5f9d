// Package driver implements the emergent command-line contract: option
// scan, lex/parse/codegen pipeline, tree printing, and diagnostics.
package driver

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"emergent/internal/compiler/ast"
	"emergent/internal/compiler/cerrors"
	"emergent/internal/compiler/generator"
	"emergent/internal/compiler/lexer"
	"emergent/internal/compiler/parser"
)

const usage = `Usage: emergent [-t] [-v] SOURCE.emg

  -t  print the AST to standard output
  -v  verbose progress messages
  --help  print this message and exit 0
`

// Run executes the compiler over args, writing diagnostics and verbose
// trace to stdout/stderr, and returns the process exit code. It never
// calls os.Exit itself, so it can be exercised directly from tests.
func Run(args []string, stdout, stderr io.Writer) int {
	var printTree, verbose bool
	var source string

	for _, arg := range args {
		switch arg {
		case "--help":
			fmt.Fprint(stdout, usage)
			return 0
		case "-t":
			printTree = true
		case "-v":
			verbose = true
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(stderr, "Error: unknown option '%s'.\n", arg)
				return 1
			}
			if source != "" {
				fmt.Fprintf(stderr, "Error: unexpected operand '%s'.\n", arg)
				return 1
			}
			source = arg
		}
	}

	if source == "" {
		fmt.Fprint(stderr, "Error: missing operand SOURCE.emg.\n")
		return 1
	}
	if !strings.HasSuffix(source, ".emg") {
		fmt.Fprintf(stderr, "Error: '%s' does not end in '.emg'.\n", source)
		return 1
	}

	trace := func(format string, a ...any) {
		if verbose {
			fmt.Fprintln(stdout, color.New(color.Faint).Sprintf(format, a...))
		}
	}

	trace("Opening %s", source)
	data, err := os.ReadFile(source)
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("Error: unable to open '%s': %v", source, err))
		return 1
	}

	trace("Parsing")
	l := lexer.New(string(data))
	p := parser.New(l)
	program, ok := p.ParseProgram()
	if !ok {
		printDiagnostic(stderr, p.Errors().First())
		return 1
	}

	if printTree {
		fmt.Fprintln(stdout, ast.RenderTree(program))
	}

	trace("Generating")
	gen := generator.New()
	code, err := gen.Generate(program)
	if err != nil {
		fmt.Fprintln(stderr, color.RedString(err.Error()))
		return 1
	}

	outputPath := strings.TrimSuffix(source, ".emg") + ".cpp"
	trace("Writing %s", outputPath)
	if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
		fmt.Fprintln(stderr, color.RedString("Error: unable to create '%s': %v", outputPath, err))
		return 1
	}

	trace("Done")
	return 0
}

func printDiagnostic(w io.Writer, err *cerrors.CompileError) {
	if err == nil {
		fmt.Fprintln(w, color.RedString("Error: compilation failed."))
		return
	}
	fmt.Fprintln(w, color.RedString(err.Error()))
}
