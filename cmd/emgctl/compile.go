package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"emergent/internal/compiler/buildlog"
	"emergent/internal/compiler/generator"
	"emergent/internal/compiler/lexer"
	"emergent/internal/compiler/parser"
)

// compile reads an .emg file and returns the generated C++ source,
// mirroring the core driver's pipeline but returning the error instead
// of printing and exiting, so callers can decide how to report it.
func compile(inputFile string) (string, error) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	l := lexer.New(string(data))
	p := parser.New(l)
	program, ok := p.ParseProgram()
	if !ok {
		return "", p.Errors().First()
	}

	gen := generator.New()
	code, err := gen.Generate(program)
	if err != nil {
		return "", err
	}
	return code, nil
}

// compileAndLog runs compile and, if logPath is non-empty, appends a
// buildlog.Record describing the attempt regardless of outcome.
func compileAndLog(inputFile, outputPath, logPath string) (string, error) {
	code, compileErr := compile(inputFile)

	if logPath != "" {
		if log, err := buildlog.Open(logPath); err == nil {
			defer log.Close()
			errorCount := 0
			if compileErr != nil {
				errorCount = 1
			}
			data, _ := os.ReadFile(inputFile)
			sum := sha256.Sum256(data)
			_ = log.Append(buildlog.Record{
				SourcePath:  inputFile,
				SourceHash:  hex.EncodeToString(sum[:]),
				Success:     compileErr == nil,
				ErrorCount:  errorCount,
				EmittedPath: outputPath,
			})
		}
	}

	return code, compileErr
}

func defaultOutputPath(inputFile string) string {
	return strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + ".cpp"
}
