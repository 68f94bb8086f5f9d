package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newRunCmd builds the generated C++ with a host compiler and runs the
// resulting binary against an input grid: build to a temp directory,
// invoke $CXX (default g++), then execute.
func newRunCmd() *cobra.Command {
	var logPath string

	cmd := &cobra.Command{
		Use:   "run <source.emg> <model> <input-grid> <steps> <output-grid>",
		Short: "Compile, build with a host C++ compiler, and execute",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, model, inputGrid, steps, outputGrid := args[0], args[1], args[2], args[3], args[4]

			tmpDir, err := os.MkdirTemp("", "emgctl-run-*")
			if err != nil {
				return fmt.Errorf("creating temp dir: %w", err)
			}
			defer os.RemoveAll(tmpDir)

			cppPath := filepath.Join(tmpDir, "program.cpp")
			code, err := compileAndLog(source, cppPath, logPath)
			if err != nil {
				return err
			}
			if err := os.WriteFile(cppPath, []byte(code), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", cppPath, err)
			}

			binaryPath := filepath.Join(tmpDir, "program")
			cxx := os.Getenv("CXX")
			if cxx == "" {
				cxx = "g++"
			}
			build := exec.Command(cxx, "-std=c++17", "-O2", "-o", binaryPath, cppPath)
			build.Stdout = cmd.OutOrStdout()
			build.Stderr = cmd.ErrOrStderr()
			if err := build.Run(); err != nil {
				return fmt.Errorf("%s: %w", cxx, err)
			}

			run := exec.Command(binaryPath, inputGrid, model, steps, outputGrid)
			run.Stdout = cmd.OutOrStdout()
			run.Stderr = cmd.ErrOrStderr()
			return run.Run()
		},
	}

	cmd.Flags().StringVar(&logPath, "log", "", "buildlog sqlite database to append to")
	return cmd
}
