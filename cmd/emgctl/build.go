package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var logPath string
	var output string

	cmd := &cobra.Command{
		Use:   "build <source.emg>",
		Short: "Compile an Emergent source file to C++",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			outputPath := output
			if outputPath == "" {
				outputPath = defaultOutputPath(inputFile)
			}

			code, err := compileAndLog(inputFile, outputPath, logPath)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output .cpp path (default: input with .cpp extension)")
	cmd.Flags().StringVar(&logPath, "log", "", "buildlog sqlite database to append to")
	return cmd
}
