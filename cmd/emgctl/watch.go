package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// newWatchCmd recompiles source on every write, the fsnotify loop the
// rest of the retrieval pack pulls in for exactly this purpose.
func newWatchCmd() *cobra.Command {
	var output, logPath string

	cmd := &cobra.Command{
		Use:   "watch <source.emg>",
		Short: "Recompile a source file on every save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			outputPath := output
			if outputPath == "" {
				outputPath = defaultOutputPath(source)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(source); err != nil {
				return fmt.Errorf("watching %s: %w", source, err)
			}

			rebuild := func() {
				code, err := compileAndLog(source, outputPath, logPath)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt %s\n", outputPath)
			}

			rebuild()
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						rebuild()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output .cpp path (default: input with .cpp extension)")
	cmd.Flags().StringVar(&logPath, "log", "", "buildlog sqlite database to append to")
	return cmd
}
