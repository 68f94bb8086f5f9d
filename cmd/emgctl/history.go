package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"emergent/internal/compiler/buildlog"
)

func newHistoryCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "history <log.db>",
		Short: "List recent compile attempts from a buildlog database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := buildlog.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer log.Close()

			records, err := log.Recent(n)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range records {
				status := "ok"
				if !r.Success {
					status = fmt.Sprintf("failed (%d errors)", r.ErrorCount)
				}
				when := time.Unix(r.CompiledAt, 0).Format(time.RFC3339)
				fmt.Fprintf(w, "%s  %-30s %s  -> %s\n", when, r.SourcePath, status, r.EmittedPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "limit", "n", 20, "number of records to show")
	return cmd
}
