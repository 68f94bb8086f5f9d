// Command emgctl is a companion multi-verb tool layered over the core
// emergent compiler: build, run, watch, history. The build, run and
// watch verbs share the same compile() helper and never change the core
// compiler's semantics; history only reads the buildlog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "emgctl",
		Short: "Build, run, watch and inspect history for Emergent sources",
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newHistoryCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
