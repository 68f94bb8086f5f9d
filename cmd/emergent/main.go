// Command emergent compiles an Emergent DSL source file to C++.
package main

import (
	"os"

	"emergent/internal/compiler/driver"
)

func main() {
	os.Exit(driver.Run(os.Args[1:], os.Stdout, os.Stderr))
}
