// ABOUTME: Entry point for the mpegsync CLI
// ABOUTME: Runs the command tree and reports errors on stderr
package main

import (
	"fmt"
	"os"

	"github.com/Resonate-Protocol/mpegsync/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
