// ABOUTME: version subcommand
// ABOUTME: Prints the product version
package cli

import (
	"fmt"
	"runtime"

	"github.com/Resonate-Protocol/mpegsync/internal/version"
	"github.com/spf13/cobra"
)

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, version.String())
			if a.cfg.Verbose {
				fmt.Fprintf(w, "  go:     %s\n", runtime.Version())
				fmt.Fprintf(w, "  by:     %s\n", version.Manufacturer)
			}
		},
	}
}
