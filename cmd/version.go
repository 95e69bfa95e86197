package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/knowledge"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the supported catalog format",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if v == "(devel)" {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				v = info.Main.Version
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "learnpath", v)
		fmt.Fprintf(cmd.OutOrStdout(), "catalog format %s.x.y, seed catalog %s\n",
			knowledge.SupportedMajor, knowledge.SeedCatalog().Version)
	},
}
