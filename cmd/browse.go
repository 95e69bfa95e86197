package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/app"
	"github.com/abhisek/learnpath/internal/logger"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog and plan paths interactively",
	RunE:  runBrowse,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, browseCmd} {
		c.Flags().StringP("user", "u", defaultUser(), "Learner id prefilled in the planner")
		c.Flags().Bool("record", false, "Record planned paths in the path history")
	}
}

// runBrowse opens the source and launches the TUI. Logs are discarded while
// the alternate screen is active.
func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	record, _ := cmd.Flags().GetBool("record")

	d, err := openDeps(ctx, record)
	if err != nil {
		return err
	}
	defer d.Close()

	b, err := d.builder(logger.Nop(), nil)
	if err != nil {
		return err
	}

	opts := app.Options{
		Source:  d.source,
		Builder: b,
		UserID:  userID,
		Status:  "catalog " + d.version,
	}
	if record {
		opts.Paths = d.store.PathRepo()
	}
	return app.Run(ctx, opts)
}
