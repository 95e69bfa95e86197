package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/render"
	"github.com/abhisek/learnpath/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded learning paths",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded paths, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.PathRepo().QueryPaths(cmd.Context(), store.QueryOpts{Limit: limit, UserID: user})
		if err != nil {
			return fmt.Errorf("query paths: %w", err)
		}
		return render.PathEvents(cmd.OutOrStdout(), events)
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one recorded path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.PathRepo().GetPath(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get path: %w", err)
		}
		if e == nil {
			return fmt.Errorf("path event %d not found", id)
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(pathResult{Path: e.Path, Outcome: e.Outcome, EventID: e.ID})
		}
		return render.PathEvent(cmd.OutOrStdout(), e)
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of paths to show")
	historyListCmd.Flags().StringP("user", "u", "", "Only paths for this learner")
	historyViewCmd.Flags().Bool("json", false, "Print the path as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
