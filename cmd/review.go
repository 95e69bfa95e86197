package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/advisor"
	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/llm"
	"github.com/abhisek/learnpath/internal/render"
)

var reviewCmd = &cobra.Command{
	Use:   "review [goal]",
	Short: "Ask an LLM for its own path and compare it with the built one",
	Long: `Build a path (or load a recorded one with --event), ask the configured LLM
provider to propose a path from the same inputs, and report unknown modules,
prerequisite-order mistakes and differences between the two.

The provider is chosen by LEARNPATH_LLM_PROVIDER or discovered from the
standard *_API_KEY variables. Requests are recorded for the llm commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	addAssessmentFlags(reviewCmd)
	reviewCmd.Flags().Int("event", 0, "Review a recorded path instead of building one")
	reviewCmd.Flags().Bool("json", false, "Print the path and report as JSON")
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	eventID, _ := cmd.Flags().GetInt("event")
	asJSON, _ := cmd.Flags().GetBool("json")

	d, err := openDeps(ctx, true)
	if err != nil {
		return err
	}
	defer d.Close()

	var path *curriculum.LearningPath
	if eventID > 0 {
		e, err := d.store.PathRepo().GetPath(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get path: %w", err)
		}
		if e == nil {
			return fmt.Errorf("path event %d not found", eventID)
		}
		path = e.Path
	} else {
		userID, _ := cmd.Flags().GetString("user")
		assessment, err := assessmentFromFlags(cmd)
		if err != nil {
			return err
		}
		b, err := d.builder(log, nil)
		if err != nil {
			return err
		}
		if path, err = b.CreateLearningPath(ctx, userID, assessment, goalsFromArgs(args)); err != nil {
			return fmt.Errorf("build path: %w", err)
		}
	}
	if path == nil {
		return errors.New("nothing to review: there is no path to learn for this goal")
	}

	modules, err := d.modules(ctx)
	if err != nil {
		return fmt.Errorf("list modules: %w", err)
	}
	provider, err := llm.NewProviderFromEnv(ctx, d.store.EventRepo(), log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	report, err := advisor.New(provider, advisor.DefaultConfig()).Review(ctx, path, modules)
	if err != nil {
		return fmt.Errorf("review path: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Path   *curriculum.LearningPath `json:"path"`
			Report *advisor.Report          `json:"report"`
			Agrees bool                     `json:"agrees"`
		}{path, report, report.Agrees()})
	}
	return render.Review(cmd.OutOrStdout(), path, report)
}
