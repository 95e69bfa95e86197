package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/render"
)

var pathCmd = &cobra.Command{
	Use:   "path [goal]",
	Short: "Build a learning path for a goal",
	Long: `Build an ordered learning path for a goal. The goal may be a module id, a
module name or free text containing a module keyword. Without a goal the
configured default goal is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPath,
}

func init() {
	addAssessmentFlags(pathCmd)
	pathCmd.Flags().Bool("record", false, "Record the result in the path history")
	pathCmd.Flags().Bool("json", false, "Print the path as JSON")
}

// addAssessmentFlags registers the learner flags shared by path and review.
func addAssessmentFlags(c *cobra.Command) {
	c.Flags().StringP("user", "u", defaultUser(), "Learner id")
	c.Flags().StringSliceP("known", "k", nil, "Module ids the learner already knows")
	c.Flags().StringSlice("confidence", nil, "Per-topic confidence as id=0..1 (repeatable)")
	c.Flags().String("style", "", "Preferred learning style, e.g. visual")
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

// assessmentFromFlags reads the learner flags added by addAssessmentFlags.
func assessmentFromFlags(cmd *cobra.Command) (curriculum.Assessment, error) {
	known, _ := cmd.Flags().GetStringSlice("known")
	confidence, _ := cmd.Flags().GetStringSlice("confidence")
	style, _ := cmd.Flags().GetString("style")
	return parseAssessment(known, confidence, style)
}

func parseAssessment(known, confidence []string, style string) (curriculum.Assessment, error) {
	a := curriculum.Assessment{
		KnownTopics:   []string{},
		LearningStyle: strings.TrimSpace(style),
	}
	for _, k := range known {
		if k = strings.TrimSpace(k); k != "" {
			a.KnownTopics = append(a.KnownTopics, k)
		}
	}
	for _, pair := range confidence {
		id, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return a, fmt.Errorf("invalid confidence %q: want id=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || v < 0 || v > 1 {
			return a, fmt.Errorf("invalid confidence %q: value must be between 0 and 1", pair)
		}
		if a.Confidence == nil {
			a.Confidence = make(map[string]float64)
		}
		a.Confidence[strings.TrimSpace(id)] = v
	}
	return a, nil
}

func goalsFromArgs(args []string) []string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil
	}
	return []string{strings.TrimSpace(args[0])}
}

// pathResult is the JSON shape of path output, matching the HTTP API.
type pathResult struct {
	Path    *curriculum.LearningPath `json:"path"`
	Outcome string                   `json:"outcome"`
	EventID int                      `json:"event_id,omitempty"`
}

func runPath(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	record, _ := cmd.Flags().GetBool("record")
	asJSON, _ := cmd.Flags().GetBool("json")
	userID, _ := cmd.Flags().GetString("user")

	assessment, err := assessmentFromFlags(cmd)
	if err != nil {
		return err
	}
	goals := goalsFromArgs(args)

	d, err := openDeps(ctx, record)
	if err != nil {
		return err
	}
	defer d.Close()

	b, err := d.builder(log, nil)
	if err != nil {
		return err
	}
	path, err := b.CreateLearningPath(ctx, userID, assessment, goals)
	if err != nil {
		return fmt.Errorf("build path: %w", err)
	}

	res := pathResult{Path: path, Outcome: curriculum.OutcomeCreated}
	if path == nil {
		res.Outcome = curriculum.OutcomeNothingToLearn
	}
	if record {
		id, err := d.store.PathRepo().RecordPath(ctx, userID, recordedGoal(path, goals), path)
		if err != nil {
			return fmt.Errorf("record path: %w", err)
		}
		res.EventID = id
	}

	return printPathResult(cmd.OutOrStdout(), res, asJSON)
}

// recordedGoal is the goal stored in the audit log: the resolved goal of a
// built path, otherwise the first requested goal.
func recordedGoal(path *curriculum.LearningPath, goals []string) string {
	if path != nil {
		return path.Goal
	}
	if len(goals) > 0 {
		return goals[0]
	}
	return ""
}

func printPathResult(w io.Writer, res pathResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if err := render.Path(w, res.Path); err != nil {
		return err
	}
	if res.EventID > 0 {
		fmt.Fprintf(w, "Recorded as event %d\n", res.EventID)
	}
	return nil
}
