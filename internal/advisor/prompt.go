package advisor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
)

const systemPrompt = `You are an expert curriculum designer. Given a learner's goals and their current knowledge assessment, create a structured, step-by-step learning path using only the available modules.

Constraints:
- Every prerequisite of a module must appear before the module itself.
- Prioritize modules directly related to the learner's primary goal.
- Exclude modules covering topics the learner already knows, unless one is needed as a prerequisite for a new topic.
- Order the modules logically for effective learning.
- Use module ids exactly as listed. Never invent ids.

Return the module ids in the recommended sequence.`

// buildUserMessage renders goals, assessment and catalog for the prompt.
func buildUserMessage(goals []string, a curriculum.Assessment, modules []knowledge.Module, maxModules int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User goals: %s\n", joinOr(goals, "none stated"))
	fmt.Fprintf(&b, "Assessment summary: %s\n", summarizeAssessment(a))

	b.WriteString("\nAvailable modules (id | name | prerequisites):\n")
	if maxModules > 0 && len(modules) > maxModules {
		modules = modules[:maxModules]
	}
	for _, m := range modules {
		fmt.Fprintf(&b, "- %s | %s | %s\n", m.ID, m.Name, joinOr(m.Prerequisites, "none"))
	}

	return strings.TrimRight(b.String(), "\n")
}

func summarizeAssessment(a curriculum.Assessment) string {
	var parts []string
	parts = append(parts, "knows "+joinOr(a.KnownTopics, "nothing yet"))

	if len(a.Confidence) > 0 {
		topics := make([]string, 0, len(a.Confidence))
		for topic := range a.Confidence {
			topics = append(topics, topic)
		}
		slices.Sort(topics)
		scores := make([]string, len(topics))
		for i, topic := range topics {
			scores[i] = fmt.Sprintf("%s=%.2f", topic, a.Confidence[topic])
		}
		parts = append(parts, "confidence "+strings.Join(scores, ", "))
	}
	if a.LearningStyle != "" {
		parts = append(parts, "prefers "+a.LearningStyle+" learning")
	}
	return strings.Join(parts, "; ")
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
