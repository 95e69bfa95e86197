package advisor

import "github.com/abhisek/learnpath/internal/llm"

// ProposalSchema is the structured reply expected for a path proposal.
var ProposalSchema = &llm.Schema{
	Name:        "path-proposal",
	Description: "An ordered learning path built from catalog module ids",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"module_ids": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Module ids in the recommended learning order, prerequisites first",
			},
			"rationale": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining the ordering",
			},
		},
		"required":             []any{"module_ids", "rationale"},
		"additionalProperties": false,
	},
}
