// Package advisor asks a language model for its own learning path and
// compares it with the one the curriculum builder produced.
package advisor

import (
	"context"
	"fmt"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/llm"
)

// Proposal is the model's suggested ordering.
type Proposal struct {
	ModuleIDs []string `json:"module_ids"`
	Rationale string   `json:"rationale"`
}

// Advisor produces and reviews path proposals.
type Advisor struct {
	provider llm.Provider
	config   Config
}

// New creates an Advisor backed by provider.
func New(provider llm.Provider, cfg Config) *Advisor {
	return &Advisor{provider: provider, config: cfg}
}

// Propose asks the model to sequence modules for the given goals and
// assessment.
func (a *Advisor) Propose(ctx context.Context, goals []string, assessment curriculum.Assessment, modules []knowledge.Module) (*Proposal, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposePathProposal)
	return a.propose(ctx, goals, assessment, modules)
}

func (a *Advisor) propose(ctx context.Context, goals []string, assessment curriculum.Assessment, modules []knowledge.Module) (*Proposal, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(goals, assessment, modules, a.config.MaxCatalogModules)},
		},
		Schema:      ProposalSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate path proposal: %w", err)
	}

	var p Proposal
	if err := resp.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse path proposal: %w", err)
	}
	return &p, nil
}

// Review asks the model for its own path from the inputs captured in path and
// reports how the two differ.
func (a *Advisor) Review(ctx context.Context, path *curriculum.LearningPath, modules []knowledge.Module) (*Report, error) {
	if path == nil {
		return nil, fmt.Errorf("review path: no path given")
	}

	ctx = llm.WithPurpose(ctx, llm.PurposePathReview)
	proposal, err := a.propose(ctx, path.GoalsSnapshot, path.AssessmentSnapshot, modules)
	if err != nil {
		return nil, err
	}
	return Compare(ctx, path, proposal, knowledge.NewGraph(modules))
}
