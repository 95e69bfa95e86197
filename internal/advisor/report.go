package advisor

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
)

// Violation is a proposed module placed before (or without) one of its
// prerequisites.
type Violation struct {
	ModuleID     string `json:"module_id"`
	Prerequisite string `json:"prerequisite"`
}

// Report compares a built path with a model proposal.
type Report struct {
	Proposal *Proposal `json:"proposal"`

	// UnknownIDs are proposed ids absent from the catalog.
	UnknownIDs []string `json:"unknown_ids,omitempty"`

	// Violations lists prerequisite-order mistakes in the proposal.
	Violations []Violation `json:"violations,omitempty"`

	// Omitted are path modules the proposal left out.
	Omitted []string `json:"omitted,omitempty"`

	// Added are known-catalog modules the proposal has but the path does not.
	Added []string `json:"added,omitempty"`

	// SameOrder is true when both sequences are identical.
	SameOrder bool `json:"same_order"`
}

// Agrees reports whether the proposal matches the path with no problems.
func (r *Report) Agrees() bool {
	return r.SameOrder && len(r.UnknownIDs) == 0 && len(r.Violations) == 0
}

// Compare checks proposal against the knowledge source and the built path.
// Known topics from the path's assessment count as satisfied prerequisites.
func Compare(ctx context.Context, path *curriculum.LearningPath, proposal *Proposal, src knowledge.Source) (*Report, error) {
	report := &Report{Proposal: proposal}

	known := make(map[string]bool, len(path.AssessmentSnapshot.KnownTopics))
	for _, id := range path.AssessmentSnapshot.KnownTopics {
		known[id] = true
	}

	pathIDs := path.ModuleIDs()
	inPath := make(map[string]bool, len(pathIDs))
	for _, id := range pathIDs {
		inPath[id] = true
	}

	seen := make(map[string]bool, len(proposal.ModuleIDs))
	var proposed []string
	for _, id := range proposal.ModuleIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		_, ok, err := src.ModuleDetails(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get module %q: %w", id, err)
		}
		if !ok {
			report.UnknownIDs = append(report.UnknownIDs, id)
			continue
		}
		proposed = append(proposed, id)

		if !inPath[id] {
			report.Added = append(report.Added, id)
		}
	}

	placed := make(map[string]bool, len(proposed))
	for _, id := range proposed {
		prereqs, err := src.Prerequisites(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get prerequisites of %q: %w", id, err)
		}
		for _, pre := range prereqs {
			if known[pre] || placed[pre] {
				continue
			}
			report.Violations = append(report.Violations, Violation{ModuleID: id, Prerequisite: pre})
		}
		placed[id] = true
	}

	for _, id := range pathIDs {
		if !seen[id] {
			report.Omitted = append(report.Omitted, id)
		}
	}

	report.SameOrder = slices.Equal(proposal.ModuleIDs, pathIDs)
	return report, nil
}
