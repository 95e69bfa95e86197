// Package curriculum builds ordered learning paths from a knowledge source,
// a learner's known topics and a goal.
package curriculum

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ModuleStatus is the progress state of a module within a path.
type ModuleStatus string

const (
	StatusPending    ModuleStatus = "pending"
	StatusInProgress ModuleStatus = "in_progress"
	StatusCompleted  ModuleStatus = "completed"
)

// Assessment is the learner's current knowledge as supplied by the caller.
type Assessment struct {
	KnownTopics   []string           `json:"known_topics"`
	Confidence    map[string]float64 `json:"confidence,omitempty"`
	LearningStyle string             `json:"learning_style,omitempty"`
}

// Clone returns a deep copy.
func (a Assessment) Clone() Assessment {
	return Assessment{
		KnownTopics:   slices.Clone(a.KnownTopics),
		Confidence:    maps.Clone(a.Confidence),
		LearningStyle: a.LearningStyle,
	}
}

func (a Assessment) knownSet() map[string]bool {
	known := make(map[string]bool, len(a.KnownTopics))
	for _, id := range a.KnownTopics {
		known[id] = true
	}
	return known
}

// PathModule is one step of a learning path.
type PathModule struct {
	ModuleID           string       `json:"module_id"`
	Name               string       `json:"name"`
	Status             ModuleStatus `json:"status"`
	EstimatedTimeHours float64      `json:"estimated_time_hours"`
}

// LearningPath is an ordered sequence of modules for one learner and goal.
type LearningPath struct {
	ID                 uuid.UUID    `json:"id"`
	UserID             string       `json:"user_id"`
	Goal               string       `json:"goal"`
	Modules            []PathModule `json:"modules"`
	CurrentModuleIndex int          `json:"current_module_index"`

	// Inputs the path was built from.
	AssessmentSnapshot Assessment `json:"assessment_snapshot"`
	GoalsSnapshot      []string   `json:"goals_snapshot"`

	// Unresolved lists modules placed by the cycle fallback; their order may
	// not respect prerequisites.
	Unresolved []string `json:"unresolved,omitempty"`

	// Missing lists referenced ids the knowledge source did not know.
	Missing []string `json:"missing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ModuleIDs returns the module ids in path order.
func (p *LearningPath) ModuleIDs() []string {
	ids := make([]string, len(p.Modules))
	for i, m := range p.Modules {
		ids[i] = m.ModuleID
	}
	return ids
}

// TotalHours sums the estimated time of every module.
func (p *LearningPath) TotalHours() float64 {
	var total float64
	for _, m := range p.Modules {
		total += m.EstimatedTimeHours
	}
	return total
}

// RemainingHours sums the estimated time of modules not yet completed.
func (p *LearningPath) RemainingHours() float64 {
	var total float64
	for _, m := range p.Modules {
		if m.Status != StatusCompleted {
			total += m.EstimatedTimeHours
		}
	}
	return total
}

// Clone returns a deep copy of the path.
func (p *LearningPath) Clone() *LearningPath {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Modules = slices.Clone(p.Modules)
	cp.AssessmentSnapshot = p.AssessmentSnapshot.Clone()
	cp.GoalsSnapshot = slices.Clone(p.GoalsSnapshot)
	cp.Unresolved = slices.Clone(p.Unresolved)
	cp.Missing = slices.Clone(p.Missing)
	return &cp
}
