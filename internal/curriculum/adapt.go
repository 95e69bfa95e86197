package curriculum

import (
	"context"
	"errors"
	"fmt"
)

// ErrCompletedModuleRemoved is returned by CheckAdaptation when an adaptation
// dropped or reset a module the learner had already completed.
var ErrCompletedModuleRemoved = errors.New("adaptation removed a completed module")

// Performance summarizes recent learner results.
type Performance struct {
	Scores   map[string]float64 `json:"scores,omitempty"`
	Mastered []string           `json:"mastered,omitempty"`
}

// Engagement summarizes how the learner interacts with the path.
type Engagement struct {
	MinutesSpent map[string]float64 `json:"minutes_spent,omitempty"`
	Skipped      []string           `json:"skipped,omitempty"`
}

// Adapter revises an existing path from performance and engagement data.
//
// Implementations must return the path unchanged when no adaptation is
// warranted, and must never remove modules the learner already completed.
// CheckAdaptation verifies the second rule.
type Adapter interface {
	AdaptLearningPath(ctx context.Context, path *LearningPath, perf Performance, eng Engagement) (*LearningPath, error)
}

var _ Adapter = (*Builder)(nil)

// AdaptLearningPath does not adapt yet and returns path unchanged.
func (b *Builder) AdaptLearningPath(_ context.Context, path *LearningPath, _ Performance, _ Engagement) (*LearningPath, error) {
	if path == nil {
		return nil, nil
	}
	b.log.Warn("path adaptation is not implemented, returning path unchanged",
		"path_id", path.ID, "user_id", path.UserID)
	return path, nil
}

// CheckAdaptation reports whether after still contains every module that was
// completed in before, still marked completed.
func CheckAdaptation(before, after *LearningPath) error {
	if before == nil {
		return nil
	}
	kept := make(map[string]ModuleStatus)
	if after != nil {
		for _, m := range after.Modules {
			kept[m.ModuleID] = m.Status
		}
	}
	for _, m := range before.Modules {
		if m.Status != StatusCompleted {
			continue
		}
		if kept[m.ModuleID] != StatusCompleted {
			return fmt.Errorf("%w: %s", ErrCompletedModuleRemoved, m.ModuleID)
		}
	}
	return nil
}
