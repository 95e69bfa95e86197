package curriculum

import (
	"context"
	"fmt"

	"github.com/abhisek/learnpath/internal/logger"
)

// closureState carries the traversal sets through the prerequisite walk.
type closureState struct {
	known     map[string]bool
	processed map[string]bool
	required  map[string]bool

	// prereqs caches the prerequisite list fetched for each required module.
	prereqs map[string][]string
	missing []string
}

func newClosureState(known map[string]bool) *closureState {
	return &closureState{
		known:     known,
		processed: make(map[string]bool),
		required:  make(map[string]bool),
		prereqs:   make(map[string][]string),
	}
}

// collectRequired walks prerequisites breadth-first from seeds and records every
// module the learner still has to complete. Known modules are neither required
// nor explored; ids the source does not know are dropped.
func (b *Builder) collectRequired(ctx context.Context, log *logger.Logger, seeds []string, st *closureState) error {
	queue := append([]string(nil), seeds...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if st.processed[id] {
			continue
		}
		st.processed[id] = true

		if st.known[id] {
			continue
		}

		_, ok, err := b.src.ModuleDetails(ctx, id)
		if err != nil {
			return fmt.Errorf("get module %q: %w", id, err)
		}
		if !ok {
			log.Warn("module not found in knowledge source", "module_id", id)
			st.missing = append(st.missing, id)
			b.obs.ModuleMissing(id)
			continue
		}
		st.required[id] = true

		prereqs, err := b.src.Prerequisites(ctx, id)
		if err != nil {
			return fmt.Errorf("get prerequisites of %q: %w", id, err)
		}
		st.prereqs[id] = prereqs

		for _, p := range prereqs {
			if !st.processed[p] && !st.known[p] {
				queue = append(queue, p)
			}
		}
	}
	return nil
}
