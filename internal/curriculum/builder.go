package curriculum

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/logger"
)

// DefaultGoal is the goal used when the caller supplies none.
const DefaultGoal = "Default Learning Goal"

// Options configures a Builder. The zero value is usable.
type Options struct {
	// DefaultGoal replaces an empty goal list. Default: DefaultGoal.
	DefaultGoal string

	// FallbackModules seed the path when a goal matches no module.
	// nil means knowledge.DefaultFallbackModules; an empty slice disables the fallback.
	FallbackModules []string

	Logger   *logger.Logger
	Observer Observer

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() uuid.UUID
}

// Builder creates learning paths over an injected knowledge source. It holds
// no per-call state and is safe for concurrent use.
type Builder struct {
	src         knowledge.Source
	defaultGoal string
	fallback    []string
	log         *logger.Logger
	obs         Observer
	now         func() time.Time
	newID       func() uuid.UUID
}

// NewBuilder returns a Builder reading modules from src.
func NewBuilder(src knowledge.Source, opts Options) (*Builder, error) {
	if src == nil {
		return nil, errors.New("curriculum: nil knowledge source")
	}

	b := &Builder{
		src:         src,
		defaultGoal: opts.DefaultGoal,
		fallback:    slices.Clone(opts.FallbackModules),
		log:         opts.Logger,
		obs:         opts.Observer,
		now:         opts.Now,
		newID:       opts.NewID,
	}
	if b.defaultGoal == "" {
		b.defaultGoal = DefaultGoal
	}
	if opts.FallbackModules == nil {
		b.fallback = slices.Clone(knowledge.DefaultFallbackModules)
	}
	if b.log == nil {
		b.log = logger.Nop()
	}
	if b.obs == nil {
		b.obs = nopObserver{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = uuid.New
	}
	return b, nil
}

// CreateLearningPath computes the modules the learner still needs for the
// first goal and orders them so prerequisites come first.
//
// A nil path with a nil error means there is nothing to learn: every module
// the goal requires is already known or unknown to the source. Errors are
// returned only for knowledge source failures, never alongside a path.
func (b *Builder) CreateLearningPath(ctx context.Context, userID string, assessment Assessment, goals []string) (*LearningPath, error) {
	start := b.now()
	log := b.log.With("user_id", userID)

	goal := b.defaultGoal
	if len(goals) > 0 {
		goal = goals[0]
	}
	log.Info("creating learning path", "goal", goal, "goals", len(goals))
	log.Debug("assessment input", "known_topics", assessment.KnownTopics, "learning_style", assessment.LearningStyle)

	seeds, err := b.resolveGoal(ctx, log, goal)
	if err != nil {
		b.obs.PathCreated(OutcomeError, 0, b.now().Sub(start))
		return nil, err
	}

	known := assessment.knownSet()
	st := newClosureState(known)
	if err := b.collectRequired(ctx, log, seeds, st); err != nil {
		b.obs.PathCreated(OutcomeError, 0, b.now().Sub(start))
		return nil, err
	}

	ordered, unresolved := orderModules(st.required, st.prereqs, known)
	if len(unresolved) > 0 {
		log.Error("could not resolve module dependencies, appending remainder in lexicographic order",
			"modules", unresolved)
		b.obs.DependenciesUnresolved(slices.Clone(unresolved))
	}

	modules, err := b.assemble(ctx, log, ordered, st)
	if err != nil {
		b.obs.PathCreated(OutcomeError, 0, b.now().Sub(start))
		return nil, err
	}

	if len(modules) == 0 {
		log.Warn("no modules to learn for goal, it may already be met", "goal", goal)
		b.obs.PathCreated(OutcomeNothingToLearn, 0, b.now().Sub(start))
		return nil, nil
	}

	path := &LearningPath{
		ID:                 b.newID(),
		UserID:             userID,
		Goal:               goal,
		Modules:            modules,
		CurrentModuleIndex: 0,
		AssessmentSnapshot: assessment.Clone(),
		GoalsSnapshot:      slices.Clone(goals),
		Unresolved:         unresolved,
		Missing:            st.missing,
		CreatedAt:          b.now(),
	}
	if path.GoalsSnapshot == nil {
		path.GoalsSnapshot = []string{}
	}

	log.Info("created learning path", "path_id", path.ID, "modules", len(modules), "hours", path.TotalHours())
	b.obs.PathCreated(OutcomeCreated, len(modules), b.now().Sub(start))
	return path, nil
}

// resolveGoal maps a goal to seed module ids, falling back to the configured
// fallback modules when nothing matches.
func (b *Builder) resolveGoal(ctx context.Context, log *logger.Logger, goal string) ([]string, error) {
	ids, err := b.src.FindModulesByGoal(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("find modules for goal %q: %w", goal, err)
	}
	if len(ids) > 0 {
		return ids, nil
	}

	log.Warn("no modules found for goal, using fallback modules", "goal", goal, "fallback", b.fallback)
	return slices.Clone(b.fallback), nil
}

// assemble re-reads module details for the ordered ids. Ids that vanished
// from the source since the closure was computed are dropped and recorded as
// missing.
func (b *Builder) assemble(ctx context.Context, log *logger.Logger, ordered []string, st *closureState) ([]PathModule, error) {
	modules := make([]PathModule, 0, len(ordered))
	for _, id := range ordered {
		m, ok, err := b.src.ModuleDetails(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("assemble module %q: %w", id, err)
		}
		if !ok {
			log.Warn("module disappeared before assembly", "module_id", id)
			st.missing = append(st.missing, id)
			b.obs.ModuleMissing(id)
			continue
		}
		name := m.Name
		if name == "" {
			name = id
		}
		modules = append(modules, PathModule{
			ModuleID:           id,
			Name:               name,
			Status:             StatusPending,
			EstimatedTimeHours: m.EstimatedTimeHours,
		})
	}
	return modules, nil
}
