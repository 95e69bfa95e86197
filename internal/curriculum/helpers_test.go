package curriculum

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/logger"
)

var fixedTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// newTestBuilder returns a builder over modules with observed logs and a
// recording observer.
func newTestBuilder(t *testing.T, src knowledge.Source, opts Options) (*Builder, *observer.ObservedLogs, *recordingObserver) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	rec := &recordingObserver{}
	opts.Logger = logger.FromZap(zap.New(core))
	opts.Observer = rec
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedTime }
	}
	if opts.NewID == nil {
		opts.NewID = func() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-000000000001") }
	}
	b, err := NewBuilder(src, opts)
	require.NoError(t, err)
	return b, logs, rec
}

type recordingObserver struct {
	mu         sync.Mutex
	outcomes   []string
	missing    []string
	unresolved [][]string
}

func (r *recordingObserver) PathCreated(outcome string, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingObserver) ModuleMissing(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missing = append(r.missing, id)
}

func (r *recordingObserver) DependenciesUnresolved(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unresolved = append(r.unresolved, ids)
}

// goalSource maps goals to fixed ids and delegates everything else to a graph.
type goalSource struct {
	*knowledge.Graph
	goals map[string][]string
}

func (s goalSource) FindModulesByGoal(_ context.Context, goal string) ([]string, error) {
	return s.goals[goal], nil
}

// failingSource fails a chosen operation.
type failingSource struct {
	knowledge.Source
	failDetails bool
	failPrereqs bool
	failGoal    bool
}

var errBackend = errors.New("backend unavailable")

func (s failingSource) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	if s.failDetails {
		return knowledge.Module{}, false, errBackend
	}
	return s.Source.ModuleDetails(ctx, id)
}

func (s failingSource) Prerequisites(ctx context.Context, id string) ([]string, error) {
	if s.failPrereqs {
		return nil, errBackend
	}
	return s.Source.Prerequisites(ctx, id)
}

func (s failingSource) FindModulesByGoal(ctx context.Context, goal string) ([]string, error) {
	if s.failGoal {
		return nil, errBackend
	}
	return s.Source.FindModulesByGoal(ctx, goal)
}

// vanishingSource forgets a module after the first lookup of it.
type vanishingSource struct {
	knowledge.Source
	mu     sync.Mutex
	target string
	seen   bool
}

func (s *vanishingSource) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.target {
		if s.seen {
			return knowledge.Module{}, false, nil
		}
		s.seen = true
	}
	return s.Source.ModuleDetails(ctx, id)
}

// lookupCountingSource counts ModuleDetails and Prerequisites calls per id.
type lookupCountingSource struct {
	knowledge.Source
	mu    sync.Mutex
	calls map[string]int
}

func (s *lookupCountingSource) record(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[id]++
}

func (s *lookupCountingSource) count(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func (s *lookupCountingSource) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	s.record(id)
	return s.Source.ModuleDetails(ctx, id)
}

func (s *lookupCountingSource) Prerequisites(ctx context.Context, id string) ([]string, error) {
	s.record(id)
	return s.Source.Prerequisites(ctx, id)
}

func seedBuilder(t *testing.T) (*Builder, *observer.ObservedLogs, *recordingObserver) {
	t.Helper()
	return newTestBuilder(t, knowledge.NewGraph(knowledge.SeedModules()), Options{})
}
