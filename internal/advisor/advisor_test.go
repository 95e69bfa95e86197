package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/llm"
)

func builtPath(t *testing.T, known []string, goal string) *curriculum.LearningPath {
	t.Helper()
	b, err := curriculum.NewBuilder(knowledge.NewGraph(knowledge.SeedModules()), curriculum.Options{})
	require.NoError(t, err)
	path, err := b.CreateLearningPath(context.Background(), "learner-1", curriculum.Assessment{KnownTopics: known}, []string{goal})
	require.NoError(t, err)
	require.NotNil(t, path)
	return path
}

func TestReview_Agreement(t *testing.T) {
	path := builtPath(t, nil, "control_flow")
	mock := llm.NewMockProvider(llm.MockJSON(Proposal{
		ModuleIDs: path.ModuleIDs(),
		Rationale: "variables before types before operators",
	}))

	report, err := New(mock, DefaultConfig()).Review(context.Background(), path, knowledge.SeedModules())
	require.NoError(t, err)
	assert.True(t, report.Agrees())
	assert.Empty(t, report.Omitted)
	assert.Empty(t, report.Added)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, ProposalSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "User goals: control_flow")
	assert.Contains(t, req.Messages[0].Content, "- operators | Operators | variables, data_types")
}

func TestReview_FindsProblems(t *testing.T) {
	path := builtPath(t, nil, "control_flow")
	mock := llm.NewMockProvider(llm.MockJSON(Proposal{
		ModuleIDs: []string{"operators", "variables", "quantum_physics", "loops", "control_flow"},
		Rationale: "creative",
	}))

	report, err := New(mock, DefaultConfig()).Review(context.Background(), path, knowledge.SeedModules())
	require.NoError(t, err)
	assert.False(t, report.Agrees())
	assert.Equal(t, []string{"quantum_physics"}, report.UnknownIDs)
	assert.Equal(t, []string{"loops"}, report.Added)
	assert.Equal(t, []string{"data_types"}, report.Omitted)
	assert.Equal(t, []Violation{
		{ModuleID: "operators", Prerequisite: "variables"},
		{ModuleID: "operators", Prerequisite: "data_types"},
		{ModuleID: "control_flow", Prerequisite: "data_types"},
	}, report.Violations)
}

func TestCompare_KnownTopicsSatisfyPrerequisites(t *testing.T) {
	path := builtPath(t, []string{"variables", "data_types", "operators"}, "control_flow")
	require.Equal(t, []string{"control_flow"}, path.ModuleIDs())

	report, err := Compare(context.Background(), path,
		&Proposal{ModuleIDs: []string{"control_flow", "control_flow"}},
		knowledge.NewGraph(knowledge.SeedModules()))
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
	assert.Empty(t, report.Omitted)
	assert.False(t, report.SameOrder, "duplicates differ from the built path")
}

func TestReview_ProviderFailure(t *testing.T) {
	path := builtPath(t, nil, "loops")
	boom := &llm.ErrProviderUnavailable{Err: errors.New("down")}
	mock := llm.NewMockProvider(llm.MockResponse{Err: boom})

	_, err := New(mock, DefaultConfig()).Review(context.Background(), path, knowledge.SeedModules())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "generate path proposal")
}

func TestReview_SchemaViolation(t *testing.T) {
	path := builtPath(t, nil, "loops")
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"module_ids": "loops"}))

	_, err := New(mock, DefaultConfig()).Review(context.Background(), path, knowledge.SeedModules())
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestReview_NilPath(t *testing.T) {
	_, err := New(llm.NewMockProvider(), DefaultConfig()).Review(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestPropose(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(Proposal{ModuleIDs: []string{"python_basics", "functions"}, Rationale: "basics"}))

	p, err := New(mock, DefaultConfig()).Propose(context.Background(), []string{"functions"},
		curriculum.Assessment{}, knowledge.SeedModules())
	require.NoError(t, err)
	assert.Equal(t, []string{"python_basics", "functions"}, p.ModuleIDs)
	assert.Equal(t, "basics", p.Rationale)
}
