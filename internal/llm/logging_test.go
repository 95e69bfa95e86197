package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s := openTestStore(t)
	core, logs := observer.New(zap.DebugLevel)

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"verdict":"ok","notes":[]}`), Usage: Usage{InputTokens: 12, OutputTokens: 8}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", s.EventRepo(), logger.FromZap(zap.New(core)))
	ctx := WithPurpose(context.Background(), PurposePathReview)
	req := Request{
		System:   "You review learning paths.",
		Messages: []Message{{Role: RoleUser, Content: "Goal: data science"}},
		Schema:   reviewTestSchema(),
	}

	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	events, err := s.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "down")

	assert.True(t, ok.Success)
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, PurposePathReview, ok.Purpose)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[system]")
	assert.Contains(t, ok.RequestBody, "[schema: test-review]")
	assert.JSONEq(t, `{"verdict":"ok","notes":[]}`, ok.ResponseBody)

	assert.Equal(t, 1, logs.FilterMessage("llm request completed").Len())
	assert.Equal(t, 1, logs.FilterMessage("llm request failed").Len())
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(okResponse())
	p := WithLogging(mock, "mock", nil, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

type failingEventRepo struct{ store.EventRepo }

func (failingEventRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return errors.New("disk full")
}

func TestLoggingProvider_RecordFailureDoesNotFailCall(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := WithLogging(NewMockProvider(okResponse()), "mock", failingEventRepo{}, logger.FromZap(zap.New(core)))

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to record llm request event").Len())
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: "anthropic"}, nil, nil)
	assert.Error(t, err, "missing key")

	_, err = NewProvider(context.Background(), Config{Provider: "bogus"}, nil, nil)
	assert.Error(t, err)

	p, err = NewProvider(context.Background(), Config{
		Provider:   "openrouter",
		OpenRouter: OpenRouterConfig{APIKey: "sk-or", Model: "google/gemini-2.0-flash-exp"},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())
}

func TestNewProviderFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LEARNPATH_LLM_PROVIDER", "mock")
	p, err := NewProviderFromEnv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-discovered")
	p, err = NewProviderFromEnv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())

	clearLLMEnv(t)
	_, err = NewProviderFromEnv(context.Background(), nil, nil)
	assert.Error(t, err)
}
