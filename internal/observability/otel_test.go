package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/knowledge"
)

func TestInitOTel_Disabled(t *testing.T) {
	shutdown, err := InitOTel(context.Background(), config.TracingConfig{}, "dev", nil, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitOTel_StdoutExporter(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var out bytes.Buffer
	shutdown, err := InitOTel(context.Background(), config.TracingConfig{Enabled: true}, "v1.2.3", nil, &out)
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "unit-span")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, out.String(), "unit-span")
	assert.Contains(t, out.String(), "learnpath")
}

func TestHostPort(t *testing.T) {
	assert.Equal(t, "collector:4318", hostPort("http://collector:4318/"))
	assert.Equal(t, "collector:4318", hostPort("collector:4318"))
}

type brokenSource struct{ knowledge.Source }

func (brokenSource) Prerequisites(context.Context, string) ([]string, error) {
	return nil, errors.New("graph offline")
}

func TestTracedSource(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	src := TraceSource(knowledge.NewGraph(knowledge.SeedModules()))

	_, ok, err := src.ModuleDetails(ctx, "loops")
	require.NoError(t, err)
	assert.True(t, ok)
	ids, err := src.FindModulesByGoal(ctx, "loops")
	require.NoError(t, err)
	assert.Equal(t, []string{"loops"}, ids)
	modules, err := src.AllModules(ctx)
	require.NoError(t, err)
	assert.Len(t, modules, 8)

	_, err = TraceSource(brokenSource{}).Prerequisites(ctx, "loops")
	require.Error(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 4)
	assert.Equal(t, "knowledge.ModuleDetails", spans[0].Name())
	assert.Equal(t, "knowledge.AllModules", spans[2].Name())
	assert.Equal(t, codes.Error, spans[3].Status().Code)

	_, err = TraceSource(brokenSource{}).AllModules(ctx)
	assert.ErrorIs(t, err, knowledge.ErrNotListable)
}
