package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/learnpath/internal/knowledge"
)

const tracerName = "github.com/abhisek/learnpath"

// Tracer returns the learnpath tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// TracedSource records a span for every knowledge source lookup.
type TracedSource struct {
	next knowledge.Source
}

var _ knowledge.Source = (*TracedSource)(nil)

// TraceSource wraps next with tracing spans.
func TraceSource(next knowledge.Source) *TracedSource {
	return &TracedSource{next: next}
}

func (s *TracedSource) ModuleDetails(ctx context.Context, id string) (knowledge.Module, bool, error) {
	ctx, span := Tracer().Start(ctx, "knowledge.ModuleDetails", trace.WithAttributes(attribute.String("module.id", id)))
	defer span.End()

	m, ok, err := s.next.ModuleDetails(ctx, id)
	span.SetAttributes(attribute.Bool("module.found", ok))
	recordErr(span, err)
	return m, ok, err
}

func (s *TracedSource) Prerequisites(ctx context.Context, id string) ([]string, error) {
	ctx, span := Tracer().Start(ctx, "knowledge.Prerequisites", trace.WithAttributes(attribute.String("module.id", id)))
	defer span.End()

	ids, err := s.next.Prerequisites(ctx, id)
	span.SetAttributes(attribute.Int("module.prerequisites", len(ids)))
	recordErr(span, err)
	return ids, err
}

func (s *TracedSource) FindModulesByGoal(ctx context.Context, goal string) ([]string, error) {
	ctx, span := Tracer().Start(ctx, "knowledge.FindModulesByGoal", trace.WithAttributes(attribute.String("goal", goal)))
	defer span.End()

	ids, err := s.next.FindModulesByGoal(ctx, goal)
	span.SetAttributes(attribute.StringSlice("module.ids", ids))
	recordErr(span, err)
	return ids, err
}

// AllModules passes through when the wrapped source can list its catalog.
func (s *TracedSource) AllModules(ctx context.Context) ([]knowledge.Module, error) {
	lister, ok := s.next.(knowledge.Lister)
	if !ok {
		return nil, knowledge.ErrNotListable
	}
	ctx, span := Tracer().Start(ctx, "knowledge.AllModules")
	defer span.End()

	modules, err := lister.AllModules(ctx)
	recordErr(span, err)
	return modules, err
}

func recordErr(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
