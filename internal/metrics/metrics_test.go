package metrics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
)

func TestMetrics_ObserveBuilder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	modules := append(knowledge.SeedModules(), knowledge.Module{
		ID: "recursion", Name: "Recursion", Prerequisites: []string{"functions", "ghost_module"},
	})
	b, err := curriculum.NewBuilder(knowledge.NewGraph(modules), curriculum.Options{Observer: m})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = b.CreateLearningPath(ctx, "u1", curriculum.Assessment{}, []string{"control_flow"})
	require.NoError(t, err)
	_, err = b.CreateLearningPath(ctx, "u1", curriculum.Assessment{}, []string{"recursion"})
	require.NoError(t, err)
	path, err := b.CreateLearningPath(ctx, "u1", curriculum.Assessment{KnownTopics: []string{"python_basics"}}, []string{"python_basics"})
	require.NoError(t, err)
	require.Nil(t, path)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PathsCreated.WithLabelValues(curriculum.OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PathsCreated.WithLabelValues(curriculum.OutcomeNothingToLearn)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ModulesMissing.WithLabelValues("ghost_module")))
	assert.Equal(t, uint64(3), histogramSamples(t, reg, "learnpath_path_build_duration_seconds"))
	assert.Equal(t, uint64(2), histogramSamples(t, reg, "learnpath_path_modules"))
}

// histogramSamples returns the observation count of an unlabelled histogram.
func histogramSamples(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestMetrics_UnresolvedOnlyCountsNonEmpty(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.DependenciesUnresolved(nil)
	m.DependenciesUnresolved([]string{"a", "b"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnresolvedFallbacks))
}

func TestMetrics_HTTPExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.RecordHTTPRequest("/v1/paths", "POST", "201", 20*time.Millisecond)
	m.RecordHTTPRequest("/v1/paths", "POST", "201", 10*time.Millisecond)

	expected := `
# HELP learnpath_http_requests_total HTTP requests by route, method and status
# TYPE learnpath_http_requests_total counter
learnpath_http_requests_total{method="POST",route="/v1/paths",status="201"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "learnpath_http_requests_total"))
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
