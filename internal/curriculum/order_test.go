package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func set(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func TestOrderModules(t *testing.T) {
	tests := []struct {
		name           string
		required       map[string]bool
		prereqs        map[string][]string
		known          map[string]bool
		wantOrdered    []string
		wantUnresolved []string
	}{
		{
			name:        "empty",
			required:    set(),
			wantOrdered: []string{},
		},
		{
			name:        "independent modules sorted",
			required:    set("c", "a", "b"),
			wantOrdered: []string{"a", "b", "c"},
		},
		{
			name:     "layers",
			required: set("top", "mid", "base"),
			prereqs: map[string][]string{
				"top": {"mid"},
				"mid": {"base"},
			},
			wantOrdered: []string{"base", "mid", "top"},
		},
		{
			name:        "known prerequisite satisfied",
			required:    set("b"),
			prereqs:     map[string][]string{"b": {"a"}},
			known:       set("a"),
			wantOrdered: []string{"b"},
		},
		{
			name:     "batch readiness uses previous layers only",
			required: set("a", "z"),
			prereqs: map[string][]string{
				"a": {"z"},
			},
			wantOrdered: []string{"z", "a"},
		},
		{
			name:           "cycle fallback",
			required:       set("root", "p", "q"),
			prereqs:        map[string][]string{"p": {"q"}, "q": {"p"}},
			wantOrdered:    []string{"root", "p", "q"},
			wantUnresolved: []string{"p", "q"},
		},
		{
			name:           "unsatisfiable prerequisite",
			required:       set("m"),
			prereqs:        map[string][]string{"m": {"never"}},
			wantOrdered:    []string{"m"},
			wantUnresolved: []string{"m"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordered, unresolved := orderModules(tt.required, tt.prereqs, tt.known)
			assert.Equal(t, tt.wantOrdered, ordered)
			assert.Equal(t, tt.wantUnresolved, unresolved)
			assert.Len(t, ordered, len(tt.required))
		})
	}
}

func TestOrderModules_DoesNotMutateKnown(t *testing.T) {
	known := set("a")
	orderModules(set("b"), map[string][]string{"b": {"a"}}, known)
	assert.Equal(t, set("a"), known)
}
