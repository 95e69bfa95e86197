package knowledge

import (
	"context"
	"slices"
	"sort"
	"strings"
)

// Graph is an in-memory Source over a fixed module set with precomputed indices.
// It is immutable after construction and safe for concurrent use.
type Graph struct {
	modules    []Module
	byID       map[string]int
	dependents map[string][]string
	roots      []string
	topoOrder  []string
}

var (
	_ Source = (*Graph)(nil)
	_ Lister = (*Graph)(nil)
)

// NewGraph builds a graph from modules. Duplicate ids keep the first definition;
// run Validate to report them.
func NewGraph(modules []Module) *Graph {
	gr := &Graph{
		byID:       make(map[string]int, len(modules)),
		dependents: make(map[string][]string),
	}

	for _, m := range modules {
		if _, dup := gr.byID[m.ID]; dup {
			continue
		}
		gr.byID[m.ID] = len(gr.modules)
		gr.modules = append(gr.modules, m.Clone())
	}

	// Reverse edges (dependents), only between known modules.
	for _, m := range gr.modules {
		for _, prereqID := range m.Prerequisites {
			if _, ok := gr.byID[prereqID]; ok {
				gr.dependents[prereqID] = append(gr.dependents[prereqID], m.ID)
			}
		}
	}

	// Kahn's algorithm over known edges; sorted queue keeps the order deterministic.
	inDegree := make(map[string]int, len(gr.modules))
	for _, m := range gr.modules {
		for _, prereqID := range m.Prerequisites {
			if _, ok := gr.byID[prereqID]; ok {
				inDegree[m.ID]++
			}
		}
		if inDegree[m.ID] == 0 {
			gr.roots = append(gr.roots, m.ID)
		}
	}

	queue := slices.Clone(gr.roots)
	sort.Strings(queue)
	placed := make(map[string]bool, len(gr.modules))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		gr.topoOrder = append(gr.topoOrder, id)
		placed[id] = true

		deps := slices.Clone(gr.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	// Modules caught in a cycle go last, lexicographically.
	var stuck []string
	for _, m := range gr.modules {
		if !placed[m.ID] {
			stuck = append(stuck, m.ID)
		}
	}
	sort.Strings(stuck)
	gr.topoOrder = append(gr.topoOrder, stuck...)

	return gr
}

// ModuleDetails returns a copy of the module with the given id.
func (gr *Graph) ModuleDetails(_ context.Context, id string) (Module, bool, error) {
	i, ok := gr.byID[id]
	if !ok {
		return Module{}, false, nil
	}
	return gr.modules[i].Clone(), true, nil
}

// Prerequisites returns the declared prerequisite ids, or nil for unknown modules.
func (gr *Graph) Prerequisites(_ context.Context, id string) ([]string, error) {
	i, ok := gr.byID[id]
	if !ok {
		return nil, nil
	}
	return slices.Clone(gr.modules[i].Prerequisites), nil
}

// FindModulesByGoal matches a goal against module ids, names and keywords,
// case-insensitively, returning matches in catalog order.
func (gr *Graph) FindModulesByGoal(_ context.Context, goal string) ([]string, error) {
	return MatchGoal(gr.modules, goal), nil
}

// AllModules returns every module in catalog order.
func (gr *Graph) AllModules(_ context.Context) ([]Module, error) {
	out := make([]Module, len(gr.modules))
	for i, m := range gr.modules {
		out[i] = m.Clone()
	}
	return out, nil
}

// Len returns the number of modules.
func (gr *Graph) Len() int {
	return len(gr.modules)
}

// SubTopics returns the sub-topic ids listed by a module.
func (gr *Graph) SubTopics(id string) []string {
	i, ok := gr.byID[id]
	if !ok {
		return nil
	}
	return slices.Clone(gr.modules[i].Topics)
}

// Dependents returns the ids of modules that directly require the given module.
func (gr *Graph) Dependents(id string) []string {
	return slices.Clone(gr.dependents[id])
}

// Roots returns the ids of modules without known prerequisites, in catalog order.
func (gr *Graph) Roots() []string {
	return slices.Clone(gr.roots)
}

// TopologicalOrder returns all module ids with prerequisites first.
func (gr *Graph) TopologicalOrder() []string {
	return slices.Clone(gr.topoOrder)
}

// MatchGoal is the goal matching rule shared by the in-memory and store-backed
// sources: a module matches when the goal equals its id, or contains its name
// or one of its keywords.
func MatchGoal(modules []Module, goal string) []string {
	g := strings.ToLower(strings.TrimSpace(goal))
	if g == "" {
		return nil
	}
	var out []string
	for _, m := range modules {
		if moduleMatches(m, g) {
			out = append(out, m.ID)
		}
	}
	return out
}

func moduleMatches(m Module, goal string) bool {
	if goal == strings.ToLower(m.ID) {
		return true
	}
	if name := strings.ToLower(strings.TrimSpace(m.Name)); name != "" && strings.Contains(goal, name) {
		return true
	}
	for _, kw := range m.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(goal, kw) {
			return true
		}
	}
	return false
}
