package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// Validate performs structural checks on a module set: ids, names, durations,
// dangling prerequisites, self-references, cycles and the presence of a root.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(modules []Module) error {
	var errs []string

	idSet := make(map[string]bool, len(modules))
	for _, m := range modules {
		if strings.TrimSpace(m.ID) == "" {
			errs = append(errs, "module with empty ID")
			continue
		}
		if idSet[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		idSet[m.ID] = true

		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, fmt.Sprintf("module %q has empty name", m.ID))
		}
		if m.EstimatedTimeHours < 0 {
			errs = append(errs, fmt.Sprintf("module %q: estimated_time_hours must be >= 0, got %g", m.ID, m.EstimatedTimeHours))
		}
	}

	for _, m := range modules {
		for _, prereqID := range m.Prerequisites {
			switch {
			case prereqID == m.ID:
				errs = append(errs, fmt.Sprintf("module %q lists itself as a prerequisite", m.ID))
			case !idSet[prereqID]:
				errs = append(errs, fmt.Sprintf("module %q references nonexistent prerequisite %q", m.ID, prereqID))
			}
		}
	}

	if cycle := cycleMembers(modules, idSet); len(cycle) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected involving modules: %s", strings.Join(cycle, ", ")))
	}

	if len(modules) > 0 {
		hasRoot := false
		for _, m := range modules {
			if len(m.Prerequisites) == 0 {
				hasRoot = true
				break
			}
		}
		if !hasRoot {
			errs = append(errs, "no root modules found (at least one module must have no prerequisites)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("module graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// cycleMembers runs Kahn's algorithm over the known edges and returns the ids
// that could never be placed, sorted.
func cycleMembers(modules []Module, known map[string]bool) []string {
	inDegree := make(map[string]int, len(modules))
	adjList := make(map[string][]string)
	for _, m := range modules {
		if _, seen := inDegree[m.ID]; !seen {
			inDegree[m.ID] = 0
		}
		for _, prereqID := range m.Prerequisites {
			if !known[prereqID] {
				continue
			}
			inDegree[m.ID]++
			adjList[prereqID] = append(adjList[prereqID], m.ID)
		}
	}

	var queue []string
	for id, d := range inDegree {
		if d == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	var stuck []string
	for id, d := range inDegree {
		if d > 0 {
			stuck = append(stuck, id)
		}
	}
	sort.Strings(stuck)
	return stuck
}
