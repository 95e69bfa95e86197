package curriculum

import (
	"maps"
	"slices"
)

// orderModules sorts required ids so prerequisites come first, in layers.
// Every layer holds the ids whose prerequisites are all satisfied by known
// topics or earlier layers, sorted lexicographically. When no id is ready the
// rest is appended as one sorted batch and returned as unresolved.
func orderModules(required map[string]bool, prereqs map[string][]string, known map[string]bool) (ordered, unresolved []string) {
	satisfied := maps.Clone(known)
	if satisfied == nil {
		satisfied = make(map[string]bool)
	}
	remaining := slices.Sorted(maps.Keys(required))
	ordered = make([]string, 0, len(remaining))

	for len(remaining) > 0 {
		var ready, blocked []string
		for _, id := range remaining {
			if allSatisfied(prereqs[id], satisfied) {
				ready = append(ready, id)
			} else {
				blocked = append(blocked, id)
			}
		}

		if len(ready) == 0 {
			ordered = append(ordered, remaining...)
			return ordered, remaining
		}

		ordered = append(ordered, ready...)
		for _, id := range ready {
			satisfied[id] = true
		}
		remaining = blocked
	}
	return ordered, nil
}

func allSatisfied(ids []string, satisfied map[string]bool) bool {
	for _, id := range ids {
		if !satisfied[id] {
			return false
		}
	}
	return true
}
