// Package knowledge defines the curriculum knowledge source: modules, their
// prerequisite edges, and goal lookup.
package knowledge

import (
	"context"
	"errors"
	"slices"
)

// Module is a single unit of curriculum content.
type Module struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	Prerequisites      []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Topics             []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	Keywords           []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	EstimatedTimeHours float64  `json:"estimated_time_hours" yaml:"estimated_time_hours"`
}

// Clone returns a deep copy so callers cannot mutate a source's modules.
func (m Module) Clone() Module {
	m.Prerequisites = slices.Clone(m.Prerequisites)
	m.Topics = slices.Clone(m.Topics)
	m.Keywords = slices.Clone(m.Keywords)
	return m
}

// Source is the lookup contract the path builder depends on.
//
// Implementations may be in-memory or backed by a store. An unknown id is not an
// error: ModuleDetails reports it with ok=false and Prerequisites returns an empty
// slice. Errors are reserved for failures of the backing store itself.
type Source interface {
	// ModuleDetails returns the module with the given id.
	ModuleDetails(ctx context.Context, id string) (m Module, ok bool, err error)

	// Prerequisites returns the prerequisite ids of a module in declared order.
	Prerequisites(ctx context.Context, id string) ([]string, error)

	// FindModulesByGoal returns the ids of modules relevant to a goal, possibly none.
	FindModulesByGoal(ctx context.Context, goal string) ([]string, error)
}

// Lister is implemented by sources that can enumerate their whole catalog.
type Lister interface {
	AllModules(ctx context.Context) ([]Module, error)
}

// ErrNotListable is returned by decorators whose wrapped source is not a Lister.
var ErrNotListable = errors.New("knowledge source does not support listing")
