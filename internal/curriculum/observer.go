package curriculum

import "time"

// Outcomes reported to Observer.PathCreated.
const (
	OutcomeCreated        = "created"
	OutcomeNothingToLearn = "nothing_to_learn"
	OutcomeError          = "error"
)

// Observer receives events from the path builder. Implementations must be
// safe for concurrent use.
type Observer interface {
	PathCreated(outcome string, modules int, elapsed time.Duration)
	ModuleMissing(id string)
	DependenciesUnresolved(ids []string)
}

type nopObserver struct{}

func (nopObserver) PathCreated(string, int, time.Duration) {}
func (nopObserver) ModuleMissing(string)                   {}
func (nopObserver) DependenciesUnresolved([]string)        {}
