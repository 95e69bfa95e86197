// Package screens holds what the browser screens share.
package screens

import (
	"context"

	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/store"
)

// Env carries the services the browser screens call into. Commands run
// outside Update, so they use Ctx rather than a per-message context.
type Env struct {
	Ctx     context.Context
	Source  knowledge.Source
	Builder *curriculum.Builder

	// Paths records planned paths when set.
	Paths store.PathRepo

	// UserID prefills the planner.
	UserID string
}
