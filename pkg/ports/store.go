package ports

import (
	"context"

	"github.com/aretw0/templates/pkg/domain"
)

// StateStore holds the prior pipeline state that a host associates with a scope.
// The component only reads from it; hosts seed it through their own adapters.
type StateStore interface {
	// Save persists the state for a given scope.
	Save(ctx context.Context, scope domain.Scope, state map[string]any) error

	// Load retrieves the state for a given scope.
	// Returns domain.ErrStateNotFound if the scope has no state.
	Load(ctx context.Context, scope domain.Scope) (map[string]any, error)

	// Delete removes the state for a given scope.
	Delete(ctx context.Context, scope domain.Scope) error

	// List returns the scopes that currently hold state.
	List(ctx context.Context) ([]domain.Scope, error)
}
