package memory

import (
	"context"
	"sync"

	"github.com/aretw0/templates/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[domain.Scope]map[string]any
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[domain.Scope]map[string]any),
	}
}

// Save persists the state in memory.
func (s *Store) Save(ctx context.Context, scope domain.Scope, state map[string]any) error {
	// Deep copy to ensure isolation, similar to serialization
	copied, _ := domain.CloneState(state).(map[string]any)
	if copied == nil {
		copied = map[string]any{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[scope] = copied
	return nil
}

// Load retrieves the state from memory.
func (s *Store) Load(ctx context.Context, scope domain.Scope) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[scope]
	if !ok {
		return nil, domain.ErrStateNotFound
	}

	// Copy on read so callers can't mutate stored state through nested maps
	ret, _ := domain.CloneState(state).(map[string]any)
	return ret, nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, scope domain.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, scope)
	return nil
}

// List returns scopes holding state.
func (s *Store) List(ctx context.Context) ([]domain.Scope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]domain.Scope, 0, len(s.data))
	for scope := range s.data {
		scopes = append(scopes, scope)
	}
	return scopes, nil
}
