package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/templates/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.StateStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored state.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored state.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromURL creates a store from a redis:// URL.
func NewFromURL(rawURL string, opts ...Option) (*Store, error) {
	options, err := backend.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(options), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "templates:state:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(scope domain.Scope) string {
	return s.prefix + scope.Key()
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the state to Redis.
func (s *Store) Save(ctx context.Context, scope domain.Scope, state map[string]any) error {
	if state == nil {
		state = map[string]any{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	member, err := json.Marshal(scope)
	if err != nil {
		return fmt.Errorf("failed to marshal scope: %w", err)
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(scope), data, s.ttl)

	// Index score is the expiry time; without TTL it is far in the future.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: string(member),
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the state from Redis.
func (s *Store) Load(ctx context.Context, scope domain.Scope) (map[string]any, error) {
	val, err := s.client.Get(ctx, s.key(scope)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	state, err := domain.DecodeObject([]byte(val))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	if state == nil {
		state = map[string]any{}
	}

	return state, nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, scope domain.Scope) error {
	member, err := json.Marshal(scope)
	if err != nil {
		return fmt.Errorf("failed to marshal scope: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(scope))
	pipe.ZRem(ctx, s.indexKey(), string(member))

	_, err = pipe.Exec(ctx)
	return err
}

// List returns scopes holding state, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]domain.Scope, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired state: %w", err)
	}

	members, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list state: %w", err)
	}

	scopes := make([]domain.Scope, 0, len(members))
	for _, m := range members {
		var scope domain.Scope
		if err := json.Unmarshal([]byte(m), &scope); err != nil {
			return nil, fmt.Errorf("corrupt state index entry %q: %w", m, err)
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

// Ping checks connectivity to the Redis server.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
