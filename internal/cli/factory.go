package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/templates"
	"github.com/aretw0/templates/internal/logging"
	"github.com/aretw0/templates/pkg/adapters/memory"
	"github.com/aretw0/templates/pkg/adapters/redis"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/observability"
	"github.com/aretw0/templates/pkg/persistence/middleware"
	"github.com/aretw0/templates/pkg/ports"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	LogLevel  string
	LogFormat string
	Profile   string
	RedisURL  string
	RedisTTL  time.Duration
	// StateKey is a base64 AES-256 key sealing stored state at rest.
	StateKey string
	// MaskKeys are regular expressions of state keys masked before saving.
	MaskKeys []string
}

// EnvStateKey supplies GlobalOptions.StateKey when the flag is unset.
const EnvStateKey = "TEMPLATES_STATE_KEY"

// CreateLogger configures the application logger from the global flags.
func CreateLogger(opts GlobalOptions) (*slog.Logger, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

// CreateStore returns the Redis store when a URL is configured. Otherwise it
// returns an in-memory store when fallback is set, or nil.
func CreateStore(opts GlobalOptions, fallback bool) (ports.StateStore, error) {
	store, err := createBaseStore(opts, fallback)
	if err != nil || store == nil {
		return store, err
	}
	return protectStore(opts, store)
}

func createBaseStore(opts GlobalOptions, fallback bool) (ports.StateStore, error) {
	if opts.RedisURL != "" {
		var ropts []redis.Option
		if opts.RedisTTL > 0 {
			ropts = append(ropts, redis.WithTTL(opts.RedisTTL))
		}
		store, err := redis.NewFromURL(opts.RedisURL, ropts...)
		if err != nil {
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		return store, nil
	}
	if fallback {
		return memory.NewStore(), nil
	}
	return nil, nil
}

// protectStore wraps the store with masking and encryption as configured.
func protectStore(opts GlobalOptions, store ports.StateStore) (ports.StateStore, error) {
	var mws []middleware.Middleware
	if len(opts.MaskKeys) > 0 {
		patterns, err := middleware.CompilePatterns(opts.MaskKeys)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewPIIMiddleware(patterns))
	}

	encoded := opts.StateKey
	if encoded == "" {
		encoded = os.Getenv(EnvStateKey)
	}
	if encoded != "" {
		key, err := middleware.ParseKey(encoded)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	return middleware.Chain(store, mws...), nil
}

// CreateComponent initializes a component with standard CLI conventions.
func CreateComponent(opts GlobalOptions, logger *slog.Logger, store ports.StateStore, metrics *observability.Metrics) (*templates.Component, error) {
	copts := []templates.Option{
		templates.WithLogger(logger),
		templates.WithProfile(domain.Profile(opts.Profile)),
		templates.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	if store != nil {
		copts = append(copts, templates.WithStateStore(store))
	}
	if metrics != nil {
		copts = append(copts, templates.WithMetrics(metrics))
	}

	c, err := templates.New(copts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing component: %w", err)
	}
	return c, nil
}
