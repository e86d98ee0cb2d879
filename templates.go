package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/templates/internal/logging"
	"github.com/aretw0/templates/internal/runtime"
	"github.com/aretw0/templates/pkg/adapters/handlebars"
	"github.com/aretw0/templates/pkg/describe"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/observability"
	"github.com/aretw0/templates/pkg/ports"
	"github.com/aretw0/templates/pkg/qa"
	"github.com/aretw0/templates/pkg/runner"
)

// Component is the high-level entry point of the library.
// It wraps the internal runtime and handles transport decoding and encoding.
// A Component is safe for concurrent use.
type Component struct {
	runtime  *runtime.Engine
	renderer ports.TemplateEngine
	caps     domain.Capabilities
	store    ports.StateStore
	metrics  *observability.Metrics
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	err      error
}

var _ ports.Invoker = (*Component)(nil)

// Option defines a functional option for configuring the Component.
type Option func(*Component)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Component) {
		c.logger = logger
	}
}

// WithProfile selects a predefined capability set (legacy, stateful or full).
func WithProfile(p domain.Profile) Option {
	return func(c *Component) {
		caps, err := domain.CapabilitiesFor(p)
		if err != nil {
			c.err = err
			return
		}
		c.caps = caps
	}
}

// WithCapabilities sets the capability flags directly.
func WithCapabilities(caps domain.Capabilities) Option {
	return func(c *Component) {
		c.caps = caps
	}
}

// WithTemplateEngine replaces the default Handlebars engine.
func WithTemplateEngine(engine ports.TemplateEngine) Option {
	return func(c *Component) {
		c.renderer = engine
	}
}

// WithMetrics records invocation metrics. The collectors are not registered here.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Component) {
		c.metrics = m
	}
}

// WithStateStore loads prior state by scope when an invocation carries none.
func WithStateStore(store ports.StateStore) Option {
	return func(c *Component) {
		c.store = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Component) {
		c.hooks = hooks
	}
}

// New initializes a Component. Without options it renders with Handlebars,
// supports state and node addressing, and enforces scope.
func New(opts ...Option) (*Component, error) {
	c := &Component{
		caps: domain.DefaultCapabilities(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.renderer == nil {
		c.renderer = handlebars.New()
	}

	hooks := c.hooks
	if c.metrics != nil {
		hooks = observability.ChainHooks(hooks, c.metrics.Hooks(nil))
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithCapabilities(c.caps),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithLogger(c.logger),
	}
	if c.store != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithStateStore(c.store))
	}
	c.runtime = runtime.NewEngine(c.renderer, runtimeOpts...)
	return c, nil
}

// Capabilities returns the active capability flags.
func (c *Component) Capabilities() domain.Capabilities {
	return c.caps
}

// Invoke decodes a JSON invocation, runs it and encodes the result.
//
// Unknown operations are rejected before the input is read. Oversized or
// malformed input fails with an InvalidInput error.
func (c *Component) Invoke(ctx context.Context, operation string, input []byte) ([]byte, error) {
	if operation != domain.OperationText {
		// Run rejects it and reports the rejection to the hooks.
		return nil, c.reject(ctx, operation)
	}

	clean, err := runner.SanitizeInput(input)
	if err != nil {
		c.logger.Warn("Invocation input rejected", "operation", operation, "error", err)
		return nil, domain.NewInvalidInput(err)
	}

	var inv domain.Invocation
	if err := json.Unmarshal(clean, &inv); err != nil {
		c.logger.Warn("Invocation input rejected", "operation", operation, "error", err)
		return nil, domain.NewInvalidInput(err)
	}

	res, err := c.runtime.Run(ctx, operation, inv)
	if err != nil {
		return nil, err
	}
	return EncodeResult(res)
}

func (c *Component) reject(ctx context.Context, operation string) error {
	_, err := c.runtime.Run(ctx, operation, domain.Invocation{})
	return err
}

// Run executes an already decoded invocation.
func (c *Component) Run(ctx context.Context, operation string, inv domain.Invocation) (*domain.ComponentResult, error) {
	return c.runtime.Run(ctx, operation, inv)
}

// EncodeResult renders a result as compact JSON without HTML escaping.
func EncodeResult(res *domain.ComponentResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Describe returns the self-description of the component.
func (c *Component) Describe() (*describe.Description, error) {
	return describe.Describe()
}

// QASpec returns the configuration questions for mode.
func (c *Component) QASpec(mode qa.Mode) qa.Spec {
	return qa.SpecFor(mode)
}

// ApplyAnswers merges configuration answers into current.
func (c *Component) ApplyAnswers(mode qa.Mode, current, answers any) map[string]any {
	return qa.ApplyAnswers(mode, current, answers)
}

// Start is called by hosts before the first invocation. It holds no resources.
func (c *Component) Start(ctx context.Context) error {
	c.logger.Debug("Component started", "version", Version, "target", TargetMarker)
	return nil
}

// Stop is called by hosts after the last invocation.
func (c *Component) Stop(ctx context.Context) error {
	c.logger.Debug("Component stopped")
	return nil
}
