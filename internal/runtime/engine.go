package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/templates/internal/logging"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/ports"
	"github.com/google/uuid"
)

// Engine sequences one invocation through the pipeline:
// scope guard, state lookup, config decoding, context building, rendering and shaping.
// It holds no per-invocation state and is safe for concurrent use.
type Engine struct {
	renderer ports.TemplateEngine
	caps     domain.Capabilities
	builder  *ContextBuilder
	store    ports.StateStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCapabilities selects the context sources and guards of the pipeline.
func WithCapabilities(caps domain.Capabilities) EngineOption {
	return func(e *Engine) {
		e.caps = caps
	}
}

// WithStateStore sets the store consulted when an invocation carries no state.
func WithStateStore(store ports.StateStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine rendering with the given template engine.
func NewEngine(renderer ports.TemplateEngine, opts ...EngineOption) *Engine {
	e := &Engine{
		renderer: renderer,
		caps:     domain.DefaultCapabilities(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.builder = NewContextBuilder(e.caps)
	return e
}

// Capabilities returns the capabilities the engine was built with.
func (e *Engine) Capabilities() domain.Capabilities {
	return e.caps
}

// Run executes one invocation.
//
// Unsupported operations, scope failures and state store failures are returned
// as errors and produce no result. Config and template failures are reported
// inside the result.
func (e *Engine) Run(ctx context.Context, operation string, inv domain.Invocation) (res *domain.ComponentResult, err error) {
	scope := inv.Msg.Scope()
	event := &domain.InvocationEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventInvokeStart,
		},
		InvocationID: uuid.NewString(),
		Operation:    operation,
		Scope:        scope,
	}
	log := e.logger.With(
		"invocation_id", event.InvocationID,
		"operation", operation,
		"tenant_id", scope.TenantID,
		"environment_id", scope.EnvironmentID,
		"session_id", scope.SessionID,
	)

	if e.hooks.OnInvokeStart != nil {
		e.hooks.OnInvokeStart(ctx, event)
	}
	defer func() {
		done := *event
		done.Type = domain.EventInvokeDone
		done.Duration = time.Since(event.Timestamp)
		done.Timestamp = time.Now()
		switch {
		case err != nil:
			done.Outcome = domain.OutcomeOf(err)
		case res != nil && res.Error != nil:
			done.Outcome = res.Error.Kind
		}
		if e.hooks.OnInvokeDone != nil {
			e.hooks.OnInvokeDone(ctx, &done)
		}
	}()

	if operation != domain.OperationText {
		err := domain.NewUnsupportedOperation(operation)
		log.Warn("Invocation rejected", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.caps.EnforcesScope {
		if err := CheckScope(&inv.Msg); err != nil {
			log.Warn("Invocation rejected", "error", err)
			return nil, err
		}
	}

	if err := e.loadState(ctx, &inv, scope); err != nil {
		log.Error("State lookup failed", "error", err)
		return nil, err
	}

	cfg, err := DecodeConfig(inv.Config)
	if err != nil {
		log.Debug("Config rejected", "error", err)
		return domain.NewErrorResult(domain.KindInvalidInput, err.Error(), nil), nil
	}

	data, err := e.builder.Build(&inv)
	if err != nil {
		log.Debug("Context build failed", "error", err)
		return domain.NewErrorResult(domain.KindInvalidInput, err.Error(), nil), nil
	}

	outcome, err := e.render(ctx, cfg, data)
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		log.Debug("Template failed", "error", outcome.Err, "line", outcome.Err.Line, "column", outcome.Err.Column)
		return domain.NewErrorResult(domain.KindTemplateError, outcome.Err.Message, outcome.Err.Details()), nil
	}

	log.Debug("Invocation rendered", "wrap", cfg.Wrap, "output_path", cfg.EffectiveOutputPath())
	return domain.NewRenderedResult(ShapePayload(outcome.Text, cfg), Routing(cfg)), nil
}

// render normalizes and renders the template. Only host cancellation is
// returned as an error; engine failures become a failed outcome.
func (e *Engine) render(ctx context.Context, cfg domain.TemplateConfig, data map[string]any) (domain.RenderOutcome, error) {
	text, err := e.renderer.Render(ctx, Normalize(cfg.Text, e.caps.SupportsState), data)
	if err == nil {
		return domain.Rendered(text), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.RenderOutcome{}, ctxErr
	}
	var te *domain.TemplateError
	if errors.As(err, &te) {
		return domain.Failed(te), nil
	}
	return domain.Failed(&domain.TemplateError{Message: err.Error()}), nil
}

// loadState fills inv.State from the store when the invocation carries none.
// A missing entry is not an error.
func (e *Engine) loadState(ctx context.Context, inv *domain.Invocation, scope domain.Scope) error {
	if e.store == nil || inv.HasState() || !e.caps.SupportsState || !scope.Complete() {
		return nil
	}
	state, err := e.store.Load(ctx, scope)
	if errors.Is(err, domain.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load state for scope %s: %w", scope, err)
	}
	inv.State = state
	return nil
}
