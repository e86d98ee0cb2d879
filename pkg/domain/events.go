package domain

import (
	"context"
	"errors"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInvokeStart EventType = "invoke_start"
	EventInvokeDone  EventType = "invoke_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// InvocationEvent describes one pass through the orchestrator.
type InvocationEvent struct {
	EventBase
	InvocationID string `json:"invocation_id"`
	Operation    string `json:"operation"`
	Scope        Scope  `json:"scope"`

	// Outcome is empty on success. Otherwise it is the ErrorKind of the result
	// or of the top-level failure (see OutcomeOf).
	Outcome  ErrorKind     `json:"outcome,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Outcomes of top-level failures that carry no ErrorKind.
const (
	OutcomeCanceled ErrorKind = "Canceled"
	OutcomeError    ErrorKind = "Error"
)

// OutcomeOf classifies a top-level failure. It is never empty for a non-nil error.
func OutcomeOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if kind := KindOf(err); kind != "" {
		return kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return OutcomeCanceled
	}
	return OutcomeError
}

// LifecycleHooks defines callbacks for component observability.
type LifecycleHooks struct {
	OnInvokeStart func(context.Context, *InvocationEvent)
	OnInvokeDone  func(context.Context, *InvocationEvent)
}
