package runner

import (
	"context"
	"encoding/json"

	"github.com/aretw0/templates/pkg/ports"
)

// EventType names a streaming event.
type EventType string

const (
	EventProgress EventType = "progress"
	EventData     EventType = "data"
	EventDone     EventType = "done"
	EventError    EventType = "error"
)

// Event is one frame of a streamed invocation.
type Event struct {
	Type     EventType       `json:"type"`
	Progress int             `json:"progress,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    *ErrorEnvelope  `json:"error,omitempty"`
}

// Stream runs one invocation and frames its outcome as events:
// progress, data, done on success, or progress then a single error event.
// The channel is closed after the last event, or early when ctx is done.
func Stream(ctx context.Context, invoker ports.Invoker, operation string, input []byte) <-chan Event {
	events := make(chan Event, 3)

	go func() {
		defer close(events)

		send := func(e Event) bool {
			select {
			case events <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(Event{Type: EventProgress, Progress: 0}) {
			return
		}

		out, err := invoker.Invoke(ctx, operation, input)
		if err != nil {
			send(Event{Type: EventError, Error: NewErrorEnvelope(err)})
			return
		}

		if !send(Event{Type: EventData, Data: out}) {
			return
		}
		send(Event{Type: EventDone, Progress: 100})
	}()

	return events
}

// Collect drains a stream into a slice.
func Collect(events <-chan Event) []Event {
	var all []Event
	for e := range events {
		all = append(all, e)
	}
	return all
}
