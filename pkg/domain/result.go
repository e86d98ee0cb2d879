package domain

// ComponentError is the structured error attached to a ComponentResult.
type ComponentError struct {
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ComponentResult is the sole externally observed outcome of an invocation.
// It is built once per invocation and not mutated afterwards.
type ComponentResult struct {
	Payload      any             `json:"payload"`
	StateUpdates map[string]any  `json:"state_updates"`
	Control      map[string]any  `json:"control,omitempty"`
	Error        *ComponentError `json:"error,omitempty"`
}

// NewRenderedResult builds the success envelope.
func NewRenderedResult(payload any, routing string) *ComponentResult {
	return &ComponentResult{
		Payload:      payload,
		StateUpdates: map[string]any{},
		Control:      map[string]any{KeyRouting: routing},
	}
}

// NewErrorResult builds a failure envelope: null payload, empty state updates, no control.
func NewErrorResult(kind ErrorKind, message string, details map[string]any) *ComponentResult {
	return &ComponentResult{
		Payload:      nil,
		StateUpdates: map[string]any{},
		Error: &ComponentError{
			Kind:    kind,
			Message: message,
			Details: details,
		},
	}
}

// Failed reports whether the result carries an error.
func (r *ComponentResult) Failed() bool {
	return r.Error != nil
}

// RenderOutcome is either rendered text or a template failure.
type RenderOutcome struct {
	Text string
	Err  *TemplateError
}

// Rendered builds a successful outcome.
func Rendered(text string) RenderOutcome {
	return RenderOutcome{Text: text}
}

// Failed builds a failed outcome.
func Failed(err *TemplateError) RenderOutcome {
	return RenderOutcome{Err: err}
}

// OK reports whether rendering succeeded.
func (o RenderOutcome) OK() bool {
	return o.Err == nil
}
