package domain

import (
	"encoding/json"
	"fmt"
)

// Invocation is one request to render a template.
// It is owned by a single Run call and never persisted.
type Invocation struct {
	Config  any             `json:"config" yaml:"config"`
	Msg     MessageEnvelope `json:"msg" yaml:"msg"`
	Payload any             `json:"payload" yaml:"payload"`

	// State is the prior pipeline state; absent or null means an empty object.
	State any `json:"state,omitempty" yaml:"state,omitempty"`

	// NodeID addresses state.nodes[NodeID] when node addressing is supported.
	NodeID string `json:"node_id,omitempty" yaml:"node_id,omitempty"`

	// Connections are carried for schema compatibility and unused by rendering.
	Connections []string `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// UnmarshalJSON decodes an invocation keeping integers in config, payload and
// state exact (see DecodeJSON).
func (i *Invocation) UnmarshalJSON(data []byte) error {
	type plain Invocation
	var p plain
	if err := DecodeJSON(data, &p); err != nil {
		return err
	}
	p.Config = NormalizeNumbers(p.Config)
	p.Payload = NormalizeNumbers(p.Payload)
	p.State = NormalizeNumbers(p.State)
	*i = Invocation(p)
	return nil
}

// HasState reports whether the invocation carried an explicit state value.
func (i *Invocation) HasState() bool {
	return i.State != nil
}

// StateObject returns the state as an object, or an empty object when the
// state is absent or not an object.
func (i *Invocation) StateObject() map[string]any {
	if obj, ok := i.State.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// MessageEnvelope is the channel message that triggered the invocation.
type MessageEnvelope struct {
	ID            string `json:"id" yaml:"id"`
	Channel       string `json:"channel" yaml:"channel"`
	TenantID      string `json:"tenant_id" yaml:"tenant_id"`
	EnvironmentID string `json:"environment_id" yaml:"environment_id"`
	SessionID     string `json:"session_id" yaml:"session_id"`

	CorrelationID string            `json:"correlation_id,omitempty" yaml:"correlation_id,omitempty"`
	ReplyScope    string            `json:"reply_scope,omitempty" yaml:"reply_scope,omitempty"`
	From          *Actor            `json:"from,omitempty" yaml:"from,omitempty"`
	To            []Destination     `json:"to,omitempty" yaml:"to,omitempty"`
	Text          string            `json:"text,omitempty" yaml:"text,omitempty"`
	Attachments   []Attachment      `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Actor identifies the sender of a message.
type Actor struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Destination identifies a recipient of a message.
type Destination struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Attachment is a file or media reference carried by a message.
type Attachment struct {
	MimeType string `json:"mime_type" yaml:"mime_type"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Size     int64  `json:"size,omitempty" yaml:"size,omitempty"`
}

// Scope returns the tenant/environment/session triple of the message.
func (m *MessageEnvelope) Scope() Scope {
	return Scope{
		TenantID:      m.TenantID,
		EnvironmentID: m.EnvironmentID,
		SessionID:     m.SessionID,
	}
}

// AsMap serializes the envelope into the JSON object exposed to templates as "msg".
func (m *MessageEnvelope) AsMap() (map[string]any, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message envelope: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message envelope: %w", err)
	}
	return out, nil
}
