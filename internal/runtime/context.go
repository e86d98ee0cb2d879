package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/templates/pkg/domain"
)

// ContextBuilder assembles the evaluation context of one invocation.
// Which sources it reads is decided by its capabilities.
type ContextBuilder struct {
	caps domain.Capabilities
}

// NewContextBuilder returns a builder for the given capabilities.
func NewContextBuilder(caps domain.Capabilities) *ContextBuilder {
	return &ContextBuilder{caps: caps}
}

// Build returns the evaluation context. Keys are inserted in precedence order
// and never overwritten:
//
//	msg, payload, payload_json, state, state_json,
//	node, node_id, node_payload,
//	entries of state.input, entries of state (except input).
//
// Flattened entries never shadow a reserved key. The only failure is a payload
// or state that cannot be encoded as JSON.
func (b *ContextBuilder) Build(inv *domain.Invocation) (map[string]any, error) {
	msg, err := inv.Msg.AsMap()
	if err != nil {
		return nil, err
	}
	payloadJSON, err := compactJSON(inv.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	data := map[string]any{
		domain.KeyMsg:         msg,
		domain.KeyPayload:     inv.Payload,
		domain.KeyPayloadJSON: payloadJSON,
	}

	if !b.caps.SupportsState {
		return data, nil
	}

	state := inv.State
	if state == nil {
		state = map[string]any{}
	}
	stateJSON, err := compactJSON(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	data[domain.KeyState] = state
	data[domain.KeyStateJSON] = stateJSON

	stateObj := inv.StateObject()

	if b.caps.SupportsNodeAddressing && inv.NodeID != "" {
		addNode(data, stateObj, inv.NodeID)
	}

	if input, ok := stateObj[domain.KeyInput].(map[string]any); ok {
		flatten(data, input, false)
	}
	flatten(data, stateObj, true)

	return data, nil
}

func addNode(data, state map[string]any, nodeID string) {
	nodes, ok := state[domain.KeyNodes].(map[string]any)
	if !ok {
		return
	}
	node, ok := nodes[nodeID].(map[string]any)
	if !ok {
		return
	}
	data[domain.KeyNode] = node
	data[domain.KeyNodeID] = nodeID
	if payload, ok := node[domain.KeyPayload]; ok {
		data[domain.KeyNodePayload] = payload
	}
}

// flatten copies unreserved entries of src into data without overwriting.
// Keys are visited in sorted order so the result is deterministic.
func flatten(data, src map[string]any, skipInput bool) {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if (skipInput && k == domain.KeyInput) || domain.IsReserved(k) {
			continue
		}
		if _, exists := data[k]; exists {
			continue
		}
		data[k] = src[k]
	}
}

// compactJSON encodes v without HTML escaping and without a trailing newline.
// The template engine escapes the result itself when it is inserted with double braces.
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
