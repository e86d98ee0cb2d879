/*
Package templates is a single-operation template rendering component for
message-processing pipelines.

Given an invocation (message envelope, configuration, payload and optional prior
state) it builds a rendering context, expands a Handlebars template against it
and returns the outcome in a fixed envelope:

	{"payload": ..., "state_updates": {}, "control": {"routing": "out"}, "error": null}

# Context

Templates see one namespace assembled with a fixed precedence. Earlier sources
are never overwritten by later ones:

  - msg: the message envelope
  - payload and payload_json
  - state and state_json (when state is supported)
  - node, node_id and node_payload (when node_id addresses state.nodes)
  - entries of state.input, then entries of state, unless they collide with a reserved key

Bare {{payload}} and {{state}} placeholders are rewritten to their JSON string aliases.

# Usage

	c, err := templates.New(templates.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	out, err := c.Invoke(ctx, "text", []byte(`{
		"config": {"text": "Hello {{payload.name}}"},
		"msg": {"id": "1", "channel": "chat", "tenant_id": "t", "environment_id": "e", "session_id": "s"},
		"payload": {"name": "Alice"}
	}`))

Scope failures and unknown operations are returned as errors; config and
template failures are reported inside the result.
*/
package templates
