package runtime

import (
	"testing"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopedMsg() domain.MessageEnvelope {
	return domain.MessageEnvelope{
		ID:            "m1",
		Channel:       "chat",
		TenantID:      "acme",
		EnvironmentID: "prod",
		SessionID:     "s1",
	}
}

func TestContextBuilder_Precedence(t *testing.T) {
	inv := domain.Invocation{
		Msg:     scopedMsg(),
		Payload: map[string]any{"text": "hi"},
		State: map[string]any{
			"payload": "shadowed",
			"shared":  "from-state",
			"plain":   1.0,
			"input": map[string]any{
				"shared": "from-input",
				"msg":    "shadowed",
				"extra":  true,
			},
		},
	}

	data, err := NewContextBuilder(domain.DefaultCapabilities()).Build(&inv)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"text": "hi"}, data["payload"])
	assert.Equal(t, `{"text":"hi"}`, data["payload_json"])
	assert.Equal(t, "from-input", data["shared"])
	assert.Equal(t, 1.0, data["plain"])
	assert.Equal(t, true, data["extra"])
	assert.Equal(t, inv.State, data["state"])
	assert.NotContains(t, data, "input")

	msg, ok := data["msg"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "acme", msg["tenant_id"])
}

func TestContextBuilder_NodeAddressing(t *testing.T) {
	node := map[string]any{"payload": map[string]any{"score": 3.0}, "status": "done"}
	inv := domain.Invocation{
		Msg:     scopedMsg(),
		Payload: nil,
		NodeID:  "n1",
		State: map[string]any{
			"nodes": map[string]any{"n1": node, "n2": "not-an-object"},
		},
	}

	data, err := NewContextBuilder(domain.DefaultCapabilities()).Build(&inv)
	require.NoError(t, err)

	want := map[string]any{
		"node":         node,
		"node_id":      "n1",
		"node_payload": map[string]any{"score": 3.0},
	}
	got := map[string]any{
		"node":         data["node"],
		"node_id":      data["node_id"],
		"node_payload": data["node_payload"],
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("node keys mismatch (-want +got):\n%s", diff)
	}

	t.Run("non-object node is absent", func(t *testing.T) {
		inv.NodeID = "n2"
		data, err := NewContextBuilder(domain.DefaultCapabilities()).Build(&inv)
		require.NoError(t, err)
		assert.NotContains(t, data, "node")
		assert.NotContains(t, data, "node_id")
		assert.NotContains(t, data, "node_payload")
	})

	t.Run("missing node is absent", func(t *testing.T) {
		inv.NodeID = "nope"
		data, err := NewContextBuilder(domain.DefaultCapabilities()).Build(&inv)
		require.NoError(t, err)
		assert.NotContains(t, data, "node")
	})

	t.Run("ignored without node addressing", func(t *testing.T) {
		inv.NodeID = "n1"
		caps := domain.Capabilities{SupportsState: true, EnforcesScope: true}
		data, err := NewContextBuilder(caps).Build(&inv)
		require.NoError(t, err)
		assert.NotContains(t, data, "node")
	})
}

func TestContextBuilder_Legacy(t *testing.T) {
	inv := domain.Invocation{
		Msg:     scopedMsg(),
		Payload: "p",
		State:   map[string]any{"name": "Alice"},
	}

	data, err := NewContextBuilder(domain.Capabilities{}).Build(&inv)
	require.NoError(t, err)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"msg", "payload", "payload_json"}, keys)
}

func TestContextBuilder_DefaultState(t *testing.T) {
	inv := domain.Invocation{Msg: scopedMsg(), Payload: map[string]any{}}

	data, err := NewContextBuilder(domain.DefaultCapabilities()).Build(&inv)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, data["state"])
	assert.Equal(t, "{}", data["state_json"])
}

func TestContextBuilder_PayloadJSONNotHTMLEscaped(t *testing.T) {
	inv := domain.Invocation{Msg: scopedMsg(), Payload: map[string]any{"html": "<b>&</b>"}}

	data, err := NewContextBuilder(domain.DefaultCapabilities()).Build(&inv)
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<b>&</b>"}`, data["payload_json"])
}

func TestContextBuilder_UnencodablePayload(t *testing.T) {
	inv := domain.Invocation{Msg: scopedMsg(), Payload: make(chan int)}

	_, err := NewContextBuilder(domain.DefaultCapabilities()).Build(&inv)
	assert.Error(t, err)
}
