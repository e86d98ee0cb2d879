package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestBuildInvocation_FromFlags(t *testing.T) {
	raw, err := BuildInvocation(RenderOptions{
		Template:  "Hi {{payload.name}}",
		Payload:   `{"name":"Ana"}`,
		State:     "user: {name: Bob}",
		TenantID:  "t",
		EnvID:     "e",
		SessionID: "s",
		NoWrap:    true,
	}, nil)
	require.NoError(t, err)

	inv := decode(t, raw)
	assert.Equal(t, map[string]any{"text": "Hi {{payload.name}}", "wrap": false}, inv["config"])
	assert.Equal(t, map[string]any{"name": "Ana"}, inv["payload"])
	assert.Equal(t, map[string]any{"user": map[string]any{"name": "Bob"}}, inv["state"])

	msg := inv["msg"].(map[string]any)
	assert.Equal(t, "t", msg["tenant_id"])
	assert.Equal(t, "cli", msg["channel"])
}

func TestBuildInvocation_YAMLFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inv.yaml")
	content := `
config:
  templates:
    text: "Hello {{payload.name}}"
    output_path: reply.body
msg:
  id: m1
  channel: chat
  tenant_id: acme
  environment_id: prod
  session_id: s1
payload:
  name: Alice
  count: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	raw, err := BuildInvocation(RenderOptions{File: path, Routing: "next", SessionID: "s2"}, nil)
	require.NoError(t, err)

	inv := decode(t, raw)
	section := inv["config"].(map[string]any)["templates"].(map[string]any)
	assert.Equal(t, "next", section["routing"])
	assert.Equal(t, "reply.body", section["output_path"])
	assert.Equal(t, "s2", inv["msg"].(map[string]any)["session_id"])
	assert.Equal(t, "m1", inv["msg"].(map[string]any)["id"])
	assert.Equal(t, 2.0, inv["payload"].(map[string]any)["count"])
}

func TestBuildInvocation_Stdin(t *testing.T) {
	raw, err := BuildInvocation(RenderOptions{File: "-"}, strings.NewReader(`{"config":{"text":"x"},"payload":[1]}`))
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, decode(t, raw)["payload"])
}

func TestBuildInvocation_Errors(t *testing.T) {
	_, err := BuildInvocation(RenderOptions{File: "-"}, strings.NewReader(`[1,2]`))
	assert.Error(t, err)

	_, err = BuildInvocation(RenderOptions{Payload: "{unbalanced: ["}, nil)
	assert.Error(t, err)

	_, err = BuildInvocation(RenderOptions{File: filepath.Join(t.TempDir(), "missing.json")}, nil)
	assert.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteResult(&b, []byte(`{"payload":"<ok>","state_updates":{}}`), false))
	assert.Contains(t, b.String(), "\"payload\": \"<ok>\"")
}
