package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRender(t *testing.T, s *Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolRender
	req.Params.Arguments = args

	res, err := s.handleRender(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := templates.New()
	require.NoError(t, err)
	return NewServer(c, nil)
}

func TestRenderTool(t *testing.T) {
	s := newTestServer(t)

	res := callRender(t, s, map[string]any{
		"invocation": `{"config":{"text":"Hi {{payload.who}}","wrap":false},` +
			`"msg":{"tenant_id":"t","environment_id":"e","session_id":"s"},"payload":{"who":"MCP"}}`,
	})

	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"payload":"Hi MCP","state_updates":{},"control":{"routing":"out"}}`, resultText(t, res))
}

func TestRenderTool_Errors(t *testing.T) {
	s := newTestServer(t)

	res := callRender(t, s, map[string]any{})
	assert.True(t, res.IsError)

	res = callRender(t, s, map[string]any{"operation": "html", "invocation": "{}"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "UnsupportedOperation")

	res = callRender(t, s, map[string]any{"invocation": `{"config":{"text":"x"},"msg":{},"payload":{}}`})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "InvalidScope")
}
