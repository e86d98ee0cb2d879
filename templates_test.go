package templates_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/templates"
	"github.com/aretw0/templates/pkg/adapters/memory"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/observability"
	"github.com/aretw0/templates/pkg/qa"
	"github.com/aretw0/templates/pkg/runner"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scopedMsg = `{"id":"m1","channel":"chat","tenant_id":"acme","environment_id":"prod","session_id":"s1"}`

func invocationJSON(config, payload, state string) []byte {
	s := fmt.Sprintf(`{"config":%s,"msg":%s,"payload":%s`, config, scopedMsg, payload)
	if state != "" {
		s += `,"state":` + state
	}
	return []byte(s + "}")
}

func invoke(t *testing.T, c *templates.Component, input []byte) map[string]any {
	t.Helper()
	out, err := c.Invoke(context.Background(), domain.OperationText, input)
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal(out, &res))
	return res
}

func TestComponent_Scenarios(t *testing.T) {
	c, err := templates.New()
	require.NoError(t, err)

	t.Run("greeting", func(t *testing.T) {
		res := invoke(t, c, invocationJSON(
			`{"text":"Hello {{state.user.name}}! You asked: {{payload.text}}"}`,
			`{"text":"weather?"}`,
			`{"user":{"name":"Alice"}}`,
		))
		assert.Equal(t, map[string]any{"text": "Hello Alice! You asked: weather?"}, res["payload"])
		assert.Nil(t, res["error"])
	})

	t.Run("template error", func(t *testing.T) {
		res := invoke(t, c, invocationJSON(`{"text":"{{#if}}"}`, `{}`, ""))
		assert.Nil(t, res["payload"])
		assert.NotContains(t, res, "control")
		assert.Equal(t, map[string]any{}, res["state_updates"])
		errObj := res["error"].(map[string]any)
		assert.Equal(t, "TemplateError", errObj["kind"])
		assert.Contains(t, errObj["details"], "error")
	})

	t.Run("output path", func(t *testing.T) {
		res := invoke(t, c, invocationJSON(`{"text":"Hi","output_path":"reply.body","wrap":true}`, `{}`, ""))
		assert.Equal(t, map[string]any{"reply": map[string]any{"body": "Hi"}}, res["payload"])

		res = invoke(t, c, invocationJSON(`{"text":"Hi","output_path":"reply.body","wrap":false}`, `{}`, ""))
		assert.Equal(t, "Hi", res["payload"])
	})

	t.Run("bare payload placeholder", func(t *testing.T) {
		res := invoke(t, c, invocationJSON(`{"text":"payload={{payload}}"}`, `{"foo":"bar","count":2}`, ""))
		text := res["payload"].(map[string]any)["text"].(string)
		assert.Equal(t, "payload={&quot;count&quot;:2,&quot;foo&quot;:&quot;bar&quot;}", text)
		assert.NotContains(t, text, "\n")
	})

	t.Run("triple brace payload is raw json", func(t *testing.T) {
		res := invoke(t, c, invocationJSON(`{"text":"{{{payload}}}","wrap":false}`, `{"a":"<b>"}`, ""))
		assert.Equal(t, `{"a":"<b>"}`, res["payload"])
	})

	t.Run("bare state placeholder", func(t *testing.T) {
		res := invoke(t, c, invocationJSON(`{"text":"{{{ state }}}","wrap":false}`, `{}`, `{"k":1}`))
		assert.Equal(t, `{"k":1}`, res["payload"])
	})

	t.Run("invalid config is a result error", func(t *testing.T) {
		res := invoke(t, c, invocationJSON(`{"wrap":true}`, `{}`, ""))
		errObj := res["error"].(map[string]any)
		assert.Equal(t, "InvalidInput", errObj["kind"])
		assert.Contains(t, errObj["message"], "text")
		assert.Nil(t, res["payload"])
	})
}

func TestComponent_TopLevelErrors(t *testing.T) {
	c, err := templates.New()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("unsupported operation", func(t *testing.T) {
		_, err := c.Invoke(ctx, "html", []byte(`not even json`))
		assert.True(t, errors.Is(err, domain.ErrUnsupportedOperation))
		assert.Equal(t, "operation `html` is not supported; use `text`", err.Error())
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := c.Invoke(ctx, domain.OperationText, []byte(`{"config":`))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Setenv(runner.EnvMaxInputSize, "16")
		_, err := c.Invoke(ctx, domain.OperationText, invocationJSON(`{"text":"Hi"}`, `{}`, ""))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})

	t.Run("missing session", func(t *testing.T) {
		input := []byte(`{"config":{"text":"Hi"},"msg":{"tenant_id":"acme","environment_id":"prod","session_id":""},"payload":{}}`)
		_, err := c.Invoke(ctx, domain.OperationText, input)
		assert.True(t, errors.Is(err, domain.ErrInvalidScope))
		assert.Equal(t, domain.ScopeErrorMessage, err.Error())
	})
}

func TestComponent_Profiles(t *testing.T) {
	_, err := templates.New(templates.WithProfile("bogus"))
	assert.Error(t, err)

	legacy, err := templates.New(templates.WithProfile(domain.ProfileLegacy))
	require.NoError(t, err)
	assert.Equal(t, domain.Capabilities{}, legacy.Capabilities())

	// Legacy pipelines neither enforce scope nor expose state.
	input := []byte(`{"config":{"text":"[{{state.k}}]{{{state}}}","wrap":false},"msg":{},"payload":{},"state":{"k":"v"}}`)
	res := invoke(t, legacy, input)
	assert.Equal(t, "[]", res["payload"])
}

func TestComponent_StateStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, domain.Scope{TenantID: "acme", EnvironmentID: "prod", SessionID: "s1"},
		map[string]any{"input": map[string]any{"name": "Bob"}}))

	c, err := templates.New(templates.WithStateStore(store))
	require.NoError(t, err)

	res := invoke(t, c, invocationJSON(`{"text":"Hi {{name}}","wrap":false}`, `{}`, ""))
	assert.Equal(t, "Hi Bob", res["payload"])
}

func TestComponent_Metrics(t *testing.T) {
	m := observability.NewMetrics()
	c, err := templates.New(templates.WithMetrics(m))
	require.NoError(t, err)

	invoke(t, c, invocationJSON(`{"text":"Hi"}`, `{}`, ""))
	invoke(t, c, invocationJSON(`{"text":"{{#if}}"}`, `{}`, ""))
	_, _ = c.Invoke(context.Background(), "nope", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("text", observability.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("text", "TemplateError")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("nope", "UnsupportedOperation")))
}

type unreachableStore struct {
	*memory.Store
}

func (unreachableStore) Load(context.Context, domain.Scope) (map[string]any, error) {
	return nil, errors.New("connection refused")
}

func TestComponent_MetricsCountTopLevelFailures(t *testing.T) {
	m := observability.NewMetrics()
	c, err := templates.New(templates.WithMetrics(m), templates.WithStateStore(unreachableStore{memory.NewStore()}))
	require.NoError(t, err)

	_, err = c.Invoke(context.Background(), domain.OperationText, invocationJSON(`{"text":"Hi"}`, `{}`, ""))
	require.ErrorContains(t, err, "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Invoke(ctx, domain.OperationText, invocationJSON(`{"text":"Hi"}`, `{}`, `{}`))
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.Invocations.WithLabelValues("text", observability.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("text", string(domain.OutcomeError))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("text", string(domain.OutcomeCanceled))))
}

func TestComponent_ConcurrentTenantsStayIsolated(t *testing.T) {
	c, err := templates.New()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tenant := fmt.Sprintf("tenant-%d", i)
			input := fmt.Sprintf(`{"config":{"text":"{{secret}}","wrap":false},`+
				`"msg":{"tenant_id":%q,"environment_id":"prod","session_id":"s"},`+
				`"payload":{},"state":{"secret":%q}}`, tenant, tenant)
			out, err := c.Invoke(context.Background(), domain.OperationText, []byte(input))
			if !assert.NoError(t, err) {
				return
			}
			assert.True(t, strings.Contains(string(out), `"payload":"`+tenant+`"`))
		}()
	}
	wg.Wait()
}

func TestComponent_QA(t *testing.T) {
	c, err := templates.New()
	require.NoError(t, err)

	spec := c.QASpec(qa.ModeSetup)
	require.Len(t, spec.Questions, 1)
	assert.Equal(t, qa.QuestionTemplateText, spec.Questions[0].ID)

	merged := c.ApplyAnswers(qa.ModeSetup, map[string]any{"text": "old"}, "not-an-object")
	assert.Equal(t, map[string]any{"text": "old"}, merged)
}

func TestComponent_Describe(t *testing.T) {
	c, err := templates.New()
	require.NoError(t, err)

	d, err := c.Describe()
	require.NoError(t, err)
	assert.Equal(t, templates.Version, d.Info.Version)
	require.Len(t, d.Operations, 1)
	assert.Equal(t, domain.OperationText, d.Operations[0].ID)

	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
}

func TestComponent_IntegersStayExact(t *testing.T) {
	c, err := templates.New()
	require.NoError(t, err)

	res := invoke(t, c, invocationJSON(
		`{"text":"{{{payload}}}|{{payload.id}}|{{{state}}}|{{count}}|{{#if payload.zero}}yes{{else}}no{{/if}}|{{payload.ratio}}","wrap":false}`,
		`{"id":9007199254740993,"zero":0,"ratio":1.5}`,
		`{"count":9007199254740995}`,
	))
	assert.Equal(t,
		`{"id":9007199254740993,"ratio":1.5,"zero":0}|9007199254740993|{"count":9007199254740995}|9007199254740995|no|1.5`,
		res["payload"])
}
