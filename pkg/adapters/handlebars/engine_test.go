package handlebars

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Render(t *testing.T) {
	eng := New()
	ctx := context.Background()

	tests := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{
			name:     "nested path",
			template: "Hello {{user.name}}!",
			data:     map[string]any{"user": map[string]any{"name": "Alice"}},
			want:     "Hello Alice!",
		},
		{
			name:     "missing path renders empty",
			template: "Hello {{user.missing}}!",
			data:     map[string]any{"user": map[string]any{}},
			want:     "Hello !",
		},
		{
			name:     "double braces escape",
			template: "{{v}}",
			data:     map[string]any{"v": `<b>"x"</b>`},
			want:     "&lt;b&gt;&quot;x&quot;&lt;/b&gt;",
		},
		{
			name:     "triple braces do not escape",
			template: "{{{v}}}",
			data:     map[string]any{"v": `<b>"x"</b>`},
			want:     `<b>"x"</b>`,
		},
		{
			name:     "conditional",
			template: "{{#if flag}}yes{{else}}no{{/if}}",
			data:     map[string]any{"flag": false},
			want:     "no",
		},
		{
			name:     "iteration",
			template: "{{#each items}}[{{this}}]{{/each}}",
			data:     map[string]any{"items": []any{"a", "b"}},
			want:     "[a][b]",
		},
		{
			name:     "whole numbers render without decimals",
			template: "{{n}}",
			data:     map[string]any{"n": float64(2)},
			want:     "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.Render(ctx, tt.template, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_SyntaxError(t *testing.T) {
	eng := New()

	_, err := eng.Render(context.Background(), "line one\n{{#if}}", map[string]any{})
	require.Error(t, err)

	var te *domain.TemplateError
	require.True(t, errors.As(err, &te), "expected *domain.TemplateError, got %T", err)
	assert.NotEmpty(t, te.Message)
	assert.Equal(t, te.Message, te.Details()["error"])
}

func TestEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Render(ctx, "{{x}}", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToTemplateError_Position(t *testing.T) {
	te := toTemplateError(errors.New("Parse error on line 3:\nExpecting ID, got: 'CLOSE'"))
	assert.Equal(t, 3, te.Line)
	assert.Zero(t, te.Column)
	assert.NotContains(t, te.Details(), "column")

	te = toTemplateError(errors.New("Evaluation error: boom"))
	assert.Zero(t, te.Line)
	assert.Nil(t, te.Details()["line"])
}
