package runtime

import (
	"testing"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	t.Run("flat form with defaults", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]any{"text": "Hi"})
		require.NoError(t, err)
		assert.Equal(t, domain.TemplateConfig{Text: "Hi", Wrap: true}, cfg)
	})

	t.Run("scoped form", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]any{
			"templates": map[string]any{
				"text":        "Hi",
				"output_path": "reply.body",
				"wrap":        false,
				"routing":     "next",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TemplateConfig{Text: "Hi", OutputPath: "reply.body", Wrap: false, Routing: "next"}, cfg)
	})

	t.Run("null fields keep defaults", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]any{"text": "Hi", "wrap": nil, "output_path": nil})
		require.NoError(t, err)
		assert.True(t, cfg.Wrap)
		assert.Empty(t, cfg.OutputPath)
	})

	failures := map[string]any{
		"not an object":       "Hi",
		"null":                nil,
		"missing text":        map[string]any{"wrap": true},
		"empty text":          map[string]any{"text": ""},
		"unknown field":       map[string]any{"text": "Hi", "extra": "x"},
		"wrong type":          map[string]any{"text": "Hi", "wrap": "yes"},
		"scoped missing text": map[string]any{"templates": map[string]any{}},
		"scoped extra key":    map[string]any{"templates": map[string]any{"text": "Hi"}, "other": true},
	}
	for name, raw := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeConfig(raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}
