package runtime

import (
	"fmt"

	"github.com/aretw0/templates/pkg/describe"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecodeConfig validates and decodes the invocation config into a TemplateConfig.
//
// Two shapes are accepted: the component-scoped {"templates": {...}} form and
// the flat {...} form. Structural validation runs before decoding, so every
// error names the offending field. Null fields keep their defaults.
func DecodeConfig(raw any) (domain.TemplateConfig, error) {
	cfg := domain.NewTemplateConfig()

	obj, ok := raw.(map[string]any)
	if !ok {
		return cfg, fmt.Errorf("invalid config: expected an object, got %s", jsonKind(raw))
	}

	section := any(obj)
	if _, scoped := obj[domain.KeyTemplates]; scoped {
		if err := describe.ValidateScopedConfig(obj); err != nil {
			return cfg, err
		}
		section = obj[domain.KeyTemplates]
	} else if err := describe.ValidateConfig(obj); err != nil {
		return cfg, err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(section); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
