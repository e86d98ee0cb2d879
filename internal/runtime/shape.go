package runtime

import (
	"strings"

	"github.com/aretw0/templates/pkg/domain"
)

// ShapePayload returns the rendered text bare when wrapping is off, or nested
// under the dotted output path otherwise. Empty path segments are dropped;
// a path with no segments left yields the bare text.
func ShapePayload(rendered string, cfg domain.TemplateConfig) any {
	if !cfg.Wrap {
		return rendered
	}

	segments := strings.Split(cfg.EffectiveOutputPath(), ".")
	var value any = rendered
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" {
			continue
		}
		value = map[string]any{segments[i]: value}
	}
	return value
}

// Routing returns the configured routing, or domain.DefaultRouting when blank.
func Routing(cfg domain.TemplateConfig) string {
	if strings.TrimSpace(cfg.Routing) == "" {
		return domain.DefaultRouting
	}
	return cfg.Routing
}
