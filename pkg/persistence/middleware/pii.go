package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/ports"
)

// Mask replaces the value of every key that matches a PII pattern.
const Mask = "***"

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// CompilePatterns compiles the key patterns used by NewPIIMiddleware.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid mask pattern %q: %w", p, err)
		}
		out[i] = re
	}
	return out, nil
}

// NewPIIMiddleware creates a middleware that masks, on save, the values of
// keys matching any of the patterns. Nested objects and arrays are walked.
func NewPIIMiddleware(patterns []*regexp.Regexp) Middleware {
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, scope domain.Scope, state map[string]any) error {
	// The caller keeps its own copy untouched.
	masked, _ := domain.CloneState(state).(map[string]any)
	if masked == nil {
		masked = map[string]any{}
	}
	maskValue(masked, m.patterns)
	return m.next.Save(ctx, scope, masked)
}

func (m *piiMiddleware) Load(ctx context.Context, scope domain.Scope) (map[string]any, error) {
	return m.next.Load(ctx, scope)
}

func (m *piiMiddleware) Delete(ctx context.Context, scope domain.Scope) error {
	return m.next.Delete(ctx, scope)
}

func (m *piiMiddleware) List(ctx context.Context) ([]domain.Scope, error) {
	return m.next.List(ctx)
}

func maskValue(v any, patterns []*regexp.Regexp) {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if matchesAny(k, patterns) {
				val[k] = Mask
				continue
			}
			maskValue(item, patterns)
		}
	case []any:
		for _, item := range val {
			maskValue(item, patterns)
		}
	}
}

func matchesAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
