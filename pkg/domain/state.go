package domain

import (
	"net/url"
	"strings"
)

// Scope is the tenant/environment/session triple that isolates invocations.
type Scope struct {
	TenantID      string `json:"tenant_id"`
	EnvironmentID string `json:"environment_id"`
	SessionID     string `json:"session_id"`
}

// Complete reports whether every identifier of the scope is non-empty.
func (s Scope) Complete() bool {
	return s.TenantID != "" && s.EnvironmentID != "" && s.SessionID != ""
}

// Key joins the scope into a single storage key segment.
// Each identifier is query-escaped so ':' inside an id cannot collide with the separator.
func (s Scope) Key() string {
	return strings.Join([]string{
		url.QueryEscape(s.TenantID),
		url.QueryEscape(s.EnvironmentID),
		url.QueryEscape(s.SessionID),
	}, ":")
}

func (s Scope) String() string {
	return s.Key()
}

// CloneState returns a deep copy of a JSON-shaped value so stores and callers
// never share nested maps or slices.
func CloneState(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = CloneState(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneState(item)
		}
		return out
	default:
		return val
	}
}
