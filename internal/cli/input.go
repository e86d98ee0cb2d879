package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/templates/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ReadSource reads a file, or stdin when path is "-".
func ReadSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// DecodeDocument parses JSON or YAML into a JSON-shaped value.
// YAML is used for .yaml and .yml names; anything else is JSON.
func DecodeDocument(name string, data []byte) (any, error) {
	var v any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("error parsing YAML %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("error parsing JSON %s: %w", name, err)
		}
	}
	return v, nil
}

// ParseValue parses an inline flag value as JSON, falling back to YAML so
// that shorthand like `name: Alice` works on the command line.
func ParseValue(flag, raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("error parsing --%s: %w", flag, err)
	}
	return v, nil
}

// RenderOptions describe an invocation assembled from flags, optionally on
// top of an invocation file.
type RenderOptions struct {
	File       string
	Template   string
	Payload    string
	State      string
	TenantID   string
	EnvID      string
	SessionID  string
	NodeID     string
	OutputPath string
	NoWrap     bool
	Routing    string
}

// BuildInvocation returns the JSON bytes of the invocation described by opts.
// Flags override the corresponding fields of the file.
func BuildInvocation(opts RenderOptions, stdin io.Reader) ([]byte, error) {
	doc := map[string]any{}
	if opts.File != "" {
		data, err := ReadSource(opts.File, stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading invocation: %w", err)
		}
		v, err := DecodeDocument(opts.File, data)
		if err != nil {
			return nil, err
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invocation %s must be an object", opts.File)
		}
		doc = obj
	}

	if err := applyOverrides(doc, opts); err != nil {
		return nil, err
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding invocation: %w", err)
	}
	return out, nil
}

func applyOverrides(doc map[string]any, opts RenderOptions) error {
	cfg, _ := doc["config"].(map[string]any)
	if cfg == nil {
		cfg = map[string]any{}
	}
	section := cfg
	if scoped, ok := cfg[domain.KeyTemplates].(map[string]any); ok {
		section = scoped
	}
	if opts.Template != "" {
		section["text"] = opts.Template
	}
	if opts.OutputPath != "" {
		section["output_path"] = opts.OutputPath
	}
	if opts.NoWrap {
		section["wrap"] = false
	}
	if opts.Routing != "" {
		section["routing"] = opts.Routing
	}
	doc["config"] = cfg

	msg, _ := doc["msg"].(map[string]any)
	if msg == nil {
		msg = map[string]any{}
	}
	setDefault(msg, "id", "cli")
	setDefault(msg, "channel", "cli")
	setString(msg, "tenant_id", opts.TenantID)
	setString(msg, "environment_id", opts.EnvID)
	setString(msg, "session_id", opts.SessionID)
	setDefault(msg, "tenant_id", "local")
	setDefault(msg, "environment_id", "dev")
	setDefault(msg, "session_id", "cli")
	doc["msg"] = msg

	if opts.Payload != "" {
		v, err := ParseValue("payload", opts.Payload)
		if err != nil {
			return err
		}
		doc["payload"] = v
	}
	if _, ok := doc["payload"]; !ok {
		doc["payload"] = map[string]any{}
	}
	if opts.State != "" {
		v, err := ParseValue("state", opts.State)
		if err != nil {
			return err
		}
		doc["state"] = v
	}
	if opts.NodeID != "" {
		doc["node_id"] = opts.NodeID
	}
	return nil
}

func setDefault(m map[string]any, key, value string) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

func setString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
