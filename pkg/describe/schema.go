package describe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/cespare/xxhash/v2"
	"github.com/getkin/kin-openapi/openapi3"
)

// SchemaKind names one of the published schemas.
type SchemaKind string

const (
	SchemaInput  SchemaKind = "input"
	SchemaOutput SchemaKind = "output"
	SchemaConfig SchemaKind = "config"
)

func boolPtr(b bool) *bool { return &b }

func forbidExtra(s *openapi3.Schema) *openapi3.Schema {
	s.AdditionalProperties = openapi3.AdditionalProperties{Has: boolPtr(false)}
	return s
}

func allowExtra(s *openapi3.Schema) *openapi3.Schema {
	s.AdditionalProperties = openapi3.AdditionalProperties{Has: boolPtr(true)}
	return s
}

// TemplateConfigSchema describes the template section of a config:
// {text, output_path?, wrap?, routing?}.
func TemplateConfigSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("text", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("output_path", openapi3.NewStringSchema().WithNullable()).
		WithProperty("wrap", openapi3.NewBoolSchema().WithNullable()).
		WithProperty("routing", openapi3.NewStringSchema().WithNullable())
	s.Required = []string{"text"}
	return forbidExtra(s)
}

// ConfigSchema describes the component-scoped config: {"templates": {...}}.
func ConfigSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty(domain.KeyTemplates, TemplateConfigSchema())
	s.Required = []string{domain.KeyTemplates}
	return forbidExtra(s)
}

func messageSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("channel", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("tenant_id", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("environment_id", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("session_id", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("text", openapi3.NewStringSchema())
	s.Required = []string{"id", "channel"}
	return allowExtra(s)
}

func payloadSchema() *openapi3.Schema {
	return openapi3.NewOneOfSchema(
		allowExtra(openapi3.NewObjectSchema().WithProperty("text", openapi3.NewStringSchema())),
		openapi3.NewStringSchema(),
		openapi3.NewInt64Schema(),
		openapi3.NewFloat64Schema(),
		openapi3.NewBoolSchema(),
		openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()),
	).WithNullable()
}

// InputSchema describes an invocation.
func InputSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("config", ConfigSchema()).
		WithProperty("msg", messageSchema()).
		WithProperty("payload", payloadSchema()).
		WithProperty("state", allowExtra(openapi3.NewObjectSchema()).WithNullable()).
		WithProperty("node_id", openapi3.NewStringSchema().WithNullable()).
		WithProperty("connections", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema().WithMinLength(1)))
	s.Required = []string{"config", "msg", "payload"}
	return forbidExtra(s)
}

// OutputSchema describes a ComponentResult.
func OutputSchema() *openapi3.Schema {
	payload := openapi3.NewOneOfSchema(
		allowExtra(openapi3.NewObjectSchema().WithProperty("text", openapi3.NewStringSchema())),
		openapi3.NewStringSchema(),
	).WithNullable()

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("kind", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("message", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("details", allowExtra(openapi3.NewObjectSchema().
			WithProperty("error", openapi3.NewStringSchema()).
			WithProperty("line", openapi3.NewInt64Schema()).
			WithProperty("column", openapi3.NewInt64Schema())))
	errorSchema.Required = []string{"kind", "message"}

	s := openapi3.NewObjectSchema().
		WithProperty("payload", payload).
		WithProperty("state_updates", allowExtra(openapi3.NewObjectSchema())).
		WithProperty("control", allowExtra(openapi3.NewObjectSchema().
			WithProperty(domain.KeyRouting, openapi3.NewStringSchema().WithMinLength(1)))).
		WithProperty("error", forbidExtra(errorSchema))
	return forbidExtra(s)
}

// SchemaFor returns the schema of the given kind.
func SchemaFor(kind SchemaKind) (*openapi3.Schema, error) {
	switch kind {
	case SchemaInput:
		return InputSchema(), nil
	case SchemaOutput:
		return OutputSchema(), nil
	case SchemaConfig:
		return ConfigSchema(), nil
	default:
		return nil, fmt.Errorf("unknown schema kind %q (want input, output or config)", kind)
	}
}

// SchemaHash fingerprints the three operation schemas.
// Schemas marshal with sorted keys, so the hash is stable across runs.
func SchemaHash(input, output, config *openapi3.Schema) (string, error) {
	h := xxhash.New()
	for _, s := range []*openapi3.Schema{input, output, config} {
		raw, err := json.Marshal(s)
		if err != nil {
			return "", fmt.Errorf("failed to marshal schema: %w", err)
		}
		_, _ = h.Write(raw)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// ValidateConfig checks a template config section against TemplateConfigSchema.
// The error names the offending field.
func ValidateConfig(section any) error {
	if err := TemplateConfigSchema().VisitJSON(section); err != nil {
		return schemaErrorMessage(err)
	}
	return nil
}

func schemaErrorMessage(err error) error {
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		path := strings.Join(se.JSONPointer(), ".")
		if path == "" {
			return fmt.Errorf("invalid config: %s", se.Reason)
		}
		return fmt.Errorf("invalid config at %s: %s", path, se.Reason)
	}
	return fmt.Errorf("invalid config: %w", err)
}

// ValidateScopedConfig checks a component-scoped config ({"templates": {...}})
// against ConfigSchema.
func ValidateScopedConfig(config any) error {
	if err := ConfigSchema().VisitJSON(config); err != nil {
		return schemaErrorMessage(err)
	}
	return nil
}
