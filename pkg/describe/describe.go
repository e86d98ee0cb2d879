package describe

import (
	"fmt"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

// Component identity.
const (
	ComponentName    = "templates"
	ComponentOrg     = "com.aretw0"
	ComponentVersion = "0.1.2"
	ComponentID      = "com.aretw0.component-templates"
	ComponentRole    = "tool"
)

// I18nText is a translatable label: a catalog key plus the fallback text.
type I18nText struct {
	Key      string `json:"key"`
	Fallback string `json:"fallback,omitempty"`
}

// NewText builds an I18nText.
func NewText(key, fallback string) I18nText {
	return I18nText{Key: key, Fallback: fallback}
}

// ComponentInfo is the identity record of the component.
type ComponentInfo struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	Role        string    `json:"role"`
	DisplayName *I18nText `json:"display_name,omitempty"`
}

// SchemaEnvelope wraps a schema as published in an operation.
type SchemaEnvelope struct {
	Schema *openapi3.Schema `json:"schema"`
}

// Operation describes one operation of the component.
type Operation struct {
	ID          string         `json:"id"`
	DisplayName *I18nText      `json:"display_name,omitempty"`
	Input       SchemaEnvelope `json:"input"`
	Output      SchemaEnvelope `json:"output"`
	Defaults    map[string]any `json:"defaults"`
	Redactions  []string       `json:"redactions"`
	Constraints map[string]any `json:"constraints"`
	SchemaHash  string         `json:"schema_hash"`
}

// Description is the full self-description returned by Describe.
type Description struct {
	Info                 ComponentInfo     `json:"info"`
	ProvidedCapabilities []string          `json:"provided_capabilities"`
	RequiredCapabilities []string          `json:"required_capabilities"`
	Metadata             map[string]string `json:"metadata"`
	Operations           []Operation       `json:"operations"`
	ConfigSchema         *openapi3.Schema  `json:"config_schema"`
}

// Info returns the identity record.
func Info() ComponentInfo {
	name := NewText("templates.display_name", "Templates")
	return ComponentInfo{
		ID:          ComponentID,
		Version:     ComponentVersion,
		Role:        ComponentRole,
		DisplayName: &name,
	}
}

// Describe assembles the self-description of the text operation.
func Describe() (*Description, error) {
	input := InputSchema()
	output := OutputSchema()
	config := ConfigSchema()

	hash, err := SchemaHash(input, output, config)
	if err != nil {
		return nil, fmt.Errorf("schema hash: %w", err)
	}

	opName := NewText("templates.operation.text", "Render template text")
	return &Description{
		Info:                 Info(),
		ProvidedCapabilities: []string{},
		RequiredCapabilities: []string{},
		Metadata:             map[string]string{},
		Operations: []Operation{
			{
				ID:          domain.OperationText,
				DisplayName: &opName,
				Input:       SchemaEnvelope{Schema: input},
				Output:      SchemaEnvelope{Schema: output},
				Defaults:    map[string]any{},
				Redactions:  []string{},
				Constraints: map[string]any{},
				SchemaHash:  hash,
			},
		},
		ConfigSchema: config,
	}, nil
}
