package domain

// TemplateConfig is the validated configuration of the text operation.
type TemplateConfig struct {
	// Text is the template source. Required and non-empty.
	Text string `json:"text" yaml:"text" mapstructure:"text"`

	// OutputPath is the dotted path the rendered text is nested under when Wrap is set.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty" mapstructure:"output_path"`

	// Wrap nests the rendered text into an object skeleton. Defaults to true.
	Wrap bool `json:"wrap" yaml:"wrap" mapstructure:"wrap"`

	// Routing is emitted as control.routing; blank means DefaultRouting.
	Routing string `json:"routing,omitempty" yaml:"routing,omitempty" mapstructure:"routing"`
}

// NewTemplateConfig returns a config carrying the defaults (Wrap enabled).
func NewTemplateConfig() TemplateConfig {
	return TemplateConfig{Wrap: true}
}

// EffectiveOutputPath returns OutputPath or DefaultOutputPath when empty.
func (c TemplateConfig) EffectiveOutputPath() string {
	if c.OutputPath == "" {
		return DefaultOutputPath
	}
	return c.OutputPath
}
