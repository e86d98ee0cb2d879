// Package qa describes the guided configuration (setup wizard) of the component.
//
// It publishes the questions a host asks when configuring the text operation
// and merges answers into an existing configuration. It never affects rendering.
package qa

import (
	"fmt"

	"github.com/aretw0/templates/pkg/describe"
)

// Mode selects the configuration flow.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeSetup   Mode = "setup"
	ModeUpgrade Mode = "upgrade"
	ModeRemove  Mode = "remove"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeDefault, ModeSetup, ModeUpgrade, ModeRemove}

// ParseMode resolves a mode name; the empty string is ModeDefault.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeDefault, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown qa mode %q", s)
}

// QuestionKind is the input widget a question expects.
type QuestionKind string

const (
	KindText QuestionKind = "text"
)

// Question is one configuration prompt.
type Question struct {
	ID       string             `json:"id"`
	Label    describe.I18nText  `json:"label"`
	Help     *describe.I18nText `json:"help,omitempty"`
	Kind     QuestionKind       `json:"kind"`
	Required bool               `json:"required"`
	Default  any                `json:"default,omitempty"`
}

// Spec is the question list for one mode.
type Spec struct {
	Mode        Mode               `json:"mode"`
	Title       describe.I18nText  `json:"title"`
	Description *describe.I18nText `json:"description,omitempty"`
	Questions   []Question         `json:"questions"`
	Defaults    map[string]any     `json:"defaults"`
}

// QuestionTemplateText is the id of the template text question.
const QuestionTemplateText = "templates.text"

// SpecFor returns the questions asked in mode.
func SpecFor(mode Mode) Spec {
	return Spec{
		Mode:  mode,
		Title: describe.NewText("templates.qa.title", "Templates configuration"),
		Questions: []Question{
			{
				ID:       QuestionTemplateText,
				Label:    describe.NewText("templates.qa.text.label", "Template text"),
				Kind:     KindText,
				Required: true,
				Default:  "Hello {{name}}",
			},
		},
		Defaults: map[string]any{},
	}
}

// ApplyAnswers merges answers into current. An object of answers replaces the
// configuration; otherwise an object current config is kept; otherwise the
// result is an empty object.
func ApplyAnswers(mode Mode, current, answers any) map[string]any {
	_ = mode
	if obj, ok := answers.(map[string]any); ok {
		return obj
	}
	if obj, ok := current.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// ConfigFromAnswers turns flat question answers ({"templates.text": "..."})
// into the component-scoped config shape.
func ConfigFromAnswers(answers map[string]string) map[string]any {
	section := map[string]any{}
	if text, ok := answers[QuestionTemplateText]; ok {
		section["text"] = text
	}
	return map[string]any{"templates": section}
}
