package tui

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/aretw0/templates/pkg/qa"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message  string
	Default  string
	Help     string
	Required bool
}

// Asker abstracts the prompt implementation so the wizard can be tested
// without a real terminal.
type Asker interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

// SurveyAsker prompts on the terminal with survey.
type SurveyAsker struct{}

func (SurveyAsker) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", err
	}
	return out, nil
}

// AskQuestions asks every question of spec and returns the answers keyed by question id.
func AskQuestions(ctx context.Context, asker Asker, spec qa.Spec) (map[string]string, error) {
	answers := make(map[string]string, len(spec.Questions))
	for _, q := range spec.Questions {
		cfg := InputConfig{
			Message:  q.Label.Fallback,
			Required: q.Required,
		}
		if def, ok := q.Default.(string); ok {
			cfg.Default = def
		}
		if q.Help != nil {
			cfg.Help = q.Help.Fallback
		}
		answer, err := asker.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		answers[q.ID] = answer
	}
	return answers, nil
}
