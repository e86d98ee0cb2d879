// Package handlebars adapts the raymond Handlebars implementation to ports.TemplateEngine.
package handlebars

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/aymerick/raymond"
)

// Engine renders Handlebars templates.
// Each call parses the template afresh; nothing is cached between invocations.
type Engine struct{}

// New creates a Handlebars engine.
func New() *Engine {
	return &Engine{}
}

// Render parses and executes the template against data.
// Missing paths render as the empty string.
func (e *Engine) Render(ctx context.Context, template string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tpl, err := raymond.Parse(template)
	if err != nil {
		return "", toTemplateError(err)
	}

	out, err := tpl.Exec(data)
	if err != nil {
		return "", toTemplateError(err)
	}
	return out, nil
}

var lineRe = regexp.MustCompile(`(?i)\bline (\d+)`)

// toTemplateError extracts the line from the engine message. raymond reports
// no column, so Column stays zero.
func toTemplateError(err error) *domain.TemplateError {
	msg := strings.TrimSpace(err.Error())
	te := &domain.TemplateError{Message: msg}
	if m := lineRe.FindStringSubmatch(msg); m != nil {
		te.Line, _ = strconv.Atoi(m[1])
	}
	return te
}
