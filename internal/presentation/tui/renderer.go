package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// ResultMarkdown formats an encoded component result for human reading:
// the rendered text first, then routing, then any error.
func ResultMarkdown(result []byte) (string, error) {
	var res struct {
		Payload any            `json:"payload"`
		Control map[string]any `json:"control"`
		Error   *struct {
			Kind    string         `json:"kind"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(result, &res); err != nil {
		return "", fmt.Errorf("failed to decode result: %w", err)
	}

	var b strings.Builder
	if res.Error != nil {
		fmt.Fprintf(&b, "## %s\n\n%s\n", res.Error.Kind, res.Error.Message)
		if line, ok := res.Error.Details["line"]; ok {
			fmt.Fprintf(&b, "\n- line: %v\n", line)
		}
		if col, ok := res.Error.Details["column"]; ok {
			fmt.Fprintf(&b, "- column: %v\n", col)
		}
		return b.String(), nil
	}

	b.WriteString("## Rendered\n\n")
	if text, ok := res.Payload.(string); ok {
		b.WriteString(text)
		b.WriteString("\n")
	} else {
		pretty, err := json.MarshalIndent(res.Payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode payload: %w", err)
		}
		fmt.Fprintf(&b, "```json\n%s\n```\n", pretty)
	}
	if routing, ok := res.Control["routing"]; ok {
		fmt.Fprintf(&b, "\n_routing: %v_\n", routing)
	}
	return b.String(), nil
}
