package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/templates/internal/presentation/tui"
)

// WriteResult prints an encoded result: indented JSON by default, or
// markdown rendered with glamour when pretty is set.
func WriteResult(w io.Writer, result []byte, pretty bool) error {
	if pretty {
		md, err := tui.ResultMarkdown(result)
		if err != nil {
			return err
		}
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return fmt.Errorf("error rendering result: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return fmt.Errorf("error formatting result: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteJSON prints v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
