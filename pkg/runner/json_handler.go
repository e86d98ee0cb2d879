package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/templates/internal/logging"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/ports"
)

// Request is one JSON-Lines input record.
type Request struct {
	ID         string          `json:"id,omitempty"`
	Operation  string          `json:"operation"`
	Invocation json.RawMessage `json:"invocation"`
}

// Response is one JSON-Lines output record. Exactly one of Result or Error is set.
type Response struct {
	ID     string          `json:"id,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorEnvelope  `json:"error,omitempty"`
}

// JSONHandler serves JSON-Lines requests: one request per input line,
// one response per output line, in order.
type JSONHandler struct {
	invoker ports.Invoker
	reader  io.Reader
	encoder *json.Encoder
	logger  *slog.Logger
}

// JSONHandlerOption configures a JSONHandler.
type JSONHandlerOption func(*JSONHandler)

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(logger *slog.Logger) JSONHandlerOption {
	return func(h *JSONHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewJSONHandler creates a handler for JSON IO. Nil reader and writer default
// to Stdin and Stdout.
func NewJSONHandler(invoker ports.Invoker, r io.Reader, w io.Writer, opts ...JSONHandlerOption) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	h := &JSONHandler{
		invoker: invoker,
		reader:  r,
		encoder: enc,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve processes lines until EOF or cancellation. Malformed lines produce an
// InvalidInput response and do not stop the loop.
func (h *JSONHandler) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(h.reader)
	// Room for a full-size invocation wrapped in a request envelope.
	scanner.Buffer(make([]byte, 0, 64*1024), MaxInputSize()+4096)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := h.encoder.Encode(h.handle(ctx, line)); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read requests: %w", err)
	}
	return nil
}

func (h *JSONHandler) handle(ctx context.Context, line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		h.logger.Warn("Malformed request line", "error", err)
		return Response{Error: NewErrorEnvelope(domain.NewInvalidInput(err))}
	}

	out, err := h.invoker.Invoke(ctx, req.Operation, req.Invocation)
	if err != nil {
		h.logger.Debug("Invocation failed", "id", req.ID, "error", err)
		return Response{ID: req.ID, Error: NewErrorEnvelope(err)}
	}
	return Response{ID: req.ID, Result: out}
}
