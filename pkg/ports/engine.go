package ports

import (
	"context"

	"github.com/aretw0/templates/pkg/domain"
)

// TemplateEngine renders a template against a tree-shaped context.
// Implementations must resolve unknown paths to the empty string, escape values
// inserted with double braces and leave triple-brace values unescaped.
// Failures are reported as *domain.TemplateError; Line and Column are set only
// when the engine reports them.
type TemplateEngine interface {
	Render(ctx context.Context, template string, data map[string]any) (string, error)
}

// Invoker is the orchestrator surface used by adapters (HTTP, MCP, stdio).
type Invoker interface {
	// Invoke decodes raw transport bytes, runs the operation and encodes the result.
	Invoke(ctx context.Context, operation string, input []byte) ([]byte, error)

	// Run executes an already decoded invocation.
	Run(ctx context.Context, operation string, inv domain.Invocation) (*domain.ComponentResult, error)
}
