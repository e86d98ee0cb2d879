package runner

import (
	"context"
	"encoding/json"

	"github.com/aretw0/templates/pkg/domain"
)

// echoInvoker accepts the text operation and echoes the raw invocation back.
type echoInvoker struct{}

func (echoInvoker) Invoke(_ context.Context, operation string, input []byte) ([]byte, error) {
	if operation != domain.OperationText {
		return nil, domain.NewUnsupportedOperation(operation)
	}
	if !json.Valid(input) {
		return nil, &domain.InvokeError{Kind: domain.KindInvalidInput, Message: "bad json"}
	}
	return input, nil
}

func (echoInvoker) Run(context.Context, string, domain.Invocation) (*domain.ComponentResult, error) {
	return domain.NewRenderedResult("echo", domain.DefaultRouting), nil
}
