package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable category carried by every failure.
type ErrorKind string

const (
	KindInvalidInput         ErrorKind = "InvalidInput"
	KindInvalidScope         ErrorKind = "InvalidScope"
	KindUnsupportedOperation ErrorKind = "UnsupportedOperation"
	KindTemplateError        ErrorKind = "TemplateError"
)

// ErrInvalidInput is matched by top-level failures caused by malformed transport input.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidScope is matched by invocations missing tenant/environment/session identifiers.
var ErrInvalidScope = errors.New("invalid scope")

// ErrUnsupportedOperation is matched by calls naming an operation other than OperationText.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrStateNotFound is returned by state stores when no state exists for a scope.
var ErrStateNotFound = errors.New("state not found")

// ScopeErrorMessage is the fixed message of InvalidScope failures.
const ScopeErrorMessage = "missing scope identifiers (tenant/env/session)"

// InvokeError is a top-level failure: the invocation produced no ComponentResult.
type InvokeError struct {
	Kind    ErrorKind
	Message string
}

func (e *InvokeError) Error() string {
	return e.Message
}

// Unwrap maps the kind to its sentinel so callers can use errors.Is.
func (e *InvokeError) Unwrap() error {
	switch e.Kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindInvalidScope:
		return ErrInvalidScope
	case KindUnsupportedOperation:
		return ErrUnsupportedOperation
	}
	return nil
}

// NewInvalidInput builds an InvalidInput failure from a decoding or validation error.
func NewInvalidInput(err error) *InvokeError {
	return &InvokeError{Kind: KindInvalidInput, Message: err.Error()}
}

// NewInvalidScope builds the fail-closed scope failure.
func NewInvalidScope() *InvokeError {
	return &InvokeError{Kind: KindInvalidScope, Message: ScopeErrorMessage}
}

// NewUnsupportedOperation names both the requested and the supported operation.
func NewUnsupportedOperation(requested string) *InvokeError {
	return &InvokeError{
		Kind:    KindUnsupportedOperation,
		Message: fmt.Sprintf("operation `%s` is not supported; use `%s`", requested, OperationText),
	}
}

// KindOf returns the ErrorKind of err, or "" when err is not an InvokeError.
func KindOf(err error) ErrorKind {
	var ie *InvokeError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

// TemplateError is a syntax or evaluation failure reported by the template engine.
// Line and Column are 1-based; zero means unknown.
type TemplateError struct {
	Message string
	Line    int
	Column  int
}

func (e *TemplateError) Error() string {
	return e.Message
}

// Details returns the structured details attached to a TemplateError result.
func (e *TemplateError) Details() map[string]any {
	details := map[string]any{"error": e.Message}
	if e.Line > 0 {
		details["line"] = e.Line
	}
	if e.Column > 0 {
		details["column"] = e.Column
	}
	return details
}
