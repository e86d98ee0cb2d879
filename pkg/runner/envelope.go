package runner

import (
	"github.com/aretw0/templates/pkg/domain"
)

// ErrorEnvelope is the wire form of a top-level failure.
type ErrorEnvelope struct {
	Kind    domain.ErrorKind `json:"kind,omitempty"`
	Message string           `json:"message"`
}

// NewErrorEnvelope converts err into its wire form. Errors that are not
// invocation failures (for example a canceled context) carry no kind.
func NewErrorEnvelope(err error) *ErrorEnvelope {
	return &ErrorEnvelope{
		Kind:    domain.KindOf(err),
		Message: err.Error(),
	}
}
