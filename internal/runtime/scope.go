package runtime

import "github.com/aretw0/templates/pkg/domain"

// CheckScope fails closed when the message lacks a tenant, environment or
// session identifier. It runs before any context is built.
func CheckScope(msg *domain.MessageEnvelope) error {
	if !msg.Scope().Complete() {
		return domain.NewInvalidScope()
	}
	return nil
}
