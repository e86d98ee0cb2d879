package runtime

import (
	"errors"
	"testing"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheckScope(t *testing.T) {
	full := domain.MessageEnvelope{TenantID: "t", EnvironmentID: "e", SessionID: "s"}
	assert.NoError(t, CheckScope(&full))

	for name, msg := range map[string]domain.MessageEnvelope{
		"missing tenant":      {EnvironmentID: "e", SessionID: "s"},
		"missing environment": {TenantID: "t", SessionID: "s"},
		"missing session":     {TenantID: "t", EnvironmentID: "e"},
	} {
		t.Run(name, func(t *testing.T) {
			err := CheckScope(&msg)
			assert.True(t, errors.Is(err, domain.ErrInvalidScope))
			assert.Equal(t, domain.ScopeErrorMessage, err.Error())
		})
	}
}
