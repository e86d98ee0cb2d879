package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeOf(t *testing.T) {
	assert.Empty(t, OutcomeOf(nil))
	assert.Equal(t, KindInvalidScope, OutcomeOf(NewInvalidScope()))
	assert.Equal(t, OutcomeCanceled, OutcomeOf(fmt.Errorf("render: %w", context.Canceled)))
	assert.Equal(t, OutcomeCanceled, OutcomeOf(context.DeadlineExceeded))
	assert.Equal(t, OutcomeError, OutcomeOf(errors.New("connection refused")))
}
