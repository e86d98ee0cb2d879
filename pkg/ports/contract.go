package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/templates/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	session := "contract-" + time.Now().Format("20060102150405")
	scope := domain.Scope{TenantID: "tenant-a", EnvironmentID: "dev", SessionID: session}

	t.Run("Save and Load", func(t *testing.T) {
		state := map[string]any{
			"foo":  "bar",
			"user": map[string]any{"name": "Alice"},
		}

		err := store.Save(ctx, scope, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, scope)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "bar", loaded["foo"])
		assert.Equal(t, map[string]any{"name": "Alice"}, loaded["user"])
	})

	t.Run("Integers Round Trip", func(t *testing.T) {
		numbers := scope
		numbers.SessionID = session + "-numbers"
		state := map[string]any{"id": int64(9007199254740993), "nested": map[string]any{"n": int64(-2)}}
		require.NoError(t, store.Save(ctx, numbers, state))
		defer func() { _ = store.Delete(ctx, numbers) }()

		loaded, err := store.Load(ctx, numbers)
		require.NoError(t, err)
		assert.Equal(t, int64(9007199254740993), loaded["id"])
		assert.Equal(t, map[string]any{"n": int64(-2)}, loaded["nested"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		missing := scope
		missing.SessionID = "non-existent-" + session
		_, err := store.Load(ctx, missing)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Scopes Are Isolated", func(t *testing.T) {
		other := domain.Scope{TenantID: "tenant-b", EnvironmentID: "dev", SessionID: session}
		require.NoError(t, store.Save(ctx, other, map[string]any{"foo": "other"}))
		defer func() { _ = store.Delete(ctx, other) }()

		loaded, err := store.Load(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, "bar", loaded["foo"], "tenant-b state must not leak into tenant-a")
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, scope, map[string]any{"foo": "bar"})
		require.NoError(t, err)

		err = store.Delete(ctx, scope)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, scope)
		assert.ErrorIs(t, err, domain.ErrStateNotFound, "Load after Delete should return ErrStateNotFound")
	})

	t.Run("List", func(t *testing.T) {
		s1 := domain.Scope{TenantID: "tenant-a", EnvironmentID: "dev", SessionID: session + "-1"}
		s2 := domain.Scope{TenantID: "tenant-a", EnvironmentID: "dev", SessionID: session + "-2"}
		_ = store.Save(ctx, s1, map[string]any{})
		_ = store.Save(ctx, s2, map[string]any{})

		defer func() {
			_ = store.Delete(ctx, s1)
			_ = store.Delete(ctx, s2)
		}()

		scopes, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, scopes, s1)
		assert.Contains(t, scopes, s2)
	})
}
