// Package storagetest содержит общий набор проверок для реализаций storage.Storage.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/infrastructure/storage"
)

// Run прогоняет контракт хранилища. newStorage должен возвращать пустое хранилище.
func Run(t *testing.T, newStorage func(t *testing.T) storage.Storage) {
	ctx := context.Background()

	t.Run("GetMissingKey", func(t *testing.T) {
		s := newStorage(t)

		_, err := s.Get(ctx, storage.CredentialKey)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		s := newStorage(t)

		require.NoError(t, s.Set(ctx, storage.CredentialKey, "a.b.c"))

		got, err := s.Get(ctx, storage.CredentialKey)
		require.NoError(t, err)
		assert.Equal(t, "a.b.c", got)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		s := newStorage(t)

		require.NoError(t, s.Set(ctx, storage.CredentialKey, "old"))
		require.NoError(t, s.Set(ctx, storage.CredentialKey, "new"))

		got, err := s.Get(ctx, storage.CredentialKey)
		require.NoError(t, err)
		assert.Equal(t, "new", got)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		s := newStorage(t)

		require.NoError(t, s.Set(ctx, storage.CredentialKey, "value"))
		require.NoError(t, s.Delete(ctx, storage.CredentialKey))
		require.NoError(t, s.Delete(ctx, storage.CredentialKey))

		_, err := s.Get(ctx, storage.CredentialKey)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		s := newStorage(t)

		require.NoError(t, s.Set(ctx, "a", "1"))
		require.NoError(t, s.Set(ctx, "b", "2"))
		require.NoError(t, s.Delete(ctx, "a"))

		got, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})
}
