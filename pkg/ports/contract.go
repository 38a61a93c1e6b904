package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	t.Helper()
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")
	doc := `{"id": "a", "type": "Sequence"}`

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, doc))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("Put replaces", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, `{"id": "b", "type": "Selector"}`))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Contains(t, got, `"b"`)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		k1, k2 := key+"-1", key+"-2"
		require.NoError(t, store.Put(ctx, k2, doc))
		require.NoError(t, store.Put(ctx, k1, doc))
		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
		assert.IsNonDecreasing(t, keys)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
		assert.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")
	})
}
