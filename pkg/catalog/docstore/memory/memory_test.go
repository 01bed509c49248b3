package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebykenth/product-catalog/pkg/catalog"
	"github.com/codebykenth/product-catalog/pkg/catalog/docstore/memory"
)

func TestStoreCRUD(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "things", catalog.Record{"name": "one", "price": 10.0})
	require.NoError(t, err)
	id, ok := created["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	t.Run("Get", func(t *testing.T) {
		got, err := store.Get(ctx, "things", id)
		require.NoError(t, err)
		assert.Equal(t, "one", got["name"])
		assert.Equal(t, id, got["id"])
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "things", "missing")
		assert.ErrorIs(t, err, catalog.ErrDocumentNotFound)
	})

	t.Run("All", func(t *testing.T) {
		records, err := store.All(ctx, "things")
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("UpdateReturnsSnapshot", func(t *testing.T) {
		updated, err := store.Update(ctx, "things", id, map[string]any{"price": 12.5})
		require.NoError(t, err)
		assert.Equal(t, 12.5, updated["price"])
		assert.Equal(t, "one", updated["name"])
	})

	t.Run("UpdateDottedPath", func(t *testing.T) {
		updated, err := store.Update(ctx, "things", id, map[string]any{"meta.color": "red"})
		require.NoError(t, err)
		meta, ok := updated["meta"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "red", meta["color"])
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		_, err := store.Update(ctx, "things", "missing", map[string]any{"price": 1.0})
		assert.ErrorIs(t, err, catalog.ErrDocumentNotFound)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "things", id))
		require.NoError(t, store.Delete(ctx, "things", id))

		_, err := store.Get(ctx, "things", id)
		assert.ErrorIs(t, err, catalog.ErrDocumentNotFound)
	})
}

func TestStoreReturnsCopies(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "things", catalog.Record{"tags": []any{"a"}})
	require.NoError(t, err)
	id := created["id"].(string)

	created["tags"].([]any)[0] = "mutated"

	got, err := store.Get(ctx, "things", id)
	require.NoError(t, err)
	assert.Equal(t, "a", got["tags"].([]any)[0])
}

func TestStoreQuery(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	mk := func(name string, price float64) string {
		rec, err := store.Create(ctx, "things", catalog.Record{"name": name, "price": price})
		require.NoError(t, err)
		return rec["id"].(string)
	}
	cheap := mk("cheap", 5)
	mid := mk("mid", 50)
	dear := mk("dear", 500)

	t.Run("Equality", func(t *testing.T) {
		results, err := store.Query(ctx, "things", []catalog.Condition{
			{Field: "name", Op: catalog.OpEqual, Value: "mid"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Contains(t, results, mid)
	})

	t.Run("RangeAndCombined", func(t *testing.T) {
		results, err := store.Query(ctx, "things", []catalog.Condition{
			{Field: "price", Op: catalog.OpGreater, Value: 10},
			{Field: "price", Op: catalog.OpLessOrEqual, Value: 500},
		})
		require.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Contains(t, results, mid)
		assert.Contains(t, results, dear)
	})

	t.Run("In", func(t *testing.T) {
		results, err := store.Query(ctx, "things", []catalog.Condition{
			{Field: "name", Op: catalog.OpIn, Value: []any{"cheap", "dear"}},
		})
		require.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Contains(t, results, cheap)
		assert.Contains(t, results, dear)
	})

	t.Run("MalformedConditionsAreSkipped", func(t *testing.T) {
		results, err := store.Query(ctx, "things", []catalog.Condition{
			{Field: "", Op: catalog.OpEqual, Value: "x"},
			{Field: "price", Op: "between", Value: 10},
		})
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})
}
