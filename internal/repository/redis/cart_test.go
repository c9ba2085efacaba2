package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func setupTestStore(t *testing.T) (*LocalCartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLocalCartStore(client), mr
}

func sampleItem(productID string, qty int) domain.LineItem {
	return domain.LineItem{
		ProductID:   productID,
		Name:        "Widget " + productID,
		Price:       1990,
		Quantity:    qty,
		Color:       "blue",
		Description: "a widget",
		ImageURL:    "https://img.example.com/w.jpg",
	}
}

// ---------------------------------------------------------------------------
// Add / List
// ---------------------------------------------------------------------------

func TestLocalCartStore_List_Empty(t *testing.T) {
	store, _ := setupTestStore(t)

	items, err := store.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestLocalCartStore_Add_CreatesSequence(t *testing.T) {
	store, mr := setupTestStore(t)

	err := store.Add(context.Background(), sampleItem("prod-1", 1))
	require.NoError(t, err)

	assert.True(t, mr.Exists("cart"))

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod-1", items[0].ProductID)
}

func TestLocalCartStore_Add_PreservesInsertionOrder(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem("prod-c", 1)))
	require.NoError(t, store.Add(ctx, sampleItem("prod-a", 2)))
	require.NoError(t, store.Add(ctx, sampleItem("prod-b", 3)))

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "prod-c", items[0].ProductID)
	assert.Equal(t, "prod-a", items[1].ProductID)
	assert.Equal(t, "prod-b", items[2].ProductID)
}

func TestLocalCartStore_Add_NoDeduplication(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem("prod-1", 1)))
	require.NoError(t, store.Add(ctx, sampleItem("prod-1", 1)))

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestLocalCartStore_List_MalformedJSON(t *testing.T) {
	store, mr := setupTestStore(t)

	require.NoError(t, mr.Set("cart", "{{not-valid-json"))

	items, err := store.List(context.Background())

	assert.Nil(t, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedState)
}

// ---------------------------------------------------------------------------
// Remove
// ---------------------------------------------------------------------------

func TestLocalCartStore_Remove_AllMatching(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem("prod-1", 1)))
	require.NoError(t, store.Add(ctx, sampleItem("prod-2", 1)))
	require.NoError(t, store.Add(ctx, sampleItem("prod-1", 2)))

	require.NoError(t, store.Remove(ctx, "prod-1"))

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod-2", items[0].ProductID)
}

func TestLocalCartStore_Remove_AbsentProductIsIdempotent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem("prod-1", 1)))

	require.NoError(t, store.Remove(ctx, "prod-999"))
	require.NoError(t, store.Remove(ctx, "prod-999"))

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestLocalCartStore_Remove_EmptyStore(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.Remove(context.Background(), "prod-1"))
}

// ---------------------------------------------------------------------------
// Clear
// ---------------------------------------------------------------------------

func TestLocalCartStore_Clear(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, sampleItem("prod-1", 1)))
	require.True(t, mr.Exists("cart"))

	require.NoError(t, store.Clear(ctx))

	assert.False(t, mr.Exists("cart"))

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLocalCartStore_Clear_AbsentKey(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.Clear(context.Background()))
}

// ---------------------------------------------------------------------------
// Stored shape
// ---------------------------------------------------------------------------

func TestLocalCartStore_StoredShape(t *testing.T) {
	store, mr := setupTestStore(t)

	require.NoError(t, store.Add(context.Background(), sampleItem("prod-1", 2)))

	raw, err := mr.Get("cart")
	require.NoError(t, err)

	var stored []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "prod-1", stored[0]["product_id"])
	assert.Equal(t, float64(2), stored[0]["quantity"])

	_, hasID := stored[0]["id"]
	assert.False(t, hasID, "local entries must not carry a server id")
}
