package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

func setupTestDB(t *testing.T) CartRepository {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	require.NoError(t, EnsureIndexes(ctx, db))

	return NewCartRepository(db)
}

func TestGetCart_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	cart, err := repo.GetCart(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, cart)
}

func TestAddItem_NewCart(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	userID := "user123"

	item := domain.CartItem{
		CartItemID: "prod-1",
		ProductID:  "prod-1",
		Name:       "Portland Cement",
		UnitPrice:  350,
		Quantity:   3,
	}
	err := repo.AddItem(ctx, userID, item)
	require.NoError(t, err)

	cart, err := repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-1", cart.Items[0].ProductID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.False(t, cart.Items[0].AddedAt.IsZero())
}

func TestAddItem_ExistingLine_AddsQuantities(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	userID := "user123"

	err := repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	err = repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 5})
	require.NoError(t, err)

	// Quantities accumulate instead of overwriting.
	cart, err := repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestAddItem_VariantLinesAreDistinct(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	userID := "user123"

	err := repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 1})
	require.NoError(t, err)
	err = repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-1:var-50kg", ProductID: "prod-1", VariantID: "var-50kg", Quantity: 2})
	require.NoError(t, err)

	cart, err := repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestUpdateItemQuantity(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	userID := "user123"

	err := repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	err = repo.UpdateItemQuantity(ctx, userID, "prod-1", 10)
	require.NoError(t, err)

	cart, err := repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 10, cart.Items[0].Quantity)
}

func TestUpdateItemQuantity_UnknownLine(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	err := repo.AddItem(ctx, "user123", domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	err = repo.UpdateItemQuantity(ctx, "user123", "prod-ghost", 10)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	userID := "user123"

	err := repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)
	err = repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-2", ProductID: "prod-2", Quantity: 3})
	require.NoError(t, err)

	err = repo.RemoveItem(ctx, userID, "prod-1")
	require.NoError(t, err)

	cart, err := repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-2", cart.Items[0].ProductID)
}

func TestReplaceCart_CreatesAndOverwrites(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	userID := "user123"

	// Upserts a fresh cart.
	err := repo.ReplaceCart(ctx, userID, []domain.CartItem{
		{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 2},
	})
	require.NoError(t, err)

	cart, err := repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	// Overwrites wholesale.
	err = repo.ReplaceCart(ctx, userID, []domain.CartItem{
		{CartItemID: "prod-9", ProductID: "prod-9", Quantity: 1},
	})
	require.NoError(t, err)

	cart, err = repo.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-9", cart.Items[0].ProductID)
}

func TestDeleteCart(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	userID := "user123"

	err := repo.AddItem(ctx, userID, domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Quantity: 2})
	require.NoError(t, err)

	err = repo.DeleteCart(ctx, userID)
	require.NoError(t, err)

	_, err = repo.GetCart(ctx, userID)
	assert.ErrorIs(t, err, ErrCartNotFound)

	err = repo.DeleteCart(ctx, userID)
	assert.ErrorIs(t, err, ErrCartNotFound)
}
