package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

func cementProduct() *domain.Product {
	return &domain.Product{
		ID:        "prod-1",
		Name:      "Portland Cement",
		BasePrice: 350,
		Images:    []string{"https://cdn.example.com/cement.jpg"},
		Variants: []domain.Variant{
			{ID: "var-50kg", Name: "50kg bag", Price: 420, Stock: 100, Unit: "bag"},
		},
		IsActive: true,
	}
}

func newCartServiceForTest(products ...*domain.Product) (*CartService, *fakeCartRepo) {
	repo := newFakeCartRepo()
	svc := NewCartService(repo, newFakeProductRepo(products...), &fakeCache{}, zerolog.Nop())
	return svc, repo
}

func TestAddItemCreatesLineWithCatalogPrice(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	err := svc.AddItem(ctx, "user-1", "prod-1", "", 2)
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, "prod-1", item.CartItemID)
	assert.Equal(t, "Portland Cement", item.Name)
	assert.Equal(t, float64(350), item.UnitPrice)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "https://cdn.example.com/cement.jpg", item.ImageURL)
}

func TestAddItemSameLineTwiceAddsQuantities(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "var-50kg", 2))
	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "var-50kg", 3))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "prod-1:var-50kg", cart.Items[0].CartItemID)
}

func TestAddItemVariantUsesVariantPriceAndName(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "var-50kg", 1))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, float64(420), cart.Items[0].UnitPrice)
	assert.Equal(t, "Portland Cement (50kg bag)", cart.Items[0].Name)
}

func TestAddItemVariantAndBaseAreSeparateLines(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 1))
	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "var-50kg", 1))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemUnknownVariant(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())

	err := svc.AddItem(context.Background(), "user-1", "prod-1", "var-missing", 1)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestAddItemInactiveProduct(t *testing.T) {
	p := cementProduct()
	p.IsActive = false
	svc, _ := newCartServiceForTest(p)

	err := svc.AddItem(context.Background(), "user-1", "prod-1", "", 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddItem(ctx, "user-1", "prod-1", "", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, svc.AddItem(ctx, "user-1", "prod-1", "", -3), ErrInvalidQuantity)
}

func TestAddItemHasNoUpperBound(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	// Bulk construction orders run well past retail quantities.
	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 500))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 500, cart.Items[0].Quantity)
}

func TestGetCartMissingCartIsEmpty(t *testing.T) {
	svc, _ := newCartServiceForTest()

	cart, err := svc.GetCart(context.Background(), "user-nobody")
	require.NoError(t, err)
	assert.Equal(t, "user-nobody", cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 2))
	require.NoError(t, svc.UpdateQuantity(ctx, "user-1", "prod-1", 7))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantityHasNoUpperBound(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 2))
	require.NoError(t, svc.UpdateQuantity(ctx, "user-1", "prod-1", 100))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 100, cart.Items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 2))
	require.NoError(t, svc.UpdateQuantity(ctx, "user-1", "prod-1", 0))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 2))
	err := svc.UpdateQuantity(ctx, "user-1", "prod-ghost", 3)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestClearCartIsIdempotent(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 2))
	require.NoError(t, svc.ClearCart(ctx, "user-1"))
	// Second clear finds nothing and still succeeds.
	require.NoError(t, svc.ClearCart(ctx, "user-1"))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestReplaceCartSanitizesIncomingLines(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	items := []domain.CartItem{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: 350, Name: "Portland Cement"},
		{ProductID: "prod-1", Quantity: 3, UnitPrice: 350, Name: "Portland Cement"},
		{ProductID: "prod-2", Quantity: 0, UnitPrice: 80, Name: "Sand"},
		{ProductID: "prod-1", VariantID: "var-50kg", Quantity: 1, UnitPrice: 420, Name: "Portland Cement (50kg bag)"},
	}
	require.NoError(t, svc.ReplaceCart(ctx, "user-1", items))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	byKey := map[string]domain.CartItem{}
	for _, it := range cart.Items {
		byKey[it.CartItemID] = it
	}
	assert.Equal(t, 5, byKey["prod-1"].Quantity)
	assert.Equal(t, 1, byKey["prod-1:var-50kg"].Quantity)
}

func TestReplaceCartIgnoresClientPrices(t *testing.T) {
	svc, _ := newCartServiceForTest(cementProduct())
	ctx := context.Background()

	// A synced cart claiming a near-zero price must still check out at
	// the catalog price.
	require.NoError(t, svc.ReplaceCart(ctx, "user-1", []domain.CartItem{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: 0.01, Name: "totally legit cement", ImageURL: "https://evil.example.com/x.png"},
		{ProductID: "prod-1", VariantID: "var-50kg", Quantity: 1, UnitPrice: 0.01},
	}))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	byKey := map[string]domain.CartItem{}
	for _, it := range cart.Items {
		byKey[it.CartItemID] = it
	}
	assert.Equal(t, float64(350), byKey["prod-1"].UnitPrice)
	assert.Equal(t, "Portland Cement", byKey["prod-1"].Name)
	assert.Equal(t, "https://cdn.example.com/cement.jpg", byKey["prod-1"].ImageURL)
	assert.Equal(t, float64(420), byKey["prod-1:var-50kg"].UnitPrice)
	assert.Equal(t, "Portland Cement (50kg bag)", byKey["prod-1:var-50kg"].Name)
}

func TestReplaceCartDropsUnknownAndInactiveLines(t *testing.T) {
	retired := &domain.Product{ID: "prod-old", Name: "Discontinued Brick", BasePrice: 12, IsActive: false}
	svc, _ := newCartServiceForTest(cementProduct(), retired)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceCart(ctx, "user-1", []domain.CartItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-ghost", Quantity: 3},
		{ProductID: "prod-old", Quantity: 4},
		{ProductID: "prod-1", VariantID: "var-missing", Quantity: 5},
	}))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-1", cart.Items[0].CartItemID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestReplaceCartOverwritesExistingItems(t *testing.T) {
	tmtBar := &domain.Product{ID: "prod-9", Name: "TMT Bar", BasePrice: 99, IsActive: true}
	svc, _ := newCartServiceForTest(cementProduct(), tmtBar)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user-1", "prod-1", "", 4))
	require.NoError(t, svc.ReplaceCart(ctx, "user-1", []domain.CartItem{
		{ProductID: "prod-9", Quantity: 1},
	}))

	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-9", cart.Items[0].CartItemID)
	assert.Equal(t, float64(99), cart.Items[0].UnitPrice)
}
