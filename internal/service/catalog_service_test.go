package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/dto"
	"autoparts/internal/model"
	"autoparts/internal/repository"
	"autoparts/internal/seed"
)

func TestCategoryService_CRUD(t *testing.T) {
	f := seededFixture(t)
	svc := NewCategoryService(f.store)
	ctx := context.Background()

	c, err := svc.Create(ctx, dto.CategoryRequest{Name: "Wipers", Description: strPtr("Blades and arms")})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	c, err = svc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Wiper Blades"})
	require.NoError(t, err)
	assert.Equal(t, "Wiper Blades", c.Name)
	assert.Nil(t, c.Description)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Gone"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSupplierService_SearchAndProducts(t *testing.T) {
	f := seededFixture(t)
	svc := NewSupplierService(f.store, newReorders(f))
	ctx := context.Background()

	found, err := svc.List(ctx, dto.SupplierFilter{Search: "MIKE"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "sup-1", found[0].ID)

	all, err := svc.List(ctx, dto.SupplierFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	products, err := svc.Products(ctx, "sup-1")
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "sup-1", *p.SupplierID)
	}

	_, err = svc.Products(ctx, "sup-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSupplierService_OrderStockUsesGivenSupplier(t *testing.T) {
	f := seededFixture(t)
	svc := NewSupplierService(f.store, newReorders(f))

	r, err := svc.OrderStock(context.Background(), "sup-2", seed.DemoUser, dto.OrderStockRequest{
		ShopID: "shop-1", ProductID: "prod-1", Quantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "sup-2", r.SupplierID)
	assert.Equal(t, model.ReorderPending, r.Status)
	assert.Equal(t, 12, r.Quantity)
}

func TestProductService_ListFilters(t *testing.T) {
	f := seededFixture(t)
	svc := NewProductService(f.store)
	ctx := context.Background()

	bySKU, err := svc.List(ctx, dto.ProductFilter{Search: "brk-001"})
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.Equal(t, "prod-1", bySKU[0].ID)
	assert.Equal(t, "Brakes", bySKU[0].CategoryName)

	byCategory, err := svc.List(ctx, dto.ProductFilter{CategoryID: "cat-1"})
	require.NoError(t, err)
	require.NotEmpty(t, byCategory)
	for _, p := range byCategory {
		assert.Equal(t, "cat-1", *p.CategoryID)
	}

	bySupplier, err := svc.List(ctx, dto.ProductFilter{SupplierID: "sup-3", Search: "zzz-nothing"})
	require.NoError(t, err)
	assert.Empty(t, bySupplier)
}

func TestProductService_CreateUpdate(t *testing.T) {
	f := seededFixture(t)
	svc := NewProductService(f.store)
	ctx := context.Background()

	req := dto.ProductRequest{
		Name:       "Cabin Air Filter",
		SKU:        "FLT-900",
		CategoryID: strPtr("cat-3"),
		SupplierID: strPtr("sup-2"),
		CostPrice:  decimal.RequireFromString("6.5"),
		UnitPrice:  decimal.RequireFromString("14.999"),
	}
	p, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Filters", p.CategoryName)
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("15")))

	req.Name = "Cabin Air Filter HEPA"
	p, err = svc.Update(ctx, p.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Cabin Air Filter HEPA", p.Name)

	req.CategoryID = strPtr("cat-404")
	_, err = svc.Create(ctx, req)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "category_id", ve.Field)
}

func TestShopService_CreateUpdate(t *testing.T) {
	f := seededFixture(t)
	svc := NewShopService(f.store)
	ctx := context.Background()

	shop, err := svc.Create(ctx, dto.ShopRequest{Name: "Tempe", City: strPtr("Tempe")})
	require.NoError(t, err)

	shop, err = svc.Update(ctx, shop.ID, dto.ShopRequest{Name: "Tempe Marketplace", City: strPtr("Tempe")})
	require.NoError(t, err)

	got, err := svc.Get(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tempe Marketplace", got.Name)

	shops, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, shops, 4)
}
