package repository

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/model"
	"autoparts/internal/seed"
)

func fixedDataset() seed.Dataset {
	return seed.Generate(rand.New(rand.NewPCG(1, 2)), time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
}

func newLocal(t *testing.T) (*LocalStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewLocalStore(rdb, "autoparts_"), mr
}

func newSeededLocal(t *testing.T) (*LocalStore, *miniredis.Miniredis) {
	t.Helper()
	l, mr := newLocal(t)
	seeded, err := l.Init(context.Background(), fixedDataset)
	require.NoError(t, err)
	require.True(t, seeded)
	return l, mr
}

func inventoryFor(t *testing.T, l *LocalStore, productID, shopID string) model.InventoryDetail {
	t.Helper()
	rows, err := l.ListInventory(context.Background())
	require.NoError(t, err)
	for _, r := range rows {
		if r.ProductID == productID && r.ShopID == shopID {
			return r
		}
	}
	t.Fatalf("no inventory for %s at %s", productID, shopID)
	return model.InventoryDetail{}
}

func TestLocalStore_InitOnce(t *testing.T) {
	l, mr := newLocal(t)
	ctx := context.Background()

	ok, err := l.Initialized(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	seeded, err := l.Init(ctx, fixedDataset)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.True(t, mr.Exists("autoparts_initialized"))
	assert.True(t, mr.Exists("autoparts_products"))

	calls := 0
	seeded, err = l.Init(ctx, func() seed.Dataset { calls++; return fixedDataset() })
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Zero(t, calls)

	counts, err := l.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, counts[colProducts])
	assert.Equal(t, 78, counts[colInventory])
}

func TestLocalStore_TeardownAndReset(t *testing.T) {
	l, mr := newSeededLocal(t)
	ctx := context.Background()

	require.NoError(t, l.Teardown(ctx))
	assert.False(t, mr.Exists("autoparts_initialized"))
	products, err := l.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	require.NoError(t, l.Reset(ctx, fixedDataset))
	products, err = l.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 26)
}

func TestLocalStore_ProductsJoinNames(t *testing.T) {
	l, _ := newSeededLocal(t)

	p, err := l.GetProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Premium Ceramic Brake Pads - Front", p.Name)
	assert.Equal(t, "Brakes", p.CategoryName)
	assert.Equal(t, "AutoZone Distribution", p.SupplierName)
}

func TestLocalStore_MissingRelationsUsePlaceholders(t *testing.T) {
	l, _ := newLocal(t)
	ctx := context.Background()

	ghost := "cat-missing"
	require.NoError(t, l.CreateProduct(ctx, &model.Product{Name: "Orphan", SKU: "ORP-1", CategoryID: &ghost}))
	require.NoError(t, l.CreateInventory(ctx, &model.Inventory{ProductID: "prod-x", ShopID: "shop-x", Quantity: 4, ReorderLevel: 10}))

	products, err := l.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, model.NotAvailable, products[0].CategoryName)
	assert.Equal(t, model.NotAvailable, products[0].SupplierName)

	inv, err := l.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, model.UnknownName, inv[0].ProductName)
	assert.Equal(t, model.NotAvailable, inv[0].ProductSKU)
	assert.True(t, inv[0].UnitPrice.IsZero())
	assert.Equal(t, model.UnknownName, inv[0].ShopName)
	assert.Equal(t, model.StockCritical, inv[0].StockStatus)
}

func TestLocalStore_ReadAfterWrite(t *testing.T) {
	l, _ := newLocal(t)
	ctx := context.Background()

	desc := "Wiper blades and washer pumps"
	c := &model.Category{Name: "Wipers", Description: &desc}
	require.NoError(t, l.CreateCategory(ctx, c))
	require.NotEmpty(t, c.ID)

	rows, err := l.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, c.ID, rows[0].ID)
	assert.Equal(t, c.Name, rows[0].Name)
	assert.Equal(t, desc, *rows[0].Description)
	assert.True(t, c.CreatedAt.Equal(rows[0].CreatedAt))
}

func TestLocalStore_UpdateAndDelete(t *testing.T) {
	l, _ := newSeededLocal(t)
	ctx := context.Background()

	require.NoError(t, l.UpdateCategory(ctx, &model.Category{ID: "cat-3", Name: "Filters & Fluids"}))
	c, err := l.GetCategory(ctx, "cat-3")
	require.NoError(t, err)
	assert.Equal(t, "Filters & Fluids", c.Name)

	assert.ErrorIs(t, l.UpdateCategory(ctx, &model.Category{ID: "cat-404", Name: "x"}), ErrNotFound)

	require.NoError(t, l.DeleteCategory(ctx, "cat-10"))
	_, err = l.GetCategory(ctx, "cat-10")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, l.DeleteCategory(ctx, "cat-10"), ErrNotFound)
}

func TestLocalStore_CorruptCollectionReadsEmpty(t *testing.T) {
	l, mr := newSeededLocal(t)
	require.NoError(t, mr.Set("autoparts_suppliers", "{not json"))

	rows, err := l.ListSuppliers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)

	// joins degrade to placeholders instead of failing
	p, err := l.GetProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, model.NotAvailable, p.SupplierName)
}

func TestLocalStore_CreateInventoryRejectsDuplicatePair(t *testing.T) {
	l, _ := newSeededLocal(t)

	err := l.CreateInventory(context.Background(), &model.Inventory{ProductID: "prod-1", ShopID: "shop-1"})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestLocalStore_CreateSaleDecrementsStock(t *testing.T) {
	l, _ := newSeededLocal(t)
	ctx := context.Background()
	before := inventoryFor(t, l, "prod-1", "shop-1")

	sale := &model.Sale{ShopID: "shop-1", UserID: "demo-user", PaymentMethod: "card",
		TotalAmount: decimal.RequireFromString("119.98")}
	items := []model.SaleItem{{ProductID: "prod-1", Quantity: 2,
		UnitPrice: decimal.RequireFromString("59.99"), Subtotal: decimal.RequireFromString("119.98")}}
	require.NoError(t, l.CreateSale(ctx, sale, items))

	after := inventoryFor(t, l, "prod-1", "shop-1")
	assert.Equal(t, before.Quantity-2, after.Quantity)

	got, err := l.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "119.98", got.TotalAmount.StringFixed(2))
	assert.Equal(t, "Phoenix Auto Parts Central", got.ShopName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "item-"+sale.ID+"-0", got.Items[0].ID)
	assert.Equal(t, "BRK-001", got.Items[0].ProductSKU)
}

func TestLocalStore_CreateSaleFloorsAtZero(t *testing.T) {
	l, _ := newSeededLocal(t)
	ctx := context.Background()
	before := inventoryFor(t, l, "prod-2", "shop-2")

	sale := &model.Sale{ShopID: "shop-2", UserID: "demo-user", PaymentMethod: "cash"}
	items := []model.SaleItem{{ProductID: "prod-2", Quantity: before.Quantity + 10}}
	require.NoError(t, l.CreateSale(ctx, sale, items))

	assert.Zero(t, inventoryFor(t, l, "prod-2", "shop-2").Quantity)
}

func TestLocalStore_AcknowledgeIsIdempotent(t *testing.T) {
	l, _ := newLocal(t)
	ctx := context.Background()

	a := &model.StockAlert{ProductID: "prod-1", ShopID: "shop-1", AlertLevel: model.AlertLow, Message: "low"}
	require.NoError(t, l.CreateAlert(ctx, a))

	first := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	got, err := l.AcknowledgeAlert(ctx, a.ID, "alice", first)
	require.NoError(t, err)
	assert.True(t, got.Acknowledged)

	got, err = l.AcknowledgeAlert(ctx, a.ID, "bob", first.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, got.Acknowledged)
	assert.Equal(t, "alice", *got.AcknowledgedBy)
	assert.True(t, first.Equal(*got.AcknowledgedAt))

	_, err = l.AcknowledgeAlert(ctx, "alert-404", "bob", first)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_TransitionReorderRestocksOnReceive(t *testing.T) {
	l, _ := newSeededLocal(t)
	ctx := context.Background()
	before := inventoryFor(t, l, "prod-9", "shop-3")

	r := &model.ReorderRequest{ShopID: "shop-3", ProductID: "prod-9", SupplierID: "sup-2", Quantity: 25}
	require.NoError(t, l.CreateReorder(ctx, r))
	assert.Equal(t, model.ReorderPending, r.Status)

	now := time.Now().UTC()
	r.Apply(model.ReorderOrdered, now)
	require.NoError(t, l.TransitionReorder(ctx, r, model.ReorderPending))
	assert.Equal(t, before.Quantity, inventoryFor(t, l, "prod-9", "shop-3").Quantity)

	r.Apply(model.ReorderReceived, now.Add(time.Hour))
	require.NoError(t, l.TransitionReorder(ctx, r, model.ReorderOrdered))

	after := inventoryFor(t, l, "prod-9", "shop-3")
	assert.Equal(t, before.Quantity+25, after.Quantity)
	require.NotNil(t, after.LastRestocked)
	assert.True(t, r.ReceivedDate.Equal(*after.LastRestocked))

	got, err := l.GetReorder(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReorderReceived, got.Status)
	assert.Equal(t, "O'Reilly Auto Parts Wholesale", got.SupplierName)

	// a second receive against a stale status must not restock twice
	err = l.TransitionReorder(ctx, r, model.ReorderOrdered)
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.Equal(t, before.Quantity+25, inventoryFor(t, l, "prod-9", "shop-3").Quantity)
}

func TestLocalStore_TransitionReorderWithoutInventoryRow(t *testing.T) {
	l, _ := newLocal(t)
	ctx := context.Background()

	r := &model.ReorderRequest{ShopID: "shop-9", ProductID: "prod-9", SupplierID: "sup-1", Quantity: 5,
		Status: model.ReorderOrdered}
	require.NoError(t, l.CreateReorder(ctx, r))

	r.Apply(model.ReorderReceived, time.Now())
	require.NoError(t, l.TransitionReorder(ctx, r, model.ReorderOrdered))

	inv, err := l.ListInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, inv)
}

func TestLocalStore_ListsAreNewestFirst(t *testing.T) {
	l, _ := newSeededLocal(t)

	sales, err := l.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 15)
	for i := 1; i < len(sales); i++ {
		assert.False(t, sales[i].CreatedAt.After(sales[i-1].CreatedAt))
	}
}
