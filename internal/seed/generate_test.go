package seed

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/model"
)

func generateFixed(t *testing.T) (Dataset, time.Time) {
	t.Helper()
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	return Generate(rand.New(rand.NewPCG(7, 11)), now), now
}

func TestGenerate_ReferenceData(t *testing.T) {
	ds, _ := generateFixed(t)

	assert.Len(t, ds.Categories, 10)
	assert.Len(t, ds.Suppliers, 5)
	assert.Len(t, ds.Products, 26)
	assert.Len(t, ds.Shops, 3)

	p := ds.Products[0]
	assert.Equal(t, "prod-1", p.ID)
	assert.Equal(t, "BRK-001", p.SKU)
	assert.Equal(t, "59.99", p.UnitPrice.StringFixed(2))
	assert.Equal(t, "cat-1", *p.CategoryID)
	assert.Equal(t, "sup-1", *p.SupplierID)
}

func TestGenerate_InventoryCoversEveryPair(t *testing.T) {
	ds, now := generateFixed(t)
	require.Len(t, ds.Inventory, 26*3)

	seen := map[string]bool{}
	for _, inv := range ds.Inventory {
		key := inv.ProductID + "/" + inv.ShopID
		assert.False(t, seen[key], "duplicate row %s", key)
		seen[key] = true

		assert.GreaterOrEqual(t, inv.Quantity, 5)
		assert.LessOrEqual(t, inv.Quantity, 54)
		assert.GreaterOrEqual(t, inv.ReorderLevel, 5)
		assert.LessOrEqual(t, inv.ReorderLevel, 19)
		assert.Equal(t, inv.ReorderLevel*3, inv.ReorderQuantity)
		require.NotNil(t, inv.LastRestocked)
		assert.True(t, inv.LastRestocked.Before(now) || inv.LastRestocked.Equal(now))
	}
	assert.Equal(t, "inv-shop-1-prod-1", ds.Inventory[0].ID)
	assert.Equal(t, "Aisle 1, Shelf 1", *ds.Inventory[0].Location)
}

func TestGenerate_AlertsMatchInventory(t *testing.T) {
	ds, _ := generateFixed(t)

	byID := map[string]model.Inventory{}
	want := 0
	for _, inv := range ds.Inventory {
		byID[inv.ID] = inv
		if inv.Quantity <= inv.ReorderLevel {
			want++
		}
	}
	require.Len(t, ds.Alerts, want)

	for _, a := range ds.Alerts {
		inv := byID[a.ID[len("alert-"):]]
		assert.Equal(t, model.ClassifyStock(inv.Quantity, inv.ReorderLevel).AlertLevel(), a.AlertLevel)
		assert.False(t, a.Acknowledged)
		assert.NotEmpty(t, a.Message)
	}
}

func TestGenerate_SaleTotalsAddUp(t *testing.T) {
	ds, _ := generateFixed(t)
	require.Len(t, ds.Sales, 15)

	totals := map[string]decimal.Decimal{}
	for _, it := range ds.SaleItems {
		assert.True(t, it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Equal(it.Subtotal))
		totals[it.SaleID] = totals[it.SaleID].Add(it.Subtotal)
	}
	for _, s := range ds.Sales {
		assert.True(t, totals[s.ID].Equal(s.TotalAmount), "sale %s", s.ID)
		assert.Equal(t, DemoUser, s.UserID)
		assert.Contains(t, paymentMethods, s.PaymentMethod)
	}
}

func TestGenerate_ReorderDatesFollowStatus(t *testing.T) {
	ds, _ := generateFixed(t)
	require.Len(t, ds.Reorders, 8)

	for _, r := range ds.Reorders {
		switch r.Status {
		case model.ReorderPending:
			assert.Nil(t, r.OrderedDate)
			assert.Nil(t, r.ReceivedDate)
		case model.ReorderOrdered:
			require.NotNil(t, r.OrderedDate)
			require.NotNil(t, r.ExpectedDate)
			assert.Equal(t, model.ExpectedLeadTime, r.ExpectedDate.Sub(*r.OrderedDate))
			assert.Nil(t, r.ReceivedDate)
		case model.ReorderReceived:
			require.NotNil(t, r.OrderedDate)
			require.NotNil(t, r.ReceivedDate)
			assert.False(t, r.ReceivedDate.Before(*r.OrderedDate))
		case model.ReorderCancelled:
			assert.Nil(t, r.OrderedDate)
			require.NotNil(t, r.Notes)
		}
	}
}
