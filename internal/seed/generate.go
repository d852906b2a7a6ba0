// Package seed generates the demo dataset loaded into the fallback store.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"autoparts/internal/model"
)

// Dataset holds every collection of the fallback store, in dependency order.
type Dataset struct {
	Categories []model.Category
	Suppliers  []model.Supplier
	Products   []model.Product
	Shops      []model.Shop
	Inventory  []model.Inventory
	Alerts     []model.StockAlert
	Sales      []model.Sale
	SaleItems  []model.SaleItem
	Reorders   []model.ReorderRequest
}

const (
	saleCount    = 15
	reorderCount = 8
	day          = 24 * time.Hour
)

// Generate builds a fresh dataset. Identifiers and reference data are fixed;
// quantities, sales and reorders are drawn from rng.
func Generate(rng *rand.Rand, now time.Time) Dataset {
	now = now.UTC()
	ds := Dataset{
		Categories: buildCategories(now),
		Suppliers:  buildSuppliers(now),
		Products:   buildProducts(now),
		Shops:      buildShops(now),
	}
	ds.Inventory = generateInventory(rng, now)
	ds.Alerts = deriveAlerts(ds.Inventory, now)
	ds.Sales, ds.SaleItems = generateSales(rng, now)
	ds.Reorders = generateReorders(rng, now)
	return ds
}

// NewRand returns a time-seeded source for non-reproducible demo data.
func NewRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>17))
}

func str(s string) *string { return &s }

func buildCategories(now time.Time) []model.Category {
	out := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, model.Category{ID: c.id, Name: c.name, Description: str(c.description), CreatedAt: now})
	}
	return out
}

func buildSuppliers(now time.Time) []model.Supplier {
	out := make([]model.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, model.Supplier{
			ID: s.id, Name: s.name, ContactPerson: str(s.contact), Email: str(s.email), Phone: str(s.phone),
			Address: str(s.address), City: str(s.city), State: str(s.state), ZipCode: str(s.zip),
			Notes: str(s.notes), CreatedAt: now,
		})
	}
	return out
}

func buildProducts(now time.Time) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		out = append(out, model.Product{
			ID: p.id, Name: p.name, SKU: p.sku, Description: str(p.description), Brand: str(p.brand),
			PartNumber: str(p.partNumber), CategoryID: str(p.categoryID), SupplierID: str(p.supplierID),
			CostPrice: decimal.RequireFromString(p.cost), UnitPrice: decimal.RequireFromString(p.unit),
			CreatedAt: now,
		})
	}
	return out
}

func buildShops(now time.Time) []model.Shop {
	out := make([]model.Shop, 0, len(shops))
	for _, s := range shops {
		out = append(out, model.Shop{
			ID: s.id, Name: s.name, Location: str(s.location), ContactEmail: str(s.email),
			ContactPhone: str(s.phone), Address: str(s.address), City: str(s.city), State: str(s.state),
			ZipCode: str(s.zip), CreatedAt: now,
		})
	}
	return out
}

// generateInventory creates one row per product × shop.
func generateInventory(rng *rand.Rand, now time.Time) []model.Inventory {
	out := make([]model.Inventory, 0, len(products)*len(shops))
	for idx, p := range products {
		for _, s := range shops {
			level := rng.IntN(15) + 5
			restocked := now.Add(-time.Duration(rng.Int64N(int64(30 * day))))
			out = append(out, model.Inventory{
				ID:              fmt.Sprintf("inv-%s-%s", s.id, p.id),
				ProductID:       p.id,
				ShopID:          s.id,
				Quantity:        rng.IntN(50) + 5,
				ReorderLevel:    level,
				ReorderQuantity: level * 3,
				Location:        str(fmt.Sprintf("Aisle %d, Shelf %d", idx/5+1, idx%5+1)),
				LastRestocked:   &restocked,
			})
		}
	}
	return out
}

// deriveAlerts raises an alert for every row at or below its reorder level,
// classified the same way live inventory is.
func deriveAlerts(inv []model.Inventory, now time.Time) []model.StockAlert {
	productNames := make(map[string]string, len(products))
	for _, p := range products {
		productNames[p.id] = p.name
	}
	shopNames := make(map[string]string, len(shops))
	for _, s := range shops {
		shopNames[s.id] = s.name
	}

	var out []model.StockAlert
	for _, row := range inv {
		status := model.ClassifyStock(row.Quantity, row.ReorderLevel)
		if !status.NeedsAlert() {
			continue
		}
		level := status.AlertLevel()
		out = append(out, model.StockAlert{
			ID:         "alert-" + row.ID,
			ProductID:  row.ProductID,
			ShopID:     row.ShopID,
			AlertLevel: level,
			Message:    model.AlertMessage(level, productNames[row.ProductID], shopNames[row.ShopID], row.Quantity),
			CreatedAt:  now,
		})
	}
	return out
}

func generateSales(rng *rand.Rand, now time.Time) ([]model.Sale, []model.SaleItem) {
	sales := make([]model.Sale, 0, saleCount)
	var items []model.SaleItem
	for i := 0; i < saleCount; i++ {
		saleID := fmt.Sprintf("sale-%d", i+1)
		shop := shops[rng.IntN(len(shops))]
		total := decimal.Zero

		for j, n := 0, rng.IntN(4)+1; j < n; j++ {
			p := products[rng.IntN(len(products))]
			qty := rng.IntN(3) + 1
			price := decimal.RequireFromString(p.unit)
			subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
			total = total.Add(subtotal)
			items = append(items, model.SaleItem{
				ID:        fmt.Sprintf("item-%s-%d", saleID, j),
				SaleID:    saleID,
				ProductID: p.id,
				Quantity:  qty,
				UnitPrice: price,
				Subtotal:  subtotal,
			})
		}

		sale := model.Sale{
			ID:            saleID,
			ShopID:        shop.id,
			UserID:        DemoUser,
			TotalAmount:   total,
			PaymentMethod: paymentMethods[rng.IntN(len(paymentMethods))],
			CreatedAt:     now.Add(-time.Duration(rng.Int64N(int64(7 * day)))),
		}
		// one in five sales is anonymous
		if k := rng.IntN(len(customerNames) + 1); k < len(customerNames) {
			sale.CustomerName = str(customerNames[k])
		}
		if rng.IntN(2) == 0 {
			sale.CustomerPhone = str(fmt.Sprintf("(602) 555-%04d", rng.IntN(9000)+1000))
		}
		sales = append(sales, sale)
	}
	return sales, items
}

var reorderStatuses = []model.ReorderStatus{
	model.ReorderPending, model.ReorderOrdered, model.ReorderReceived, model.ReorderCancelled,
}

// generateReorders stamps dates consistently with each request's status.
func generateReorders(rng *rand.Rand, now time.Time) []model.ReorderRequest {
	out := make([]model.ReorderRequest, 0, reorderCount)
	for i := 0; i < reorderCount; i++ {
		p := products[rng.IntN(len(products))]
		shop := shops[rng.IntN(len(shops))]
		status := reorderStatuses[rng.IntN(len(reorderStatuses))]
		created := now.Add(-time.Duration(rng.Int64N(int64(14 * day))))

		r := model.ReorderRequest{
			ID:          fmt.Sprintf("reorder-%d", i+1),
			ShopID:      shop.id,
			ProductID:   p.id,
			SupplierID:  p.supplierID,
			Quantity:    rng.IntN(30) + 10,
			Status:      model.ReorderPending,
			RequestedBy: str(DemoUser),
			CreatedAt:   created,
		}
		switch status {
		case model.ReorderOrdered:
			r.Apply(model.ReorderOrdered, betweenNow(rng, created, now))
		case model.ReorderReceived:
			r.Apply(model.ReorderOrdered, betweenNow(rng, created, now))
			r.Apply(model.ReorderReceived, betweenNow(rng, *r.OrderedDate, now))
		case model.ReorderCancelled:
			r.Apply(model.ReorderCancelled, now)
			r.Notes = str("Out of stock at supplier")
		}
		out = append(out, r)
	}
	return out
}

// betweenNow picks a moment in [from, now].
func betweenNow(rng *rand.Rand, from, now time.Time) time.Time {
	span := now.Sub(from)
	if span <= 0 {
		return now
	}
	return from.Add(time.Duration(rng.Int64N(int64(span) + 1)))
}
