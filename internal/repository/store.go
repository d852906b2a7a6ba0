package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"autoparts/internal/model"
)

var (
	// ErrNotFound means the row does not exist in the store that was asked.
	ErrNotFound = errors.New("record not found")
	// ErrRejected wraps constraint and validation failures raised by a store.
	// These are never retried against another store.
	ErrRejected = errors.New("rejected by store")
	// ErrStaleStatus is returned by TransitionReorder when the stored status
	// no longer matches the expected one.
	ErrStaleStatus = errors.New("reorder status changed concurrently")
)

// Store is the data-access contract shared by the persistent store, the local
// fallback store and the resolver that chooses between them. Detail types come
// back with their relations denormalized, identically for every implementation.
//
// Create methods assign ID and CreatedAt when they are empty.
type Store interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*model.Supplier, error)
	CreateSupplier(ctx context.Context, s *model.Supplier) error
	UpdateSupplier(ctx context.Context, s *model.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]model.ProductDetail, error)
	GetProduct(ctx context.Context, id string) (*model.ProductDetail, error)
	CreateProduct(ctx context.Context, p *model.Product) error
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListShops(ctx context.Context) ([]model.Shop, error)
	GetShop(ctx context.Context, id string) (*model.Shop, error)
	CreateShop(ctx context.Context, s *model.Shop) error
	UpdateShop(ctx context.Context, s *model.Shop) error

	ListInventory(ctx context.Context) ([]model.InventoryDetail, error)
	GetInventory(ctx context.Context, id string) (*model.InventoryDetail, error)
	CreateInventory(ctx context.Context, inv *model.Inventory) error
	UpdateInventory(ctx context.Context, inv *model.Inventory) error

	ListAlerts(ctx context.Context) ([]model.AlertDetail, error)
	CreateAlert(ctx context.Context, a *model.StockAlert) error
	// AcknowledgeAlert is idempotent: an already acknowledged alert is
	// returned unchanged.
	AcknowledgeAlert(ctx context.Context, id, by string, at time.Time) (*model.StockAlert, error)

	// ListSales returns sales newest first, without items.
	ListSales(ctx context.Context) ([]model.SaleDetail, error)
	GetSale(ctx context.Context, id string) (*model.SaleDetail, error)
	// CreateSale persists the sale and its items and decrements the matching
	// inventory rows, floored at zero.
	CreateSale(ctx context.Context, s *model.Sale, items []model.SaleItem) error

	// ListReorders returns requests newest first.
	ListReorders(ctx context.Context) ([]model.ReorderDetail, error)
	GetReorder(ctx context.Context, id string) (*model.ReorderDetail, error)
	CreateReorder(ctx context.Context, r *model.ReorderRequest) error
	// TransitionReorder writes r's status and dates if the stored status is
	// still from. Entering received also restocks the (product, shop)
	// inventory row when there is one.
	TransitionReorder(ctx context.Context, r *model.ReorderRequest, from model.ReorderStatus) error
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func stampCreated(id *string, createdAt *time.Time, prefix string) {
	if *id == "" {
		*id = newID(prefix)
	}
	if createdAt != nil && createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}

// prepareSale assigns the sale ID and the per-line IDs (item-<sale>-<n>).
func prepareSale(s *model.Sale, items []model.SaleItem) {
	stampCreated(&s.ID, &s.CreatedAt, "sale")
	for i := range items {
		items[i].SaleID = s.ID
		if items[i].ID == "" {
			items[i].ID = fmt.Sprintf("item-%s-%d", s.ID, i)
		}
	}
}
