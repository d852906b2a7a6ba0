package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"autoparts/internal/infra"
	"autoparts/internal/model"
)

// FallbackStore tries the persistent store first and falls back to the local
// store when it is unavailable or has nothing to offer:
//   - reads fall back on unavailability, an empty list or a missing row
//   - writes fall back on unavailability or a missing row
//   - rejections and stale transitions from the persistent store are final
//
// A nil remote runs in local-only mode.
type FallbackStore struct {
	remote  Store
	local   Store
	breaker *infra.Breaker
	timeout time.Duration
}

func NewFallbackStore(remote, local Store, breaker *infra.Breaker, timeout time.Duration) *FallbackStore {
	if breaker == nil {
		breaker = infra.NewBreaker(infra.DefaultBreakerConfig())
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &FallbackStore{remote: remote, local: local, breaker: breaker, timeout: timeout}
}

var _ Store = (*FallbackStore)(nil)

// unavailable reports whether err means the persistent store could not
// answer, as opposed to answering with a definite outcome.
func unavailable(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrRejected) &&
		!errors.Is(err, ErrStaleStatus)
}

// attempt runs fn against the persistent store. done reports whether its
// outcome stands; otherwise the caller must go to the local store.
func (f *FallbackStore) attempt(ctx context.Context, op string, fn func(context.Context) error, empty func() bool) (done bool, err error) {
	if f.remote == nil {
		return false, nil
	}

	rctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	err = f.breaker.Execute(func() error { return fn(rctx) }, unavailable)

	switch {
	case err == nil && (empty == nil || !empty()):
		return true, nil
	case err == nil:
		log.Debug().Str("op", op).Msg("fallback: persistent store returned no rows")
		return false, nil
	case errors.Is(err, ErrNotFound):
		log.Debug().Str("op", op).Msg("fallback: not found in persistent store")
		return false, nil
	case errors.Is(err, infra.ErrBreakerOpen):
		log.Debug().Str("op", op).Msg("fallback: breaker open, skipping persistent store")
		return false, nil
	case unavailable(err):
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		log.Warn().Err(err).Str("op", op).Msg("fallback: persistent store unavailable")
		return false, nil
	default:
		return true, err
	}
}

// list serves a collection read. When both stores fail the caller gets an
// empty list, never an error.
func list[T any](ctx context.Context, f *FallbackStore, op string, fn func(Store, context.Context) ([]T, error)) ([]T, error) {
	var rows []T
	done, err := f.attempt(ctx, op, func(c context.Context) error {
		var e error
		rows, e = fn(f.remote, c)
		return e
	}, func() bool { return len(rows) == 0 })
	if done {
		return rows, err
	}

	rows, err = fn(f.local, ctx)
	if err != nil {
		log.Error().Err(err).Str("op", op).Msg("fallback: local store failed, returning empty list")
		return []T{}, nil
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func one[T any](ctx context.Context, f *FallbackStore, op, id string, fn func(Store, context.Context, string) (*T, error)) (*T, error) {
	var row *T
	done, err := f.attempt(ctx, op, func(c context.Context) error {
		var e error
		row, e = fn(f.remote, c, id)
		return e
	}, nil)
	if done {
		return row, err
	}
	return fn(f.local, ctx, id)
}

func (f *FallbackStore) mutate(ctx context.Context, op string, fn func(Store, context.Context) error) error {
	done, err := f.attempt(ctx, op, func(c context.Context) error { return fn(f.remote, c) }, nil)
	if done {
		return err
	}
	return fn(f.local, ctx)
}

// ── Health ────────────────────────────────────────────────────────────────────

type pinger interface {
	Ping(ctx context.Context) error
}

// Store statuses reported by Health.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	StatusDisabled    = "disabled"
)

// Health describes both stores for the health endpoint.
type Health struct {
	Remote  string `json:"remote"`
	Local   string `json:"local"`
	Breaker string `json:"breaker"`
}

func (f *FallbackStore) Health(ctx context.Context) Health {
	h := Health{Remote: StatusDisabled, Local: StatusOK, Breaker: f.breaker.State().String()}
	if f.remote != nil {
		h.Remote = pingStatus(ctx, f.remote)
	}
	h.Local = pingStatus(ctx, f.local)
	return h
}

func pingStatus(ctx context.Context, s Store) string {
	p, ok := s.(pinger)
	if !ok {
		return StatusOK
	}
	if err := p.Ping(ctx); err != nil {
		return StatusUnavailable
	}
	return StatusOK
}

// ── Delegation ────────────────────────────────────────────────────────────────

func (f *FallbackStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	return list(ctx, f, "categories.list", Store.ListCategories)
}

func (f *FallbackStore) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return one(ctx, f, "categories.get", id, Store.GetCategory)
}

func (f *FallbackStore) CreateCategory(ctx context.Context, c *model.Category) error {
	return f.mutate(ctx, "categories.create", func(s Store, ctx context.Context) error { return s.CreateCategory(ctx, c) })
}

func (f *FallbackStore) UpdateCategory(ctx context.Context, c *model.Category) error {
	return f.mutate(ctx, "categories.update", func(s Store, ctx context.Context) error { return s.UpdateCategory(ctx, c) })
}

func (f *FallbackStore) DeleteCategory(ctx context.Context, id string) error {
	return f.mutate(ctx, "categories.delete", func(s Store, ctx context.Context) error { return s.DeleteCategory(ctx, id) })
}

func (f *FallbackStore) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return list(ctx, f, "suppliers.list", Store.ListSuppliers)
}

func (f *FallbackStore) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	return one(ctx, f, "suppliers.get", id, Store.GetSupplier)
}

func (f *FallbackStore) CreateSupplier(ctx context.Context, sup *model.Supplier) error {
	return f.mutate(ctx, "suppliers.create", func(s Store, ctx context.Context) error { return s.CreateSupplier(ctx, sup) })
}

func (f *FallbackStore) UpdateSupplier(ctx context.Context, sup *model.Supplier) error {
	return f.mutate(ctx, "suppliers.update", func(s Store, ctx context.Context) error { return s.UpdateSupplier(ctx, sup) })
}

func (f *FallbackStore) DeleteSupplier(ctx context.Context, id string) error {
	return f.mutate(ctx, "suppliers.delete", func(s Store, ctx context.Context) error { return s.DeleteSupplier(ctx, id) })
}

func (f *FallbackStore) ListProducts(ctx context.Context) ([]model.ProductDetail, error) {
	return list(ctx, f, "products.list", Store.ListProducts)
}

func (f *FallbackStore) GetProduct(ctx context.Context, id string) (*model.ProductDetail, error) {
	return one(ctx, f, "products.get", id, Store.GetProduct)
}

func (f *FallbackStore) CreateProduct(ctx context.Context, p *model.Product) error {
	return f.mutate(ctx, "products.create", func(s Store, ctx context.Context) error { return s.CreateProduct(ctx, p) })
}

func (f *FallbackStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	return f.mutate(ctx, "products.update", func(s Store, ctx context.Context) error { return s.UpdateProduct(ctx, p) })
}

func (f *FallbackStore) DeleteProduct(ctx context.Context, id string) error {
	return f.mutate(ctx, "products.delete", func(s Store, ctx context.Context) error { return s.DeleteProduct(ctx, id) })
}

func (f *FallbackStore) ListShops(ctx context.Context) ([]model.Shop, error) {
	return list(ctx, f, "shops.list", Store.ListShops)
}

func (f *FallbackStore) GetShop(ctx context.Context, id string) (*model.Shop, error) {
	return one(ctx, f, "shops.get", id, Store.GetShop)
}

func (f *FallbackStore) CreateShop(ctx context.Context, shop *model.Shop) error {
	return f.mutate(ctx, "shops.create", func(s Store, ctx context.Context) error { return s.CreateShop(ctx, shop) })
}

func (f *FallbackStore) UpdateShop(ctx context.Context, shop *model.Shop) error {
	return f.mutate(ctx, "shops.update", func(s Store, ctx context.Context) error { return s.UpdateShop(ctx, shop) })
}

func (f *FallbackStore) ListInventory(ctx context.Context) ([]model.InventoryDetail, error) {
	return list(ctx, f, "inventory.list", Store.ListInventory)
}

func (f *FallbackStore) GetInventory(ctx context.Context, id string) (*model.InventoryDetail, error) {
	return one(ctx, f, "inventory.get", id, Store.GetInventory)
}

func (f *FallbackStore) CreateInventory(ctx context.Context, inv *model.Inventory) error {
	return f.mutate(ctx, "inventory.create", func(s Store, ctx context.Context) error { return s.CreateInventory(ctx, inv) })
}

func (f *FallbackStore) UpdateInventory(ctx context.Context, inv *model.Inventory) error {
	return f.mutate(ctx, "inventory.update", func(s Store, ctx context.Context) error { return s.UpdateInventory(ctx, inv) })
}

func (f *FallbackStore) ListAlerts(ctx context.Context) ([]model.AlertDetail, error) {
	return list(ctx, f, "alerts.list", Store.ListAlerts)
}

func (f *FallbackStore) CreateAlert(ctx context.Context, a *model.StockAlert) error {
	return f.mutate(ctx, "alerts.create", func(s Store, ctx context.Context) error { return s.CreateAlert(ctx, a) })
}

func (f *FallbackStore) AcknowledgeAlert(ctx context.Context, id, by string, at time.Time) (*model.StockAlert, error) {
	var out *model.StockAlert
	err := f.mutate(ctx, "alerts.acknowledge", func(s Store, ctx context.Context) error {
		var e error
		out, e = s.AcknowledgeAlert(ctx, id, by, at)
		return e
	})
	return out, err
}

func (f *FallbackStore) ListSales(ctx context.Context) ([]model.SaleDetail, error) {
	return list(ctx, f, "sales.list", Store.ListSales)
}

func (f *FallbackStore) GetSale(ctx context.Context, id string) (*model.SaleDetail, error) {
	return one(ctx, f, "sales.get", id, Store.GetSale)
}

func (f *FallbackStore) CreateSale(ctx context.Context, sale *model.Sale, items []model.SaleItem) error {
	return f.mutate(ctx, "sales.create", func(s Store, ctx context.Context) error { return s.CreateSale(ctx, sale, items) })
}

func (f *FallbackStore) ListReorders(ctx context.Context) ([]model.ReorderDetail, error) {
	return list(ctx, f, "reorders.list", Store.ListReorders)
}

func (f *FallbackStore) GetReorder(ctx context.Context, id string) (*model.ReorderDetail, error) {
	return one(ctx, f, "reorders.get", id, Store.GetReorder)
}

func (f *FallbackStore) CreateReorder(ctx context.Context, r *model.ReorderRequest) error {
	return f.mutate(ctx, "reorders.create", func(s Store, ctx context.Context) error { return s.CreateReorder(ctx, r) })
}

func (f *FallbackStore) TransitionReorder(ctx context.Context, r *model.ReorderRequest, from model.ReorderStatus) error {
	return f.mutate(ctx, "reorders.transition", func(s Store, ctx context.Context) error { return s.TransitionReorder(ctx, r, from) })
}
