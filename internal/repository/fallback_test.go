package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/infra"
	"autoparts/internal/model"
)

var errConnRefused = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

// flakyRemote plays the persistent store: a second local store whose
// overridden methods can be switched off or forced to fail.
type flakyRemote struct {
	*LocalStore
	down   bool
	reject bool
	calls  int
}

func (r *flakyRemote) fail() error {
	r.calls++
	if r.down {
		return errConnRefused
	}
	if r.reject {
		return fmt.Errorf("%w: duplicate key value violates unique constraint", ErrRejected)
	}
	return nil
}

func (r *flakyRemote) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := r.fail(); err != nil {
		return nil, err
	}
	return r.LocalStore.ListCategories(ctx)
}

func (r *flakyRemote) ListProducts(ctx context.Context) ([]model.ProductDetail, error) {
	if err := r.fail(); err != nil {
		return nil, err
	}
	return r.LocalStore.ListProducts(ctx)
}

func (r *flakyRemote) GetProduct(ctx context.Context, id string) (*model.ProductDetail, error) {
	if err := r.fail(); err != nil {
		return nil, err
	}
	return r.LocalStore.GetProduct(ctx, id)
}

func (r *flakyRemote) CreateCategory(ctx context.Context, c *model.Category) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.LocalStore.CreateCategory(ctx, c)
}

func (r *flakyRemote) UpdateCategory(ctx context.Context, c *model.Category) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.LocalStore.UpdateCategory(ctx, c)
}

func (r *flakyRemote) CreateSale(ctx context.Context, s *model.Sale, items []model.SaleItem) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.LocalStore.CreateSale(ctx, s, items)
}

func (r *flakyRemote) TransitionReorder(ctx context.Context, rr *model.ReorderRequest, from model.ReorderStatus) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.LocalStore.TransitionReorder(ctx, rr, from)
}

type fallbackFixture struct {
	store  *FallbackStore
	remote *flakyRemote
	local  *LocalStore
}

func newFallback(t *testing.T, seedRemote bool) fallbackFixture {
	t.Helper()
	local, _ := newSeededLocal(t)
	remoteStore, _ := newLocal(t)
	if seedRemote {
		_, err := remoteStore.Init(context.Background(), fixedDataset)
		require.NoError(t, err)
	}
	remote := &flakyRemote{LocalStore: remoteStore}
	breaker := infra.NewBreaker(infra.BreakerConfig{FailureThreshold: 3, OpenTimeout: time.Minute})
	return fallbackFixture{
		store:  NewFallbackStore(remote, local, breaker, time.Second),
		remote: remote,
		local:  local,
	}
}

func TestFallback_ListServedByRemote(t *testing.T) {
	fx := newFallback(t, true)
	require.NoError(t, fx.remote.LocalStore.CreateCategory(context.Background(), &model.Category{Name: "Remote Only"}))

	rows, err := fx.store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 11)
}

func TestFallback_UnreachableRemoteServesSeededProducts(t *testing.T) {
	fx := newFallback(t, true)
	fx.remote.down = true

	rows, err := fx.store.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 26)
	for _, p := range rows {
		assert.NotEqual(t, model.NotAvailable, p.CategoryName, p.ID)
		assert.NotEqual(t, model.NotAvailable, p.SupplierName, p.ID)
	}
}

func TestFallback_EmptyRemoteListFallsThrough(t *testing.T) {
	fx := newFallback(t, false)

	rows, err := fx.store.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 26)
	assert.Equal(t, 1, fx.remote.calls)
}

func TestFallback_RemoteNotFoundFallsThroughOnRead(t *testing.T) {
	fx := newFallback(t, false)

	p, err := fx.store.GetProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "BRK-001", p.SKU)
}

func TestFallback_RemoteNotFoundFallsThroughOnUpdate(t *testing.T) {
	fx := newFallback(t, false)

	require.NoError(t, fx.store.UpdateCategory(context.Background(), &model.Category{ID: "cat-1", Name: "Brake Systems"}))
	c, err := fx.local.GetCategory(context.Background(), "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Brake Systems", c.Name)
}

func TestFallback_RejectionIsSurfaced(t *testing.T) {
	fx := newFallback(t, true)
	fx.remote.reject = true

	err := fx.store.CreateCategory(context.Background(), &model.Category{Name: "Brakes"})
	assert.ErrorIs(t, err, ErrRejected)

	rows, err := fx.local.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 10, "rejected write must not land in the fallback store")
}

func TestFallback_SaleWhileRemoteDownDecrementsLocalStock(t *testing.T) {
	fx := newFallback(t, true)
	fx.remote.down = true
	ctx := context.Background()
	before := inventoryFor(t, fx.local, "prod-1", "shop-1")

	sale := &model.Sale{ShopID: "shop-1", UserID: "demo-user", PaymentMethod: "card",
		TotalAmount: decimal.RequireFromString("119.98")}
	items := []model.SaleItem{{ProductID: "prod-1", Quantity: 2,
		UnitPrice: decimal.RequireFromString("59.99"), Subtotal: decimal.RequireFromString("119.98")}}
	require.NoError(t, fx.store.CreateSale(ctx, sale, items))

	assert.Equal(t, max(before.Quantity-2, 0), inventoryFor(t, fx.local, "prod-1", "shop-1").Quantity)
}

func TestFallback_StaleTransitionIsFinal(t *testing.T) {
	fx := newFallback(t, true)
	ctx := context.Background()

	r := &model.ReorderRequest{ShopID: "shop-1", ProductID: "prod-1", SupplierID: "sup-1", Quantity: 10}
	require.NoError(t, fx.remote.LocalStore.CreateReorder(ctx, r))

	r.Apply(model.ReorderReceived, time.Now())
	err := fx.store.TransitionReorder(ctx, r, model.ReorderOrdered)
	assert.ErrorIs(t, err, ErrStaleStatus)
}

func TestFallback_BreakerSkipsRemoteOnceOpen(t *testing.T) {
	fx := newFallback(t, true)
	fx.remote.down = true
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := fx.store.ListCategories(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, fx.remote.calls)
	assert.Equal(t, "open", fx.store.Health(ctx).Breaker)
}

func TestFallback_LocalOnlyMode(t *testing.T) {
	local, _ := newSeededLocal(t)
	store := NewFallbackStore(nil, local, nil, 0)

	rows, err := store.ListShops(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "disabled", store.Health(context.Background()).Remote)
}

func TestFallback_BothStoresDownYieldsEmptyList(t *testing.T) {
	local, mr := newSeededLocal(t)
	mr.Close()
	store := NewFallbackStore(nil, local, nil, 0)

	rows, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}
