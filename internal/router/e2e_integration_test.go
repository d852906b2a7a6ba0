//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"math/rand/v2"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"autoparts/internal/config"
	"autoparts/internal/infra"
	"autoparts/internal/model"
	"autoparts/internal/repository"
	"autoparts/internal/seed"
	"autoparts/internal/worker"
)

type e2eEnv struct {
	*testEnv
	remote *repository.RemoteStore
	pg     testcontainers.Container
}

func setupE2E(t *testing.T) *e2eEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("autoparts_test"),
		tcPostgres.WithUsername("autoparts"),
		tcPostgres.WithPassword("autoparts"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{Env: "test", DatabaseURL: pgURL, RedisURL: rdURL, FallbackKeyPrefix: "autoparts_"}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	ds := seed.Generate(rand.New(rand.NewPCG(9, 9)), time.Now())
	remote := repository.NewRemoteStore(db)
	seedRemote(t, remote, ds)

	local := repository.NewLocalStore(rdb, cfg.FallbackKeyPrefix)
	_, err = local.Init(ctx, func() seed.Dataset { return ds })
	require.NoError(t, err)

	breaker := infra.NewBreaker(infra.BreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	store := repository.NewFallbackStore(remote, local, breaker, 2*time.Second)

	rctx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	return &e2eEnv{
		testEnv: &testEnv{engine: New(rctx, cfg, store, worker.NewDispatcher(rdb)), rdb: rdb},
		remote:  remote,
		pg:      pgC,
	}
}

func seedRemote(t *testing.T, remote *repository.RemoteStore, ds seed.Dataset) {
	t.Helper()
	ctx := context.Background()
	for i := range ds.Categories {
		require.NoError(t, remote.CreateCategory(ctx, &ds.Categories[i]))
	}
	for i := range ds.Suppliers {
		require.NoError(t, remote.CreateSupplier(ctx, &ds.Suppliers[i]))
	}
	for i := range ds.Products {
		require.NoError(t, remote.CreateProduct(ctx, &ds.Products[i]))
	}
	for i := range ds.Shops {
		require.NoError(t, remote.CreateShop(ctx, &ds.Shops[i]))
	}
	for i := range ds.Inventory {
		require.NoError(t, remote.CreateInventory(ctx, &ds.Inventory[i]))
	}
}

func TestE2E_SaleOnPersistentStore(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()

	before, err := env.remote.GetInventory(ctx, "inv-shop-1-prod-1")
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/v1/sales", map[string]any{
		"shop_id":        "shop-1",
		"payment_method": "cash",
		"items":          []map[string]any{{"product_id": "prod-1", "quantity": 2, "unit_price": "59.99"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sale := decode[model.SaleDetail](t, w)
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("119.98")))

	after, err := env.remote.GetInventory(ctx, "inv-shop-1-prod-1")
	require.NoError(t, err)
	assert.Equal(t, max(before.Quantity-2, 0), after.Quantity)

	stored, err := env.remote.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestE2E_FallbackWhenPersistentStoreStops(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()

	timeout := 5 * time.Second
	require.NoError(t, env.pg.Stop(ctx, &timeout))

	w := env.do(t, http.MethodGet, "/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[[]model.ProductDetail](t, w)
	require.Len(t, products, 26)
	for _, p := range products {
		assert.NotEqual(t, model.NotAvailable, p.CategoryName)
	}

	w = env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, repository.StatusUnavailable, body["remote"])
}
