package service

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"autoparts/internal/model"
	"autoparts/internal/repository"
	"autoparts/internal/seed"
	"autoparts/internal/worker"
)

// ── Fixtures ─────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store      *repository.LocalStore
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
}

func newFixture(t *testing.T, generate func() seed.Dataset) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := repository.NewLocalStore(rdb, "autoparts_")
	_, err := store.Init(context.Background(), generate)
	require.NoError(t, err)
	return &fixture{store: store, rdb: rdb, dispatcher: worker.NewDispatcher(rdb)}
}

func seededFixture(t *testing.T) *fixture {
	return newFixture(t, func() seed.Dataset {
		return seed.Generate(rand.New(rand.NewPCG(7, 11)), fixedNow)
	})
}

func (f *fixture) queueLen(t *testing.T, queue string) int64 {
	t.Helper()
	n, err := f.rdb.LLen(context.Background(), queue).Result()
	require.NoError(t, err)
	return n
}

func (f *fixture) inventory(t *testing.T, productID, shopID string) model.InventoryDetail {
	t.Helper()
	rows, err := f.store.ListInventory(context.Background())
	require.NoError(t, err)
	for _, r := range rows {
		if r.ProductID == productID && r.ShopID == shopID {
			return r
		}
	}
	t.Fatalf("no inventory row for %s at %s", productID, shopID)
	return model.InventoryDetail{}
}

func clock(t time.Time) func() time.Time { return func() time.Time { return t } }

func strPtr(s string) *string { return &s }
