package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts/internal/dto"
	"autoparts/internal/model"
	"autoparts/internal/seed"
	"autoparts/internal/worker"
)

func newReorders(f *fixture) *reorderService {
	svc := NewReorderService(f.store, f.dispatcher).(*reorderService)
	svc.now = clock(fixedNow)
	return svc
}

func TestReorderService_Create_DefaultsSupplier(t *testing.T) {
	f := seededFixture(t)
	svc := newReorders(f)

	r, err := svc.Create(context.Background(), seed.DemoUser, dto.CreateReorderRequest{
		ShopID: "shop-1", ProductID: "prod-1", Quantity: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReorderPending, r.Status)
	assert.Equal(t, "sup-1", r.SupplierID)
	assert.Equal(t, "AutoZone Distribution", r.SupplierName)
	require.NotNil(t, r.RequestedBy)
	assert.Equal(t, seed.DemoUser, *r.RequestedBy)
	assert.Nil(t, r.OrderedDate)
}

func TestReorderService_Create_Validation(t *testing.T) {
	f := seededFixture(t)
	svc := newReorders(f)
	ctx := context.Background()

	var ve *ValidationError
	_, err := svc.Create(ctx, "", dto.CreateReorderRequest{ShopID: "shop-1", ProductID: "prod-1", Quantity: 0})
	require.True(t, errors.As(err, &ve))

	_, err = svc.Create(ctx, "", dto.CreateReorderRequest{ShopID: "shop-1", ProductID: "prod-1", SupplierID: strPtr("sup-404"), Quantity: 5})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "supplier_id", ve.Field)
}

func TestReorderService_Lifecycle(t *testing.T) {
	f := seededFixture(t)
	svc := newReorders(f)
	ctx := context.Background()

	before := f.inventory(t, "prod-1", "shop-1").Quantity
	r, err := svc.Create(ctx, seed.DemoUser, dto.CreateReorderRequest{ShopID: "shop-1", ProductID: "prod-1", Quantity: 24})
	require.NoError(t, err)

	ordered, err := svc.Transition(ctx, r.ID, model.ReorderOrdered)
	require.NoError(t, err)
	require.NotNil(t, ordered.OrderedDate)
	require.NotNil(t, ordered.ExpectedDate)
	assert.True(t, ordered.OrderedDate.Equal(fixedNow))
	assert.Equal(t, model.ExpectedLeadTime, ordered.ExpectedDate.Sub(*ordered.OrderedDate))
	assert.Equal(t, int64(1), f.queueLen(t, worker.QueueEmail), "purchase order email queued")

	received, err := svc.Transition(ctx, r.ID, model.ReorderReceived)
	require.NoError(t, err)
	require.NotNil(t, received.ReceivedDate)
	assert.Equal(t, before+24, f.inventory(t, "prod-1", "shop-1").Quantity)

	_, err = svc.Transition(ctx, r.ID, model.ReorderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, before+24, f.inventory(t, "prod-1", "shop-1").Quantity, "terminal request restocks once")
}

func TestReorderService_IllegalTransitions(t *testing.T) {
	f := seededFixture(t)
	svc := newReorders(f)
	ctx := context.Background()

	r, err := svc.Create(ctx, "", dto.CreateReorderRequest{ShopID: "shop-2", ProductID: "prod-3", Quantity: 10})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, r.ID, model.ReorderReceived)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	cancelled, err := svc.Transition(ctx, r.ID, model.ReorderCancelled)
	require.NoError(t, err)
	assert.Nil(t, cancelled.OrderedDate)

	_, err = svc.Transition(ctx, r.ID, model.ReorderOrdered)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, f.queueLen(t, worker.QueueEmail))
}

func TestReorderService_ListByStatus(t *testing.T) {
	f := seededFixture(t)
	svc := newReorders(f)

	pending, err := svc.List(context.Background(), dto.ReorderFilter{Status: "pending"})
	require.NoError(t, err)
	for _, r := range pending {
		assert.Equal(t, model.ReorderPending, r.Status)
	}
}
