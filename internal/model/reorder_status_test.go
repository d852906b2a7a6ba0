package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[ReorderStatus][]ReorderStatus{
		ReorderPending: {ReorderOrdered, ReorderCancelled},
		ReorderOrdered: {ReorderReceived},
	}
	all := []ReorderStatus{ReorderPending, ReorderOrdered, ReorderReceived, ReorderCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s → %s", from, to)
		}
	}
	assert.True(t, ReorderReceived.Terminal())
	assert.True(t, ReorderCancelled.Terminal())
	assert.False(t, ReorderStatus("shipped").Valid())
}

func TestReorderRequest_Apply(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	r := &ReorderRequest{Status: ReorderPending}

	r.Apply(ReorderOrdered, now)
	require.NotNil(t, r.OrderedDate)
	require.NotNil(t, r.ExpectedDate)
	assert.Equal(t, now, *r.OrderedDate)
	assert.Equal(t, 5*24*time.Hour, r.ExpectedDate.Sub(*r.OrderedDate))
	assert.Nil(t, r.ReceivedDate)

	later := now.Add(72 * time.Hour)
	r.Apply(ReorderReceived, later)
	assert.Equal(t, ReorderReceived, r.Status)
	require.NotNil(t, r.ReceivedDate)
	assert.Equal(t, later, *r.ReceivedDate)
	assert.Equal(t, now, *r.OrderedDate)
}
