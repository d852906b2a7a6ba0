package model

import "time"

// ReorderStatus mirrors the reorder_status enumeration.
// Lifecycle: pending → ordered → received, or pending → cancelled.
type ReorderStatus string

const (
	ReorderPending   ReorderStatus = "pending"
	ReorderOrdered   ReorderStatus = "ordered"
	ReorderReceived  ReorderStatus = "received"
	ReorderCancelled ReorderStatus = "cancelled"
)

// ExpectedLeadTime is the fixed offset between ordered_date and expected_date.
const ExpectedLeadTime = 5 * 24 * time.Hour

func (s ReorderStatus) Valid() bool {
	switch s {
	case ReorderPending, ReorderOrdered, ReorderReceived, ReorderCancelled:
		return true
	}
	return false
}

func (s ReorderStatus) Terminal() bool {
	return s == ReorderReceived || s == ReorderCancelled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s ReorderStatus) CanTransitionTo(next ReorderStatus) bool {
	switch s {
	case ReorderPending:
		return next == ReorderOrdered || next == ReorderCancelled
	case ReorderOrdered:
		return next == ReorderReceived
	}
	return false
}

// Apply stamps the dates tied to entering next. The caller checks legality.
func (r *ReorderRequest) Apply(next ReorderStatus, now time.Time) {
	r.Status = next
	switch next {
	case ReorderOrdered:
		ordered := now
		expected := now.Add(ExpectedLeadTime)
		r.OrderedDate = &ordered
		r.ExpectedDate = &expected
	case ReorderReceived:
		received := now
		r.ReceivedDate = &received
	}
}
