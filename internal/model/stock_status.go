package model

// StockStatus is the human-facing label for an inventory row.
type StockStatus string

const (
	StockOut      StockStatus = "Out of Stock"
	StockCritical StockStatus = "Critical"
	StockLow      StockStatus = "Low"
	StockAdequate StockStatus = "Adequate"
	StockGood     StockStatus = "Good"
)

// AlertLevel mirrors the stock_status enumeration of the persistent store.
type AlertLevel string

const (
	AlertCritical AlertLevel = "critical"
	AlertLow      AlertLevel = "low"
	AlertAdequate AlertLevel = "adequate"
	AlertGood     AlertLevel = "good"
)

func (l AlertLevel) Valid() bool {
	switch l {
	case AlertCritical, AlertLow, AlertAdequate, AlertGood:
		return true
	}
	return false
}

// ClassifyStock maps (quantity, reorderLevel) to a status. First match wins:
// zero, ≤ half the level, ≤ the level, ≤ twice the level, otherwise good.
func ClassifyStock(quantity, reorderLevel int) StockStatus {
	switch {
	case quantity == 0:
		return StockOut
	case 2*quantity <= reorderLevel:
		return StockCritical
	case quantity <= reorderLevel:
		return StockLow
	case quantity <= 2*reorderLevel:
		return StockAdequate
	default:
		return StockGood
	}
}

// AlertLevel folds "Out of Stock" into critical.
func (s StockStatus) AlertLevel() AlertLevel {
	switch s {
	case StockOut, StockCritical:
		return AlertCritical
	case StockLow:
		return AlertLow
	case StockAdequate:
		return AlertAdequate
	default:
		return AlertGood
	}
}

// NeedsAlert reports whether the row sits at or below its reorder level.
func (s StockStatus) NeedsAlert() bool {
	return s == StockOut || s == StockCritical || s == StockLow
}
