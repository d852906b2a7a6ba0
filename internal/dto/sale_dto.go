package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"autoparts/internal/model"
)

// ─── Sales ───────────────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	ShopID string     `form:"shop_id"`
	Search string     `form:"search"` // customer name, phone or sale id
	Since  *time.Time `form:"since" time_format:"2006-01-02"`
}

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	// UnitPrice overrides the catalog price when present.
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
}

type CreateSaleRequest struct {
	ShopID        string            `json:"shop_id"        validate:"required"`
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card check"`
	CustomerName  *string           `json:"customer_name"  validate:"omitempty,max=200"`
	CustomerPhone *string           `json:"customer_phone" validate:"omitempty,max=50"`
}

type SaleListResponse struct {
	Data    []model.SaleDetail `json:"data"`
	Count   int                `json:"count"`
	Revenue decimal.Decimal    `json:"revenue"`
	Average decimal.Decimal    `json:"average"`
}

// ─── Reorders ────────────────────────────────────────────────────────────────

// ReorderFilter is bound from the query string of GET /v1/reorders.
type ReorderFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=pending ordered received cancelled"`
}

type CreateReorderRequest struct {
	ShopID    string `json:"shop_id"    validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	// SupplierID defaults to the product's supplier.
	SupplierID *string `json:"supplier_id"`
	Quantity   int     `json:"quantity"    validate:"required,min=1"`
	Notes      *string `json:"notes"`
}

type TransitionReorderRequest struct {
	Status model.ReorderStatus `json:"status" validate:"required,oneof=pending ordered received cancelled"`
}
