package dto

import "github.com/shopspring/decimal"

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// ─── Suppliers ───────────────────────────────────────────────────────────────

// SupplierFilter is bound from the query string of GET /v1/suppliers.
type SupplierFilter struct {
	Search string `form:"search"` // name or contact person, case-insensitive
}

type SupplierRequest struct {
	Name          string  `json:"name"           validate:"required,min=1,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=200"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Phone         *string `json:"phone"          validate:"omitempty,max=50"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zip_code"       validate:"omitempty,max=20"`
	Notes         *string `json:"notes"`
}

// OrderStockRequest places a reorder with a specific supplier.
type OrderStockRequest struct {
	ShopID    string  `json:"shop_id"    validate:"required"`
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity"   validate:"required,min=1"`
	Notes     *string `json:"notes"`
}

// ─── Products ────────────────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Search     string `form:"search"` // name, sku or brand
	CategoryID string `form:"category_id"`
	SupplierID string `form:"supplier_id"`
}

type ProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=1,max=200"`
	SKU         string          `json:"sku"         validate:"required,min=1,max=50"`
	Description *string         `json:"description"`
	Brand       *string         `json:"brand"       validate:"omitempty,max=100"`
	PartNumber  *string         `json:"part_number" validate:"omitempty,max=100"`
	CategoryID  *string         `json:"category_id"`
	SupplierID  *string         `json:"supplier_id"`
	CostPrice   decimal.Decimal `json:"cost_price"  validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"min=0"`
}

// ─── Shops ───────────────────────────────────────────────────────────────────

type ShopRequest struct {
	Name         string  `json:"name"          validate:"required,min=1,max=200"`
	Location     *string `json:"location"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=50"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"      validate:"omitempty,max=20"`
}
