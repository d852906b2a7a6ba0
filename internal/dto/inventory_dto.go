package dto

import (
	"github.com/shopspring/decimal"

	"autoparts/internal/model"
)

// ─── Inventory ───────────────────────────────────────────────────────────────

// InventoryFilter is bound from the query string of GET /v1/inventory.
type InventoryFilter struct {
	ShopID   string `form:"shop_id"`
	Search   string `form:"search"`    // product name, sku or brand
	LowStock bool   `form:"low_stock"` // only rows at or below their reorder level
}

type CreateInventoryRequest struct {
	ProductID       string  `json:"product_id"       validate:"required"`
	ShopID          string  `json:"shop_id"          validate:"required"`
	Quantity        int     `json:"quantity"         validate:"min=0"`
	ReorderLevel    int     `json:"reorder_level"    validate:"min=0"`
	ReorderQuantity int     `json:"reorder_quantity" validate:"min=0"`
	Location        *string `json:"location"`
}

// AdjustInventoryRequest updates only the fields that are present.
type AdjustInventoryRequest struct {
	Quantity        *int    `json:"quantity"         validate:"omitempty,min=0"`
	ReorderLevel    *int    `json:"reorder_level"    validate:"omitempty,min=0"`
	ReorderQuantity *int    `json:"reorder_quantity" validate:"omitempty,min=0"`
	Location        *string `json:"location"`
}

// StockStatusQuery is bound from the query string of GET /v1/stock-status.
type StockStatusQuery struct {
	Quantity     int `form:"quantity"      validate:"min=0"`
	ReorderLevel int `form:"reorder_level" validate:"min=0"`
}

type StockStatusResponse struct {
	Quantity     int               `json:"quantity"`
	ReorderLevel int               `json:"reorder_level"`
	Status       model.StockStatus `json:"status"`
	AlertLevel   model.AlertLevel  `json:"alert_level"`
}

// ─── Alerts ──────────────────────────────────────────────────────────────────

// AlertFilter is bound from the query string of GET /v1/alerts.
type AlertFilter struct {
	Acknowledged *bool  `form:"acknowledged"`
	Level        string `form:"level" validate:"omitempty,oneof=critical low adequate good"`
}

type ScanResponse struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type DashboardResponse struct {
	TotalProducts      int                 `json:"total_products"`
	LowStockItems      int                 `json:"low_stock_items"`
	CriticalStockItems int                 `json:"critical_stock_items"`
	TodaySales         int                 `json:"today_sales"`
	TodayRevenue       decimal.Decimal     `json:"today_revenue"`
	RecentAlerts       []model.AlertDetail `json:"recent_alerts"`
	RecentSales        []model.SaleDetail  `json:"recent_sales"`
}
