package model

import "github.com/shopspring/decimal"

// Placeholders used when a relation cannot be resolved.
const (
	UnknownName  = "Unknown"
	NotAvailable = "N/A"
)

// The *Detail types are the denormalized shapes returned by both stores, so
// callers never see which path served them.

type ProductDetail struct {
	Product
	CategoryName string `json:"category_name"`
	SupplierName string `json:"supplier_name"`
}

type InventoryDetail struct {
	Inventory
	ProductName  string          `json:"product_name"`
	ProductSKU   string          `json:"product_sku"`
	ProductBrand string          `json:"product_brand"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ShopName     string          `json:"shop_name"`
	StockStatus  StockStatus     `json:"stock_status"`
}

type AlertDetail struct {
	StockAlert
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	ShopName    string `json:"shop_name"`
}

type SaleItemDetail struct {
	SaleItem
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
}

type SaleDetail struct {
	Sale
	ShopName string           `json:"shop_name"`
	Items    []SaleItemDetail `json:"items,omitempty"`
}

type ReorderDetail struct {
	ReorderRequest
	ProductName  string `json:"product_name"`
	ProductSKU   string `json:"product_sku"`
	SupplierName string `json:"supplier_name"`
	ShopName     string `json:"shop_name"`
}
