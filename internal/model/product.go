package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog part. Stock levels live in Inventory, per shop.
type Product struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	SKU         string          `gorm:"column:sku;not null" json:"sku"`
	Description *string         `json:"description"`
	Brand       *string         `json:"brand"`
	PartNumber  *string         `json:"part_number"`
	CategoryID  *string         `gorm:"index" json:"category_id"`
	SupplierID  *string         `gorm:"index" json:"supplier_id"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost_price"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"-"`
}

func (Product) TableName() string { return "products" }
