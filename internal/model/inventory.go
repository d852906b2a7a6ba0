package model

import "time"

// Inventory is the stock of one product at one shop. There is conceptually a
// single row per (ProductID, ShopID) pair.
type Inventory struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	ProductID       string     `gorm:"index;not null" json:"product_id"`
	ShopID          string     `gorm:"index;not null" json:"shop_id"`
	Quantity        int        `gorm:"not null;default:0" json:"quantity"`
	ReorderLevel    int        `gorm:"not null;default:0" json:"reorder_level"`
	ReorderQuantity int        `gorm:"not null;default:0" json:"reorder_quantity"`
	Location        *string    `json:"location"`
	LastRestocked   *time.Time `json:"last_restocked"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
	Shop    *Shop    `gorm:"foreignKey:ShopID" json:"-"`
}

// TableName keeps the singular table name used by the persistent store.
func (Inventory) TableName() string { return "inventory" }
