package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an append-only POS transaction at one shop.
type Sale struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	ShopID        string          `gorm:"index;not null" json:"shop_id"`
	UserID        string          `gorm:"not null" json:"user_id"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CustomerName  *string         `json:"customer_name"`
	CustomerPhone *string         `json:"customer_phone"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`

	Shop  *Shop      `gorm:"foreignKey:ShopID" json:"-"`
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"-"`
}

func (Sale) TableName() string { return "sales" }

// SaleItem is one cart line. Subtotal = Quantity × UnitPrice, computed by the caller.
type SaleItem struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	SaleID    string          `gorm:"index;not null" json:"sale_id"`
	ProductID string          `gorm:"not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (SaleItem) TableName() string { return "sale_items" }
