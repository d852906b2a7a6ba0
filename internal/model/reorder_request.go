package model

import "time"

// ReorderRequest tracks a purchase order placed with a supplier to restock a
// product at a shop.
type ReorderRequest struct {
	ID           string        `gorm:"primaryKey" json:"id"`
	ShopID       string        `gorm:"index;not null" json:"shop_id"`
	ProductID    string        `gorm:"index;not null" json:"product_id"`
	SupplierID   string        `gorm:"index;not null" json:"supplier_id"`
	Quantity     int           `gorm:"not null" json:"quantity"`
	Status       ReorderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RequestedBy  *string       `json:"requested_by"`
	Notes        *string       `json:"notes"`
	CreatedAt    time.Time     `json:"created_at"`
	OrderedDate  *time.Time    `json:"ordered_date"`
	ExpectedDate *time.Time    `json:"expected_date"`
	ReceivedDate *time.Time    `json:"received_date"`

	Product  *Product  `gorm:"foreignKey:ProductID" json:"-"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"-"`
	Shop     *Shop     `gorm:"foreignKey:ShopID" json:"-"`
}

func (ReorderRequest) TableName() string { return "reorder_requests" }
