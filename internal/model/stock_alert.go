package model

import (
	"fmt"
	"time"
)

// StockAlert is raised when an inventory row falls to or below its reorder level.
type StockAlert struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	ProductID      string     `gorm:"index;not null" json:"product_id"`
	ShopID         string     `gorm:"index;not null" json:"shop_id"`
	AlertLevel     AlertLevel `gorm:"type:varchar(20);not null" json:"alert_level"`
	Message        string     `gorm:"not null" json:"message"`
	Acknowledged   bool       `gorm:"not null;default:false" json:"acknowledged"`
	AcknowledgedBy *string    `json:"acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at"`
	CreatedAt      time.Time  `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
	Shop    *Shop    `gorm:"foreignKey:ShopID" json:"-"`
}

func (StockAlert) TableName() string { return "stock_alerts" }

// AlertMessage formats the message stored on a generated alert.
func AlertMessage(level AlertLevel, product, shop string, quantity int) string {
	if level == AlertCritical {
		return fmt.Sprintf("CRITICAL: %s at %s is critically low (%d units)", product, shop, quantity)
	}
	return fmt.Sprintf("LOW STOCK: %s at %s needs reorder (%d units)", product, shop, quantity)
}
