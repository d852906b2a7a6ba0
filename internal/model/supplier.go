package model

import "time"

// Supplier is a parts distributor that reorder requests are placed with.
type Supplier struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	ContactPerson *string   `json:"contact_person"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Address       *string   `json:"address"`
	City          *string   `json:"city"`
	State         *string   `json:"state"`
	ZipCode       *string   `json:"zip_code"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Supplier) TableName() string { return "suppliers" }
