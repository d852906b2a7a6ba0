package model

import "time"

// Shop is one retail location holding its own inventory.
type Shop struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Location     *string   `json:"location"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	State        *string   `json:"state"`
	ZipCode      *string   `json:"zip_code"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Shop) TableName() string { return "shops" }
