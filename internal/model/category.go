package model

import "time"

// Category groups products (Brakes, Filters, ...). Names are unique by
// convention only.
type Category struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }
