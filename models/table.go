package models

import "time"

// Table adalah meja fisik milik satu restoran. Binding ke booking disimpan di Booking.
type Table struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_restaurant_table_number" json:"restaurant_id"`
	TableNumber  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_restaurant_table_number" json:"table_number"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	IsAvailable  bool      `gorm:"not null" json:"is_available"`
	Version      uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
