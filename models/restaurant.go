package models

import "time"

type Restaurant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(120);not null" json:"name"`
	Slug          string    `gorm:"type:varchar(140);uniqueIndex;not null" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	Address       string    `gorm:"type:varchar(200);not null" json:"address"`
	City          string    `gorm:"type:varchar(100)" json:"city"`
	State         string    `gorm:"type:varchar(100)" json:"state"`
	ZipCode       string    `gorm:"type:varchar(20)" json:"zip_code"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone"`
	Email         string    `gorm:"type:varchar(120)" json:"email"`
	CuisineType   string    `gorm:"type:varchar(60)" json:"cuisine_type"`
	PriceRange    string    `gorm:"type:varchar(10);default:'$'" json:"price_range"`
	TotalCapacity int       `gorm:"not null;default:50" json:"total_capacity"`
	OpeningTime   string    `gorm:"type:varchar(5)" json:"opening_time"`
	ClosingTime   string    `gorm:"type:varchar(5)" json:"closing_time"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	Tables        []Table   `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tables,omitempty"`
	Bookings      []Booking `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
