package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// allowed transitions: pending -> confirmed/cancelled, confirmed -> cancelled
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
}

// CanTransition melaporkan apakah status boleh berpindah dari -> to
func (from BookingStatus) CanTransition(to BookingStatus) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Valid -> hanya tiga status yang dikenal
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID    uint           `gorm:"not null;index" json:"restaurant_id"`
	Restaurant      *Restaurant    `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	TableID         *uint          `gorm:"index" json:"table_id"`
	Table           *Table         `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	BookingDate     datatypes.Date `gorm:"not null;index" json:"booking_date"`
	BookingTime     datatypes.Time `gorm:"not null" json:"booking_time"`
	PartySize       int            `gorm:"not null" json:"party_size"`
	DurationHours   int            `gorm:"not null;default:2" json:"duration_hours"`
	CustomerName    string         `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerPhone   string         `gorm:"type:varchar(20);not null" json:"customer_phone"`
	CustomerEmail   string         `gorm:"type:varchar(100)" json:"customer_email"`
	Status          BookingStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SpecialRequests string         `gorm:"type:text" json:"special_requests"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}
