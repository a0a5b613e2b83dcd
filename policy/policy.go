// Package policy memutuskan operasi apa yang boleh dilakukan setiap role.
//
// Role dipetakan ke kumpulan capability secara eksplisit. Manager dan admin sama-sama
// memegang capability staff; hanya admin yang memegang capability admin.
package policy

import (
	"strings"

	"github.com/yeremiapane/table-booking/models"
)

type Operation string

const (
	// customer-level
	OpCreateBooking     Operation = "booking.create"
	OpViewOwnBookings   Operation = "booking.view_own"
	OpViewNotifications Operation = "notification.view_own"

	// manager-level (staff)
	OpConfirmBooking          Operation = "booking.confirm"
	OpCancelBooking           Operation = "booking.cancel"
	OpAssignTable             Operation = "booking.assign_table"
	OpUpdateBookingStatus     Operation = "booking.update_status"
	OpViewAllBookings         Operation = "booking.view_all"
	OpManageTables            Operation = "table.manage"
	OpToggleTableAvailability Operation = "table.toggle_availability"
	OpViewReports             Operation = "report.view"

	// admin-level
	OpManageRestaurants Operation = "restaurant.manage"
	OpToggleUserActive  Operation = "user.toggle_active"
	OpViewAllUsers      Operation = "user.view_all"
)

type Capability string

const (
	CapCustomer Capability = "customer"
	CapStaff    Capability = "staff"
	CapAdmin    Capability = "admin"
)

var operationCapability = map[Operation]Capability{
	OpCreateBooking:     CapCustomer,
	OpViewOwnBookings:   CapCustomer,
	OpViewNotifications: CapCustomer,

	OpConfirmBooking:          CapStaff,
	OpCancelBooking:           CapStaff,
	OpAssignTable:             CapStaff,
	OpUpdateBookingStatus:     CapStaff,
	OpViewAllBookings:         CapStaff,
	OpManageTables:            CapStaff,
	OpToggleTableAvailability: CapStaff,
	OpViewReports:             CapStaff,

	OpManageRestaurants: CapAdmin,
	OpToggleUserActive:  CapAdmin,
	OpViewAllUsers:      CapAdmin,
}

var roleCapabilities = map[models.Role][]Capability{
	models.RoleCustomer: {CapCustomer},
	models.RoleManager:  {CapCustomer, CapStaff},
	models.RoleAdmin:    {CapCustomer, CapStaff, CapAdmin},
}

// Actor adalah identitas yang sudah diautentikasi untuk satu request.
type Actor struct {
	UserID uint
	Role   models.Role
}

// Can -> shortcut Authorize untuk actor
func (a Actor) Can(op Operation) bool {
	return Authorize(a.Role, op)
}

// Has melaporkan apakah role memegang capability c.
func Has(role models.Role, c Capability) bool {
	for _, rc := range roleCapabilities[role] {
		if rc == c {
			return true
		}
	}
	return false
}

// Authorize adalah predikat murni: role boleh menjalankan op atau tidak.
// Operasi yang tidak terdaftar selalu ditolak.
func Authorize(role models.Role, op Operation) bool {
	c, ok := operationCapability[op]
	if !ok {
		return false
	}
	return Has(role, c)
}

// ParseRole menormalkan string role; "user" dari data lama dianggap customer.
func ParseRole(s string) (models.Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "user":
		return models.RoleCustomer, true
	case "manager":
		return models.RoleManager, true
	case "admin":
		return models.RoleAdmin, true
	}
	return "", false
}

// IsStaff -> manager atau admin
func IsStaff(role models.Role) bool {
	return Has(role, CapStaff)
}
