package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
)

// Sentinel untuk errors.Is; setiap tipe error di bawah cocok dengan salah satunya.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoAvailability    = errors.New("no available table")
	ErrUnauthorized      = errors.New("not authorized")
	ErrConflict          = errors.New("concurrent modification")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

type NoAvailabilityError struct {
	RestaurantID uint
	PartySize    int
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("no available table for %d guests at restaurant %d", e.PartySize, e.RestaurantID)
}

func (e *NoAvailabilityError) Is(target error) bool { return target == ErrNoAvailability }

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

func (e *AuthorizationError) Is(target error) bool { return target == ErrUnauthorized }

type ConflictError struct {
	Entity string
	ID     uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently, please retry", e.Entity, e.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// notFoundOr mengubah gorm.ErrRecordNotFound menjadi NotFoundError, error lain di-wrap.
func notFoundOr(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("failed to load %s %v: %w", entity, id, err)
}
