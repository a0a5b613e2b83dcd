package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableResolver memilih meja untuk booking pending dengan strategi first-fit:
// meja available milik restoran yang sama, kapasitas >= party size, id terkecil menang.
// Tidak ada optimasi sisa kursi dan tidak ada pengecekan bentrok dengan booking lain.
type TableResolver struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTableResolver(db *gorm.DB) *TableResolver {
	return &TableResolver{db: db, now: utcNow}
}

func (r *TableResolver) WithClock(now func() time.Time) *TableResolver {
	r.now = now
	return r
}

// FindEligibleTable mengembalikan nil tanpa error jika tidak ada kandidat.
func (r *TableResolver) FindEligibleTable(ctx context.Context, restaurantID uint, partySize int) (*models.Table, error) {
	return findEligibleTable(r.db.WithContext(ctx), restaurantID, partySize)
}

func findEligibleTable(tx *gorm.DB, restaurantID uint, partySize int) (*models.Table, error) {
	var table models.Table
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("restaurant_id = ? AND is_available = ? AND capacity >= ?", restaurantID, true, partySize).
		Order("id ASC").
		Take(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find eligible table: %w", err)
	}
	return &table, nil
}

// ConfirmBooking mengikat meja dan mengubah status menjadi confirmed dalam satu transaksi.
func (r *TableResolver) ConfirmBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPending {
			return &InvalidTransitionError{From: booking.Status, To: models.BookingStatusConfirmed}
		}

		table, err := findEligibleTable(tx, booking.RestaurantID, booking.PartySize)
		if err != nil {
			return err
		}
		if table == nil {
			return &NoAvailabilityError{RestaurantID: booking.RestaurantID, PartySize: booking.PartySize}
		}
		if err := claimTable(tx, table); err != nil {
			return err
		}

		tableID := table.ID
		return transition(tx, booking, models.BookingStatusConfirmed, &tableID, r.now())
	})
	if err != nil {
		return nil, err
	}
	return r.load(ctx, bookingID)
}

// CancelBooking membatalkan booking. Binding meja tetap disimpan sebagai riwayat
// dan flag availability meja tidak disentuh.
func (r *TableResolver) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransition(models.BookingStatusCancelled) {
			return &InvalidTransitionError{From: booking.Status, To: models.BookingStatusCancelled}
		}
		return transition(tx, booking, models.BookingStatusCancelled, booking.TableID, r.now())
	})
	if err != nil {
		return nil, err
	}
	return r.load(ctx, bookingID)
}

// AssignTable adalah override staff: meja tertentu diikat ke booking pending atau
// confirmed. Availability meja tidak disyaratkan, tapi restoran dan kapasitas harus cocok.
func (r *TableResolver) AssignTable(ctx context.Context, bookingID, tableID uint) (*models.Booking, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status == models.BookingStatusCancelled {
			return &InvalidTransitionError{From: booking.Status, To: models.BookingStatusConfirmed}
		}

		var table models.Table
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, tableID).Error; err != nil {
			return notFoundOr(err, "table", tableID)
		}
		if table.RestaurantID != booking.RestaurantID {
			return &ValidationError{Field: "table_id", Message: "table belongs to another restaurant"}
		}
		if table.Capacity < booking.PartySize {
			return &ValidationError{Field: "table_id", Message: fmt.Sprintf("table seats %d, booking needs %d", table.Capacity, booking.PartySize)}
		}
		if err := claimTable(tx, &table); err != nil {
			return err
		}

		id := table.ID
		return transition(tx, booking, models.BookingStatusConfirmed, &id, r.now())
	})
	if err != nil {
		return nil, err
	}
	return r.load(ctx, bookingID)
}

// claimTable menaikkan version meja dengan compare-and-set; jika version sudah berubah
// berarti konfirmasi lain menang lebih dulu.
func claimTable(tx *gorm.DB, table *models.Table) error {
	res := tx.Model(&models.Table{}).
		Where("id = ? AND version = ?", table.ID, table.Version).
		Update("version", gorm.Expr("version + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to claim table %d: %w", table.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &ConflictError{Entity: "table", ID: table.ID}
	}
	table.Version++
	return nil
}

func (r *TableResolver) load(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Table").
		First(&booking, id).Error
	if err != nil {
		return nil, notFoundOr(err, "booking", id)
	}
	return &booking, nil
}
