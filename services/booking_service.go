package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/policy"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingScope menentukan proyeksi list booking.
type BookingScope string

const (
	ScopeSelf       BookingScope = "self"
	ScopeRestaurant BookingScope = "restaurant"
	ScopeAll        BookingScope = "all"
)

type CreateBookingInput struct {
	RestaurantID    uint   `json:"restaurant_id" validate:"required"`
	BookingDate     string `json:"booking_date" validate:"required"`
	BookingTime     string `json:"booking_time" validate:"required"`
	PartySize       int    `json:"party_size" validate:"gt=0"`
	CustomerName    string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone   string `json:"customer_phone" validate:"required,max=20"`
	CustomerEmail   string `json:"customer_email" validate:"omitempty,email,max=100"`
	SpecialRequests string `json:"special_requests" validate:"max=2000"`
}

// BookingService adalah ledger: membuat booking dan menjaga transisi statusnya.
type BookingService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db, now: utcNow}
}

// WithClock mengganti sumber waktu (dipakai test)
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

func utcNow() time.Time { return time.Now().UTC() }

// Create membuat booking pending tanpa meja. Tidak ada pengecekan bentrok jadwal.
func (s *BookingService) Create(ctx context.Context, actor policy.Actor, in CreateBookingInput) (*models.Booking, error) {
	if !actor.Can(policy.OpCreateBooking) {
		return nil, &AuthorizationError{Reason: "not allowed to create bookings"}
	}

	date, err := ParseBookingDate(in.BookingDate)
	if err != nil {
		return nil, err
	}
	clock, err := ParseBookingTime(in.BookingTime)
	if err != nil {
		return nil, err
	}
	if in.PartySize <= 0 {
		return nil, &ValidationError{Field: "party_size", Message: "must be a positive integer"}
	}

	var booking models.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, in.RestaurantID).Error; err != nil {
			return notFoundOr(err, "restaurant", in.RestaurantID)
		}
		if !restaurant.IsActive {
			return &ValidationError{Field: "restaurant_id", Message: "restaurant is not accepting bookings"}
		}

		var user models.User
		if err := tx.First(&user, actor.UserID).Error; err != nil {
			return notFoundOr(err, "user", actor.UserID)
		}
		applyContactDefaults(&in, &user)
		if err := validateStruct(in); err != nil {
			return err
		}

		now := s.now()
		booking = models.Booking{
			UserID:          user.ID,
			RestaurantID:    restaurant.ID,
			BookingDate:     date,
			BookingTime:     clock,
			PartySize:       in.PartySize,
			DurationHours:   2,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			CustomerEmail:   in.CustomerEmail,
			Status:          models.BookingStatusPending,
			SpecialRequests: in.SpecialRequests,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// applyContactDefaults mengisi kontak kosong dari profil user saat booking dibuat
func applyContactDefaults(in *CreateBookingInput, user *models.User) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	if in.CustomerName == "" {
		in.CustomerName = user.FullName()
	}
	if in.CustomerPhone == "" {
		in.CustomerPhone = user.Phone
	}
	if in.CustomerEmail == "" {
		in.CustomerEmail = user.Email
	}
}

// UpdateStatus menjalankan transisi status murni tanpa menyentuh binding meja.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: "must be one of pending confirmed cancelled"}
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransition(status) {
			return &InvalidTransitionError{From: booking.Status, To: status}
		}
		return transition(tx, booking, status, booking.TableID, s.now())
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Get mengembalikan satu booking; customer hanya boleh melihat miliknya sendiri.
func (s *BookingService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID && !actor.Can(policy.OpViewAllBookings) {
		// sembunyikan keberadaan booking milik orang lain
		return nil, &NotFoundError{Entity: "booking", ID: id}
	}
	return booking, nil
}

func (s *BookingService) load(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Table").
		First(&booking, id).Error
	if err != nil {
		return nil, notFoundOr(err, "booking", id)
	}
	return &booking, nil
}

// ListBookings memilih proyeksi sesuai scope dan hak akses actor.
func (s *BookingService) ListBookings(ctx context.Context, actor policy.Actor, scope BookingScope, restaurantID uint) ([]models.Booking, error) {
	switch scope {
	case ScopeSelf:
		if !actor.Can(policy.OpViewOwnBookings) {
			return nil, &AuthorizationError{Reason: "not allowed to view bookings"}
		}
		return s.ListByUser(ctx, actor.UserID)
	case ScopeRestaurant:
		if !actor.Can(policy.OpViewAllBookings) {
			return nil, &AuthorizationError{Reason: "staff access required"}
		}
		return s.ListByRestaurant(ctx, restaurantID)
	case ScopeAll:
		if !actor.Can(policy.OpViewAllBookings) {
			return nil, &AuthorizationError{Reason: "staff access required"}
		}
		return s.ListAll(ctx)
	default:
		return nil, &ValidationError{Field: "scope", Message: "must be one of self restaurant all"}
	}
}

func (s *BookingService) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Table").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&bookings).Error
	return bookings, err
}

// ListByRestaurant diurutkan tanggal lalu jam, terbaru di atas (review kronologis staff)
func (s *BookingService) ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Table").
		Where("restaurant_id = ?", restaurantID).
		Order("booking_date DESC").Order("booking_time DESC").Order("id DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Table").
		Order("created_at DESC").Order("id DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListPending(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("status = ?", models.BookingStatusPending).
		Order("created_at DESC").Order("id DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) ListForDate(ctx context.Context, date datatypes.Date) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Table").
		Where("booking_date = ?", date).
		Order("booking_time ASC").Order("id ASC").
		Find(&bookings).Error
	return bookings, err
}

// lockBooking membaca booking dengan SELECT ... FOR UPDATE (diabaikan oleh sqlite)
func lockBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error
	if err != nil {
		return nil, notFoundOr(err, "booking", id)
	}
	return &booking, nil
}

// transition menulis status baru dengan guard status lama, lalu mencatat notifikasi.
func transition(tx *gorm.DB, booking *models.Booking, to models.BookingStatus, tableID *uint, now time.Time) error {
	res := tx.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, booking.Status).
		Updates(map[string]any{
			"status":     to,
			"table_id":   tableID,
			"updated_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update booking %d: %w", booking.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &ConflictError{Entity: "booking", ID: booking.ID}
	}

	from := booking.Status
	booking.Status = to
	booking.TableID = tableID
	booking.UpdatedAt = now

	if from == to {
		return nil
	}
	return recordNotification(tx, booking, now)
}

func recordNotification(tx *gorm.DB, booking *models.Booking, now time.Time) error {
	var title, msg string
	date := time.Time(booking.BookingDate).Format(DateLayout)
	switch booking.Status {
	case models.BookingStatusConfirmed:
		title = "Booking confirmed"
		msg = fmt.Sprintf("Your booking #%d on %s at %s for %d guests is confirmed.",
			booking.ID, date, booking.BookingTime.String(), booking.PartySize)
	case models.BookingStatusCancelled:
		title = "Booking cancelled"
		msg = fmt.Sprintf("Your booking #%d on %s at %s has been cancelled.",
			booking.ID, date, booking.BookingTime.String())
	default:
		return nil
	}

	bookingID := booking.ID
	notif := models.Notification{
		UserID:    booking.UserID,
		BookingID: &bookingID,
		Title:     title,
		Message:   msg,
		CreatedAt: now,
	}
	if err := tx.Create(&notif).Error; err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}
