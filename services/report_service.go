package services

import (
	"context"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BookingStats struct {
	Total     int64 `json:"total_bookings"`
	Pending   int64 `json:"pending_bookings"`
	Confirmed int64 `json:"confirmed_bookings"`
	Cancelled int64 `json:"cancelled_bookings"`
}

type AdminDashboard struct {
	TotalUsers       int64            `json:"total_users"`
	TotalRestaurants int64            `json:"total_restaurants"`
	TotalBookings    int64            `json:"total_bookings"`
	RecentBookings   []models.Booking `json:"recent_bookings"`
}

type ManagerOverview struct {
	TodaysBookings  []models.Booking `json:"todays_bookings"`
	PendingBookings []models.Booking `json:"pending_bookings"`
	Stats           BookingStats     `json:"stats"`
}

type ReportService struct {
	db       *gorm.DB
	bookings *BookingService
	now      func() time.Time
}

func NewReportService(db *gorm.DB, bookings *BookingService) *ReportService {
	return &ReportService{db: db, bookings: bookings, now: utcNow}
}

func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// BookingStats menghitung booking per status dalam satu query GROUP BY
func (s *ReportService) BookingStats(ctx context.Context) (BookingStats, error) {
	var rows []struct {
		Status models.BookingStatus
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return BookingStats{}, err
	}

	var stats BookingStats
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case models.BookingStatusPending:
			stats.Pending = r.Count
		case models.BookingStatusConfirmed:
			stats.Confirmed = r.Count
		case models.BookingStatusCancelled:
			stats.Cancelled = r.Count
		}
	}
	return stats, nil
}

func (s *ReportService) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	db := s.db.WithContext(ctx)
	d := &AdminDashboard{}
	if err := db.Model(&models.User{}).Count(&d.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Restaurant{}).Count(&d.TotalRestaurants).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).Count(&d.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Restaurant").
		Order("created_at DESC").Order("id DESC").
		Limit(10).
		Find(&d.RecentBookings).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// ManagerOverview: booking hari ini (UTC) dan semua yang masih pending
func (s *ReportService) ManagerOverview(ctx context.Context) (*ManagerOverview, error) {
	y, m, d := s.now().Date()
	today := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	todays, err := s.bookings.ListForDate(ctx, today)
	if err != nil {
		return nil, err
	}
	pending, err := s.bookings.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.BookingStats(ctx)
	if err != nil {
		return nil, err
	}
	return &ManagerOverview{TodaysBookings: todays, PendingBookings: pending, Stats: stats}, nil
}
