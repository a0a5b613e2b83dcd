package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestaurantInput struct {
	Name          string `json:"name" validate:"required,max=120"`
	Description   string `json:"description"`
	Address       string `json:"address" validate:"required,max=200"`
	City          string `json:"city" validate:"max=100"`
	State         string `json:"state" validate:"max=100"`
	ZipCode       string `json:"zip_code" validate:"max=20"`
	Phone         string `json:"phone" validate:"max=20"`
	Email         string `json:"email" validate:"omitempty,email,max=120"`
	CuisineType   string `json:"cuisine_type" validate:"max=60"`
	PriceRange    string `json:"price_range" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	TotalCapacity int    `json:"total_capacity" validate:"min=0"`
	OpeningTime   string `json:"opening_time"`
	ClosingTime   string `json:"closing_time"`
}

// RestaurantPatch: field nil tidak diubah
type RestaurantPatch struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zip_code"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	CuisineType   *string `json:"cuisine_type"`
	PriceRange    *string `json:"price_range"`
	TotalCapacity *int    `json:"total_capacity"`
	OpeningTime   *string `json:"opening_time"`
	ClosingTime   *string `json:"closing_time"`
}

type TableInput struct {
	TableNumber string `json:"table_number" validate:"required,max=50"`
	Capacity    int    `json:"capacity" validate:"gt=0"`
	IsAvailable *bool  `json:"is_available"`
}

// CatalogService mengelola restoran dan meja.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, in RestaurantInput) (*models.Restaurant, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	opening, err := parseClock("opening_time", in.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := parseClock("closing_time", in.ClosingTime)
	if err != nil {
		return nil, err
	}

	restaurant := models.Restaurant{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		Phone:         in.Phone,
		Email:         in.Email,
		CuisineType:   in.CuisineType,
		PriceRange:    in.PriceRange,
		TotalCapacity: in.TotalCapacity,
		OpeningTime:   opening,
		ClosingTime:   closing,
		IsActive:      true,
	}
	if restaurant.PriceRange == "" {
		restaurant.PriceRange = "$"
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sl, err := uniqueSlug(tx, restaurant.Name, 0)
		if err != nil {
			return err
		}
		restaurant.Slug = sl
		if err := tx.Create(&restaurant).Error; err != nil {
			return fmt.Errorf("failed to create restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// uniqueSlug menambahkan suffix -2, -3, ... jika slug sudah dipakai restoran lain
func uniqueSlug(tx *gorm.DB, name string, excludeID uint) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "restaurant"
	}
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(&models.Restaurant{}).Where("slug = ? AND id <> ?", candidate, excludeID).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *CatalogService) UpdateRestaurant(ctx context.Context, id uint, patch RestaurantPatch) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&restaurant, id).Error; err != nil {
			return notFoundOr(err, "restaurant", id)
		}
		oldName := restaurant.Name
		if err := copier.CopyWithOption(&restaurant, &patch, copier.Option{IgnoreEmpty: true}); err != nil {
			return fmt.Errorf("failed to apply restaurant patch: %w", err)
		}

		in := RestaurantInput{}
		if err := copier.Copy(&in, &restaurant); err != nil {
			return fmt.Errorf("failed to validate restaurant patch: %w", err)
		}
		if err := validateStruct(in); err != nil {
			return err
		}
		var err error
		if restaurant.OpeningTime, err = parseClock("opening_time", restaurant.OpeningTime); err != nil {
			return err
		}
		if restaurant.ClosingTime, err = parseClock("closing_time", restaurant.ClosingTime); err != nil {
			return err
		}

		// slug ikut nama
		if slug.Make(restaurant.Name) != slug.Make(oldName) {
			sl, err := uniqueSlug(tx, restaurant.Name, restaurant.ID)
			if err != nil {
				return err
			}
			restaurant.Slug = sl
		}

		return tx.Save(&restaurant).Error
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, notFoundOr(err, "restaurant", id)
	}
	return &restaurant, nil
}

func (s *CatalogService) GetRestaurantBySlug(ctx context.Context, sl string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).Where("slug = ?", sl).First(&restaurant).Error; err != nil {
		return nil, notFoundOr(err, "restaurant", sl)
	}
	return &restaurant, nil
}

// ListRestaurants: publik hanya melihat restoran aktif
func (s *CatalogService) ListRestaurants(ctx context.Context, includeInactive bool) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	q := s.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&restaurants).Error
	return restaurants, err
}

func (s *CatalogService) ToggleRestaurantActive(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&restaurant, id).Error; err != nil {
			return notFoundOr(err, "restaurant", id)
		}
		restaurant.IsActive = !restaurant.IsActive
		return tx.Model(&restaurant).Update("is_active", restaurant.IsActive).Error
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// DeleteRestaurant menghapus restoran beserta meja dan booking-nya (cascade eksplisit,
// karena sqlite tidak menegakkan foreign key secara default).
func (s *CatalogService) DeleteRestaurant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, id).Error; err != nil {
			return notFoundOr(err, "restaurant", id)
		}
		bookingIDs := tx.Model(&models.Booking{}).Select("id").Where("restaurant_id = ?", id)
		if err := tx.Where("booking_id IN (?)", bookingIDs).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return fmt.Errorf("failed to delete bookings: %w", err)
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Table{}).Error; err != nil {
			return fmt.Errorf("failed to delete tables: %w", err)
		}
		return tx.Delete(&restaurant).Error
	})
}

func (s *CatalogService) CreateTable(ctx context.Context, restaurantID uint, in TableInput) (*models.Table, error) {
	in.TableNumber = strings.TrimSpace(in.TableNumber)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	table := models.Table{
		RestaurantID: restaurantID,
		TableNumber:  in.TableNumber,
		Capacity:     in.Capacity,
		IsAvailable:  true,
		Version:      1,
	}
	if in.IsAvailable != nil {
		table.IsAvailable = *in.IsAvailable
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			return notFoundOr(err, "restaurant", restaurantID)
		}
		var count int64
		if err := tx.Model(&models.Table{}).
			Where("restaurant_id = ? AND table_number = ?", restaurantID, table.TableNumber).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check table number: %w", err)
		}
		if count > 0 {
			return &ValidationError{Field: "table_number", Message: "already used in this restaurant"}
		}
		// kolom is_available tanpa default, jadi false tetap tersimpan
		if err := tx.Create(&table).Error; err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *CatalogService) GetTable(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := s.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, notFoundOr(err, "table", id)
	}
	return &table, nil
}

func (s *CatalogService) ListTables(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	var tables []models.Table
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id ASC").
		Find(&tables).Error
	return tables, err
}

func (s *CatalogService) ListAvailableTables(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	var tables []models.Table
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("id ASC").
		Find(&tables).Error
	return tables, err
}

func (s *CatalogService) ListAllTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	err := s.db.WithContext(ctx).Order("restaurant_id ASC").Order("id ASC").Find(&tables).Error
	return tables, err
}

// ToggleTableAvailability hanya membalik flag; booking yang sudah terikat tidak berubah.
func (s *CatalogService) ToggleTableAvailability(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, id).Error; err != nil {
			return notFoundOr(err, "table", id)
		}
		table.IsAvailable = !table.IsAvailable
		return tx.Model(&table).Update("is_available", table.IsAvailable).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}
