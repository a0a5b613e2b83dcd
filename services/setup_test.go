package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/policy"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// setupTestDB membuka sqlite in-memory per test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.SetLogOutput(io.Discard)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Table{}, &models.Booking{}, &models.Notification{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "x",
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Tester",
		Phone:     "0812000000",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func actorOf(u *models.User) policy.Actor {
	return policy.Actor{UserID: u.ID, Role: u.Role}
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	r, err := NewCatalogService(db).CreateRestaurant(context.Background(), RestaurantInput{
		Name:    name,
		Address: "Jl. Sudirman 1",
	})
	require.NoError(t, err)
	return r
}

func seedTable(t *testing.T, db *gorm.DB, restaurantID uint, number string, capacity int, available bool) *models.Table {
	t.Helper()
	table, err := NewCatalogService(db).CreateTable(context.Background(), restaurantID, TableInput{
		TableNumber: number,
		Capacity:    capacity,
		IsAvailable: &available,
	})
	require.NoError(t, err)
	return table
}

func seedBooking(t *testing.T, db *gorm.DB, user *models.User, restaurantID uint, partySize int) *models.Booking {
	t.Helper()
	b, err := NewBookingService(db).WithClock(fixedClock).Create(context.Background(), actorOf(user), CreateBookingInput{
		RestaurantID: restaurantID,
		BookingDate:  "2024-05-20",
		BookingTime:  "19:00",
		PartySize:    partySize,
	})
	require.NoError(t, err)
	return b
}
