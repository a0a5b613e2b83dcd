package database

import (
	"fmt"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

// Models berurutan sesuai dependensi foreign key
var Models = []interface{}{
	&models.User{},
	&models.Restaurant{},
	&models.Table{},
	&models.Booking{},
	&models.Notification{},
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to AutoMigrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
