package database

import (
	"context"

	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
)

// SeedAdmin membuat akun admin default jika email admin belum terdaftar
func SeedAdmin(ctx context.Context, identity *services.IdentityService, seed config.AdminSeed) (*models.User, error) {
	user, _, err := identity.EnsureUser(ctx, services.RegisterInput{
		Username:  seed.Username,
		Email:     seed.Email,
		Password:  seed.Password,
		FirstName: "Admin",
		LastName:  "User",
	}, models.RoleAdmin)
	return user, err
}
