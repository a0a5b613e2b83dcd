package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/policy"
	"github.com/yeremiapane/table-booking/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=80"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=20"`
}

var errInvalidCredentials = &AuthorizationError{Reason: "invalid credentials"}

// IdentityService: registrasi, verifikasi kredensial, dan status aktif user.
type IdentityService struct {
	db   *gorm.DB
	cost int
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db, cost: bcrypt.DefaultCost}
}

// WithHashCost dipakai test agar bcrypt tidak lambat
func (s *IdentityService) WithHashCost(cost int) *IdentityService {
	s.cost = cost
	return s
}

// Register selalu membuat user dengan role customer.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.createUser(ctx, in, models.RoleCustomer)
}

func (s *IdentityService) createUser(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      role,
		IsActive:  true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ValidationError{Field: "username", Message: "already exists"}
		}
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ValidationError{Field: "email", Message: "already registered"}
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate menerima username atau email.
func (s *IdentityService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		return nil, &AuthorizationError{Reason: "account is deactivated"}
	}
	return &user, nil
}

// ResolveActor memuat role terkini dari database untuk user pada token.
func (s *IdentityService) ResolveActor(ctx context.Context, userID uint) (policy.Actor, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "role", "is_active").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.Actor{}, &AuthorizationError{Reason: "user no longer exists"}
	}
	if err != nil {
		return policy.Actor{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return policy.Actor{}, &AuthorizationError{Reason: "account is deactivated"}
	}
	role, ok := policy.ParseRole(string(user.Role))
	if !ok {
		return policy.Actor{}, &AuthorizationError{Reason: "unknown role"}
	}
	return policy.Actor{UserID: user.ID, Role: role}, nil
}

func (s *IdentityService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return &user, nil
}

func (s *IdentityService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

// ToggleActive adalah soft-deactivation; user tidak pernah dihapus.
func (s *IdentityService) ToggleActive(ctx context.Context, actor policy.Actor, id uint) (*models.User, error) {
	if actor.UserID == id {
		return nil, &ValidationError{Field: "user_id", Message: "cannot change your own active state"}
	}
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
			return notFoundOr(err, "user", id)
		}
		user.IsActive = !user.IsActive
		return tx.Model(&user).Update("is_active", user.IsActive).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser membuat akun dengan role tertentu jika email belum ada (seed admin).
func (s *IdentityService) EnsureUser(ctx context.Context, in RegisterInput, role models.Role) (*models.User, bool, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(in.Email)).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up %s: %w", in.Email, err)
	}

	in.Email = strings.ToLower(in.Email)
	user, err := s.createUser(ctx, in, role)
	if err != nil {
		return nil, false, err
	}
	utils.InfoLogger.Printf("Default %s user created: %s", role, user.Email)
	return user, true, nil
}
