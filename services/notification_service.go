package services

import (
	"context"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/policy"
	"gorm.io/gorm"
)

// NotificationService membaca notifikasi yang dicatat saat status booking berubah.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListForUser(ctx context.Context, actor policy.Actor, unreadOnly bool) ([]models.Notification, error) {
	if !actor.Can(policy.OpViewNotifications) {
		return nil, &AuthorizationError{Reason: "not allowed to view notifications"}
	}
	var notifs []models.Notification
	q := s.db.WithContext(ctx).Where("user_id = ?", actor.UserID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Order("id DESC").Find(&notifs).Error
	return notifs, err
}

// MarkRead hanya berlaku untuk notifikasi milik actor sendiri
func (s *NotificationService) MarkRead(ctx context.Context, actor policy.Actor, id uint) (*models.Notification, error) {
	var notif models.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, actor.UserID).First(&notif).Error; err != nil {
			return notFoundOr(err, "notification", id)
		}
		notif.IsRead = true
		return tx.Model(&notif).Update("is_read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &notif, nil
}
