package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GetMyNotifications -> ?unread=true hanya yang belum dibaca
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	notifs, err := nc.Notifications.ListForUser(c.Request.Context(), actor, c.Query("unread") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My notifications", notifs)
}

func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notif, err := nc.Notifications.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}
