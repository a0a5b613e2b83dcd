package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/policy"
	"github.com/yeremiapane/table-booking/utils"
)

type HubController struct {
	Hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewHubController(h *hub.Hub, allowedOrigin string) *HubController {
	return &HubController{
		Hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
			},
		},
	}
}

// Connect -> endpoint WebSocket, hanya manager dan admin
func (hc *HubController) Connect(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	if !policy.IsStaff(actor.Role) {
		utils.RespondError(c, http.StatusForbidden, errors.New("staff access required"))
		return
	}

	ws, err := hc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	hc.Hub.Register(ws, actor.Role)
	utils.InfoLogger.Printf("Staff client connected: user=%d role=%s", actor.UserID, actor.Role)

	// hanya membaca untuk mendeteksi disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	hc.Hub.Unregister(ws)
}
