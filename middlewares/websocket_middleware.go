package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/utils"
)

// WebSocketAuthMiddleware: browser tidak bisa mengirim header saat upgrade, jadi token lewat query.
func WebSocketAuthMiddleware(tokens *utils.TokenManager, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token missing"))
			c.Abort()
			return
		}

		if !authenticate(c, tokens, resolver, token) {
			return
		}
		c.Next()
	}
}
