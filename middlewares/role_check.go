package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/policy"
	"github.com/yeremiapane/table-booking/utils"
)

// RequireOperation menolak request jika role actor tidak boleh menjalankan operasi.
// Harus dipasang setelah AuthMiddleware.
func RequireOperation(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		if !actor.Can(op) {
			utils.RespondError(c, http.StatusForbidden, errors.New("insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}
