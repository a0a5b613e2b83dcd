package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/policy"
	"github.com/yeremiapane/table-booking/utils"
)

const (
	ActorKey = "actor"
	TokenKey = "token"
)

// ActorResolver memuat role terkini user dari database
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uint) (policy.Actor, error)
}

// AuthMiddleware memvalidasi Bearer token lalu menaruh Actor ke context.
// Role diambil ulang dari database supaya user yang dinonaktifkan langsung tertolak.
func AuthMiddleware(tokens *utils.TokenManager, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if !authenticate(c, tokens, resolver, tokenString) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens *utils.TokenManager, resolver ActorResolver, tokenString string) bool {
	claims, err := tokens.ParseToken(tokenString)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		c.Abort()
		return false
	}

	actor, err := resolver.ResolveActor(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		c.Abort()
		return false
	}

	c.Set(ActorKey, actor)
	c.Set(TokenKey, tokenString)
	return true
}

// CurrentActor mengambil actor yang diset AuthMiddleware
func CurrentActor(c *gin.Context) (policy.Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return policy.Actor{}, false
	}
	actor, ok := v.(policy.Actor)
	return actor, ok
}
