package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/middlewares"
	"github.com/yeremiapane/table-booking/policy"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrValidation, http.StatusBadRequest},
	{services.ErrNotFound, http.StatusNotFound},
	{services.ErrInvalidTransition, http.StatusConflict},
	{services.ErrConflict, http.StatusConflict},
	{services.ErrNoAvailability, http.StatusUnprocessableEntity},
}

// respondServiceError memetakan error service ke status HTTP. Error yang tidak dikenal
// dicatat lengkap dan dikembalikan sebagai 500 tanpa detail.
func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUnauthorized) {
		// actor sudah terautentikasi -> forbidden, selain itu (login) -> unauthorized
		if _, ok := middlewares.CurrentActor(c); ok {
			utils.RespondError(c, http.StatusForbidden, err)
			return
		}
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			utils.RespondError(c, m.status, err)
			return
		}
	}
	c.Error(err)
	utils.ErrorLogger.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return parseID(c, c.Param(name), name)
}

func parseID(c *gin.Context, raw, name string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// mustActor dipakai handler di belakang AuthMiddleware
func mustActor(c *gin.Context) (actor policy.Actor, ok bool) {
	actor, ok = middlewares.CurrentActor(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	return actor, ok
}
