package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type AdminController struct {
	Identity *services.IdentityService
	Reports  *services.ReportService
}

func NewAdminController(identity *services.IdentityService, reports *services.ReportService) *AdminController {
	return &AdminController{Identity: identity, Reports: reports}
}

// GetDashboardStats -> total user, restoran, booking dan 10 booking terbaru
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	dashboard, err := ac.Reports.AdminDashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", dashboard)
}

// GetReports -> ringkasan staff: booking hari ini, antrian pending, hitungan per status
func (ac *AdminController) GetReports(c *gin.Context) {
	overview, err := ac.Reports.ManagerOverview(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking report", overview)
}

func (ac *AdminController) GetAllUsers(c *gin.Context) {
	users, err := ac.Identity.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

func (ac *AdminController) ToggleUserActive(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := ac.Identity.ToggleActive(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("User %s active=%v (by user %d)", user.Email, user.IsActive, actor.UserID)
	utils.RespondJSON(c, http.StatusOK, "User status updated", user)
}
