package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type RestaurantController struct {
	Catalog *services.CatalogService
	Hub     *hub.Hub
}

func NewRestaurantController(catalog *services.CatalogService, h *hub.Hub) *RestaurantController {
	return &RestaurantController{Catalog: catalog, Hub: h}
}

// ListRestaurants -> publik, hanya restoran aktif
func (rc *RestaurantController) ListRestaurants(c *gin.Context) {
	restaurants, err := rc.Catalog.ListRestaurants(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// ListAllRestaurants -> admin, termasuk yang nonaktif
func (rc *RestaurantController) ListAllRestaurants(c *gin.Context) {
	restaurants, err := rc.Catalog.ListRestaurants(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// GetRestaurant menerima id numerik atau slug
func (rc *RestaurantController) GetRestaurant(c *gin.Context) {
	param := c.Param("id")

	var (
		restaurant *models.Restaurant
		err        error
	)
	if id, convErr := strconv.ParseUint(param, 10, 64); convErr == nil {
		restaurant, err = rc.Catalog.GetRestaurant(c.Request.Context(), uint(id))
	} else {
		restaurant, err = rc.Catalog.GetRestaurantBySlug(c.Request.Context(), param)
	}
	if err == nil && !restaurant.IsActive {
		err = &services.NotFoundError{Entity: "restaurant", ID: param}
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// ListRestaurantTables -> ?available=true hanya meja yang bisa dipakai
func (rc *RestaurantController) ListRestaurantTables(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := rc.Catalog.GetRestaurant(ctx, id); err != nil {
		respondServiceError(c, err)
		return
	}

	var (
		tables []models.Table
		err    error
	)
	if c.Query("available") == "true" {
		tables, err = rc.Catalog.ListAvailableTables(ctx, id)
	} else {
		tables, err = rc.Catalog.ListTables(ctx, id)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req services.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant, err := rc.Catalog.CreateRestaurant(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc.Hub.BroadcastRestaurantUpdate(restaurant)
	utils.InfoLogger.Printf("New restaurant created: %s (slug=%s)", restaurant.Name, restaurant.Slug)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created successfully", restaurant)
}

func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var patch services.RestaurantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant, err := rc.Catalog.UpdateRestaurant(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc.Hub.BroadcastRestaurantUpdate(restaurant)
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}

func (rc *RestaurantController) ToggleRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	restaurant, err := rc.Catalog.ToggleRestaurantActive(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc.Hub.BroadcastRestaurantUpdate(restaurant)
	utils.InfoLogger.Printf("Restaurant %d active=%v", restaurant.ID, restaurant.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Restaurant status updated", restaurant)
}

func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Catalog.DeleteRestaurant(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Restaurant deleted", nil)
}
