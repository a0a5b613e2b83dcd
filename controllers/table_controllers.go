package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type TableController struct {
	Catalog *services.CatalogService
	Hub     *hub.Hub
}

func NewTableController(catalog *services.CatalogService, h *hub.Hub) *TableController {
	return &TableController{Catalog: catalog, Hub: h}
}

// CreateTable -> menambahkan meja baru ke restoran
func (tc *TableController) CreateTable(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Catalog.CreateTable(c.Request.Context(), restaurantID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.BroadcastTableCreate(table)
	utils.InfoLogger.Printf("New table created: %s (restaurant=%d, capacity=%d)", table.TableNumber, table.RestaurantID, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> ?restaurant_id=N untuk satu restoran
func (tc *TableController) GetAllTables(c *gin.Context) {
	if raw := c.Query("restaurant_id"); raw != "" {
		id, ok := parseID(c, raw, "restaurant_id")
		if !ok {
			return
		}
		tables, err := tc.Catalog.ListTables(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
		return
	}

	tables, err := tc.Catalog.ListAllTables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// ToggleAvailability -> membalik flag is_available
func (tc *TableController) ToggleAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	table, err := tc.Catalog.ToggleTableAvailability(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.BroadcastTableUpdate(table)
	utils.InfoLogger.Printf("Table %s availability=%v", table.TableNumber, table.IsAvailable)
	utils.RespondJSON(c, http.StatusOK, "Table availability updated", table)
}
