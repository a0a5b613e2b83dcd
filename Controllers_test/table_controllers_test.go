package Controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func TestStaffCreatesAndListsTables(t *testing.T) {
	app := setupApp(t)
	_, managerToken := app.userWithToken(t, "manager", models.RoleManager)
	r := app.restaurant(t, "Tables")

	w, env := app.do(t, http.MethodPost, "/staff/restaurants/"+itoa(r.ID)+"/tables", managerToken, map[string]interface{}{
		"table_number": "A1",
		"capacity":     4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var table models.Table
	decode(t, env, &table)
	assert.Equal(t, "A1", table.TableNumber)
	assert.True(t, table.IsAvailable)

	w, _ = app.do(t, http.MethodPost, "/staff/restaurants/"+itoa(r.ID)+"/tables", managerToken, map[string]interface{}{
		"table_number": "A1",
		"capacity":     2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = app.do(t, http.MethodGet, "/staff/tables?restaurant_id="+itoa(r.ID), managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "List of tables", env.Message)
	var tables []models.Table
	decode(t, env, &tables)
	assert.Len(t, tables, 1)
}

func TestCreateUnavailableTableStaysUnavailable(t *testing.T) {
	app := setupApp(t)
	_, managerToken := app.userWithToken(t, "manager", models.RoleManager)
	r := app.restaurant(t, "Closed Tables")

	w, env := app.do(t, http.MethodPost, "/staff/restaurants/"+itoa(r.ID)+"/tables", managerToken, map[string]interface{}{
		"table_number": "B1",
		"capacity":     4,
		"is_available": false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var table models.Table
	decode(t, env, &table)
	assert.False(t, table.IsAvailable)

	w, env = app.do(t, http.MethodGet, "/restaurants/"+itoa(r.ID)+"/tables?available=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var available []models.Table
	decode(t, env, &available)
	assert.Empty(t, available)
}

func TestToggleTableAvailabilityEndpoint(t *testing.T) {
	app := setupApp(t)
	_, adminToken := app.userWithToken(t, "root", models.RoleAdmin)
	r := app.restaurant(t, "Toggle")
	table := app.table(t, r.ID, "T1", 2)

	w, env := app.do(t, http.MethodPatch, "/staff/tables/"+itoa(table.ID)+"/toggle", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var toggled models.Table
	decode(t, env, &toggled)
	assert.False(t, toggled.IsAvailable)

	w, env = app.do(t, http.MethodGet, "/restaurants/"+itoa(r.ID)+"/tables?available=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var available []models.Table
	decode(t, env, &available)
	assert.Empty(t, available)

	w, _ = app.do(t, http.MethodPatch, "/staff/tables/999/toggle", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerCannotManageTables(t *testing.T) {
	app := setupApp(t)
	_, token := app.userWithToken(t, "alice", models.RoleCustomer)
	r := app.restaurant(t, "Forbidden")

	w, _ := app.do(t, http.MethodPost, "/staff/restaurants/"+itoa(r.ID)+"/tables", token, map[string]interface{}{
		"table_number": "A1",
		"capacity":     4,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = app.do(t, http.MethodGet, "/staff/tables", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
