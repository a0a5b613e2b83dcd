package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
)

type bookingView struct {
	ID           uint                 `json:"id"`
	UserID       uint                 `json:"user_id"`
	RestaurantID uint                 `json:"restaurant_id"`
	TableID      *uint                `json:"table_id"`
	BookingTime  string               `json:"booking_time"`
	PartySize    int                  `json:"party_size"`
	Status       models.BookingStatus `json:"status"`
	CustomerName string               `json:"customer_name"`
}

func (a *testApp) book(t *testing.T, token string, restaurantID uint, partySize int) bookingView {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/bookings", token, map[string]interface{}{
		"restaurant_id": restaurantID,
		"booking_date":  "2024-06-01",
		"booking_time":  "19:00",
		"party_size":    partySize,
		"customer_name": "Test Guest",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b bookingView
	decode(t, env, &b)
	return b
}

func TestCreateBookingEndpoint(t *testing.T) {
	app := setupApp(t)
	user, token := app.userWithToken(t, "alice", models.RoleCustomer)
	r := app.restaurant(t, "Bistro")

	b := app.book(t, token, r.ID, 2)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Nil(t, b.TableID)
	assert.Equal(t, user.ID, b.UserID)
	assert.Equal(t, "19:00:00", b.BookingTime)
	assert.Equal(t, "Test Guest", b.CustomerName)

	w, env := app.do(t, http.MethodPost, "/bookings", token, map[string]interface{}{
		"restaurant_id": r.ID,
		"booking_date":  "2024-06-01",
		"booking_time":  "19:00",
		"party_size":    0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "party_size")

	w, _ = app.do(t, http.MethodPost, "/bookings", token, map[string]interface{}{
		"restaurant_id": 999,
		"booking_date":  "2024-06-01",
		"booking_time":  "19:00",
		"party_size":    2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, http.MethodPost, "/bookings", "", map[string]interface{}{"restaurant_id": r.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMyBookingsAndVisibility(t *testing.T) {
	app := setupApp(t)
	_, aliceToken := app.userWithToken(t, "alice", models.RoleCustomer)
	_, bobToken := app.userWithToken(t, "bob", models.RoleCustomer)
	r := app.restaurant(t, "Private")
	b := app.book(t, aliceToken, r.ID, 2)
	app.book(t, bobToken, r.ID, 3)

	w, env := app.do(t, http.MethodGet, "/bookings/mine", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []bookingView
	decode(t, env, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)

	w, _ = app.do(t, http.MethodGet, "/bookings/"+itoa(b.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, http.MethodGet, "/bookings/"+itoa(b.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(t, http.MethodGet, "/staff/bookings", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStaffConfirmUsesFirstFit(t *testing.T) {
	app := setupApp(t)
	_, customerToken := app.userWithToken(t, "alice", models.RoleCustomer)
	_, managerToken := app.userWithToken(t, "manager", models.RoleManager)
	r := app.restaurant(t, "First Fit")
	app.table(t, r.ID, "T1", 2)
	t2 := app.table(t, r.ID, "T2", 4)
	b := app.book(t, customerToken, r.ID, 3)

	w, env := app.do(t, http.MethodPost, "/staff/bookings/"+itoa(b.ID)+"/confirm", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var confirmed bookingView
	decode(t, env, &confirmed)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.TableID)
	assert.Equal(t, t2.ID, *confirmed.TableID)

	w, _ = app.do(t, http.MethodPost, "/staff/bookings/"+itoa(b.ID)+"/confirm", managerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = app.do(t, http.MethodPost, "/staff/bookings/"+itoa(b.ID)+"/cancel", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cancelled bookingView
	decode(t, env, &cancelled)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, t2.ID, *cancelled.TableID)

	w, _ = app.do(t, http.MethodPost, "/staff/bookings/"+itoa(b.ID)+"/cancel", managerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = app.do(t, http.MethodGet, "/notifications", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifs []models.Notification
	decode(t, env, &notifs)
	assert.Len(t, notifs, 2)
}

func TestConfirmWithoutTableIsUnprocessable(t *testing.T) {
	app := setupApp(t)
	_, customerToken := app.userWithToken(t, "alice", models.RoleCustomer)
	_, adminToken := app.userWithToken(t, "root", models.RoleAdmin)
	r := app.restaurant(t, "Tiny")
	app.table(t, r.ID, "T1", 2)
	b := app.book(t, customerToken, r.ID, 6)

	w, _ := app.do(t, http.MethodPost, "/staff/bookings/"+itoa(b.ID)+"/confirm", adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env := app.do(t, http.MethodGet, "/staff/bookings/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []bookingView
	decode(t, env, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].ID)
}

func TestUpdateStatusAndAssignEndpoints(t *testing.T) {
	app := setupApp(t)
	_, customerToken := app.userWithToken(t, "alice", models.RoleCustomer)
	_, managerToken := app.userWithToken(t, "manager", models.RoleManager)
	r := app.restaurant(t, "Status")
	app.table(t, r.ID, "T1", 4)
	big := app.table(t, r.ID, "T2", 8)

	first := app.book(t, customerToken, r.ID, 2)
	w, env := app.do(t, http.MethodPatch, "/staff/bookings/"+itoa(first.ID)+"/status", managerToken, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var confirmed bookingView
	decode(t, env, &confirmed)
	require.NotNil(t, confirmed.TableID)

	w, _ = app.do(t, http.MethodPatch, "/staff/bookings/"+itoa(first.ID)+"/status", managerToken, map[string]string{"status": "seated"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	second := app.book(t, customerToken, r.ID, 6)
	w, env = app.do(t, http.MethodPost, "/staff/bookings/"+itoa(second.ID)+"/assign", managerToken, map[string]uint{"table_id": big.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var assigned bookingView
	decode(t, env, &assigned)
	assert.Equal(t, models.BookingStatusConfirmed, assigned.Status)
	assert.Equal(t, big.ID, *assigned.TableID)

	w, env = app.do(t, http.MethodGet, "/staff/restaurants/"+itoa(r.ID)+"/bookings", managerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var atRestaurant []bookingView
	decode(t, env, &atRestaurant)
	assert.Len(t, atRestaurant, 2)

	w, _ = app.do(t, http.MethodGet, "/staff/reports", managerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = app.do(t, http.MethodGet, "/admin/dashboard", managerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
