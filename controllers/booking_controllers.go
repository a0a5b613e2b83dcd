package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type BookingController struct {
	Bookings *services.BookingService
	Resolver *services.TableResolver
	Hub      *hub.Hub
	Mailer   services.Mailer
}

func NewBookingController(bookings *services.BookingService, resolver *services.TableResolver, h *hub.Hub, mailer services.Mailer) *BookingController {
	return &BookingController{Bookings: bookings, Resolver: resolver, Hub: h, Mailer: mailer}
}

// CreateBooking -> booking baru selalu pending tanpa meja
func (bc *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req services.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Bookings.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	bc.Hub.BroadcastBooking(hub.EventBookingCreated, booking)
	utils.InfoLogger.Printf("New booking #%d: restaurant=%d party=%d user=%d", booking.ID, booking.RestaurantID, booking.PartySize, booking.UserID)
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

func (bc *BookingController) GetMyBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	bookings, err := bc.Bookings.ListBookings(c.Request.Context(), actor, services.ScopeSelf, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My bookings", bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// GetAllBookings -> staff, ?status=pending untuk antrian konfirmasi
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	bookings, err := bc.Bookings.ListBookings(c.Request.Context(), actor, services.ScopeAll, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if status := models.BookingStatus(c.Query("status")); status != "" {
		bookings = filterByStatus(bookings, status)
	}
	utils.RespondJSON(c, http.StatusOK, "All bookings", bookings)
}

func filterByStatus(bookings []models.Booking, status models.BookingStatus) []models.Booking {
	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func (bc *BookingController) GetPendingBookings(c *gin.Context) {
	bookings, err := bc.Bookings.ListPending(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending bookings", bookings)
}

func (bc *BookingController) GetRestaurantBookings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookings, err := bc.Bookings.ListBookings(c.Request.Context(), actor, services.ScopeRestaurant, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant bookings", bookings)
}

// ConfirmBooking -> first-fit, 422 jika tidak ada meja yang cocok
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := bc.Resolver.ConfirmBooking(c.Request.Context(), id)
	bc.respondStatusChange(c, booking, err, "Booking confirmed")
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := bc.Resolver.CancelBooking(c.Request.Context(), id)
	bc.respondStatusChange(c, booking, err, "Booking cancelled")
}

// UpdateBookingStatus: confirmed lewat resolver supaya meja selalu terikat
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	var (
		booking *models.Booking
		err     error
	)
	switch body.Status {
	case models.BookingStatusConfirmed:
		booking, err = bc.Resolver.ConfirmBooking(ctx, id)
	case models.BookingStatusCancelled:
		booking, err = bc.Resolver.CancelBooking(ctx, id)
	default:
		booking, err = bc.Bookings.UpdateStatus(ctx, id, body.Status)
	}
	bc.respondStatusChange(c, booking, err, "Booking status updated")
}

// AssignTable -> override staff untuk memilih meja tertentu
func (bc *BookingController) AssignTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	booking, err := bc.Resolver.AssignTable(c.Request.Context(), id, body.TableID)
	bc.respondStatusChange(c, booking, err, "Table assigned")
}

func (bc *BookingController) respondStatusChange(c *gin.Context, booking *models.Booking, err error, message string) {
	if err != nil {
		respondServiceError(c, err)
		return
	}

	bc.Hub.BroadcastBookingStatus(booking)
	go bc.sendStatusEmail(*booking)

	utils.InfoLogger.Printf("Booking #%d is now %s (table=%v)", booking.ID, booking.Status, tableLabel(booking))
	utils.RespondJSON(c, http.StatusOK, message, booking)
}

// sendStatusEmail berjalan di goroutine; kegagalan SMTP tidak membatalkan perubahan status
func (bc *BookingController) sendStatusEmail(booking models.Booking) {
	if err := bc.Mailer.SendBookingStatus(&booking); err != nil {
		utils.ErrorLogger.Printf("Error sending status email for booking #%d: %v", booking.ID, err)
	}
}

func tableLabel(b *models.Booking) string {
	if b.Table != nil {
		return b.Table.TableNumber
	}
	return "-"
}
