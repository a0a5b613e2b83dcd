package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/controllers"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/middlewares"
	"github.com/yeremiapane/table-booking/policy"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

// Deps berisi semua komponen yang dibutuhkan handler
type Deps struct {
	Identity      *services.IdentityService
	Catalog       *services.CatalogService
	Bookings      *services.BookingService
	Resolver      *services.TableResolver
	Reports       *services.ReportService
	Notifications *services.NotificationService
	Mailer        services.Mailer
	Tokens        *utils.TokenManager
	Hub           *hub.Hub

	CORSOrigin  string
	Security    middlewares.SecurityOptions
	RateLimiter *middlewares.RateLimiter
	AuthLimiter *middlewares.RateLimiter
}

// NewDeps merakit service dari satu koneksi database
func NewDeps(db *gorm.DB, tokens *utils.TokenManager, mailer services.Mailer) Deps {
	bookings := services.NewBookingService(db)
	return Deps{
		Identity:      services.NewIdentityService(db),
		Catalog:       services.NewCatalogService(db),
		Bookings:      bookings,
		Resolver:      services.NewTableResolver(db),
		Reports:       services.NewReportService(db, bookings),
		Notifications: services.NewNotificationService(db),
		Mailer:        mailer,
		Tokens:        tokens,
		Hub:           hub.NewHub(),
		CORSOrigin:    "*",
	}
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders(d.Security))
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.RateLimit())
	}

	userCtrl := controllers.NewUserController(d.Identity, d.Tokens)
	restaurantCtrl := controllers.NewRestaurantController(d.Catalog, d.Hub)
	tableCtrl := controllers.NewTableController(d.Catalog, d.Hub)
	bookingCtrl := controllers.NewBookingController(d.Bookings, d.Resolver, d.Hub, d.Mailer)
	notifCtrl := controllers.NewNotificationController(d.Notifications)
	adminCtrl := controllers.NewAdminController(d.Identity, d.Reports)
	hubCtrl := controllers.NewHubController(d.Hub, d.CORSOrigin)

	r.GET("/health", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "ok", nil)
	})

	// Public
	authGroup := r.Group("/")
	if d.AuthLimiter != nil {
		authGroup.Use(d.AuthLimiter.RateLimit())
	}
	{
		authGroup.POST("/register", userCtrl.Register)
		authGroup.POST("/login", userCtrl.Login)
	}
	r.GET("/restaurants", restaurantCtrl.ListRestaurants)
	r.GET("/restaurants/:id", restaurantCtrl.GetRestaurant)
	r.GET("/restaurants/:id/tables", restaurantCtrl.ListRestaurantTables)

	authMw := middlewares.AuthMiddleware(d.Tokens, d.Identity)

	// Customer (semua role yang login)
	auth := r.Group("/")
	auth.Use(authMw)
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		auth.POST("/bookings", middlewares.RequireOperation(policy.OpCreateBooking), bookingCtrl.CreateBooking)
		auth.GET("/bookings/mine", middlewares.RequireOperation(policy.OpViewOwnBookings), bookingCtrl.GetMyBookings)
		auth.GET("/bookings/:id", bookingCtrl.GetBooking)

		auth.GET("/notifications", middlewares.RequireOperation(policy.OpViewNotifications), notifCtrl.GetMyNotifications)
		auth.PATCH("/notifications/:id/read", middlewares.RequireOperation(policy.OpViewNotifications), notifCtrl.MarkAsRead)
	}

	// Staff (manager dan admin)
	staff := r.Group("/staff")
	staff.Use(authMw)
	{
		staff.GET("/bookings", middlewares.RequireOperation(policy.OpViewAllBookings), bookingCtrl.GetAllBookings)
		staff.GET("/bookings/pending", middlewares.RequireOperation(policy.OpViewAllBookings), bookingCtrl.GetPendingBookings)
		staff.GET("/restaurants/:id/bookings", middlewares.RequireOperation(policy.OpViewAllBookings), bookingCtrl.GetRestaurantBookings)
		staff.POST("/bookings/:id/confirm", middlewares.RequireOperation(policy.OpConfirmBooking), bookingCtrl.ConfirmBooking)
		staff.POST("/bookings/:id/cancel", middlewares.RequireOperation(policy.OpCancelBooking), bookingCtrl.CancelBooking)
		staff.PATCH("/bookings/:id/status", middlewares.RequireOperation(policy.OpUpdateBookingStatus), bookingCtrl.UpdateBookingStatus)
		staff.POST("/bookings/:id/assign", middlewares.RequireOperation(policy.OpAssignTable), bookingCtrl.AssignTable)

		staff.GET("/tables", middlewares.RequireOperation(policy.OpManageTables), tableCtrl.GetAllTables)
		staff.POST("/restaurants/:id/tables", middlewares.RequireOperation(policy.OpManageTables), tableCtrl.CreateTable)
		staff.PATCH("/tables/:id/toggle", middlewares.RequireOperation(policy.OpToggleTableAvailability), tableCtrl.ToggleAvailability)

		staff.GET("/reports", middlewares.RequireOperation(policy.OpViewReports), adminCtrl.GetReports)
	}

	// Admin
	admin := r.Group("/admin")
	admin.Use(authMw)
	{
		admin.GET("/restaurants", middlewares.RequireOperation(policy.OpManageRestaurants), restaurantCtrl.ListAllRestaurants)
		admin.POST("/restaurants", middlewares.RequireOperation(policy.OpManageRestaurants), restaurantCtrl.CreateRestaurant)
		admin.PATCH("/restaurants/:id", middlewares.RequireOperation(policy.OpManageRestaurants), restaurantCtrl.UpdateRestaurant)
		admin.PATCH("/restaurants/:id/toggle", middlewares.RequireOperation(policy.OpManageRestaurants), restaurantCtrl.ToggleRestaurant)
		admin.DELETE("/restaurants/:id", middlewares.RequireOperation(policy.OpManageRestaurants), restaurantCtrl.DeleteRestaurant)

		admin.GET("/users", middlewares.RequireOperation(policy.OpViewAllUsers), adminCtrl.GetAllUsers)
		admin.PATCH("/users/:id/toggle", middlewares.RequireOperation(policy.OpToggleUserActive), adminCtrl.ToggleUserActive)
		admin.GET("/dashboard", middlewares.RequireOperation(policy.OpViewAllUsers), adminCtrl.GetDashboardStats)
	}

	// WebSocket feed untuk dashboard staff
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(d.Tokens, d.Identity), hubCtrl.Connect)

	return r
}
