package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"seat-booking/config"
	authController "seat-booking/controllers/auth"
	bookingController "seat-booking/controllers/booking"
	holidayController "seat-booking/controllers/holiday"
	"seat-booking/httpServices/googleauth"
	"seat-booking/logger"
	"seat-booking/middleware"
	bookingService "seat-booking/services/booking"
	"seat-booking/services/mailer"
)

// SetupRoutes wires controllers to the REST surface. Admin routes require the
// admin role claim; plain bearer routes only need a valid identity.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	asyncLogger := logger.NewAsyncLogger(db)
	google := googleauth.NewClient(cfg.GoogleClientID)
	smtpMailer := mailer.NewSMTPMailer(cfg)
	bookingSvc := bookingService.NewService(db)

	auth := authController.NewAuthController(db, cfg, google, asyncLogger)
	bookings := bookingController.NewBookingController(db, bookingSvc, smtpMailer, asyncLogger)
	holidays := holidayController.NewHolidayController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	requireAuth := middleware.RequireAuthentication(cfg.JWTSecret)
	requireAdmin := middleware.RequireAdmin(cfg.JWTSecret)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", auth.Signup)
	authGroup.Post("/login", auth.Login)
	authGroup.Post("/google-login", auth.GoogleLogin)
	authGroup.Post("/update-intern-id", auth.CompleteProfile)

	app.Get("/holidays", holidays.Index)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := app.Group("/bookings")

	bookingGroup.Post("/", requireAuth, bookings.Store)
	bookingGroup.Get("/", requireAuth, bookings.Index)

	bookingGroup.Get("/all", requireAdmin, bookings.All)
	bookingGroup.Get("/confirmed", requireAdmin, bookings.Confirmed)
	bookingGroup.Get("/intern/:internId", requireAdmin, bookings.InternAttendance)

	bookingGroup.Put("/:id/confirm", requireAdmin, bookings.Confirm)
	bookingGroup.Put("/:id/attendance", requireAdmin, bookings.UpdateAttendance)
	bookingGroup.Delete("/:id", requireAuth, bookings.Cancel)

	/*=============================================================================
	| Holiday Routes (admin)
	===============================================================================*/
	app.Post("/holidays", requireAdmin, holidays.Store)
	app.Delete("/holidays/:id", requireAdmin, holidays.Destroy)
}
