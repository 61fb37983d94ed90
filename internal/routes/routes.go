package routes

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	"github.com/thanFreecss/celebrity-salon/internal/config"
	"github.com/thanFreecss/celebrity-salon/internal/gallery"
	"github.com/thanFreecss/celebrity-salon/internal/handlers"
	infraRepo "github.com/thanFreecss/celebrity-salon/internal/infra/repository"
	"github.com/thanFreecss/celebrity-salon/internal/metrics"
	"github.com/thanFreecss/celebrity-salon/internal/middleware"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
	ucBooking "github.com/thanFreecss/celebrity-salon/internal/usecase/booking"
	ucEmployee "github.com/thanFreecss/celebrity-salon/internal/usecase/employee"
)

// Deps are the long-lived collaborators built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Audit    *audit.Dispatcher
	Notifier ucBooking.Notifier
	Store    gallery.ObjectStore
	// Limiter is nil when redis is not configured.
	Limiter middleware.Counter
	Clock   timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	clock := d.Clock
	if clock == nil {
		clock = timezone.SystemClock
	}
	loc := timezone.Location(cfg.SalonTimezone)

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		metrics.Handler(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	employeeRepo := infraRepo.NewEmployeeGormRepository(d.DB)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, d.Audit, clock, loc)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(bookingRepo, d.Audit, d.Notifier, clock)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Audit, d.Notifier, clock)
	rescheduleUC := ucBooking.NewRescheduleBooking(bookingRepo, d.Audit, clock, loc)
	listMineUC := ucBooking.NewListCustomerBookings(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	purgeUC := ucBooking.NewPurgeBooking(bookingRepo, d.Audit)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, clock, loc)
	statsUC := ucBooking.NewGetStats(bookingRepo, clock, loc)

	// ======================================================
	// USE CASES: EMPLOYEES
	// ======================================================
	addLeaveUC := ucEmployee.NewAddLeaveDates(employeeRepo, d.Audit, clock, loc, cfg.LeaveLeadDays)
	removeLeaveUC := ucEmployee.NewRemoveLeaveDates(employeeRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		rescheduleUC,
		listMineUC,
		availabilityUC,
	)
	adminBookingHandler := handlers.NewAdminBookingHandler(
		listBookingsUC,
		updateStatusUC,
		purgeUC,
		statsUC,
	)
	employeeHandler := handlers.NewEmployeeHandler(d.DB, d.Audit, addLeaveUC, removeLeaveUC)
	galleryHandler := handlers.NewGalleryHandler(gallery.NewService(d.DB, d.Store, d.Audit))
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	limit := func(prefix string) gin.HandlerFunc {
		return middleware.RateLimit(d.Limiter, prefix, cfg.RateLimitPerMinute, time.Minute, middleware.ByClientIP)
	}

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "db_unreachable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
	r.GET("/metrics", metrics.Exposer())

	// ======================================================
	// STATIC FRONTEND
	// ======================================================
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		r.Static("/app", cfg.StaticDir)
		r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/app/") })
	}
	if disk, ok := d.Store.(gallery.DiskStore); ok {
		r.Static("/uploads", disk.Dir)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", limit("auth"), authHandler.Register)
		api.POST("/auth/login", limit("auth"), authHandler.Login)

		api.GET("/services", bookingHandler.Services)
		api.GET("/slots", bookingHandler.Slots)
		api.GET("/gallery", galleryHandler.List)
		api.GET("/employees", employeeHandler.List)
		api.GET("/employees/:id", employeeHandler.Get)

		api.POST("/bookings", limit("bookings"), middleware.OptionalAuth(cfg), bookingHandler.Create)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/bookings/user", bookingHandler.ListMine)
			secured.PUT("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PUT("/bookings/:id/reschedule", bookingHandler.Reschedule)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
		{
			admin.GET("/admin/bookings", adminBookingHandler.List)
			admin.PUT("/admin/bookings/:id/status", adminBookingHandler.UpdateStatus)
			admin.DELETE("/admin/bookings/:id", adminBookingHandler.Delete)
			admin.GET("/admin/stats", adminBookingHandler.Stats)
			admin.GET("/admin/audit-logs", auditLogsHandler.List)

			admin.POST("/employees", employeeHandler.Create)
			admin.PUT("/employees/:id", employeeHandler.Update)
			admin.DELETE("/employees/:id", employeeHandler.Deactivate)
			admin.PUT("/employees/:id/leave-dates", employeeHandler.AddLeaveDates)
			admin.DELETE("/employees/:id/leave-dates", employeeHandler.RemoveLeaveDates)

			admin.POST("/admin/gallery", galleryHandler.Upload)
			admin.DELETE("/admin/gallery/:id", galleryHandler.Delete)
		}
	}
}
