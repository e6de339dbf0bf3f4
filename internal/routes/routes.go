package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"scheduling-app-server/internal/config"
	"scheduling-app-server/internal/handlers"
	"scheduling-app-server/internal/middleware"
	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/notify"
	"scheduling-app-server/internal/scheduling"
	"scheduling-app-server/internal/storage"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	// Wire the scheduling core: GORM-backed store, office-local clock and
	// fire-and-forget mail notifications.
	store := storage.NewGormStore(db)
	clock := scheduling.SystemClock(cfg.Location)
	mailer := notify.NewMailer(cfg.Mailer.Host, cfg.Mailer.Port, cfg.Mailer.DefaultFrom, log)
	validator := scheduling.NewValidator(store, clock)
	lifecycle := scheduling.NewLifecycle(store, mailer, clock, cfg.Location)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, store, validator, lifecycle, cfg)
	closedDayHandler := handlers.NewClosedDayHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Visitors book and consult availability without an account.
		public.POST("/appointments", appointmentHandler.CreateAppointment)
		public.GET("/availability", appointmentHandler.GetAvailability)

		// The QR scanner at the gate hits this with the code payload.
		public.GET("/check-in/:uuid", appointmentHandler.CheckIn)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Staff and admins manage appointments and confirm entries.
		appointmentRoutes := private.Group("/appointments")
		appointmentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:uuid", appointmentHandler.GetAppointmentByUUID)
			appointmentRoutes.DELETE("/:uuid", appointmentHandler.CancelAppointment)
			appointmentRoutes.POST("/confirm-entry", appointmentHandler.ConfirmEntry)
		}

		reportRoutes := private.Group("/reports")
		reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
		{
			reportRoutes.GET("/day-summary", appointmentHandler.GetDaySummary)
			reportRoutes.GET("/visitors", appointmentHandler.GetReport)
		}

		// Calendar blocks are admin-only.
		closedDayRoutes := private.Group("/closed-days")
		closedDayRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			closedDayRoutes.POST("", closedDayHandler.CreateClosedDay)
			closedDayRoutes.GET("", closedDayHandler.GetClosedDays)
			closedDayRoutes.GET("/:id", closedDayHandler.GetClosedDayByID)
			closedDayRoutes.PUT("/:id", closedDayHandler.UpdateClosedDay)
			closedDayRoutes.DELETE("/:id", closedDayHandler.DeleteClosedDay)
		}

		// User management routes (admin-only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
