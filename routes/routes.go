package routes

import (
	"covoiturage-api/handlers"
	"covoiturage-api/middleware"
	"covoiturage-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Trips (browsing needs no auth)
		public.GET("/trips", handlers.ListTrips)
		public.GET("/trips/:id", handlers.GetTrip)
		public.GET("/trips/:id/photo", handlers.GetTripPhoto)

		// Lifecycle info (great for docs/Postman)
		public.GET("/trip-lifecycle", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)
		auth.POST("/profile/photo", handlers.UploadProfilePhoto)
		auth.GET("/users/:id/photo", handlers.GetUserPhoto)

		auth.GET("/notifications", handlers.ListNotifications)
		auth.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
	}

	// ── Passenger routes ───────────────────────────────────────────
	passenger := r.Group("/api/passenger")
	passenger.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RolePassenger))
	{
		passenger.POST("/bookings", handlers.BookTrip)
		passenger.GET("/bookings", handlers.GetMyBookings)

		passenger.POST("/trip-requests", handlers.CreateTripRequest)
		passenger.GET("/trip-requests", handlers.GetMyTripRequests)

		passenger.POST("/feedback", handlers.SubmitFeedback)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		// Trip management
		driver.POST("/trips", handlers.CreateTrip)
		driver.GET("/trips", handlers.GetMyTrips)
		driver.PUT("/trips/:id", handlers.UpdateTrip)
		driver.DELETE("/trips/:id", handlers.DeleteTrip)
		driver.POST("/trips/:id/photo", handlers.UploadTripPhoto)

		// Lifecycle
		driver.PUT("/trips/:id/start", handlers.StartTrip)
		driver.PUT("/trips/:id/cancel", handlers.CancelTrip)
		driver.PUT("/trips/:id/complete", handlers.CompleteTrip)

		// Passengers & feedback
		driver.GET("/trip-requests", handlers.GetOpenTripRequests)
		driver.GET("/feedback/trip/:id", handlers.GetTripFeedback)
		driver.POST("/notifications", handlers.SendNotification)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.GET("/trips", handlers.AdminGetAllTrips)
		admin.PUT("/trips/:id/cancel", handlers.AdminCancelTrip)
		admin.DELETE("/trips/:id", handlers.AdminDeleteTrip)
		admin.GET("/trip-requests", handlers.AdminGetAllTripRequests)
		admin.GET("/stats", handlers.AdminGetStats)
	}
}
