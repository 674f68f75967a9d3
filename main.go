package main

import (
	"net/http"
	"os"
	"time"

	"covoiturage-api/config"
	"covoiturage-api/handlers"
	"covoiturage-api/lifecycle"
	"covoiturage-api/logger"
	"covoiturage-api/mailer"
	"covoiturage-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// sweepInterval is how often past-dated trips get marked completed
const sweepInterval = time.Minute

func main() {
	log := logger.New("covoiturage")

	if err := godotenv.Load(); err != nil {
		log.Warning("no .env file found, relying on environment")
	}

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()
	if err := config.EnsureAdmin(config.DB); err != nil {
		log.Error("admin seeding failed", logger.Error(err))
	}

	// Notification emails go out over SMTP
	handlers.Mail = mailer.NewSMTPFromEnv()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Covoiturage API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Covoiturage API",
			"docs":    "/api/trip-lifecycle",
			"health":  "/health",
			"roles":   []string{"driver", "passenger", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Trips past their departure time become completed; the feedback
	// gate depends on this transition happening somewhere.
	go func() {
		sweep := func() {
			n, err := lifecycle.CompleteExpired(config.DB, time.Now())
			if err != nil {
				log.Error("trip completion sweep failed", logger.Error(err))
				return
			}
			if n > 0 {
				log.Info("trips marked completed", logger.Int64("count", n))
			}
		}
		sweep()
		for range time.Tick(sweepInterval) {
			sweep()
		}
	}()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("server starting", logger.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}
