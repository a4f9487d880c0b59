package main

import (
	"github.com/gin-gonic/gin"
	"log"
	"time"
	"walk2gether-api/config"
	"walk2gether-api/database"
	"walk2gether-api/jobs"
	"walk2gether-api/middleware"
	"walk2gether-api/routes"
	"walk2gether-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Email service for verification codes and walk invitations
	emailService := services.NewEmailService(cfg)

	// Create router
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 30))

	// Recovery middleware
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Background cleanup of stale live locations
	staleAge := time.Duration(cfg.LocationStaleMinutes) * time.Minute
	cleanupJob := jobs.NewLocationCleanupJob(db, 5*time.Minute, staleAge)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Start server
	log.Printf("Starting Walk2Gether API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
