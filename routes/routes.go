package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"walk2gether-api/config"
	"walk2gether-api/controllers"
	"walk2gether-api/middleware"
	"walk2gether-api/repositories"
	"walk2gether-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Repositories and services
	participantRepo := repositories.NewParticipantRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	participantService := services.NewParticipantService(db, participantRepo)
	roundService := services.NewRoundService(db, participantRepo)
	locationService := services.NewLocationService(locationRepo, participantRepo)
	notificationService := services.NewNotificationService(db)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	walkController := controllers.NewWalkController(db, emailService, notificationService)
	participantController := controllers.NewParticipantController(db, participantService, notificationService)
	friendController := controllers.NewFriendController(db, notificationService)
	messageController := controllers.NewMessageController(db, notificationService)
	notificationController := controllers.NewNotificationController(db)
	locationController := controllers.NewLocationController(db, locationService, friendController)
	roundController := controllers.NewRoundController(roundService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/send-verification", authController.SendVerification)
		auth.POST("/verify-code", authController.VerifyCode)

		auth.GET("/debug/verification-code", authController.GetVerificationCode)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/search", userController.SearchUsers)
			users.GET("/:id", userController.GetUser)
		}

		// Friend routes
		friends := protected.Group("/friends")
		{
			friends.GET("/", friendController.GetFriends)
			friends.POST("/request/:user_id", friendController.SendFriendRequest)
			friends.POST("/accept/:request_id", friendController.AcceptFriendRequest)
			friends.POST("/reject/:request_id", friendController.RejectFriendRequest)
			friends.DELETE("/:user_id", friendController.RemoveFriend)
			friends.GET("/requests", friendController.GetPendingRequests)
			friends.GET("/requests/sent", friendController.GetSentRequests)
		}

		// Walk routes
		walks := protected.Group("/walks")
		{
			walks.GET("/", walkController.GetWalks)
			walks.POST("/", walkController.CreateWalk)
			walks.GET("/joined", walkController.GetJoinedWalks)
			walks.GET("/created", walkController.GetCreatedWalks)
			walks.GET("/:id", walkController.GetWalk)
			walks.PUT("/:id", walkController.UpdateWalk)
			walks.DELETE("/:id", walkController.CancelWalk)
			walks.POST("/:id/invite", walkController.InviteUsers)

			// Participant lifecycle
			walks.POST("/:id/join", participantController.RequestToJoin)
			walks.GET("/:id/participants", participantController.GetParticipants)
			walks.GET("/:id/participants/me", participantController.GetMyParticipation)
			walks.PUT("/:id/participants/status", participantController.UpdateStatus)
			walks.POST("/:id/participants/cancel", participantController.CancelParticipation)
			walks.POST("/:id/participants/reactivate", participantController.ReactivateParticipation)
			walks.POST("/:id/participants/:user_id/approve", participantController.ApproveParticipant)
			walks.POST("/:id/participants/:user_id/reject", participantController.RejectParticipant)

			// Walk chat
			walks.GET("/:id/messages", messageController.GetMessages)
			walks.POST("/:id/messages", messageController.SendMessage)

			// Meetup rounds
			walks.GET("/:id/rounds", roundController.GetRounds)
			walks.GET("/:id/rounds/current", roundController.GetCurrentRound)
			walks.POST("/:id/rounds", roundController.StartRound)
		}

		// Location routes
		locations := protected.Group("/locations")
		{
			locations.PUT("/update", locationController.UpdateLocation)
			locations.GET("/friends", locationController.GetFriendLocations)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetStats)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
		}
	}
}
