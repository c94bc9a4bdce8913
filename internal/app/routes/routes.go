package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/omnalage/skill-exchange-platform/internal/app/controllers"
	"github.com/omnalage/skill-exchange-platform/internal/middleware"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	connectionController *controllers.ConnectionController,
	chatController *controllers.ChatController,
	recommendationController *controllers.RecommendationController,
	realtimeHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/profile/:id", userController.GetProfile)
			users.PUT("/profile/:id", userController.UpdateProfile)
			users.POST("/profile/:id/avatar", userController.UploadAvatar)
		}

		authenticated.GET("/search/skills", userController.SearchBySkill)

		connection := authenticated.Group("/connection")
		{
			connection.POST("/send-request", connectionController.SendRequest)
			connection.POST("/update-status", connectionController.UpdateStatus)
			connection.GET("/pending-requests/:receiverId", connectionController.GetPendingRequests)
			connection.GET("/connected-users/:userId", connectionController.GetConnectedUsers)
		}

		chat := authenticated.Group("/chat")
		{
			chat.PUT("/update-chat", chatController.UpdateChat)
			chat.GET("/:user1/:user2", chatController.GetMessages)
		}

		authenticated.GET("/recommendations/:userId", recommendationController.GetRecommendations)

		// Websocket upgrade for realtime chat
		authenticated.GET("/ws", realtimeHandler.HandleConnection)
	}
}
