package routes

import (
	"net/http"

	"gogrind/internal/config"
	"gogrind/internal/handlers"
	"gogrind/internal/middleware"
	"gogrind/internal/services"
	"gogrind/internal/websocket"
	"gogrind/pkg/database"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires services, handlers and middleware onto the engine.
// The hub doubles as the notifier the services publish through.
func SetupRoutes(router *gin.Engine, cfg *config.Config, hub *websocket.Hub) {
	db := database.GetDB()

	// Services
	notificationService := services.NewNotificationService(db, hub)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(db, userService)
	spaceService := services.NewSpaceService(db, notificationService, hub, cfg.Stream.RoomPrefix)
	streamService := services.NewStreamService(db, notificationService, hub)
	sessionService := services.NewSessionService(db, notificationService, hub)
	statsService := services.NewStatsService(db)
	friendService := services.NewFriendService(db, notificationService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	spaceHandler := handlers.NewSpaceHandler(spaceService, streamService, statsService)
	streamHandler := handlers.NewStreamHandler(streamService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	friendHandler := handlers.NewFriendHandler(friendService, userService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RateLimit(rateLimiter))
	router.Use(middleware.RequestLogger())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		dbHealth := database.HealthCheck()

		status := http.StatusOK
		overall := "ok"
		if dbHealth["status"] != "connected" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"version":  cfg.App.Version,
			"database": dbHealth,
		})
	})

	auth := middleware.JWTAuth(cfg.JWT.CookieName)

	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// Authenticated routes
		authed := v1.Group("/", auth)
		{
			authed.POST("/auth/logout", authHandler.Logout)
			authed.GET("/auth/me", authHandler.Me)

			// Users
			authed.GET("/search/users", userHandler.Search)
			authed.GET("/users/:userId", userHandler.GetProfile)
			authed.PATCH("/users/me", userHandler.UpdateProfile)
			authed.GET("/users/:userId/sessions", sessionHandler.ListForUser)

			// Spaces
			authed.POST("/spaces", spaceHandler.Create)
			authed.GET("/spaces", spaceHandler.ListMine)
			authed.GET("/discover/spaces", spaceHandler.Discover)
			authed.GET("/spaces/:spaceId", spaceHandler.Get)
			authed.PATCH("/spaces/:spaceId", spaceHandler.Update)
			authed.DELETE("/spaces/:spaceId", spaceHandler.Delete)
			authed.GET("/spaces/:spaceId/stats", spaceHandler.GetStats)

			// Membership
			authed.POST("/spaces/:spaceId/join", spaceHandler.RequestJoin)
			authed.POST("/spaces/:spaceId/join/:userId/approve", spaceHandler.ApproveJoin)
			authed.POST("/spaces/:spaceId/join/:userId/reject", spaceHandler.RejectJoin)
			authed.POST("/spaces/:spaceId/leave", spaceHandler.Leave)
			authed.DELETE("/spaces/:spaceId/members/:userId", spaceHandler.RemoveMember)

			// Announcements
			authed.GET("/spaces/:spaceId/announcements", spaceHandler.ListAnnouncements)
			authed.POST("/spaces/:spaceId/announcements", spaceHandler.AddAnnouncement)
			authed.DELETE("/spaces/:spaceId/announcements/:announcementId", spaceHandler.DeleteAnnouncement)

			// Scheduled sessions
			authed.GET("/spaces/:spaceId/sessions", spaceHandler.ListSessions)
			authed.POST("/spaces/:spaceId/sessions", spaceHandler.CreateSession)
			authed.PATCH("/spaces/:spaceId/sessions/:sessionId", spaceHandler.UpdateSession)
			authed.DELETE("/spaces/:spaceId/sessions/:sessionId", spaceHandler.DeleteSession)
			authed.PUT("/spaces/:spaceId/sessions/:sessionId/status", spaceHandler.UpdateSessionStatus)

			// Stream presence
			authed.POST("/spaces/:spaceId/stream/join", streamHandler.Join)
			authed.POST("/spaces/:spaceId/stream/leave", streamHandler.Leave)
			authed.DELETE("/spaces/:spaceId/stream/:userId", streamHandler.Remove)
			authed.PUT("/spaces/:spaceId/stream/topic", streamHandler.UpdateTopic)
			authed.PUT("/spaces/:spaceId/stream/media", streamHandler.ToggleMedia)
			authed.GET("/spaces/:spaceId/users/:userId/current-session", sessionHandler.GetCurrent)

			// Focus session tasks and encouragements
			authed.POST("/sessions/:sessionId/tasks", sessionHandler.AddTask)
			authed.PATCH("/sessions/:sessionId/tasks/:taskId", sessionHandler.UpdateTask)
			authed.POST("/sessions/:sessionId/encourage", sessionHandler.Encourage)
			authed.DELETE("/sessions/:sessionId/encourage", sessionHandler.RemoveEncouragement)

			// Friends
			authed.POST("/friends/requests", friendHandler.SendRequest)
			authed.GET("/friends/requests/incoming", friendHandler.ListIncoming)
			authed.GET("/friends/requests/outgoing", friendHandler.ListOutgoing)
			authed.PUT("/friends/requests/seen", friendHandler.MarkOutgoingSeen)
			authed.POST("/friends/requests/:requestId/accept", friendHandler.Accept)
			authed.POST("/friends/requests/:requestId/decline", friendHandler.Decline)
			authed.DELETE("/friends/requests/:requestId", friendHandler.Cancel)
			authed.GET("/friends", friendHandler.ListFriends)
			authed.DELETE("/users/:userId/friend", friendHandler.Unfriend)

			// Notifications
			authed.GET("/notifications", notificationHandler.List)
			authed.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			authed.POST("/notifications/read-all", notificationHandler.MarkAllRead)
			authed.PUT("/notifications/:notificationId/read", notificationHandler.MarkRead)
			authed.DELETE("/notifications/:notificationId", notificationHandler.Delete)

			// Real-time events
			authed.GET("/ws", wsHandler.Connect)
		}
	}
}
