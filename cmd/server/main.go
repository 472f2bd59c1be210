package main

import (
	"log"

	"gogrind/internal/config"
	"gogrind/internal/routes"
	"gogrind/internal/websocket"
	"gogrind/pkg/database"
	"gogrind/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := database.InitMongoDB(cfg.Mongo); err != nil {
		logger.Fatal("Failed to connect to MongoDB: " + err.Error())
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize Gin router
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, cfg, hub)

	logger.Info("Server starting on port: " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.Fatal("Failed to start server: " + err.Error())
	}
}
