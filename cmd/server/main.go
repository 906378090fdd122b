package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/board"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/config"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/database"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/game"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/handlers"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/middleware"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/services"
	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/storage"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	store := storage.NewStore(db)
	engine := board.NewEngine(board.DefaultConfig())
	deck := board.NewDeck(len(board.Houses()))
	registry := game.NewRegistry(store, engine, deck)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	ticketService := services.NewTicketService(cfg.JWTSecret)
	roomService := services.NewRoomService(db)
	consentService := services.NewConsentService(db, registry)
	aiService := services.NewAIService(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)
	if !aiService.IsAvailable() {
		logrus.Warn("AI_API_KEY not set, ai assistance disabled")
	}

	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService, consentService, ticketService)
	houseHandler := handlers.NewHouseHandler()
	wsHandler := handlers.NewWSHandler(registry, ticketService, aiService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws/room/:code", wsHandler.HandleRoom)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.JWTAuth(authService))
		{
			rooms.POST("", roomHandler.Create)
			rooms.GET("", roomHandler.List)
			rooms.GET("/:code", roomHandler.Get)
			rooms.POST("/:code/consent", roomHandler.AcceptConsent)
			rooms.POST("/:code/ticket", roomHandler.IssueTicket)
		}

		houses := api.Group("/houses")
		{
			houses.GET("", houseHandler.List)
			houses.GET("/:number", houseHandler.Get)
		}
	}

	logrus.Infof("server listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
