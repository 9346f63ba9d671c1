package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"fightdeck/config"
	"fightdeck/controllers"
	"fightdeck/db"
	"fightdeck/middlewares"
	"fightdeck/routes"
	"fightdeck/services"
	"fightdeck/utils"
	"fightdeck/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(time.Duration(cfg.JWT.ExpiryHours) * time.Hour)

	// Connect to MongoDB using the URI from the configuration
	database, err := db.ConnectMongoDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	redisClient, err := db.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	store := db.NewMongoStore(database)
	hub := websocket.NewHub()

	graph := services.NewGraphService(store)
	feed := services.NewFeedService(store)
	match := services.NewMatchService(store, graph, hub)
	cooldown := services.NewRedisCooldownStore(redisClient)
	results := services.NewResultService(store, cooldown, cfg.Cooldown(), hub)
	profiles := services.NewProfileService(store)

	// Seed sample fighters for development
	utils.PopulateTestFighters(context.Background(), store)

	router := setupRouter(
		hub,
		controllers.NewAuthController(profiles),
		controllers.NewSwipeController(feed, match, graph),
		controllers.NewChatController(match),
		controllers.NewResultController(results),
		controllers.NewProfileController(profiles),
		controllers.NewLeaderboardController(profiles),
	)

	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(
	hub *websocket.Hub,
	auth *controllers.AuthController,
	swipe *controllers.SwipeController,
	chat *controllers.ChatController,
	result *controllers.ResultController,
	profile *controllers.ProfileController,
	leaderboard *controllers.LeaderboardController,
) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	routes.SetupAuthRoutes(router, auth)

	authenticated := router.Group("/")
	authenticated.Use(middlewares.AuthMiddleware())
	{
		routes.SetupSwipeRoutes(authenticated, swipe)
		routes.SetupChatRoutes(authenticated, chat, result)
		routes.SetupProfileRoutes(authenticated, profile, leaderboard)
		authenticated.GET("/ws/events", hub.Handler)
	}

	return router
}
