package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/nlam511/geo-message/internal/cache"
	"github.com/nlam511/geo-message/internal/handlers"
	"github.com/nlam511/geo-message/internal/middleware"
	"github.com/nlam511/geo-message/internal/notify"
	"github.com/nlam511/geo-message/internal/repository"
	"github.com/nlam511/geo-message/internal/service"
	"github.com/nlam511/geo-message/internal/spatial"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Geo Message Backend",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	visibilityCache := cache.NewVisibilityCache(redisCache)

	// Spatial index over the messages table
	grid := spatial.NewGrid(spatial.DefaultCellSizeDeg)
	gridIndex := spatial.NewGridIndex(db, grid)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	dropRepo := repository.NewDropRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)
	visibilityRepo := repository.NewVisibilityRepository(db)
	deviceTokenRepo := repository.NewDeviceTokenRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, deviceTokenRepo)
	userService := service.NewUserService(userRepo, quotaRepo)
	dropService := service.NewDropService(dropRepo, grid)
	nearbyService := service.NewNearbyService(messageRepo, visibilityRepo, gridIndex, visibilityCache, nearbyRadiusM())
	collectionService := service.NewCollectionService(messageRepo, visibilityRepo, visibilityCache)

	// Notification outbox worker (best-effort push delivery)
	worker := notify.NewWorker(notificationRepo, deviceTokenRepo, notify.NewExpoClient())
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go worker.Run(workerCtx)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	messageHandler := handlers.NewMessageHandler(dropService, nearbyService, collectionService)

	// Public routes
	auth := app.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/push-token", middleware.AuthRequired(), authHandler.SavePushToken)

	// Protected routes
	users := app.Group("/users", middleware.AuthRequired())
	users.Get("/me", userHandler.GetCurrentUser)
	users.Get("/me/quota", userHandler.GetQuota)

	message := app.Group("/message", middleware.AuthRequired())
	message.Post("/drop", messageHandler.Drop)
	message.Get("/nearby_messages", messageHandler.Nearby)
	message.Get("/collected", messageHandler.ListCollected)
	message.Post("/:id/collect", messageHandler.Collect)
	message.Post("/:id/uncollect", messageHandler.Uncollect)
	message.Post("/:id/hide", messageHandler.Hide)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Geo Message is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// nearbyRadiusM is the fixed pickup radius for nearby queries. The
// per-tier radii exist in configuration but are not wired here yet.
func nearbyRadiusM() float64 {
	radiusStr := os.Getenv("NEARBY_RADIUS_M")
	if radiusStr == "" {
		return 100
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil || radius <= 0 {
		return 100
	}
	return radius
}
