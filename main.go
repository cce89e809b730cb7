package main

import (
	"coachpoint_go/config"
	"coachpoint_go/database"
	"coachpoint_go/database/seeders"
	"coachpoint_go/middleware"
	"coachpoint_go/routes"
	"coachpoint_go/services"
	"coachpoint_go/services/notifications"
	"coachpoint_go/services/websocket"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func init() {
	setupLogging()

	config.LoadConfig()

	database.Connect()

	if os.Getenv("SEED_DB") == "true" {
		seeders.SeedAll()
	}

	// Start log maintenance scheduler (Redis flush + S3 archive)
	logArchiveService := services.NewLogArchiveService()
	logArchiveService.StartLogMaintenanceScheduler()
}

func main() {
	// Create WebSocket hub first
	wsHub := websocket.NewHub()
	go wsHub.Run()

	healthService := services.NewHealthService("CoachPoint API", "1.0.0")

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    int(config.AppConfig.MaxFileSize),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggerMiddleware())

	// Wire notifications to the WebSocket hub globally so any new Service
	// uses it, including the schedulers
	notifications.SetDefaultWSHub(wsHub)
	notifService := notifications.NewService()
	notifService.SetWebSocketHub(wsHub)
	if config.AppConfig.UseRedisNotifications {
		stopNotif := make(chan struct{})
		notifService.StartWorker(stopNotif)
	}

	// Session reminders for assigned coaches
	if config.AppConfig.EnableSessionReminders {
		stopReminders := make(chan struct{})
		go services.NewSessionReminderScheduler().StartScheduler(stopReminders)
	}

	// API routes
	routes.SetupRoutes(app, wsHub, healthService)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":  "Route not found",
			"path":   c.Path(),
			"method": c.Method(),
		})
	})

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", config.AppConfig.Port)
	log.Printf("CoachPoint API v1.0.0")
	log.Printf("Environment: %s", config.AppConfig.AppEnv)

	if err := app.Listen(port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// setupLogging configures the logging system
func setupLogging() {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Warning: Could not create logs directory: %v", err)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if os.Getenv("APP_ENV") == "development" {
		logrus.SetOutput(os.Stdout)
	} else {
		file, err := os.OpenFile("logs/app.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logrus.SetOutput(file)
		}
	}
}

// customErrorHandler handles application errors
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	logrus.WithFields(logrus.Fields{
		"error":  err.Error(),
		"path":   c.Path(),
		"method": c.Method(),
		"ip":     c.IP(),
		"status": code,
	}).Error("Request error")

	return c.Status(code).JSON(fiber.Map{
		"error":  message,
		"code":   code,
		"path":   c.Path(),
		"method": c.Method(),
	})
}
