package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"kodjobs/talent-matcher/internal/config"
	"kodjobs/talent-matcher/internal/handlers"
	"kodjobs/talent-matcher/internal/repositories"
	"kodjobs/talent-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	employerRepo := repositories.NewEmployerRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	log.Println("✅ Repositories initialized successfully")

	ctx := context.Background()

	// Initialize resume storage
	storage, err := services.NewResumeStorage(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("❌ Failed to initialize resume storage: %v", err)
	}
	log.Println("✅ Resume storage initialized successfully")

	// Initialize PDF parser
	pdfParser := services.NewPDFParserService()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	scorer := services.NewScorerService(geminiService)
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize notification publisher
	notifier, err := services.NewNotificationPublisher(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("❌ Failed to initialize notification publisher: %v", err)
	}
	log.Println("✅ Notification publisher initialized successfully")

	// Initialize matcher
	matcher := services.NewMatcherService(
		employerRepo,
		matchRepo,
		storage,
		pdfParser,
		scorer,
		notifier,
		cfg.Matcher,
		cfg.S3.ResumePrefix,
	)
	log.Println("✅ Matcher service initialized")

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(matcher, matchRepo, cfg.Matcher.RunTimeout)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Talent Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Matcher.RunTimeout + 30*time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Routes
	app.Post("/trymatch", matchHandler.HandleTryMatch)
	app.Get("/matches/:employerId", matchHandler.HandleGetMatches)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Talent Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /trymatch",
				"GET /matches/:employerId",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := notifier.Close(); err != nil {
			log.Printf("⚠️  Failed to close notification publisher: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
