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
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Initialize Gemini AI
	ctx := context.Background()
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature, zl)
	if err != nil {
		zl.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	zl.Info("✅ Gemini AI initialized successfully", zap.String("model", cfg.Gemini.Model))

	// Initialize services
	prompts := services.NewPromptBuilder()
	transport := services.NewSMTPTransport(cfg.SMTPAddr(), cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.TLSEnabled)
	notifier := services.NewNotifier(transport, cfg.SMTP.User, cfg.SMTP.HREmail, zl)

	screeningService := services.NewScreeningService(
		services.NewPDFParserService(),
		services.NewEvaluatorService(geminiService, prompts, zl),
		services.NewDecisionPolicy(geminiService, prompts, zl),
		notifier,
		zl,
	)
	uploadService := services.NewUploadService(cfg.Storage.MaxFileSize)
	zl.Info("✅ Services initialized successfully", zap.String("smtp", cfg.SMTPAddr()))

	// Initialize Handlers
	screenHandler := handlers.NewScreenHandler(screeningService, uploadService, zl)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Smart Resume Screening System",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.Middleware(zl))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Page
	app.Get("/", screenHandler.HandleForm)
	app.Post("/", screenHandler.HandleSubmit)

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/screen", screenHandler.HandleScreenAPI)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zl.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("❌ Failed to start server", zap.Error(err))
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
