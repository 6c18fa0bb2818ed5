package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/handlers"
	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/middleware"
	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/routes"
	"github.com/LiamPeng/NYU-CC-k8s/interfaces/web"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/di"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

func main() {
	// Initialize DI container
	container := di.NewContainer()

	// Initialize all dependencies (including logger)
	if err := container.Initialize(); err != nil {
		// ใช้ log พื้นฐานก่อน logger init
		panic("Failed to initialize container: " + err.Error())
	}
	cfg := container.GetConfig()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		AppName:               cfg.App.Name,
		Views:                 web.NewViews(),
		DisableStartupMessage: cfg.IsProduction(),
		EnablePrintRoutes:     cfg.IsDevelopment(),
	})

	// Setup middleware (order matters!)
	app.Use(middleware.RequestIDMiddleware()) // ต้องมาก่อน logger
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.CORS.AllowOrigins))

	// Create handlers from services
	h := handlers.NewHandlers(container.GetHandlerServices())

	// Setup routes
	routes.SetupRoutes(app, h)

	// Setup graceful shutdown
	setupGracefulShutdown(app)

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
		"store", container.StoreName,
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		_ = container.Cleanup()
		os.Exit(1)
	}

	// Listen returns once Shutdown has drained in-flight requests
	if err := container.Cleanup(); err != nil {
		logger.Error("Error during cleanup", "error", err)
	}
}

func setupGracefulShutdown(app *fiber.App) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.Shutdown(); err != nil {
			logger.Error("Error shutting down server", "error", err)
		}
	}()
}
