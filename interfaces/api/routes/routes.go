package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	// Setup health checks
	SetupHealthRoutes(app, h)

	// JSON API
	api := app.Group("/api")
	SetupTodoRoutes(api, h)

	// Server-rendered form pages
	SetupPageRoutes(app, h)
}
