package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/healthz", h.HealthHandler.Liveness)
	app.Get("/readyz", h.HealthHandler.Readiness)
}
