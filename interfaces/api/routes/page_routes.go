package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/handlers"
)

func SetupPageRoutes(app *fiber.App, h *handlers.Handlers) {
	pages := h.PageHandler
	app.Get("/", pages.Uncompleted)
	app.Get("/uncompleted", pages.Uncompleted)
	app.Get("/list", pages.All)
	app.Get("/completed", pages.Completed)
	app.Post("/action", pages.Create)
	app.Get("/update", pages.Edit)
	app.Post("/action3", pages.Update)
	app.Get("/done", pages.Toggle)
	app.Get("/remove", pages.Remove)
	app.Get("/search", pages.Search)
	app.Get("/about", pages.About)
}
