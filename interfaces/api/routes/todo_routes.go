package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/handlers"
)

func SetupTodoRoutes(api fiber.Router, h *handlers.Handlers) {
	todos := api.Group("/todos")
	todos.Get("/", h.TodoHandler.ListTodos)
	todos.Post("/", h.TodoHandler.CreateTodo)
	// ต้องลงทะเบียนก่อน /:id
	todos.Get("/search", h.TodoHandler.SearchTodos)
	todos.Get("/:id", h.TodoHandler.GetTodo)
	todos.Patch("/:id", h.TodoHandler.PatchTodo)
	todos.Delete("/:id", h.TodoHandler.DeleteTodo)
	todos.Post("/:id/toggle", h.TodoHandler.ToggleTodo)
}
