package handlers

import (
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	TodoService   services.TodoService
	HealthService services.HealthService
	PageTitle     string // <title> ของหน้า HTML
	PageHeading   string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	TodoHandler   *TodoHandler
	PageHandler   *PageHandler
	HealthHandler *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		TodoHandler:   NewTodoHandler(services.TodoService),
		PageHandler:   NewPageHandler(services.TodoService, services.PageTitle, services.PageHeading),
		HealthHandler: NewHealthHandler(services.HealthService),
	}
}
