package services

import (
	"context"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
)

type TodoService interface {
	CreateTodo(ctx context.Context, req *dto.CreateTodoRequest) (*models.Todo, error)
	ListTodos(ctx context.Context, filter models.DoneFilter) ([]*models.Todo, error)
	GetTodo(ctx context.Context, rawID string) (*models.Todo, error)
	PatchTodo(ctx context.Context, rawID string, req *dto.PatchTodoRequest) (*models.Todo, error)
	ToggleDone(ctx context.Context, rawID string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, rawID string) error
	SearchTodos(ctx context.Context, key string, field string, allowLegacy bool) (*SearchResult, error)
}

// SearchResult carries a user-visible message instead of an error for
// malformed or unknown lookups.
type SearchResult struct {
	Todos   []*models.Todo
	Message string
}

// Messages shown by search
const (
	SearchMsgInvalidID    = "Invalid ObjectId format given"
	SearchMsgNoSuchID     = "No such ObjectId is present"
	SearchMsgUnknownField = "Unknown search field"
)
