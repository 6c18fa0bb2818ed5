package ports

import (
	"context"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
)

// TodoEventPublisher - Interface สำหรับส่ง change events ของ todo
type TodoEventPublisher interface {
	PublishCreated(ctx context.Context, todo *models.Todo) error
	PublishUpdated(ctx context.Context, todo *models.Todo) error
	PublishDeleted(ctx context.Context, id string) error
}

// Event types
const (
	EventTodoCreated = "created"
	EventTodoUpdated = "updated"
	EventTodoDeleted = "deleted"
)
