package messaging

import (
	"context"
	"log/slog"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/ports"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

// NoopTodoPublisher ใช้เมื่อไม่มี NATS (และใน tests)
type NoopTodoPublisher struct {
	logger *slog.Logger
}

func NewNoopTodoPublisher() *NoopTodoPublisher {
	return &NoopTodoPublisher{logger: logger.Component("noop_todo_publisher")}
}

func (p *NoopTodoPublisher) PublishCreated(ctx context.Context, todo *models.Todo) error {
	p.logger.DebugContext(ctx, "Todo created (noop)", "todo_id", models.FormatTodoID(todo.ID))
	return nil
}

func (p *NoopTodoPublisher) PublishUpdated(ctx context.Context, todo *models.Todo) error {
	p.logger.DebugContext(ctx, "Todo updated (noop)", "todo_id", models.FormatTodoID(todo.ID))
	return nil
}

func (p *NoopTodoPublisher) PublishDeleted(ctx context.Context, id string) error {
	p.logger.DebugContext(ctx, "Todo deleted (noop)", "todo_id", id)
	return nil
}

var _ ports.TodoEventPublisher = (*NoopTodoPublisher)(nil)
