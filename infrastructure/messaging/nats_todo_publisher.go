package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/ports"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

type NATSTodoPublisher struct {
	nc            *nats.Conn
	subjectPrefix string
	logger        *slog.Logger
}

func NewNATSTodoPublisher(nc *nats.Conn, subjectPrefix string) *NATSTodoPublisher {
	return &NATSTodoPublisher{
		nc:            nc,
		subjectPrefix: subjectPrefix,
		logger:        logger.Component("nats_todo_publisher"),
	}
}

func (p *NATSTodoPublisher) PublishCreated(ctx context.Context, todo *models.Todo) error {
	return p.publish(ctx, newTodoEvent(ports.EventTodoCreated, models.FormatTodoID(todo.ID), todo, time.Now()))
}

func (p *NATSTodoPublisher) PublishUpdated(ctx context.Context, todo *models.Todo) error {
	return p.publish(ctx, newTodoEvent(ports.EventTodoUpdated, models.FormatTodoID(todo.ID), todo, time.Now()))
}

func (p *NATSTodoPublisher) PublishDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, newTodoEvent(ports.EventTodoDeleted, id, nil, time.Now()))
}

func (p *NATSTodoPublisher) publish(ctx context.Context, event TodoEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal todo event: %w", err)
	}

	subject := eventSubject(p.subjectPrefix, event.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	p.logger.DebugContext(ctx, "Todo event sent", "subject", subject, "todo_id", event.ID)
	return nil
}

var _ ports.TodoEventPublisher = (*NATSTodoPublisher)(nil)
