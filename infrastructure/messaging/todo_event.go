package messaging

import (
	"time"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
)

// TodoEvent is the JSON payload published for each todo change.
type TodoEvent struct {
	Type      string            `json:"type"`
	ID        string            `json:"id"`
	Todo      *dto.TodoResponse `json:"todo,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

func newTodoEvent(eventType string, id string, todo *models.Todo, now time.Time) TodoEvent {
	return TodoEvent{
		Type:      eventType,
		ID:        id,
		Todo:      dto.TodoToResponse(todo),
		Timestamp: now.Unix(),
	}
}

// eventSubject เช่น todos.created
func eventSubject(prefix, eventType string) string {
	return prefix + "." + eventType
}
