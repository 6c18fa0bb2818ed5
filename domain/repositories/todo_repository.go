package repositories

import (
	"context"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoRepository is the document store adapter for the todo collection.
// Absent documents are reported as (nil, nil) or false, never as an error.
type TodoRepository interface {
	FindOne(ctx context.Context, id primitive.ObjectID) (*models.Todo, error)
	FindMany(ctx context.Context, query models.TodoQuery) ([]*models.Todo, error)
	Insert(ctx context.Context, todo *models.Todo) error
	// UpdateFields applies the change-set atomically and returns the post-image.
	UpdateFields(ctx context.Context, id primitive.ObjectID, changes models.TodoChangeSet) (*models.Todo, error)
	// ToggleDone flips done atomically and returns the post-image.
	ToggleDone(ctx context.Context, id primitive.ObjectID) (*models.Todo, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	EnsureIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
