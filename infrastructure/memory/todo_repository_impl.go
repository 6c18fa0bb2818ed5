package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
)

// TodoRepositoryImpl keeps todos in process memory. Every method holds the
// lock for its whole body, which makes update and toggle atomic.
type TodoRepositoryImpl struct {
	mu    sync.RWMutex
	todos map[primitive.ObjectID]models.Todo
}

func NewTodoRepository() repositories.TodoRepository {
	return &TodoRepositoryImpl{todos: make(map[primitive.ObjectID]models.Todo)}
}

func (r *TodoRepositoryImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, nil
	}
	return &todo, nil
}

func (r *TodoRepositoryImpl) FindMany(ctx context.Context, query models.TodoQuery) ([]*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		if !matches(todo, query) {
			continue
		}
		t := todo
		result = append(result, &t)
	}

	// newest-first
	sort.Slice(result, func(i, j int) bool {
		return bytes.Compare(result[i].ID[:], result[j].ID[:]) > 0
	})
	return result, nil
}

func matches(todo models.Todo, query models.TodoQuery) bool {
	if query.Done != nil && todo.Done != *query.Done {
		return false
	}
	switch query.Field {
	case models.SearchByTitle:
		return todo.Title == query.Value
	case models.SearchByDescription:
		return todo.Description == query.Value
	case models.SearchByDueDate:
		return todo.DueDate == query.Value
	case models.SearchByPriority:
		return todo.Priority == query.Value
	}
	return true
}

func (r *TodoRepositoryImpl) Insert(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID.IsZero() {
		todo.ID = models.NewTodoID()
	}
	r.todos[todo.ID] = *todo
	return nil
}

func (r *TodoRepositoryImpl) UpdateFields(ctx context.Context, id primitive.ObjectID, changes models.TodoChangeSet) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, nil
	}
	changes.Apply(&todo)
	r.todos[id] = todo
	return &todo, nil
}

func (r *TodoRepositoryImpl) ToggleDone(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, nil
	}
	todo.Done = !todo.Done
	r.todos[id] = todo
	return &todo, nil
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return false, nil
	}
	delete(r.todos, id)
	return true, nil
}

func (r *TodoRepositoryImpl) EnsureIndexes(ctx context.Context) error { return nil }

func (r *TodoRepositoryImpl) Ping(ctx context.Context) error { return ctx.Err() }

func (r *TodoRepositoryImpl) Close(ctx context.Context) error { return nil }
