package serviceimpl

import (
	"context"
	"strings"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/ports"
	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
	redispkg "github.com/LiamPeng/NYU-CC-k8s/infrastructure/redis"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

type TodoServiceImpl struct {
	todoRepo    repositories.TodoRepository
	events      ports.TodoEventPublisher
	redisClient *redispkg.Client // optional - ถ้าไม่มีจะ query store ตลอด
}

func NewTodoService(todoRepo repositories.TodoRepository, events ports.TodoEventPublisher) services.TodoService {
	return &TodoServiceImpl{
		todoRepo: todoRepo,
		events:   events,
	}
}

// NewTodoServiceWithCache สร้าง todo service พร้อม Redis list cache
func NewTodoServiceWithCache(todoRepo repositories.TodoRepository, events ports.TodoEventPublisher, redisClient *redispkg.Client) services.TodoService {
	return &TodoServiceImpl{
		todoRepo:    todoRepo,
		events:      events,
		redisClient: redisClient,
	}
}

func (s *TodoServiceImpl) CreateTodo(ctx context.Context, req *dto.CreateTodoRequest) (*models.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		logger.WarnContext(ctx, "Todo creation rejected", "reason", "empty title")
		return nil, models.ErrEmptyTitle
	}

	todo := &models.Todo{
		ID:          models.NewTodoID(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     strings.TrimSpace(req.DueDate),
		Priority:    strings.TrimSpace(req.Priority),
		Done:        false,
	}

	if err := s.todoRepo.Insert(ctx, todo); err != nil {
		logger.ErrorContext(ctx, "Failed to create todo", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Todo created", "todo_id", todo.ID.Hex())
	s.invalidateListCache(ctx)
	s.publish(ctx, "created", func() error { return s.events.PublishCreated(ctx, todo) })

	return todo, nil
}

func (s *TodoServiceImpl) ListTodos(ctx context.Context, filter models.DoneFilter) ([]*models.Todo, error) {
	todos, err := s.findMany(ctx, models.QueryForFilter(filter))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list todos", "filter", filter.String(), "error", err)
		return nil, err
	}
	return todos, nil
}

func (s *TodoServiceImpl) GetTodo(ctx context.Context, rawID string) (*models.Todo, error) {
	id, err := models.ParseTodoID(rawID)
	if err != nil {
		return nil, err
	}

	todo, err := s.todoRepo.FindOne(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get todo", "todo_id", rawID, "error", err)
		return nil, err
	}
	if todo == nil {
		return nil, models.ErrNotFound
	}
	return todo, nil
}

func (s *TodoServiceImpl) PatchTodo(ctx context.Context, rawID string, req *dto.PatchTodoRequest) (*models.Todo, error) {
	id, err := models.ParseTodoID(rawID)
	if err != nil {
		return nil, err
	}

	changes, err := buildChangeSet(req)
	if err != nil {
		logger.WarnContext(ctx, "Todo patch rejected", "todo_id", rawID, "reason", err)
		return nil, err
	}

	todo, err := s.todoRepo.UpdateFields(ctx, id, changes)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update todo", "todo_id", rawID, "error", err)
		return nil, err
	}
	if todo == nil {
		logger.WarnContext(ctx, "Todo not found for update", "todo_id", rawID)
		return nil, models.ErrNotFound
	}

	logger.InfoContext(ctx, "Todo updated", "todo_id", rawID)
	s.invalidateListCache(ctx)
	s.publish(ctx, "updated", func() error { return s.events.PublishUpdated(ctx, todo) })

	return todo, nil
}

// buildChangeSet keeps only the fields present in the request.
func buildChangeSet(req *dto.PatchTodoRequest) (models.TodoChangeSet, error) {
	var changes models.TodoChangeSet

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return changes, models.ErrEmptyTitle
		}
		changes.Title = &title
	}
	changes.Description = trimmed(req.Description)
	changes.DueDate = trimmed(req.DueDate)
	changes.Priority = trimmed(req.Priority)
	if req.Done != nil {
		done := *req.Done
		changes.Done = &done
	}

	if changes.IsEmpty() {
		return changes, models.ErrNoFieldsToUpdate
	}
	return changes, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (s *TodoServiceImpl) ToggleDone(ctx context.Context, rawID string) (*models.Todo, error) {
	id, err := models.ParseTodoID(rawID)
	if err != nil {
		return nil, err
	}

	todo, err := s.todoRepo.ToggleDone(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to toggle todo", "todo_id", rawID, "error", err)
		return nil, err
	}
	if todo == nil {
		logger.WarnContext(ctx, "Todo not found for toggle", "todo_id", rawID)
		return nil, models.ErrNotFound
	}

	logger.InfoContext(ctx, "Todo toggled", "todo_id", rawID, "done", todo.Done)
	s.invalidateListCache(ctx)
	s.publish(ctx, "updated", func() error { return s.events.PublishUpdated(ctx, todo) })

	return todo, nil
}

func (s *TodoServiceImpl) DeleteTodo(ctx context.Context, rawID string) error {
	id, err := models.ParseTodoID(rawID)
	if err != nil {
		return err
	}

	removed, err := s.todoRepo.Delete(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete todo", "todo_id", rawID, "error", err)
		return err
	}
	if !removed {
		logger.WarnContext(ctx, "Todo not found for deletion", "todo_id", rawID)
		return models.ErrNotFound
	}

	logger.InfoContext(ctx, "Todo deleted", "todo_id", rawID)
	s.invalidateListCache(ctx)
	s.publish(ctx, "deleted", func() error { return s.events.PublishDeleted(ctx, id.Hex()) })

	return nil
}

// SearchTodos never fails on bad input: malformed ids and unknown fields come
// back as a message with no results. Only store errors are returned.
func (s *TodoServiceImpl) SearchTodos(ctx context.Context, key string, field string, allowLegacy bool) (*services.SearchResult, error) {
	key = strings.TrimSpace(key)
	field = strings.TrimSpace(field)

	if field == "" {
		todos, err := s.findMany(ctx, models.TodoQuery{})
		if err != nil {
			return nil, err
		}
		return &services.SearchResult{Todos: todos}, nil
	}

	searchField, ok := models.ParseSearchField(field, allowLegacy)
	if !ok {
		logger.WarnContext(ctx, "Search on unknown field", "field", field)
		return &services.SearchResult{Todos: []*models.Todo{}, Message: services.SearchMsgUnknownField}, nil
	}

	switch searchField {
	case models.SearchByID:
		return s.searchByID(ctx, key)
	case models.SearchByDone:
		done, ok := models.ParseDoneValue(key)
		if !ok {
			return &services.SearchResult{Todos: []*models.Todo{}}, nil
		}
		todos, err := s.findMany(ctx, models.TodoQuery{Done: &done})
		if err != nil {
			return nil, err
		}
		return &services.SearchResult{Todos: todos}, nil
	default:
		todos, err := s.findMany(ctx, models.TodoQuery{Field: searchField, Value: key})
		if err != nil {
			return nil, err
		}
		return &services.SearchResult{Todos: todos}, nil
	}
}

func (s *TodoServiceImpl) searchByID(ctx context.Context, key string) (*services.SearchResult, error) {
	id, err := models.ParseTodoID(key)
	if err != nil {
		return &services.SearchResult{Todos: []*models.Todo{}, Message: services.SearchMsgInvalidID}, nil
	}

	todo, err := s.todoRepo.FindOne(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to search todo by id", "todo_id", key, "error", err)
		return nil, err
	}
	if todo == nil {
		return &services.SearchResult{Todos: []*models.Todo{}, Message: services.SearchMsgNoSuchID}, nil
	}
	return &services.SearchResult{Todos: []*models.Todo{todo}}, nil
}

// findMany reads through the Redis cache when one is configured.
func (s *TodoServiceImpl) findMany(ctx context.Context, query models.TodoQuery) ([]*models.Todo, error) {
	useCache := s.redisClient != nil
	var generation int64
	if useCache {
		gen, err := s.redisClient.ListGeneration(ctx)
		if err != nil {
			logger.WarnContext(ctx, "Todo list cache unavailable", "error", err)
			useCache = false
		}
		generation = gen
	}

	if useCache {
		todos, hit, err := s.redisClient.GetTodoList(ctx, generation, query)
		if err != nil {
			logger.WarnContext(ctx, "Todo list cache read failed", "key", query.Key(), "error", err)
		} else if hit {
			return todos, nil
		}
	}

	todos, err := s.todoRepo.FindMany(ctx, query)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := s.redisClient.SetTodoList(ctx, generation, query, todos); err != nil {
			logger.WarnContext(ctx, "Failed to cache todo list", "key", query.Key(), "error", err)
		}
	}
	return todos, nil
}

func (s *TodoServiceImpl) invalidateListCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if _, err := s.redisClient.InvalidateTodoLists(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate todo list cache", "error", err)
	}
}

// publish ส่ง event แบบ best-effort; error แค่ log ไม่ทำให้ request fail
func (s *TodoServiceImpl) publish(ctx context.Context, event string, send func() error) {
	if s.events == nil {
		return
	}
	if err := send(); err != nil {
		logger.WarnContext(ctx, "Failed to publish todo event", "event", event, "error", err)
	}
}
