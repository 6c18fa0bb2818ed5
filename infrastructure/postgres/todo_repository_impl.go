package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
)

// todoRecord is the row shape. The id column stores the same 24-hex object id
// the document backend uses, so ids stay portable between drivers and sort
// newest-first.
type todoRecord struct {
	ID          string `gorm:"primaryKey;type:char(24)"`
	Title       string `gorm:"not null"`
	Description string
	DueDate     string
	Priority    string
	Done        bool `gorm:"not null;default:false;index"`
}

func (todoRecord) TableName() string {
	return "todos"
}

func recordFromTodo(todo *models.Todo) *todoRecord {
	return &todoRecord{
		ID:          models.FormatTodoID(todo.ID),
		Title:       todo.Title,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		Done:        todo.Done,
	}
}

func (r *todoRecord) toTodo() (*models.Todo, error) {
	id, err := models.ParseTodoID(strings.TrimSpace(r.ID))
	if err != nil {
		return nil, fmt.Errorf("corrupt todo id %q: %v", r.ID, err)
	}
	return &models.Todo{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		Done:        r.Done,
	}, nil
}

type TodoRepositoryImpl struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) repositories.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	var rec todoRecord
	err := r.db.WithContext(ctx).Where("id = ?", id.Hex()).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("find todo", err)
	}
	return rec.toTodo()
}

func (r *TodoRepositoryImpl) FindMany(ctx context.Context, query models.TodoQuery) ([]*models.Todo, error) {
	tx := r.db.WithContext(ctx).Model(&todoRecord{})
	if cond, args := queryConditions(query); cond != "" {
		tx = tx.Where(cond, args...)
	}

	var recs []todoRecord
	if err := tx.Order("id DESC").Find(&recs).Error; err != nil {
		return nil, wrapErr("find todos", err)
	}

	todos := make([]*models.Todo, 0, len(recs))
	for i := range recs {
		todo, err := recs[i].toTodo()
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

func (r *TodoRepositoryImpl) Insert(ctx context.Context, todo *models.Todo) error {
	if todo.ID.IsZero() {
		todo.ID = models.NewTodoID()
	}
	if err := r.db.WithContext(ctx).Create(recordFromTodo(todo)).Error; err != nil {
		return wrapErr("insert todo", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) UpdateFields(ctx context.Context, id primitive.ObjectID, changes models.TodoChangeSet) (*models.Todo, error) {
	return r.updateReturning(ctx, id, buildUpdates(changes), "update todo")
}

// ToggleDone flips done in one UPDATE ... RETURNING statement.
func (r *TodoRepositoryImpl) ToggleDone(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	return r.updateReturning(ctx, id, map[string]any{"done": gorm.Expr("NOT done")}, "toggle todo")
}

func (r *TodoRepositoryImpl) updateReturning(ctx context.Context, id primitive.ObjectID, updates map[string]any, op string) (*models.Todo, error) {
	var rec todoRecord
	res := r.db.WithContext(ctx).
		Model(&rec).
		Clauses(clause.Returning{}).
		Where("id = ?", id.Hex()).
		Updates(updates)
	if res.Error != nil {
		return nil, wrapErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return rec.toTodo()
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id.Hex()).Delete(&todoRecord{})
	if res.Error != nil {
		return false, wrapErr("delete todo", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *TodoRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	if err := migrate(r.db.WithContext(ctx)); err != nil {
		return wrapErr("migrate todos", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var searchColumns = map[models.SearchField]string{
	models.SearchByTitle:       "title",
	models.SearchByDescription: "description",
	models.SearchByDueDate:     "due_date",
	models.SearchByPriority:    "priority",
}

// queryConditions builds the WHERE clause. Column names only ever come from
// searchColumns, values are bound parameters.
func queryConditions(query models.TodoQuery) (string, []any) {
	var conds []string
	var args []any
	if query.Done != nil {
		conds = append(conds, "done = ?")
		args = append(args, *query.Done)
	}
	if col, ok := searchColumns[query.Field]; ok {
		conds = append(conds, col+" = ?")
		args = append(args, query.Value)
	}
	return strings.Join(conds, " AND "), args
}

func buildUpdates(changes models.TodoChangeSet) map[string]any {
	updates := map[string]any{}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Description != nil {
		updates["description"] = *changes.Description
	}
	if changes.DueDate != nil {
		updates["due_date"] = *changes.DueDate
	}
	if changes.Priority != nil {
		updates["priority"] = *changes.Priority
	}
	if changes.Done != nil {
		updates["done"] = *changes.Done
	}
	return updates
}

func wrapErr(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %v", op, models.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
