package dto

import (
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
)

func TodoToResponse(todo *models.Todo) *TodoResponse {
	if todo == nil {
		return nil
	}
	return &TodoResponse{
		ID:          models.FormatTodoID(todo.ID),
		Title:       todo.Title,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		Done:        todo.Done,
	}
}

// TodosToResponses always returns a non-nil slice so empty lists encode as [].
func TodosToResponses(todos []*models.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, *TodoToResponse(t))
	}
	return out
}

// TodoView is the record handed to the HTML templates. Field names follow the
// legacy form (name/desc/date/pr) and done uses "yes"/"no".
type TodoView struct {
	ID   string
	Name string
	Desc string
	Date string
	Pr   string
	Done string
}

func TodoToView(todo *models.Todo) TodoView {
	return TodoView{
		ID:   models.FormatTodoID(todo.ID),
		Name: todo.Title,
		Desc: todo.Description,
		Date: todo.DueDate,
		Pr:   todo.Priority,
		Done: models.FormatDoneLegacy(todo.Done),
	}
}

func TodosToViews(todos []*models.Todo) []TodoView {
	out := make([]TodoView, 0, len(todos))
	for _, t := range todos {
		out = append(out, TodoToView(t))
	}
	return out
}
