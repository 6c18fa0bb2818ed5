package dto

import (
	"encoding/json"
	"strings"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
)

type CreateTodoRequest struct {
	Title       string `json:"title" form:"name"`
	Description string `json:"description" form:"desc"`
	DueDate     string `json:"due_date" form:"date"`
	Priority    string `json:"priority" form:"pr"`
}

// PatchTodoRequest records which fields were present in the request body.
// nil means absent.
type PatchTodoRequest struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *string
	Done        *bool
}

type TodoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Done        bool   `json:"done"`
}

type ListTodosRequest struct {
	Done string `query:"done" validate:"omitempty,oneof=true false"`
}

type SearchTodosRequest struct {
	Key   string `query:"key"`
	Field string `query:"field" validate:"omitempty,oneof=id title description due_date priority done"`
}

type SearchTodosResponse struct {
	Todos   []TodoResponse `json:"todos"`
	Message string         `json:"message,omitempty"`
}

// ParseCreateTodoRequest decodes a JSON body. Bodies that are not a JSON
// object are treated as empty. Optional fields that are not strings are
// ignored so they cannot mask a valid title.
func ParseCreateTodoRequest(body []byte) *CreateTodoRequest {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return &CreateTodoRequest{}
	}

	req := &CreateTodoRequest{}
	req.Title, _ = data["title"].(string)
	req.Description, _ = data["description"].(string)
	req.DueDate, _ = data["due_date"].(string)
	req.Priority, _ = data["priority"].(string)
	return req
}

// ParsePatchTodoRequest decodes a JSON body keeping track of key presence.
// A present but non-string title becomes "" so it fails the empty check.
// Non-string optional fields are treated as absent.
func ParsePatchTodoRequest(body []byte) *PatchTodoRequest {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return &PatchTodoRequest{}
	}

	req := &PatchTodoRequest{}
	if v, ok := data["title"]; ok {
		s, _ := v.(string)
		req.Title = &s
	}
	req.Description = optionalString(data, "description")
	req.DueDate = optionalString(data, "due_date")
	req.Priority = optionalString(data, "priority")
	if v, ok := data["done"]; ok {
		b := CoerceBool(v)
		req.Done = &b
	}
	return req
}

// CoerceBool converts a decoded JSON value to a boolean.
func CoerceBool(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		if b, ok := models.ParseDoneValue(val); ok {
			return b
		}
		return strings.TrimSpace(val) != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	}
	return false
}

func optionalString(data map[string]any, key string) *string {
	if s, ok := data[key].(string); ok {
		return &s
	}
	return nil
}

// UpdateTodoForm is the legacy edit form posted to /action3.
type UpdateTodoForm struct {
	ID          string `form:"_id"`
	Title       string `form:"name"`
	Description string `form:"desc"`
	DueDate     string `form:"date"`
	Priority    string `form:"pr"`
}

// ToPatchRequest marks every form field as present.
func (f *UpdateTodoForm) ToPatchRequest() *PatchTodoRequest {
	return &PatchTodoRequest{
		Title:       &f.Title,
		Description: &f.Description,
		DueDate:     &f.DueDate,
		Priority:    &f.Priority,
	}
}
