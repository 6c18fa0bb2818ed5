package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo เป็น document เดียวใน collection
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     string             `bson:"due_date"`
	Priority    string             `bson:"priority"`
	Done        bool               `bson:"done"`
}

// TodoChangeSet holds only the fields a patch actually modifies.
type TodoChangeSet struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *string
	Done        *bool
}

func (c TodoChangeSet) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.DueDate == nil && c.Priority == nil && c.Done == nil
}

// Apply เขียน field ที่มีใน change-set ลงบน todo (ใช้กับ memory store)
func (c TodoChangeSet) Apply(todo *Todo) {
	if c.Title != nil {
		todo.Title = *c.Title
	}
	if c.Description != nil {
		todo.Description = *c.Description
	}
	if c.DueDate != nil {
		todo.DueDate = *c.DueDate
	}
	if c.Priority != nil {
		todo.Priority = *c.Priority
	}
	if c.Done != nil {
		todo.Done = *c.Done
	}
}

// DoneFilter selects which todos a listing returns.
type DoneFilter int

const (
	FilterAll DoneFilter = iota
	FilterDone
	FilterNotDone
)

func (f DoneFilter) String() string {
	switch f {
	case FilterDone:
		return "done"
	case FilterNotDone:
		return "not-done"
	default:
		return "all"
	}
}

// TodoQuery is the filter handed to the store. Zero value matches everything.
type TodoQuery struct {
	Done  *bool
	Field SearchField // string equality on Field = Value, ignored when empty
	Value string
}

// QueryForFilter converts a listing filter into a store query.
func QueryForFilter(f DoneFilter) TodoQuery {
	switch f {
	case FilterDone:
		done := true
		return TodoQuery{Done: &done}
	case FilterNotDone:
		done := false
		return TodoQuery{Done: &done}
	default:
		return TodoQuery{}
	}
}

// Key is a stable textual form of the query, used for cache keys and logs.
func (q TodoQuery) Key() string {
	var b strings.Builder
	b.WriteString("done=")
	switch {
	case q.Done == nil:
		b.WriteString("*")
	case *q.Done:
		b.WriteString("true")
	default:
		b.WriteString("false")
	}
	if q.Field != "" {
		b.WriteString("|")
		b.WriteString(string(q.Field))
		b.WriteString("=")
		b.WriteString(q.Value)
	}
	return b.String()
}
