package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewTodoID returns a fresh object id. Ids are time-ordered, so sorting by id
// descending yields newest-first.
func NewTodoID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// ParseTodoID decodes the external 24-hex representation.
func ParseTodoID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidIdentifier
	}
	return id, nil
}

// FormatTodoID is the inverse of ParseTodoID.
func FormatTodoID(id primitive.ObjectID) string {
	return id.Hex()
}
