package models

import "errors"

// Error taxonomy ของ todo operations
// handlers ใช้ errors.Is แปลงเป็น HTTP status
var (
	ErrInvalidIdentifier = errors.New("invalid id")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
