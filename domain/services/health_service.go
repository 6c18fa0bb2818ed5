package services

import "context"

type HealthService interface {
	// IsReady reports whether the store answered a ping within the store timeout.
	IsReady(ctx context.Context) bool
	StoreName() string
}
