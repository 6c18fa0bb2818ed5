package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
	"github.com/LiamPeng/NYU-CC-k8s/infrastructure/memory"
)

type unreachableRepo struct {
	repositories.TodoRepository
}

func (unreachableRepo) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

func TestHealthServiceIsReady(t *testing.T) {
	ready := NewHealthService(memory.NewTodoRepository(), "memory", time.Second)
	if !ready.IsReady(context.Background()) {
		t.Error("memory store should be ready")
	}

	down := NewHealthService(unreachableRepo{}, "mongodb", time.Second)
	if down.IsReady(context.Background()) {
		t.Error("unreachable store reported ready")
	}
	if down.StoreName() != "mongodb" {
		t.Errorf("StoreName = %q", down.StoreName())
	}
}
