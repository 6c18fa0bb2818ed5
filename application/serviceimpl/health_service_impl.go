package serviceimpl

import (
	"context"
	"time"

	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

type HealthServiceImpl struct {
	todoRepo  repositories.TodoRepository
	timeout   time.Duration
	storeName string
}

func NewHealthService(todoRepo repositories.TodoRepository, storeName string, timeout time.Duration) services.HealthService {
	return &HealthServiceImpl{
		todoRepo:  todoRepo,
		timeout:   timeout,
		storeName: storeName,
	}
}

func (s *HealthServiceImpl) IsReady(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.todoRepo.Ping(ctx); err != nil {
		logger.WarnContext(ctx, "Readiness check failed", "store", s.storeName, "error", err)
		return false
	}
	return true
}

func (s *HealthServiceImpl) StoreName() string {
	return s.storeName
}
