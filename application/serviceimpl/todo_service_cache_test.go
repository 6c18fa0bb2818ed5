package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/infrastructure/memory"
	redispkg "github.com/LiamPeng/NYU-CC-k8s/infrastructure/redis"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/config"
)

func TestListTodosReadsThroughCacheAndInvalidatesOnMutation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	redisClient, err := redispkg.NewClient(&config.RedisConfig{URL: "redis://" + mr.Addr(), CacheTTL: time.Minute}, time.Second)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	repo := &countingRepo{TodoRepository: memory.NewTodoRepository()}
	svc := NewTodoServiceWithCache(repo, &recordingPublisher{}, redisClient)

	first, err := svc.CreateTodo(ctx, &dto.CreateTodoRequest{Title: "a"})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	list := func() []*models.Todo {
		t.Helper()
		todos, err := svc.ListTodos(ctx, models.FilterAll)
		if err != nil {
			t.Fatalf("ListTodos: %v", err)
		}
		return todos
	}

	before := repo.calls
	if got := list(); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("first list = %v", got)
	}
	if repo.calls != before+1 {
		t.Fatalf("first list should hit the store")
	}

	if got := list(); len(got) != 1 {
		t.Fatalf("cached list = %v", got)
	}
	if repo.calls != before+1 {
		t.Errorf("second list should be served from cache")
	}

	tests := []struct {
		name   string
		mutate func() error
		want   int
	}{
		{"create", func() error {
			_, err := svc.CreateTodo(ctx, &dto.CreateTodoRequest{Title: "b"})
			return err
		}, 2},
		{"toggle", func() error {
			_, err := svc.ToggleDone(ctx, first.ID.Hex())
			return err
		}, 2},
		{"delete", func() error {
			return svc.DeleteTodo(ctx, first.ID.Hex())
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list() // warm
			if err := tt.mutate(); err != nil {
				t.Fatalf("mutation: %v", err)
			}
			calls := repo.calls
			got := list()
			if len(got) != tt.want {
				t.Errorf("list after %s = %d todos, want %d", tt.name, len(got), tt.want)
			}
			if repo.calls != calls+1 {
				t.Errorf("list after %s should hit the store again", tt.name)
			}
		})
	}

	done, err := svc.ListTodos(ctx, models.FilterDone)
	if err != nil || len(done) != 0 {
		t.Errorf("done list after deleting the toggled todo = (%v, %v)", done, err)
	}
}

func TestListTodosFallsBackToStoreWhenCacheIsDown(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	redisClient, err := redispkg.NewClient(&config.RedisConfig{URL: "redis://" + mr.Addr(), CacheTTL: time.Minute}, time.Second)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	svc := NewTodoServiceWithCache(memory.NewTodoRepository(), &recordingPublisher{}, redisClient)
	mr.Close()

	if _, err := svc.CreateTodo(ctx, &dto.CreateTodoRequest{Title: "a"}); err != nil {
		t.Fatalf("CreateTodo with cache down: %v", err)
	}
	todos, err := svc.ListTodos(ctx, models.FilterAll)
	if err != nil || len(todos) != 1 {
		t.Errorf("ListTodos with cache down = (%v, %v)", todos, err)
	}
}
