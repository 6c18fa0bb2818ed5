package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/config"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(&config.RedisConfig{URL: "redis://" + mr.Addr(), CacheTTL: time.Minute}, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestTodoListKey(t *testing.T) {
	yes := true

	tests := []struct {
		name  string
		gen   int64
		query models.TodoQuery
		want  string
	}{
		{"all", 0, models.TodoQuery{}, "todos:list:0:done=*"},
		{"done", 3, models.TodoQuery{Done: &yes}, "todos:list:3:done=true"},
		{"not done", 0, models.QueryForFilter(models.FilterNotDone), "todos:list:0:done=false"},
		{"field", 12, models.TodoQuery{Field: models.SearchByTitle, Value: "milk"}, "todos:list:12:done=*|title=milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TodoListKey(tt.gen, tt.query); got != tt.want {
				t.Errorf("TodoListKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTodoListCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	query := models.QueryForFilter(models.FilterAll)

	gen, err := client.ListGeneration(ctx)
	if err != nil || gen != 0 {
		t.Fatalf("ListGeneration = (%d, %v)", gen, err)
	}

	if _, hit, err := client.GetTodoList(ctx, gen, query); hit || err != nil {
		t.Fatalf("empty cache = (hit %v, %v)", hit, err)
	}

	todo := &models.Todo{ID: models.NewTodoID(), Title: "milk", Done: true}
	if err := client.SetTodoList(ctx, gen, query, []*models.Todo{todo}); err != nil {
		t.Fatalf("SetTodoList: %v", err)
	}
	if ttl := mr.TTL(TodoListKey(gen, query)); ttl != time.Minute {
		t.Errorf("ttl = %v", ttl)
	}

	got, hit, err := client.GetTodoList(ctx, gen, query)
	if err != nil || !hit || len(got) != 1 || got[0].ID != todo.ID || got[0].Title != "milk" || !got[0].Done {
		t.Fatalf("GetTodoList = (%v, %v, %v)", got, hit, err)
	}
}

func TestInvalidateTodoListsDropsListsAndBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	query := models.TodoQuery{}
	todos := []*models.Todo{{ID: models.NewTodoID(), Title: "a"}}

	stale, _ := client.ListGeneration(ctx)
	if err := client.SetTodoList(ctx, stale, query, todos); err != nil {
		t.Fatal(err)
	}

	gen, err := client.InvalidateTodoLists(ctx)
	if err != nil || gen != stale+1 {
		t.Fatalf("InvalidateTodoLists = (%d, %v)", gen, err)
	}
	if mr.Exists(TodoListKey(stale, query)) {
		t.Error("cached list survived invalidation")
	}

	// a reader that started before the mutation writes late
	if err := client.SetTodoList(ctx, stale, query, todos); err != nil {
		t.Fatal(err)
	}
	current, _ := client.ListGeneration(ctx)
	if _, hit, _ := client.GetTodoList(ctx, current, query); hit {
		t.Error("late write under an old generation was served")
	}
}
