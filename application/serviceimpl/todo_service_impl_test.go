package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LiamPeng/NYU-CC-k8s/domain/dto"
	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
	"github.com/LiamPeng/NYU-CC-k8s/infrastructure/memory"
)

// recordingPublisher เก็บ event ที่ถูก publish ไว้ตรวจใน test
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (p *recordingPublisher) record(event string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	if p.fail {
		return errors.New("broker down")
	}
	return nil
}

func (p *recordingPublisher) PublishCreated(ctx context.Context, todo *models.Todo) error {
	return p.record("created:" + todo.ID.Hex())
}

func (p *recordingPublisher) PublishUpdated(ctx context.Context, todo *models.Todo) error {
	return p.record("updated:" + todo.ID.Hex())
}

func (p *recordingPublisher) PublishDeleted(ctx context.Context, id string) error {
	return p.record("deleted:" + id)
}

// countingRepo นับจำนวนครั้งที่ store ถูกเรียก
type countingRepo struct {
	repositories.TodoRepository
	calls int
}

func (r *countingRepo) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	r.calls++
	return r.TodoRepository.FindOne(ctx, id)
}

func (r *countingRepo) FindMany(ctx context.Context, q models.TodoQuery) ([]*models.Todo, error) {
	r.calls++
	return r.TodoRepository.FindMany(ctx, q)
}

func (r *countingRepo) Insert(ctx context.Context, todo *models.Todo) error {
	r.calls++
	return r.TodoRepository.Insert(ctx, todo)
}

func (r *countingRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, changes models.TodoChangeSet) (*models.Todo, error) {
	r.calls++
	return r.TodoRepository.UpdateFields(ctx, id, changes)
}

func (r *countingRepo) ToggleDone(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	r.calls++
	return r.TodoRepository.ToggleDone(ctx, id)
}

func (r *countingRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.calls++
	return r.TodoRepository.Delete(ctx, id)
}

func newTestService() (services.TodoService, *countingRepo, *recordingPublisher) {
	repo := &countingRepo{TodoRepository: memory.NewTodoRepository()}
	events := &recordingPublisher{}
	return NewTodoService(repo, events), repo, events
}

func mustCreate(t *testing.T, svc services.TodoService, title string) *models.Todo {
	t.Helper()
	todo, err := svc.CreateTodo(context.Background(), &dto.CreateTodoRequest{Title: title})
	if err != nil {
		t.Fatalf("CreateTodo(%q): %v", title, err)
	}
	return todo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTodo(t *testing.T) {
	ctx := context.Background()
	svc, repo, events := newTestService()

	todo, err := svc.CreateTodo(ctx, &dto.CreateTodoRequest{
		Title:       "  buy milk  ",
		Description: " 2 litres ",
		DueDate:     "2024-01-01",
		Priority:    "high",
	})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if todo.Title != "buy milk" || todo.Description != "2 litres" {
		t.Errorf("fields not trimmed: %+v", todo)
	}
	if todo.Done {
		t.Error("new todo must not be done")
	}
	if todo.ID.IsZero() {
		t.Error("expected an identifier to be assigned")
	}

	all, _ := svc.ListTodos(ctx, models.FilterAll)
	if len(all) != 1 || all[0].ID != todo.ID {
		t.Fatalf("created todo not listed: %v", all)
	}
	if len(events.events) != 1 || events.events[0] != "created:"+todo.ID.Hex() {
		t.Errorf("events = %v", events.events)
	}

	before := repo.calls
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := svc.CreateTodo(ctx, &dto.CreateTodoRequest{Title: title}); !errors.Is(err, models.ErrEmptyTitle) {
			t.Errorf("CreateTodo(%q) err = %v, want ErrEmptyTitle", title, err)
		}
	}
	if repo.calls != before {
		t.Errorf("rejected creates touched the store %d times", repo.calls-before)
	}
}

func TestCreateTodoPublishFailureIsNotFatal(t *testing.T) {
	repo := memory.NewTodoRepository()
	svc := NewTodoService(repo, &recordingPublisher{fail: true})

	if _, err := svc.CreateTodo(context.Background(), &dto.CreateTodoRequest{Title: "x"}); err != nil {
		t.Fatalf("CreateTodo with failing publisher: %v", err)
	}
}

func TestListTodosNewestFirstAndFiltered(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	a := mustCreate(t, svc, "a")
	b := mustCreate(t, svc, "b")
	c := mustCreate(t, svc, "c")
	if _, err := svc.ToggleDone(ctx, b.ID.Hex()); err != nil {
		t.Fatalf("ToggleDone: %v", err)
	}

	tests := []struct {
		filter models.DoneFilter
		want   []primitive.ObjectID
	}{
		{models.FilterAll, []primitive.ObjectID{c.ID, b.ID, a.ID}},
		{models.FilterDone, []primitive.ObjectID{b.ID}},
		{models.FilterNotDone, []primitive.ObjectID{c.ID, a.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			got, err := svc.ListTodos(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListTodos: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d todos, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("position %d = %s, want %s", i, got[i].ID.Hex(), tt.want[i].Hex())
				}
			}
		})
	}
}

func TestGetTodo(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	todo := mustCreate(t, svc, "a")

	got, err := svc.GetTodo(ctx, todo.ID.Hex())
	if err != nil || got.Title != "a" {
		t.Fatalf("GetTodo = (%v, %v)", got, err)
	}
	if _, err := svc.GetTodo(ctx, "nope"); !errors.Is(err, models.ErrInvalidIdentifier) {
		t.Errorf("malformed id err = %v", err)
	}
	if _, err := svc.GetTodo(ctx, models.NewTodoID().Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("absent id err = %v", err)
	}
}

func TestPatchTodo(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	todo := mustCreate(t, svc, "a")
	id := todo.ID.Hex()

	tests := []struct {
		name    string
		id      string
		req     *dto.PatchTodoRequest
		wantErr error
	}{
		{"malformed id", "xyz", &dto.PatchTodoRequest{Title: strPtr("b")}, models.ErrInvalidIdentifier},
		{"empty title", id, &dto.PatchTodoRequest{Title: strPtr("  ")}, models.ErrEmptyTitle},
		{"no fields", id, &dto.PatchTodoRequest{}, models.ErrNoFieldsToUpdate},
		{"absent", models.NewTodoID().Hex(), &dto.PatchTodoRequest{Done: boolPtr(true)}, models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.PatchTodo(ctx, tt.id, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	before := repo.calls
	if _, err := svc.PatchTodo(ctx, id, &dto.PatchTodoRequest{Title: strPtr("")}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if repo.calls != before {
		t.Error("validation failure reached the store")
	}

	updated, err := svc.PatchTodo(ctx, id, &dto.PatchTodoRequest{Done: boolPtr(true), Priority: strPtr(" low ")})
	if err != nil {
		t.Fatalf("PatchTodo: %v", err)
	}
	if !updated.Done || updated.Priority != "low" || updated.Title != "a" {
		t.Errorf("post-image = %+v", updated)
	}

	renamed, err := svc.PatchTodo(ctx, id, &dto.PatchTodoRequest{Title: strPtr(" b ")})
	if err != nil {
		t.Fatalf("PatchTodo title: %v", err)
	}
	if renamed.Title != "b" || !renamed.Done {
		t.Errorf("unchanged fields should be kept: %+v", renamed)
	}
}

func TestToggleDoneTwiceRestores(t *testing.T) {
	ctx := context.Background()
	svc, _, events := newTestService()
	todo := mustCreate(t, svc, "a")

	first, err := svc.ToggleDone(ctx, todo.ID.Hex())
	if err != nil || !first.Done {
		t.Fatalf("first toggle = (%v, %v)", first, err)
	}
	second, err := svc.ToggleDone(ctx, todo.ID.Hex())
	if err != nil || second.Done {
		t.Fatalf("second toggle = (%v, %v)", second, err)
	}
	if len(events.events) != 3 {
		t.Errorf("expected created + 2 updated events, got %v", events.events)
	}

	if _, err := svc.ToggleDone(ctx, "bad"); !errors.Is(err, models.ErrInvalidIdentifier) {
		t.Errorf("malformed id err = %v", err)
	}
	if _, err := svc.ToggleDone(ctx, models.NewTodoID().Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("absent id err = %v", err)
	}
}

func TestConcurrentTogglesAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	todo := mustCreate(t, svc, "a")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ToggleDone(ctx, todo.ID.Hex()); err != nil {
				t.Errorf("ToggleDone: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := svc.GetTodo(ctx, todo.ID.Hex())
	if got.Done {
		t.Errorf("an even number of toggles should leave done=false")
	}
}

func TestDeleteTodo(t *testing.T) {
	ctx := context.Background()
	svc, _, events := newTestService()
	todo := mustCreate(t, svc, "a")

	if err := svc.DeleteTodo(ctx, todo.ID.Hex()); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if err := svc.DeleteTodo(ctx, todo.ID.Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteTodo(ctx, "zzz"); !errors.Is(err, models.ErrInvalidIdentifier) {
		t.Errorf("malformed id err = %v", err)
	}
	if _, err := svc.GetTodo(ctx, todo.ID.Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("deleted todo still readable: %v", err)
	}
	if last := events.events[len(events.events)-1]; last != "deleted:"+todo.ID.Hex() {
		t.Errorf("last event = %q", last)
	}
}

func TestSearchTodos(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	milk, _ := svc.CreateTodo(ctx, &dto.CreateTodoRequest{Title: "milk", Priority: "high"})
	bread, _ := svc.CreateTodo(ctx, &dto.CreateTodoRequest{Title: "bread", Priority: "high"})
	if _, err := svc.ToggleDone(ctx, milk.ID.Hex()); err != nil {
		t.Fatalf("ToggleDone: %v", err)
	}

	tests := []struct {
		name    string
		key     string
		field   string
		legacy  bool
		wantIDs []primitive.ObjectID
		wantMsg string
	}{
		{"by id", milk.ID.Hex(), "id", false, []primitive.ObjectID{milk.ID}, ""},
		{"malformed id", "not-an-id", "id", false, nil, services.SearchMsgInvalidID},
		{"absent id", models.NewTodoID().Hex(), "id", false, nil, services.SearchMsgNoSuchID},
		{"by title", " milk ", "title", false, []primitive.ObjectID{milk.ID}, ""},
		{"by priority newest first", "high", "priority", false, []primitive.ObjectID{bread.ID, milk.ID}, ""},
		{"done true", "true", "done", false, []primitive.ObjectID{milk.ID}, ""},
		{"done legacy no", "no", "done", false, []primitive.ObjectID{bread.ID}, ""},
		{"done garbage", "maybe", "done", false, nil, ""},
		{"empty field lists all", "", "", false, []primitive.ObjectID{bread.ID, milk.ID}, ""},
		{"legacy alias", "bread", "name", true, []primitive.ObjectID{bread.ID}, ""},
		{"legacy alias rejected on api", "bread", "name", false, nil, services.SearchMsgUnknownField},
		{"unknown field", "x", "colour", false, nil, services.SearchMsgUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.SearchTodos(ctx, tt.key, tt.field, tt.legacy)
			if err != nil {
				t.Fatalf("SearchTodos: %v", err)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", res.Message, tt.wantMsg)
			}
			if len(res.Todos) != len(tt.wantIDs) {
				t.Fatalf("got %d todos, want %d", len(res.Todos), len(tt.wantIDs))
			}
			for i := range res.Todos {
				if res.Todos[i].ID != tt.wantIDs[i] {
					t.Errorf("position %d = %s", i, res.Todos[i].ID.Hex())
				}
			}
		})
	}

	before := repo.calls
	if _, err := svc.SearchTodos(ctx, "x", "colour", false); err != nil {
		t.Fatal(err)
	}
	if repo.calls != before {
		t.Error("unknown field should not query the store")
	}
}
