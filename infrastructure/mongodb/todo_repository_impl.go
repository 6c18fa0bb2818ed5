package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/LiamPeng/NYU-CC-k8s/domain/models"
	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
)

type TodoRepositoryImpl struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewTodoRepository(client *mongo.Client, database, collection string) repositories.TodoRepository {
	return &TodoRepositoryImpl{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

var newestFirst = bson.D{{Key: "_id", Value: -1}}

func (r *TodoRepositoryImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	var todo models.Todo
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("find todo", err)
	}
	return &todo, nil
}

func (r *TodoRepositoryImpl) FindMany(ctx context.Context, query models.TodoQuery) ([]*models.Todo, error) {
	cursor, err := r.coll.Find(ctx, buildFilter(query), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, wrapErr("find todos", err)
	}

	todos := []*models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, wrapErr("decode todos", err)
	}
	return todos, nil
}

func (r *TodoRepositoryImpl) Insert(ctx context.Context, todo *models.Todo) error {
	if todo.ID.IsZero() {
		todo.ID = models.NewTodoID()
	}
	if _, err := r.coll.InsertOne(ctx, todo); err != nil {
		return wrapErr("insert todo", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) UpdateFields(ctx context.Context, id primitive.ObjectID, changes models.TodoChangeSet) (*models.Todo, error) {
	update := bson.D{{Key: "$set", Value: buildSet(changes)}}
	return r.findOneAndUpdate(ctx, id, update, "update todo")
}

// ToggleDone flips done server-side with a pipeline update, so there is no
// read-then-write window.
func (r *TodoRepositoryImpl) ToggleDone(ctx context.Context, id primitive.ObjectID) (*models.Todo, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "done", Value: bson.D{{Key: "$not", Value: bson.A{"$done"}}}}}}},
	}
	return r.findOneAndUpdate(ctx, id, update, "toggle todo")
}

func (r *TodoRepositoryImpl) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update any, op string) (*models.Todo, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var todo models.Todo
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return &todo, nil
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, wrapErr("delete todo", err)
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes สร้าง index บน done (idempotent)
func (r *TodoRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "done", Value: 1}},
	})
	if err != nil {
		return wrapErr("create done index", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return wrapErr("ping", err)
	}
	return nil
}

func (r *TodoRepositoryImpl) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// buildFilter converts a store query into a bson filter. Field names come from
// the closed SearchField set and match the document's bson keys.
func buildFilter(query models.TodoQuery) bson.D {
	filter := bson.D{}
	if query.Done != nil {
		filter = append(filter, bson.E{Key: "done", Value: *query.Done})
	}
	switch query.Field {
	case models.SearchByTitle, models.SearchByDescription, models.SearchByDueDate, models.SearchByPriority:
		filter = append(filter, bson.E{Key: string(query.Field), Value: query.Value})
	}
	return filter
}

func buildSet(changes models.TodoChangeSet) bson.D {
	set := bson.D{}
	if changes.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *changes.Title})
	}
	if changes.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *changes.Description})
	}
	if changes.DueDate != nil {
		set = append(set, bson.E{Key: "due_date", Value: *changes.DueDate})
	}
	if changes.Priority != nil {
		set = append(set, bson.E{Key: "priority", Value: *changes.Priority})
	}
	if changes.Done != nil {
		set = append(set, bson.E{Key: "done", Value: *changes.Done})
	}
	return set
}

func wrapErr(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || isServerSelectionErr(err) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, models.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// driver คืนค่า ServerSelectionError ทั้งแบบ value และ pointer
func isServerSelectionErr(err error) bool {
	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return true
	}
	var selPtr *topology.ServerSelectionError
	return errors.As(err, &selPtr)
}
