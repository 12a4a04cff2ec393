package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// TodoMongo specializes the generic repository for the todos collection.
// Every read inlines the owning user's name and email.
type TodoMongo struct {
	*Repository[model.Todo]
}

var _ repository.TodoRepository = (*TodoMongo)(nil)

// NewTodoMongo creates the todos repository.
func NewTodoMongo(db Database) *TodoMongo {
	return &TodoMongo{
		Repository: NewRepository[model.Todo](db, model.TodoCollection, model.TodoSchema(),
			repository.ModelRef{
				Name:       "user",
				LocalField: "userId",
				Collection: model.UserCollection,
				Select:     []string{"name", "email"},
			},
		),
	}
}

// FindByUser pages the todos of one user, newest first. isCompleted keeps
// three-valued semantics: nil means no completion filter.
func (r *TodoMongo) FindByUser(ctx context.Context, userID string, opts repository.PageOptions, isCompleted *bool) (*repository.PageResult[model.Todo], error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	match := bson.M{"userId": oid}
	if isCompleted != nil {
		match["isCompleted"] = *isCompleted
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	return r.Paginate(ctx, pipeline, opts)
}

// ToggleByID flips IsCompleted with a single conditional pipeline update,
// so two concurrent toggles cannot race a read-modify-write. Returns the
// post-update document, or (nil, nil) when absent.
func (r *TodoMongo) ToggleByID(ctx context.Context, id string) (*model.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isCompleted", Value: bson.D{{Key: "$not", Value: "$isCompleted"}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	doc, err := r.store.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.hydrate(ctx, doc)
}
