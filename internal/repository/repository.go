// Package repository contains the data access contracts. The generic
// Repository interface gives every resource the same CRUD and pagination
// surface; implementations live in subpackages (mongodb).
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"todoapi/internal/model"
)

var (
	// ErrInvalidID is returned before any store access when an identifier is
	// not a 24-character hex ObjectId.
	ErrInvalidID = errors.New("invalid object id")

	// ErrPaginationDisabled is returned by Paginate when the repository's
	// schema was built without the pagination capability.
	ErrPaginationDisabled = errors.New("schema does not have pagination enabled")
)

// ModelRef declares a relation resolved after every read: the document in
// Collection referenced by LocalField is fetched with only the Select fields
// and inlined under Name.
type ModelRef struct {
	Name       string
	LocalField string
	Collection string
	Select     []string
}

// Repository is the uniform CRUD + pagination contract over a collection of T.
//
// Read-type operations (find, update, delete) resolve the repository's
// declared ModelRefs and return the document with relations populated.
// Absence is not an error: lookups for a missing document return (nil, nil).
type Repository[T any] interface {
	Create(ctx context.Context, docs ...T) ([]T, error)
	CreateOne(ctx context.Context, doc T) (*T, error)
	CreateMany(ctx context.Context, docs []T) ([]T, error)

	FindByID(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	FindMany(ctx context.Context, filter bson.M) ([]T, error)

	UpdateByID(ctx context.Context, id string, patch bson.M) (*T, error)
	UpdateOne(ctx context.Context, filter, patch bson.M) (*T, error)
	UpdateMany(ctx context.Context, filter, patch bson.M) (int64, error)

	DeleteByID(ctx context.Context, id string) (*T, error)
	DeleteOne(ctx context.Context, filter bson.M) (*T, error)

	Exists(ctx context.Context, filter bson.M) (bool, error)
	CountDocuments(ctx context.Context, filter bson.M) (int64, error)

	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error)
	Paginate(ctx context.Context, pipeline mongo.Pipeline, opts PageOptions) (*PageResult[T], error)
}

// UserRepository adds the user-specific queries on top of the generic contract.
type UserRepository interface {
	Repository[model.User]

	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TodoRepository adds the todo-specific queries on top of the generic contract.
type TodoRepository interface {
	Repository[model.Todo]

	// FindByUser pages the todos of one user. isCompleted filters by
	// completion state; nil means no filter.
	FindByUser(ctx context.Context, userID string, opts PageOptions, isCompleted *bool) (*PageResult[model.Todo], error)

	// ToggleByID flips IsCompleted in a single atomic conditional update and
	// returns the post-update document, or (nil, nil) when absent.
	ToggleByID(ctx context.Context, id string) (*model.Todo, error)
}
