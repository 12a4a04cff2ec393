package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// MockTodoRepository is a testify mock of repository.TodoRepository.
type MockTodoRepository struct {
	mock.Mock
}

var _ repository.TodoRepository = (*MockTodoRepository)(nil)

func (m *MockTodoRepository) Create(ctx context.Context, docs ...model.Todo) ([]model.Todo, error) {
	callArgs := make([]any, 0, len(docs)+1)
	callArgs = append(callArgs, ctx)
	for _, d := range docs {
		callArgs = append(callArgs, d)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) CreateOne(ctx context.Context, doc model.Todo) (*model.Todo, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) CreateMany(ctx context.Context, docs []model.Todo) ([]model.Todo, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindOne(ctx context.Context, filter bson.M) (*model.Todo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindMany(ctx context.Context, filter bson.M) ([]model.Todo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) UpdateByID(ctx context.Context, id string, patch bson.M) (*model.Todo, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) UpdateOne(ctx context.Context, filter, patch bson.M) (*model.Todo, error) {
	args := m.Called(ctx, filter, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) UpdateMany(ctx context.Context, filter, patch bson.M) (int64, error) {
	args := m.Called(ctx, filter, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoRepository) DeleteByID(ctx context.Context, id string) (*model.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) DeleteOne(ctx context.Context, filter bson.M) (*model.Todo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) Exists(ctx context.Context, filter bson.M) (bool, error) {
	args := m.Called(ctx, filter)
	return args.Bool(0), args.Error(1)
}

func (m *MockTodoRepository) CountDocuments(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	args := m.Called(ctx, pipeline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockTodoRepository) Paginate(ctx context.Context, pipeline mongo.Pipeline, opts repository.PageOptions) (*repository.PageResult[model.Todo], error) {
	args := m.Called(ctx, pipeline, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Todo]), args.Error(1)
}

func (m *MockTodoRepository) FindByUser(ctx context.Context, userID string, opts repository.PageOptions, isCompleted *bool) (*repository.PageResult[model.Todo], error) {
	args := m.Called(ctx, userID, opts, isCompleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Todo]), args.Error(1)
}

func (m *MockTodoRepository) ToggleByID(ctx context.Context, id string) (*model.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}
