package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todoapi/internal/repository/mongodb"
)

// MockStore is a testify mock of mongodb.Store.
type MockStore struct {
	mock.Mock

	CollectionName string
}

var _ mongodb.Store = (*MockStore)(nil)
var _ mongodb.Database = (*MockDatabase)(nil)

func (m *MockStore) Name() string {
	if m.CollectionName != "" {
		return m.CollectionName
	}
	return "mock"
}

func (m *MockStore) InsertMany(ctx context.Context, docs []any) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockStore) FindOne(ctx context.Context, filter any, opts *options.FindOneOptions) (bson.M, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *MockStore) Find(ctx context.Context, filter any, opts *options.FindOptions) ([]bson.M, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockStore) FindOneAndUpdate(ctx context.Context, filter, update any, opts *options.FindOneAndUpdateOptions) (bson.M, error) {
	args := m.Called(ctx, filter, update, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *MockStore) FindOneAndDelete(ctx context.Context, filter any) (bson.M, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *MockStore) UpdateMany(ctx context.Context, filter, update any) (int64, error) {
	args := m.Called(ctx, filter, update)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) CountDocuments(ctx context.Context, filter any) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	args := m.Called(ctx, pipeline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockStore) EnsureIndexes(ctx context.Context, models []mongo.IndexModel) error {
	args := m.Called(ctx, models)
	return args.Error(0)
}

// MockDatabase hands out registered MockStores by collection name.
type MockDatabase struct {
	stores map[string]*MockStore
}

func NewMockDatabase() *MockDatabase {
	return &MockDatabase{stores: make(map[string]*MockStore)}
}

// Register binds a mock store to a collection name and returns it.
func (d *MockDatabase) Register(name string) *MockStore {
	s := &MockStore{CollectionName: name}
	d.stores[name] = s
	return s
}

func (d *MockDatabase) Collection(name string) mongodb.Store {
	if s, ok := d.stores[name]; ok {
		return s
	}
	return d.Register(name)
}
