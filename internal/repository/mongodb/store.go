package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the narrow surface of a Mongo collection the repository uses.
// Keeping it small makes the repository testable without a running server.
type Store interface {
	Name() string
	InsertMany(ctx context.Context, docs []any) error
	FindOne(ctx context.Context, filter any, opts *options.FindOneOptions) (bson.M, error)
	Find(ctx context.Context, filter any, opts *options.FindOptions) ([]bson.M, error)
	FindOneAndUpdate(ctx context.Context, filter, update any, opts *options.FindOneAndUpdateOptions) (bson.M, error)
	FindOneAndDelete(ctx context.Context, filter any) (bson.M, error)
	UpdateMany(ctx context.Context, filter, update any) (int64, error)
	CountDocuments(ctx context.Context, filter any) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error)
	EnsureIndexes(ctx context.Context, models []mongo.IndexModel) error
}

// Database hands out Stores by collection name. Relation resolution uses it
// to reach sibling collections.
type Database interface {
	Collection(name string) Store
}

// NewDatabase wraps a driver database.
func NewDatabase(db *mongo.Database) Database {
	return &mongoDatabase{db: db}
}

type mongoDatabase struct {
	db *mongo.Database
}

func (d *mongoDatabase) Collection(name string) Store {
	return &mongoCollection{coll: d.db.Collection(name)}
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Name() string { return c.coll.Name() }

func (c *mongoCollection) InsertMany(ctx context.Context, docs []any) error {
	_, err := c.coll.InsertMany(ctx, docs)
	return err
}

func (c *mongoCollection) FindOne(ctx context.Context, filter any, opts *options.FindOneOptions) (bson.M, error) {
	res := c.coll.FindOne(ctx, filter, findOneOpts(opts)...)
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *mongoCollection) Find(ctx context.Context, filter any, opts *options.FindOptions) ([]bson.M, error) {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := c.coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *mongoCollection) FindOneAndUpdate(ctx context.Context, filter, update any, opts *options.FindOneAndUpdateOptions) (bson.M, error) {
	var updateOpts []*options.FindOneAndUpdateOptions
	if opts != nil {
		updateOpts = append(updateOpts, opts)
	}
	res := c.coll.FindOneAndUpdate(ctx, filter, update, updateOpts...)
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *mongoCollection) FindOneAndDelete(ctx context.Context, filter any) (bson.M, error) {
	res := c.coll.FindOneAndDelete(ctx, filter)
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *mongoCollection) UpdateMany(ctx context.Context, filter, update any) (int64, error) {
	res, err := c.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (c *mongoCollection) CountDocuments(ctx context.Context, filter any) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}

func (c *mongoCollection) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *mongoCollection) EnsureIndexes(ctx context.Context, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	_, err := c.coll.Indexes().CreateMany(ctx, models)
	return err
}

func findOneOpts(opts *options.FindOneOptions) []*options.FindOneOptions {
	if opts == nil {
		return nil
	}
	return []*options.FindOneOptions{opts}
}

// isNoDocuments reports whether err is the driver's not-found signal.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
