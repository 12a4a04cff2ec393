// Package mongodb implements the repository contracts on top of the Mongo
// driver. The generic Repository works on bson documents internally so that
// relation resolution and schema validation stay uniform across types.
package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todoapi/internal/repository"
	"todoapi/internal/schema"
)

// Repository is the Mongo implementation of repository.Repository[T].
type Repository[T any] struct {
	db     Database
	store  Store
	schema *schema.Schema
	refs   []repository.ModelRef
}

// NewRepository builds a repository over the named collection. Declared refs
// are resolved on every read-type operation.
func NewRepository[T any](db Database, collection string, sch *schema.Schema, refs ...repository.ModelRef) *Repository[T] {
	return &Repository[T]{
		db:     db,
		store:  db.Collection(collection),
		schema: sch,
		refs:   refs,
	}
}

// EnsureIndexes creates the indexes the schema requires (unique fields, TTL).
func (r *Repository[T]) EnsureIndexes(ctx context.Context) error {
	if r.schema == nil {
		return nil
	}
	return r.store.EnsureIndexes(ctx, r.schema.IndexModels())
}

// Create inserts the given documents, stamping identifiers, defaults and
// timestamps, and returns them as stored. Field validators run before any
// store access.
func (r *Repository[T]) Create(ctx context.Context, docs ...T) ([]T, error) {
	now := time.Now().UTC()

	prepared := make([]bson.M, 0, len(docs))
	raw := make([]any, 0, len(docs))
	var fieldErrs []schema.FieldError
	for _, d := range docs {
		m, err := toDocument(d)
		if err != nil {
			return nil, err
		}
		if _, ok := m["_id"]; !ok {
			m["_id"] = primitive.NewObjectID()
		}
		if r.schema != nil {
			r.schema.ApplyDefaults(m)
			r.schema.Stamp(m, now)
			fieldErrs = append(fieldErrs, r.schema.Validate(m)...)
		}
		prepared = append(prepared, m)
		raw = append(raw, m)
	}
	if len(fieldErrs) > 0 {
		return nil, &schema.ValidationError{Errors: fieldErrs}
	}

	if err := r.store.InsertMany(ctx, raw); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(prepared))
	for _, m := range prepared {
		d, err := decode[T](m)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// CreateOne inserts a single document and returns it.
func (r *Repository[T]) CreateOne(ctx context.Context, doc T) (*T, error) {
	created, err := r.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// CreateMany inserts a batch of documents.
func (r *Repository[T]) CreateMany(ctx context.Context, docs []T) ([]T, error) {
	return r.Create(ctx, docs...)
}

// FindByID returns the document with the given id, or (nil, nil) when absent.
// A malformed id fails with repository.ErrInvalidID before any store access.
func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, bson.M{"_id": oid})
}

// FindOne returns the first document matching the filter, relations resolved.
func (r *Repository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	doc, err := r.store.FindOne(ctx, filter, nil)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.hydrate(ctx, doc)
}

// FindMany returns every document matching the filter, relations resolved.
func (r *Repository[T]) FindMany(ctx context.Context, filter bson.M) ([]T, error) {
	docs, err := r.store.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		d, err := r.hydrate(ctx, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// UpdateByID applies a partial update and returns the post-update document,
// or (nil, nil) when absent. A malformed id fails with repository.ErrInvalidID
// before any store access.
func (r *Repository[T]) UpdateByID(ctx context.Context, id string, patch bson.M) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.UpdateOne(ctx, bson.M{"_id": oid}, patch)
}

// UpdateOne applies a partial update to the first matching document. Field
// validators re-run for the patched fields; the updated (not original)
// document is returned.
func (r *Repository[T]) UpdateOne(ctx context.Context, filter, patch bson.M) (*T, error) {
	update, err := r.prepareUpdate(patch)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	doc, err := r.store.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.hydrate(ctx, doc)
}

// UpdateMany applies a partial update to every matching document and returns
// the modified count only.
func (r *Repository[T]) UpdateMany(ctx context.Context, filter, patch bson.M) (int64, error) {
	update, err := r.prepareUpdate(patch)
	if err != nil {
		return 0, err
	}
	return r.store.UpdateMany(ctx, filter, update)
}

// DeleteByID hard-deletes the document with the given id and returns it with
// relations resolved; absence is not an error.
func (r *Repository[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.DeleteOne(ctx, bson.M{"_id": oid})
}

// DeleteOne hard-deletes the first matching document.
func (r *Repository[T]) DeleteOne(ctx context.Context, filter bson.M) (*T, error) {
	doc, err := r.store.FindOneAndDelete(ctx, filter)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.hydrate(ctx, doc)
}

// Exists reports whether any document matches the filter.
func (r *Repository[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	_, err := r.store.FindOne(ctx, filter, opts)
	if err != nil {
		if isNoDocuments(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CountDocuments counts the documents matching the filter.
func (r *Repository[T]) CountDocuments(ctx context.Context, filter bson.M) (int64, error) {
	return r.store.CountDocuments(ctx, filter)
}

// Aggregate runs a read-only pipeline over the collection.
func (r *Repository[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	return r.store.Aggregate(ctx, pipeline)
}

// Paginate runs the pipeline through a single $facet pass that produces the
// page slice and the total count in one round trip.
func (r *Repository[T]) Paginate(ctx context.Context, pipeline mongo.Pipeline, opts repository.PageOptions) (*repository.PageResult[T], error) {
	if r.schema == nil || !r.schema.Pagination() {
		return nil, repository.ErrPaginationDisabled
	}
	opts = opts.Normalized()

	out, err := r.store.Aggregate(ctx, withFacet(pipeline, opts))
	if err != nil {
		return nil, err
	}
	rawDocs, total := parseFacet(out)

	docs := make([]T, 0, len(rawDocs))
	for _, m := range rawDocs {
		d, err := decode[T](m)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}

	if opts.Unpaged {
		limit := len(docs)
		if limit < 1 {
			limit = 1
		}
		return repository.NewPageResult(docs, total, 1, limit).WithLabels(opts.CustomLabels), nil
	}
	return repository.NewPageResult(docs, total, opts.Page, opts.Limit).WithLabels(opts.CustomLabels), nil
}

// prepareUpdate wraps a bare patch in $set, re-runs the schema validators on
// the patched fields and refreshes updatedAt.
func (r *Repository[T]) prepareUpdate(patch bson.M) (bson.M, error) {
	set := bson.M{}
	update := bson.M{}
	hasOperators := false
	for k, v := range patch {
		if strings.HasPrefix(k, "$") {
			hasOperators = true
			update[k] = v
		} else {
			set[k] = v
		}
	}
	if hasOperators {
		if s, ok := update["$set"].(bson.M); ok {
			for k, v := range s {
				set[k] = v
			}
		}
	}

	if r.schema != nil {
		if errs := r.schema.ValidatePatch(set); len(errs) > 0 {
			return nil, &schema.ValidationError{Errors: errs}
		}
		r.schema.Touch(set, time.Now().UTC())
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update, nil
}

// hydrate resolves the declared relations on a raw document and decodes it.
func (r *Repository[T]) hydrate(ctx context.Context, doc bson.M) (*T, error) {
	if err := r.resolveRefs(ctx, doc); err != nil {
		return nil, err
	}
	return decode[T](doc)
}

// resolveRefs inlines each declared relation under its name, projecting only
// the selected fields. A dangling reference is left unresolved.
func (r *Repository[T]) resolveRefs(ctx context.Context, doc bson.M) error {
	for _, ref := range r.refs {
		refID, ok := doc[ref.LocalField]
		if !ok || refID == nil {
			continue
		}
		projection := bson.M{}
		for _, field := range ref.Select {
			projection[field] = 1
		}
		opts := options.FindOne().SetProjection(projection)
		refDoc, err := r.db.Collection(ref.Collection).FindOne(ctx, bson.M{"_id": refID}, opts)
		if err != nil {
			if isNoDocuments(err) {
				continue
			}
			return err
		}
		doc[ref.Name] = refDoc
	}
	return nil
}

// parseID validates the identifier shape before any I/O happens.
func parseID(id string) (primitive.ObjectID, error) {
	if len(id) != 24 {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	return oid, nil
}

// toDocument round-trips a typed value into a bson document so defaults,
// timestamps and validators can be applied uniformly.
func toDocument[T any](v T) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

// decode turns a raw bson document back into the typed form.
func decode[T any](m bson.M) (*T, error) {
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &v, nil
}
