// Package schema declares field-level constraints for Mongo collections.
// A Schema carries the validation rules the repository runs at write time,
// the timestamp policy, and the index models (unique fields, TTL) that are
// ensured at startup.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todoapi/internal/validation"
)

// Field describes the constraints of a single document field.
type Field struct {
	Required        bool
	RequiredMessage string
	Unique          bool
	Default         any
	Rules           []validation.Rule
}

// Schema is the write-time contract of a collection.
type Schema struct {
	fields        map[string]Field
	createdAtOnly bool
	docExpiresIn  time.Duration
	pagination    bool
}

// Option customizes a Schema.
type Option func(*Schema)

// WithCreatedAtOnly suppresses the updatedAt timestamp.
func WithCreatedAtOnly() Option {
	return func(s *Schema) { s.createdAtOnly = true }
}

// WithDocExpiresIn makes documents expire d after creation via a TTL index.
func WithDocExpiresIn(d time.Duration) Option {
	return func(s *Schema) { s.docExpiresIn = d }
}

// WithoutPagination removes the pagination capability; Paginate calls on a
// repository built with such a schema fail.
func WithoutPagination() Option {
	return func(s *Schema) { s.pagination = false }
}

// New builds a Schema. Timestamps and pagination are on by default.
func New(fields map[string]Field, opts ...Option) *Schema {
	s := &Schema{
		fields:     fields,
		pagination: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pagination reports whether the pagination capability is attached.
func (s *Schema) Pagination() bool { return s.pagination }

// FieldError is a single failed field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation found in one write.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks a full document against the schema. All fields are
// evaluated so every violation is reported at once.
func (s *Schema) Validate(doc bson.M) []FieldError {
	var errs []FieldError
	for _, name := range s.fieldNames() {
		f := s.fields[name]
		value, present := doc[name]
		if !present || value == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: name, Message: requiredMessage(f)})
			}
			continue
		}
		errs = append(errs, runRules(name, f, value)...)
	}
	return errs
}

// ValidatePatch re-runs the validators for just the fields a partial update
// touches.
func (s *Schema) ValidatePatch(patch bson.M) []FieldError {
	var errs []FieldError
	for _, name := range s.fieldNames() {
		value, present := patch[name]
		if !present {
			continue
		}
		f := s.fields[name]
		if value == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: name, Message: requiredMessage(f)})
			}
			continue
		}
		errs = append(errs, runRules(name, f, value)...)
	}
	return errs
}

// ApplyDefaults fills absent fields that declare a default value.
func (s *Schema) ApplyDefaults(doc bson.M) {
	for name, f := range s.fields {
		if f.Default == nil {
			continue
		}
		if _, present := doc[name]; !present {
			doc[name] = f.Default
		}
	}
}

// Stamp sets the managed timestamps on a new document.
func (s *Schema) Stamp(doc bson.M, now time.Time) {
	doc["createdAt"] = now
	if !s.createdAtOnly {
		doc["updatedAt"] = now
	}
}

// Touch refreshes updatedAt inside a $set patch.
func (s *Schema) Touch(set bson.M, now time.Time) {
	if s.createdAtOnly {
		return
	}
	set["updatedAt"] = now
}

// IndexModels returns the index models the schema requires: one unique index
// per unique field and a TTL index on createdAt when documents expire.
func (s *Schema) IndexModels() []mongo.IndexModel {
	var models []mongo.IndexModel
	for _, name := range s.fieldNames() {
		if !s.fields[name].Unique {
			continue
		}
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: name, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	if s.docExpiresIn > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(s.docExpiresIn / time.Second)),
		})
	}
	return models
}

// fieldNames returns the declared fields in a stable order so violation
// lists are deterministic.
func (s *Schema) fieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runRules(name string, f Field, value any) []FieldError {
	var errs []FieldError
	for _, rule := range f.Rules {
		if !rule.Validator(value) {
			errs = append(errs, FieldError{Field: name, Message: rule.Message})
		}
	}
	return errs
}

func requiredMessage(f Field) string {
	if f.RequiredMessage != "" {
		return f.RequiredMessage
	}
	return "is required"
}
