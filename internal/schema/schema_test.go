package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"todoapi/internal/validation"
)

func testSchema(opts ...Option) *Schema {
	return New(map[string]Field{
		"name": {
			Required: true,
			Rules:    []validation.Rule{validation.String()},
		},
		"email": {
			Required:        true,
			RequiredMessage: "email address is required",
			Unique:          true,
			Rules:           []validation.Rule{validation.Email()},
		},
		"isCompleted": {
			Default: false,
			Rules:   []validation.Rule{validation.Boolean()},
		},
	}, opts...)
}

func TestValidate(t *testing.T) {
	s := testSchema()

	t.Run("valid document", func(t *testing.T) {
		errs := s.Validate(bson.M{"name": "Ada", "email": "ada@example.com"})
		assert.Empty(t, errs)
	})

	t.Run("all violations reported at once", func(t *testing.T) {
		errs := s.Validate(bson.M{"name": 42, "isCompleted": "maybe"})
		require.Len(t, errs, 3)
		// fields are evaluated in sorted order
		assert.Equal(t, FieldError{Field: "email", Message: "email address is required"}, errs[0])
		assert.Equal(t, FieldError{Field: "isCompleted", Message: "must be a boolean"}, errs[1])
		assert.Equal(t, FieldError{Field: "name", Message: "must be a string"}, errs[2])
	})

	t.Run("nil counts as absent", func(t *testing.T) {
		errs := s.Validate(bson.M{"name": nil, "email": "ada@example.com"})
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "is required", errs[0].Message)
	})
}

func TestValidatePatch(t *testing.T) {
	s := testSchema()

	t.Run("only touched fields are checked", func(t *testing.T) {
		errs := s.ValidatePatch(bson.M{"name": "Grace"})
		assert.Empty(t, errs)
	})

	t.Run("touched field still runs its rules", func(t *testing.T) {
		errs := s.ValidatePatch(bson.M{"email": "not-an-email"})
		require.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
	})

	t.Run("nulling a required field is rejected", func(t *testing.T) {
		errs := s.ValidatePatch(bson.M{"name": nil})
		require.Len(t, errs, 1)
		assert.Equal(t, "is required", errs[0].Message)
	})
}

func TestApplyDefaults(t *testing.T) {
	s := testSchema()

	doc := bson.M{"name": "Ada"}
	s.ApplyDefaults(doc)
	assert.Equal(t, false, doc["isCompleted"])

	doc = bson.M{"name": "Ada", "isCompleted": true}
	s.ApplyDefaults(doc)
	assert.Equal(t, true, doc["isCompleted"])
}

func TestStamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("both timestamps by default", func(t *testing.T) {
		doc := bson.M{}
		testSchema().Stamp(doc, now)
		assert.Equal(t, now, doc["createdAt"])
		assert.Equal(t, now, doc["updatedAt"])
	})

	t.Run("created at only", func(t *testing.T) {
		doc := bson.M{}
		testSchema(WithCreatedAtOnly()).Stamp(doc, now)
		assert.Equal(t, now, doc["createdAt"])
		assert.NotContains(t, doc, "updatedAt")
	})
}

func TestTouch(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	set := bson.M{"name": "Grace"}
	testSchema().Touch(set, now)
	assert.Equal(t, now, set["updatedAt"])

	set = bson.M{"name": "Grace"}
	testSchema(WithCreatedAtOnly()).Touch(set, now)
	assert.NotContains(t, set, "updatedAt")
}

func TestPagination(t *testing.T) {
	assert.True(t, testSchema().Pagination())
	assert.False(t, testSchema(WithoutPagination()).Pagination())
}

func TestIndexModels(t *testing.T) {
	t.Run("unique field", func(t *testing.T) {
		models := testSchema().IndexModels()
		require.Len(t, models, 1)
		assert.Equal(t, bson.D{{Key: "email", Value: 1}}, models[0].Keys)
		require.NotNil(t, models[0].Options.Unique)
		assert.True(t, *models[0].Options.Unique)
	})

	t.Run("ttl index on createdAt", func(t *testing.T) {
		models := testSchema(WithDocExpiresIn(time.Hour)).IndexModels()
		require.Len(t, models, 2)
		ttl := models[1]
		assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, ttl.Keys)
		require.NotNil(t, ttl.Options.ExpireAfterSeconds)
		assert.Equal(t, int32(3600), *ttl.Options.ExpireAfterSeconds)
	})
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "email", Message: "is required"},
		{Field: "name", Message: "must be a string"},
	}}
	assert.Equal(t, "validation failed: email is required; name must be a string", err.Error())
}
