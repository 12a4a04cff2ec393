package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todoapi/internal/schema"
	"todoapi/internal/validation"
)

// Todo is a task owned by a User. UserID must reference an existing user;
// the reference is checked by field validation, not by the store.
type Todo struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Description string             `json:"description" bson:"description"`
	IsCompleted bool               `json:"isCompleted" bson:"isCompleted"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	User        *UserSummary       `json:"user,omitempty" bson:"user,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// TodoCollection is the backing collection name.
const TodoCollection = "todos"

// TodoSchema declares the write-time constraints of the todos collection.
func TodoSchema() *schema.Schema {
	return schema.New(map[string]schema.Field{
		"description": {
			Required: true,
			Rules:    []validation.Rule{validation.String()},
		},
		"isCompleted": {
			Default: false,
			Rules:   []validation.Rule{validation.Boolean()},
		},
	})
}
