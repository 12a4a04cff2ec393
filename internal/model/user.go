package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todoapi/internal/schema"
	"todoapi/internal/validation"
)

// User is a registered account. Email is unique across the collection,
// enforced by an index built from the schema.
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// FirstName is the first whitespace-delimited token of Name.
func (u User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// UserSummary is the projection of a User inlined into documents that
// reference one.
type UserSummary struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Name  string             `json:"name,omitempty" bson:"name,omitempty"`
	Email string             `json:"email,omitempty" bson:"email,omitempty"`
}

// UserCollection is the backing collection name.
const UserCollection = "users"

// UserSchema declares the write-time constraints of the users collection.
func UserSchema() *schema.Schema {
	return schema.New(map[string]schema.Field{
		"name": {
			Required: true,
			Rules:    []validation.Rule{validation.String()},
		},
		"email": {
			Required: true,
			Unique:   true,
			Rules:    []validation.Rule{validation.Email()},
		},
		"password": {
			Required: true,
			Rules:    []validation.Rule{validation.String()},
		},
	})
}
