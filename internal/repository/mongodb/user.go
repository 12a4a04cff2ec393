package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// UserMongo specializes the generic repository for the users collection.
type UserMongo struct {
	*Repository[model.User]
}

var _ repository.UserRepository = (*UserMongo)(nil)

// NewUserMongo creates the users repository.
func NewUserMongo(db Database) *UserMongo {
	return &UserMongo{
		Repository: NewRepository[model.User](db, model.UserCollection, model.UserSchema()),
	}
}

// FindByEmail returns the user with the given email, or (nil, nil).
func (r *UserMongo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.FindOne(ctx, bson.M{"email": email})
}
