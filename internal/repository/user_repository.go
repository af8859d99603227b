package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"merchant-be/internal/database"
	"merchant-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection(database.UsersCollection)}
}

// Create inserts a new user. A duplicate email surfaces as common.ErrConflict.
func (r *userRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, translate(err, "failed to create user")
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid
	}
	return &created, nil
}

// FindByEmail finds a user by email, including the password hash
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, translate(err, "failed to find user")
	}
	return &user, nil
}

// FindByID finds a user by id. The password hash is not loaded.
func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var user entities.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&user); err != nil {
		return nil, translate(err, "failed to find user")
	}
	return &user, nil
}
