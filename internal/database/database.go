package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection     = "users"
	MerchantsCollection = "merchants"
)

// NewConnection connects to MongoDB and returns the named database
func NewConnection(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Test the connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	slog.Info("connected to mongodb", "database", dbName)
	return client, db, nil
}

// EnsureIndexes creates the unique email indexes the stores rely on to
// reject concurrent duplicate inserts. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{UsersCollection, MerchantsCollection} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		})
		if err != nil {
			return fmt.Errorf("failed to create email index on %s: %w", name, err)
		}
	}

	slog.Info("mongodb indexes ensured")
	return nil
}
