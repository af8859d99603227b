package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"merchant-be/internal/common"
)

// parseID converts a hex id from a URL or token into an ObjectID.
// A malformed id cannot resolve to a document, so it is reported as not found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", id, common.ErrNotFound)
	}
	return oid, nil
}

// translate maps driver errors onto the shared taxonomy
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, common.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, common.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
