package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"merchant-be/internal/database"
	"merchant-be/internal/entities"
	"merchant-be/internal/models"
)

// MerchantRepository defines the interface for merchant database operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) (*entities.Merchant, error)
	FindByEmail(ctx context.Context, email string) (*entities.Merchant, error)
	FindByID(ctx context.Context, id string) (*entities.Merchant, error)
	List(ctx context.Context, q models.ListMerchantsQuery) ([]*entities.Merchant, int64, error)
	Filter(ctx context.Context, f models.MerchantFilter) ([]*entities.Merchant, error)
	Update(ctx context.Context, id string, merchantName, email string, commission float64) (*entities.Merchant, error)
	Delete(ctx context.Context, id string) error
}

type merchantRepository struct {
	collection *mongo.Collection
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *mongo.Database) MerchantRepository {
	return &merchantRepository{collection: db.Collection(database.MerchantsCollection)}
}

// Create inserts a new merchant. A duplicate email surfaces as common.ErrConflict.
func (r *merchantRepository) Create(ctx context.Context, merchant *entities.Merchant) (*entities.Merchant, error) {
	res, err := r.collection.InsertOne(ctx, merchant)
	if err != nil {
		return nil, translate(err, "failed to create merchant")
	}

	created := *merchant
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid
	}
	return &created, nil
}

func (r *merchantRepository) FindByEmail(ctx context.Context, email string) (*entities.Merchant, error) {
	var merchant entities.Merchant
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&merchant); err != nil {
		return nil, translate(err, "failed to find merchant")
	}
	return &merchant, nil
}

func (r *merchantRepository) FindByID(ctx context.Context, id string) (*entities.Merchant, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var merchant entities.Merchant
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&merchant); err != nil {
		return nil, translate(err, "failed to find merchant")
	}
	return &merchant, nil
}

// List returns one page of merchants matching q, and the match count over all pages
func (r *merchantRepository) List(ctx context.Context, q models.ListMerchantsQuery) ([]*entities.Merchant, int64, error) {
	filter := BuildListFilter(q)

	cursor, err := r.collection.Find(ctx, filter, ListFindOptions(q))
	if err != nil {
		return nil, 0, translate(err, "failed to list merchants")
	}

	merchants := make([]*entities.Merchant, 0)
	if err := cursor.All(ctx, &merchants); err != nil {
		return nil, 0, translate(err, "failed to decode merchants")
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err, "failed to count merchants")
	}

	return merchants, total, nil
}

// Filter returns every merchant matching f, unpaginated
func (r *merchantRepository) Filter(ctx context.Context, f models.MerchantFilter) ([]*entities.Merchant, error) {
	cursor, err := r.collection.Find(ctx, BuildMerchantFilter(f))
	if err != nil {
		return nil, translate(err, "failed to filter merchants")
	}

	merchants := make([]*entities.Merchant, 0)
	if err := cursor.All(ctx, &merchants); err != nil {
		return nil, translate(err, "failed to decode merchants")
	}
	return merchants, nil
}

// Update overwrites the mutable fields and returns the updated document
func (r *merchantRepository) Update(ctx context.Context, id string, merchantName, email string, commission float64) (*entities.Merchant, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"merchantName": merchantName,
		"email":        email,
		"commission":   commission,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var merchant entities.Merchant
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&merchant); err != nil {
		return nil, translate(err, "failed to update merchant")
	}
	return &merchant, nil
}

func (r *merchantRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(err, "failed to delete merchant")
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "failed to delete merchant")
	}
	return nil
}

// BuildListFilter builds the query for the paginated listing: a
// case-insensitive substring match on name or email, and an inclusive
// createdAt range when both bounds are set.
func BuildListFilter(q models.ListMerchantsQuery) bson.M {
	filter := bson.M{}

	if q.SearchQuery != "" {
		re := containsRegex(q.SearchQuery)
		filter["$or"] = bson.A{
			bson.M{"merchantName": re},
			bson.M{"email": re},
		}
	}

	if q.DateFrom != nil && q.DateTo != nil {
		filter["createdAt"] = bson.M{
			"$gte": *q.DateFrom,
			"$lte": *q.DateTo,
		}
	}

	return filter
}

// ListFindOptions sorts by _id so consecutive pages do not overlap
func ListFindOptions(q models.ListMerchantsQuery) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip((q.Page - 1) * q.PageSize).
		SetLimit(q.PageSize)
}

// BuildMerchantFilter builds the conjunctive query for the filter endpoint
func BuildMerchantFilter(f models.MerchantFilter) bson.M {
	filter := bson.M{}

	if f.MerchantName != "" {
		filter["merchantName"] = containsRegex(f.MerchantName)
	}
	if f.Email != "" {
		filter["email"] = containsRegex(f.Email)
	}
	if f.Commission != nil {
		filter["commission"] = *f.Commission
	}

	return filter
}

func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
