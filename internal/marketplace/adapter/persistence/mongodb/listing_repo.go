package mongodb

import (
	"context"

	"workvista/internal/marketplace/domain/model"
	"workvista/internal/marketplace/domain/repository"
	apperrors "workvista/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listingsCollectionName = "categories"

// MongoListingRepository implements ListingRepository backed by the
// "categories" collection.
type MongoListingRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoListingRepository creates a new MongoDB listing repository
func NewMongoListingRepository(db *mongo.Database) (*MongoListingRepository, error) {
	repo := &MongoListingRepository{
		db:         db,
		collection: db.Collection(listingsCollectionName),
	}

	ctx := context.Background()

	// Owner index: every identity-scoped read filters on email
	ownerIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, ownerIndex); err != nil {
		return nil, err
	}

	// Category index for the public feed filter
	categoryIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, categoryIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Find returns listings, optionally filtered by category tag
func (r *MongoListingRepository) Find(ctx context.Context, category string) ([]model.Listing, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := make([]model.Listing, 0)
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByOwner returns the listings posted by the given email
func (r *MongoListingRepository) FindByOwner(ctx context.Context, email string) ([]model.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := make([]model.Listing, 0)
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByID returns a single listing by its store-assigned id
func (r *MongoListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidObjectID
	}

	var listing model.Listing
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&listing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// Insert stores a new listing and returns the assigned id
func (r *MongoListingRepository) Insert(ctx context.Context, listing *model.Listing) (string, error) {
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}

	result, err := r.collection.InsertOne(ctx, listing)
	if err != nil {
		return "", err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return listing.ID.Hex(), nil
}

// Upsert replaces the named fields of the listing with the given id, creating
// the document when absent
func (r *MongoListingRepository) Upsert(ctx context.Context, id string, update *model.ListingUpdate) (*repository.UpsertResult, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidObjectID
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	res := &repository.UpsertResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}
	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		res.UpsertedID = oid.Hex()
	}
	return res, nil
}

// Delete removes the listing with the given id
func (r *MongoListingRepository) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidObjectID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return nil, err
	}
	if result.DeletedCount == 0 {
		return nil, apperrors.ErrListingNotFound
	}

	return &repository.DeleteResult{DeletedCount: result.DeletedCount}, nil
}
