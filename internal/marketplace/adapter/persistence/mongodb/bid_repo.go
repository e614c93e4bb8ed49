package mongodb

import (
	"context"

	"workvista/internal/marketplace/domain/model"
	apperrors "workvista/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bidsCollectionName = "myBids"

// MongoBidRepository implements BidRepository backed by the "myBids" collection.
type MongoBidRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoBidRepository creates a new MongoDB bid repository
func NewMongoBidRepository(db *mongo.Database) (*MongoBidRepository, error) {
	repo := &MongoBidRepository{
		db:         db,
		collection: db.Collection(bidsCollectionName),
	}

	ctx := context.Background()

	// Both identity fields are query keys: yourEmail for the bidder's own
	// bids, buyerEmail for requests against the listing owner.
	bidderIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "yourEmail", Value: 1}, {Key: "status", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, bidderIndex); err != nil {
		return nil, err
	}

	buyerIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "buyerEmail", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, buyerIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// Insert stores a new bid and returns the assigned id
func (r *MongoBidRepository) Insert(ctx context.Context, bid *model.Bid) (string, error) {
	if bid.ID.IsZero() {
		bid.ID = primitive.NewObjectID()
	}

	result, err := r.collection.InsertOne(ctx, bid)
	if err != nil {
		return "", err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return bid.ID.Hex(), nil
}

// FindByBidder returns the bids placed by email, sorted by status ascending
func (r *MongoBidRepository) FindByBidder(ctx context.Context, email string) ([]model.Bid, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"yourEmail": email},
		options.Find().SetSort(bson.D{{Key: "status", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bids := make([]model.Bid, 0)
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

// FindByBuyer returns the bids placed against email's listings
func (r *MongoBidRepository) FindByBuyer(ctx context.Context, email string) ([]model.Bid, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"buyerEmail": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bids := make([]model.Bid, 0)
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

// FindByID returns a single bid by its store-assigned id
func (r *MongoBidRepository) FindByID(ctx context.Context, id string) (*model.Bid, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidObjectID
	}

	var bid model.Bid
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&bid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

// UpdateStatus transitions the status field of the bid with the given id
func (r *MongoBidRepository) UpdateStatus(ctx context.Context, id, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrInvalidObjectID
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrBidNotFound
	}

	return nil
}
