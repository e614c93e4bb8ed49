package repository

import (
	"context"

	"workvista/internal/marketplace/domain/model"
)

// UpsertResult describes the outcome of an update-with-upsert operation.
type UpsertResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResult describes the outcome of a delete-by-id operation.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ListingRepository is the store contract for the "categories" collection.
// Implementations return shared error sentinels for missing records and
// malformed ids so callers can map them to HTTP codes.
type ListingRepository interface {
	// Find returns listings, optionally filtered by category tag. An empty
	// category matches everything.
	Find(ctx context.Context, category string) ([]model.Listing, error)
	// FindByOwner returns the listings whose ownership field equals email.
	FindByOwner(ctx context.Context, email string) ([]model.Listing, error)
	// FindByID returns a single listing or errors.ErrListingNotFound.
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	// Insert stores a new listing and returns the store-assigned id.
	Insert(ctx context.Context, listing *model.Listing) (string, error)
	// Upsert replaces the named fields of the listing with the given id,
	// creating the document when absent.
	Upsert(ctx context.Context, id string, update *model.ListingUpdate) (*UpsertResult, error)
	// Delete removes the listing with the given id.
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

// BidRepository is the store contract for the "myBids" collection.
type BidRepository interface {
	// Insert stores a new bid and returns the store-assigned id.
	Insert(ctx context.Context, bid *model.Bid) (string, error)
	// FindByBidder returns the bids placed by email, sorted by status ascending.
	FindByBidder(ctx context.Context, email string) ([]model.Bid, error)
	// FindByBuyer returns the bids placed against email's listings.
	FindByBuyer(ctx context.Context, email string) ([]model.Bid, error)
	// FindByID returns a single bid or errors.ErrBidNotFound.
	FindByID(ctx context.Context, id string) (*model.Bid, error)
	// UpdateStatus transitions the status field of the bid with the given id.
	UpdateStatus(ctx context.Context, id, status string) error
}

// ListingCache caches the public listing feed keyed by category tag. A cache
// failure must never fail the request: implementations degrade to a miss.
type ListingCache interface {
	// GetFeed returns the cached feed for the category tag and whether the
	// entry was present.
	GetFeed(ctx context.Context, category string) ([]model.Listing, bool)
	// SetFeed stores the feed for the category tag.
	SetFeed(ctx context.Context, category string, listings []model.Listing)
	// Invalidate drops every cached feed. Called after any listing mutation.
	Invalidate(ctx context.Context)
}
