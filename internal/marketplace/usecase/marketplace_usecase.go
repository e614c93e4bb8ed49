package usecase

import (
	"context"

	"workvista/internal/marketplace/domain/model"
	"workvista/internal/marketplace/domain/repository"
	apperrors "workvista/internal/shared/errors"
	"workvista/internal/shared/eventbus"

	"go.uber.org/zap"
)

// MarketplaceUsecase defines the resource access layer for listings and bids.
// Every identity-scoped operation takes the caller's verified email and
// authorizes it against the identity named by the request before any store
// call; id-addressed mutations additionally load the target record and check
// its ownership field.
type MarketplaceUsecase interface {
	// Listings ("categories")
	ListListings(ctx context.Context, category string) ([]model.Listing, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	CreateListing(ctx context.Context, callerEmail string, listing *model.Listing) (string, error)
	UpdateListing(ctx context.Context, callerEmail, id string, update *model.ListingUpdate) (*repository.UpsertResult, error)
	DeleteListing(ctx context.Context, callerEmail, id string) (*repository.DeleteResult, error)
	ListOwnListings(ctx context.Context, callerEmail, email string) ([]model.Listing, error)

	// Bids ("myBids")
	CreateBid(ctx context.Context, callerEmail string, bid *model.Bid) (string, error)
	ListOwnBids(ctx context.Context, callerEmail, email string) ([]model.Bid, error)
	ListBidRequests(ctx context.Context, callerEmail, email string) ([]model.Bid, error)
	UpdateBidStatus(ctx context.Context, callerEmail, id, status string) error
}

type marketplaceUsecase struct {
	listings repository.ListingRepository
	bids     repository.BidRepository
	cache    repository.ListingCache
	bus      eventbus.EventBusInterface
	log      *zap.Logger
}

// NewMarketplaceUsecase creates a new marketplace usecase instance
func NewMarketplaceUsecase(
	listings repository.ListingRepository,
	bids repository.BidRepository,
	cache repository.ListingCache,
	bus eventbus.EventBusInterface,
	log *zap.Logger,
) MarketplaceUsecase {
	return &marketplaceUsecase{
		listings: listings,
		bids:     bids,
		cache:    cache,
		bus:      bus,
		log:      log,
	}
}

// RegisterFeedInvalidation subscribes the feed cache drop to every listing
// mutation event. Wiring calls this once at module construction.
func RegisterFeedInvalidation(bus eventbus.EventBusInterface, cache repository.ListingCache) {
	handler := func(ctx context.Context, event eventbus.Event) error {
		cache.Invalidate(ctx)
		return nil
	}
	bus.Subscribe(eventbus.EventTypeListingCreated, handler)
	bus.Subscribe(eventbus.EventTypeListingUpserted, handler)
	bus.Subscribe(eventbus.EventTypeListingDeleted, handler)
}

// publish emits a mutation event. Subscriber failures are logged, never
// surfaced: the store write already happened.
func (uc *marketplaceUsecase) publish(ctx context.Context, eventType, recordID string) {
	event := eventbus.NewBasicEventWithSource(eventType, recordID, "marketplace")
	if err := uc.bus.Publish(ctx, event); err != nil {
		uc.log.Error("event publish failed", zap.Error(err), zap.String("event", eventType))
	}
}

// authorize is the ownership guard: byte-exact comparison of the caller's
// verified identity against the identity named by the request. Denial stops
// the operation before any store call.
func authorize(callerEmail, claimedEmail string) error {
	if callerEmail != claimedEmail {
		return apperrors.ErrOwnershipMismatch
	}
	return nil
}

// ListListings returns the public listing feed, optionally filtered by
// category tag. Served from the cache when warm.
func (uc *marketplaceUsecase) ListListings(ctx context.Context, category string) ([]model.Listing, error) {
	if listings, ok := uc.cache.GetFeed(ctx, category); ok {
		uc.log.Debug("listing feed served from cache", zap.String("category", category))
		return listings, nil
	}

	listings, err := uc.listings.Find(ctx, category)
	if err != nil {
		uc.log.Error("failed to load listing feed", zap.Error(err), zap.String("category", category))
		return nil, err
	}

	uc.cache.SetFeed(ctx, category, listings)
	return listings, nil
}

// GetListing returns one listing by id. Any authenticated caller may view it.
func (uc *marketplaceUsecase) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	return uc.listings.FindByID(ctx, id)
}

// CreateListing stores a new listing after checking that the caller owns the
// identity named in the payload.
func (uc *marketplaceUsecase) CreateListing(ctx context.Context, callerEmail string, listing *model.Listing) (string, error) {
	if err := listing.ValidateForCreate(); err != nil {
		return "", err
	}
	if err := authorize(callerEmail, listing.Email); err != nil {
		return "", err
	}

	id, err := uc.listings.Insert(ctx, listing)
	if err != nil {
		uc.log.Error("failed to insert listing", zap.Error(err), zap.String("owner", callerEmail))
		return "", err
	}

	uc.publish(ctx, eventbus.EventTypeListingCreated, id)
	uc.log.Info("listing created", zap.String("id", id), zap.String("owner", callerEmail))
	return id, nil
}

// UpdateListing upserts the listing with the given id. When the document
// exists its current owner must be the caller; when absent the upsert creates
// it and the replacement payload's owner must be the caller.
func (uc *marketplaceUsecase) UpdateListing(ctx context.Context, callerEmail, id string, update *model.ListingUpdate) (*repository.UpsertResult, error) {
	existing, err := uc.listings.FindByID(ctx, id)
	switch {
	case err == nil:
		if err := authorize(callerEmail, existing.Email); err != nil {
			return nil, err
		}
	case err == apperrors.ErrListingNotFound:
		// Upsert will create: the new document must belong to the caller.
		if err := update.ValidateForUpsert(); err != nil {
			return nil, err
		}
		if err := authorize(callerEmail, update.Email); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	result, err := uc.listings.Upsert(ctx, id, update)
	if err != nil {
		uc.log.Error("failed to upsert listing", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	uc.publish(ctx, eventbus.EventTypeListingUpserted, id)
	uc.log.Info("listing upserted", zap.String("id", id), zap.Int64("matched", result.MatchedCount))
	return result, nil
}

// DeleteListing removes the listing with the given id after checking the
// stored record's ownership field against the caller.
func (uc *marketplaceUsecase) DeleteListing(ctx context.Context, callerEmail, id string) (*repository.DeleteResult, error) {
	existing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerEmail, existing.Email); err != nil {
		return nil, err
	}

	result, err := uc.listings.Delete(ctx, id)
	if err != nil {
		uc.log.Error("failed to delete listing", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	uc.publish(ctx, eventbus.EventTypeListingDeleted, id)
	uc.log.Info("listing deleted", zap.String("id", id), zap.String("owner", callerEmail))
	return result, nil
}

// ListOwnListings returns the caller's posted listings. The query identity
// must equal the caller.
func (uc *marketplaceUsecase) ListOwnListings(ctx context.Context, callerEmail, email string) ([]model.Listing, error) {
	if err := authorize(callerEmail, email); err != nil {
		return nil, err
	}
	return uc.listings.FindByOwner(ctx, email)
}

// CreateBid stores a new bid after checking that the caller is the bidder
// named in the payload.
func (uc *marketplaceUsecase) CreateBid(ctx context.Context, callerEmail string, bid *model.Bid) (string, error) {
	if err := bid.ValidateForCreate(); err != nil {
		return "", err
	}
	if err := authorize(callerEmail, bid.YourEmail); err != nil {
		return "", err
	}

	id, err := uc.bids.Insert(ctx, bid)
	if err != nil {
		uc.log.Error("failed to insert bid", zap.Error(err), zap.String("bidder", callerEmail))
		return "", err
	}

	uc.publish(ctx, eventbus.EventTypeBidCreated, id)
	uc.log.Info("bid created", zap.String("id", id), zap.String("bidder", callerEmail))
	return id, nil
}

// ListOwnBids returns the caller's bids sorted by status ascending. The query
// identity must equal the caller.
func (uc *marketplaceUsecase) ListOwnBids(ctx context.Context, callerEmail, email string) ([]model.Bid, error) {
	if err := authorize(callerEmail, email); err != nil {
		return nil, err
	}
	return uc.bids.FindByBidder(ctx, email)
}

// ListBidRequests returns the bids placed against the caller's listings. The
// query identity must equal the caller.
func (uc *marketplaceUsecase) ListBidRequests(ctx context.Context, callerEmail, email string) ([]model.Bid, error) {
	if err := authorize(callerEmail, email); err != nil {
		return nil, err
	}
	return uc.bids.FindByBuyer(ctx, email)
}

// UpdateBidStatus transitions a bid's status. Only the listing owner the bid
// was placed against may transition it, checked against the stored record.
func (uc *marketplaceUsecase) UpdateBidStatus(ctx context.Context, callerEmail, id, status string) error {
	if status == "" {
		return model.ErrBidStatusRequired
	}

	existing, err := uc.bids.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(callerEmail, existing.BuyerEmail); err != nil {
		return err
	}

	if err := uc.bids.UpdateStatus(ctx, id, status); err != nil {
		uc.log.Error("failed to update bid status", zap.Error(err), zap.String("id", id))
		return err
	}

	uc.publish(ctx, eventbus.EventTypeBidStatusUpdate, id)
	uc.log.Info("bid status updated", zap.String("id", id), zap.String("status", status))
	return nil
}
