package usecase_test

import (
	"context"

	"workvista/internal/marketplace/domain/model"
	"workvista/internal/marketplace/domain/repository"

	"github.com/stretchr/testify/mock"
)

// mockListingRepository is a shared mock type for repository.ListingRepository
type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) Find(ctx context.Context, category string) ([]model.Listing, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *mockListingRepository) FindByOwner(ctx context.Context, email string) ([]model.Listing, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *mockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *mockListingRepository) Insert(ctx context.Context, listing *model.Listing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}

func (m *mockListingRepository) Upsert(ctx context.Context, id string, update *model.ListingUpdate) (*repository.UpsertResult, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UpsertResult), args.Error(1)
}

func (m *mockListingRepository) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DeleteResult), args.Error(1)
}

// mockBidRepository is a shared mock type for repository.BidRepository
type mockBidRepository struct {
	mock.Mock
}

func (m *mockBidRepository) Insert(ctx context.Context, bid *model.Bid) (string, error) {
	args := m.Called(ctx, bid)
	return args.String(0), args.Error(1)
}

func (m *mockBidRepository) FindByBidder(ctx context.Context, email string) ([]model.Bid, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *mockBidRepository) FindByBuyer(ctx context.Context, email string) ([]model.Bid, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *mockBidRepository) FindByID(ctx context.Context, id string) (*model.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bid), args.Error(1)
}

func (m *mockBidRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// stubListingCache is a pass-through cache that records invalidations.
type stubListingCache struct {
	feeds        map[string][]model.Listing
	invalidation int
}

func newStubListingCache() *stubListingCache {
	return &stubListingCache{feeds: make(map[string][]model.Listing)}
}

func (c *stubListingCache) GetFeed(ctx context.Context, category string) ([]model.Listing, bool) {
	feed, ok := c.feeds[category]
	return feed, ok
}

func (c *stubListingCache) SetFeed(ctx context.Context, category string, listings []model.Listing) {
	c.feeds[category] = listings
}

func (c *stubListingCache) Invalidate(ctx context.Context) {
	c.feeds = make(map[string][]model.Listing)
	c.invalidation++
}
