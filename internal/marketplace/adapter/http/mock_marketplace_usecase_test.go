package http_test

import (
	"context"

	"workvista/internal/marketplace/domain/model"
	"workvista/internal/marketplace/domain/repository"

	"github.com/stretchr/testify/mock"
)

// mockMarketplaceUsecase is a shared mock type for usecase.MarketplaceUsecase
type mockMarketplaceUsecase struct {
	mock.Mock
}

func (m *mockMarketplaceUsecase) ListListings(ctx context.Context, category string) ([]model.Listing, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *mockMarketplaceUsecase) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *mockMarketplaceUsecase) CreateListing(ctx context.Context, callerEmail string, listing *model.Listing) (string, error) {
	args := m.Called(ctx, callerEmail, listing)
	return args.String(0), args.Error(1)
}

func (m *mockMarketplaceUsecase) UpdateListing(ctx context.Context, callerEmail, id string, update *model.ListingUpdate) (*repository.UpsertResult, error) {
	args := m.Called(ctx, callerEmail, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UpsertResult), args.Error(1)
}

func (m *mockMarketplaceUsecase) DeleteListing(ctx context.Context, callerEmail, id string) (*repository.DeleteResult, error) {
	args := m.Called(ctx, callerEmail, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DeleteResult), args.Error(1)
}

func (m *mockMarketplaceUsecase) ListOwnListings(ctx context.Context, callerEmail, email string) ([]model.Listing, error) {
	args := m.Called(ctx, callerEmail, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *mockMarketplaceUsecase) CreateBid(ctx context.Context, callerEmail string, bid *model.Bid) (string, error) {
	args := m.Called(ctx, callerEmail, bid)
	return args.String(0), args.Error(1)
}

func (m *mockMarketplaceUsecase) ListOwnBids(ctx context.Context, callerEmail, email string) ([]model.Bid, error) {
	args := m.Called(ctx, callerEmail, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *mockMarketplaceUsecase) ListBidRequests(ctx context.Context, callerEmail, email string) ([]model.Bid, error) {
	args := m.Called(ctx, callerEmail, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bid), args.Error(1)
}

func (m *mockMarketplaceUsecase) UpdateBidStatus(ctx context.Context, callerEmail, id, status string) error {
	args := m.Called(ctx, callerEmail, id, status)
	return args.Error(0)
}
