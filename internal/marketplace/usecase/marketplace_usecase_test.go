package usecase_test

import (
	"context"
	"errors"
	"testing"

	"workvista/internal/marketplace/domain/model"
	"workvista/internal/marketplace/domain/repository"
	"workvista/internal/marketplace/usecase"
	apperrors "workvista/internal/shared/errors"
	"workvista/internal/shared/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const (
	aliceEmail = "alice@x.com"
	bobEmail   = "bob@x.com"
)

type MarketplaceUsecaseTestSuite struct {
	suite.Suite
	listings *mockListingRepository
	bids     *mockBidRepository
	cache    *stubListingCache
	uc       usecase.MarketplaceUsecase
}

func (suite *MarketplaceUsecaseTestSuite) SetupTest() {
	suite.listings = &mockListingRepository{}
	suite.bids = &mockBidRepository{}
	suite.cache = newStubListingCache()

	// Synchronous bus, wired the same way the module wiring does it.
	bus := eventbus.NewEventBus(nil)
	usecase.RegisterFeedInvalidation(bus, suite.cache)

	suite.uc = usecase.NewMarketplaceUsecase(suite.listings, suite.bids, suite.cache, bus, zap.NewNop())
}

// --- Listings ---

func (suite *MarketplaceUsecaseTestSuite) TestListListings_CacheMissHitsStoreAndWarmsCache() {
	ctx := context.Background()
	feed := []model.Listing{{Email: aliceEmail, Category: "design", JobTitle: "logo"}}

	suite.listings.On("Find", mock.Anything, "design").Return(feed, nil).Once()

	got, err := suite.uc.ListListings(ctx, "design")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), feed, got)

	// Second call is served from the cache without another store read.
	got, err = suite.uc.ListListings(ctx, "design")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), feed, got)
	suite.listings.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestCreateListing_OwnerMatchesCaller() {
	ctx := context.Background()
	listing := &model.Listing{Email: aliceEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("Insert", mock.Anything, listing).Return("65f000000000000000000001", nil)

	id, err := suite.uc.CreateListing(ctx, aliceEmail, listing)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "65f000000000000000000001", id)
	assert.Equal(suite.T(), 1, suite.cache.invalidation)
	suite.listings.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestCreateListing_OwnerMismatchDeniedBeforeStore() {
	ctx := context.Background()
	listing := &model.Listing{Email: bobEmail, Category: "design", JobTitle: "logo"}

	id, err := suite.uc.CreateListing(ctx, aliceEmail, listing)

	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	assert.Empty(suite.T(), id)
	suite.listings.AssertNotCalled(suite.T(), "Insert")
	assert.Equal(suite.T(), 0, suite.cache.invalidation)
}

func (suite *MarketplaceUsecaseTestSuite) TestCreateListing_MissingRequiredFields() {
	ctx := context.Background()

	testCases := []struct {
		name    string
		listing *model.Listing
		wantErr error
	}{
		{"no owner", &model.Listing{Category: "design", JobTitle: "logo"}, model.ErrListingOwnerRequired},
		{"no category", &model.Listing{Email: aliceEmail, JobTitle: "logo"}, model.ErrListingCategoryRequired},
		{"no title", &model.Listing{Email: aliceEmail, Category: "design"}, model.ErrListingTitleRequired},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.uc.CreateListing(ctx, aliceEmail, tc.listing)
			assert.ErrorIs(suite.T(), err, tc.wantErr)
		})
	}
	suite.listings.AssertNotCalled(suite.T(), "Insert")
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateListing_ExistingOwnedByCaller() {
	ctx := context.Background()
	id := "65f000000000000000000001"
	update := &model.ListingUpdate{Email: aliceEmail, Category: "design", JobTitle: "logo v2"}
	existing := &model.Listing{Email: aliceEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("FindByID", mock.Anything, id).Return(existing, nil)
	suite.listings.On("Upsert", mock.Anything, id, update).
		Return(&repository.UpsertResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	result, err := suite.uc.UpdateListing(ctx, aliceEmail, id, update)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), result.MatchedCount)
	assert.Equal(suite.T(), 1, suite.cache.invalidation)
	suite.listings.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateListing_PartialBodyOnExistingRecord() {
	ctx := context.Background()
	id := "65f000000000000000000001"
	// Only the title changes; the body names no owner. Create-grade validation
	// applies to upsert-creates only, so this must reach the store untouched.
	update := &model.ListingUpdate{JobTitle: "logo v2"}
	existing := &model.Listing{Email: aliceEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("FindByID", mock.Anything, id).Return(existing, nil)
	suite.listings.On("Upsert", mock.Anything, id, update).
		Return(&repository.UpsertResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	result, err := suite.uc.UpdateListing(ctx, aliceEmail, id, update)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), result.ModifiedCount)
	suite.listings.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateListing_ExistingOwnedByOther() {
	ctx := context.Background()
	id := "65f000000000000000000001"
	update := &model.ListingUpdate{Email: aliceEmail, Category: "design", JobTitle: "logo v2"}
	existing := &model.Listing{Email: bobEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("FindByID", mock.Anything, id).Return(existing, nil)

	result, err := suite.uc.UpdateListing(ctx, aliceEmail, id, update)

	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	assert.Nil(suite.T(), result)
	suite.listings.AssertNotCalled(suite.T(), "Upsert")
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateListing_AbsentCreatesForCaller() {
	ctx := context.Background()
	id := "65f000000000000000000002"
	update := &model.ListingUpdate{Email: aliceEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrListingNotFound)
	suite.listings.On("Upsert", mock.Anything, id, update).
		Return(&repository.UpsertResult{UpsertedID: id}, nil)

	result, err := suite.uc.UpdateListing(ctx, aliceEmail, id, update)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), id, result.UpsertedID)
	suite.listings.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateListing_AbsentForeignOwnerDenied() {
	ctx := context.Background()
	id := "65f000000000000000000002"
	update := &model.ListingUpdate{Email: bobEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrListingNotFound)

	result, err := suite.uc.UpdateListing(ctx, aliceEmail, id, update)

	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	assert.Nil(suite.T(), result)
	suite.listings.AssertNotCalled(suite.T(), "Upsert")
}

func (suite *MarketplaceUsecaseTestSuite) TestDeleteListing_OwnedByCaller() {
	ctx := context.Background()
	id := "65f000000000000000000001"
	existing := &model.Listing{Email: aliceEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("FindByID", mock.Anything, id).Return(existing, nil)
	suite.listings.On("Delete", mock.Anything, id).
		Return(&repository.DeleteResult{DeletedCount: 1}, nil)

	result, err := suite.uc.DeleteListing(ctx, aliceEmail, id)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), result.DeletedCount)
	assert.Equal(suite.T(), 1, suite.cache.invalidation)
	suite.listings.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestDeleteListing_OwnedByOtherDenied() {
	ctx := context.Background()
	id := "65f000000000000000000001"
	existing := &model.Listing{Email: bobEmail, Category: "design", JobTitle: "logo"}

	suite.listings.On("FindByID", mock.Anything, id).Return(existing, nil)

	result, err := suite.uc.DeleteListing(ctx, aliceEmail, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	assert.Nil(suite.T(), result)
	suite.listings.AssertNotCalled(suite.T(), "Delete")
}

func (suite *MarketplaceUsecaseTestSuite) TestDeleteListing_AbsentSurfacesNotFound() {
	ctx := context.Background()
	id := "65f000000000000000000009"

	suite.listings.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrListingNotFound)

	result, err := suite.uc.DeleteListing(ctx, aliceEmail, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrListingNotFound)
	assert.Nil(suite.T(), result)
	suite.listings.AssertNotCalled(suite.T(), "Delete")
}

func (suite *MarketplaceUsecaseTestSuite) TestListOwnListings_QueryIdentityMustMatchCaller() {
	ctx := context.Background()

	_, err := suite.uc.ListOwnListings(ctx, aliceEmail, bobEmail)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	suite.listings.AssertNotCalled(suite.T(), "FindByOwner")

	feed := []model.Listing{{Email: aliceEmail, Category: "design", JobTitle: "logo"}}
	suite.listings.On("FindByOwner", mock.Anything, aliceEmail).Return(feed, nil)

	got, err := suite.uc.ListOwnListings(ctx, aliceEmail, aliceEmail)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), feed, got)
}

// --- Bids ---

func (suite *MarketplaceUsecaseTestSuite) TestCreateBid_BidderMatchesCaller() {
	ctx := context.Background()
	bid := &model.Bid{YourEmail: aliceEmail, BuyerEmail: bobEmail, Status: "pending"}

	suite.bids.On("Insert", mock.Anything, bid).Return("65f000000000000000000003", nil)

	id, err := suite.uc.CreateBid(ctx, aliceEmail, bid)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "65f000000000000000000003", id)
	suite.bids.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestCreateBid_BidderMismatchDeniedBeforeStore() {
	ctx := context.Background()
	bid := &model.Bid{YourEmail: bobEmail, BuyerEmail: aliceEmail, Status: "pending"}

	id, err := suite.uc.CreateBid(ctx, aliceEmail, bid)

	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	assert.Empty(suite.T(), id)
	suite.bids.AssertNotCalled(suite.T(), "Insert")
}

func (suite *MarketplaceUsecaseTestSuite) TestListOwnBids_GuardedAndDelegated() {
	ctx := context.Background()

	_, err := suite.uc.ListOwnBids(ctx, aliceEmail, bobEmail)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	suite.bids.AssertNotCalled(suite.T(), "FindByBidder")

	bids := []model.Bid{
		{YourEmail: aliceEmail, BuyerEmail: bobEmail, Status: "accepted"},
		{YourEmail: aliceEmail, BuyerEmail: bobEmail, Status: "pending"},
	}
	suite.bids.On("FindByBidder", mock.Anything, aliceEmail).Return(bids, nil)

	got, err := suite.uc.ListOwnBids(ctx, aliceEmail, aliceEmail)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), bids, got)
}

func (suite *MarketplaceUsecaseTestSuite) TestListBidRequests_GuardedAndDelegated() {
	ctx := context.Background()

	_, err := suite.uc.ListBidRequests(ctx, bobEmail, aliceEmail)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	suite.bids.AssertNotCalled(suite.T(), "FindByBuyer")

	bids := []model.Bid{{YourEmail: aliceEmail, BuyerEmail: bobEmail, Status: "pending"}}
	suite.bids.On("FindByBuyer", mock.Anything, bobEmail).Return(bids, nil)

	got, err := suite.uc.ListBidRequests(ctx, bobEmail, bobEmail)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), bids, got)
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateBidStatus_BuyerTransitions() {
	ctx := context.Background()
	id := "65f000000000000000000003"
	existing := &model.Bid{YourEmail: aliceEmail, BuyerEmail: bobEmail, Status: "pending"}

	suite.bids.On("FindByID", mock.Anything, id).Return(existing, nil)
	suite.bids.On("UpdateStatus", mock.Anything, id, "accepted").Return(nil)

	err := suite.uc.UpdateBidStatus(ctx, bobEmail, id, "accepted")

	require.NoError(suite.T(), err)
	suite.bids.AssertExpectations(suite.T())
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateBidStatus_BidderMayNotTransition() {
	ctx := context.Background()
	id := "65f000000000000000000003"
	existing := &model.Bid{YourEmail: aliceEmail, BuyerEmail: bobEmail, Status: "pending"}

	suite.bids.On("FindByID", mock.Anything, id).Return(existing, nil)

	err := suite.uc.UpdateBidStatus(ctx, aliceEmail, id, "accepted")

	assert.ErrorIs(suite.T(), err, apperrors.ErrOwnershipMismatch)
	suite.bids.AssertNotCalled(suite.T(), "UpdateStatus")
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateBidStatus_AbsentSurfacesNotFound() {
	ctx := context.Background()
	id := "65f000000000000000000009"

	suite.bids.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrBidNotFound)

	err := suite.uc.UpdateBidStatus(ctx, bobEmail, id, "accepted")

	assert.ErrorIs(suite.T(), err, apperrors.ErrBidNotFound)
	suite.bids.AssertNotCalled(suite.T(), "UpdateStatus")
}

func (suite *MarketplaceUsecaseTestSuite) TestUpdateBidStatus_EmptyStatusRejected() {
	err := suite.uc.UpdateBidStatus(context.Background(), bobEmail, "65f000000000000000000003", "")

	assert.ErrorIs(suite.T(), err, model.ErrBidStatusRequired)
	suite.bids.AssertNotCalled(suite.T(), "FindByID")
}

func (suite *MarketplaceUsecaseTestSuite) TestStoreErrorsPropagate() {
	ctx := context.Background()
	storeErr := errors.New("connection reset")

	suite.listings.On("Find", mock.Anything, "").Return(nil, storeErr)

	_, err := suite.uc.ListListings(ctx, "")
	assert.ErrorIs(suite.T(), err, storeErr)
}

func TestMarketplaceUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceUsecaseTestSuite))
}
