package http

import (
	"errors"

	authhttp "workvista/internal/auth/adapter/http"
	"workvista/internal/marketplace/domain/model"
	"workvista/internal/marketplace/usecase"
	apperrors "workvista/internal/shared/errors"
	"workvista/internal/shared/logger"
	"workvista/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

const ownershipDeniedMessage = "You are trying to get data you have no access to"

// MarketplaceHTTPHandler handles HTTP requests for listings and bids
type MarketplaceHTTPHandler struct {
	usecase usecase.MarketplaceUsecase
	log     logger.Logger
}

// NewMarketplaceHTTPHandler creates a new marketplace HTTP handler
func NewMarketplaceHTTPHandler(uc usecase.MarketplaceUsecase, log logger.Logger) *MarketplaceHTTPHandler {
	return &MarketplaceHTTPHandler{
		usecase: uc,
		log:     log.WithComponent("marketplace_http"),
	}
}

// SetupMarketplaceRoutes registers the resource routes. The public listing
// feed stays outside the session middleware; everything else requires it.
func (h *MarketplaceHTTPHandler) SetupMarketplaceRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	router.Get("/categories", h.ListListings)

	protected := router.Group("/", middleware.Protect())
	protected.Get("/categories/:id", h.GetListing)
	protected.Post("/categories", h.CreateListing)
	protected.Put("/categories/:id", h.UpdateListing)
	protected.Delete("/categories/:id", h.DeleteListing)
	protected.Get("/myPosts", h.ListOwnListings)
	protected.Post("/myBids", h.CreateBid)
	protected.Get("/myBids", h.ListOwnBids)
	protected.Get("/bidRequests", h.ListBidRequests)
	protected.Put("/bidRequests/:id", h.UpdateBidStatus)
}

// ListListings returns the public listing feed, optionally filtered by the
// category query parameter
func (h *MarketplaceHTTPHandler) ListListings(c *fiber.Ctx) error {
	listings, err := h.usecase.ListListings(c.UserContext(), c.Query("category"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(listings)
}

// GetListing returns a single listing for the job details page
func (h *MarketplaceHTTPHandler) GetListing(c *fiber.Ctx) error {
	listing, err := h.usecase.GetListing(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(listing)
}

// CreateListing stores a new listing owned by the caller
func (h *MarketplaceHTTPHandler) CreateListing(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	var listing model.Listing
	if err := c.BodyParser(&listing); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	id, err := h.usecase.CreateListing(c.UserContext(), callerEmail, &listing)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{"insertedId": id})
}

// UpdateListing upserts a listing by id
func (h *MarketplaceHTTPHandler) UpdateListing(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	var update model.ListingUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.usecase.UpdateListing(c.UserContext(), callerEmail, c.Params("id"), &update)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(result)
}

// DeleteListing removes a listing by id
func (h *MarketplaceHTTPHandler) DeleteListing(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	result, err := h.usecase.DeleteListing(c.UserContext(), callerEmail, c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(result)
}

// ListOwnListings returns the caller's posted listings
func (h *MarketplaceHTTPHandler) ListOwnListings(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	listings, err := h.usecase.ListOwnListings(c.UserContext(), callerEmail, c.Query("email"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(listings)
}

// CreateBid stores a new bid placed by the caller
func (h *MarketplaceHTTPHandler) CreateBid(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	var bid model.Bid
	if err := c.BodyParser(&bid); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	id, err := h.usecase.CreateBid(c.UserContext(), callerEmail, &bid)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{"insertedId": id})
}

// ListOwnBids returns the caller's bids sorted by status ascending
func (h *MarketplaceHTTPHandler) ListOwnBids(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	bids, err := h.usecase.ListOwnBids(c.UserContext(), callerEmail, c.Query("email"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(bids)
}

// ListBidRequests returns the bids placed against the caller's listings
func (h *MarketplaceHTTPHandler) ListBidRequests(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	bids, err := h.usecase.ListBidRequests(c.UserContext(), callerEmail, c.Query("email"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(bids)
}

// UpdateBidStatus transitions the status of a bid placed against the caller's
// listing
func (h *MarketplaceHTTPHandler) UpdateBidStatus(c *fiber.Ctx) error {
	callerEmail, err := utils.GetUserEmailFromContext(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized access",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.usecase.UpdateBidStatus(c.UserContext(), callerEmail, c.Params("id"), req.Status); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Status updated successfully"})
}

// respondError maps usecase errors onto the HTTP taxonomy. Store failures are
// logged with detail and answered with a generic body.
func (h *MarketplaceHTTPHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrOwnershipMismatch):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": ownershipDeniedMessage,
		})
	case errors.Is(err, apperrors.ErrListingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "listing not found",
		})
	case errors.Is(err, apperrors.ErrBidNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "bid not found",
		})
	case errors.Is(err, apperrors.ErrInvalidObjectID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid record id",
		})
	case errors.Is(err, model.ErrListingOwnerRequired),
		errors.Is(err, model.ErrListingCategoryRequired),
		errors.Is(err, model.ErrListingTitleRequired),
		errors.Is(err, model.ErrBidBidderRequired),
		errors.Is(err, model.ErrBidBuyerRequired),
		errors.Is(err, model.ErrBidStatusRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		h.log.WithContext(c.UserContext()).Errorf("store operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
}
