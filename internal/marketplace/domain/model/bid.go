package model

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrBidBidderRequired = errors.New("bid bidder email is required")
	ErrBidBuyerRequired  = errors.New("bid buyer email is required")
	ErrBidStatusRequired = errors.New("bid status is required")
)

// Bid is a proposal placed by one identity against another identity's listing
// (the "myBids" resource). It carries two ownership keys: yourEmail scopes the
// bidder's own views, buyerEmail scopes the listing owner's incoming requests
// and status transitions.
type Bid struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	YourEmail  string             `json:"yourEmail" bson:"yourEmail"`
	BuyerEmail string             `json:"buyerEmail" bson:"buyerEmail"`
	JobTitle   string             `json:"jobTitle,omitempty" bson:"jobTitle,omitempty"`
	Price      float64            `json:"price,omitempty" bson:"price,omitempty"`
	Deadline   string             `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Status     string             `json:"status" bson:"status"`
}

// ValidateForCreate checks the fields required to store a new bid.
func (b *Bid) ValidateForCreate() error {
	if b.YourEmail == "" {
		return ErrBidBidderRequired
	}
	if b.BuyerEmail == "" {
		return ErrBidBuyerRequired
	}
	if b.Status == "" {
		return ErrBidStatusRequired
	}
	return nil
}
