package model

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrListingOwnerRequired    = errors.New("listing owner email is required")
	ErrListingCategoryRequired = errors.New("listing category is required")
	ErrListingTitleRequired    = errors.New("listing job title is required")
)

// Listing is a posted job open for bids (the "categories" resource). The email
// field is the ownership key: only the poster may mutate or enumerate their
// listings.
type Listing struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Category    string             `json:"category" bson:"category"`
	JobTitle    string             `json:"jobTitle" bson:"jobTitle"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Deadline    string             `json:"deadline,omitempty" bson:"deadline,omitempty"`
	MinPrice    float64            `json:"minPrice,omitempty" bson:"minPrice,omitempty"`
	MaxPrice    float64            `json:"maxPrice,omitempty" bson:"maxPrice,omitempty"`
}

// ValidateForCreate checks the fields required to store a new listing.
func (l *Listing) ValidateForCreate() error {
	if l.Email == "" {
		return ErrListingOwnerRequired
	}
	if l.Category == "" {
		return ErrListingCategoryRequired
	}
	if l.JobTitle == "" {
		return ErrListingTitleRequired
	}
	return nil
}

// ListingUpdate carries the replacement fields for an upsert-by-id. Every
// field is omitempty on the bson side: fields absent from the body are left
// untouched on the stored record, so a partial update can never blank the
// ownership field.
type ListingUpdate struct {
	Email       string  `json:"email" bson:"email,omitempty"`
	Category    string  `json:"category" bson:"category,omitempty"`
	JobTitle    string  `json:"jobTitle" bson:"jobTitle,omitempty"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Deadline    string  `json:"deadline,omitempty" bson:"deadline,omitempty"`
	MinPrice    float64 `json:"minPrice,omitempty" bson:"minPrice,omitempty"`
	MaxPrice    float64 `json:"maxPrice,omitempty" bson:"maxPrice,omitempty"`
}

// ValidateForUpsert checks the fields required when the upsert would create a
// new document.
func (u *ListingUpdate) ValidateForUpsert() error {
	if u.Email == "" {
		return ErrListingOwnerRequired
	}
	if u.Category == "" {
		return ErrListingCategoryRequired
	}
	if u.JobTitle == "" {
		return ErrListingTitleRequired
	}
	return nil
}
