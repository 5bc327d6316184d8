// Package quality holds the aggregation, flagging and recommendation engine.
// It reads feedback and listings through narrow interfaces so the rules stay
// independent of the persistence layer.
package quality

import (
	"context"
	"time"

	"marketrate-backend/internal/models"
)

// FeedbackSource scans feedback filtered by any combination of buyer, product
// and seller (empty string means any), optionally bounded below on creation
// time.
type FeedbackSource interface {
	ScanFeedback(ctx context.Context, buyerID, productID, sellerID string, since *time.Time) ([]models.Feedback, error)
}

// ListingSource resolves seller-product listings.
type ListingSource interface {
	FindListing(ctx context.Context, sellerID, productID string) (*models.SellerProduct, error)
	ActiveListings(ctx context.Context, productID string) ([]models.SellerProduct, error)
	SellerListings(ctx context.Context, sellerID string) ([]models.SellerProduct, error)
}

// FlagStore persists flags and answers the open-flag existence check.
type FlagStore interface {
	CreateFlag(ctx context.Context, flag *models.Flag) error
	HasOpenFlag(ctx context.Context, entityType models.EntityType, productID, sellerID string) (bool, error)
}

type Engine struct {
	feedback FeedbackSource
	listings ListingSource
	flags    FlagStore
}

func NewEngine(feedback FeedbackSource, listings ListingSource, flags FlagStore) *Engine {
	return &Engine{
		feedback: feedback,
		listings: listings,
		flags:    flags,
	}
}
