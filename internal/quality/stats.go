package quality

import (
	"context"
	"math"
	"time"

	"marketrate-backend/internal/models"
)

// SellerStats is the per-seller view of a product's active listings.
type SellerStats struct {
	SellerID    string  `json:"seller_id"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	IsFlagged   bool    `json:"is_flagged"`
}

// ListingStats is the per-listing view of a seller's catalog.
type ListingStats struct {
	ProductID      string     `json:"product_id"`
	SellerID       string     `json:"seller_id"`
	AvgRating      float64    `json:"avg_rating"`
	ReviewCount    int        `json:"review_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	PriceCents     int64      `json:"price_cents"`
	Currency       string     `json:"currency"`
	IsActive       bool       `json:"is_active"`
	IsFlagged      bool       `json:"is_flagged"`
}

// ProductSellerStats returns rating stats and flag state for every active
// seller of a product. Averages are rounded to two decimals for display.
func (e *Engine) ProductSellerStats(ctx context.Context, productID string) ([]SellerStats, error) {
	listings, err := e.listings.ActiveListings(ctx, productID)
	if err != nil {
		return nil, err
	}

	stats := make([]SellerStats, 0, len(listings))
	for _, sp := range listings {
		agg, err := e.SellerProductAggregate(ctx, sp.SellerID, productID)
		if err != nil {
			return nil, err
		}
		flagged, err := e.flags.HasOpenFlag(ctx, models.EntitySellerProduct, productID, sp.SellerID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, SellerStats{
			SellerID:    sp.SellerID,
			AvgRating:   round2(agg.AvgRating),
			ReviewCount: agg.ReviewCount,
			PriceCents:  sp.PriceCents,
			Currency:    sp.Currency,
			IsFlagged:   flagged,
		})
	}
	return stats, nil
}

// SellerListingStats returns the seller-product aggregate and flag state for
// each listing a seller holds, inactive ones included.
func (e *Engine) SellerListingStats(ctx context.Context, sellerID string) ([]ListingStats, error) {
	listings, err := e.listings.SellerListings(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	stats := make([]ListingStats, 0, len(listings))
	for _, sp := range listings {
		agg, err := e.SellerProductAggregate(ctx, sellerID, sp.ProductID)
		if err != nil {
			return nil, err
		}
		flagged, err := e.flags.HasOpenFlag(ctx, models.EntitySellerProduct, sp.ProductID, sellerID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, ListingStats{
			ProductID:      sp.ProductID,
			SellerID:       sellerID,
			AvgRating:      agg.AvgRating,
			ReviewCount:    agg.ReviewCount,
			LastReviewedAt: agg.LastReviewedAt,
			PriceCents:     sp.PriceCents,
			Currency:       sp.Currency,
			IsActive:       sp.IsActive,
			IsFlagged:      flagged,
		})
	}
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
