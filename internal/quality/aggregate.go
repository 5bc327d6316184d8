package quality

import (
	"context"
	"time"

	"marketrate-backend/internal/models"
)

// Aggregate is the all-time rating summary for a scope (a product, or one
// seller's listing of a product).
type Aggregate struct {
	AvgRating      float64    `json:"avg_rating"`
	ReviewCount    int        `json:"review_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
}

// Summarize computes the aggregate over a feedback set. The average is the
// exact arithmetic mean, 0.0 for an empty set; LastReviewedAt is nil for an
// empty set.
func Summarize(items []models.Feedback) Aggregate {
	if len(items) == 0 {
		return Aggregate{}
	}

	sum := 0
	var last time.Time
	for _, f := range items {
		sum += f.Rating
		if f.CreatedAt.After(last) {
			last = f.CreatedAt
		}
	}

	return Aggregate{
		AvgRating:      float64(sum) / float64(len(items)),
		ReviewCount:    len(items),
		LastReviewedAt: &last,
	}
}

// ProductAggregate summarizes all feedback for a product across sellers.
// Pure read; the caller is responsible for checking the product exists.
func (e *Engine) ProductAggregate(ctx context.Context, productID string) (Aggregate, error) {
	items, err := e.feedback.ScanFeedback(ctx, "", productID, "", nil)
	if err != nil {
		return Aggregate{}, err
	}
	return Summarize(items), nil
}

// SellerProductAggregate summarizes all feedback for one seller's listing of
// a product.
func (e *Engine) SellerProductAggregate(ctx context.Context, sellerID, productID string) (Aggregate, error) {
	items, err := e.feedback.ScanFeedback(ctx, "", productID, sellerID, nil)
	if err != nil {
		return Aggregate{}, err
	}
	return Summarize(items), nil
}
