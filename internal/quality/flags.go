package quality

import (
	"context"
	"time"

	"marketrate-backend/internal/models"
)

const (
	// ReasonPoorSellerPerformance marks a seller-product flag.
	ReasonPoorSellerPerformance = "POOR_SELLER_PERFORMANCE"
	// ReasonLowQualityProduct marks a product-level flag.
	ReasonLowQualityProduct = "LOW_QUALITY_PRODUCT"

	sellerProductWindow     = 60 * 24 * time.Hour
	sellerProductMinReviews = 5

	productWindow     = 30 * 24 * time.Hour
	productMinReviews = 10
	poorSellerShare   = 0.6

	poorRatingCeiling = 2.5
)

// EvaluateSubmission runs both flag rules after a feedback write, the
// seller-product scope first. It returns the flags it created, which the
// submission response does not include; flags are a side effect.
func (e *Engine) EvaluateSubmission(ctx context.Context, sellerID, productID string) ([]*models.Flag, error) {
	var created []*models.Flag

	spFlag, err := e.EvaluateSellerProduct(ctx, sellerID, productID)
	if err != nil {
		return created, err
	}
	if spFlag != nil {
		created = append(created, spFlag)
	}

	pFlag, err := e.EvaluateProduct(ctx, productID)
	if err != nil {
		return created, err
	}
	if pFlag != nil {
		created = append(created, pFlag)
	}

	return created, nil
}

// EvaluateSellerProduct applies the seller-product rule: at least 5 reviews
// in the trailing 60 days with a mean rating of 2.5 or worse raises a MEDIUM
// flag. An existing OPEN flag for the same pair suppresses a new one.
func (e *Engine) EvaluateSellerProduct(ctx context.Context, sellerID, productID string) (*models.Flag, error) {
	since := time.Now().UTC().Add(-sellerProductWindow)
	items, err := e.feedback.ScanFeedback(ctx, "", productID, sellerID, &since)
	if err != nil {
		return nil, err
	}

	agg := Summarize(items)
	if agg.ReviewCount < sellerProductMinReviews || agg.AvgRating > poorRatingCeiling {
		return nil, nil
	}

	open, err := e.flags.HasOpenFlag(ctx, models.EntitySellerProduct, productID, sellerID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, nil
	}

	var spID *string
	sp, err := e.listings.FindListing(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	if sp != nil {
		spID = &sp.ID
	}

	flag := &models.Flag{
		EntityType:      models.EntitySellerProduct,
		ProductID:       &productID,
		SellerID:        &sellerID,
		SellerProductID: spID,
		Severity:        models.SeverityMedium,
		ReasonCode:      ReasonPoorSellerPerformance,
		Status:          models.FlagOpen,
		Details:         map[string]any{"reviews": agg.ReviewCount},
	}
	if err := e.flags.CreateFlag(ctx, flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// EvaluateProduct applies the product rule: when at least
// floor(0.6 * active_sellers) sellers (minimum 1) each have 10 or more
// reviews averaging 2.5 or worse in the trailing 30 days, a HIGH flag is
// raised for the product. Without active listings there is nothing to
// evaluate.
func (e *Engine) EvaluateProduct(ctx context.Context, productID string) (*models.Flag, error) {
	listings, err := e.listings.ActiveListings(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, nil
	}

	threshold := int(poorSellerShare * float64(len(listings)))
	if threshold == 0 {
		threshold = 1
	}

	since := time.Now().UTC().Add(-productWindow)
	poor := 0
	for _, sp := range listings {
		items, err := e.feedback.ScanFeedback(ctx, "", productID, sp.SellerID, &since)
		if err != nil {
			return nil, err
		}
		agg := Summarize(items)
		if agg.ReviewCount >= productMinReviews && agg.AvgRating <= poorRatingCeiling {
			poor++
		}
	}
	if poor < threshold {
		return nil, nil
	}

	open, err := e.flags.HasOpenFlag(ctx, models.EntityProduct, productID, "")
	if err != nil {
		return nil, err
	}
	if open {
		return nil, nil
	}

	flag := &models.Flag{
		EntityType: models.EntityProduct,
		ProductID:  &productID,
		Severity:   models.SeverityHigh,
		ReasonCode: ReasonLowQualityProduct,
		Status:     models.FlagOpen,
		Details: map[string]any{
			"poor_sellers":  poor,
			"total_sellers": len(listings),
		},
	}
	if err := e.flags.CreateFlag(ctx, flag); err != nil {
		return nil, err
	}
	return flag, nil
}
