package quality

import (
	"context"
	"sort"
)

// DefaultRecommendationLimit caps ranked results when the caller does not ask
// for a specific limit.
const DefaultRecommendationLimit = 3

const (
	rationaleHigherRated      = "Higher-rated seller even if price is higher"
	rationaleSellerConsidered = "Seller considered"
)

type Recommendation struct {
	SellerID    string  `json:"seller_id"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int     `json:"review_count"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	Rationale   string  `json:"rationale"`
}

// RecommendSellers ranks the active sellers of a product by average rating
// (all-time), then review count, then ascending price. Sellers without
// reviews rank at 0.0 rather than being excluded. The caller is responsible
// for checking the product exists.
func (e *Engine) RecommendSellers(ctx context.Context, productID string, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	listings, err := e.listings.ActiveListings(ctx, productID)
	if err != nil {
		return nil, err
	}

	results := make([]Recommendation, 0, len(listings))
	for _, sp := range listings {
		agg, err := e.SellerProductAggregate(ctx, sp.SellerID, productID)
		if err != nil {
			return nil, err
		}

		rationale := rationaleSellerConsidered
		if agg.AvgRating >= 4.0 {
			rationale = rationaleHigherRated
		}
		results = append(results, Recommendation{
			SellerID:    sp.SellerID,
			AvgRating:   agg.AvgRating,
			ReviewCount: agg.ReviewCount,
			PriceCents:  sp.PriceCents,
			Currency:    sp.Currency,
			Rationale:   rationale,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AvgRating != results[j].AvgRating {
			return results[i].AvgRating > results[j].AvgRating
		}
		if results[i].ReviewCount != results[j].ReviewCount {
			return results[i].ReviewCount > results[j].ReviewCount
		}
		return results[i].PriceCents < results[j].PriceCents
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
