package quality

import (
	"context"
	"time"

	"marketrate-backend/internal/models"
)

// In-memory fakes for the engine's sources.

type fakeFeedback struct {
	items []models.Feedback
}

func (f *fakeFeedback) ScanFeedback(ctx context.Context, buyerID, productID, sellerID string, since *time.Time) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range f.items {
		if buyerID != "" && fb.BuyerID != buyerID {
			continue
		}
		if productID != "" && fb.ProductID != productID {
			continue
		}
		if sellerID != "" && fb.SellerID != sellerID {
			continue
		}
		if since != nil && fb.CreatedAt.Before(*since) {
			continue
		}
		out = append(out, fb)
	}
	return out, nil
}

func (f *fakeFeedback) add(productID, sellerID string, rating int, age time.Duration) {
	f.items = append(f.items, models.Feedback{
		BuyerID:   "buyer",
		ProductID: productID,
		SellerID:  sellerID,
		Rating:    rating,
		CreatedAt: time.Now().UTC().Add(-age),
	})
}

func (f *fakeFeedback) addN(n int, productID, sellerID string, rating int, age time.Duration) {
	for i := 0; i < n; i++ {
		f.add(productID, sellerID, rating, age)
	}
}

type fakeListings struct {
	items []models.SellerProduct
}

func (l *fakeListings) FindListing(ctx context.Context, sellerID, productID string) (*models.SellerProduct, error) {
	for i := range l.items {
		if l.items[i].SellerID == sellerID && l.items[i].ProductID == productID {
			return &l.items[i], nil
		}
	}
	return nil, nil
}

func (l *fakeListings) ActiveListings(ctx context.Context, productID string) ([]models.SellerProduct, error) {
	var out []models.SellerProduct
	for _, sp := range l.items {
		if sp.ProductID == productID && sp.IsActive {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (l *fakeListings) SellerListings(ctx context.Context, sellerID string) ([]models.SellerProduct, error) {
	var out []models.SellerProduct
	for _, sp := range l.items {
		if sp.SellerID == sellerID {
			out = append(out, sp)
		}
	}
	return out, nil
}

type fakeFlags struct {
	created []*models.Flag
}

func (s *fakeFlags) CreateFlag(ctx context.Context, flag *models.Flag) error {
	if flag.Status == "" {
		flag.Status = models.FlagOpen
	}
	s.created = append(s.created, flag)
	return nil
}

func (s *fakeFlags) HasOpenFlag(ctx context.Context, entityType models.EntityType, productID, sellerID string) (bool, error) {
	for _, f := range s.created {
		if f.EntityType != entityType || f.Status != models.FlagOpen {
			continue
		}
		if f.ProductID == nil || *f.ProductID != productID {
			continue
		}
		if sellerID != "" && (f.SellerID == nil || *f.SellerID != sellerID) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func newTestEngine() (*Engine, *fakeFeedback, *fakeListings, *fakeFlags) {
	fb := &fakeFeedback{}
	ls := &fakeListings{}
	fl := &fakeFlags{}
	return NewEngine(fb, ls, fl), fb, ls, fl
}
