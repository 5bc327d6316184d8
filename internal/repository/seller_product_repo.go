package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketrate-backend/internal/models"
)

type SellerProductRepo struct {
	db *gorm.DB
}

func NewSellerProductRepo(db *gorm.DB) *SellerProductRepo {
	return &SellerProductRepo{db: db}
}

func (r *SellerProductRepo) Create(ctx context.Context, sp *models.SellerProduct) error {
	err := r.db.WithContext(ctx).Create(sp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindListing resolves the listing for a (seller, product) pair, active or not.
// Returns (nil, nil) when the pair has no listing.
func (r *SellerProductRepo) FindListing(ctx context.Context, sellerID, productID string) (*models.SellerProduct, error) {
	var sp models.SellerProduct
	err := r.db.WithContext(ctx).
		First(&sp, "seller_id = ? AND product_id = ?", sellerID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

// ActiveListings returns the active listings for a product. Inactive entries
// are excluded from aggregation and recommendation.
func (r *SellerProductRepo) ActiveListings(ctx context.Context, productID string) ([]models.SellerProduct, error) {
	var sps []models.SellerProduct
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Find(&sps).Error
	if err != nil {
		return nil, err
	}
	return sps, nil
}

// SellerListings returns every listing a seller holds, including inactive ones.
func (r *SellerProductRepo) SellerListings(ctx context.Context, sellerID string) ([]models.SellerProduct, error) {
	var sps []models.SellerProduct
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Find(&sps).Error
	if err != nil {
		return nil, err
	}
	return sps, nil
}
