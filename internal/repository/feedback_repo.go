package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"marketrate-backend/internal/models"
)

type FeedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Create persists a feedback record. A second feedback for the same
// (buyer, product, seller) triple is rejected by the unique index and
// reported as ErrDuplicate; nothing is written in that case.
func (r *FeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Create(feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ScanFeedback returns feedback matching any combination of buyer, product
// and seller, optionally bounded below on creation time. Empty string filters
// are ignored.
func (r *FeedbackRepo) ScanFeedback(ctx context.Context, buyerID, productID, sellerID string, since *time.Time) ([]models.Feedback, error) {
	q := r.db.WithContext(ctx).Model(&models.Feedback{})
	if buyerID != "" {
		q = q.Where("buyer_id = ?", buyerID)
	}
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}
	if sellerID != "" {
		q = q.Where("seller_id = ?", sellerID)
	}
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var items []models.Feedback
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// List returns a newest-first page of feedback. page starts at 1; a
// pageSize of 0 or less disables pagination.
func (r *FeedbackRepo) List(ctx context.Context, buyerID, productID, sellerID string, page, pageSize int) ([]models.Feedback, error) {
	q := r.db.WithContext(ctx).Model(&models.Feedback{})
	if buyerID != "" {
		q = q.Where("buyer_id = ?", buyerID)
	}
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}
	if sellerID != "" {
		q = q.Where("seller_id = ?", sellerID)
	}
	q = q.Order("created_at DESC")
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var items []models.Feedback
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
