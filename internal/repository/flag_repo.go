package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketrate-backend/internal/models"
)

type FlagRepo struct {
	db *gorm.DB
}

func NewFlagRepo(db *gorm.DB) *FlagRepo {
	return &FlagRepo{db: db}
}

func (r *FlagRepo) CreateFlag(ctx context.Context, flag *models.Flag) error {
	return r.db.WithContext(ctx).Create(flag).Error
}

// HasOpenFlag reports whether an OPEN flag already exists for the given
// scope. sellerID is empty for product-level flags.
func (r *FlagRepo) HasOpenFlag(ctx context.Context, entityType models.EntityType, productID, sellerID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Flag{}).
		Where("entity_type = ? AND status = ? AND product_id = ?", entityType, models.FlagOpen, productID)
	if sellerID != "" {
		q = q.Where("seller_id = ?", sellerID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns flags newest first, optionally filtered by status and entity type.
func (r *FlagRepo) List(ctx context.Context, status models.FlagStatus, entityType models.EntityType) ([]models.Flag, error) {
	q := r.db.WithContext(ctx).Model(&models.Flag{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}

	var flags []models.Flag
	if err := q.Order("created_at DESC").Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}

// UpdateStatus transitions a flag's status and reports whether the flag existed.
func (r *FlagRepo) UpdateStatus(ctx context.Context, id string, status models.FlagStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Flag{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *FlagRepo) FindByID(ctx context.Context, id string) (*models.Flag, error) {
	var flag models.Flag
	err := r.db.WithContext(ctx).First(&flag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flag, nil
}
