package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketrate-backend/internal/models"
)

type SellerRepo struct {
	db *gorm.DB
}

func NewSellerRepo(db *gorm.DB) *SellerRepo {
	return &SellerRepo{db: db}
}

func (r *SellerRepo) Create(ctx context.Context, seller *models.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

func (r *SellerRepo) FindByID(ctx context.Context, id string) (*models.Seller, error) {
	var seller models.Seller
	err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}
