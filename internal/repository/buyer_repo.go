package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketrate-backend/internal/models"
)

type BuyerRepo struct {
	db *gorm.DB
}

func NewBuyerRepo(db *gorm.DB) *BuyerRepo {
	return &BuyerRepo{db: db}
}

func (r *BuyerRepo) Create(ctx context.Context, buyer *models.Buyer) error {
	return r.db.WithContext(ctx).Create(buyer).Error
}

func (r *BuyerRepo) FindByID(ctx context.Context, id string) (*models.Buyer, error) {
	var buyer models.Buyer
	err := r.db.WithContext(ctx).First(&buyer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &buyer, nil
}
