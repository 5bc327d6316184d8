package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerProduct is the listing that links one seller to one product with its
// price and active status. A (seller, product) pair can be listed only once.
type SellerProduct struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	SellerID   string    `gorm:"size:36;not null;uniqueIndex:idx_seller_product" json:"seller_id"`
	ProductID  string    `gorm:"size:36;not null;uniqueIndex:idx_seller_product;index" json:"product_id"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `gorm:"size:8" json:"currency"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (sp *SellerProduct) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	if sp.Currency == "" {
		sp.Currency = "INR"
	}
	return nil
}
