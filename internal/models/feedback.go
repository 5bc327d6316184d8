package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is an immutable rating record. The composite unique index keeps it
// to one feedback per (buyer, product, seller); the database constraint is the
// single source of truth for duplicates, there is no check-then-insert.
type Feedback struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	BuyerID         string    `gorm:"size:36;not null;uniqueIndex:idx_feedback_triple" json:"buyer_id"`
	ProductID       string    `gorm:"size:36;not null;uniqueIndex:idx_feedback_triple;index" json:"product_id"`
	SellerID        string    `gorm:"size:36;not null;uniqueIndex:idx_feedback_triple;index" json:"seller_id"`
	SellerProductID *string   `gorm:"size:36" json:"seller_product_id,omitempty"`
	Rating          int       `gorm:"not null" json:"rating"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
