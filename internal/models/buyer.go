package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Buyer struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Buyer) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
