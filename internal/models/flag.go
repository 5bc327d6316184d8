package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntityType string

const (
	EntityProduct       EntityType = "PRODUCT"
	EntitySellerProduct EntityType = "SELLER_PRODUCT"
)

type Severity string

const (
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

type FlagStatus string

const (
	FlagOpen         FlagStatus = "OPEN"
	FlagAcknowledged FlagStatus = "ACKNOWLEDGED"
	FlagResolved     FlagStatus = "RESOLVED"
)

// ValidFlagStatus reports whether s is a known status value.
func ValidFlagStatus(s FlagStatus) bool {
	switch s {
	case FlagOpen, FlagAcknowledged, FlagResolved:
		return true
	}
	return false
}

// Flag is a derived, append-only record of a quality concern. Flags are never
// deleted by the service; only a reviewer transitions Status.
type Flag struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	EntityType      EntityType     `gorm:"size:32;not null;index" json:"entity_type"`
	ProductID       *string        `gorm:"size:36;index" json:"product_id,omitempty"`
	SellerID        *string        `gorm:"size:36;index" json:"seller_id,omitempty"`
	SellerProductID *string        `gorm:"size:36;index" json:"seller_product_id,omitempty"`
	Severity        Severity       `gorm:"size:16;not null" json:"severity"`
	ReasonCode      string         `gorm:"size:64;not null" json:"reason_code"`
	Status          FlagStatus     `gorm:"size:16;not null;index" json:"status"`
	Details         map[string]any `gorm:"serializer:json" json:"details"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (f *Flag) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Status == "" {
		f.Status = FlagOpen
	}
	return nil
}
