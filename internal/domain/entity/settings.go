package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxSetting is the single current tax-rate/default-discount record the
// pricing engine applies to every sale. Percentages are 0-100.
type TaxSetting struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TaxPercent      decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tax_percent"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount_percent"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new tax setting
func (t *TaxSetting) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxSetting model
func (TaxSetting) TableName() string {
	return "tax_settings"
}
