package entity

import (
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt holds the computed figures for exactly one order. It is produced
// once by the pricing engine and is read-only afterwards.
type Receipt struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	IssuedAt       time.Time          `gorm:"not null;index" json:"issued_at"`
	Subtotal       decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	TaxAmount      decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"tax_amount"`
	GrandTotal     decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"grand_total"`
	AmountPaid     decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"amount_paid"`
	ChangeAmount   decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"change_amount"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
