package request

import "github.com/google/uuid"

// SaleLineRequest represents one cart line in a sale request
type SaleLineRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" binding:"min=0"`
}

// CreateSaleRequest represents a checkout payload
type CreateSaleRequest struct {
	Items         []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
	AmountPaid    float64           `json:"amount_paid" binding:"min=0"`
	PaymentMethod string            `json:"payment_method" binding:"required,oneof=CASH QR"`
	CashierID     *uuid.UUID        `json:"cashier_id"`
	Description   *string           `json:"description"`
}

// ListFilterRequest represents shared list query parameters
type ListFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
