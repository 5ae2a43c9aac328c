package response

import (
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummary is one row of the order listing
type OrderSummary struct {
	OrderID     uuid.UUID `json:"order_id"`
	PlacedAt    time.Time `json:"placed_at"`
	Description *string   `json:"description,omitempty"`
	CashierName string    `json:"cashier_name"`
	ItemCount   int       `json:"item_count"`
}

// NewOrderSummary maps an order to its listing row
func NewOrderSummary(o *entity.Order) OrderSummary {
	return OrderSummary{
		OrderID:     o.ID,
		PlacedAt:    o.PlacedAt,
		Description: o.Description,
		CashierName: o.User.Name,
		ItemCount:   o.ItemCount(),
	}
}

// OrderLineDetail is one line of the order detail breakdown. UnitPrice is
// the price recorded at sale time.
type OrderLineDetail struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderDetail is the full line-item breakdown of one order
type OrderDetail struct {
	OrderID     uuid.UUID         `json:"order_id"`
	PlacedAt    time.Time         `json:"placed_at"`
	Description *string           `json:"description,omitempty"`
	CashierName string            `json:"cashier_name"`
	Lines       []OrderLineDetail `json:"lines"`
	Receipt     *entity.Receipt   `json:"receipt,omitempty"`
}

// NewOrderDetail maps an order with preloaded lines to its detail view
func NewOrderDetail(o *entity.Order) *OrderDetail {
	detail := &OrderDetail{
		OrderID:     o.ID,
		PlacedAt:    o.PlacedAt,
		Description: o.Description,
		CashierName: o.User.Name,
		Lines:       make([]OrderLineDetail, 0, len(o.Lines)),
		Receipt:     o.Receipt,
	}
	for _, line := range o.Lines {
		detail.Lines = append(detail.Lines, OrderLineDetail{
			ItemID:    line.ItemID,
			ItemName:  line.Item.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
		})
	}
	return detail
}

// ReceiptSummary is one row of the receipt listing
type ReceiptSummary struct {
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	OrderID       uuid.UUID       `json:"order_id"`
	IssuedAt      time.Time       `json:"issued_at"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	PaymentMethod string          `json:"payment_method"`
	SellerName    string          `json:"seller_name"`
}

// NewReceiptSummary maps a receipt to its listing row
func NewReceiptSummary(r *entity.Receipt) ReceiptSummary {
	return ReceiptSummary{
		ReceiptID:     r.ID,
		OrderID:       r.OrderID,
		IssuedAt:      r.IssuedAt,
		GrandTotal:    r.GrandTotal,
		PaymentMethod: r.PaymentMethod.String(),
		SellerName:    r.Order.User.Name,
	}
}
