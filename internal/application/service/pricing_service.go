package service

import (
	"context"
	"fmt"
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/danuartha/warungpos-api/internal/domain/enum"
	"github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

// PricingEngine computes and persists the receipt for an order. It reads the
// order's lines at the catalog's *current* prices together with the current
// tax/discount configuration; the repositories must belong to the same
// transaction as the order it is pricing.
type PricingEngine interface {
	ComputeReceipt(ctx context.Context, repos *repository.Repositories, orderID uuid.UUID, amountPaid decimal.Decimal, method enum.PaymentMethod) (*entity.Receipt, error)
}

// TaxPricingEngine applies the single current tax-rate/default-discount
// record to an order's lines.
type TaxPricingEngine struct {
	log *zap.Logger
}

// NewTaxPricingEngine creates a new pricing engine
func NewTaxPricingEngine(log *zap.Logger) *TaxPricingEngine {
	return &TaxPricingEngine{log: log}
}

// ComputeReceipt calculates subtotal, discount, tax, grand total and change
// for the order and persists the receipt. It rejects a payment smaller than
// the grand total.
func (e *TaxPricingEngine) ComputeReceipt(ctx context.Context, repos *repository.Repositories, orderID uuid.UUID, amountPaid decimal.Decimal, method enum.PaymentMethod) (*entity.Receipt, error) {
	order, err := repos.Orders.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("order %s has no lines", orderID)
	}

	itemIDs := make([]uuid.UUID, len(order.Lines))
	for i, line := range order.Lines {
		itemIDs[i] = line.ItemID
	}
	items, err := repos.Items.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	priceByItem := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, item := range items {
		priceByItem[item.ID] = item.Price
	}

	subtotal := decimal.Zero
	for _, line := range order.Lines {
		price, ok := priceByItem[line.ItemID]
		if !ok {
			return nil, fmt.Errorf("item %s not found", line.ItemID)
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	subtotal = subtotal.Round(2)

	setting, err := repos.Settings.GetTaxSetting(ctx)
	if err != nil {
		return nil, err
	}

	discount := subtotal.Mul(setting.DiscountPercent).Div(oneHundred).Round(2)
	taxBase := subtotal.Sub(discount)
	tax := taxBase.Mul(setting.TaxPercent).Div(oneHundred).Round(2)
	grandTotal := subtotal.Sub(discount).Add(tax)

	if amountPaid.LessThan(grandTotal) {
		return nil, fmt.Errorf("amount paid %s is less than grand total %s", amountPaid, grandTotal)
	}

	receipt := &entity.Receipt{
		OrderID:        order.ID,
		IssuedAt:       time.Now().UTC(),
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		GrandTotal:     grandTotal,
		AmountPaid:     amountPaid.Round(2),
		ChangeAmount:   amountPaid.Sub(grandTotal).Round(2),
		PaymentMethod:  method,
	}
	if err := repos.Receipts.Create(ctx, receipt); err != nil {
		return nil, err
	}

	e.log.Debug("receipt computed",
		zap.String("order_id", order.ID.String()),
		zap.String("grand_total", grandTotal.String()))
	return receipt, nil
}
