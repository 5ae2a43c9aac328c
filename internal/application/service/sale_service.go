package service

import (
	"context"
	"fmt"
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/danuartha/warungpos-api/internal/domain/enum"
	"github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/danuartha/warungpos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService coordinates the end-to-end sale: validate the cart, resolve the
// acting cashier, override prices, persist the order and its lines, have the
// pricing engine compute the receipt, restore prices, and commit the lot as
// one atomic unit. The daily report update runs afterwards as a best-effort
// follow-up.
type SaleService struct {
	repos    *repository.Repositories
	tx       repository.TxManager
	engine   PricingEngine
	override *PriceOverrideManager
	reports  *ReportService
	log      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	repos *repository.Repositories,
	tx repository.TxManager,
	engine PricingEngine,
	override *PriceOverrideManager,
	reports *ReportService,
	log *zap.Logger,
) *SaleService {
	return &SaleService{
		repos:    repos,
		tx:       tx,
		engine:   engine,
		override: override,
		reports:  reports,
		log:      log,
	}
}

// CreateSaleInput is the checkout payload
type CreateSaleInput struct {
	Items         []CartLine
	AmountPaid    decimal.Decimal
	PaymentMethod enum.PaymentMethod
	CashierID     *uuid.UUID
	Description   *string
}

// SaleOutcome carries the committed receipt's figures back to the caller.
// Warning is set when the sale committed but the daily report follow-up
// failed; the sale itself is final either way.
type SaleOutcome struct {
	OrderID        uuid.UUID          `json:"order_id"`
	ReceiptID      uuid.UUID          `json:"receipt_id"`
	ReceiptDate    time.Time          `json:"receipt_date"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	ChangeAmount   decimal.Decimal    `json:"change_amount"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	ReportRecorded bool               `json:"report_recorded"`
	Warning        string             `json:"warning,omitempty"`
}

// CreateOrderWithReceipt executes one sale. Each call creates a fresh order;
// the operation is deliberately not idempotent under retry.
func (s *SaleService) CreateOrderWithReceipt(ctx context.Context, input *CreateSaleInput) (*SaleOutcome, error) {
	cart, err := normalizeCart(input)
	if err != nil {
		return nil, err
	}

	// Resolve every cart item before opening the transaction so an unknown
	// item never costs a rollback.
	ids := make([]uuid.UUID, len(cart))
	for i, line := range cart {
		ids[i] = line.ItemID
	}
	found, err := s.repos.Items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(cart) {
		known := make(map[uuid.UUID]bool, len(found))
		for _, item := range found {
			known[item.ID] = true
		}
		for _, line := range cart {
			if !known[line.ItemID] {
				return nil, apperror.NewItemNotFoundError(fmt.Sprintf("Item %s not found", line.ItemID))
			}
		}
	}

	var receipt *entity.Receipt
	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		user, err := s.resolveActor(ctx, repos, input.CashierID)
		if err != nil {
			return err
		}

		order := &entity.Order{
			UserID:      user.ID,
			Description: input.Description,
			PlacedAt:    time.Now().UTC(),
		}
		for _, line := range cart {
			order.Lines = append(order.Lines, entity.OrderLine{
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}

		if err := s.override.WithOverriddenPrices(ctx, repos.Items, cart, func() error {
			if err := repos.Orders.Create(ctx, order); err != nil {
				return err
			}
			if _, err := s.engine.ComputeReceipt(ctx, repos, order.ID, input.AmountPaid, input.PaymentMethod); err != nil {
				if apperror.IsAppError(err) {
					return err
				}
				return apperror.NewComputationError(err)
			}
			return nil
		}); err != nil {
			return err
		}

		// Prices are restored at this point; the receipt must be readable
		// within the still-open transaction.
		receipt, err = repos.Receipts.GetByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if receipt == nil {
			s.log.Error("receipt missing after pricing engine reported success",
				zap.String("order_id", order.ID.String()))
			return apperror.NewInternalConsistencyError(apperror.KindReceiptMissing,
				"Sale failed", nil)
		}
		return nil
	})
	if err != nil {
		return nil, classifySaleError(err)
	}

	outcome := &SaleOutcome{
		OrderID:        receipt.OrderID,
		ReceiptID:      receipt.ID,
		ReceiptDate:    receipt.IssuedAt,
		Subtotal:       receipt.Subtotal,
		DiscountAmount: receipt.DiscountAmount,
		TaxAmount:      receipt.TaxAmount,
		GrandTotal:     receipt.GrandTotal,
		AmountPaid:     receipt.AmountPaid,
		ChangeAmount:   receipt.ChangeAmount,
		PaymentMethod:  receipt.PaymentMethod,
	}

	// The sale is committed; the aggregate update must not undo it. A failed
	// update is surfaced as a warning and can be replayed safely because the
	// aggregator dedups by receipt.
	recorded, err := s.reports.RecordSale(ctx, receipt.ID, receipt.IssuedAt, receipt.GrandTotal)
	if err != nil {
		s.log.Warn("daily report update failed after committed sale",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err))
		outcome.Warning = "Sale completed but the daily report update failed; it will be applied on retry"
	} else {
		outcome.ReportRecorded = recorded
	}

	return outcome, nil
}

func (s *SaleService) resolveActor(ctx context.Context, repos *repository.Repositories, cashierID *uuid.UUID) (*entity.User, error) {
	if cashierID != nil {
		user, err := repos.Users.GetByID(ctx, *cashierID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.NewNotFoundError("Cashier")
		}
		return user, nil
	}
	return repos.Users.FindOrCreateByName(ctx, entity.DefaultCashierName)
}

// normalizeCart validates the payload and merges duplicate item lines.
// Duplicates with the same unit price combine quantities; the same item at
// two different prices in one cart is rejected.
func normalizeCart(input *CreateSaleInput) ([]CartLine, error) {
	if len(input.Items) == 0 {
		return nil, apperror.ErrEmptyCart
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("Unknown payment method %q", input.PaymentMethod))
	}
	if input.AmountPaid.IsNegative() {
		return nil, apperror.NewValidationError("Amount paid must not be negative")
	}

	merged := make([]CartLine, 0, len(input.Items))
	index := make(map[uuid.UUID]int, len(input.Items))
	for _, line := range input.Items {
		if line.ItemID == uuid.Nil {
			return nil, apperror.NewValidationError("Cart line is missing an item id")
		}
		if line.Quantity <= 0 {
			return nil, apperror.NewValidationError("Quantity must be a positive integer")
		}
		if line.UnitPrice.IsNegative() {
			return nil, apperror.NewValidationError("Unit price must not be negative")
		}
		price := line.UnitPrice.Round(2)
		if i, ok := index[line.ItemID]; ok {
			if !merged[i].UnitPrice.Equal(price) {
				return nil, apperror.NewValidationError(
					fmt.Sprintf("Item %s appears twice with different unit prices", line.ItemID))
			}
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, CartLine{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}
	return merged, nil
}

// classifySaleError maps raw persistence errors to the structured taxonomy;
// AppErrors produced deeper in the flow pass through untouched.
func classifySaleError(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternalConsistencyError(apperror.KindInternal, "Sale failed", err)
}
