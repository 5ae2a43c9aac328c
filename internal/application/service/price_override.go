package service

import (
	"context"
	"fmt"

	"github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/danuartha/warungpos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartLine is one line of a checkout payload: a catalog item, how many of it,
// and the unit price actually negotiated for this sale. It is transient input
// and never persisted as-is.
type CartLine struct {
	ItemID    uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// PriceOverrideManager temporarily replaces catalog list prices with the
// per-sale negotiated prices so the pricing engine, which reads current item
// prices, computes against what was actually charged. The originals are
// restored before the surrounding transaction ends, whatever happens inside.
type PriceOverrideManager struct {
	log *zap.Logger
}

// NewPriceOverrideManager creates a new price override manager
func NewPriceOverrideManager(log *zap.Logger) *PriceOverrideManager {
	return &PriceOverrideManager{log: log}
}

// WithOverriddenPrices snapshots the list prices of every distinct item in
// the cart, overwrites them with the cart's unit prices, runs body, and
// unconditionally restores the snapshot afterwards. Cart item IDs must be
// unique. The items repository must be bound to the same transaction as the
// writes body performs; the override is then invisible outside it, and the
// item rows stay write-locked for the transaction's duration.
//
// A failure during restoration is returned as a distinct error kind so
// callers can flag the catalog for manual repair; it takes precedence over
// any error body returned.
func (m *PriceOverrideManager) WithOverriddenPrices(ctx context.Context, items repository.ItemRepository, cart []CartLine, body func() error) error {
	ids := make([]uuid.UUID, len(cart))
	for i, line := range cart {
		ids[i] = line.ItemID
	}

	locked, err := items.GetByIDsForUpdate(ctx, ids)
	if err != nil {
		return err
	}

	snapshot := make(map[uuid.UUID]decimal.Decimal, len(locked))
	for _, item := range locked {
		snapshot[item.ID] = item.Price
	}
	for _, line := range cart {
		if _, ok := snapshot[line.ItemID]; !ok {
			return apperror.NewItemNotFoundError(fmt.Sprintf("Item %s not found", line.ItemID))
		}
	}

	applied := make([]uuid.UUID, 0, len(cart))
	var bodyErr error
	for _, line := range cart {
		if err := items.UpdatePrice(ctx, line.ItemID, line.UnitPrice); err != nil {
			bodyErr = fmt.Errorf("apply price override for item %s: %w", line.ItemID, err)
			break
		}
		applied = append(applied, line.ItemID)
	}

	if bodyErr == nil {
		bodyErr = body()
	}

	var restoreErr error
	for _, id := range applied {
		if err := items.UpdatePrice(ctx, id, snapshot[id]); err != nil && restoreErr == nil {
			restoreErr = fmt.Errorf("restore price for item %s: %w", id, err)
		}
	}

	if restoreErr != nil {
		m.log.Error("failed to restore catalog prices, manual repair required",
			zap.Error(restoreErr),
			zap.NamedError("body_error", bodyErr))
		return apperror.NewInternalConsistencyError(apperror.KindPriceRestoreFailed,
			"Failed to restore catalog prices", restoreErr)
	}
	return bodyErr
}
