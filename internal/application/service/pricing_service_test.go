package service

import (
	"context"
	"testing"
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/danuartha/warungpos-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedOrder(t *testing.T, store *memoryStore, lines ...entity.OrderLine) *entity.Order {
	t.Helper()
	order := &entity.Order{
		UserID:   uuid.New(),
		PlacedAt: time.Now().UTC(),
		Lines:    lines,
	}
	require.NoError(t, store.Repos().Orders.Create(context.Background(), order))
	return order
}

func TestComputeReceipt_RoundsHalfUp(t *testing.T) {
	store := newMemoryStore()
	store.setting = entity.TaxSetting{TaxPercent: mustDecimal("11"), DiscountPercent: mustDecimal("0")}
	itemID := store.addItem("item", "19.99")
	order := seedOrder(t, store, entity.OrderLine{ItemID: itemID, Quantity: 3, UnitPrice: mustDecimal("19.99")})
	engine := NewTaxPricingEngine(zap.NewNop())

	receipt, err := engine.ComputeReceipt(context.Background(), store.Repos(), order.ID,
		mustDecimal("70.00"), enum.PaymentMethodCash)
	require.NoError(t, err)

	// 59.97 * 11% = 6.5967, rounded to 6.60
	assert.True(t, receipt.Subtotal.Equal(mustDecimal("59.97")))
	assert.True(t, receipt.TaxAmount.Equal(mustDecimal("6.60")), "tax = %s", receipt.TaxAmount)
	assert.True(t, receipt.GrandTotal.Equal(mustDecimal("66.57")))
	assert.True(t, receipt.ChangeAmount.Equal(mustDecimal("3.43")))
}

func TestComputeReceipt_PersistsReceipt(t *testing.T) {
	store := newMemoryStore()
	itemID := store.addItem("item", "5.00")
	order := seedOrder(t, store, entity.OrderLine{ItemID: itemID, Quantity: 2, UnitPrice: mustDecimal("5.00")})
	engine := NewTaxPricingEngine(zap.NewNop())

	receipt, err := engine.ComputeReceipt(context.Background(), store.Repos(), order.ID,
		mustDecimal("10.00"), enum.PaymentMethodQR)
	require.NoError(t, err)

	stored, err := store.Repos().Receipts.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, receipt.ID, stored.ID)
	assert.Equal(t, enum.PaymentMethodQR, stored.PaymentMethod)
	assert.True(t, stored.ChangeAmount.IsZero())
}

func TestComputeReceipt_RejectsInsufficientPayment(t *testing.T) {
	store := newMemoryStore()
	itemID := store.addItem("item", "5.00")
	order := seedOrder(t, store, entity.OrderLine{ItemID: itemID, Quantity: 2, UnitPrice: mustDecimal("5.00")})
	engine := NewTaxPricingEngine(zap.NewNop())

	_, err := engine.ComputeReceipt(context.Background(), store.Repos(), order.ID,
		mustDecimal("9.99"), enum.PaymentMethodCash)
	require.Error(t, err)

	stored, err := store.Repos().Receipts.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, stored, "no receipt may exist for a rejected payment")
}

func TestComputeReceipt_OrderNotFound(t *testing.T) {
	store := newMemoryStore()
	engine := NewTaxPricingEngine(zap.NewNop())

	_, err := engine.ComputeReceipt(context.Background(), store.Repos(), uuid.New(),
		mustDecimal("1.00"), enum.PaymentMethodCash)
	require.Error(t, err)
}

// The engine prices against the catalog's current prices, not the order
// lines; the override manager is what makes both agree during a sale.
func TestComputeReceipt_UsesCurrentCatalogPrices(t *testing.T) {
	store := newMemoryStore()
	itemID := store.addItem("item", "100.00")
	order := seedOrder(t, store, entity.OrderLine{ItemID: itemID, Quantity: 1, UnitPrice: mustDecimal("42.00")})
	engine := NewTaxPricingEngine(zap.NewNop())

	receipt, err := engine.ComputeReceipt(context.Background(), store.Repos(), order.ID,
		mustDecimal("100.00"), enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.True(t, receipt.Subtotal.Equal(mustDecimal("100.00")))
}
