package repository

import (
	"context"
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/danuartha/warungpos-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemFilterParams holds filtering options for listing items
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
}

// ItemRepository defines catalog item data access. GetByIDsForUpdate takes
// the rows under a write lock so two sales touching the same item cannot
// interleave their override/restore steps.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
}

// UserRepository defines actor data access. FindOrCreateByName must be
// race-safe: a uniqueness violation on concurrent creation is resolved by
// re-fetching, never surfaced.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindOrCreateByName(ctx context.Context, name string) (*entity.User, error)
}

// OrderFilterParams holds filtering options for listing orders and receipts
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderRepository defines order data access
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// ReceiptRepository defines receipt data access
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Receipt, int64, error)
}

// ReportSummary is the aggregate over a range of daily reports
type ReportSummary struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	NumberOfOrders int64           `json:"number_of_orders"`
}

// ReportRepository defines daily sales aggregate access. AccumulateSale must
// apply the increment as an atomic read-modify-write and must be a no-op for
// a receipt that has already been folded in; it reports whether the sale was
// counted by this call.
type ReportRepository interface {
	AccumulateSale(ctx context.Context, receiptID uuid.UUID, day time.Time, grandTotal decimal.Decimal) (bool, error)
	GetByDate(ctx context.Context, day time.Time) (*entity.DailyReport, error)
	SummarizeRange(ctx context.Context, from, to time.Time) (*ReportSummary, error)
}

// SettingsRepository provides the single current tax/discount configuration
type SettingsRepository interface {
	GetTaxSetting(ctx context.Context) (*entity.TaxSetting, error)
}

// CategoryRepository defines category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}

// Repositories bundles the per-entity repositories bound to one data source,
// either the shared pool or a single transaction.
type Repositories struct {
	Items      ItemRepository
	Users      UserRepository
	Orders     OrderRepository
	Receipts   ReceiptRepository
	Settings   SettingsRepository
	Categories CategoryRepository
}

// TxManager runs a function with repositories bound to one atomic unit of
// work. If fn returns an error every write made through those repositories
// is rolled back.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}
