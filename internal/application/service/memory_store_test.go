package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	domainRepo "github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory stand-in for the postgres-backed repositories.
// RunInTx holds the store lock for the whole unit of work, mirroring the
// FOR UPDATE serialization of real sales, and restores a snapshot when the
// unit fails so rollback behavior is observable in tests.
type memoryStore struct {
	mu sync.Mutex

	items    map[uuid.UUID]entity.Item
	users    map[uuid.UUID]entity.User
	orders   map[uuid.UUID]entity.Order
	receipts map[uuid.UUID]entity.Receipt
	setting  entity.TaxSetting

	// failUpdatePriceOn holds 1-based UpdatePrice call indices that fail,
	// to force apply or restore failures at a precise step.
	failUpdatePriceOn map[int]bool
	updatePriceCalls  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		items:             make(map[uuid.UUID]entity.Item),
		users:             make(map[uuid.UUID]entity.User),
		orders:            make(map[uuid.UUID]entity.Order),
		receipts:          make(map[uuid.UUID]entity.Receipt),
		failUpdatePriceOn: make(map[int]bool),
	}
}

func (s *memoryStore) addItem(name string, price string) uuid.UUID {
	id := uuid.New()
	s.items[id] = entity.Item{
		ID:    id,
		Name:  name,
		Code:  name,
		Price: mustDecimal(price),
	}
	return id
}

func timeNowUTC() time.Time { return time.Now().UTC() }

func mustDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

type storeSnapshot struct {
	items    map[uuid.UUID]entity.Item
	users    map[uuid.UUID]entity.User
	orders   map[uuid.UUID]entity.Order
	receipts map[uuid.UUID]entity.Receipt
}

func (s *memoryStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		items:    make(map[uuid.UUID]entity.Item, len(s.items)),
		users:    make(map[uuid.UUID]entity.User, len(s.users)),
		orders:   make(map[uuid.UUID]entity.Order, len(s.orders)),
		receipts: make(map[uuid.UUID]entity.Receipt, len(s.receipts)),
	}
	for id, item := range s.items {
		snap.items[id] = item
	}
	for id, user := range s.users {
		snap.users[id] = user
	}
	for id, order := range s.orders {
		order.Lines = append([]entity.OrderLine(nil), order.Lines...)
		snap.orders[id] = order
	}
	for id, receipt := range s.receipts {
		snap.receipts[id] = receipt
	}
	return snap
}

func (s *memoryStore) restore(snap storeSnapshot) {
	s.items = snap.items
	s.users = snap.users
	s.orders = snap.orders
	s.receipts = snap.receipts
}

// RunInTx implements repository.TxManager
func (s *memoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context, repos *domainRepo.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, s.repos(false)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Repos returns repositories that take the store lock per call, for use
// outside a transaction.
func (s *memoryStore) Repos() *domainRepo.Repositories {
	return s.repos(true)
}

func (s *memoryStore) repos(locking bool) *domainRepo.Repositories {
	return &domainRepo.Repositories{
		Items:    &memItemRepo{store: s, locking: locking},
		Users:    &memUserRepo{store: s, locking: locking},
		Orders:   &memOrderRepo{store: s, locking: locking},
		Receipts: &memReceiptRepo{store: s, locking: locking},
		Settings: &memSettingsRepo{store: s, locking: locking},
	}
}

func (s *memoryStore) lock(locking bool) func() {
	if !locking {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memItemRepo struct {
	store   *memoryStore
	locking bool
}

func (r *memItemRepo) Create(ctx context.Context, item *entity.Item) error {
	defer r.store.lock(r.locking)()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.store.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	defer r.store.lock(r.locking)()
	item, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	defer r.store.lock(r.locking)()
	items := make([]entity.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.store.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *memItemRepo) GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	return r.GetByIDs(ctx, ids)
}

func (r *memItemRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	defer r.store.lock(r.locking)()
	r.store.updatePriceCalls++
	if r.store.failUpdatePriceOn[r.store.updatePriceCalls] {
		return errors.New("simulated price write failure")
	}
	item, ok := r.store.items[id]
	if !ok {
		return errors.New("item not found")
	}
	item.Price = price
	r.store.items[id] = item
	return nil
}

func (r *memItemRepo) Update(ctx context.Context, item *entity.Item) error {
	defer r.store.lock(r.locking)()
	r.store.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.lock(r.locking)()
	delete(r.store.items, id)
	return nil
}

func (r *memItemRepo) List(ctx context.Context, params *domainRepo.ItemFilterParams) ([]entity.Item, int64, error) {
	defer r.store.lock(r.locking)()
	items := make([]entity.Item, 0, len(r.store.items))
	for _, item := range r.store.items {
		items = append(items, item)
	}
	return items, int64(len(items)), nil
}

type memUserRepo struct {
	store   *memoryStore
	locking bool
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	defer r.store.lock(r.locking)()
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memUserRepo) FindOrCreateByName(ctx context.Context, name string) (*entity.User, error) {
	defer r.store.lock(r.locking)()
	for _, user := range r.store.users {
		if user.Name == name {
			return &user, nil
		}
	}
	user := entity.User{ID: uuid.New(), Name: name}
	r.store.users[user.ID] = user
	return &user, nil
}

type memOrderRepo struct {
	store   *memoryStore
	locking bool
}

func (r *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	defer r.store.lock(r.locking)()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Lines {
		if order.Lines[i].ID == uuid.Nil {
			order.Lines[i].ID = uuid.New()
		}
		order.Lines[i].OrderID = order.ID
	}
	stored := *order
	stored.Lines = append([]entity.OrderLine(nil), order.Lines...)
	r.store.orders[order.ID] = stored
	return nil
}

func (r *memOrderRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	defer r.store.lock(r.locking)()
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	order.Lines = append([]entity.OrderLine(nil), order.Lines...)
	for i := range order.Lines {
		if item, ok := r.store.items[order.Lines[i].ItemID]; ok {
			order.Lines[i].Item = item
		}
	}
	if user, ok := r.store.users[order.UserID]; ok {
		order.User = user
	}
	for _, receipt := range r.store.receipts {
		if receipt.OrderID == order.ID {
			receiptCopy := receipt
			order.Receipt = &receiptCopy
			break
		}
	}
	return &order, nil
}

func (r *memOrderRepo) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	defer r.store.lock(r.locking)()
	orders := make([]entity.Order, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].PlacedAt.After(orders[j].PlacedAt) })
	return orders, int64(len(orders)), nil
}

type memReceiptRepo struct {
	store   *memoryStore
	locking bool
}

func (r *memReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	defer r.store.lock(r.locking)()
	for _, existing := range r.store.receipts {
		if existing.OrderID == receipt.OrderID {
			return errors.New("duplicate receipt for order")
		}
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	r.store.receipts[receipt.ID] = *receipt
	return nil
}

func (r *memReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	defer r.store.lock(r.locking)()
	receipt, ok := r.store.receipts[id]
	if !ok {
		return nil, nil
	}
	return &receipt, nil
}

func (r *memReceiptRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	defer r.store.lock(r.locking)()
	for _, receipt := range r.store.receipts {
		if receipt.OrderID == orderID {
			receiptCopy := receipt
			return &receiptCopy, nil
		}
	}
	return nil, nil
}

func (r *memReceiptRepo) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Receipt, int64, error) {
	defer r.store.lock(r.locking)()
	receipts := make([]entity.Receipt, 0, len(r.store.receipts))
	for _, receipt := range r.store.receipts {
		receipts = append(receipts, receipt)
	}
	sort.Slice(receipts, func(i, j int) bool { return receipts[i].IssuedAt.After(receipts[j].IssuedAt) })
	return receipts, int64(len(receipts)), nil
}

type memSettingsRepo struct {
	store   *memoryStore
	locking bool
}

func (r *memSettingsRepo) GetTaxSetting(ctx context.Context) (*entity.TaxSetting, error) {
	defer r.store.lock(r.locking)()
	setting := r.store.setting
	return &setting, nil
}

// memReportRepo is an in-memory daily report aggregate with its own lock,
// matching the aggregator running outside the sale transaction.
type memReportRepo struct {
	mu       sync.Mutex
	ledger   map[uuid.UUID]bool
	reports  map[time.Time]*entity.DailyReport
	failNext bool
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{
		ledger:  make(map[uuid.UUID]bool),
		reports: make(map[time.Time]*entity.DailyReport),
	}
}

func (r *memReportRepo) AccumulateSale(ctx context.Context, receiptID uuid.UUID, day time.Time, grandTotal decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failNext {
		r.failNext = false
		return false, errors.New("simulated report store failure")
	}
	if r.ledger[receiptID] {
		return false, nil
	}
	r.ledger[receiptID] = true

	report, ok := r.reports[day]
	if !ok {
		report = &entity.DailyReport{
			ReportDate: day,
			ReportType: entity.ReportTypeDaily,
			TotalSales: decimal.Zero,
		}
		r.reports[day] = report
	}
	report.TotalSales = report.TotalSales.Add(grandTotal)
	report.NumberOfOrders++
	return true, nil
}

func (r *memReportRepo) GetByDate(ctx context.Context, day time.Time) (*entity.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[day]
	if !ok {
		return nil, nil
	}
	reportCopy := *report
	return &reportCopy, nil
}

func (r *memReportRepo) SummarizeRange(ctx context.Context, from, to time.Time) (*domainRepo.ReportSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := &domainRepo.ReportSummary{TotalSales: decimal.Zero}
	for day, report := range r.reports {
		if day.Before(from) || day.After(to) {
			continue
		}
		summary.TotalSales = summary.TotalSales.Add(report.TotalSales)
		summary.NumberOfOrders += report.NumberOfOrders
	}
	return summary, nil
}
