package service

import (
	"context"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/danuartha/warungpos-api/pkg/apperror"
	"github.com/danuartha/warungpos-api/pkg/pagination"
	"github.com/google/uuid"
)

// OrderQueryService serves the read-only projections over orders, lines and
// receipts. It never mutates anything.
type OrderQueryService struct {
	repos *repository.Repositories
}

// NewOrderQueryService creates a new order query service
func NewOrderQueryService(repos *repository.Repositories) *OrderQueryService {
	return &OrderQueryService{repos: repos}
}

// ListOrders lists orders newest-first with lines and cashier preloaded
func (s *OrderQueryService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.repos.Orders.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// GetOrderDetail fetches an order with its full line breakdown. Line prices
// come from the unit price recorded at sale time, not the current catalog
// price, so later catalog edits do not change history.
func (s *OrderQueryService) GetOrderDetail(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.repos.Orders.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListReceipts lists receipts newest-first with their order and seller
func (s *OrderQueryService) ListReceipts(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.repos.Receipts.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// GetReceiptByID fetches one receipt with its order and seller
func (s *OrderQueryService) GetReceiptByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.repos.Receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}
