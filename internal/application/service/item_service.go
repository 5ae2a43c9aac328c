package service

import (
	"context"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/danuartha/warungpos-api/pkg/apperror"
	"github.com/danuartha/warungpos-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemService handles catalog item and category management
type ItemService struct {
	repos *repository.Repositories
}

// NewItemService creates a new item service
func NewItemService(repos *repository.Repositories) *ItemService {
	return &ItemService{repos: repos}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	CategoryID *uuid.UUID
	Name       string
	Code       string
	Price      decimal.Decimal
	Notes      *string
}

// CreateItem creates a new catalog item
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewValidationError("Price must not be negative")
	}
	if input.CategoryID != nil {
		category, err := s.repos.Categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	item := &entity.Item{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Code:       input.Code,
		Price:      input.Price.Round(2),
		Notes:      input.Notes,
	}
	if err := s.repos.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists items with filtering
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	items, total, err := s.repos.Items.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateItemPrice changes an item's standing list price
func (s *ItemService) UpdateItemPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*entity.Item, error) {
	if price.IsNegative() {
		return nil, apperror.NewValidationError("Price must not be negative")
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Items.UpdatePrice(ctx, id, price.Round(2)); err != nil {
		return nil, err
	}
	item.Price = price.Round(2)
	return item, nil
}

// DeleteItem removes an item from the catalog
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.repos.Items.Delete(ctx, id)
}

// CreateCategory creates a new category
func (s *ItemService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	category := &entity.Category{Name: name}
	if err := s.repos.Categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all categories
func (s *ItemService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.repos.Categories.List(ctx)
}
