package handler

import (
	"github.com/danuartha/warungpos-api/internal/application/service"
	domainRepo "github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/danuartha/warungpos-api/internal/presentation/http/dto/request"
	"github.com/danuartha/warungpos-api/internal/presentation/http/dto/response"
	"github.com/danuartha/warungpos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemHandler handles catalog item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create handles creating a catalog item
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Code:       req.Code,
		Price:      decimal.NewFromFloat(req.Price),
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Get handles fetching one item
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item id")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// List handles listing items with filtering
func (h *ItemHandler) List(c *gin.Context) {
	var req request.ItemFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &domainRepo.ItemFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		Search: req.Search,
	}
	if req.CategoryID != "" {
		if categoryID, err := uuid.Parse(req.CategoryID); err == nil {
			params.CategoryID = &categoryID
		}
	}

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// UpdatePrice handles changing an item's list price
func (h *ItemHandler) UpdatePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item id")
		return
	}

	var req request.UpdateItemPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.UpdateItemPrice(c.Request.Context(), id, decimal.NewFromFloat(req.Price))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item price updated successfully", item)
}

// Delete handles removing an item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item id")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

// CreateCategory handles creating a category
func (h *ItemHandler) CreateCategory(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.itemService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// ListCategories handles listing all categories
func (h *ItemHandler) ListCategories(c *gin.Context) {
	categories, err := h.itemService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}
