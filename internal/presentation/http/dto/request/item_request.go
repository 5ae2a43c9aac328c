package request

import "github.com/google/uuid"

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Name       string     `json:"name" binding:"required,min=2,max=255"`
	Code       string     `json:"code" binding:"required,min=1,max=100"`
	Price      float64    `json:"price" binding:"min=0"`
	Notes      *string    `json:"notes"`
}

// UpdateItemPriceRequest represents a list price change request
type UpdateItemPriceRequest struct {
	Price float64 `json:"price" binding:"min=0"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// ItemFilterRequest represents item filter parameters
type ItemFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
