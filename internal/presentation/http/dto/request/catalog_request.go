package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	TaxRateID  *uuid.UUID `json:"tax_rate_id"`
	Name       string     `json:"name" binding:"required,min=2,max=255"`
	Code       string     `json:"code" binding:"omitempty,max=100"`
	Price      float64    `json:"price" binding:"min=0"`
	HSCode     *string    `json:"hs_code" binding:"omitempty,max=20"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	TaxRateID  *uuid.UUID `json:"tax_rate_id"`
	Name       *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Code       *string    `json:"code" binding:"omitempty,min=1,max=100"`
	Price      *float64   `json:"price" binding:"omitempty,min=0"`
	HSCode     *string    `json:"hs_code" binding:"omitempty,max=20"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	TaxRateID  string `form:"tax_rate_id"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,min=2,max=255"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=2,max=255"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CreateTaxRateRequest represents a tax rate creation request
type CreateTaxRateRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Rate    float64 `json:"rate" binding:"min=0,max=100"`
	SROCode *string `json:"sro_code" binding:"omitempty,max=50"`
}

// UpdateTaxRateRequest represents a tax rate update request
type UpdateTaxRateRequest struct {
	Name    *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Rate    *float64 `json:"rate" binding:"omitempty,min=0,max=100"`
	SROCode *string  `json:"sro_code" binding:"omitempty,max=50"`
}
