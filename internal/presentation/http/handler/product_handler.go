package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/retailpk/fbrpos-api/internal/application/service"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/request"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/response"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products (supports both page-based and cursor-based pagination)
func (h *ProductHandler) List(c *gin.Context) {
	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		CategoryID: parseUUIDQuery(filter.CategoryID),
		TaxRateID:  parseUUIDQuery(filter.TaxRateID),
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// listWithCursor handles listing products with cursor-based pagination
func (h *ProductHandler) listWithCursor(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	cursor := c.Query("cursor")
	direction := c.DefaultQuery("direction", "next")

	params := &repository.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Search:     filter.Search,
		CategoryID: parseUUIDQuery(filter.CategoryID),
		TaxRateID:  parseUUIDQuery(filter.TaxRateID),
	}

	result, err := h.productService.ListProductsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		CategoryID: req.CategoryID,
		TaxRateID:  req.TaxRateID,
		Name:       req.Name,
		Code:       req.Code,
		Price:      req.Price,
		HSCode:     req.HSCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "product ID")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "product ID")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ProductID:  id,
		CategoryID: req.CategoryID,
		TaxRateID:  req.TaxRateID,
		Name:       req.Name,
		Code:       req.Code,
		Price:      req.Price,
		HSCode:     req.HSCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "product ID")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles listing categories
func (h *CategoryHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	result, err := h.categoryService.ListCategories(c.Request.Context(), params, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Categories retrieved successfully", result)
}

// Get handles getting a single category
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "category ID")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category retrieved successfully", category)
}

// ListChildren handles listing a category's direct children
func (h *CategoryHandler) ListChildren(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "category ID")
	if !ok {
		return
	}

	children, err := h.categoryService.ListChildren(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", children)
}

// Create handles creating a category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// Update handles updating a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "category ID")
	if !ok {
		return
	}

	var req request.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), &service.UpdateCategoryInput{
		CategoryID: id,
		Name:       req.Name,
		ParentID:   req.ParentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// Delete handles deleting a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "category ID")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// TaxRateHandler handles tax rate HTTP requests
type TaxRateHandler struct {
	taxRateService *service.TaxRateService
}

// NewTaxRateHandler creates a new tax rate handler
func NewTaxRateHandler(taxRateService *service.TaxRateService) *TaxRateHandler {
	return &TaxRateHandler{taxRateService: taxRateService}
}

// List handles listing tax rates
func (h *TaxRateHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	result, err := h.taxRateService.ListTaxRates(c.Request.Context(), params, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tax rates retrieved successfully", result)
}

// Get handles getting a single tax rate
func (h *TaxRateHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "tax rate ID")
	if !ok {
		return
	}

	rate, err := h.taxRateService.GetTaxRate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rate retrieved successfully", rate)
}

// Create handles creating a tax rate
func (h *TaxRateHandler) Create(c *gin.Context) {
	var req request.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rate, err := h.taxRateService.CreateTaxRate(c.Request.Context(), &service.CreateTaxRateInput{
		Name:    req.Name,
		Rate:    req.Rate,
		SROCode: req.SROCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax rate created successfully", rate)
}

// Update handles updating a tax rate
func (h *TaxRateHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "tax rate ID")
	if !ok {
		return
	}

	var req request.UpdateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rate, err := h.taxRateService.UpdateTaxRate(c.Request.Context(), &service.UpdateTaxRateInput{
		TaxRateID: id,
		Name:      req.Name,
		Rate:      req.Rate,
		SROCode:   req.SROCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rate updated successfully", rate)
}

// Delete handles deleting a tax rate
func (h *TaxRateHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "tax rate ID")
	if !ok {
		return
	}

	if err := h.taxRateService.DeleteTaxRate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
