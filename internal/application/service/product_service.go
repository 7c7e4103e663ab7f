package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
	"github.com/retailpk/fbrpos-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	taxRateRepo  repository.TaxRateRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	taxRateRepo repository.TaxRateRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		taxRateRepo:  taxRateRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	CategoryID *uuid.UUID
	TaxRateID  *uuid.UUID
	Code       string
	Name       string
	Price      float64
	HSCode     *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	// Auto-generate code if not provided
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	// Check if code already exists
	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}
	if input.TaxRateID != nil {
		rate, err := s.taxRateRepo.GetByID(ctx, *input.TaxRateID)
		if err != nil {
			return nil, err
		}
		if rate == nil {
			return nil, apperror.NewNotFoundError("Tax rate")
		}
	}

	product := &entity.Product{
		CategoryID: input.CategoryID,
		TaxRateID:  input.TaxRateID,
		Code:       code,
		Name:       input.Name,
		Price:      input.Price,
		HSCode:     input.HSCode,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListProductsWithCursor lists products with cursor-based pagination
func (s *ProductService) ListProductsWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Product], error) {
	products, err := s.productRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(products, params.Cursor.Limit,
		func(p entity.Product) string { return p.ID.String() },
		func(p entity.Product) time.Time { return p.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductID  uuid.UUID
	CategoryID *uuid.UUID
	TaxRateID  *uuid.UUID
	Name       *string
	Code       *string
	Price      *float64
	HSCode     *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Code != nil && *input.Code != product.Code {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.HSCode != nil {
		product.HSCode = input.HSCode
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.TaxRateID != nil {
		rate, err := s.taxRateRepo.GetByID(ctx, *input.TaxRateID)
		if err != nil {
			return nil, err
		}
		if rate == nil {
			return nil, apperror.NewNotFoundError("Tax rate")
		}
		product.TaxRateID = input.TaxRateID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
