package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListWithCursor(ctx context.Context, params *ProductCursorFilterParams) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	TaxRateID  *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ProductCursorFilterParams contains cursor-based filtering parameters for product queries
type ProductCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	CategoryID *uuid.UUID
	TaxRateID  *uuid.UUID
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
	// ListChildren returns the direct children of a category
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]entity.Category, error)
}

// TaxRateRepository defines the interface for tax rate data operations
type TaxRateRepository interface {
	Create(ctx context.Context, rate *entity.TaxRate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRate, error)
	Update(ctx context.Context, rate *entity.TaxRate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.TaxRate, int64, error)
}
