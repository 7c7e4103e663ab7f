package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name     string
	ParentID *uuid.UUID
}

// CreateCategory creates a new category, optionally nested under a parent
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	if input.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent category")
		}
	}

	category := &entity.Category{
		Name:     input.Name,
		ParentID: input.ParentID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories with pagination and search
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// ListChildren lists the direct children of a category
func (s *CategoryService) ListChildren(ctx context.Context, parentID uuid.UUID) ([]entity.Category, error) {
	parent, err := s.categoryRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.ListChildren(ctx, parentID)
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	Name       *string
	ParentID   *uuid.UUID
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.ParentID != nil {
		if *input.ParentID == category.ID {
			return nil, apperror.NewBadRequestError("Category cannot be its own parent")
		}
		parent, err := s.categoryRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent category")
		}
		category.ParentID = input.ParentID
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
