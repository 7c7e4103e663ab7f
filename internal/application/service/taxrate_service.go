package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// TaxRateService handles tax rate operations
type TaxRateService struct {
	taxRateRepo repository.TaxRateRepository
}

// NewTaxRateService creates a new tax rate service
func NewTaxRateService(taxRateRepo repository.TaxRateRepository) *TaxRateService {
	return &TaxRateService{taxRateRepo: taxRateRepo}
}

// CreateTaxRateInput represents the create tax rate input
type CreateTaxRateInput struct {
	Name    string
	Rate    float64
	SROCode *string
}

// CreateTaxRate creates a new tax rate
func (s *TaxRateService) CreateTaxRate(ctx context.Context, input *CreateTaxRateInput) (*entity.TaxRate, error) {
	if input.Rate < 0 {
		return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
	}

	rate := &entity.TaxRate{
		Name:    input.Name,
		Rate:    input.Rate,
		SROCode: input.SROCode,
	}

	if err := s.taxRateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// GetTaxRate retrieves a tax rate by ID
func (s *TaxRateService) GetTaxRate(ctx context.Context, id uuid.UUID) (*entity.TaxRate, error) {
	rate, err := s.taxRateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperror.NewNotFoundError("Tax rate")
	}
	return rate, nil
}

// ListTaxRates lists tax rates with pagination and search
func (s *TaxRateService) ListTaxRates(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.TaxRate], error) {
	rates, total, err := s.taxRateRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(rates, pag), nil
}

// UpdateTaxRateInput represents the update tax rate input
type UpdateTaxRateInput struct {
	TaxRateID uuid.UUID
	Name      *string
	Rate      *float64
	SROCode   *string
}

// UpdateTaxRate updates a tax rate
func (s *TaxRateService) UpdateTaxRate(ctx context.Context, input *UpdateTaxRateInput) (*entity.TaxRate, error) {
	rate, err := s.taxRateRepo.GetByID(ctx, input.TaxRateID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperror.NewNotFoundError("Tax rate")
	}

	if input.Name != nil {
		rate.Name = *input.Name
	}
	if input.Rate != nil {
		if *input.Rate < 0 {
			return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
		}
		rate.Rate = *input.Rate
	}
	if input.SROCode != nil {
		rate.SROCode = input.SROCode
	}

	if err := s.taxRateRepo.Update(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// DeleteTaxRate deletes a tax rate
func (s *TaxRateService) DeleteTaxRate(ctx context.Context, id uuid.UUID) error {
	rate, err := s.taxRateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return apperror.NewNotFoundError("Tax rate")
	}
	return s.taxRateRepo.Delete(ctx, id)
}
