package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	NTN     *string
	CNIC    *string
	Phone   *string
	Address *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.NTN != nil && *input.NTN != "" {
		existing, err := s.customerRepo.GetByNTN(ctx, *input.NTN)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Customer with this NTN already exists")
		}
	}

	customer := &entity.Customer{
		Name:    input.Name,
		NTN:     input.NTN,
		CNIC:    input.CNIC,
		Phone:   input.Phone,
		Address: input.Address,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination and search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	CustomerID uuid.UUID
	Name       *string
	NTN        *string
	CNIC       *string
	Phone      *string
	Address    *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.NTN != nil && *input.NTN != "" {
		existing, err := s.customerRepo.GetByNTN(ctx, *input.NTN)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, apperror.NewConflictError("Customer with this NTN already exists")
		}
		customer.NTN = input.NTN
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.CNIC != nil {
		customer.CNIC = input.CNIC
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
