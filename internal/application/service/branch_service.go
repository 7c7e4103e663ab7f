package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// BranchService handles branch and POS device operations
type BranchService struct {
	branchRepo repository.BranchRepository
	deviceRepo repository.DeviceRepository
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository, deviceRepo repository.DeviceRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo, deviceRepo: deviceRepo}
}

// CreateBranchInput represents the create branch input
type CreateBranchInput struct {
	Name          string
	Address       *string
	City          *string
	Province      *string
	NTN           string
	STRN          *string
	FBRBranchCode string
	SaleTypeCode  string
}

// CreateBranch creates a new branch
func (s *BranchService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	existing, err := s.branchRepo.GetByFBRBranchCode(ctx, input.FBRBranchCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Branch with this FBR branch code already exists")
	}

	branch := &entity.Branch{
		Name:          input.Name,
		Address:       input.Address,
		City:          input.City,
		Province:      input.Province,
		NTN:           input.NTN,
		STRN:          input.STRN,
		FBRBranchCode: input.FBRBranchCode,
	}
	if input.SaleTypeCode != "" {
		branch.SaleTypeCode = input.SaleTypeCode
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// GetBranch retrieves a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// ListBranches lists branches with pagination and search
func (s *BranchService) ListBranches(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Branch], error) {
	branches, total, err := s.branchRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(branches, pag), nil
}

// UpdateBranchInput represents the update branch input
type UpdateBranchInput struct {
	BranchID     uuid.UUID
	Name         *string
	Address      *string
	City         *string
	Province     *string
	NTN          *string
	STRN         *string
	SaleTypeCode *string
}

// UpdateBranch updates a branch
func (s *BranchService) UpdateBranch(ctx context.Context, input *UpdateBranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if input.Name != nil {
		branch.Name = *input.Name
	}
	if input.Address != nil {
		branch.Address = input.Address
	}
	if input.City != nil {
		branch.City = input.City
	}
	if input.Province != nil {
		branch.Province = input.Province
	}
	if input.NTN != nil {
		branch.NTN = *input.NTN
	}
	if input.STRN != nil {
		branch.STRN = input.STRN
	}
	if input.SaleTypeCode != nil {
		branch.SaleTypeCode = *input.SaleTypeCode
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch deletes a branch
func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	return s.branchRepo.Delete(ctx, id)
}

// CreateDeviceInput represents the create device input
type CreateDeviceInput struct {
	BranchID         uuid.UUID
	Name             string
	DeviceIdentifier string
	FBRPosRegNo      string
}

// CreateDevice registers a new POS device under a branch
func (s *BranchService) CreateDevice(ctx context.Context, input *CreateDeviceInput) (*entity.Device, error) {
	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	existing, err := s.deviceRepo.GetByIdentifier(ctx, input.DeviceIdentifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Device with this identifier already exists")
	}

	device := &entity.Device{
		BranchID:         input.BranchID,
		Name:             input.Name,
		DeviceIdentifier: input.DeviceIdentifier,
		FBRPosRegNo:      input.FBRPosRegNo,
	}

	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// GetDevice retrieves a device by ID
func (s *BranchService) GetDevice(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, apperror.NewNotFoundError("Device")
	}
	return device, nil
}

// ListDevices lists devices with pagination and search
func (s *BranchService) ListDevices(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Device], error) {
	devices, total, err := s.deviceRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(devices, pag), nil
}

// ListBranchDevices lists the devices registered under a branch
func (s *BranchService) ListBranchDevices(ctx context.Context, branchID uuid.UUID) ([]entity.Device, error) {
	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return s.deviceRepo.ListByBranch(ctx, branchID)
}

// UpdateDeviceInput represents the update device input
type UpdateDeviceInput struct {
	DeviceID    uuid.UUID
	Name        *string
	FBRPosRegNo *string
}

// UpdateDevice updates a device
func (s *BranchService) UpdateDevice(ctx context.Context, input *UpdateDeviceInput) (*entity.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, apperror.NewNotFoundError("Device")
	}

	if input.Name != nil {
		device.Name = *input.Name
	}
	if input.FBRPosRegNo != nil {
		device.FBRPosRegNo = *input.FBRPosRegNo
	}

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// DeleteDevice deletes a device
func (s *BranchService) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if device == nil {
		return apperror.NewNotFoundError("Device")
	}
	return s.deviceRepo.Delete(ctx, id)
}
