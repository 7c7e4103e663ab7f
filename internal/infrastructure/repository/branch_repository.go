package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	domainRepo "github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) domainRepo.BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) GetByFBRBranchCode(ctx context.Context, code string) (*entity.Branch, error) {
	var branch entity.Branch
	err := r.db.WithContext(ctx).First(&branch, "fbr_branch_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branch, err
}

func (r *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Branch{}, "id = ?", id).Error
}

func (r *branchRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error) {
	var branches []entity.Branch
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Branch{})

	if search != "" {
		query = query.Where("name ILIKE ? OR fbr_branch_code ILIKE ? OR city ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&branches).Error

	return branches, total, err
}

type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) domainRepo.DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Create(ctx context.Context, device *entity.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

func (r *deviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	var device entity.Device
	err := r.db.WithContext(ctx).Preload("Branch").First(&device, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &device, err
}

func (r *deviceRepository) GetByIdentifier(ctx context.Context, identifier string) (*entity.Device, error) {
	var device entity.Device
	err := r.db.WithContext(ctx).First(&device, "device_identifier = ?", identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &device, err
}

func (r *deviceRepository) Update(ctx context.Context, device *entity.Device) error {
	return r.db.WithContext(ctx).Save(device).Error
}

func (r *deviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Device{}, "id = ?", id).Error
}

func (r *deviceRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Device, int64, error) {
	var devices []entity.Device
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Device{})

	if search != "" {
		query = query.Where("name ILIKE ? OR device_identifier ILIKE ? OR fbr_pos_reg_no ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Branch").
		Order("name ASC").
		Find(&devices).Error

	return devices, total, err
}

func (r *deviceRepository) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]entity.Device, error) {
	var devices []entity.Device
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&devices).Error
	return devices, err
}
