package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	GetByFBRBranchCode(ctx context.Context, code string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error)
}

// DeviceRepository defines the interface for POS device data operations
type DeviceRepository interface {
	Create(ctx context.Context, device *entity.Device) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Device, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.Device, error)
	Update(ctx context.Context, device *entity.Device) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Device, int64, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]entity.Device, error)
}
