package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	domainRepo "github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// Branch and device rows change rarely but are read on most POS requests,
// so lookups go through a small TTL cache. Checkout deliberately uses the
// uncached repositories: invoice seller fields must be authoritative.

type cacheEntry[T any] struct {
	value   *T
	expires time.Time
}

type cachedBranchRepository struct {
	inner domainRepo.BranchRepository
	ttl   time.Duration

	mu    sync.RWMutex
	byID  map[uuid.UUID]cacheEntry[entity.Branch]
}

// NewCachedBranchRepository wraps a branch repository with a read-through
// TTL cache on ID lookups. Writes invalidate the cached row.
func NewCachedBranchRepository(inner domainRepo.BranchRepository, ttl time.Duration) domainRepo.BranchRepository {
	return &cachedBranchRepository{
		inner: inner,
		ttl:   ttl,
		byID:  make(map[uuid.UUID]cacheEntry[entity.Branch]),
	}
}

func (r *cachedBranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	r.mu.RLock()
	entry, ok := r.byID[id]
	r.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.value, nil
	}

	branch, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch != nil {
		r.mu.Lock()
		r.byID[id] = cacheEntry[entity.Branch]{value: branch, expires: time.Now().Add(r.ttl)}
		r.mu.Unlock()
	}
	return branch, nil
}

func (r *cachedBranchRepository) invalidate(id uuid.UUID) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

func (r *cachedBranchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	return r.inner.Create(ctx, branch)
}

func (r *cachedBranchRepository) GetByFBRBranchCode(ctx context.Context, code string) (*entity.Branch, error) {
	return r.inner.GetByFBRBranchCode(ctx, code)
}

func (r *cachedBranchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	if err := r.inner.Update(ctx, branch); err != nil {
		return err
	}
	r.invalidate(branch.ID)
	return nil
}

func (r *cachedBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *cachedBranchRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error) {
	return r.inner.List(ctx, params, search)
}

type cachedDeviceRepository struct {
	inner domainRepo.DeviceRepository
	ttl   time.Duration

	mu   sync.RWMutex
	byID map[uuid.UUID]cacheEntry[entity.Device]
}

// NewCachedDeviceRepository wraps a device repository with a read-through
// TTL cache on ID lookups. Writes invalidate the cached row.
func NewCachedDeviceRepository(inner domainRepo.DeviceRepository, ttl time.Duration) domainRepo.DeviceRepository {
	return &cachedDeviceRepository{
		inner: inner,
		ttl:   ttl,
		byID:  make(map[uuid.UUID]cacheEntry[entity.Device]),
	}
}

func (r *cachedDeviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	r.mu.RLock()
	entry, ok := r.byID[id]
	r.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.value, nil
	}

	device, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device != nil {
		r.mu.Lock()
		r.byID[id] = cacheEntry[entity.Device]{value: device, expires: time.Now().Add(r.ttl)}
		r.mu.Unlock()
	}
	return device, nil
}

func (r *cachedDeviceRepository) invalidate(id uuid.UUID) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

func (r *cachedDeviceRepository) Create(ctx context.Context, device *entity.Device) error {
	return r.inner.Create(ctx, device)
}

func (r *cachedDeviceRepository) GetByIdentifier(ctx context.Context, identifier string) (*entity.Device, error) {
	return r.inner.GetByIdentifier(ctx, identifier)
}

func (r *cachedDeviceRepository) Update(ctx context.Context, device *entity.Device) error {
	if err := r.inner.Update(ctx, device); err != nil {
		return err
	}
	r.invalidate(device.ID)
	return nil
}

func (r *cachedDeviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *cachedDeviceRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Device, int64, error) {
	return r.inner.List(ctx, params, search)
}

func (r *cachedDeviceRepository) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]entity.Device, error) {
	return r.inner.ListByBranch(ctx, branchID)
}
