package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	domainRepo "github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create persists the sale with its items and payments in one transaction
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(sale).Error
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByUSIN(ctx context.Context, usin string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "usin = ?", usin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		Preload("Payments").
		Preload("Branch").Preload("Device").Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) applyFilters(query *gorm.DB, search string, branchID, deviceID, customerID *uuid.UUID, fbrStatus *enum.FBRStatus, startDate, endDate *time.Time) *gorm.DB {
	if search != "" {
		query = query.Where("invoice_no ILIKE ? OR usin ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	if deviceID != nil {
		query = query.Where("device_id = ?", *deviceID)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if fbrStatus != nil {
		query = query.Where("fbr_status = ?", *fbrStatus)
	}
	if startDate != nil {
		query = query.Where("invoice_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("invoice_date <= ?", *endDate)
	}
	return query
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})
	query = r.filterFromParams(query, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "invoice_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Branch").Preload("Device").Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) filterFromParams(query *gorm.DB, params *domainRepo.SaleFilterParams) *gorm.DB {
	return r.applyFilters(query, params.Search, params.BranchID, params.DeviceID, params.CustomerID, params.FBRStatus, params.StartDate, params.EndDate)
}

// ListWithCursor returns sales using cursor-based pagination
func (r *saleRepository) ListWithCursor(ctx context.Context, params *domainRepo.SaleCursorFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	query = r.applyFilters(query, params.Search, params.BranchID, params.DeviceID, nil, params.FBRStatus, params.StartDate, params.EndDate)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Branch").Preload("Device").Preload("Customer").
		Order("created_at ASC, id ASC").
		Find(&sales).Error

	return sales, err
}

// ListForExport returns all matching sales, ignoring pagination
func (r *saleRepository) ListForExport(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	query := r.db.WithContext(ctx).Model(&entity.Sale{})
	query = r.filterFromParams(query, params)

	err := query.
		Preload("Branch").Preload("Device").Preload("Customer").
		Order("invoice_date ASC").
		Find(&sales).Error

	return sales, err
}

// RecordSyncAttempt updates the sale's FBR fields and appends the log row atomically
func (r *saleRepository) RecordSyncAttempt(ctx context.Context, sale *entity.Sale, log *entity.InvoiceSyncLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Sale{}).
			Where("id = ?", sale.ID).
			Updates(map[string]interface{}{
				"fbr_status":     sale.FBRStatus,
				"fbr_invoice_no": sale.FBRInvoiceNo,
				"sync_attempts":  sale.SyncAttempts,
				"last_synced_at": sale.LastSyncedAt,
			}).Error; err != nil {
			return err
		}
		return tx.Create(log).Error
	})
}

func (r *saleRepository) GetSyncLogs(ctx context.Context, saleID uuid.UUID) ([]entity.InvoiceSyncLog, error) {
	var logs []entity.InvoiceSyncLog
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("attempt ASC").
		Find(&logs).Error
	return logs, err
}

// GetDailyStats returns per-day aggregates for the last N days
func (r *saleRepository) GetDailyStats(ctx context.Context, days int) ([]domainRepo.DailySalesStat, error) {
	var stats []domainRepo.DailySalesStat
	since := time.Now().AddDate(0, 0, -days)

	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("DATE(invoice_date) AS date, COUNT(*) AS sale_count, COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(total_tax), 0) AS tax").
		Where("invoice_date >= ?", since).
		Group("DATE(invoice_date)").
		Order("date ASC").
		Scan(&stats).Error

	return stats, err
}

// GetMonthlyStats returns per-month aggregates for the last N months
func (r *saleRepository) GetMonthlyStats(ctx context.Context, months int) ([]domainRepo.MonthlySalesStat, error) {
	var stats []domainRepo.MonthlySalesStat
	since := time.Now().AddDate(0, -months, 0)

	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("EXTRACT(YEAR FROM invoice_date)::int AS year, EXTRACT(MONTH FROM invoice_date)::int AS month, COUNT(*) AS sale_count, COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(total_tax), 0) AS tax").
		Where("invoice_date >= ?", since).
		Group("EXTRACT(YEAR FROM invoice_date), EXTRACT(MONTH FROM invoice_date)").
		Order("year ASC, month ASC").
		Scan(&stats).Error

	return stats, err
}
