package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists the sale together with its items and payments in one transaction
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error)
	GetByUSIN(ctx context.Context, usin string) (*entity.Sale, error)
	// GetWithDetails loads the sale with items, payments, branch, device and customer
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// ListForExport returns all sales matching the filter without pagination
	ListForExport(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, error)
	// RecordSyncAttempt updates the sale's FBR fields and appends a sync log row atomically
	RecordSyncAttempt(ctx context.Context, sale *entity.Sale, log *entity.InvoiceSyncLog) error
	GetSyncLogs(ctx context.Context, saleID uuid.UUID) ([]entity.InvoiceSyncLog, error)
	GetDailyStats(ctx context.Context, days int) ([]DailySalesStat, error)
	GetMonthlyStats(ctx context.Context, months int) ([]MonthlySalesStat, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	BranchID   *uuid.UUID
	DeviceID   *uuid.UUID
	CustomerID *uuid.UUID
	FBRStatus  *enum.FBRStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Search    string
	BranchID  *uuid.UUID
	DeviceID  *uuid.UUID
	FBRStatus *enum.FBRStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// DailySalesStat represents aggregated sales for a single day
type DailySalesStat struct {
	Date      time.Time `json:"date"`
	SaleCount int       `json:"sale_count"`
	Revenue   float64   `json:"revenue"`
	Tax       float64   `json:"tax"`
}

// MonthlySalesStat represents aggregated sales for a calendar month
type MonthlySalesStat struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	SaleCount int     `json:"sale_count"`
	Revenue   float64 `json:"revenue"`
	Tax       float64 `json:"tax"`
}
