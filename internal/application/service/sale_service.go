package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
	"github.com/retailpk/fbrpos-api/pkg/utils"
)

// SaleService handles persisted sale operations: listing, direct creation,
// FBR sync bookkeeping and stats
type SaleService struct {
	saleRepo     repository.SaleRepository
	branchRepo   repository.BranchRepository
	deviceRepo   repository.DeviceRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	deviceRepo repository.DeviceRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		branchRepo:   branchRepo,
		deviceRepo:   deviceRepo,
		customerRepo: customerRepo,
	}
}

// GetSale retrieves a sale with items, payments and related master data
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales with cursor-based pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sl entity.Sale) string { return sl.ID.String() },
		func(sl entity.Sale) time.Time { return sl.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// SaleItemInput represents one invoice line on a directly submitted sale.
// Amounts arrive already computed by the submitting register.
type SaleItemInput struct {
	ProductID       uuid.UUID
	HSCode          *string
	Quantity        float64
	UnitPrice       float64
	ValueExclTax    float64
	SalesTax        float64
	FurtherTax      float64
	CVT             float64
	WHTax1          float64
	WHTax2          float64
	Discount        float64
	SROItemSerialNo *string
	LineTotal       float64
}

// SalePaymentInput represents one tender line on a directly submitted sale
type SalePaymentInput struct {
	Method  string
	Amount  float64
	Details []byte
}

// CreateSaleInput represents a full sale submitted in one request
type CreateSaleInput struct {
	BranchID    uuid.UUID
	DeviceID    uuid.UUID
	CustomerID  uuid.UUID
	InvoiceType enum.InvoiceType
	BuyerNTN    *string
	BuyerName   *string
	Discount    float64
	Items       []SaleItemInput
	Payments    []SalePaymentInput
}

// CreateSale persists a sale submitted with precomputed line values. Seller
// identity and sale type code come fresh from the branch, never the request.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}
	invoiceType := input.InvoiceType
	if invoiceType == "" {
		invoiceType = enum.InvoiceTypeSale
	}
	if !invoiceType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid invoice type")
	}

	branch, err := s.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	device, err := s.deviceRepo.GetByID(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, apperror.NewNotFoundError("Device")
	}
	if device.BranchID != branch.ID {
		return nil, apperror.NewBadRequestError("Device does not belong to the selected branch")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	now := time.Now()
	sale := &entity.Sale{
		InvoiceNo:    utils.GenerateInvoiceNo(now),
		BranchID:     branch.ID,
		DeviceID:     device.ID,
		CustomerID:   customer.ID,
		InvoiceDate:  now,
		InvoiceType:  invoiceType,
		SaleTypeCode: branch.SaleTypeCode,
		SellerNTN:    branch.NTN,
		SellerSTRN:   branch.STRN,
		BuyerNTN:     input.BuyerNTN,
		BuyerName:    input.BuyerName,
		USIN:         utils.GenerateUSIN(now),
		FBRStatus:    enum.FBRStatusPending,
	}
	if sale.BuyerNTN == nil {
		sale.BuyerNTN = customer.NTN
	}
	if sale.BuyerName == nil {
		name := customer.Name
		sale.BuyerName = &name
	}

	var totalTax, totalDiscount float64
	totalDiscount = input.Discount
	for _, item := range input.Items {
		sale.TotalQty += item.Quantity
		sale.TotalSalesValue += item.ValueExclTax
		totalTax += item.SalesTax + item.FurtherTax + item.CVT + item.WHTax1 + item.WHTax2
		totalDiscount += item.Discount

		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:       item.ProductID,
			HSCode:          item.HSCode,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			ValueExclTax:    item.ValueExclTax,
			SalesTax:        item.SalesTax,
			FurtherTax:      item.FurtherTax,
			CVT:             item.CVT,
			WHTax1:          item.WHTax1,
			WHTax2:          item.WHTax2,
			Discount:        item.Discount,
			SROItemSerialNo: item.SROItemSerialNo,
			LineTotal:       item.LineTotal,
		})
	}
	sale.TotalTax = totalTax
	sale.TotalDiscount = totalDiscount
	sale.TotalAmount = sale.TotalSalesValue + totalTax - totalDiscount

	for _, p := range input.Payments {
		sale.Payments = append(sale.Payments, entity.Payment{
			Method:      p.Method,
			Amount:      p.Amount,
			PaymentDate: now,
			Details:     p.Details,
		})
	}
	if len(sale.Payments) == 0 {
		sale.Payments = append(sale.Payments, entity.Payment{
			Method:      "cash",
			Amount:      sale.TotalAmount,
			PaymentDate: now,
		})
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithDetails(ctx, sale.ID)
}

// SyncFBR records a sync attempt for the sale: the status moves to SENT,
// the attempt counter is bumped and a log row is appended. The actual
// transmission to FBR happens out of band.
func (s *SaleService) SyncFBR(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.FBRStatus.IsFinal() {
		return nil, apperror.NewConflictError("Sale already reported to FBR")
	}

	now := time.Now()
	sale.FBRStatus = enum.FBRStatusSent
	sale.SyncAttempts++
	sale.LastSyncedAt = &now

	log := &entity.InvoiceSyncLog{
		SaleID:      sale.ID,
		Attempt:     sale.SyncAttempts,
		Status:      enum.FBRStatusSent,
		AttemptedAt: now,
	}

	if err := s.saleRepo.RecordSyncAttempt(ctx, sale, log); err != nil {
		return nil, err
	}
	return sale, nil
}

// FBRStatusResult holds a sale's reporting status and its sync history
type FBRStatusResult struct {
	SaleID       uuid.UUID               `json:"sale_id"`
	InvoiceNo    string                  `json:"invoice_no"`
	USIN         string                  `json:"usin"`
	FBRStatus    enum.FBRStatus          `json:"fbr_status"`
	FBRInvoiceNo *string                 `json:"fbr_invoice_no,omitempty"`
	SyncAttempts int                     `json:"sync_attempts"`
	LastSyncedAt *time.Time              `json:"last_synced_at,omitempty"`
	SyncLogs     []entity.InvoiceSyncLog `json:"sync_logs"`
}

// GetFBRStatus returns the sale's reporting status with its sync log history
func (s *SaleService) GetFBRStatus(ctx context.Context, id uuid.UUID) (*FBRStatusResult, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	logs, err := s.saleRepo.GetSyncLogs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &FBRStatusResult{
		SaleID:       sale.ID,
		InvoiceNo:    sale.InvoiceNo,
		USIN:         sale.USIN,
		FBRStatus:    sale.FBRStatus,
		FBRInvoiceNo: sale.FBRInvoiceNo,
		SyncAttempts: sale.SyncAttempts,
		LastSyncedAt: sale.LastSyncedAt,
		SyncLogs:     logs,
	}, nil
}

// GetDailyStats returns per-day sale aggregates for the last N days
func (s *SaleService) GetDailyStats(ctx context.Context, days int) ([]repository.DailySalesStat, error) {
	if days < 1 {
		days = 30
	}
	return s.saleRepo.GetDailyStats(ctx, days)
}

// GetMonthlyStats returns per-month sale aggregates for the last N months
func (s *SaleService) GetMonthlyStats(ctx context.Context, months int) ([]repository.MonthlySalesStat, error) {
	if months < 1 {
		months = 12
	}
	return s.saleRepo.GetMonthlyStats(ctx, months)
}
