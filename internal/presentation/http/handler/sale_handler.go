package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailpk/fbrpos-api/internal/application/service"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/request"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/response"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService   *service.SaleService
	exportService *service.ExportService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, exportService *service.ExportService) *SaleHandler {
	return &SaleHandler{saleService: saleService, exportService: exportService}
}

// saleFilterFromRequest builds filter params from the bound query values.
// The end date is inclusive: it covers the whole day.
func saleFilterFromRequest(filter *request.SaleFilterRequest) (*repository.SaleFilterParams, error) {
	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		BranchID:   parseUUIDQuery(filter.BranchID),
		DeviceID:   parseUUIDQuery(filter.DeviceID),
		CustomerID: parseUUIDQuery(filter.CustomerID),
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.FBRStatus != "" {
		status := enum.FBRStatus(filter.FBRStatus)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid fbr_status %q", filter.FBRStatus)
		}
		params.FBRStatus = &status
	}

	if filter.StartDate != "" {
		start, err := time.Parse(dateLayout, filter.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date %q", filter.StartDate)
		}
		params.StartDate = &start
	}

	if filter.EndDate != "" {
		end, err := time.Parse(dateLayout, filter.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date %q", filter.EndDate)
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		params.EndDate = &end
	}

	return params, nil
}

// List handles listing sales (supports both page-based and cursor-based pagination)
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := saleFilterFromRequest(&filter)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, &filter, params)
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// listWithCursor handles listing sales with cursor-based pagination
func (h *SaleHandler) listWithCursor(c *gin.Context, filter *request.SaleFilterRequest, params *repository.SaleFilterParams) {
	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	cursor := c.Query("cursor")
	direction := c.DefaultQuery("direction", "next")

	cursorParams := &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Search:    params.Search,
		BranchID:  params.BranchID,
		DeviceID:  params.DeviceID,
		FBRStatus: params.FBRStatus,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	}

	result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), cursorParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with its items, payments and parties
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "sale ID")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Create handles submitting a complete sale with precomputed line values
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateSaleInput{
		BranchID:    req.BranchID,
		DeviceID:    req.DeviceID,
		CustomerID:  req.CustomerID,
		InvoiceType: enum.InvoiceType(req.InvoiceType),
		BuyerNTN:    req.BuyerNTN,
		BuyerName:   req.BuyerName,
		Discount:    req.Discount,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.SaleItemInput{
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
	for _, p := range req.Payments {
		input.Payments = append(input.Payments, service.SalePaymentInput{
			Method:  p.Method,
			Amount:  p.Amount,
			Details: p.Details,
		})
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// SyncFBR handles marking a sale as submitted to FBR and recording the attempt
func (h *SaleHandler) SyncFBR(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "sale ID")
	if !ok {
		return
	}

	sale, err := h.saleService.SyncFBR(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale queued for FBR sync", sale)
}

// GetFBRStatus handles getting a sale's FBR sync status and attempt history
func (h *SaleHandler) GetFBRStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "sale ID")
	if !ok {
		return
	}

	result, err := h.saleService.GetFBRStatus(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "FBR status retrieved successfully", result)
}

// GetDailyStats handles daily sales aggregates
func (h *SaleHandler) GetDailyStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := h.saleService.GetDailyStats(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales stats retrieved successfully", stats)
}

// GetMonthlyStats handles monthly sales aggregates
func (h *SaleHandler) GetMonthlyStats(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))

	stats, err := h.saleService.GetMonthlyStats(c.Request.Context(), months)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly sales stats retrieved successfully", stats)
}

// Export streams the filtered sales as an XLSX attachment
func (h *SaleHandler) Export(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := saleFilterFromRequest(&filter)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := h.exportService.ExportSalesXLSX(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
