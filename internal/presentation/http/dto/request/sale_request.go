package request

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SaleItemRequest represents one precomputed invoice line
type SaleItemRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	HSCode          *string   `json:"hs_code" binding:"omitempty,max=20"`
	Quantity        float64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice       float64   `json:"unit_price" binding:"min=0"`
	ValueExclTax    float64   `json:"value_excl_tax"`
	SalesTax        float64   `json:"sales_tax"`
	FurtherTax      float64   `json:"further_tax"`
	CVT             float64   `json:"c_v_t"`
	WHTax1          float64   `json:"w_h_tax_1"`
	WHTax2          float64   `json:"w_h_tax_2"`
	Discount        float64   `json:"discount"`
	SROItemSerialNo *string   `json:"sro_item_serial_no" binding:"omitempty,max=50"`
	LineTotal       float64   `json:"line_total"`
}

// SalePaymentRequest represents one tender line
type SalePaymentRequest struct {
	Method  string          `json:"method" binding:"required,max=50"`
	Amount  float64         `json:"amount" binding:"required"`
	Details json.RawMessage `json:"details"`
}

// CreateSaleRequest represents a full sale submission
type CreateSaleRequest struct {
	BranchID    uuid.UUID            `json:"branch_id" binding:"required"`
	DeviceID    uuid.UUID            `json:"device_id" binding:"required"`
	CustomerID  uuid.UUID            `json:"customer_id" binding:"required"`
	InvoiceType string               `json:"invoice_type" binding:"omitempty,oneof=SALE PURCHASE DEBIT_NOTE CREDIT_NOTE"`
	BuyerNTN    *string              `json:"buyer_ntn" binding:"omitempty,max=20"`
	BuyerName   *string              `json:"buyer_name" binding:"omitempty,max=255"`
	Discount    float64              `json:"discount"`
	Items       []SaleItemRequest    `json:"items" binding:"required,min=1,dive"`
	Payments    []SalePaymentRequest `json:"payments" binding:"omitempty,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search     string `form:"search"`
	BranchID   string `form:"branch_id"`
	DeviceID   string `form:"device_id"`
	CustomerID string `form:"customer_id"`
	FBRStatus  string `form:"fbr_status"`
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`   // YYYY-MM-DD
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}
