package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a finalized invoice as reported (or pending report) to FBR
type Sale struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo       string           `gorm:"size:100;unique;not null" json:"invoice_no"`
	BranchID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	DeviceID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"device_id"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	InvoiceDate     time.Time        `gorm:"not null;index" json:"invoice_date"`
	InvoiceType     enum.InvoiceType `gorm:"size:20;default:'SALE'" json:"invoice_type"`
	SaleTypeCode    string           `gorm:"size:20" json:"sale_type_code"`
	SellerNTN       string           `gorm:"size:20;column:seller_ntn" json:"seller_ntn"`
	SellerSTRN      *string          `gorm:"size:20;column:seller_strn" json:"seller_strn,omitempty"`
	BuyerNTN        *string          `gorm:"size:20;column:buyer_ntn" json:"buyer_ntn,omitempty"`
	BuyerName       *string          `gorm:"size:255" json:"buyer_name,omitempty"`
	TotalQty        float64          `gorm:"type:numeric(14,2);default:0" json:"total_qty"`
	TotalSalesValue float64          `gorm:"type:numeric(14,2);default:0" json:"total_sales_value"`
	TotalTax        float64          `gorm:"type:numeric(14,2);default:0" json:"total_tax"`
	TotalDiscount   float64          `gorm:"type:numeric(14,2);default:0" json:"total_discount"`
	TotalAmount     float64          `gorm:"type:numeric(14,2);default:0" json:"total_amount"`
	USIN            string           `gorm:"size:100;unique;not null;column:usin" json:"usin"`
	FBRInvoiceNo    *string          `gorm:"size:100;column:fbr_invoice_no" json:"fbr_invoice_no,omitempty"`
	FBRStatus       enum.FBRStatus   `gorm:"size:20;default:'PENDING';index;column:fbr_status" json:"fbr_status"`
	SyncAttempts    int              `gorm:"default:0" json:"sync_attempts"`
	LastSyncedAt    *time.Time       `json:"last_synced_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Branch   *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Device   *Device    `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
	SyncLogs []InvoiceSyncLog `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents an invoice line with the tax split as computed at the
// register. Values are snapshots; later product edits never touch them.
type SaleItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	HSCode          *string        `gorm:"size:20" json:"hs_code,omitempty"`
	Quantity        float64        `gorm:"type:numeric(14,2);not null" json:"quantity"`
	UnitPrice       float64        `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	ValueExclTax    float64        `gorm:"type:numeric(14,2);default:0" json:"value_excl_tax"`
	SalesTax        float64        `gorm:"type:numeric(14,2);default:0" json:"sales_tax"`
	FurtherTax      float64        `gorm:"type:numeric(14,2);default:0" json:"further_tax"`
	CVT             float64        `gorm:"type:numeric(14,2);default:0;column:c_v_t" json:"c_v_t"`
	WHTax1          float64        `gorm:"type:numeric(14,2);default:0;column:w_h_tax_1" json:"w_h_tax_1"`
	WHTax2          float64        `gorm:"type:numeric(14,2);default:0;column:w_h_tax_2" json:"w_h_tax_2"`
	Discount        float64        `gorm:"type:numeric(14,2);default:0" json:"discount"`
	SROItemSerialNo *string        `gorm:"size:50;column:sro_item_serial_no" json:"sro_item_serial_no,omitempty"`
	LineTotal       float64        `gorm:"type:numeric(14,2);default:0" json:"line_total"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale     `gorm:"foreignKey:SaleID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Payment represents a tender line against a sale
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Method      string          `gorm:"size:50;not null" json:"method"`
	Amount      float64         `gorm:"type:numeric(14,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Details     json.RawMessage `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// InvoiceSyncLog records one FBR sync attempt for a sale
type InvoiceSyncLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	Attempt     int            `gorm:"not null" json:"attempt"`
	Status      enum.FBRStatus `gorm:"size:20;not null" json:"status"`
	Response    *string        `gorm:"type:text" json:"response,omitempty"`
	AttemptedAt time.Time      `gorm:"not null" json:"attempted_at"`
	CreatedAt   time.Time      `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sync log entry
func (l *InvoiceSyncLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceSyncLog model
func (InvoiceSyncLog) TableName() string {
	return "invoice_sync_logs"
}
