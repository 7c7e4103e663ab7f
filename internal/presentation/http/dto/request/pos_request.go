package request

import "github.com/google/uuid"

// AddCartItemRequest adds a product to the session cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// SetQuantityRequest sets a cart line's quantity
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetDiscountRequest sets a cart line's discount
type SetDiscountRequest struct {
	Discount float64 `json:"discount" binding:"min=0"`
}

// ToggleTaxRequest flips one tax component on a cart line
type ToggleTaxRequest struct {
	Component string `json:"component" binding:"required,oneof=salesTax furtherTax cvt whTax1 whTax2"`
}

// UpdateSelectionRequest updates the session's register selections
type UpdateSelectionRequest struct {
	CustomerID  *uuid.UUID `json:"customer_id"`
	BranchID    *uuid.UUID `json:"branch_id"`
	DeviceID    *uuid.UUID `json:"device_id"`
	InvoiceType *string    `json:"invoice_type" binding:"omitempty,oneof=SALE PURCHASE DEBIT_NOTE CREDIT_NOTE"`
	BuyerNTN    *string    `json:"buyer_ntn" binding:"omitempty,max=20"`
	BuyerName   *string    `json:"buyer_name" binding:"omitempty,max=255"`
	Discount    *float64   `json:"discount" binding:"omitempty,min=0"`
}

// AddCartPaymentRequest adds a tender line to the session cart
type AddCartPaymentRequest struct {
	Method string  `json:"method" binding:"required,max=50"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
