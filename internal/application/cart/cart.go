package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
)

var (
	// ErrLineNotFound is returned when an operation targets a product not in the cart
	ErrLineNotFound = errors.New("product not in cart")
	// ErrPaymentIndex is returned when a payment index is out of range
	ErrPaymentIndex = errors.New("payment index out of range")
	// ErrUnknownComponent is returned for an unrecognized tax component name
	ErrUnknownComponent = errors.New("unknown tax component")
)

// LineItem is one product line in the cart. Price, tax rate and SRO serial
// are snapshotted from the product at add time.
type LineItem struct {
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductCode     string    `json:"product_code"`
	HSCode          *string   `json:"hs_code,omitempty"`
	SROItemSerialNo *string   `json:"sro_item_serial_no,omitempty"`
	UnitPrice       float64   `json:"unit_price"`
	Quantity        int       `json:"quantity"`
	Discount        float64   `json:"discount"`
	TaxRate         *float64  `json:"tax_rate,omitempty"`
	Toggles         Toggles   `json:"toggles"`
	Subtotal        float64   `json:"subtotal"`
	Taxes           Amounts   `json:"taxes"`
	Total           float64   `json:"total"`
}

func (l *LineItem) recompute() {
	l.Subtotal = l.UnitPrice * float64(l.Quantity)
	l.Taxes = Compute(l.Subtotal, l.TaxRate, l.Toggles)
	// No clamping: a discount above the taxed value goes negative
	l.Total = l.Subtotal + l.Taxes.Sum() - l.Discount
}

// PaymentEntry is a tender line entered at the register
type PaymentEntry struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// Cart is the in-progress sale being assembled at the register. All methods
// are synchronous and touch no I/O; callers serialize access.
type Cart struct {
	Lines       []LineItem       `json:"lines"`
	Discount    float64          `json:"discount"`
	CustomerID  *uuid.UUID       `json:"customer_id,omitempty"`
	BranchID    *uuid.UUID       `json:"branch_id,omitempty"`
	DeviceID    *uuid.UUID       `json:"device_id,omitempty"`
	InvoiceType enum.InvoiceType `json:"invoice_type"`
	BuyerNTN    *string          `json:"buyer_ntn,omitempty"`
	BuyerName   *string          `json:"buyer_name,omitempty"`
	Payments    []PaymentEntry   `json:"payments"`
}

// New returns an empty cart ready for a sale
func New() *Cart {
	return &Cart{InvoiceType: enum.InvoiceTypeSale}
}

func (c *Cart) find(productID uuid.UUID) *LineItem {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// AddItem adds one unit of the product. An existing line gains quantity and
// keeps its toggles; a new line starts at quantity 1 with all taxes enabled.
func (c *Cart) AddItem(p *entity.Product) {
	if line := c.find(p.ID); line != nil {
		line.Quantity++
		line.recompute()
		return
	}

	line := LineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		ProductCode: p.Code,
		HSCode:      p.HSCode,
		UnitPrice:   p.Price,
		Quantity:    1,
		TaxRate:     p.TaxRatePercent(),
		Toggles:     AllEnabled(),
	}
	if p.TaxRate != nil {
		line.SROItemSerialNo = p.TaxRate.SROCode
	}
	line.recompute()
	c.Lines = append(c.Lines, line)
}

// SetQuantity sets a line's quantity; zero or less removes the line
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	line.Quantity = quantity
	line.recompute()
	return nil
}

// SetLineDiscount sets the flat discount on one line
func (c *Cart) SetLineDiscount(productID uuid.UUID, discount float64) error {
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	line.Discount = discount
	line.recompute()
	return nil
}

// ToggleTax flips one tax component on a line and recomputes it
func (c *Cart) ToggleTax(productID uuid.UUID, component Component) error {
	if !component.IsValid() {
		return ErrUnknownComponent
	}
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	line.Toggles.Flip(component)
	line.recompute()
	return nil
}

// RemoveItem removes a product line from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// AddPayment appends a tender line
func (c *Cart) AddPayment(method string, amount float64) {
	c.Payments = append(c.Payments, PaymentEntry{Method: method, Amount: amount})
}

// RemovePayment removes the tender line at the given index
func (c *Cart) RemovePayment(index int) error {
	if index < 0 || index >= len(c.Payments) {
		return ErrPaymentIndex
	}
	c.Payments = append(c.Payments[:index], c.Payments[index+1:]...)
	return nil
}

// Clear resets the sale in progress: lines, cart discount, customer, buyer
// overrides and payments. Branch, device and invoice type selections persist
// for the next sale at the same register.
func (c *Cart) Clear() {
	c.Lines = nil
	c.Discount = 0
	c.CustomerID = nil
	c.BuyerNTN = nil
	c.BuyerName = nil
	c.Payments = nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal returns the sum of line net values (before tax and discounts)
func (c *Cart) Subtotal() float64 {
	var sum float64
	for i := range c.Lines {
		sum += c.Lines[i].Subtotal
	}
	return sum
}

// TaxTotals returns the per-component tax totals across all lines
func (c *Cart) TaxTotals() Amounts {
	var totals Amounts
	for i := range c.Lines {
		totals = totals.Add(c.Lines[i].Taxes)
	}
	return totals
}

// TotalDiscount returns line discounts plus the cart-level discount
func (c *Cart) TotalDiscount() float64 {
	sum := c.Discount
	for i := range c.Lines {
		sum += c.Lines[i].Discount
	}
	return sum
}

// GrandTotal returns subtotal plus all taxes minus the total discount
func (c *Cart) GrandTotal() float64 {
	return c.Subtotal() + c.TaxTotals().Sum() - c.TotalDiscount()
}

// TotalQuantity returns the total number of units across all lines
func (c *Cart) TotalQuantity() int {
	var sum int
	for i := range c.Lines {
		sum += c.Lines[i].Quantity
	}
	return sum
}
