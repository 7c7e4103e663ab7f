package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/application/cart"
	"github.com/retailpk/fbrpos-api/internal/application/pos"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/utils"
)

// CheckoutService turns a POS session's cart into a persisted sale
type CheckoutService struct {
	sessions     *pos.Store
	saleRepo     repository.SaleRepository
	branchRepo   repository.BranchRepository
	deviceRepo   repository.DeviceRepository
	customerRepo repository.CustomerRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	sessions *pos.Store,
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	deviceRepo repository.DeviceRepository,
	customerRepo repository.CustomerRepository,
) *CheckoutService {
	return &CheckoutService{
		sessions:     sessions,
		saleRepo:     saleRepo,
		branchRepo:   branchRepo,
		deviceRepo:   deviceRepo,
		customerRepo: customerRepo,
	}
}

// Checkout validates the session's cart, assembles the sale and persists it
// in one transaction. On success the cart is cleared; on any failure the
// cart and its selections stay exactly as they were.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID uuid.UUID) (*entity.Sale, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, apperror.NewNotFoundError("POS session")
	}

	c, err := session.BeginCheckout()
	if err != nil {
		return nil, apperror.NewConflictError("Checkout already in progress for this session")
	}
	defer session.EndCheckout()

	// Preconditions, checked before touching the database
	if c.IsEmpty() {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if c.CustomerID == nil {
		return nil, apperror.NewBadRequestError("Select a customer before checkout")
	}
	if c.BranchID == nil {
		return nil, apperror.NewBadRequestError("Select a branch before checkout")
	}
	if c.DeviceID == nil {
		return nil, apperror.NewBadRequestError("Select a device before checkout")
	}

	// Branch and device are re-fetched so seller identity and sale type
	// code on the invoice are authoritative, not stale session copies
	branch, err := s.branchRepo.GetByID(ctx, *c.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	device, err := s.deviceRepo.GetByID(ctx, *c.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, apperror.NewNotFoundError("Device")
	}
	if device.BranchID != branch.ID {
		return nil, apperror.NewBadRequestError("Device does not belong to the selected branch")
	}

	customer, err := s.customerRepo.GetByID(ctx, *c.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	sale := s.assembleSale(c, branch, device, customer)

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	// Only a persisted sale clears the register
	c.Clear()

	detailed, err := s.saleRepo.GetWithDetails(ctx, sale.ID)
	if err != nil || detailed == nil {
		return sale, nil
	}
	return detailed, nil
}

// assembleSale builds the sale entity from the cart's computed state. Both
// identifiers derive from the same timestamp so they stay correlated.
func (s *CheckoutService) assembleSale(c *cart.Cart, branch *entity.Branch, device *entity.Device, customer *entity.Customer) *entity.Sale {
	now := time.Now()

	sale := &entity.Sale{
		InvoiceNo:       utils.GenerateInvoiceNo(now),
		BranchID:        branch.ID,
		DeviceID:        device.ID,
		CustomerID:      customer.ID,
		InvoiceDate:     now,
		InvoiceType:     c.InvoiceType,
		SaleTypeCode:    branch.SaleTypeCode,
		SellerNTN:       branch.NTN,
		SellerSTRN:      branch.STRN,
		BuyerNTN:        c.BuyerNTN,
		BuyerName:       c.BuyerName,
		TotalQty:        float64(c.TotalQuantity()),
		TotalSalesValue: c.Subtotal(),
		TotalTax:        c.TaxTotals().Sum(),
		TotalDiscount:   c.TotalDiscount(),
		TotalAmount:     c.GrandTotal(),
		USIN:            utils.GenerateUSIN(now),
		FBRStatus:       enum.FBRStatusPending,
	}
	if sale.BuyerNTN == nil {
		sale.BuyerNTN = customer.NTN
	}
	if sale.BuyerName == nil {
		name := customer.Name
		sale.BuyerName = &name
	}

	for i := range c.Lines {
		line := &c.Lines[i]
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:       line.ProductID,
			HSCode:          line.HSCode,
			Quantity:        float64(line.Quantity),
			UnitPrice:       line.UnitPrice,
			ValueExclTax:    line.Subtotal,
			SalesTax:        line.Taxes.SalesTax,
			FurtherTax:      line.Taxes.FurtherTax,
			CVT:             line.Taxes.CVT,
			WHTax1:          line.Taxes.WHTax1,
			WHTax2:          line.Taxes.WHTax2,
			Discount:        line.Discount,
			SROItemSerialNo: line.SROItemSerialNo,
			LineTotal:       line.Total,
		})
	}

	for _, p := range c.Payments {
		sale.Payments = append(sale.Payments, entity.Payment{
			Method:      p.Method,
			Amount:      p.Amount,
			PaymentDate: now,
		})
	}
	// No tender entered means a single cash payment for the full amount
	if len(sale.Payments) == 0 {
		sale.Payments = append(sale.Payments, entity.Payment{
			Method:      "cash",
			Amount:      sale.TotalAmount,
			PaymentDate: now,
		})
	}

	return sale
}
