package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/application/cart"
	"github.com/retailpk/fbrpos-api/internal/application/pos"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
	"github.com/retailpk/fbrpos-api/pkg/pagination"
)

const eps = 1e-9

type fakeSaleRepo struct {
	created   []*entity.Sale
	createErr error
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, sale)
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	for _, s := range f.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) GetByUSIN(ctx context.Context, usin string) (*entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (f *fakeSaleRepo) ListWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) ListForExport(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) RecordSyncAttempt(ctx context.Context, sale *entity.Sale, log *entity.InvoiceSyncLog) error {
	return nil
}

func (f *fakeSaleRepo) GetSyncLogs(ctx context.Context, saleID uuid.UUID) ([]entity.InvoiceSyncLog, error) {
	return nil, nil
}

func (f *fakeSaleRepo) GetDailyStats(ctx context.Context, days int) ([]repository.DailySalesStat, error) {
	return nil, nil
}

func (f *fakeSaleRepo) GetMonthlyStats(ctx context.Context, months int) ([]repository.MonthlySalesStat, error) {
	return nil, nil
}

type fakeBranchRepo struct {
	branches map[uuid.UUID]*entity.Branch
}

func (f *fakeBranchRepo) Create(ctx context.Context, branch *entity.Branch) error { return nil }
func (f *fakeBranchRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	return f.branches[id], nil
}
func (f *fakeBranchRepo) GetByFBRBranchCode(ctx context.Context, code string) (*entity.Branch, error) {
	return nil, nil
}
func (f *fakeBranchRepo) Update(ctx context.Context, branch *entity.Branch) error { return nil }
func (f *fakeBranchRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (f *fakeBranchRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Branch, int64, error) {
	return nil, 0, nil
}

type fakeDeviceRepo struct {
	devices map[uuid.UUID]*entity.Device
}

func (f *fakeDeviceRepo) Create(ctx context.Context, device *entity.Device) error { return nil }
func (f *fakeDeviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	return f.devices[id], nil
}
func (f *fakeDeviceRepo) GetByIdentifier(ctx context.Context, identifier string) (*entity.Device, error) {
	return nil, nil
}
func (f *fakeDeviceRepo) Update(ctx context.Context, device *entity.Device) error { return nil }
func (f *fakeDeviceRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (f *fakeDeviceRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Device, int64, error) {
	return nil, 0, nil
}
func (f *fakeDeviceRepo) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]entity.Device, error) {
	return nil, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) GetByNTN(ctx context.Context, ntn string) (*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }
func (f *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

type checkoutFixture struct {
	svc      *CheckoutService
	sessions *pos.Store
	saleRepo *fakeSaleRepo
	branch   *entity.Branch
	device   *entity.Device
	customer *entity.Customer
	product  *entity.Product
}

func newCheckoutFixture() *checkoutFixture {
	strn := "0700001"
	branch := &entity.Branch{
		ID:            uuid.New(),
		Name:          "Main Branch",
		NTN:           "1234567",
		STRN:          &strn,
		FBRBranchCode: "BR-001",
		SaleTypeCode:  "T1000017",
	}
	device := &entity.Device{
		ID:               uuid.New(),
		BranchID:         branch.ID,
		Name:             "Counter 1",
		DeviceIdentifier: "DEV-001",
		FBRPosRegNo:      "POS-90001",
	}
	ntn := "7654321"
	customer := &entity.Customer{
		ID:   uuid.New(),
		Name: "Walk-in Customer",
		NTN:  &ntn,
	}
	product := &entity.Product{
		ID:    uuid.New(),
		Code:  "PROD-ABC",
		Name:  "Widget",
		Price: 100,
		TaxRate: &entity.TaxRate{
			ID:   uuid.New(),
			Name: "Standard",
			Rate: 17,
		},
	}

	saleRepo := &fakeSaleRepo{}
	sessions := pos.NewStore(pos.StoreConfig{SessionTTL: time.Hour, CleanupInterval: time.Hour})
	svc := NewCheckoutService(
		sessions,
		saleRepo,
		&fakeBranchRepo{branches: map[uuid.UUID]*entity.Branch{branch.ID: branch}},
		&fakeDeviceRepo{devices: map[uuid.UUID]*entity.Device{device.ID: device}},
		&fakeCustomerRepo{customers: map[uuid.UUID]*entity.Customer{customer.ID: customer}},
	)

	return &checkoutFixture{
		svc:      svc,
		sessions: sessions,
		saleRepo: saleRepo,
		branch:   branch,
		device:   device,
		customer: customer,
		product:  product,
	}
}

func (f *checkoutFixture) readySession(t *testing.T) *pos.Session {
	t.Helper()
	sess := f.sessions.Create()
	err := sess.WithCart(func(c *cart.Cart) error {
		c.AddItem(f.product)
		c.AddItem(f.product)
		c.CustomerID = &f.customer.ID
		c.BranchID = &f.branch.ID
		c.DeviceID = &f.device.ID
		return nil
	})
	if err != nil {
		t.Fatalf("prepare cart: %v", err)
	}
	return sess
}

func TestCheckoutPersistsSaleAndClearsCart(t *testing.T) {
	f := newCheckoutFixture()
	sess := f.readySession(t)

	sale, err := f.svc.Checkout(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if !strings.HasPrefix(sale.InvoiceNo, "INV-") {
		t.Errorf("InvoiceNo = %q, want INV- prefix", sale.InvoiceNo)
	}
	if !strings.HasPrefix(sale.USIN, "USIN-") {
		t.Errorf("USIN = %q, want USIN- prefix", sale.USIN)
	}
	if strings.TrimPrefix(sale.InvoiceNo, "INV-") != strings.TrimPrefix(sale.USIN, "USIN-") {
		t.Errorf("invoice number and USIN should share one timestamp: %q vs %q", sale.InvoiceNo, sale.USIN)
	}

	if sale.SellerNTN != f.branch.NTN {
		t.Errorf("SellerNTN = %q, want %q", sale.SellerNTN, f.branch.NTN)
	}
	if sale.SaleTypeCode != f.branch.SaleTypeCode {
		t.Errorf("SaleTypeCode = %q, want %q", sale.SaleTypeCode, f.branch.SaleTypeCode)
	}
	if sale.BuyerNTN == nil || *sale.BuyerNTN != *f.customer.NTN {
		t.Error("buyer NTN should default to the customer's NTN")
	}
	if sale.FBRStatus != enum.FBRStatusPending {
		t.Errorf("FBRStatus = %q, want PENDING", sale.FBRStatus)
	}

	if math.Abs(sale.TotalAmount-238.42) > eps {
		t.Errorf("TotalAmount = %v, want 238.42", sale.TotalAmount)
	}
	if len(sale.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(sale.Items))
	}
	item := sale.Items[0]
	if math.Abs(item.ValueExclTax-200) > eps || math.Abs(item.SalesTax-34) > eps ||
		math.Abs(item.FurtherTax-1.02) > eps || math.Abs(item.CVT-2) > eps ||
		math.Abs(item.WHTax1-1) > eps || math.Abs(item.WHTax2-0.4) > eps {
		t.Errorf("item tax split wrong: %+v", item)
	}

	// No tender entered: single cash payment for the grand total
	if len(sale.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(sale.Payments))
	}
	if sale.Payments[0].Method != "cash" || math.Abs(sale.Payments[0].Amount-238.42) > eps {
		t.Errorf("payment = %+v, want cash 238.42", sale.Payments[0])
	}

	// Success clears the register
	err = sess.WithCart(func(c *cart.Cart) error {
		if !c.IsEmpty() {
			t.Error("cart should be empty after successful checkout")
		}
		if c.CustomerID != nil {
			t.Error("customer selection should be cleared")
		}
		if c.BranchID == nil || c.DeviceID == nil {
			t.Error("branch and device selections should persist")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithCart: %v", err)
	}
}

func TestCheckoutKeepsEnteredPayments(t *testing.T) {
	f := newCheckoutFixture()
	sess := f.readySession(t)
	if err := sess.WithCart(func(c *cart.Cart) error {
		c.AddPayment("card", 200)
		c.AddPayment("cash", 38.42)
		return nil
	}); err != nil {
		t.Fatalf("WithCart: %v", err)
	}

	sale, err := f.svc.Checkout(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(sale.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(sale.Payments))
	}
	if sale.Payments[0].Method != "card" || sale.Payments[1].Method != "cash" {
		t.Errorf("payments out of order: %+v", sale.Payments)
	}
}

func TestCheckoutPreconditions(t *testing.T) {
	f := newCheckoutFixture()

	tests := []struct {
		name    string
		prepare func(c *cart.Cart)
		wantMsg string
	}{
		{
			name:    "empty cart",
			prepare: func(c *cart.Cart) {},
			wantMsg: "Cart is empty",
		},
		{
			name: "no customer",
			prepare: func(c *cart.Cart) {
				c.AddItem(f.product)
				c.BranchID = &f.branch.ID
				c.DeviceID = &f.device.ID
			},
			wantMsg: "Select a customer",
		},
		{
			name: "no branch",
			prepare: func(c *cart.Cart) {
				c.AddItem(f.product)
				c.CustomerID = &f.customer.ID
				c.DeviceID = &f.device.ID
			},
			wantMsg: "Select a branch",
		},
		{
			name: "no device",
			prepare: func(c *cart.Cart) {
				c.AddItem(f.product)
				c.CustomerID = &f.customer.ID
				c.BranchID = &f.branch.ID
			},
			wantMsg: "Select a device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := f.sessions.Create()
			if err := sess.WithCart(func(c *cart.Cart) error {
				tt.prepare(c)
				return nil
			}); err != nil {
				t.Fatalf("prepare: %v", err)
			}

			_, err := f.svc.Checkout(context.Background(), sess.ID)
			if err == nil {
				t.Fatal("expected error")
			}
			appErr := apperror.GetAppError(err)
			if !strings.Contains(appErr.Message, tt.wantMsg) {
				t.Errorf("message = %q, want contains %q", appErr.Message, tt.wantMsg)
			}
			if len(f.saleRepo.created) != 0 {
				t.Error("no sale should be persisted on a failed precondition")
			}
		})
	}
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	f := newCheckoutFixture()
	f.saleRepo.createErr = errors.New("db down")
	sess := f.readySession(t)

	if _, err := f.svc.Checkout(context.Background(), sess.ID); err == nil {
		t.Fatal("expected error when persistence fails")
	}

	err := sess.WithCart(func(c *cart.Cart) error {
		if c.IsEmpty() {
			t.Error("cart should keep its lines after a failed checkout")
		}
		if c.CustomerID == nil || c.BranchID == nil || c.DeviceID == nil {
			t.Error("selections should stay after a failed checkout")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithCart: %v", err)
	}

	// Retry succeeds once the store recovers
	f.saleRepo.createErr = nil
	if _, err := f.svc.Checkout(context.Background(), sess.ID); err != nil {
		t.Fatalf("retry Checkout: %v", err)
	}
}

func TestCheckoutUnknownSession(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.svc.Checkout(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Errorf("code = %d, want 404", apperror.GetAppError(err).Code)
	}
}

func TestCheckoutRejectsForeignDevice(t *testing.T) {
	f := newCheckoutFixture()

	other := &entity.Device{
		ID:               uuid.New(),
		BranchID:         uuid.New(),
		Name:             "Other Counter",
		DeviceIdentifier: "DEV-999",
		FBRPosRegNo:      "POS-99999",
	}
	f.svc.deviceRepo.(*fakeDeviceRepo).devices[other.ID] = other

	sess := f.sessions.Create()
	if err := sess.WithCart(func(c *cart.Cart) error {
		c.AddItem(f.product)
		c.CustomerID = &f.customer.ID
		c.BranchID = &f.branch.ID
		c.DeviceID = &other.ID
		return nil
	}); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	_, err := f.svc.Checkout(context.Background(), sess.ID)
	if err == nil {
		t.Fatal("expected error for device from another branch")
	}
}
