package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"github.com/retailpk/fbrpos-api/internal/domain/enum"
	"github.com/retailpk/fbrpos-api/pkg/apperror"
)

func newSaleFixture() (*SaleService, *checkoutFixture) {
	f := newCheckoutFixture()
	svc := NewSaleService(
		f.saleRepo,
		&fakeBranchRepo{branches: map[uuid.UUID]*entity.Branch{f.branch.ID: f.branch}},
		&fakeDeviceRepo{devices: map[uuid.UUID]*entity.Device{f.device.ID: f.device}},
		&fakeCustomerRepo{customers: map[uuid.UUID]*entity.Customer{f.customer.ID: f.customer}},
	)
	return svc, f
}

func TestCreateSaleComputesTotalsAndDefaultsCash(t *testing.T) {
	svc, f := newSaleFixture()

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		BranchID:   f.branch.ID,
		DeviceID:   f.device.ID,
		CustomerID: f.customer.ID,
		Items: []SaleItemInput{
			{
				ProductID:    f.product.ID,
				Quantity:     2,
				UnitPrice:    100,
				ValueExclTax: 200,
				SalesTax:     34,
				FurtherTax:   1.02,
				CVT:          2,
				WHTax1:       1,
				WHTax2:       0.4,
				LineTotal:    238.42,
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if sale.InvoiceType != enum.InvoiceTypeSale {
		t.Errorf("InvoiceType = %q, want SALE default", sale.InvoiceType)
	}
	if math.Abs(sale.TotalTax-38.42) > eps {
		t.Errorf("TotalTax = %v, want 38.42", sale.TotalTax)
	}
	if math.Abs(sale.TotalAmount-238.42) > eps {
		t.Errorf("TotalAmount = %v, want 238.42", sale.TotalAmount)
	}
	if sale.SellerNTN != f.branch.NTN {
		t.Errorf("SellerNTN = %q, want branch NTN", sale.SellerNTN)
	}
	if len(sale.Payments) != 1 || sale.Payments[0].Method != "cash" {
		t.Errorf("expected default cash payment, got %+v", sale.Payments)
	}
	if math.Abs(sale.Payments[0].Amount-238.42) > eps {
		t.Errorf("cash amount = %v, want grand total", sale.Payments[0].Amount)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	svc, f := newSaleFixture()

	item := SaleItemInput{ProductID: f.product.ID, Quantity: 1, UnitPrice: 10, ValueExclTax: 10, LineTotal: 10}

	tests := []struct {
		name     string
		input    *CreateSaleInput
		wantCode int
	}{
		{
			name:     "no items",
			input:    &CreateSaleInput{BranchID: f.branch.ID, DeviceID: f.device.ID, CustomerID: f.customer.ID},
			wantCode: 400,
		},
		{
			name: "unknown branch",
			input: &CreateSaleInput{
				BranchID: uuid.New(), DeviceID: f.device.ID, CustomerID: f.customer.ID,
				Items: []SaleItemInput{item},
			},
			wantCode: 404,
		},
		{
			name: "unknown customer",
			input: &CreateSaleInput{
				BranchID: f.branch.ID, DeviceID: f.device.ID, CustomerID: uuid.New(),
				Items: []SaleItemInput{item},
			},
			wantCode: 404,
		},
		{
			name: "bad invoice type",
			input: &CreateSaleInput{
				BranchID: f.branch.ID, DeviceID: f.device.ID, CustomerID: f.customer.ID,
				InvoiceType: enum.InvoiceType("REFUND"),
				Items:       []SaleItemInput{item},
			},
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSale(context.Background(), tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperror.GetAppError(err).Code; code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestSyncFBRBumpsAttempts(t *testing.T) {
	svc, f := newSaleFixture()

	sale := &entity.Sale{
		ID:        uuid.New(),
		InvoiceNo: "INV-1",
		USIN:      "USIN-1",
		FBRStatus: enum.FBRStatusPending,
	}
	f.saleRepo.created = append(f.saleRepo.created, sale)

	got, err := svc.SyncFBR(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("SyncFBR: %v", err)
	}
	if got.FBRStatus != enum.FBRStatusSent {
		t.Errorf("FBRStatus = %q, want SENT", got.FBRStatus)
	}
	if got.SyncAttempts != 1 {
		t.Errorf("SyncAttempts = %d, want 1", got.SyncAttempts)
	}
	if got.LastSyncedAt == nil {
		t.Error("LastSyncedAt should be stamped")
	}

	if _, err := svc.SyncFBR(context.Background(), sale.ID); err != nil {
		t.Fatalf("second SyncFBR: %v", err)
	}
	if sale.SyncAttempts != 2 {
		t.Errorf("SyncAttempts = %d, want 2", sale.SyncAttempts)
	}
}

func TestSyncFBRRejectsReportedSale(t *testing.T) {
	svc, f := newSaleFixture()

	sale := &entity.Sale{
		ID:        uuid.New(),
		FBRStatus: enum.FBRStatusSuccess,
	}
	f.saleRepo.created = append(f.saleRepo.created, sale)

	_, err := svc.SyncFBR(context.Background(), sale.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := apperror.GetAppError(err).Code; code != 409 {
		t.Errorf("code = %d, want 409", code)
	}
}
