package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
)

func taxedProduct(price, ratePercent float64) *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Code:  "PROD-TEST",
		Name:  "Test Product",
		Price: price,
		TaxRate: &entity.TaxRate{
			ID:   uuid.New(),
			Name: "Standard",
			Rate: ratePercent,
		},
	}
}

func untaxedProduct(price float64) *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Code:  "PROD-FREE",
		Name:  "Untaxed Product",
		Price: price,
	}
}

func TestAddItemComputesTaxSplit(t *testing.T) {
	c := New()
	p := taxedProduct(100, 17)

	c.AddItem(p)
	c.AddItem(p)

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
	line := c.Lines[0]
	if line.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", line.Quantity)
	}
	if !almostEqual(line.Subtotal, 200) {
		t.Errorf("Subtotal = %v, want 200", line.Subtotal)
	}
	if !almostEqual(line.Taxes.SalesTax, 34) {
		t.Errorf("SalesTax = %v, want 34", line.Taxes.SalesTax)
	}
	if !almostEqual(line.Taxes.FurtherTax, 1.02) {
		t.Errorf("FurtherTax = %v, want 1.02", line.Taxes.FurtherTax)
	}
	if !almostEqual(line.Taxes.CVT, 2) {
		t.Errorf("CVT = %v, want 2", line.Taxes.CVT)
	}
	if !almostEqual(line.Taxes.WHTax1, 1) {
		t.Errorf("WHTax1 = %v, want 1", line.Taxes.WHTax1)
	}
	if !almostEqual(line.Taxes.WHTax2, 0.4) {
		t.Errorf("WHTax2 = %v, want 0.4", line.Taxes.WHTax2)
	}
	if !almostEqual(line.Total, 238.42) {
		t.Errorf("Total = %v, want 238.42", line.Total)
	}
	if !almostEqual(c.GrandTotal(), 238.42) {
		t.Errorf("GrandTotal = %v, want 238.42", c.GrandTotal())
	}
}

func TestAddItemTwiceEqualsQuantityTwo(t *testing.T) {
	p := taxedProduct(50, 17)

	twice := New()
	twice.AddItem(p)
	twice.AddItem(p)

	once := New()
	once.AddItem(p)
	if err := once.SetQuantity(p.ID, 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	if !almostEqual(twice.GrandTotal(), once.GrandTotal()) {
		t.Errorf("adding twice (%v) should equal quantity 2 (%v)", twice.GrandTotal(), once.GrandTotal())
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	p := taxedProduct(100, 17)
	c.AddItem(p)

	if err := c.SetQuantity(p.ID, 0); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty after quantity set to zero")
	}

	c.AddItem(p)
	if err := c.SetQuantity(p.ID, -3); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty after negative quantity")
	}
}

func TestUntaxedProductHasZeroTaxes(t *testing.T) {
	c := New()
	c.AddItem(untaxedProduct(300))

	line := c.Lines[0]
	if !almostEqual(line.Taxes.Sum(), 0) {
		t.Errorf("taxes = %v, want 0 for product without tax rate", line.Taxes.Sum())
	}
	if !almostEqual(c.GrandTotal(), 300) {
		t.Errorf("GrandTotal = %v, want 300", c.GrandTotal())
	}
}

func TestAllTogglesOffGrandTotalIsSubtotalMinusDiscounts(t *testing.T) {
	c := New()
	p1 := taxedProduct(100, 17)
	p2 := taxedProduct(40, 18)
	c.AddItem(p1)
	c.AddItem(p2)
	c.Discount = 5

	for _, id := range []uuid.UUID{p1.ID, p2.ID} {
		for _, comp := range []Component{ComponentSalesTax, ComponentFurtherTax, ComponentCVT, ComponentWHTax1, ComponentWHTax2} {
			if err := c.ToggleTax(id, comp); err != nil {
				t.Fatalf("ToggleTax: %v", err)
			}
		}
	}
	if err := c.SetLineDiscount(p1.ID, 10); err != nil {
		t.Fatalf("SetLineDiscount: %v", err)
	}

	want := c.Subtotal() - c.TotalDiscount()
	if !almostEqual(c.GrandTotal(), want) {
		t.Errorf("GrandTotal = %v, want %v", c.GrandTotal(), want)
	}
}

func TestSalesTaxToggleGatesFurtherTax(t *testing.T) {
	c := New()
	p := taxedProduct(100, 17)
	c.AddItem(p)

	if err := c.ToggleTax(p.ID, ComponentSalesTax); err != nil {
		t.Fatalf("ToggleTax: %v", err)
	}

	line := c.Lines[0]
	if !line.Toggles.FurtherTax {
		t.Fatal("further tax toggle itself should remain on")
	}
	if !almostEqual(line.Taxes.FurtherTax, 0) {
		t.Errorf("FurtherTax = %v, want 0 when sales tax is off", line.Taxes.FurtherTax)
	}
}

func TestDiscountCanExceedTaxedValue(t *testing.T) {
	c := New()
	p := taxedProduct(10, 17)
	c.AddItem(p)

	if err := c.SetLineDiscount(p.ID, 50); err != nil {
		t.Fatalf("SetLineDiscount: %v", err)
	}

	if c.Lines[0].Total >= 0 {
		t.Errorf("line total = %v, want negative when discount exceeds value", c.Lines[0].Total)
	}
	if c.GrandTotal() >= 0 {
		t.Errorf("grand total = %v, want negative", c.GrandTotal())
	}
}

func TestOperationOrderDoesNotAffectTotals(t *testing.T) {
	p1 := taxedProduct(100, 17)
	p2 := taxedProduct(25, 18)

	a := New()
	a.AddItem(p1)
	a.AddItem(p2)
	a.SetQuantity(p1.ID, 3)
	a.SetLineDiscount(p2.ID, 2)
	a.ToggleTax(p1.ID, ComponentCVT)

	b := New()
	b.AddItem(p2)
	b.SetLineDiscount(p2.ID, 2)
	b.AddItem(p1)
	b.ToggleTax(p1.ID, ComponentCVT)
	b.SetQuantity(p1.ID, 3)

	if !almostEqual(a.GrandTotal(), b.GrandTotal()) {
		t.Errorf("totals differ by operation order: %v vs %v", a.GrandTotal(), b.GrandTotal())
	}
}

func TestToggleTaxErrors(t *testing.T) {
	c := New()
	p := taxedProduct(100, 17)
	c.AddItem(p)

	if err := c.ToggleTax(uuid.New(), ComponentCVT); err != ErrLineNotFound {
		t.Errorf("err = %v, want ErrLineNotFound", err)
	}
	if err := c.ToggleTax(p.ID, Component("vat")); err != ErrUnknownComponent {
		t.Errorf("err = %v, want ErrUnknownComponent", err)
	}
}

func TestRemoveItem(t *testing.T) {
	c := New()
	p1 := taxedProduct(100, 17)
	p2 := taxedProduct(50, 17)
	c.AddItem(p1)
	c.AddItem(p2)

	if err := c.RemoveItem(p1.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(c.Lines) != 1 || c.Lines[0].ProductID != p2.ID {
		t.Error("wrong line removed")
	}
	if err := c.RemoveItem(p1.ID); err != ErrLineNotFound {
		t.Errorf("err = %v, want ErrLineNotFound", err)
	}
}

func TestPayments(t *testing.T) {
	c := New()
	c.AddPayment("cash", 100)
	c.AddPayment("card", 50)

	if err := c.RemovePayment(0); err != nil {
		t.Fatalf("RemovePayment: %v", err)
	}
	if len(c.Payments) != 1 || c.Payments[0].Method != "card" {
		t.Error("wrong payment removed")
	}
	if err := c.RemovePayment(5); err != ErrPaymentIndex {
		t.Errorf("err = %v, want ErrPaymentIndex", err)
	}
	if err := c.RemovePayment(-1); err != ErrPaymentIndex {
		t.Errorf("err = %v, want ErrPaymentIndex", err)
	}
}

func TestClearResetsSaleButKeepsRegisterSelections(t *testing.T) {
	c := New()
	customerID := uuid.New()
	branchID := uuid.New()
	deviceID := uuid.New()
	buyerNTN := "1234567"

	c.AddItem(taxedProduct(100, 17))
	c.Discount = 10
	c.CustomerID = &customerID
	c.BranchID = &branchID
	c.DeviceID = &deviceID
	c.BuyerNTN = &buyerNTN
	c.AddPayment("cash", 50)

	c.Clear()

	if !c.IsEmpty() || c.Discount != 0 || c.CustomerID != nil || c.BuyerNTN != nil || len(c.Payments) != 0 {
		t.Error("Clear should reset lines, discount, customer, buyer fields and payments")
	}
	if c.BranchID == nil || c.DeviceID == nil {
		t.Error("Clear should keep branch and device selections")
	}
}

func TestTotalQuantity(t *testing.T) {
	c := New()
	p1 := taxedProduct(100, 17)
	p2 := taxedProduct(50, 17)
	c.AddItem(p1)
	c.AddItem(p1)
	c.AddItem(p2)

	if got := c.TotalQuantity(); got != 3 {
		t.Errorf("TotalQuantity = %d, want 3", got)
	}
}
