package cart

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func rate(r float64) *float64 {
	return &r
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		rate     *float64
		toggles  Toggles
		want     Amounts
	}{
		{
			name:     "all components on at 17 percent",
			subtotal: 200,
			rate:     rate(17),
			toggles:  AllEnabled(),
			want:     Amounts{SalesTax: 34, FurtherTax: 1.02, CVT: 2, WHTax1: 1, WHTax2: 0.4},
		},
		{
			name:     "no tax rate yields zero regardless of toggles",
			subtotal: 500,
			rate:     nil,
			toggles:  AllEnabled(),
			want:     Amounts{},
		},
		{
			name:     "all toggles off",
			subtotal: 200,
			rate:     rate(17),
			toggles:  Toggles{},
			want:     Amounts{},
		},
		{
			name:     "sales tax off forces further tax to zero",
			subtotal: 200,
			rate:     rate(17),
			toggles:  Toggles{SalesTax: false, FurtherTax: true, CVT: true, WHTax1: true, WHTax2: true},
			want:     Amounts{SalesTax: 0, FurtherTax: 0, CVT: 2, WHTax1: 1, WHTax2: 0.4},
		},
		{
			name:     "further tax off leaves sales tax intact",
			subtotal: 200,
			rate:     rate(17),
			toggles:  Toggles{SalesTax: true, FurtherTax: false, CVT: false, WHTax1: false, WHTax2: false},
			want:     Amounts{SalesTax: 34},
		},
		{
			name:     "zero subtotal",
			subtotal: 0,
			rate:     rate(17),
			toggles:  AllEnabled(),
			want:     Amounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.subtotal, tt.rate, tt.toggles)
			if !almostEqual(got.SalesTax, tt.want.SalesTax) {
				t.Errorf("SalesTax = %v, want %v", got.SalesTax, tt.want.SalesTax)
			}
			if !almostEqual(got.FurtherTax, tt.want.FurtherTax) {
				t.Errorf("FurtherTax = %v, want %v", got.FurtherTax, tt.want.FurtherTax)
			}
			if !almostEqual(got.CVT, tt.want.CVT) {
				t.Errorf("CVT = %v, want %v", got.CVT, tt.want.CVT)
			}
			if !almostEqual(got.WHTax1, tt.want.WHTax1) {
				t.Errorf("WHTax1 = %v, want %v", got.WHTax1, tt.want.WHTax1)
			}
			if !almostEqual(got.WHTax2, tt.want.WHTax2) {
				t.Errorf("WHTax2 = %v, want %v", got.WHTax2, tt.want.WHTax2)
			}
		})
	}
}

func TestAmountsSum(t *testing.T) {
	a := Amounts{SalesTax: 34, FurtherTax: 1.02, CVT: 2, WHTax1: 1, WHTax2: 0.4}
	if got := a.Sum(); !almostEqual(got, 38.42) {
		t.Errorf("Sum() = %v, want 38.42", got)
	}
}

func TestTogglesFlip(t *testing.T) {
	tg := AllEnabled()
	tg.Flip(ComponentCVT)
	if tg.CVT {
		t.Error("CVT should be off after flip")
	}
	tg.Flip(ComponentCVT)
	if !tg.CVT {
		t.Error("CVT should be on after second flip")
	}
	if !tg.SalesTax || !tg.FurtherTax || !tg.WHTax1 || !tg.WHTax2 {
		t.Error("other components should be untouched")
	}
}

func TestComponentIsValid(t *testing.T) {
	for _, c := range []Component{ComponentSalesTax, ComponentFurtherTax, ComponentCVT, ComponentWHTax1, ComponentWHTax2} {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Component("vat").IsValid() {
		t.Error("vat should not be a valid component")
	}
}
