package cart

// Statutory component rates applied on top of the product's sales tax rate.
// Further tax is levied on the sales tax amount, the rest on the net value.
const (
	FurtherTaxRate = 0.03
	CVTRate        = 0.01
	WHTax1Rate     = 0.005
	WHTax2Rate     = 0.002
)

// Component identifies one of the five tax components on a line
type Component string

const (
	ComponentSalesTax   Component = "salesTax"
	ComponentFurtherTax Component = "furtherTax"
	ComponentCVT        Component = "cvt"
	ComponentWHTax1     Component = "whTax1"
	ComponentWHTax2     Component = "whTax2"
)

// IsValid checks if the component name is one of the five known components
func (c Component) IsValid() bool {
	switch c {
	case ComponentSalesTax, ComponentFurtherTax, ComponentCVT, ComponentWHTax1, ComponentWHTax2:
		return true
	}
	return false
}

// Toggles holds the per-line on/off switches for each tax component
type Toggles struct {
	SalesTax   bool `json:"salesTax"`
	FurtherTax bool `json:"furtherTax"`
	CVT        bool `json:"cvt"`
	WHTax1     bool `json:"whTax1"`
	WHTax2     bool `json:"whTax2"`
}

// AllEnabled returns toggles with every component switched on, the default
// for a freshly added line
func AllEnabled() Toggles {
	return Toggles{SalesTax: true, FurtherTax: true, CVT: true, WHTax1: true, WHTax2: true}
}

// Flip inverts one component's toggle
func (t *Toggles) Flip(c Component) {
	switch c {
	case ComponentSalesTax:
		t.SalesTax = !t.SalesTax
	case ComponentFurtherTax:
		t.FurtherTax = !t.FurtherTax
	case ComponentCVT:
		t.CVT = !t.CVT
	case ComponentWHTax1:
		t.WHTax1 = !t.WHTax1
	case ComponentWHTax2:
		t.WHTax2 = !t.WHTax2
	}
}

// Amounts holds the computed value of each tax component for a line
type Amounts struct {
	SalesTax   float64 `json:"sales_tax"`
	FurtherTax float64 `json:"further_tax"`
	CVT        float64 `json:"c_v_t"`
	WHTax1     float64 `json:"w_h_tax_1"`
	WHTax2     float64 `json:"w_h_tax_2"`
}

// Sum returns the total tax across all components
func (a Amounts) Sum() float64 {
	return a.SalesTax + a.FurtherTax + a.CVT + a.WHTax1 + a.WHTax2
}

// Add accumulates another set of amounts component-wise
func (a Amounts) Add(other Amounts) Amounts {
	return Amounts{
		SalesTax:   a.SalesTax + other.SalesTax,
		FurtherTax: a.FurtherTax + other.FurtherTax,
		CVT:        a.CVT + other.CVT,
		WHTax1:     a.WHTax1 + other.WHTax1,
		WHTax2:     a.WHTax2 + other.WHTax2,
	}
}

// Compute calculates the tax split for a line's net value. A nil rate means
// the product carries no sales tax rate: every component is zero regardless
// of the toggles.
//
// Further tax is computed from the gated sales tax amount, so switching
// sales tax off forces further tax to zero even when its own toggle is on.
func Compute(subtotal float64, rate *float64, t Toggles) Amounts {
	if rate == nil {
		return Amounts{}
	}

	var a Amounts
	if t.SalesTax {
		a.SalesTax = subtotal * (*rate) / 100
	}
	if t.FurtherTax {
		a.FurtherTax = a.SalesTax * FurtherTaxRate
	}
	if t.CVT {
		a.CVT = subtotal * CVTRate
	}
	if t.WHTax1 {
		a.WHTax1 = subtotal * WHTax1Rate
	}
	if t.WHTax2 {
		a.WHTax2 = subtotal * WHTax2Rate
	}
	return a
}
