package enum

// InvoiceType represents the kind of invoice being reported
type InvoiceType string

const (
	InvoiceTypeSale       InvoiceType = "SALE"
	InvoiceTypePurchase   InvoiceType = "PURCHASE"
	InvoiceTypeDebitNote  InvoiceType = "DEBIT_NOTE"
	InvoiceTypeCreditNote InvoiceType = "CREDIT_NOTE"
)

// IsValid checks if the invoice type is valid
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeSale, InvoiceTypePurchase, InvoiceTypeDebitNote, InvoiceTypeCreditNote:
		return true
	}
	return false
}

func (t InvoiceType) String() string {
	return string(t)
}
