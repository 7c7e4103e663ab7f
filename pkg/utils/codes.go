package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateInvoiceNo generates an invoice number from a timestamp
func GenerateInvoiceNo(ts time.Time) string {
	return fmt.Sprintf("INV-%d", ts.UnixMilli())
}

// GenerateUSIN generates a unique sale invoice number (USIN) from a timestamp.
// Checkout derives both the invoice number and the USIN from the same instant
// so the pair stays correlated on the FBR side.
func GenerateUSIN(ts time.Time) string {
	return fmt.Sprintf("USIN-%d", ts.UnixMilli())
}
