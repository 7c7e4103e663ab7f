package service

import (
	"context"
	"fmt"

	"github.com/retailpk/fbrpos-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService produces XLSX workbooks of sales for offline reporting
type ExportService struct {
	saleRepo repository.SaleRepository
}

// NewExportService creates a new export service
func NewExportService(saleRepo repository.SaleRepository) *ExportService {
	return &ExportService{saleRepo: saleRepo}
}

// ExportSalesXLSX returns an XLSX workbook (as bytes) of the sales matching
// the filter. Pagination on the filter is ignored; all matches are exported.
func (s *ExportService) ExportSalesXLSX(ctx context.Context, params *repository.SaleFilterParams) ([]byte, error) {
	sales, err := s.saleRepo.ListForExport(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Sales"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Invoice No",
		"USIN",
		"Invoice Date",
		"Invoice Type",
		"Branch",
		"Device",
		"Buyer Name",
		"Buyer NTN",
		"Total Qty",
		"Sales Value",
		"Total Tax",
		"Discount",
		"Total Amount",
		"FBR Status",
		"FBR Invoice No",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, sale := range sales {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, sale.InvoiceNo)
		write(2, sale.USIN)
		write(3, sale.InvoiceDate.Format("2006-01-02 15:04:05"))
		write(4, sale.InvoiceType.String())
		if sale.Branch != nil {
			write(5, sale.Branch.Name)
		}
		if sale.Device != nil {
			write(6, sale.Device.Name)
		}
		if sale.BuyerName != nil {
			write(7, *sale.BuyerName)
		}
		if sale.BuyerNTN != nil {
			write(8, *sale.BuyerNTN)
		}
		write(9, sale.TotalQty)
		write(10, sale.TotalSalesValue)
		write(11, sale.TotalTax)
		write(12, sale.TotalDiscount)
		write(13, sale.TotalAmount)
		write(14, sale.FBRStatus.String())
		if sale.FBRInvoiceNo != nil {
			write(15, *sale.FBRInvoiceNo)
		}

		row++
	}

	_ = f.SetColWidth(sheet, "A", "B", 22)
	_ = f.SetColWidth(sheet, "C", "C", 20)
	_ = f.SetColWidth(sheet, "E", "G", 24)
	_ = f.SetColWidth(sheet, "I", "M", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
