// Package xlsxexport renders bills as an Excel workbook.
package xlsxexport

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
	"billscan/internal/extract"
)

const sheet = "Bills"

var headers = []string{
	"ID",
	"File Name",
	"Document Type",
	"Status",
	"Engine",
	"Vendor Name",
	"Vendor GSTIN",
	"Vendor Phone",
	"Invoice Number",
	"Invoice Date",
	"Line Item Count",
	"Subtotal",
	"Tax",
	"Grand Total",
	"Currency",
	"Created At",
}

// Write renders bills into an xlsx workbook and streams it to w.
func Write(w io.Writer, bills []domain.Bill) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range bills {
		writeBillRow(f, row, &bills[i])
		row++
	}

	// Widen the wordy columns
	_ = f.SetColWidth(sheet, "A", "A", 38) // id
	_ = f.SetColWidth(sheet, "B", "B", 28) // file name
	_ = f.SetColWidth(sheet, "F", "F", 28) // vendor name
	_ = f.SetColWidth(sheet, "G", "G", 18) // gstin
	_ = f.SetColWidth(sheet, "P", "P", 22) // created at

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeBillRow(f *excelize.File, row int, bill *domain.Bill) {
	write := func(col int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, bill.ID.String())
	write(2, bill.FileName)
	write(3, bill.DocumentType)
	write(4, string(bill.Status))
	write(5, bill.Engine)
	write(16, bill.CreatedAt.Format(time.RFC3339))

	if bill.Status != domain.ScanStatusCompleted || len(bill.StructuredData) == 0 {
		return
	}

	var sb extract.StructuredBill
	if err := json.Unmarshal(bill.StructuredData, &sb); err != nil {
		return
	}

	write(6, strDeref(sb.Vendor.Name))
	write(7, strDeref(sb.Vendor.GSTIN))
	write(8, strDeref(sb.Vendor.Phone))
	write(9, strDeref(sb.Invoice.Number))
	write(10, strDeref(sb.Invoice.Date))
	write(11, len(sb.Items))
	write(12, intDeref(sb.Amounts.Subtotal))
	write(13, intDeref(sb.Amounts.Tax))
	write(14, intDeref(sb.Amounts.GrandTotal))
	write(15, sb.Amounts.Currency)
}

func strDeref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intDeref(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
