package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"billscan/internal/domain"
	"billscan/internal/extract"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (16 columns).
var columns = []string{
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

// Writer wraps csv.Writer for exporting bills as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBills converts a batch of bills to CSV rows and writes them.
func (w *Writer) WriteBills(bills []domain.Bill) error {
	for i := range bills {
		row := billToRow(&bills[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// billToRow converts a single bill to a 16-element string slice. If the
// scan failed or StructuredData is invalid, extracted columns are left empty.
func billToRow(bill *domain.Bill) []string {
	row := make([]string, len(columns))

	row[0] = bill.ID.String()
	row[1] = bill.FileName
	row[2] = bill.DocumentType
	row[3] = string(bill.Status)
	row[4] = bill.Engine
	row[15] = bill.CreatedAt.Format(time.RFC3339)

	if bill.Status != domain.ScanStatusCompleted || len(bill.StructuredData) == 0 {
		return row
	}

	var sb extract.StructuredBill
	if err := json.Unmarshal(bill.StructuredData, &sb); err != nil {
		return row
	}

	row[5] = strDeref(sb.Vendor.Name)
	row[6] = strDeref(sb.Vendor.GSTIN)
	row[7] = strDeref(sb.Vendor.Phone)
	row[8] = strDeref(sb.Invoice.Number)
	row[9] = strDeref(sb.Invoice.Date)
	row[10] = strconv.Itoa(len(sb.Items))
	row[11] = intDeref(sb.Amounts.Subtotal)
	row[12] = intDeref(sb.Amounts.Tax)
	row[13] = intDeref(sb.Amounts.GrandTotal)
	row[14] = sb.Amounts.Currency

	return row
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

// BuildFilename returns a filename for the Content-Disposition header.
// Format: bills_{YYYY-MM-DD}.{ext}
func BuildFilename(ext string) string {
	return fmt.Sprintf("bills_%s.%s", time.Now().Format("2006-01-02"), ext)
}
