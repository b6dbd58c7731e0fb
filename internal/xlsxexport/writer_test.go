package xlsxexport_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
	"billscan/internal/xlsxexport"
)

func TestWrite(t *testing.T) {
	structured := `{
		"document_type": "tax_invoice",
		"vendor": {"name": "Sharma Traders", "gstin": "07AABCS1234E1ZX", "phone": null},
		"invoice": {"number": "INV-2026-004", "date": "01/02/2026"},
		"items": [{"name": "Notebook", "unit_price": 40, "quantity": 5, "total": 200}],
		"amounts": {"subtotal": 200, "tax": 36, "grand_total": 236, "currency": "INR"}
	}`

	bills := []domain.Bill{
		{
			ID:             uuid.New(),
			FileName:       "invoice.pdf",
			DocumentType:   "tax_invoice",
			Engine:         "tesseract",
			Status:         domain.ScanStatusCompleted,
			StructuredData: json.RawMessage(structured),
			CreatedAt:      time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			FileName:  "blurry.jpg",
			Engine:    "tesseract",
			Status:    domain.ScanStatusFailed,
			ScanError: "engine exploded",
			CreatedAt: time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, bills))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Bills")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Vendor GSTIN", rows[0][6])

	assert.Equal(t, "invoice.pdf", rows[1][1])
	assert.Equal(t, "Sharma Traders", rows[1][5])
	assert.Equal(t, "07AABCS1234E1ZX", rows[1][6])
	assert.Equal(t, "INV-2026-004", rows[1][8])
	assert.Equal(t, "1", rows[1][10])
	assert.Equal(t, "236", rows[1][13])

	assert.Equal(t, "blurry.jpg", rows[2][1])
	assert.Equal(t, "failed", rows[2][3])
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Bills")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
