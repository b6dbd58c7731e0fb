package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/extract"
)

func TestExtractInvoice_NumberVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"invoice_no_colon", "Invoice No: INV-2024-001", "INV-2024-001"},
		{"invoice_number", "invoice number 88127", "88127"},
		{"bill_no_dash", "Bill No- B-445", "B-445"},
		{"bare_invoice", "INVOICE 7731", "7731"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := extract.ExtractInvoice([]string{tt.line})
			require.NotNil(t, inv.Number)
			assert.Equal(t, tt.want, *inv.Number)
		})
	}
}

func TestExtractInvoice_DateVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"slash_numeric", "Date: 12/05/2024", "12/05/2024"},
		{"dash_numeric", "dt 1-1-24", "1-1-24"},
		{"month_name", "Issued 12 January 2024 by counter 3", "12 January 2024"},
		{"short_month", "5 Jan 2024", "5 Jan 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := extract.ExtractInvoice([]string{tt.line})
			require.NotNil(t, inv.Date)
			assert.Equal(t, tt.want, *inv.Date)
		})
	}
}

func TestExtractInvoice_FirstMatchWinsIndependently(t *testing.T) {
	inv := extract.ExtractInvoice([]string{
		"Date: 12/05/2024",
		"Invoice No: INV-001",
		"Invoice No: INV-999",
		"Date: 13/05/2024",
	})
	require.NotNil(t, inv.Number)
	require.NotNil(t, inv.Date)
	assert.Equal(t, "INV-001", *inv.Number)
	assert.Equal(t, "12/05/2024", *inv.Date)
}

func TestExtractInvoice_Absence(t *testing.T) {
	inv := extract.ExtractInvoice([]string{"just a vendor name", "some items"})
	assert.Nil(t, inv.Number)
	assert.Nil(t, inv.Date)
}
