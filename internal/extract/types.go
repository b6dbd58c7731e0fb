package extract

// DocumentType is a coarse category label derived from keyword presence,
// used to bias parsing heuristics by receipt domain.
type DocumentType string

const (
	DocTypeFuelReceipt DocumentType = "fuel_receipt"
	DocTypeTaxInvoice  DocumentType = "tax_invoice"
	DocTypeRestaurant  DocumentType = "restaurant"
	DocTypeReceipt     DocumentType = "receipt"
)

// VendorInfo holds the vendor identity fields found in the header window.
// Every field may legitimately be absent.
type VendorInfo struct {
	Name  *string `json:"name"`
	GSTIN *string `json:"gstin"`
	Phone *string `json:"phone"`
}

// InvoiceInfo holds invoice metadata. Either field may be absent.
type InvoiceInfo struct {
	Number *string `json:"number"`
	Date   *string `json:"date"`
}

// LineItem is a single purchased item recovered from one line of text.
// Integral values marshal without a fractional part.
type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  float64 `json:"quantity"`
	Total     float64 `json:"total"`
}

// AmountsSummary holds the monetary totals of the bill. Currency is always
// "INR"; no currency detection is performed.
type AmountsSummary struct {
	Subtotal   *int   `json:"subtotal"`
	Tax        *int   `json:"tax"`
	GrandTotal *int   `json:"grand_total"`
	Currency   string `json:"currency"`
}

// StructuredBill is the root aggregate produced by one parse invocation.
type StructuredBill struct {
	DocumentType DocumentType   `json:"document_type"`
	Vendor       VendorInfo     `json:"vendor"`
	Invoice      InvoiceInfo    `json:"invoice"`
	Items        []LineItem     `json:"items"`
	Amounts      AmountsSummary `json:"amounts"`
}
