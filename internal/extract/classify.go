package extract

import "strings"

// docTypeRules are tested in priority order; the first matching rule wins.
// Fuel keywords outrank tax keywords, which outrank restaurant keywords.
var docTypeRules = []struct {
	docType  DocumentType
	keywords []string
}{
	{DocTypeFuelReceipt, []string{"petrol", "fuel", "diesel"}},
	{DocTypeTaxInvoice, []string{"gst", "invoice no"}},
	{DocTypeRestaurant, []string{"food", "hotel", "restaurant"}},
}

// Classify labels the joined normalized text with a coarse document type.
// It never fails; receipt is the default.
func Classify(joined string) DocumentType {
	lower := strings.ToLower(joined)
	for _, rule := range docTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.docType
			}
		}
	}
	return DocTypeReceipt
}
