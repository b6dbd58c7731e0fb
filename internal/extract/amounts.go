package extract

import (
	"strconv"
	"strings"
)

// ExtractAmounts recovers the monetary summary of the bill.
//
// Subtotal is the last "sub" line scanned top-to-bottom. Tax accumulates
// across every CGST/SGST line so both components contribute to one figure.
// The grand total is found by scanning bottom-to-top, because totals are
// conventionally printed at the bottom and a subtotal line may also contain
// the word "total"; the scan stops at the first qualifying line that
// actually yields a number.
func ExtractAmounts(lines []string) AmountsSummary {
	amounts := AmountsSummary{Currency: "INR"}

	var subtotal, grandTotal *int
	tax := 0

	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), "sub") {
			continue
		}
		if m := amountPattern.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				subtotal = &n
			}
		}
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "cgst") && !strings.Contains(lower, "sgst") {
			continue
		}
		if m := taxAmountPattern.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				tax += n
			}
		}
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if !containsAny(strings.ToLower(lines[i]), grandTotalKeywords) {
			continue
		}
		if m := amountPattern.FindStringSubmatch(lines[i]); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				grandTotal = &n
				break
			}
		}
	}

	// No explicit CGST/SGST figure found: derive tax from the difference.
	// A zero subtotal never participates in the derivation.
	if tax == 0 && subtotal != nil && *subtotal != 0 && grandTotal != nil {
		tax = *grandTotal - *subtotal
	}

	amounts.Subtotal = subtotal
	amounts.GrandTotal = grandTotal
	if tax != 0 {
		amounts.Tax = &tax
	}
	return amounts
}
