package extract

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// itemStopKeywords mark structural lines (totals, tax rows, headers) that
// are never item rows, regardless of arithmetic validity.
var itemStopKeywords = []string{
	"subtotal", "total", "cgst", "sgst", "tax",
	"cash", "amount", "invoice", "date", "gst", "table",
}

// itemScrubber prepares a line for numeric extraction: drops the rupee
// symbol, collapses x/X multiplication markers to spaces, and strips
// thousands-separator commas.
var itemScrubber = strings.NewReplacer("₹", "", "X", " ", "x", " ", ",", "")

// grandTotalKeywords qualify a line as the grand-total line in the
// bottom-up amounts scan.
var grandTotalKeywords = []string{"total", "cash", "amount payable"}

// ExtractItems pulls line items out of the normalized lines. docType is
// threaded through for future per-type item rules; the current heuristic is
// shared across all document types.
//
// OCR text has no column structure, so item rows are recognized by a
// three-pass filter: stop-keyword exclusion, a minimum count of digit runs,
// and the arithmetic consistency check unit_price*quantity ~ total. The
// last three numbers on a line are read as price, quantity, total.
func ExtractItems(lines []string, docType DocumentType, opts Options) []LineItem {
	opts = opts.withDefaults()

	items := []LineItem{}
	for _, line := range lines {
		if containsAny(strings.ToLower(line), itemStopKeywords) {
			continue
		}

		clean := itemScrubber.Replace(line)
		numbers := digitRun.FindAllString(clean, -1)
		if len(numbers) < opts.MinItemNumbers {
			continue
		}

		total, err := strconv.ParseFloat(numbers[len(numbers)-1], 64)
		if err != nil {
			continue
		}
		quantity, err := strconv.ParseFloat(numbers[len(numbers)-2], 64)
		if err != nil {
			continue
		}
		unitPrice, err := strconv.ParseFloat(numbers[len(numbers)-3], 64)
		if err != nil {
			continue
		}

		name := strings.TrimSpace(digitRun.ReplaceAllString(clean, ""))
		if utf8.RuneCountInString(name) < 3 {
			continue
		}

		if math.Abs(unitPrice*quantity-total) > opts.MathTolerance {
			continue
		}

		items = append(items, LineItem{
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
			Total:     total,
		})
	}
	return items
}
