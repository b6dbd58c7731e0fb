// Package extract converts noisy OCR text recovered from a photographed
// receipt or invoice into a structured bill record suitable for downstream
// bookkeeping ingestion. The pipeline is a pure function of its input text:
// line normalization, document-type classification, and four independent
// field extractors whose partial results are merged into one StructuredBill.
//
// Failure to extract a field is an expected outcome, not an error: absent
// fields are null and empty input yields an all-empty bill.
package extract

import "strings"

// Default values for the tunable heuristic constants. The tolerance and the
// last-three-numbers convention are tuned for common Indian receipt layouts;
// sensitivity to alternate column orders (e.g. quantity before price) is a
// known accuracy limitation.
const (
	DefaultMathTolerance  = 1.0
	DefaultMinItemNumbers = 3
)

// Options tunes the heuristic constants of the pipeline. The zero value
// selects the documented defaults.
type Options struct {
	// MathTolerance is the absolute allowance on
	// |unit_price*quantity - total| when accepting an item line. It absorbs
	// OCR digit corruption and rounding.
	MathTolerance float64

	// MinItemNumbers is the minimum count of digit runs a line needs to
	// qualify as an item row. Values below 3 are raised to 3 because the
	// heuristic reads the last three numbers as price, quantity, total.
	MinItemNumbers int
}

func (o Options) withDefaults() Options {
	if o.MathTolerance <= 0 {
		o.MathTolerance = DefaultMathTolerance
	}
	if o.MinItemNumbers < 3 {
		o.MinItemNumbers = DefaultMinItemNumbers
	}
	return o
}

// Parser runs the full text-to-structured-bill pipeline. It is stateless
// and safe for concurrent use from any number of goroutines.
type Parser struct {
	opts Options
}

// NewParser creates a Parser with the given options; zero-value options
// select the defaults.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts.withDefaults()}
}

// Parse converts raw OCR text into a StructuredBill. It never fails for
// input-quality reasons: "could not find X" is communicated through null
// fields and empty sequences.
func (p *Parser) Parse(text string) *StructuredBill {
	lines := Normalize(text)
	docType := Classify(strings.Join(lines, " "))

	return &StructuredBill{
		DocumentType: docType,
		Vendor:       ExtractVendor(lines),
		Invoice:      ExtractInvoice(lines),
		Items:        ExtractItems(lines, docType, p.opts),
		Amounts:      ExtractAmounts(lines),
	}
}

func strptr(s string) *string { return &s }

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
