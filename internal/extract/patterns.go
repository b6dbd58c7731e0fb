package extract

import "regexp"

// Pattern rules used by the extractors. Each rule is named so it can be
// unit-tested and replaced without touching extractor control flow.
var (
	// disallowedChars matches everything outside the normalization
	// allow-list: word characters, letters in any script, currency symbols,
	// and light punctuation. \w alone is ASCII-only, so \p{L} is needed to
	// keep accented vendor names intact.
	disallowedChars = regexp.MustCompile(`[^\w\p{L}₹€$.,:/\- ]+`)

	// gstinPattern matches a 15-character Indian GSTIN:
	// 2-digit state code, 5-letter entity, 4 digits, letter, entity
	// number, the literal Z, checksum.
	gstinPattern = regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z]\wZ\w\b`)

	// phonePattern matches a bare 10-digit Indian phone number.
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)

	anyDigit = regexp.MustCompile(`\d`)

	// invoiceNoPattern captures the alphanumeric token after an
	// invoice/bill label; the token is submatch 3.
	invoiceNoPattern = regexp.MustCompile(`(?i)(invoice|bill)\s*(no|number)?\s*[:\-]?\s*([A-Z0-9\-]+)`)

	// datePattern matches numeric D/M/Y dates or "12 January 2024" style.
	datePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{1,2}\s+[A-Za-z]{3,}\s+\d{4}\b`)

	digitRun = regexp.MustCompile(`\d+`)

	// amountPattern captures a 2-7 digit monetary figure with an optional
	// leading rupee symbol.
	amountPattern = regexp.MustCompile(`₹?\s*(\d{2,7})`)

	// taxAmountPattern captures any digit run on a CGST/SGST line.
	taxAmountPattern = regexp.MustCompile(`₹?\s*(\d+)`)
)
