package extract

import (
	"strings"
	"unicode/utf8"
)

const (
	// vendorHeaderWindow bounds the scan for GSTIN and phone.
	vendorHeaderWindow = 12
	// vendorNameWindow bounds the scan for the vendor name.
	vendorNameWindow = 3
)

// vendorNameStopwords disqualify a header line from being the vendor name.
var vendorNameStopwords = []string{"gst", "invoice", "sale receipt", "date"}

// ExtractVendor scans the header window for vendor identity fields.
// GSTIN and phone keep the last match within the window; the name keeps the
// first qualifying line and is never overwritten. The asymmetry is
// deliberate: identifiers tend to repeat lower in the header, while the
// earliest plausible text line is the best name candidate.
func ExtractVendor(lines []string) VendorInfo {
	var v VendorInfo
	for i, line := range lines {
		if i >= vendorHeaderWindow {
			break
		}
		if m := gstinPattern.FindString(line); m != "" {
			v.GSTIN = strptr(m)
		}
		if m := phonePattern.FindString(line); m != "" {
			v.Phone = strptr(m)
		}
		if v.Name == nil &&
			i < vendorNameWindow &&
			!anyDigit.MatchString(line) &&
			utf8.RuneCountInString(line) > 5 &&
			!containsAny(strings.ToLower(line), vendorNameStopwords) {
			v.Name = strptr(line)
		}
	}
	return v
}
