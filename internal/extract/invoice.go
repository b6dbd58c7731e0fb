package extract

// ExtractInvoice scans all lines top-to-bottom for invoice metadata.
// The first match wins for each field independently.
func ExtractInvoice(lines []string) InvoiceInfo {
	var inv InvoiceInfo
	for _, line := range lines {
		if inv.Number == nil {
			if m := invoiceNoPattern.FindStringSubmatch(line); m != nil {
				inv.Number = strptr(m[3])
			}
		}
		if inv.Date == nil {
			if m := datePattern.FindString(line); m != "" {
				inv.Date = strptr(m)
			}
		}
	}
	return inv
}
