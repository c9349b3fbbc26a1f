package excel

// RawRowData represents a row of raw spreadsheet data keyed by lower-cased header
type RawRowData map[string]string

// SheetData represents the complete tabular dataset
type SheetData struct {
	Headers []string     // Column headers as written in the file
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether a header matches name, ignoring case
func (d *SheetData) HasColumn(name string) bool {
	key := normalizeHeader(name)
	for _, h := range d.Headers {
		if normalizeHeader(h) == key {
			return true
		}
	}
	return false
}
