package playlist

import "strings"

// Envelope is the JSON response shape: row count plus the rows themselves.
type Envelope struct {
	Count int      `json:"count"`
	Rows  []Record `json:"rows"`
}

// NewEnvelope wraps records in the JSON envelope. Rows is never null.
func NewEnvelope(records []Record) Envelope {
	if records == nil {
		records = []Record{}
	}
	return Envelope{Count: len(records), Rows: records}
}

var csvHeader = []string{"Artist", "Year", "Title", "Link"}

// RenderCSV produces the CSV export: a fixed header row, then one row per
// record. Every field is quoted, with embedded quotes doubled, so the output
// parses back exactly under any standard CSV reader.
func RenderCSV(records []Record) string {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for _, record := range records {
		writeCSVRow(&b, []string{record.Artist, record.Year, record.Title, record.Link})
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
