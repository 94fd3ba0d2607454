package export

import "fmt"

// Format names a supported rendering.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts csv or pdf; an empty value means csv.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Table is ordered tabular content. Rows keep the order they were appended in.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Append adds a row, padding or truncating it to the header width.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.Headers))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Render encodes the table in the requested format.
func Render(t Table, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter().Render(t)
	case FormatPDF:
		return NewPDFExporter().Render(t)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
