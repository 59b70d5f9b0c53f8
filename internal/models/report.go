package models

import "fmt"

// ReportFormat selects the rendered transcript encoding.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ParseReportFormat validates a raw format string.
func ParseReportFormat(raw string) (ReportFormat, error) {
	switch ReportFormat(raw) {
	case ReportFormatCSV, ReportFormatPDF:
		return ReportFormat(raw), nil
	default:
		return "", fmt.Errorf("unsupported format %q", raw)
	}
}

// ContentType returns the MIME type for HTTP delivery.
func (f ReportFormat) ContentType() string {
	if f == ReportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}
