package output

import (
	"encoding/json"
	"io"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// JSONFormatter formats a diff report as JSON for automation and
// scripting
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Write renders the report as indented JSON
func (f *JSONFormatter) Write(w io.Writer, report *models.DiffReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildReportData(report))
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
