package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// YAMLFormatter formats a diff report as YAML
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Write renders the report as YAML
func (f *YAMLFormatter) Write(w io.Writer, report *models.DiffReport) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(buildReportData(report))
}

// Name returns the formatter name
func (f *YAMLFormatter) Name() string {
	return "yaml"
}
