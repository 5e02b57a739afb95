package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// Formatter renders a diff report to a writer
type Formatter interface {
	// Write renders the report
	Write(w io.Writer, report *models.DiffReport) error

	// Name returns the formatter name
	Name() string
}

// NewFormatter creates a formatter by name: "human", "json" or "yaml"
func NewFormatter(format string, colorize bool) (Formatter, error) {
	switch format {
	case "human":
		return NewHumanFormatter(colorize), nil
	case "json":
		return NewJSONFormatter(), nil
	case "yaml":
		return NewYAMLFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (valid: human, json, yaml)", format)
	}
}

// reportData is the serializable shape of a diff report, shared by the
// json and yaml formatters
type reportData struct {
	RunID            string         `json:"run_id" yaml:"run_id"`
	Left             string         `json:"left" yaml:"left"`
	Right            string         `json:"right" yaml:"right"`
	StartTime        time.Time      `json:"start_time" yaml:"start_time"`
	Duration         string         `json:"duration" yaml:"duration"`
	DurationMs       int64          `json:"duration_ms" yaml:"duration_ms"`
	Status           string         `json:"status" yaml:"status"`
	TotalDifferences int            `json:"total_differences" yaml:"total_differences"`
	Documents        []documentData `json:"documents" yaml:"documents"`
}

// documentData holds the differences of one document pair
type documentData struct {
	Index       int              `json:"index" yaml:"index"`
	Differences []differenceData `json:"differences,omitempty" yaml:"differences,omitempty"`
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// differenceData is one serializable difference
type differenceData struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	Path     string `json:"path" yaml:"path"`
	Index    *int   `json:"index,omitempty" yaml:"index,omitempty"`
	Left     any    `json:"left" yaml:"left"`
	Right    any    `json:"right" yaml:"right"`
}

// buildReportData converts a report into its serializable shape,
// applying any value converters attached to the differences
func buildReportData(report *models.DiffReport) reportData {
	data := reportData{
		RunID:            report.RunID,
		Left:             report.LeftPath,
		Right:            report.RightPath,
		StartTime:        report.StartTime,
		Duration:         report.Duration.Round(time.Millisecond).String(),
		DurationMs:       report.Duration.Milliseconds(),
		Status:           string(report.Status),
		TotalDifferences: report.TotalDifferences(),
	}

	for _, res := range report.Results {
		doc := documentData{Index: res.Index, Error: res.Error}
		for i := range res.Differences {
			d := &res.Differences[i]
			entry := differenceData{
				Property: d.PropertyName,
				Path:     d.Path,
				Index:    d.ArrayIndex,
				Left:     convertValue(d, d.LeftValue),
				Right:    convertValue(d, d.RightValue),
			}
			if d.Type != nil {
				entry.Type = d.Type.String()
			}
			doc.Differences = append(doc.Differences, entry)
		}
		data.Documents = append(data.Documents, doc)
	}

	return data
}

// convertValue applies a difference's converter hook, if any
func convertValue(d *models.Difference, value any) any {
	if d.ValueConverter == nil {
		return value
	}
	return d.ValueConverter(value)
}
