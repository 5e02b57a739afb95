package output

import (
	"fmt"
	"os"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// WriteDiffReport writes the diff report to a file
// Format can be "human", "json" or "yaml"
func WriteDiffReport(report *models.DiffReport, path string, format string) error {
	if report.TotalDifferences() == 0 && !report.Failed() {
		// No differences - don't create an empty file
		return nil
	}

	formatter, err := NewFormatter(format, false)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := formatter.Write(file, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
