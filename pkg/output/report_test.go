package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/diffnorris/pkg/models"
)

func TestWriteDiffReport(t *testing.T) {
	t.Run("WritesDifferences", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		if err := WriteDiffReport(sampleReport(), path, "json"); err != nil {
			t.Fatalf("WriteDiffReport() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("report file not written: %v", err)
		}
		if !strings.Contains(string(data), `"run_id": "run-123"`) {
			t.Errorf("unexpected report contents:\n%s", data)
		}
	})

	t.Run("SkipsEqualReport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		report := &models.DiffReport{
			Status:  models.StatusEqual,
			Results: []models.DocumentResult{{Index: 0}},
		}

		if err := WriteDiffReport(report, path, "json"); err != nil {
			t.Fatalf("WriteDiffReport() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("report file created for an equal comparison")
		}
	})

	t.Run("WritesFailedReport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		report := &models.DiffReport{
			Status:  models.StatusFailed,
			Results: []models.DocumentResult{{Index: 0, Error: "boom"}},
		}

		if err := WriteDiffReport(report, path, "yaml"); err != nil {
			t.Fatalf("WriteDiffReport() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report file not written: %v", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.xml")
		if err := WriteDiffReport(sampleReport(), path, "xml"); err == nil {
			t.Fatal("WriteDiffReport() expected an error for an unknown format")
		}
	})
}
