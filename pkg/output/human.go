package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// HumanFormatter formats a diff report in human-readable form
type HumanFormatter struct {
	left  *color.Color
	right *color.Color
}

// NewHumanFormatter creates a human-readable formatter.
// When colorize is true, left values print red and right values green.
func NewHumanFormatter(colorize bool) *HumanFormatter {
	f := &HumanFormatter{
		left:  color.New(color.FgRed),
		right: color.New(color.FgGreen),
	}
	if !colorize {
		f.left.DisableColor()
		f.right.DisableColor()
	}
	return f
}

// Write renders the report
func (f *HumanFormatter) Write(w io.Writer, report *models.DiffReport) error {
	fmt.Fprintf(w, "Comparing %s with %s\n", report.LeftPath, report.RightPath)
	fmt.Fprintf(w, "Documents: %d\n", len(report.Results))
	fmt.Fprintf(w, "Total differences: %d\n", report.TotalDifferences())

	for _, res := range report.Results {
		if len(res.Differences) == 0 && res.Error == "" {
			continue
		}

		fmt.Fprintf(w, "\nDocument %d:\n", res.Index)
		if res.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", res.Error)
			continue
		}

		for i := range res.Differences {
			d := &res.Differences[i]
			location := d.Path
			if location == "" {
				location = "(document)"
			}
			if d.ArrayIndex != nil {
				location = fmt.Sprintf("%s[%d]", location, *d.ArrayIndex)
			}

			fmt.Fprintf(w, "  %s: %s != %s",
				location,
				f.left.Sprintf("%v", convertValue(d, d.LeftValue)),
				f.right.Sprintf("%v", convertValue(d, d.RightValue)))
			if d.Type != nil {
				fmt.Fprintf(w, " (%s)", d.Type)
			}
			fmt.Fprintf(w, "\n")
		}
	}

	fmt.Fprintf(w, "\nCompleted in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Status: %s\n", report.Status)

	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
