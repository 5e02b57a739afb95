package models

import (
	"time"
)

// DiffReport represents the results of one diff run over a pair of
// inputs. A multi-document input produces one DocumentResult per
// document pair, in document order.
type DiffReport struct {
	// Run details
	RunID     string
	LeftPath  string
	RightPath string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Results, one per document pair
	Results []DocumentResult

	// Overall status
	Status DiffStatus
}

// DocumentResult holds the differences found in one document pair
type DocumentResult struct {
	// Index is the zero-based position of the document pair in the input
	Index int

	// Differences found in this pair, in discovery order
	Differences []Difference

	// Error describes a failed comparison (empty on success)
	Error string
}

// TotalDifferences returns the number of differences across all
// document pairs
func (r *DiffReport) TotalDifferences() int {
	total := 0
	for _, res := range r.Results {
		total += len(res.Differences)
	}
	return total
}

// Failed reports whether any document pair failed to compare
func (r *DiffReport) Failed() bool {
	for _, res := range r.Results {
		if res.Error != "" {
			return true
		}
	}
	return false
}

// DiffStatus represents the overall result of a diff run
type DiffStatus string

const (
	// StatusEqual indicates no differences were found
	StatusEqual DiffStatus = "equal"
	// StatusDifferent indicates at least one difference was found
	StatusDifferent DiffStatus = "different"
	// StatusFailed indicates the comparison could not complete
	StatusFailed DiffStatus = "failed"
)

// ExitCode returns the appropriate process exit code for the status
func (s DiffStatus) ExitCode() int {
	switch s {
	case StatusEqual:
		return 0
	case StatusDifferent:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}
