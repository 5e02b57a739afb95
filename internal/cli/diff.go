package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/diffnorris/internal/platform"
	"github.com/sdejongh/diffnorris/pkg/document"
	"github.com/sdejongh/diffnorris/pkg/logging"
	"github.com/sdejongh/diffnorris/pkg/models"
	"github.com/sdejongh/diffnorris/pkg/output"
)

// DiffFlags holds diff command flags
type DiffFlags struct {
	MaxDepth          int
	AllowTypeMismatch bool
	Compare           []string
	Ignore            []string
	Output            string
	Report            string
	ReportFormat      string
	NoColor           bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var diffFlags DiffFlags

// NewDiffCommand creates the diff command
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two YAML or JSON documents",
		Long: `Compare two YAML or JSON documents and report their differences.
Documents are decoded into object graphs and walked recursively;
multi-document YAML streams are compared pairwise in stream order.
Exits 0 when the documents are equal, 1 when they differ and 2 on failure.`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().IntVar(&diffFlags.MaxDepth, "max-depth", 0, "recursion depth limit (0 = use config default)")
	cmd.Flags().BoolVar(&diffFlags.AllowTypeMismatch, "allow-type-mismatch", false, "compare values of different types instead of failing")
	cmd.Flags().StringSliceVar(&diffFlags.Compare, "compare", nil, "member categories to compare: properties, fields, collections, all")
	cmd.Flags().StringSliceVar(&diffFlags.Ignore, "ignore", nil, "member names or dotted paths to skip")
	cmd.Flags().StringVarP(&diffFlags.Output, "output", "o", "", "output format: human, json, yaml")
	cmd.Flags().StringVar(&diffFlags.Report, "report", "", "write a report to this file")
	cmd.Flags().StringVar(&diffFlags.ReportFormat, "report-format", "json", "report file format: human, json, yaml")
	cmd.Flags().BoolVar(&diffFlags.NoColor, "no-color", false, "disable colorized output")

	cmd.Flags().StringVar(&diffFlags.LogFile, "log-file", "", "log file path")
	cmd.Flags().StringVar(&diffFlags.LogFormat, "log-format", "json", "log format: json, text")
	cmd.Flags().StringVar(&diffFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	leftPath := platform.NormalizePath(args[0])
	rightPath := platform.NormalizePath(args[1])

	// Validate flags and input paths
	if err := validateDiffFlags(leftPath, rightPath); err != nil {
		return err
	}

	// Load configuration and apply flag overrides
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	differ, err := buildDiffer(cfg)
	if err != nil {
		return err
	}

	leftDocs, err := document.Load(leftPath)
	if err != nil {
		return err
	}
	rightDocs, err := document.Load(rightPath)
	if err != nil {
		return err
	}

	report := &models.DiffReport{
		RunID:     uuid.New().String(),
		LeftPath:  leftPath,
		RightPath: rightPath,
		StartTime: time.Now(),
	}

	logger.Info(ctx, "starting diff", logging.Fields{
		"run_id": report.RunID,
		"left":   leftPath,
		"right":  rightPath,
	})

	pairs := len(leftDocs)
	if len(rightDocs) > pairs {
		pairs = len(rightDocs)
	}

	var bar *pb.ProgressBar
	if cfg.Output.Progress && pairs > 1 && output.IsTerminal(os.Stderr) {
		bar = output.NewDocumentBar(pairs)
	}

	failed := false
	for i := 0; i < pairs; i++ {
		var left, right any
		if i < len(leftDocs) {
			left = leftDocs[i]
		}
		if i < len(rightDocs) {
			right = rightDocs[i]
		}

		result := models.DocumentResult{Index: i}
		diffs, err := differ.Diff(left, right)
		if err != nil {
			result.Error = err.Error()
			failed = true
			logger.Error(ctx, "document comparison failed", err, logging.Fields{
				"run_id":   report.RunID,
				"document": i,
			})
		} else {
			result.Differences = diffs
		}
		report.Results = append(report.Results, result)

		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	switch {
	case failed:
		report.Status = models.StatusFailed
	case report.TotalDifferences() > 0:
		report.Status = models.StatusDifferent
	default:
		report.Status = models.StatusEqual
	}

	logger.Info(ctx, "diff completed", logging.Fields{
		"run_id":      report.RunID,
		"status":      string(report.Status),
		"differences": report.TotalDifferences(),
		"duration_ms": report.Duration.Milliseconds(),
	})

	if !cfg.Output.Quiet {
		colorize := cfg.Output.Color && !diffFlags.NoColor && output.IsTerminal(os.Stdout)
		formatter, err := output.NewFormatter(cfg.Output.Format, colorize)
		if err != nil {
			return err
		}
		if err := formatter.Write(os.Stdout, report); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if diffFlags.Report != "" {
		if err := output.WriteDiffReport(report, diffFlags.Report, diffFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	os.Exit(report.Status.ExitCode())
	return nil
}
