package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/diffnorris/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "diffnorris",
		Short: "Structured deep-diff utility for YAML and JSON documents",
		Long: `diffnorris compares two YAML or JSON documents and reports their
differences as a structured list: dotted paths, collection indices and
the values observed on each side. It is built on a reflective deep-diff
engine that can also compare arbitrary Go values when used as a library.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewDiffCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
