// Package main provides the CLI entry point for pathbench, the
// PathCollab benchmark tooling: baseline comparison, report
// generation, and test fixture generation.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "pathbench",
		Short: "PathCollab benchmark tooling",
		Long: `Pathbench compares benchmark runs against saved baselines, aggregates
run artifacts into markdown reports, and generates deterministic
deep-zoom fixtures for CI testing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCompareCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newFixturesCmd(logger))

	return root
}
