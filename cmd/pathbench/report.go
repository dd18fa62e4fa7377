package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PABannier/pathbench/report"
)

func newReportCmd() *cobra.Command {
	var (
		inputDir   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a markdown report from a benchmark run directory",
		Long: `Aggregate the artifacts of a benchmark run (tile stress results,
WebSocket load-test log, micro-benchmarks, server metrics) into one
markdown report. Missing artifacts degrade to "no data" placeholders.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runReport(inputDir, outputPath)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&inputDir, "input-dir", "",
		"Directory containing benchmark results")
	flags.StringVar(&outputPath, "output", "",
		"Output markdown file (default: stdout)")

	_ = cmd.MarkFlagRequired("input-dir")

	return cmd
}

func runReport(inputDir, outputPath string) error {
	if _, err := os.Stat(inputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: input directory not found: %s\n", inputDir)

		return fmt.Errorf("input directory not found: %s", inputDir)
	}

	var buf bytes.Buffer
	if err := report.Generate(&buf, inputDir); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if outputPath == "" {
		_, err := os.Stdout.Write(buf.Bytes())

		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", outputPath, err)
	}

	fmt.Printf("Report saved to: %s\n", outputPath)

	return nil
}
