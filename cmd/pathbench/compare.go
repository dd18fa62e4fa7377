package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PABannier/pathbench/baseline"
)

var (
	tagOK    = color.New(color.FgGreen).Sprint("[OK]")
	tagWarn  = color.New(color.FgYellow).Sprint("[WARN]")
	tagError = color.New(color.FgRed).Sprint("[ERROR]")
)

type compareConfig struct {
	currentPath  string
	baselinePath string
	threshold    float64
	savePath     string
	outputPath   string
	description  string
	markdown     bool
	ci           bool
}

func newCompareCmd() *cobra.Command {
	var cfg compareConfig

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare benchmark results against a saved baseline",
		Long: `Compare current benchmark results to a saved baseline, reporting
percentage changes per metric. The run fails (exit code 1) only when
the P99 latency metric regresses beyond the threshold.

Use --save-baseline to snapshot a results file as a new baseline
instead of comparing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.currentPath, "current", "c", "",
		"Current results JSON file")
	flags.StringVarP(&cfg.baselinePath, "baseline", "b", "",
		"Baseline JSON file to compare against")
	flags.Float64VarP(&cfg.threshold, "threshold", "t", 10.0,
		"Regression threshold percentage")
	flags.StringVar(&cfg.savePath, "save-baseline", "",
		"Save the given results file as a new baseline")
	flags.StringVarP(&cfg.outputPath, "output", "o", "",
		"Output path for the baseline (with --save-baseline)")
	flags.StringVarP(&cfg.description, "description", "d", "",
		"Description for the baseline (with --save-baseline)")
	flags.BoolVar(&cfg.markdown, "markdown", false,
		"Output comparison as a markdown table")
	flags.BoolVar(&cfg.ci, "ci", false,
		"CI mode: minimal output, exit code indicates pass/fail")

	return cmd
}

func runCompare(cmd *cobra.Command, cfg compareConfig) error {
	if cfg.savePath != "" {
		return saveBaseline(cfg)
	}

	if cfg.currentPath == "" || cfg.baselinePath == "" {
		_ = cmd.Help()

		return errors.New("both --current and --baseline are required")
	}

	if _, err := os.Stat(cfg.currentPath); err != nil {
		fmt.Printf("%s Current results not found: %s\n", tagError, cfg.currentPath)

		return fmt.Errorf("current results not found: %s", cfg.currentPath)
	}

	if _, err := os.Stat(cfg.baselinePath); err != nil {
		// No baseline yet is not a failure; the first run creates one.
		fmt.Printf("%s Baseline not found: %s\n", tagWarn, cfg.baselinePath)
		fmt.Println("Run with --save-baseline to create initial baseline")

		return nil
	}

	currentDoc, err := baseline.LoadDocument(cfg.currentPath)
	if err != nil {
		fmt.Printf("%s %v\n", tagError, err)

		return err
	}

	baselineDoc, err := baseline.LoadDocument(cfg.baselinePath)
	if err != nil {
		fmt.Printf("%s %v\n", tagError, err)

		return err
	}

	cmp := baseline.Compare(
		baseline.ExtractMetrics(currentDoc),
		baseline.ExtractMetrics(baselineDoc),
		cfg.threshold,
	)

	switch {
	case cfg.markdown:
		printMarkdown(cmp)
	case cfg.ci:
		if !cmp.Passed {
			fmt.Printf("FAILED: P99 regression exceeds %.1f%% threshold\n", cfg.threshold)
		}
	default:
		printTerminal(cmp, cfg)
	}

	if !cmp.Passed {
		return fmt.Errorf("P99 latency regression exceeds %.1f%% threshold", cfg.threshold)
	}

	return nil
}

func saveBaseline(cfg compareConfig) error {
	if cfg.outputPath == "" {
		fmt.Printf("%s --output required with --save-baseline\n", tagError)

		return errors.New("--output required with --save-baseline")
	}

	doc, err := baseline.LoadDocument(cfg.savePath)
	if err != nil {
		fmt.Printf("%s %v\n", tagError, err)

		return err
	}

	b := baseline.New(doc, cfg.description)
	if err := b.Save(cfg.outputPath); err != nil {
		fmt.Printf("%s %v\n", tagError, err)

		return err
	}

	fmt.Printf("%s Saved baseline to %s\n", tagOK, cfg.outputPath)

	return nil
}

func printMarkdown(cmp *baseline.Comparison) {
	fmt.Println("## Benchmark Comparison")
	fmt.Println()
	cmp.RenderMarkdown(os.Stdout)
	fmt.Println()

	if cmp.Passed {
		fmt.Println("**Result: ✅ PASSED** - No significant regressions detected")
	} else {
		fmt.Println("**Result: ❌ FAILED** - P99 latency regression exceeds threshold")
	}
}

func printTerminal(cmp *baseline.Comparison, cfg compareConfig) {
	rule := strings.Repeat("=", 60)

	fmt.Println()
	fmt.Println(rule)
	fmt.Println(" Benchmark Comparison")
	fmt.Println(rule)
	fmt.Println()
	fmt.Printf("  Baseline: %s\n", cfg.baselinePath)
	fmt.Printf("  Current:  %s\n", cfg.currentPath)
	fmt.Printf("  Threshold: %.1f%%\n", cfg.threshold)
	fmt.Println()
	cmp.RenderTerminal(os.Stdout)
	fmt.Println()

	if cmp.Passed {
		fmt.Printf("%s: No significant regressions detected\n",
			color.New(color.FgGreen).Sprint("PASSED"))
	} else {
		fmt.Printf("%s: P99 latency regression exceeds %.1f%% threshold\n",
			color.New(color.FgRed).Sprint("FAILED"), cfg.threshold)
	}

	fmt.Println()
}
