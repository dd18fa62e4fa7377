package baseline

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Status classifies how a metric moved relative to the baseline.
type Status string

const (
	StatusRegressed Status = "REGRESSED"
	StatusImproved  Status = "IMPROVED"
	StatusChanged   Status = "CHANGED"
	StatusOK        Status = "OK"
	StatusNA        Status = "N/A"
)

// p99Metric is the only metric whose regression fails a comparison.
const p99Metric = "p99_ms"

// Metrics where lower is better (latencies).
var lowerIsBetter = map[string]bool{
	"p50_ms":  true,
	"p90_ms":  true,
	"p95_ms":  true,
	"p99_ms":  true,
	"p999_ms": true,
}

// Metrics where higher is better (throughput).
var higherIsBetter = map[string]bool{
	"requests_per_sec": true,
	"success_rate":     true,
}

// Row is the comparison outcome for a single metric.
type Row struct {
	Metric    string
	Baseline  float64
	Current   float64
	ChangePct float64
	// Infinite marks a zero baseline with a nonzero current value,
	// where the percentage change is undefined.
	Infinite bool
	Status   Status
}

// Comparison holds per-metric rows and the aggregate verdict.
type Comparison struct {
	Rows      []Row
	Threshold float64
	Passed    bool
}

// Compare evaluates current metrics against a baseline. A metric
// missing from either side defaults to zero. Passed flips to false
// only when p99_ms regresses beyond the threshold.
func Compare(current, base Metrics, thresholdPct float64) *Comparison {
	names := make([]string, 0, len(current)+len(base))
	seen := make(map[string]bool)

	for name := range current {
		names = append(names, name)
		seen[name] = true
	}

	for name := range base {
		if !seen[name] {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	cmp := &Comparison{
		Rows:      make([]Row, 0, len(names)),
		Threshold: thresholdPct,
		Passed:    true,
	}

	for _, name := range names {
		row := Row{
			Metric:   name,
			Baseline: base[name],
			Current:  current[name],
		}

		if row.Baseline == 0 {
			row.Infinite = row.Current != 0
		} else {
			row.ChangePct = (row.Current - row.Baseline) / row.Baseline * 100
		}

		row.Status = classify(row, thresholdPct)

		if row.Status == StatusRegressed && name == p99Metric {
			cmp.Passed = false
		}

		cmp.Rows = append(cmp.Rows, row)
	}

	return cmp
}

func classify(row Row, threshold float64) Status {
	regressed := false

	switch {
	case lowerIsBetter[row.Metric]:
		regressed = row.Infinite || row.ChangePct > threshold
	case higherIsBetter[row.Metric]:
		regressed = !row.Infinite && row.ChangePct < -threshold
	}

	switch {
	case regressed:
		return StatusRegressed
	case row.Infinite:
		// Zero baseline on a metric without a losing direction:
		// no meaningful comparison.
		return StatusNA
	case math.Abs(row.ChangePct) < 5:
		return StatusOK
	case lowerIsBetter[row.Metric] && row.ChangePct < 0:
		return StatusImproved
	case higherIsBetter[row.Metric] && row.ChangePct > 0:
		return StatusImproved
	default:
		return StatusChanged
	}
}

var statusColors = map[Status]*color.Color{
	StatusRegressed: color.New(color.FgRed),
	StatusImproved:  color.New(color.FgGreen),
	StatusOK:        color.New(color.FgGreen),
	StatusChanged:   color.New(color.FgYellow),
	StatusNA:        color.New(color.FgYellow),
}

var statusEmoji = map[Status]string{
	StatusRegressed: "🔴 REGRESSED",
	StatusImproved:  "🟢 IMPROVED",
	StatusOK:        "✅ OK",
	StatusChanged:   "🟡 CHANGED",
	StatusNA:        "⚪ N/A",
}

// RenderTerminal writes aligned per-metric rows with colored statuses.
func (c *Comparison) RenderTerminal(w io.Writer) {
	for _, row := range c.Rows {
		status := statusColors[row.Status].Sprint(string(row.Status))

		fmt.Fprintf(w, "  %-20s %12s → %12s  (%8s)  %s\n",
			row.Metric,
			formatValue(row.Metric, row.Baseline),
			formatValue(row.Metric, row.Current),
			formatChange(row),
			status,
		)
	}
}

// RenderMarkdown writes the comparison as a markdown table suitable
// for PR comments.
func (c *Comparison) RenderMarkdown(w io.Writer) {
	fmt.Fprintln(w, "| Metric | Baseline | Current | Change | Status |")
	fmt.Fprintln(w, "|--------|----------|---------|--------|--------|")

	for _, row := range c.Rows {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			row.Metric,
			formatValue(row.Metric, row.Baseline),
			formatValue(row.Metric, row.Current),
			formatChange(row),
			statusEmoji[row.Status],
		)
	}
}

func formatValue(metric string, v float64) string {
	switch {
	case strings.HasSuffix(metric, "_ms"):
		return fmt.Sprintf("%.1fms", v)
	case metric == "success_rate":
		return fmt.Sprintf("%.1f%%", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func formatChange(row Row) string {
	if row.Infinite {
		return "N/A"
	}

	if row.ChangePct > 0 {
		return fmt.Sprintf("+%.1f%%", row.ChangePct)
	}

	return fmt.Sprintf("%.1f%%", row.ChangePct)
}
