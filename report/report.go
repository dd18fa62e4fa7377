// Package report aggregates benchmark run artifacts into a single
// markdown report. Missing inputs degrade to "no data" placeholders.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Well-known file names inside a benchmark run directory.
const (
	tileStressFile    = "tile_stress.json"
	websocketLoadFile = "websocket_load.txt"
	microBenchFile    = "micro_benchmarks.txt"
	serverMetricsFile = "server_metrics.json"
)

// Tile serving passes when P99 stays under this many milliseconds.
const tileP99BudgetMs = 100

// Generate writes a markdown benchmark report for the given run
// directory to w.
func Generate(w io.Writer, inputDir string) error {
	tile, tileOK := loadJSON(filepath.Join(inputDir, tileStressFile))
	wsText, wsOK := loadText(filepath.Join(inputDir, websocketLoadFile))

	var ws wsResult
	if wsOK {
		ws = parseWebSocket(wsText)
	}

	writeHeader(w, inputDir)
	writeSummary(w, tile, tileOK, ws, wsOK)
	writeTilePerformance(w, tile, tileOK)
	writeWebSocket(w, ws, wsText, wsOK)
	writeMicroBenchmarks(w, inputDir)
	writeServerMetrics(w, inputDir)

	// Footer.
	fmt.Fprintln(w, "---")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "*Report generated by `pathbench report`*")

	return nil
}

func writeHeader(w io.Writer, inputDir string) {
	fmt.Fprintln(w, "# PathCollab Benchmark Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "**Generated:** %s UTC\n",
		time.Now().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "**Run directory:** `%s`\n", filepath.Base(inputDir))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Table of Contents")
	fmt.Fprintln(w, "- [Summary](#summary)")
	fmt.Fprintln(w, "- [HTTP Tile Performance](#http-tile-performance)")
	fmt.Fprintln(w, "- [WebSocket Performance](#websocket-performance)")
	fmt.Fprintln(w, "- [Micro-benchmarks](#micro-benchmarks)")
	fmt.Fprintln(w, "- [Server Metrics](#server-metrics)")
	fmt.Fprintln(w)
}

func writeSummary(
	w io.Writer,
	tile map[string]any,
	tileOK bool,
	ws wsResult,
	wsOK bool,
) {
	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)

	var items []string

	tileStatus := "⚠️ No data"

	if tileOK {
		rps := nestedFloat(tile, "summary", "requestsPerSec")
		p99 := nestedFloat(tile, "latencyPercentiles", "p99") * 1000
		success := nestedFloatDefault(tile, 1, "summary", "successRate") * 100

		items = append(items, fmt.Sprintf(
			"- **Tile serving:** %.0f req/s, P99: %.1fms, Success: %.1f%%",
			rps, p99, success))

		if p99 < tileP99BudgetMs {
			tileStatus = "✅ PASS"
		} else {
			tileStatus = "❌ FAIL (P99 > 100ms)"
		}
	} else {
		items = append(items, "- **Tile serving:** No data collected")
	}

	wsStatus := "⚠️ No data"

	switch {
	case wsOK && ws.Passed:
		wsStatus = "✅ PASS"
		items = append(items, fmt.Sprintf(
			"- **WebSocket:** P99 cursor: %s, P99 viewport: %s",
			orNA(ws.CursorP99), orNA(ws.ViewportP99)))
	case wsOK:
		wsStatus = "❌ FAIL"
		items = append(items, "- **WebSocket:** Test failed")
	default:
		items = append(items, "- **WebSocket:** No data collected")
	}

	fmt.Fprintln(w, "| Component | Status |")
	fmt.Fprintln(w, "|-----------|--------|")
	fmt.Fprintf(w, "| HTTP Tile Serving | %s |\n", tileStatus)
	fmt.Fprintf(w, "| WebSocket Broadcasting | %s |\n", wsStatus)
	fmt.Fprintln(w)

	for _, item := range items {
		fmt.Fprintln(w, item)
	}

	fmt.Fprintln(w)
}

func writeTilePerformance(w io.Writer, tile map[string]any, tileOK bool) {
	fmt.Fprintln(w, "## HTTP Tile Performance")
	fmt.Fprintln(w)

	if !tileOK {
		fmt.Fprintln(w, "*No HTTP tile performance data available.*")
		fmt.Fprintln(w)

		return
	}

	fmt.Fprintln(w, "### Throughput")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Requests/sec:** %.1f\n",
		nestedFloat(tile, "summary", "requestsPerSec"))
	fmt.Fprintf(w, "- **Total requests:** %s\n",
		formatJSONValue(nestedValue(tile, "summary", "total")))
	fmt.Fprintf(w, "- **Success rate:** %.1f%%\n",
		nestedFloatDefault(tile, 1, "summary", "successRate")*100)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "### Latency Distribution")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Percentile | Latency |")
	fmt.Fprintln(w, "|------------|---------|")

	for _, p := range []string{"p50", "p75", "p90", "p95", "p99", "p999"} {
		ms := nestedFloat(tile, "latencyPercentiles", p) * 1000
		fmt.Fprintf(w, "| P%s | %.2fms |\n", p[1:], ms)
	}

	fmt.Fprintln(w)

	codes, ok := tile["statusCodeDistribution"].(map[string]any)
	if !ok || len(codes) == 0 {
		return
	}

	fmt.Fprintln(w, "### Status Codes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Code | Count |")
	fmt.Fprintln(w, "|------|-------|")

	keys := make([]string, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}

	sort.Strings(keys)

	for _, code := range keys {
		fmt.Fprintf(w, "| %s | %s |\n", code, formatJSONValue(codes[code]))
	}

	fmt.Fprintln(w)
}

func writeWebSocket(w io.Writer, ws wsResult, wsText string, wsOK bool) {
	fmt.Fprintln(w, "## WebSocket Performance")
	fmt.Fprintln(w)

	if !wsOK {
		fmt.Fprintln(w, "*No WebSocket performance data available.*")
		fmt.Fprintln(w)

		return
	}

	verdict := "FAIL"
	if ws.Passed {
		verdict = "PASS"
	}

	fmt.Fprintln(w, "### Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Status:** %s\n", verdict)
	fmt.Fprintf(w, "- **Messages sent:** %d\n", ws.MessagesSent)
	fmt.Fprintf(w, "- **Messages received:** %d\n", ws.MessagesReceived)
	fmt.Fprintf(w, "- **Cursor P99:** %s\n", orNA(ws.CursorP99))
	fmt.Fprintf(w, "- **Viewport P99:** %s\n", orNA(ws.ViewportP99))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "<details>")
	fmt.Fprintln(w, "<summary>Raw Output</summary>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "```")
	fmt.Fprintln(w, rawExcerpt(wsText))
	fmt.Fprintln(w, "```")
	fmt.Fprintln(w, "</details>")
	fmt.Fprintln(w)
}

func writeMicroBenchmarks(w io.Writer, inputDir string) {
	fmt.Fprintln(w, "## Micro-benchmarks")
	fmt.Fprintln(w)

	text, ok := loadText(filepath.Join(inputDir, microBenchFile))
	if !ok {
		fmt.Fprintln(w, "*No micro-benchmark data available.*")
		fmt.Fprintln(w)

		return
	}

	benchmarks := parseCriterion(text)
	if len(benchmarks) == 0 {
		fmt.Fprintln(w, "*Could not parse benchmark results.*")
		fmt.Fprintln(w)

		return
	}

	for _, group := range groupBenchmarks(benchmarks) {
		fmt.Fprintf(w, "### %s\n", titleCase(group.name))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Benchmark | Time (median) | Range |")
		fmt.Fprintln(w, "|-----------|---------------|-------|")

		for _, b := range group.entries {
			fmt.Fprintf(w, "| %s | %s | %s - %s |\n",
				b.shortName(),
				formatDuration(b.MidUs),
				formatDuration(b.LowUs),
				formatDuration(b.HighUs),
			)
		}

		fmt.Fprintln(w)
	}
}

func writeServerMetrics(w io.Writer, inputDir string) {
	fmt.Fprintln(w, "## Server Metrics")
	fmt.Fprintln(w)

	metrics, ok := loadJSON(filepath.Join(inputDir, serverMetricsFile))
	if !ok {
		fmt.Fprintln(w, "*No server metrics available.*")
		fmt.Fprintln(w)

		return
	}

	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")

	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(w, "| %s | %s |\n", key, formatJSONValue(metrics[key]))
	}

	fmt.Fprintln(w)
}

func loadJSON(path string) (map[string]any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}

	return doc, true
}

func loadText(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	return string(data), true
}

func nestedValue(doc map[string]any, keys ...string) any {
	var v any = doc

	for _, key := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}

		v = m[key]
	}

	return v
}

func nestedFloat(doc map[string]any, keys ...string) float64 {
	return nestedFloatDefault(doc, 0, keys...)
}

func nestedFloatDefault(doc map[string]any, fallback float64, keys ...string) float64 {
	f, ok := nestedValue(doc, keys...).(float64)
	if !ok {
		return fallback
	}

	return f
}

func formatJSONValue(v any) string {
	switch n := v.(type) {
	case nil:
		return "0"
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
