package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const sampleTileStress = `{
	"summary": {
		"requestsPerSec": 2500.5,
		"total": 150000,
		"successRate": 0.998
	},
	"latencyPercentiles": {
		"p50": 0.010,
		"p75": 0.015,
		"p90": 0.025,
		"p95": 0.040,
		"p99": 0.080,
		"p999": 0.150
	},
	"statusCodeDistribution": {
		"200": 149700,
		"404": 300
	}
}`

const sampleWebSocketLoad = `Running WebSocket load test...
=== Load Test Results ===
Status: PASS
Messages sent: 48210
Messages received: 48195
Cursor latency P99: 12.5ms
Viewport latency P99: 18.2ms
`

const sampleMicroBench = `
jpeg_encoding/256x256/85  time:   [123.45 µs 125.67 µs 127.89 µs]
jpeg_encoding/512x512/85  time:   [480.10 µs 495.00 µs 510.30 µs]
spatial_query/1000        time:   [850.00 ns 900.00 ns 950.00 ns]
`

const sampleServerMetrics = `{
	"active_sessions": 42,
	"tiles_served": 150000,
	"cache_hit_rate": 0.93
}`

func generateInto(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	if err := Generate(&buf, dir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	return buf.String()
}

func TestGenerateFullReport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, tileStressFile, sampleTileStress)
	writeFile(t, dir, websocketLoadFile, sampleWebSocketLoad)
	writeFile(t, dir, microBenchFile, sampleMicroBench)
	writeFile(t, dir, serverMetricsFile, sampleServerMetrics)

	output := generateInto(t, dir)

	for _, want := range []string{
		"# PathCollab Benchmark Report",
		"## Table of Contents",
		"| HTTP Tile Serving | ✅ PASS |",
		"| WebSocket Broadcasting | ✅ PASS |",
		"- **Tile serving:** 2500 req/s, P99: 80.0ms, Success: 99.8%",
		"- **Requests/sec:** 2500.5",
		"- **Total requests:** 150000",
		"| P99 | 80.00ms |",
		"| P999 | 150.00ms |",
		"| 200 | 149700 |",
		"| 404 | 300 |",
		"- **Messages sent:** 48210",
		"- **Cursor P99:** 12.5ms",
		"=== Load Test Results ===",
		"### Jpeg Encoding",
		"| 256x256/85 | 125.67µs | 123.45µs - 127.89µs |",
		"### Spatial Query",
		"| 1000 | 900.00ns | 850.00ns - 950.00ns |",
		"| active_sessions | 42 |",
		"| cache_hit_rate | 0.93 |",
		"*Report generated by `pathbench report`*",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestGenerateMissingInputs(t *testing.T) {
	output := generateInto(t, t.TempDir())

	for _, want := range []string{
		"| HTTP Tile Serving | ⚠️ No data |",
		"| WebSocket Broadcasting | ⚠️ No data |",
		"- **Tile serving:** No data collected",
		"- **WebSocket:** No data collected",
		"*No HTTP tile performance data available.*",
		"*No WebSocket performance data available.*",
		"*No micro-benchmark data available.*",
		"*No server metrics available.*",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("report missing placeholder %q", want)
		}
	}
}

func TestGenerateSlowTileFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, tileStressFile, `{
		"summary": {"requestsPerSec": 100, "successRate": 1.0},
		"latencyPercentiles": {"p99": 0.250}
	}`)

	output := generateInto(t, dir)

	if !strings.Contains(output, "| HTTP Tile Serving | ❌ FAIL (P99 > 100ms) |") {
		t.Error("expected FAIL status for P99 over budget")
	}
}

func TestGenerateFailedWebSocket(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, websocketLoadFile, "connection refused, test aborted\n")

	output := generateInto(t, dir)

	if !strings.Contains(output, "| WebSocket Broadcasting | ❌ FAIL |") {
		t.Error("expected FAIL status for failed websocket run")
	}

	if !strings.Contains(output, "- **WebSocket:** Test failed") {
		t.Error("expected failure bullet in summary")
	}
}

func TestGenerateMalformedJSONDegrades(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, tileStressFile, "{not json")

	output := generateInto(t, dir)

	if !strings.Contains(output, "*No HTTP tile performance data available.*") {
		t.Error("malformed JSON should degrade to the no-data placeholder")
	}
}

func TestGenerateUnparseableBenchmarks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, microBenchFile, "Compiling benchmarks...\nFinished.\n")

	output := generateInto(t, dir)

	if !strings.Contains(output, "*Could not parse benchmark results.*") {
		t.Error("expected parse-failure placeholder for benchmark text")
	}
}

func TestFormatJSONValue(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{float64(150000), "150000"},
		{0.93, "0.93"},
		{"ready", "ready"},
		{true, "true"},
		{nil, "0"},
	}

	for _, tt := range tests {
		got := formatJSONValue(tt.input)
		if got != tt.want {
			t.Errorf("formatJSONValue(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
