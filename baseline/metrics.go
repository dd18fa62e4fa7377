// Package baseline extracts normalized metrics from benchmark result
// documents, persists them as baseline snapshots, and compares current
// runs against a saved baseline with a P99 latency regression gate.
package baseline

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metrics is a normalized mapping of metric names to values. Latency
// metrics carry an _ms suffix and are stored in milliseconds.
type Metrics map[string]float64

// LoadDocument reads a schema-flexible JSON result document from path.
func LoadDocument(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var doc map[string]any
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return doc, nil
}

// ExtractMetrics pulls key metrics out of a benchmark result document.
// It understands the oha load-test output shape, the alternative
// latencyDistribution shape, and passes through an existing "metrics"
// mapping unchanged (already in final units).
func ExtractMetrics(doc map[string]any) Metrics {
	metrics := make(Metrics)

	// oha format.
	if summary, ok := childMap(doc, "summary"); ok {
		metrics["requests_per_sec"] = floatField(summary, "requestsPerSec", 0)
		metrics["success_rate"] = floatField(summary, "successRate", 1.0) * 100
	}

	// oha returns latency in seconds, convert to ms.
	if lat, ok := childMap(doc, "latencyPercentiles"); ok {
		metrics["p50_ms"] = floatField(lat, "p50", 0) * 1000
		metrics["p90_ms"] = floatField(lat, "p90", 0) * 1000
		metrics["p95_ms"] = floatField(lat, "p95", 0) * 1000
		metrics["p99_ms"] = floatField(lat, "p99", 0) * 1000

		if _, ok := lat["p999"]; ok {
			metrics["p999_ms"] = floatField(lat, "p999", 0) * 1000
		}
	}

	// Alternative: latencyDistribution format.
	if dist, ok := childMap(doc, "latencyDistribution"); ok {
		if lat, ok := childMap(dist, "percentiles"); ok {
			metrics["p50_ms"] = floatField(lat, "p50", 0) * 1000
			metrics["p90_ms"] = floatField(lat, "p90", 0) * 1000
			metrics["p95_ms"] = floatField(lat, "p95", 0) * 1000
			metrics["p99_ms"] = floatField(lat, "p99", 0) * 1000
		}
	}

	// Baseline snapshot format (already in correct units).
	if raw, ok := childMap(doc, "metrics"); ok {
		for name, v := range raw {
			if f, ok := asFloat(v); ok {
				metrics[name] = f
			}
		}
	}

	return metrics
}

func childMap(doc map[string]any, key string) (map[string]any, bool) {
	m, ok := doc[key].(map[string]any)

	return m, ok
}

func floatField(m map[string]any, key string, fallback float64) float64 {
	v, ok := m[key]
	if !ok {
		return fallback
	}

	f, ok := asFloat(v)
	if !ok {
		return fallback
	}

	return f
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}
