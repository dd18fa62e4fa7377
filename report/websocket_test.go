package report

import (
	"strings"
	"testing"
)

func TestParseWebSocket(t *testing.T) {
	text := `Running WebSocket load test with 50 clients...
=== Load Test Results ===
Status: PASS
Messages sent: 48210
Messages received: 48195
Cursor latency P99: 12.5ms
Viewport latency P99: 18.2ms
`

	got := parseWebSocket(text)

	if !got.Passed {
		t.Error("expected Passed")
	}

	if got.MessagesSent != 48210 {
		t.Errorf("MessagesSent = %d, want 48210", got.MessagesSent)
	}

	if got.MessagesReceived != 48195 {
		t.Errorf("MessagesReceived = %d, want 48195", got.MessagesReceived)
	}

	if got.CursorP99 != "12.5ms" {
		t.Errorf("CursorP99 = %q, want 12.5ms", got.CursorP99)
	}

	if got.ViewportP99 != "18.2ms" {
		t.Errorf("ViewportP99 = %q, want 18.2ms", got.ViewportP99)
	}
}

func TestParseWebSocketMissingFields(t *testing.T) {
	got := parseWebSocket("server crashed before results\n")

	if got.Passed {
		t.Error("expected not Passed without a PASS marker")
	}

	if got.MessagesSent != 0 || got.MessagesReceived != 0 {
		t.Error("absent counters should stay zero")
	}

	if got.CursorP99 != "" || got.ViewportP99 != "" {
		t.Error("absent percentiles should stay empty")
	}
}

func TestRawExcerptFromMarker(t *testing.T) {
	text := "preamble noise\n=== Load Test Results ===\nStatus: PASS\n"

	got := rawExcerpt(text)

	if !strings.HasPrefix(got, "=== Load Test Results ===") {
		t.Errorf("excerpt should start at the results marker, got %q", got)
	}
}

func TestRawExcerptCapped(t *testing.T) {
	text := strings.Repeat("x", 4000)

	if got := rawExcerpt(text); len(got) != excerptLimit {
		t.Errorf("excerpt length = %d, want %d", len(got), excerptLimit)
	}
}
