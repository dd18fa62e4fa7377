package report

import (
	"regexp"
	"strconv"
	"strings"
)

// wsResult holds metrics scraped from a WebSocket load-test log.
type wsResult struct {
	Passed           bool
	MessagesSent     int
	MessagesReceived int
	CursorP99        string
	ViewportP99      string
}

var (
	wsSentPattern     = regexp.MustCompile(`Messages sent:\s*(\d+)`)
	wsReceivedPattern = regexp.MustCompile(`Messages received:\s*(\d+)`)
	wsCursorPattern   = regexp.MustCompile(`Cursor.*P99:\s*([\d.]+[a-zµ]+)`)
	wsViewportPattern = regexp.MustCompile(`Viewport.*P99:\s*([\d.]+[a-zµ]+)`)
)

// parseWebSocket scrapes a free-text WebSocket load-test log. Absent
// fields stay at their zero values.
func parseWebSocket(text string) wsResult {
	result := wsResult{
		Passed: strings.Contains(text, "PASS"),
	}

	if m := wsSentPattern.FindStringSubmatch(text); m != nil {
		result.MessagesSent, _ = strconv.Atoi(m[1])
	}

	if m := wsReceivedPattern.FindStringSubmatch(text); m != nil {
		result.MessagesReceived, _ = strconv.Atoi(m[1])
	}

	if m := wsCursorPattern.FindStringSubmatch(text); m != nil {
		result.CursorP99 = m[1]
	}

	if m := wsViewportPattern.FindStringSubmatch(text); m != nil {
		result.ViewportP99 = m[1]
	}

	return result
}

const (
	resultsMarker = "=== Load Test Results ==="
	excerptLimit  = 1500
)

// rawExcerpt returns the interesting slice of a load-test log for the
// collapsed raw-output section: from the results marker when present,
// capped at excerptLimit bytes.
func rawExcerpt(text string) string {
	if idx := strings.Index(text, resultsMarker); idx >= 0 {
		text = text[idx:]
	}

	if len(text) > excerptLimit {
		return text[:excerptLimit]
	}

	return text
}
