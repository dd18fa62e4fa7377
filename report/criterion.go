package report

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// benchEntry is one parsed criterion measurement, normalized to
// microseconds. Low/mid/high correspond to criterion's confidence
// interval bounds with the median in the middle.
type benchEntry struct {
	Name   string
	LowUs  float64
	MidUs  float64
	HighUs float64
}

// shortName strips the leading group segment from a name like
// "jpeg_encoding/256x256/85".
func (b benchEntry) shortName() string {
	parts := strings.SplitN(b.Name, "/", 2)
	if len(parts) < 2 {
		return b.Name
	}

	return parts[1]
}

// Matches lines like:
//
//	benchmark_name  time:   [123.45 µs 125.67 µs 127.89 µs]
var criterionPattern = regexp.MustCompile(
	`(\S+)\s+time:\s+\[([0-9.]+)\s*([a-zµ]+)\s+([0-9.]+)\s*([a-zµ]+)\s+([0-9.]+)\s*([a-zµ]+)\]`,
)

// parseCriterion extracts benchmark measurements from criterion text
// output. Unparseable lines are skipped.
func parseCriterion(text string) []benchEntry {
	var entries []benchEntry

	for _, m := range criterionPattern.FindAllStringSubmatch(text, -1) {
		low, err1 := strconv.ParseFloat(m[2], 64)
		mid, err2 := strconv.ParseFloat(m[4], 64)
		high, err3 := strconv.ParseFloat(m[6], 64)

		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}

		entries = append(entries, benchEntry{
			Name:   m[1],
			LowUs:  toMicros(low, m[3]),
			MidUs:  toMicros(mid, m[5]),
			HighUs: toMicros(high, m[7]),
		})
	}

	return entries
}

func toMicros(val float64, unit string) float64 {
	switch unit {
	case "ns":
		return val / 1000
	case "µs", "us":
		return val
	case "ms":
		return val * 1000
	case "s":
		return val * 1_000_000
	default:
		return val
	}
}

type benchGroup struct {
	name    string
	entries []benchEntry
}

// groupBenchmarks buckets entries by the segment before the first "/",
// returning groups sorted by name.
func groupBenchmarks(entries []benchEntry) []benchGroup {
	byName := make(map[string][]benchEntry)

	for _, e := range entries {
		group := strings.SplitN(e.Name, "/", 2)[0]
		byName[group] = append(byName[group], e)
	}

	groups := make([]benchGroup, 0, len(byName))
	for name, members := range byName {
		groups = append(groups, benchGroup{name: name, entries: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].name < groups[j].name
	})

	return groups
}

// formatDuration renders a microsecond value in the most readable unit.
func formatDuration(us float64) string {
	switch {
	case us < 1:
		return fmt.Sprintf("%.2fns", us*1000)
	case us < 1000:
		return fmt.Sprintf("%.2fµs", us)
	case us < 1_000_000:
		return fmt.Sprintf("%.2fms", us/1000)
	default:
		return fmt.Sprintf("%.2fs", us/1_000_000)
	}
}

// titleCase turns a group name like "jpeg_encoding" into "Jpeg Encoding".
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")

	for i, word := range words {
		if word == "" {
			continue
		}

		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}
