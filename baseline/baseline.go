package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Baseline is a persisted metrics snapshot. The raw result document is
// retained for provenance so a baseline can be re-extracted later.
type Baseline struct {
	CreatedAt   string         `json:"created_at"`
	Description string         `json:"description"`
	Metrics     Metrics        `json:"metrics"`
	RawData     map[string]any `json:"raw_data"`
}

// New builds a baseline snapshot from a result document.
func New(doc map[string]any, description string) *Baseline {
	return &Baseline{
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Description: description,
		Metrics:     ExtractMetrics(doc),
		RawData:     doc,
	}
}

// Save writes the baseline as indented JSON, creating parent
// directories as needed.
func (b *Baseline) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create baseline dir %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write baseline %s: %w", path, err)
	}

	return nil
}

// Load reads a baseline snapshot previously written by Save.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline %s: %w", path, err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode baseline %s: %w", path, err)
	}

	return &b, nil
}
