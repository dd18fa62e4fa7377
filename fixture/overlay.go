package fixture

import (
	"log/slog"
	"path/filepath"
)

// OverlayClass describes one tissue class in an overlay manifest.
type OverlayClass struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// OverlayManifest is the JSON sidecar describing a generated overlay.
type OverlayManifest struct {
	ID       string         `json:"id"`
	SlideID  string         `json:"slide_id"`
	Name     string         `json:"name"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	TileSize int            `json:"tile_size"`
	Levels   int            `json:"levels"`
	Format   string         `json:"format"`
	Classes  []OverlayClass `json:"classes"`
	Version  string         `json:"version"`
}

// Class table matching the overlay painter's concentric regions.
var overlayClasses = []OverlayClass{
	{ID: 0, Name: "Background", Color: "#000000", Opacity: 0},
	{ID: 1, Name: "Tumor", Color: "#EF4444", Opacity: 0.7},
	{ID: 2, Name: "Stroma", Color: "#F59E0B", Opacity: 0.7},
	{ID: 3, Name: "Necrosis", Color: "#6B7280", Opacity: 0.7},
	{ID: 4, Name: "Lymphocytes", Color: "#3B82F6", Opacity: 0.7},
}

// GenerateOverlay writes a demo overlay fixture to dir: a JSON
// manifest and the full tile pyramid of segmentation regions.
func GenerateOverlay(dir string, cfg Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	levels := Levels(cfg)

	logger.Info("generating demo overlay",
		slog.Int("size", cfg.Size),
		slog.Int("tile_size", cfg.TileSize),
		slog.Int("levels", len(levels)),
	)

	manifest := OverlayManifest{
		ID:       "demo-overlay",
		SlideID:  "demo-slide",
		Name:     "Demo Tissue Segmentation",
		Width:    cfg.Size,
		Height:   cfg.Size,
		TileSize: cfg.TileSize,
		Levels:   len(levels),
		Format:   "png",
		Classes:  overlayClasses,
		Version:  "1.0",
	}

	if err := writeJSON(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		return err
	}

	return writeTiles(filepath.Join(dir, "tiles"), levels, cfg.TileSize,
		overlayPainter(cfg.Size), logger)
}
