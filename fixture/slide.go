package fixture

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// SlideMetadata is the JSON sidecar describing a generated slide.
type SlideMetadata struct {
	SlideID   string `json:"slide_id"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	TileSize  int    `json:"tile_size"`
	NumLevels int    `json:"num_levels"`
	Format    string `json:"format"`
}

// DZI descriptor document (deepzoom 2008 schema).
type dziImage struct {
	XMLName  xml.Name `xml:"Image"`
	Xmlns    string   `xml:"xmlns,attr"`
	Format   string   `xml:"Format,attr"`
	Overlap  int      `xml:"Overlap,attr"`
	TileSize int      `xml:"TileSize,attr"`
	Size     dziSize  `xml:"Size"`
}

type dziSize struct {
	Width  int `xml:"Width,attr"`
	Height int `xml:"Height,attr"`
}

const deepZoomNamespace = "http://schemas.microsoft.com/deepzoom/2008"

// GenerateSlide writes a demo slide fixture to dir: a DZI descriptor,
// a JSON metadata sidecar, and the full tile pyramid.
func GenerateSlide(dir string, cfg Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	levels := Levels(cfg)

	logger.Info("generating demo slide",
		slog.Int("size", cfg.Size),
		slog.Int("tile_size", cfg.TileSize),
		slog.Int("levels", len(levels)),
	)

	if err := writeDZI(filepath.Join(dir, "slide.dzi"), cfg); err != nil {
		return err
	}

	metadata := SlideMetadata{
		SlideID:   "demo-slide",
		Name:      "Demo Slide",
		Width:     cfg.Size,
		Height:    cfg.Size,
		TileSize:  cfg.TileSize,
		NumLevels: len(levels),
		Format:    "jpeg",
	}

	if err := writeJSON(filepath.Join(dir, "metadata.json"), metadata); err != nil {
		return err
	}

	return writeTiles(filepath.Join(dir, "tiles"), levels, cfg.TileSize,
		slidePainter(), logger)
}

func writeDZI(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create slide dir: %w", err)
	}

	doc := dziImage{
		Xmlns:    deepZoomNamespace,
		Format:   "jpeg",
		Overlap:  0,
		TileSize: cfg.TileSize,
		Size:     dziSize{Width: cfg.Size, Height: cfg.Size},
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal DZI descriptor: %w", err)
	}

	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write DZI descriptor %s: %w", path, err)
	}

	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// writeTiles rasterizes and writes every tile of every level under
// tilesDir as tiles/<level>/<tx>_<ty>.ppm.
func writeTiles(
	tilesDir string,
	levels []Level,
	tileSize int,
	paint painter,
	logger *slog.Logger,
) error {
	for _, lvl := range levels {
		levelDir := filepath.Join(tilesDir, strconv.Itoa(lvl.Index))
		if err := os.MkdirAll(levelDir, 0o755); err != nil {
			return fmt.Errorf("create level dir %s: %w", levelDir, err)
		}

		for ty := 0; ty < lvl.TilesY; ty++ {
			for tx := 0; tx < lvl.TilesX; tx++ {
				tile := renderTile(lvl, tx, ty, tileSize, paint)
				path := filepath.Join(levelDir, fmt.Sprintf("%d_%d.ppm", tx, ty))

				if err := os.WriteFile(path, tile, 0o644); err != nil {
					return fmt.Errorf("write tile %s: %w", path, err)
				}
			}
		}

		logger.Info("level generated",
			slog.Int("level", lvl.Index),
			slog.String("tiles", fmt.Sprintf("%dx%d", lvl.TilesX, lvl.TilesY)),
			slog.String("pixels", fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)),
		)
	}

	return nil
}
