// Package fixture generates deterministic deep-zoom image pyramids for
// testing: a checkerboard demo slide and a concentric-region demo
// overlay. Tiles are synthesized from global coordinates with simple
// arithmetic, so output depends only on (size, tile size).
package fixture

import (
	"fmt"
	"math"
)

// Config controls pyramid geometry. Size is the base image edge in
// pixels (images are square), TileSize the tile edge.
type Config struct {
	Size     int
	TileSize int
}

// Validate rejects geometries the pyramid math cannot express.
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}

	if c.Size < c.TileSize {
		return fmt.Errorf("size %d must be at least tile size %d", c.Size, c.TileSize)
	}

	return nil
}

// Level describes one zoom level of the pyramid. Level 0 is the most
// zoomed-out; the last level is full resolution.
type Level struct {
	Index  int
	Scale  int
	Width  int
	Height int
	TilesX int
	TilesY int
}

// maxLevel computes the highest level index: ceil(log2(size/tileSize)).
func maxLevel(size, tileSize int) int {
	return int(math.Ceil(math.Log2(float64(size) / float64(tileSize))))
}

// Levels returns the geometry of every zoom level for cfg.
func Levels(cfg Config) []Level {
	top := maxLevel(cfg.Size, cfg.TileSize)
	levels := make([]Level, 0, top+1)

	for i := 0; i <= top; i++ {
		scale := 1 << (top - i)
		width := ceilDiv(cfg.Size, scale)
		height := ceilDiv(cfg.Size, scale)

		levels = append(levels, Level{
			Index:  i,
			Scale:  scale,
			Width:  width,
			Height: height,
			TilesX: ceilDiv(width, cfg.TileSize),
			TilesY: ceilDiv(height, cfg.TileSize),
		})
	}

	return levels
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// painter maps global base-image coordinates to an RGB color.
type painter func(gx, gy int) (r, g, b uint8)

const (
	slideGridSize = 128
	gridLineWidth = 2
)

// slideCellPalette cycles across checkerboard cells.
var slideCellPalette = [4][3]uint8{
	{240, 240, 240}, // light gray
	{200, 220, 240}, // light blue
	{220, 240, 200}, // light green
	{240, 220, 200}, // light orange
}

var gridLineColor = [3]uint8{180, 180, 180}

// slidePainter paints the demo slide: a colored grid with cell colors
// cycling the palette and thin gridlines between cells.
func slidePainter() painter {
	return func(gx, gy int) (uint8, uint8, uint8) {
		if gx%slideGridSize < gridLineWidth || gy%slideGridSize < gridLineWidth {
			return gridLineColor[0], gridLineColor[1], gridLineColor[2]
		}

		cellX := (gx / slideGridSize) % 4
		cellY := (gy / slideGridSize) % 4
		c := slideCellPalette[(cellX+cellY)%4]

		return c[0], c[1], c[2]
	}
}

// overlayPainter paints the demo overlay: concentric tissue-class
// regions around the image center, background elsewhere.
func overlayPainter(size int) painter {
	center := float64(size) / 2

	bands := []struct {
		radius float64
		color  [3]uint8
	}{
		{float64(size) * 0.15, [3]uint8{239, 68, 68}},   // tumor
		{float64(size) * 0.25, [3]uint8{59, 130, 246}},  // lymphocytes
		{float64(size) * 0.35, [3]uint8{245, 158, 11}},  // stroma
		{float64(size) * 0.40, [3]uint8{107, 114, 128}}, // necrosis
	}

	return func(gx, gy int) (uint8, uint8, uint8) {
		dx := float64(gx) - center
		dy := float64(gy) - center
		dist := math.Sqrt(dx*dx + dy*dy)

		for _, band := range bands {
			if dist < band.radius {
				return band.color[0], band.color[1], band.color[2]
			}
		}

		return 0, 0, 0 // background
	}
}

// renderTile rasterizes one tile of a level as a PPM image. Edge tiles
// are clipped to the level bounds.
func renderTile(lvl Level, tx, ty, tileSize int, paint painter) []byte {
	xStart := tx * tileSize
	yStart := ty * tileSize
	width := min(tileSize, lvl.Width-xStart)
	height := min(tileSize, lvl.Height-yStart)

	return encodePPM(width, height, func(x, y int) (uint8, uint8, uint8) {
		return paint((xStart+x)*lvl.Scale, (yStart+y)*lvl.Scale)
	})
}
