package fixture

import (
	"bytes"
	"fmt"
	"testing"
)

func TestLevels(t *testing.T) {
	levels := Levels(Config{Size: 1024, TileSize: 256})

	if len(levels) != 3 {
		t.Fatalf("got %d levels, want 3", len(levels))
	}

	tests := []struct {
		scale int
		dim   int
		tiles int
	}{
		{4, 256, 1},
		{2, 512, 2},
		{1, 1024, 4},
	}

	for i, tt := range tests {
		lvl := levels[i]

		if lvl.Index != i {
			t.Errorf("level %d index = %d", i, lvl.Index)
		}

		if lvl.Scale != tt.scale {
			t.Errorf("level %d scale = %d, want %d", i, lvl.Scale, tt.scale)
		}

		if lvl.Width != tt.dim || lvl.Height != tt.dim {
			t.Errorf("level %d dims = %dx%d, want %dx%d",
				i, lvl.Width, lvl.Height, tt.dim, tt.dim)
		}

		if lvl.TilesX != tt.tiles || lvl.TilesY != tt.tiles {
			t.Errorf("level %d grid = %dx%d, want %dx%d",
				i, lvl.TilesX, lvl.TilesY, tt.tiles, tt.tiles)
		}
	}
}

func TestLevelsNonPowerOfTwo(t *testing.T) {
	levels := Levels(Config{Size: 1000, TileSize: 256})

	// ceil(log2(1000/256)) = 2, so three levels.
	if len(levels) != 3 {
		t.Fatalf("got %d levels, want 3", len(levels))
	}

	// Level 0 at scale 4: ceil(1000/4) = 250 pixels, a single tile.
	if levels[0].Width != 250 || levels[0].TilesX != 1 {
		t.Errorf("level 0 = %d px, %d tiles; want 250 px, 1 tile",
			levels[0].Width, levels[0].TilesX)
	}

	// Full resolution: ceil(1000/256) = 4 tiles per axis.
	top := levels[len(levels)-1]
	if top.Width != 1000 || top.TilesX != 4 {
		t.Errorf("top level = %d px, %d tiles; want 1000 px, 4 tiles",
			top.Width, top.TilesX)
	}
}

func TestLevelsSingleTile(t *testing.T) {
	levels := Levels(Config{Size: 256, TileSize: 256})

	if len(levels) != 1 {
		t.Fatalf("got %d levels, want 1", len(levels))
	}

	if levels[0].Scale != 1 || levels[0].TilesX != 1 {
		t.Errorf("unexpected geometry: %+v", levels[0])
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Size: 1024, TileSize: 256}, false},
		{"zero tile", Config{Size: 1024, TileSize: 0}, true},
		{"size below tile", Config{Size: 128, TileSize: 256}, true},
	}

	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestEncodePPMHeader(t *testing.T) {
	data := encodePPM(4, 2, func(_, _ int) (uint8, uint8, uint8) {
		return 10, 20, 30
	})

	wantHeader := []byte("P6\n4 2\n255\n")
	if !bytes.HasPrefix(data, wantHeader) {
		t.Fatalf("unexpected header: %q", data[:min(len(data), 16)])
	}

	if got, want := len(data), len(wantHeader)+4*2*3; got != want {
		t.Fatalf("payload length = %d, want %d", got, want)
	}

	// First pixel after the header.
	px := data[len(wantHeader) : len(wantHeader)+3]
	if px[0] != 10 || px[1] != 20 || px[2] != 30 {
		t.Errorf("first pixel = %v, want [10 20 30]", px)
	}
}

func TestSlidePainter(t *testing.T) {
	paint := slidePainter()

	// Gridline pixels.
	r, g, b := paint(0, 500)
	if r != 180 || g != 180 || b != 180 {
		t.Errorf("gridline pixel = (%d,%d,%d), want (180,180,180)", r, g, b)
	}

	// First cell interior: palette entry 0.
	r, g, b = paint(64, 64)
	if r != 240 || g != 240 || b != 240 {
		t.Errorf("cell (0,0) = (%d,%d,%d), want (240,240,240)", r, g, b)
	}

	// Cell (1,0): palette entry 1.
	r, g, b = paint(128+64, 64)
	if r != 200 || g != 220 || b != 240 {
		t.Errorf("cell (1,0) = (%d,%d,%d), want (200,220,240)", r, g, b)
	}
}

func TestOverlayPainter(t *testing.T) {
	size := 1024

	paint := overlayPainter(size)

	tests := []struct {
		name    string
		gx, gy  int
		r, g, b uint8
	}{
		{"center tumor", size / 2, size / 2, 239, 68, 68},
		{"lymphocyte ring", size/2 + int(float64(size)*0.20), size / 2, 59, 130, 246},
		{"stroma ring", size/2 + int(float64(size)*0.30), size / 2, 245, 158, 11},
		{"necrosis ring", size/2 + int(float64(size)*0.38), size / 2, 107, 114, 128},
		{"background corner", 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		r, g, b := paint(tt.gx, tt.gy)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%s: pixel = (%d,%d,%d), want (%d,%d,%d)",
				tt.name, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestRenderTileDeterministic(t *testing.T) {
	cfg := Config{Size: 1024, TileSize: 256}
	levels := Levels(cfg)

	first := renderTile(levels[1], 1, 0, cfg.TileSize, slidePainter())
	second := renderTile(levels[1], 1, 0, cfg.TileSize, slidePainter())

	if !bytes.Equal(first, second) {
		t.Error("tiles are not deterministic")
	}
}

func TestRenderTileClipsEdges(t *testing.T) {
	cfg := Config{Size: 1000, TileSize: 256}
	levels := Levels(cfg)
	top := levels[len(levels)-1]

	// The last column is 1000 - 3*256 = 232 pixels wide.
	tile := renderTile(top, 3, 0, cfg.TileSize, slidePainter())

	wantHeader := fmt.Sprintf("P6\n%d %d\n255\n", 232, 256)
	if !bytes.HasPrefix(tile, []byte(wantHeader)) {
		t.Errorf("edge tile header = %q, want %q", tile[:min(len(tile), 16)], wantHeader)
	}
}
