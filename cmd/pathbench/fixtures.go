package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/PABannier/pathbench/fixture"
)

func newFixturesCmd(logger *slog.Logger) *cobra.Command {
	var (
		outputDir string
		size      int
		tileSize  int
	)

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Generate deterministic deep-zoom test fixtures",
		Long: `Generate a synthetic demo slide and demo overlay for CI testing:
DZI descriptors, JSON metadata/manifest sidecars, and deterministic PPM
tile pyramids. Output depends only on size and tile size.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runFixtures(logger, outputDir, size, tileSize)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&outputDir, "output-dir", "fixtures",
		"Directory to write fixtures into")
	flags.IntVar(&size, "size", 1024,
		"Base image size in pixels")
	flags.IntVar(&tileSize, "tile-size", 256,
		"Tile size in pixels")

	return cmd
}

func runFixtures(logger *slog.Logger, outputDir string, size, tileSize int) error {
	cfg := fixture.Config{Size: size, TileSize: tileSize}

	slideDir := filepath.Join(outputDir, "demo-slide")
	if err := fixture.GenerateSlide(slideDir, cfg, logger); err != nil {
		return fmt.Errorf("generate demo slide: %w", err)
	}

	overlayDir := filepath.Join(outputDir, "demo-overlay")
	if err := fixture.GenerateOverlay(overlayDir, cfg, logger); err != nil {
		return fmt.Errorf("generate demo overlay: %w", err)
	}

	logger.Info("fixture generation complete",
		slog.String("output_dir", outputDir),
	)

	return nil
}
