// Command iconc compiles one @ICONS rule segment into XPM pixmap text.
//
// Usage:
//
//	iconc -config iconc.yaml
//	iconc -in icons.txt -out icons.xpm -preview icons.png -scale 8 -show
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/icons"
	"github.com/gogpu/icons/internal/termview"
	"github.com/gogpu/icons/symbol"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		input      = flag.String("in", "", "icon segment file (overrides config)")
		output     = flag.String("out", "", "output file, - for stdout (overrides config)")
		preview    = flag.String("preview", "", "write a .png or .bmp preview")
		scale      = flag.Int("scale", 0, "preview scale factor")
		show       = flag.Bool("show", false, "draw the icons in the terminal")
		verbose    = flag.Bool("v", false, "debug logging")
		quiet      = flag.Bool("q", false, "errors only")
	)
	flag.Parse()

	cfg, err := Load(*configPath)
	if err != nil {
		log.Fatalf("iconc: %v", err)
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *preview != "" {
		cfg.Preview.Path = *preview
	}
	if *scale > 0 {
		cfg.Preview.Scale = *scale
	}
	if *show {
		cfg.Preview.Terminal = true
	}
	switch {
	case *verbose:
		cfg.LogLevel = "debug"
	case *quiet:
		cfg.LogLevel = "error"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("iconc: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	if err := run(cfg, logger, os.Stdout); err != nil {
		log.Fatalf("iconc: %v", err)
	}
}

// run compiles cfg.Input and writes every requested artefact.
// stdout receives the pixmap text when no output file is set, followed by
// the terminal preview if enabled.
func run(cfg *Config, logger *slog.Logger, stdout io.Writer) error {
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	opts := []icons.Option{
		icons.WithStartLine(cfg.StartLine),
		icons.WithLogger(logger),
	}
	if cfg.Height != 0 {
		opts = append(opts, icons.WithHeight(icons.Height(cfg.Height)))
	}
	if cfg.Seed != 0 {
		opts = append(opts, icons.WithMinter(symbol.NewSeededMinter(cfg.Seed)))
	}

	arr, err := icons.Parse(lines, icons.ColorMap(cfg.Colors), opts...)
	if err != nil {
		return err
	}

	if err := writeOutput(arr, cfg.Output, stdout); err != nil {
		return err
	}
	logger.Info("wrote pixmap", "output", outputName(cfg.Output), "states", len(arr.States()))

	if cfg.Preview.Path != "" {
		if err := writePreview(arr, cfg.Preview); err != nil {
			return err
		}
		logger.Info("wrote preview", "path", cfg.Preview.Path, "scale", cfg.Preview.Scale)
	}
	if cfg.Preview.Terminal {
		if _, err := io.WriteString(stdout, termview.Render(arr)); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(arr *icons.IconArray, path string, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := arr.WriteTo(stdout)
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if _, err := arr.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writePreview(arr *icons.IconArray, cfg PreviewConfig) error {
	pm, err := icons.Render(arr)
	if err != nil {
		return err
	}
	pm = pm.Scale(cfg.Scale)
	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".png":
		return pm.SavePNG(cfg.Path)
	case ".bmp":
		return pm.Flatten(icons.Hex(cfg.Background)).SaveBMP(cfg.Path)
	default:
		return fmt.Errorf("unsupported preview format %q", filepath.Ext(cfg.Path))
	}
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
