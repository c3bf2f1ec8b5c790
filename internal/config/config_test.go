package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `printer:
  print_density: 3
  invert_raster: true
fonts:
  title_size: 60
records:
  csv_path: tweets.csv
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Printer.PrintDensity != 3 {
		t.Errorf("Expected density 3, got %v", cfg.Printer.PrintDensity)
	}
	if !cfg.Printer.InvertRaster {
		t.Error("Expected invert_raster true")
	}
	if cfg.Fonts.TitleSize != 60 {
		t.Errorf("Expected title size 60, got %v", cfg.Fonts.TitleSize)
	}
	if cfg.Records.CSVPath != "tweets.csv" {
		t.Errorf("Expected csv path from file, got %q", cfg.Records.CSVPath)
	}

	// Untouched fields keep their defaults.
	if cfg.Printer.VendorID != "0483" || cfg.Printer.ProductID != "5740" {
		t.Errorf("Default USB ids lost: %v %v", cfg.Printer.VendorID, cfg.Printer.ProductID)
	}
	if cfg.Printer.BaudRate != 9600 {
		t.Errorf("Default baud rate lost: %v", cfg.Printer.BaudRate)
	}
	if cfg.Fonts.AuthorSize != 36 {
		t.Errorf("Default author size lost: %v", cfg.Fonts.AuthorSize)
	}
}

func TestLoadEmptyFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Printer.WidthMM != 190 || cfg.Printer.DotsPerInch != 203 {
		t.Errorf("Defaults not applied: %+v", cfg.Printer)
	}
	if len(cfg.Fonts.Candidates) != 1 || cfg.Fonts.Candidates[0] != "goregular" {
		t.Errorf("Default font candidates lost: %v", cfg.Fonts.Candidates)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
