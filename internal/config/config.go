// Package config loads the YAML configuration file. Tuning values
// (margins, spacing, feed lines) live here rather than in code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Printer PrinterConfig `yaml:"printer"`
	Fonts   FontsConfig   `yaml:"fonts"`
	Records RecordsConfig `yaml:"records"`
}

type PrinterConfig struct {
	// Transport selects how the device is reached: "serial" (USB
	// vid/pid discovery) or "ble" (scan by advertised name).
	Transport     string `yaml:"transport"`
	VendorID      string `yaml:"vendor_id"`
	ProductID     string `yaml:"product_id"`
	BluetoothName string `yaml:"bluetooth_name"`
	BaudRate      int    `yaml:"baud_rate"`

	WidthMM     float64 `yaml:"width_mm"`
	DotsPerInch int     `yaml:"dots_per_inch"`

	PrintDensity    int  `yaml:"print_density"` // 0-7
	PrintSpeed      int  `yaml:"print_speed"`   // 1-5
	LineSpacingDots int  `yaml:"line_spacing_dots"`
	FeedLines       int  `yaml:"feed_lines"`
	RasterThreshold int  `yaml:"raster_threshold"` // 0-255
	InvertRaster    bool `yaml:"invert_raster"`

	WriteDelayMS  int `yaml:"write_delay_ms"`
	ReadTimeoutMS int `yaml:"read_timeout_ms"`
	ScanTimeoutMS int `yaml:"scan_timeout_ms"`
}

type FontsConfig struct {
	// Candidates are tried in order: builtin names ("goregular",
	// "gomono") or TTF/OTF paths. The minimal bitmap face is the
	// implicit last resort.
	Candidates []string `yaml:"candidates"`

	AuthorSize int `yaml:"author_size"`
	TitleSize  int `yaml:"title_size"`
	BodySize   int `yaml:"body_size"`
	TagSize    int `yaml:"tag_size"`

	Margin      int `yaml:"margin"`
	LineSpacing int `yaml:"line_spacing"`
	SectionGap  int `yaml:"section_gap"`
}

type RecordsConfig struct {
	DatabasePath    string  `yaml:"database_path"`
	CSVPath         string  `yaml:"csv_path"`
	IntervalMinutes float64 `yaml:"interval_minutes"`
	BufferSize      int     `yaml:"buffer_size"`
	StartupMessage  string  `yaml:"startup_message"`
	StartupSize     int     `yaml:"startup_size"`
}

// Default returns the configuration for an M08F on USB serial.
func Default() Config {
	return Config{
		Printer: PrinterConfig{
			Transport:       "serial",
			VendorID:        "0483",
			ProductID:       "5740",
			BaudRate:        9600,
			WidthMM:         190,
			DotsPerInch:     203,
			PrintDensity:    7,
			PrintSpeed:      2,
			LineSpacingDots: 64,
			FeedLines:       3,
			RasterThreshold: 128,
			WriteDelayMS:    20,
			ReadTimeoutMS:   500,
			ScanTimeoutMS:   15000,
		},
		Fonts: FontsConfig{
			Candidates:  []string{"goregular"},
			AuthorSize:  36,
			TitleSize:   52,
			BodySize:    46,
			TagSize:     40,
			Margin:      5,
			LineSpacing: 15,
			SectionGap:  45,
		},
		Records: RecordsConfig{
			DatabasePath:    "records.db",
			IntervalMinutes: 5,
			BufferSize:      10,
			StartupSize:     48,
		},
	}
}

// Load reads the file at path over the defaults. A missing file is an
// error; an empty file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't read config file:\n%w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("Couldn't parse config file %s:\n%w", path, err)
	}
	return &cfg, nil
}
