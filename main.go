package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tickertape/internal/config"
	"tickertape/internal/printer"
	"tickertape/internal/record"
	"tickertape/internal/render"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	imagePath := flag.String("image", "", "print a single image and exit")
	flag.Parse()

	if err := run(*configPath, *imagePath); err != nil {
		slog.Error("Exiting with error", "error", err)
		os.Exit(1)
	}
}

func run(configPath, imagePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	profile := printer.ProfileForWidth(cfg.Printer.WidthMM, cfg.Printer.DotsPerInch)
	slog.Info("Device geometry",
		"widthDots", profile.WidthDots,
		"bytesPerLine", profile.BytesPerLine(),
	)

	conn, err := connect(&cfg.Printer)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := printer.Initialize(conn, printer.Settings{
		Density:     cfg.Printer.PrintDensity,
		LineSpacing: cfg.Printer.LineSpacingDots,
		Speed:       cfg.Printer.PrintSpeed,
	}); err != nil {
		return fmt.Errorf("Couldn't initialise printer:\n%w", err)
	}

	threshold := cfg.Printer.RasterThreshold
	if threshold < 0 {
		threshold = 0
	} else if threshold > 255 {
		threshold = 255
	}
	renderer := &render.Renderer{
		Width:     profile.WidthDots,
		Margin:    cfg.Fonts.Margin,
		Threshold: uint8(threshold),
		Invert:    cfg.Printer.InvertRaster,
	}
	composer := &render.Composer{
		Fonts:    &render.FontSet{Candidates: cfg.Fonts.Candidates},
		Renderer: renderer,
		Typo: render.Typography{
			AuthorSize:  cfg.Fonts.AuthorSize,
			TitleSize:   cfg.Fonts.TitleSize,
			BodySize:    cfg.Fonts.BodySize,
			TagSize:     cfg.Fonts.TagSize,
			LineSpacing: cfg.Fonts.LineSpacing,
			SectionGap:  cfg.Fonts.SectionGap,
		},
	}
	orchestrator := printer.NewOrchestrator(conn, profile, renderer, cfg.Printer.FeedLines)

	if imagePath != "" {
		return printImage(orchestrator, profile, imagePath)
	}

	return printLoop(orchestrator, composer, cfg)
}

func connect(cfg *config.PrinterConfig) (printer.Connection, error) {
	settle := time.Duration(cfg.WriteDelayMS) * time.Millisecond

	switch cfg.Transport {
	case "", "serial":
		return printer.DiscoverSerial(printer.SerialOptions{
			VendorID:    cfg.VendorID,
			ProductID:   cfg.ProductID,
			BaudRate:    cfg.BaudRate,
			ReadTimeout: time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
			Settle:      settle,
		})
	case "ble":
		scanTimeout := time.Duration(cfg.ScanTimeoutMS) * time.Millisecond
		return printer.DiscoverBluetooth(cfg.BluetoothName, scanTimeout, settle)
	default:
		return nil, fmt.Errorf("Unknown transport %q", cfg.Transport)
	}
}

func printImage(o *printer.Orchestrator, profile printer.Profile, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("Couldn't open image:\n%w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("Couldn't decode image:\n%w", err)
	}

	b, err := render.ForDevice(img, profile.WidthDots)
	if err != nil {
		return err
	}
	return o.PrintBitmap(b)
}

func printLoop(o *printer.Orchestrator, composer *render.Composer, cfg *config.Config) error {
	store, err := record.Open(cfg.Records.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Records.CSVPath != "" {
		inserted, err := store.ImportCSV(cfg.Records.CSVPath)
		if err != nil {
			return err
		}
		slog.Info("Imported records from CSV",
			"path", cfg.Records.CSVPath,
			"inserted", inserted,
		)
	}

	// Printed flags only matter within a run; every start sees the
	// full pool.
	if err := store.ResetPrinted(); err != nil {
		return err
	}

	if cfg.Records.StartupMessage != "" {
		sections := composer.Message(cfg.Records.StartupMessage, cfg.Records.StartupSize)
		if err := o.PrintSections(sections); err != nil {
			return fmt.Errorf("Couldn't print startup message:\n%w", err)
		}
	}

	interval := time.Duration(cfg.Records.IntervalMinutes * float64(time.Minute))
	if interval <= 0 {
		interval = time.Minute
	}
	slog.Info("Starting print loop", "interval", interval)

	buffer := record.NewBuffer(cfg.Records.BufferSize)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := printNext(o, composer, store, buffer); err != nil {
			// Degenerate geometry never fixes itself; anything else
			// is a per-record failure the loop rides out.
			if errors.Is(err, render.ErrDegenerate) {
				return err
			}
			slog.Error("Couldn't print record", "error", err)
		}

		select {
		case <-stop:
			slog.Info("Shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

func printNext(o *printer.Orchestrator, composer *render.Composer, store *record.Repository, buffer *record.Buffer) error {
	if buffer.Len() == 0 {
		fetched, err := store.Unprinted(buffer.Cap())
		if err != nil {
			return err
		}
		if len(fetched) == 0 {
			slog.Info("No unprinted records left, resetting the pool")
			return store.ResetPrinted()
		}
		for _, rec := range fetched {
			buffer.Push(rec)
		}
	}

	rec := buffer.Pop()
	if rec == nil {
		return nil
	}

	slog.Info("Printing record",
		"author", rec.Author,
		"date", rec.Date,
	)
	if err := o.PrintSections(composer.Sections(rec)); err != nil {
		return err
	}
	return store.MarkPrinted(rec.Uuid)
}
