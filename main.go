package main

import (
	"fmt"
	"log/slog"

	Od "github.com/craque/ottava/display"
	Og "github.com/craque/ottava/glyph"
	Oo "github.com/craque/ottava/obvy"
)

func init() {
	User := Og.FillEnvVar("USER")
	fmt.Printf("Ottava initializing for ... %s\n", User)
}

func main() {
	// Tracing is opt-in, the collector is not always around
	if Og.FillEnvVar("OTTAVA_TRACE") == "honeycomb" {
		shutdown, err := Oo.InitOTelHNY()
		if err != nil {
			slog.Error("Problem starting tracing", slog.Any("Error", err))
		} else {
			defer shutdown()
		}
	}

	// Without a config file the view runs on random data
	var config []Og.ConfigFile
	filename := Og.FillEnvVar("OTTAVA_CONFIG")
	if filename != "ENOENT" {
		var err error
		config, err = Og.LoadConfigFileName(filename)
		if err != nil {
			slog.Error("Problem loading config", slog.Any("Error", err))
			panic("Failed to load config file")
		}
		slog.Info("Loaded config", slog.String("File", filename))
	}

	// Headless mode serves the month grid over HTTP only
	if Og.FillEnvVar("OTTAVA_WEB") == "true" {
		if err := Od.StartWebNoTUI(config); err != nil {
			slog.Error("Problem starting web view", slog.Any("Error", err))
			panic("Failed to start web view")
		}
		return
	}

	err := Od.StartGlyphViewWithConfig(config)
	if err != nil {
		slog.Error("Problem starting month view", slog.Any("Error", err))
		panic("Failed to start month view")
	}
}
