package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/handiism/catalog-photo-downloader/internal/config"
	"github.com/handiism/catalog-photo-downloader/internal/tui"
)

func main() {
	_ = godotenv.Load()

	settings := config.DefaultSettings()
	if path := os.Getenv("PHOTO_DL_CONFIG"); path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
